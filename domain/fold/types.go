package fold

// Fold is one contiguous slice over the shuffled permutation
type Fold struct {
	Index int `json:"index"`
	Start int `json:"start"` // offset into the permutation
	Size  int `json:"size"`
}

// Assignment is the immutable outcome of partitioning: a permutation of
// [0, n) plus K contiguous slices over it. It is computed once per run
// and read-only thereafter, so folds can be consumed concurrently.
type Assignment struct {
	N           int    `json:"n"`
	K           int    `json:"k"`
	Seed        int64  `json:"seed"`
	Permutation []int  `json:"permutation"`
	Folds       []Fold `json:"folds"`
}

// Test returns fold k's test indices: the permutation entries inside the
// fold's slice.
func (a Assignment) Test(k int) []int {
	f := a.Folds[k]
	return a.Permutation[f.Start : f.Start+f.Size]
}

// Train returns fold k's training indices: every permutation entry
// outside the fold's slice, order preserved (entries before the slice,
// then entries after it).
func (a Assignment) Train(k int) []int {
	f := a.Folds[k]
	train := make([]int, 0, a.N-f.Size)
	train = append(train, a.Permutation[:f.Start]...)
	train = append(train, a.Permutation[f.Start+f.Size:]...)
	return train
}

// Split returns fold k's train and test indices together
func (a Assignment) Split(k int) (train, test []int) {
	return a.Train(k), a.Test(k)
}
