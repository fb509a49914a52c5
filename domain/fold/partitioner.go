package fold

import (
	"fmt"
	"math/rand"
	"time"

	"crossval/domain/core"
)

// Partitioner slices a shuffled index permutation into K contiguous folds
type Partitioner struct {
	seed int64
}

// NewPartitioner creates a partitioner seeded from the clock
func NewPartitioner() *Partitioner {
	return &Partitioner{seed: time.Now().UnixNano()}
}

// NewPartitionerWithSeed creates a partitioner with a specific seed for
// reproducibility
func NewPartitionerWithSeed(seed int64) *Partitioner {
	return &Partitioner{seed: seed}
}

// Seed returns the seed the partitioner shuffles with
func (p *Partitioner) Seed() int64 {
	return p.seed
}

// Partition shuffles [0, n) and slices it into k contiguous folds.
// Fold sizes are n/k, with the first n%k folds taking one extra sample.
// k > n is tolerated: trailing folds come out empty and contribute no
// evaluation. k < 2 is a caller error.
func (p *Partitioner) Partition(n, k int) (*Assignment, error) {
	if k < 2 {
		return nil, core.NewFoldCountError(k)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: n=%d", core.ErrEmptyDataset, n)
	}

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	rng := rand.New(rand.NewSource(p.seed))
	rng.Shuffle(n, func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})

	base := n / k
	remainder := n % k

	folds := make([]Fold, k)
	offset := 0
	for i := 0; i < k; i++ {
		size := base
		if i < remainder {
			size++
		}
		folds[i] = Fold{Index: i, Start: offset, Size: size}
		offset += size
	}

	return &Assignment{
		N:           n,
		K:           k,
		Seed:        p.seed,
		Permutation: perm,
		Folds:       folds,
	}, nil
}
