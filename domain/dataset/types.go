package dataset

import (
	"crossval/domain/core"
)

// Dataset holds an ordered collection of samples: one feature row and one
// label per sample. Rows and labels are aligned by position.
type Dataset struct {
	Name     string      `json:"name,omitempty"`
	Features [][]float64 `json:"features"`
	Labels   []float64   `json:"labels"`
}

// New builds a dataset from aligned feature rows and labels
func New(features [][]float64, labels []float64) Dataset {
	return Dataset{Features: features, Labels: labels}
}

// Len returns the number of samples
func (d Dataset) Len() int {
	return len(d.Features)
}

// Width returns the feature vector length, 0 for an empty dataset
func (d Dataset) Width() int {
	if len(d.Features) == 0 {
		return 0
	}
	return len(d.Features[0])
}

// Validate checks the invariants every dataset must satisfy before any
// fold work begins: non-empty, aligned rows/labels, rectangular features.
func (d Dataset) Validate() error {
	if len(d.Features) == 0 {
		return core.ErrEmptyDataset
	}
	if len(d.Features) != len(d.Labels) {
		return core.NewDimensionError(len(d.Features), len(d.Labels))
	}
	width := len(d.Features[0])
	for _, row := range d.Features {
		if len(row) != width {
			return core.ErrRaggedFeatures
		}
	}
	return nil
}

// Subset gathers the samples at the given indices, in the order the
// indices are listed. Rows are shared with the parent dataset, not copied.
func (d Dataset) Subset(indices []int) ([][]float64, []float64) {
	features := make([][]float64, len(indices))
	labels := make([]float64, len(indices))
	for i, idx := range indices {
		features[i] = d.Features[idx]
		labels[i] = d.Labels[idx]
	}
	return features, labels
}
