package models

import (
	"fmt"

	"crossval/ports"
)

// MajorityClassifier predicts the most frequent training label for every
// input. It is the baseline any real classifier has to beat.
type MajorityClassifier struct {
	majority float64
	fitted   bool
}

// NewMajorityClassifier creates an untrained majority-class classifier
func NewMajorityClassifier() *MajorityClassifier {
	return &MajorityClassifier{}
}

// MajorityFactory returns a factory producing fresh majority classifiers
func MajorityFactory() ports.ModelFactory {
	return ports.FactoryFunc{
		ModelName: "majority_class",
		Build:     func() ports.Model { return NewMajorityClassifier() },
	}
}

// Fit records the most frequent label; ties break toward the label seen
// first in the training data
func (m *MajorityClassifier) Fit(features [][]float64, labels []float64) error {
	if len(labels) == 0 {
		return fmt.Errorf("majority classifier: no training labels")
	}

	counts := make(map[float64]int, 4)
	order := make([]float64, 0, 4)
	for _, label := range labels {
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}

	best := order[0]
	for _, label := range order {
		if counts[label] > counts[best] {
			best = label
		}
	}

	m.majority = best
	m.fitted = true
	return nil
}

// Predict returns the majority label for every row
func (m *MajorityClassifier) Predict(features [][]float64) ([]float64, error) {
	if !m.fitted {
		return nil, fmt.Errorf("majority classifier: predict before fit")
	}
	predictions := make([]float64, len(features))
	for i := range predictions {
		predictions[i] = m.majority
	}
	return predictions, nil
}
