package scoring

import (
	"fmt"
	"math"

	"crossval/ports"
)

// Accuracy scores classification output as the fraction of exact label
// matches
type Accuracy struct{}

func (Accuracy) Name() string { return "accuracy" }

func (Accuracy) Score(truth, predicted []float64) (float64, error) {
	if err := checkLengths(truth, predicted); err != nil {
		return 0, err
	}
	correct := 0
	for i := range truth {
		if truth[i] == predicted[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(truth)), nil
}

// MeanSquaredError scores regression output as the mean of squared
// residuals
type MeanSquaredError struct{}

func (MeanSquaredError) Name() string { return "mse" }

func (MeanSquaredError) Score(truth, predicted []float64) (float64, error) {
	if err := checkLengths(truth, predicted); err != nil {
		return 0, err
	}
	sum := 0.0
	for i := range truth {
		diff := truth[i] - predicted[i]
		sum += diff * diff
	}
	return sum / float64(len(truth)), nil
}

// RootMeanSquaredError is the square root of MSE, in label units
type RootMeanSquaredError struct{}

func (RootMeanSquaredError) Name() string { return "rmse" }

func (RootMeanSquaredError) Score(truth, predicted []float64) (float64, error) {
	mse, err := MeanSquaredError{}.Score(truth, predicted)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// RSquared scores regression output as the coefficient of determination.
// A constant-truth test fold has no variance to explain and scores 0.
type RSquared struct{}

func (RSquared) Name() string { return "r2" }

func (RSquared) Score(truth, predicted []float64) (float64, error) {
	if err := checkLengths(truth, predicted); err != nil {
		return 0, err
	}
	mean := 0.0
	for _, v := range truth {
		mean += v
	}
	mean /= float64(len(truth))

	ssRes, ssTot := 0.0, 0.0
	for i := range truth {
		res := truth[i] - predicted[i]
		ssRes += res * res
		dev := truth[i] - mean
		ssTot += dev * dev
	}
	if ssTot == 0 {
		return 0, nil
	}
	return 1 - ssRes/ssTot, nil
}

// ByName resolves a metric name to a scorer
func ByName(name string) (ports.Scorer, error) {
	switch name {
	case "accuracy":
		return Accuracy{}, nil
	case "mse":
		return MeanSquaredError{}, nil
	case "rmse":
		return RootMeanSquaredError{}, nil
	case "r2":
		return RSquared{}, nil
	default:
		return nil, fmt.Errorf("unknown metric %q", name)
	}
}

func checkLengths(truth, predicted []float64) error {
	if len(truth) != len(predicted) {
		return fmt.Errorf("truth and predictions must have same length: %d vs %d", len(truth), len(predicted))
	}
	if len(truth) == 0 {
		return fmt.Errorf("cannot score an empty fold")
	}
	return nil
}
