package models

import (
	"fmt"

	"crossval/ports"

	"gonum.org/v1/gonum/mat"
)

// LeastSquares is an ordinary-least-squares regressor with an intercept
// term, solved via QR factorization.
type LeastSquares struct {
	coefficients []float64 // intercept first, then one weight per feature
	fitted       bool
}

// NewLeastSquares creates an untrained OLS regressor
func NewLeastSquares() *LeastSquares {
	return &LeastSquares{}
}

// LeastSquaresFactory returns a factory producing fresh OLS regressors
func LeastSquaresFactory() ports.ModelFactory {
	return ports.FactoryFunc{
		ModelName: "least_squares",
		Build:     func() ports.Model { return NewLeastSquares() },
	}
}

// Fit solves min ||Xw - y|| over the training data, X augmented with an
// intercept column
func (ls *LeastSquares) Fit(features [][]float64, labels []float64) error {
	n := len(features)
	if n == 0 {
		return fmt.Errorf("least squares: no training samples")
	}
	if n != len(labels) {
		return fmt.Errorf("least squares: %d rows vs %d labels", n, len(labels))
	}
	width := len(features[0])
	if n < width+1 {
		return fmt.Errorf("least squares: need at least %d samples for %d features, got %d", width+1, width, n)
	}

	design := mat.NewDense(n, width+1, nil)
	response := mat.NewVecDense(n, nil)
	for i, row := range features {
		design.Set(i, 0, 1) // intercept
		for j, v := range row {
			design.Set(i, j+1, v)
		}
		response.SetVec(i, labels[i])
	}

	var qr mat.QR
	qr.Factorize(design)

	solution := mat.NewVecDense(width+1, nil)
	if err := qr.SolveVecTo(solution, false, response); err != nil {
		return fmt.Errorf("least squares: solve failed: %w", err)
	}

	ls.coefficients = make([]float64, width+1)
	for j := range ls.coefficients {
		ls.coefficients[j] = solution.AtVec(j)
	}
	ls.fitted = true
	return nil
}

// Predict applies the fitted coefficients to each row
func (ls *LeastSquares) Predict(features [][]float64) ([]float64, error) {
	if !ls.fitted {
		return nil, fmt.Errorf("least squares: predict before fit")
	}
	predictions := make([]float64, len(features))
	for i, row := range features {
		if len(row) != len(ls.coefficients)-1 {
			return nil, fmt.Errorf("least squares: row %d has %d features, model has %d", i, len(row), len(ls.coefficients)-1)
		}
		y := ls.coefficients[0]
		for j, v := range row {
			y += ls.coefficients[j+1] * v
		}
		predictions[i] = y
	}
	return predictions, nil
}
