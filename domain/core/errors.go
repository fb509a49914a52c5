package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrReportNotFound = fmt.Errorf("%w: report", ErrNotFound)

	// Validation errors
	ErrInvalidFoldCount  = errors.New("invalid fold count")
	ErrDimensionMismatch = errors.New("feature row count does not match label count")
	ErrEmptyDataset      = errors.New("dataset contains no samples")
	ErrRaggedFeatures    = errors.New("feature rows have unequal lengths")
)

// Error constructors with context
func NewFoldCountError(k int) error {
	return fmt.Errorf("%w: k=%d (need k >= 2)", ErrInvalidFoldCount, k)
}

func NewDimensionError(rows, labels int) error {
	return fmt.Errorf("%w: %d rows vs %d labels", ErrDimensionMismatch, rows, labels)
}

func NewFoldStageError(fold int, stage string, err error) error {
	return fmt.Errorf("fold %d: %s: %w", fold, stage, err)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidFoldCount) ||
		errors.Is(err, ErrDimensionMismatch) ||
		errors.Is(err, ErrEmptyDataset) ||
		errors.Is(err, ErrRaggedFeatures)
}
