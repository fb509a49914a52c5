package ports

// Model is the contract every trainable estimator must satisfy. The
// runner never inspects a model beyond these two operations: Fit mutates
// internal state from training data, Predict is a pure function of the
// fitted state and its input.
type Model interface {
	Fit(features [][]float64, labels []float64) error
	Predict(features [][]float64) ([]float64, error)
}

// ModelFactory produces a fresh, untrained model instance. One instance
// is created per fold so no fitted state leaks between folds.
type ModelFactory interface {
	New() Model
	Name() string
}

// Scorer maps true and predicted labels to a single scalar
type Scorer interface {
	Score(truth, predicted []float64) (float64, error)
	Name() string
}

// FactoryFunc adapts a plain constructor into a ModelFactory
type FactoryFunc struct {
	ModelName string
	Build     func() Model
}

func (f FactoryFunc) New() Model   { return f.Build() }
func (f FactoryFunc) Name() string { return f.ModelName }
