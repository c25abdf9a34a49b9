package service

import (
	"context"
	"errors"
	"fmt"
)

// ModelInfo describes a loaded model artifact
type ModelInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Backend     string `json:"backend"`
	Classes     []int  `json:"classes"`
	Fingerprint string `json:"fingerprint"`
}

// Model is the inference contract of the external classifier.
// Implementations must be safe for concurrent use once loaded.
type Model interface {
	// PredictLabel returns the binary class indicator for text (1 = spam)
	PredictLabel(ctx context.Context, text string) (int, error)

	// PredictProbabilities returns one probability per class, summing to 1
	PredictProbabilities(ctx context.Context, text string) ([]float64, error)

	// Info returns artifact metadata
	Info() ModelInfo
}

// Evaluator is implemented by models that answer both contract calls from
// one evaluation. Callers should prefer it when present so the indicator and
// the probabilities describe the same inference.
type Evaluator interface {
	Evaluate(ctx context.Context, text string) (indicator int, probabilities []float64, err error)
}

// ModelLoader produces a ready Model. Failures are reported as *LoadError.
type ModelLoader interface {
	Load(ctx context.Context) (Model, error)
}

// LoadErrorKind classifies why a model artifact could not be loaded
type LoadErrorKind string

const (
	LoadErrorNotFound    LoadErrorKind = "not_found"
	LoadErrorDeserialize LoadErrorKind = "deserialize"
)

// Load sentinels. LoadError matches one of these with errors.Is.
var (
	ErrModelNotFound    = errors.New("model artifact not found")
	ErrModelDeserialize = errors.New("model artifact could not be deserialized")
)

// LoadError is a fatal startup failure of the model handle
type LoadError struct {
	Kind   LoadErrorKind
	Source string
	Err    error
}

// NewLoadError creates a LoadError for source
func NewLoadError(kind LoadErrorKind, source string, err error) *LoadError {
	return &LoadError{Kind: kind, Source: source, Err: err}
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("load model %s: %s", e.Source, e.Kind)
	}
	return fmt.Sprintf("load model %s: %s: %v", e.Source, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the kind sentinels
func (e *LoadError) Is(target error) bool {
	switch target {
	case ErrModelNotFound:
		return e.Kind == LoadErrorNotFound
	case ErrModelDeserialize:
		return e.Kind == LoadErrorDeserialize
	default:
		return false
	}
}
