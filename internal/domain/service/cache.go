package service

import (
	"context"

	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/domain/entity"
)

// PredictionCache stores results for texts already classified by the current model.
// A failed lookup is reported as a miss; implementations log their own errors.
type PredictionCache interface {
	// Get returns the cached result for key
	Get(ctx context.Context, key string) (entity.PredictionResult, bool)

	// Set stores result under key
	Set(ctx context.Context, key string, result entity.PredictionResult)
}

// ModelProvider gates access to the loaded model
type ModelProvider interface {
	// IsReady reports whether the model finished loading
	IsReady() bool

	// Model returns the loaded model, or false when not ready
	Model() (Model, bool)
}
