package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/domain/entity"
	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/domain/service"
	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/infrastructure/metrics"
)

// Error definitions for prediction usecase
var (
	ErrServiceUnavailable = errors.New("model is not ready")
	ErrInference          = errors.New("inference failed")
	ErrBatchTooLarge      = errors.New("batch exceeds maximum size")
)

// probabilitySumTolerance bounds how far a probability vector may sum from 1
const probabilitySumTolerance = 1e-3

// Options tunes a prediction usecase. The zero value means no cache, no
// batch cap and sequential batch evaluation.
type Options struct {
	Cache            service.PredictionCache
	CacheKeyPrefix   string
	MaxBatchSize     int
	BatchConcurrency int
}

// PredictionUsecase defines the interface for spam classification
type PredictionUsecase interface {
	// Predict validates text and classifies it
	Predict(ctx context.Context, text string) (entity.PredictionResult, error)

	// PredictBatch validates every text, then classifies all of them.
	// The call succeeds or fails as a whole.
	PredictBatch(ctx context.Context, texts []string) ([]entity.BatchPredictionItem, error)

	// PredictMessage classifies an already validated message
	PredictMessage(ctx context.Context, msg entity.Message) (entity.PredictionResult, error)

	// PredictMessages classifies validated messages, preserving order
	PredictMessages(ctx context.Context, msgs []entity.Message) ([]entity.BatchPredictionItem, error)
}

type predictionUsecase struct {
	models service.ModelProvider
	opts   Options
	logger *zap.Logger
}

// NewPredictionUsecase creates a new prediction usecase
func NewPredictionUsecase(models service.ModelProvider, logger *zap.Logger, opts Options) PredictionUsecase {
	if opts.BatchConcurrency < 1 {
		opts.BatchConcurrency = 1
	}
	return &predictionUsecase{
		models: models,
		opts:   opts,
		logger: logger,
	}
}

func (u *predictionUsecase) Predict(ctx context.Context, text string) (entity.PredictionResult, error) {
	msg, err := entity.NewMessage(text)
	if err != nil {
		metrics.PredictionErrorsTotal.WithLabelValues("validation").Inc()
		return entity.PredictionResult{}, err
	}
	return u.PredictMessage(ctx, msg)
}

func (u *predictionUsecase) PredictBatch(ctx context.Context, texts []string) ([]entity.BatchPredictionItem, error) {
	if err := u.checkBatchSize(len(texts)); err != nil {
		return nil, err
	}

	msgs := make([]entity.Message, len(texts))
	for i, text := range texts {
		msg, err := entity.NewMessage(text)
		if err != nil {
			metrics.PredictionErrorsTotal.WithLabelValues("validation").Inc()
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		msgs[i] = msg
	}

	return u.PredictMessages(ctx, msgs)
}

func (u *predictionUsecase) PredictMessage(ctx context.Context, msg entity.Message) (entity.PredictionResult, error) {
	model, err := u.readyModel()
	if err != nil {
		return entity.PredictionResult{}, err
	}
	return u.classify(ctx, model, msg)
}

func (u *predictionUsecase) PredictMessages(ctx context.Context, msgs []entity.Message) ([]entity.BatchPredictionItem, error) {
	if err := u.checkBatchSize(len(msgs)); err != nil {
		return nil, err
	}

	model, err := u.readyModel()
	if err != nil {
		return nil, err
	}

	items := make([]entity.BatchPredictionItem, len(msgs))
	if len(msgs) == 0 {
		return items, nil
	}
	metrics.BatchSize.Observe(float64(len(msgs)))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.opts.BatchConcurrency)
	for i, msg := range msgs {
		i, msg := i, msg
		g.Go(func() error {
			result, err := u.classify(gctx, model, msg)
			if err != nil {
				return fmt.Errorf("message %d: %w", i, err)
			}
			items[i] = entity.NewBatchPredictionItem(msg, result)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return items, nil
}

func (u *predictionUsecase) checkBatchSize(n int) error {
	if u.opts.MaxBatchSize > 0 && n > u.opts.MaxBatchSize {
		metrics.PredictionErrorsTotal.WithLabelValues("batch_too_large").Inc()
		return fmt.Errorf("%w: %d messages (max %d)", ErrBatchTooLarge, n, u.opts.MaxBatchSize)
	}
	return nil
}

func (u *predictionUsecase) readyModel() (service.Model, error) {
	model, ok := u.models.Model()
	if !ok {
		metrics.PredictionErrorsTotal.WithLabelValues("unavailable").Inc()
		return nil, ErrServiceUnavailable
	}
	return model, nil
}

// classify runs the two model contract calls for one message: the label
// comes from the indicator, the confidence from the probability vector.
func (u *predictionUsecase) classify(ctx context.Context, model service.Model, msg entity.Message) (entity.PredictionResult, error) {
	var key string
	if u.opts.Cache != nil {
		key = cacheKey(u.opts.CacheKeyPrefix, model.Info().Fingerprint, msg.Text())
		if result, ok := u.opts.Cache.Get(ctx, key); ok {
			metrics.CacheRequests.WithLabelValues("hit").Inc()
			metrics.PredictionsTotal.WithLabelValues(string(result.Label)).Inc()
			u.logPrediction(result, true)
			return result, nil
		}
		metrics.CacheRequests.WithLabelValues("miss").Inc()
	}

	timer := metrics.StartInference()
	indicator, probs, err := u.evaluate(ctx, model, msg)
	timer.Stop()
	if err != nil {
		return entity.PredictionResult{}, err
	}

	confidence, err := confidenceOf(probs)
	if err != nil {
		return entity.PredictionResult{}, u.inferenceError(model, msg, "confidence", err)
	}

	u.checkConsistency(model, indicator, probs)

	result := entity.PredictionResult{
		Label:      entity.LabelFromIndicator(indicator),
		Confidence: confidence,
	}
	metrics.PredictionsTotal.WithLabelValues(string(result.Label)).Inc()
	u.logPrediction(result, false)

	if u.opts.Cache != nil {
		u.opts.Cache.Set(ctx, key, result)
	}

	return result, nil
}

// evaluate obtains the indicator and the probability vector, in one call when
// the model supports it.
func (u *predictionUsecase) evaluate(ctx context.Context, model service.Model, msg entity.Message) (int, []float64, error) {
	if evaluator, ok := model.(service.Evaluator); ok {
		indicator, probs, err := evaluator.Evaluate(ctx, msg.Text())
		if err != nil {
			return 0, nil, u.inferenceError(model, msg, "evaluate", err)
		}
		return indicator, probs, nil
	}

	indicator, err := model.PredictLabel(ctx, msg.Text())
	if err != nil {
		return 0, nil, u.inferenceError(model, msg, "predict_label", err)
	}
	probs, err := model.PredictProbabilities(ctx, msg.Text())
	if err != nil {
		return 0, nil, u.inferenceError(model, msg, "predict_probabilities", err)
	}
	return indicator, probs, nil
}

// confidenceOf returns the largest class probability after checking the
// vector honours the model contract.
func confidenceOf(probs []float64) (float64, error) {
	if len(probs) == 0 {
		return 0, errors.New("empty probability vector")
	}
	var sum float64
	for i, p := range probs {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return 0, fmt.Errorf("probability %d out of range: %v", i, p)
		}
		sum += p
	}
	if math.Abs(sum-1) > probabilitySumTolerance {
		return 0, fmt.Errorf("probabilities sum to %v", sum)
	}
	return lo.Max(probs), nil
}

// checkConsistency flags predictions whose indicator is not the most
// probable class. The result is returned unchanged.
func (u *predictionUsecase) checkConsistency(model service.Model, indicator int, probs []float64) {
	best := 0
	for i := range probs {
		if probs[i] > probs[best] {
			best = i
		}
	}

	expected := best
	if classes := model.Info().Classes; len(classes) == len(probs) {
		expected = classes[best]
	}
	if expected == indicator {
		return
	}

	metrics.LabelConfidenceDivergence.Inc()
	u.logger.Warn("Label indicator disagrees with most probable class",
		zap.Int("indicator", indicator),
		zap.Int("argmax_class", expected),
		zap.Float64s("probabilities", probs),
	)
}

func (u *predictionUsecase) inferenceError(model service.Model, msg entity.Message, stage string, err error) error {
	metrics.PredictionErrorsTotal.WithLabelValues("inference").Inc()
	info := model.Info()
	u.logger.Error("Inference failed",
		zap.String("stage", stage),
		zap.String("model", info.Name),
		zap.String("backend", info.Backend),
		zap.Int("text_length", msg.Len()),
		zap.Error(err),
	)
	return fmt.Errorf("%w: %s: %w", ErrInference, stage, err)
}

func (u *predictionUsecase) logPrediction(result entity.PredictionResult, cached bool) {
	u.logger.Info("Prediction",
		zap.String("label", string(result.Label)),
		zap.Float64("confidence", result.Confidence),
		zap.Bool("cached", cached),
	)
}

func cacheKey(prefix, fingerprint, text string) string {
	return fmt.Sprintf("%s:%s:%016x", prefix, fingerprint, xxhash.Sum64String(text))
}
