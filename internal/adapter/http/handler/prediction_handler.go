package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/domain/entity"
	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/usecase"
)

// PredictResponse is the data of a single prediction
type PredictResponse struct {
	Result     entity.Label `json:"result"`
	Confidence float64      `json:"confidence"`
}

// BatchPredictResponse is the data of a batch prediction
type BatchPredictResponse struct {
	Predictions []entity.BatchPredictionItem `json:"predictions"`
}

// PredictionHandler handles classification requests
type PredictionHandler struct {
	predictionUC usecase.PredictionUsecase
	logger       *zap.Logger
	retryAfter   time.Duration
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(predictionUC usecase.PredictionUsecase, logger *zap.Logger, retryAfter time.Duration) *PredictionHandler {
	return &PredictionHandler{
		predictionUC: predictionUC,
		logger:       logger,
		retryAfter:   retryAfter,
	}
}

// Predict handles POST /predict
func (h *PredictionHandler) Predict(c *gin.Context) {
	text, ok := bindPredictRequest(c)
	if !ok {
		return
	}

	result, err := h.predictionUC.Predict(c.Request.Context(), text)
	if err != nil {
		h.handleError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, PredictResponse{
		Result:     result.Label,
		Confidence: result.Confidence,
	})
}

// BatchPredict handles POST /batch-predict
func (h *PredictionHandler) BatchPredict(c *gin.Context) {
	texts, ok := bindBatchRequest(c)
	if !ok {
		return
	}

	items, err := h.predictionUC.PredictBatch(c.Request.Context(), texts)
	if err != nil {
		h.handleError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, BatchPredictResponse{Predictions: items})
}

func (h *PredictionHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrInference):
		h.logger.Error("Prediction request failed",
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	case MapUsecaseError(err).Code == CodeInternal:
		h.logger.Error("Unexpected prediction error",
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.Error(err),
		)
	}
	HandleUsecaseError(c, err, h.retryAfter)
}
