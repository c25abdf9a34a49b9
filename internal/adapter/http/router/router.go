package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/adapter/http/handler"
	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/adapter/http/middleware"
	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/usecase"
)

// Options configures the router
type Options struct {
	// RetryAfter is advertised on 503 responses while the model is not ready
	RetryAfter time.Duration
}

// Setup creates and configures the Gin router
func Setup(status handler.ModelStatus, predictionUC usecase.PredictionUsecase, logger *zap.Logger, opts Options) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS())

	// Health endpoints
	healthHandler := handler.NewHealthHandler(status)
	router.GET("/", healthHandler.Root)
	router.GET("/health", healthHandler.Health)
	router.GET("/live", healthHandler.Live)
	router.GET("/ready", healthHandler.Ready)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	predictionHandler := handler.NewPredictionHandler(predictionUC, logger, opts.RetryAfter)

	router.POST("/predict", predictionHandler.Predict)
	router.POST("/batch-predict", predictionHandler.BatchPredict)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		predict := v1.Group("/predict")
		{
			predict.POST("", predictionHandler.Predict)
			predict.POST("/batch", predictionHandler.BatchPredict)
		}
	}

	return router
}
