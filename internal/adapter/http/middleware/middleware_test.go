package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/adapter/http/handler"
	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/infrastructure/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(router *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(`{"text":"hello"}`))
	for k, v := range header {
		req.Header[http.CanonicalHeaderKey(k)] = v
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.POST("/predict", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(handler.RequestIDKey))
	})

	t.Run("generates an ID when absent", func(t *testing.T) {
		w := serve(router, "POST", "/predict", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, w.Body.String(), 36)
		assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
	})

	t.Run("propagates the caller's ID", func(t *testing.T) {
		w := serve(router, "POST", "/predict", http.Header{RequestIDHeader: {"sms-gateway-42"}})

		assert.Equal(t, "sms-gateway-42", w.Body.String())
		assert.Equal(t, "sms-gateway-42", w.Header().Get(RequestIDHeader))
	})

	t.Run("IDs differ between requests", func(t *testing.T) {
		first := serve(router, "POST", "/predict", nil).Body.String()
		second := serve(router, "POST", "/predict", nil).Body.String()

		assert.NotEqual(t, first, second)
	})
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		level   zapcore.Level
		message string
	}{
		{name: "success is info", status: http.StatusOK, level: zapcore.InfoLevel, message: "Request"},
		{name: "validation failure is warn", status: http.StatusUnprocessableEntity, level: zapcore.WarnLevel, message: "Request rejected"},
		{name: "not ready is error", status: http.StatusServiceUnavailable, level: zapcore.ErrorLevel, message: "Request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			router := gin.New()
			router.Use(RequestID())
			router.Use(Logger(zap.New(core)))
			router.POST("/predict", func(c *gin.Context) {
				c.Status(tt.status)
			})

			w := serve(router, "POST", "/predict", http.Header{RequestIDHeader: {"req-7"}})

			assert.Equal(t, tt.status, w.Code)
			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.level, entry.Level)
			assert.Equal(t, tt.message, entry.Message)
			fields := entry.ContextMap()
			assert.Equal(t, "POST", fields["method"])
			assert.Equal(t, "/predict", fields["path"])
			assert.Equal(t, int64(tt.status), fields["status"])
			assert.Equal(t, "req-7", fields["request_id"])
		})
	}
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	router := gin.New()
	router.Use(RequestID())
	router.Use(Recovery(zap.New(core)))
	router.POST("/predict", func(c *gin.Context) {
		panic("model exploded")
	})
	router.POST("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	t.Run("recovers from panic with generic body", func(t *testing.T) {
		w := serve(router, "POST", "/predict", http.Header{RequestIDHeader: {"req-9"}})

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var body struct {
			Success bool `json:"success"`
			Error   struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
			Meta struct {
				Timestamp string `json:"timestamp"`
				RequestID string `json:"request_id"`
			} `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
		assert.Equal(t, "req-9", body.Meta.RequestID)
		assert.NotEmpty(t, body.Meta.Timestamp)
		assert.Equal(t, "internal server error", body.Error.Message)
		assert.NotContains(t, w.Body.String(), "model exploded")

		require.Equal(t, 1, logs.FilterMessage("Panic recovered").Len())
	})

	t.Run("passes through when no panic", func(t *testing.T) {
		w := serve(router, "POST", "/ok", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(CORS())
	router.POST("/predict", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	t.Run("sets CORS headers", func(t *testing.T) {
		w := serve(router, "POST", "/predict", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
		assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Retry-After")
	})

	t.Run("answers preflight without reaching the handler", func(t *testing.T) {
		w := serve(router, "OPTIONS", "/predict", nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Body.String())
	})
}

func TestMetrics(t *testing.T) {
	router := gin.New()
	router.Use(Metrics())
	router.POST("/batch-predict", func(c *gin.Context) {
		c.Status(http.StatusUnprocessableEntity)
	})

	t.Run("observes matched route", func(t *testing.T) {
		w := serve(router, "POST", "/batch-predict", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		observed := metrics.HTTPRequestDuration.WithLabelValues("POST", "/batch-predict", "422")
		assert.Equal(t, 1, testutil.CollectAndCount(observed.(prometheus.Histogram)))
	})

	t.Run("labels unknown paths as unmatched", func(t *testing.T) {
		w := serve(router, "GET", "/nope", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		observed := metrics.HTTPRequestDuration.WithLabelValues("GET", "unmatched", "404")
		assert.Equal(t, 1, testutil.CollectAndCount(observed.(prometheus.Histogram)))
	})
}
