package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/heptiolabs/healthcheck"

	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/domain/entity"
	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/domain/service"
)

// ServiceName is reported by the root endpoint
const ServiceName = "SMS Spam Detection API"

// maxGoroutines fails the liveness probe when exceeded
const maxGoroutines = 10000

// ModelStatus reports the model lifecycle
type ModelStatus interface {
	State() entity.ModelState
	Reason() string
	Model() (service.Model, bool)
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	status ModelStatus
	probes healthcheck.Handler
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(status ModelStatus) *HealthHandler {
	probes := healthcheck.NewHandler()
	probes.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(maxGoroutines))
	probes.AddReadinessCheck("model", func() error {
		if _, ok := status.Model(); !ok {
			return modelUnavailable(status.State())
		}
		return nil
	})

	return &HealthHandler{
		status: status,
		probes: probes,
	}
}

func modelUnavailable(state entity.ModelState) error {
	if state == entity.ModelStateReady {
		return errors.New("model released")
	}
	return fmt.Errorf("model %s", state)
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Ready  bool   `json:"ready"`
	State  string `json:"state"`
	Reason string `json:"reason,omitempty"`
}

// ServiceInfo represents the root endpoint response
type ServiceInfo struct {
	Name   string             `json:"name"`
	Status string             `json:"status"`
	Model  string             `json:"model"`
	Info   *service.ModelInfo `json:"model_info,omitempty"`
}

// Root handles GET /
func (h *HealthHandler) Root(c *gin.Context) {
	info := ServiceInfo{
		Name:   ServiceName,
		Status: "running",
		Model:  "not loaded",
	}
	if model, ok := h.status.Model(); ok {
		modelInfo := model.Info()
		info.Model = "loaded"
		info.Info = &modelInfo
	}
	c.JSON(http.StatusOK, info)
}

// Health handles GET /health. It always answers 200; readiness is in the body.
func (h *HealthHandler) Health(c *gin.Context) {
	state := h.status.State()
	_, ready := h.status.Model()
	c.JSON(http.StatusOK, HealthStatus{
		Ready:  ready,
		State:  state.String(),
		Reason: h.status.Reason(),
	})
}

// Live handles GET /live
func (h *HealthHandler) Live(c *gin.Context) {
	h.probes.LiveEndpoint(c.Writer, c.Request)
}

// Ready handles GET /ready. It answers 503 until the model is Ready.
func (h *HealthHandler) Ready(c *gin.Context) {
	h.probes.ReadyEndpoint(c.Writer, c.Request)
}
