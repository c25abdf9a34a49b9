package lifecycle

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/domain/entity"
	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/domain/service"
	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/infrastructure/metrics"
)

// Controller owns the model handle and its load state.
//
// The model reference is published before the state turns Ready and is
// cleared once by Shutdown. Readers load it atomically, so inference never
// takes a lock.
type Controller struct {
	loader service.ModelLoader
	logger *zap.Logger

	once   sync.Once
	state  atomic.Int32
	reason atomic.String
	model  atomic.Pointer[loadedModel]
	err    error
}

type loadedModel struct {
	service.Model
}

// NewController creates a controller in the Unloaded state
func NewController(loader service.ModelLoader, logger *zap.Logger) *Controller {
	c := &Controller{
		loader: loader,
		logger: logger,
	}
	c.state.Store(int32(entity.ModelStateUnloaded))
	metrics.ModelState.Set(float64(entity.ModelStateUnloaded))
	return c
}

// Startup loads the model exactly once. A load failure leaves the controller
// Failed and is returned to the caller, which must not start serving.
// Later calls return the outcome of the first one.
func (c *Controller) Startup(ctx context.Context) error {
	c.once.Do(func() {
		c.transition(entity.ModelStateLoading)
		start := time.Now()

		model, err := c.loader.Load(ctx)
		if err != nil {
			c.err = fmt.Errorf("model startup failed: %w", err)
			c.reason.Store(err.Error())
			c.transition(entity.ModelStateFailed)
			c.logger.Error("Failed to load model", zap.Error(err))
			return
		}

		c.model.Store(&loadedModel{Model: model})
		c.transition(entity.ModelStateReady)

		info := model.Info()
		c.logger.Info("Model loaded",
			zap.String("name", info.Name),
			zap.String("version", info.Version),
			zap.String("backend", info.Backend),
			zap.String("fingerprint", info.Fingerprint),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
	return c.err
}

func (c *Controller) transition(next entity.ModelState) {
	current := c.State()
	if !current.CanTransitionTo(next) {
		// unreachable while Startup runs under once
		panic(fmt.Sprintf("invalid model state transition %s -> %s", current, next))
	}
	c.state.Store(int32(next))
	metrics.ModelState.Set(float64(next))
}

// State returns the current lifecycle state
func (c *Controller) State() entity.ModelState {
	return entity.ModelState(c.state.Load())
}

// Reason returns the load failure message, empty unless Failed
func (c *Controller) Reason() string {
	return c.reason.Load()
}

// IsReady reports whether inference may proceed
func (c *Controller) IsReady() bool {
	_, ok := c.Model()
	return ok
}

// Model returns the loaded model when Ready and not yet released
func (c *Controller) Model() (service.Model, bool) {
	if c.State() != entity.ModelStateReady {
		return nil, false
	}
	held := c.model.Load()
	if held == nil {
		return nil, false
	}
	return held.Model, true
}

// Shutdown drops the model reference and releases its resources. It does not
// change the state and never blocks on in-flight predictions: calls that
// already hold the model finish against it, new calls see no model.
func (c *Controller) Shutdown() {
	held := c.model.Swap(nil)
	if held == nil {
		return
	}
	if closer, isCloser := held.Model.(io.Closer); isCloser {
		if err := closer.Close(); err != nil {
			c.logger.Warn("Failed to release model", zap.Error(err))
			return
		}
	}
	c.logger.Info("Model released")
}
