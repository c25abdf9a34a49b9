package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cespare/xxhash/v2"

	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/domain/service"
)

// BackendRemote names the sidecar-backed model
const BackendRemote = "remote"

// RemoteModel adapts InferenceClient to the Model contract
type RemoteModel struct {
	client *InferenceClient
	info   service.ModelInfo
}

// PredictLabel returns the sidecar's class indicator for text
func (m *RemoteModel) PredictLabel(ctx context.Context, text string) (int, error) {
	resp, err := m.client.Predict(ctx, text)
	if err != nil {
		return 0, err
	}
	return resp.Label, nil
}

// PredictProbabilities returns the sidecar's class probabilities for text
func (m *RemoteModel) PredictProbabilities(ctx context.Context, text string) ([]float64, error) {
	resp, err := m.client.Predict(ctx, text)
	if err != nil {
		return nil, err
	}
	return resp.Probabilities, nil
}

// Evaluate returns the indicator and probabilities of a single sidecar call
func (m *RemoteModel) Evaluate(ctx context.Context, text string) (int, []float64, error) {
	resp, err := m.client.Predict(ctx, text)
	if err != nil {
		return 0, nil, err
	}
	return resp.Label, resp.Probabilities, nil
}

// Info returns metadata reported by the sidecar at load time
func (m *RemoteModel) Info() service.ModelInfo {
	return m.info
}

// Close releases the underlying HTTP connections
func (m *RemoteModel) Close() error {
	return m.client.Close()
}

// RemoteLoader "loads" a model by confirming the sidecar serves one
type RemoteLoader struct {
	client *InferenceClient
	source string
}

// NewRemoteLoader creates a loader for the sidecar at client's base URL
func NewRemoteLoader(client *InferenceClient) *RemoteLoader {
	return &RemoteLoader{client: client, source: client.baseURL}
}

// Load probes the sidecar. An unreachable sidecar or missing health endpoint
// is NotFound; an unreadable answer or an unloaded model is Deserialize.
func (l *RemoteLoader) Load(ctx context.Context) (service.Model, error) {
	health, err := l.client.Health(ctx)
	if err != nil {
		var decodeErr *DecodeError
		var statusErr *StatusError
		switch {
		case errors.As(err, &decodeErr):
			return nil, service.NewLoadError(service.LoadErrorDeserialize, l.source, err)
		case errors.As(err, &statusErr) && statusErr.StatusCode != http.StatusNotFound:
			return nil, service.NewLoadError(service.LoadErrorDeserialize, l.source, err)
		default:
			return nil, service.NewLoadError(service.LoadErrorNotFound, l.source, err)
		}
	}

	if !health.ModelLoaded {
		return nil, service.NewLoadError(service.LoadErrorDeserialize, l.source,
			fmt.Errorf("sidecar reports model not loaded (status %q)", health.Status))
	}

	classes := health.Classes
	if len(classes) == 0 {
		classes = []int{0, 1}
	}

	return &RemoteModel{
		client: l.client,
		info: service.ModelInfo{
			Name:        health.ModelName,
			Version:     health.ModelVersion,
			Backend:     BackendRemote,
			Classes:     classes,
			Fingerprint: fmt.Sprintf("%016x", xxhash.Sum64String(l.source+"|"+health.ModelName+"|"+health.ModelVersion)),
		},
	}, nil
}
