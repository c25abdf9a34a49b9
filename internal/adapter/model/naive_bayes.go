package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/samber/lo"

	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/domain/service"
)

// BackendLocal names the in-process Naive Bayes backend
const BackendLocal = "local"

// tokenPattern matches runs of two or more word characters, as in the
// training vectorizer.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// artifact is the serialized form written by the training pipeline
type artifact struct {
	Name           string               `json:"name"`
	Version        string               `json:"version"`
	Classes        []int                `json:"classes"`
	ClassLogPrior  []float64            `json:"class_log_prior"`
	FeatureLogProb map[string][]float64 `json:"feature_log_prob"`
	Lowercase      *bool                `json:"lowercase,omitempty"`
}

// NaiveBayes is a multinomial Naive Bayes text classifier.
// It is immutable after decoding and safe for concurrent use.
type NaiveBayes struct {
	info      service.ModelInfo
	classes   []int
	prior     []float64
	features  map[string][]float64
	lowercase bool
}

// Decode parses and validates a model artifact. source names the artifact in errors.
func Decode(data []byte, source string) (*NaiveBayes, error) {
	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, service.NewLoadError(service.LoadErrorDeserialize, source, err)
	}
	if err := a.validate(); err != nil {
		return nil, service.NewLoadError(service.LoadErrorDeserialize, source, err)
	}

	lowercase := true
	if a.Lowercase != nil {
		lowercase = *a.Lowercase
	}

	return &NaiveBayes{
		info: service.ModelInfo{
			Name:        a.Name,
			Version:     a.Version,
			Backend:     BackendLocal,
			Classes:     append([]int(nil), a.Classes...),
			Fingerprint: fmt.Sprintf("%016x", xxhash.Sum64(data)),
		},
		classes:   a.Classes,
		prior:     a.ClassLogPrior,
		features:  a.FeatureLogProb,
		lowercase: lowercase,
	}, nil
}

func (a *artifact) validate() error {
	n := len(a.Classes)
	if n < 2 {
		return fmt.Errorf("need at least 2 classes, got %d", n)
	}
	if len(lo.Uniq(a.Classes)) != n {
		return errors.New("duplicate class values")
	}
	if len(a.ClassLogPrior) != n {
		return fmt.Errorf("class_log_prior has %d entries, want %d", len(a.ClassLogPrior), n)
	}
	if !allFinite(a.ClassLogPrior) {
		return errors.New("class_log_prior contains non-finite values")
	}
	if len(a.FeatureLogProb) == 0 {
		return errors.New("empty vocabulary")
	}
	for token, logProbs := range a.FeatureLogProb {
		if len(logProbs) != n {
			return fmt.Errorf("feature %q has %d entries, want %d", token, len(logProbs), n)
		}
		if !allFinite(logProbs) {
			return fmt.Errorf("feature %q contains non-finite values", token)
		}
	}
	return nil
}

func allFinite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// PredictLabel returns the class value with the highest joint likelihood
func (m *NaiveBayes) PredictLabel(ctx context.Context, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return m.classes[argmax(m.jointLogLikelihood(text))], nil
}

// PredictProbabilities returns the posterior probability of each class, in
// the artifact's class order.
func (m *NaiveBayes) PredictProbabilities(ctx context.Context, text string) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return softmax(m.jointLogLikelihood(text)), nil
}

// Info returns artifact metadata
func (m *NaiveBayes) Info() service.ModelInfo {
	return m.info
}

func (m *NaiveBayes) tokenize(text string) []string {
	if m.lowercase {
		text = strings.ToLower(text)
	}
	return tokenPattern.FindAllString(text, -1)
}

// jointLogLikelihood sums the log prior and the log probability of every
// in-vocabulary token occurrence. Unknown tokens are ignored.
func (m *NaiveBayes) jointLogLikelihood(text string) []float64 {
	jll := append([]float64(nil), m.prior...)
	for _, token := range m.tokenize(text) {
		logProbs, ok := m.features[token]
		if !ok {
			continue
		}
		for i := range jll {
			jll[i] += logProbs[i]
		}
	}
	return jll
}

// argmax returns the first index of the largest value
func argmax(values []float64) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}

func softmax(logits []float64) []float64 {
	peak := lo.Max(logits)
	probs := make([]float64, len(logits))
	var sum float64
	for i, l := range logits {
		probs[i] = math.Exp(l - peak)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}
