package entity

import "unicode/utf8"

// Label is the public classification outcome
type Label string

const (
	LabelSpam Label = "Spam"
	LabelHam  Label = "Ham"
)

// SpamIndicator is the raw model output that maps to LabelSpam.
const SpamIndicator = 1

// LabelFromIndicator maps the model's binary indicator to a Label.
// Any value other than SpamIndicator is Ham.
func LabelFromIndicator(indicator int) Label {
	if indicator == SpamIndicator {
		return LabelSpam
	}
	return LabelHam
}

// PredictionResult is the outcome of classifying one message.
// Confidence is the largest entry of the model's class-probability vector.
type PredictionResult struct {
	Label      Label   `json:"result"`
	Confidence float64 `json:"confidence"`
}

// IsSpam reports whether the message was classified as spam
func (r PredictionResult) IsSpam() bool {
	return r.Label == LabelSpam
}

// BatchPredictionItem is one element of a batch response, in input order.
type BatchPredictionItem struct {
	EchoedText string  `json:"text"`
	Label      Label   `json:"result"`
	Confidence float64 `json:"confidence"`
}

// Echo truncation settings for batch responses
const (
	EchoMaxLength = 50
	EchoEllipsis  = "..."
)

// EchoText returns text unchanged when it has at most EchoMaxLength code points,
// otherwise its first EchoMaxLength code points followed by EchoEllipsis.
func EchoText(text string) string {
	if utf8.RuneCountInString(text) <= EchoMaxLength {
		return text
	}
	n := 0
	for i := range text {
		if n == EchoMaxLength {
			return text[:i] + EchoEllipsis
		}
		n++
	}
	return text
}

// NewBatchPredictionItem builds the batch view of a single result
func NewBatchPredictionItem(msg Message, result PredictionResult) BatchPredictionItem {
	return BatchPredictionItem{
		EchoedText: EchoText(msg.Text()),
		Label:      result.Label,
		Confidence: result.Confidence,
	}
}
