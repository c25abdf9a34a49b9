package entity

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Message length bounds, counted in Unicode code points.
const (
	MinTextLength = 1
	MaxTextLength = 500
)

// Validation sentinels. ValidationError unwraps to one of these.
var (
	ErrEmptyText   = errors.New("text must not be empty")
	ErrTextTooLong = errors.New("text exceeds maximum length")
)

// ValidationErrorKind identifies which text constraint was violated
type ValidationErrorKind string

const (
	ValidationEmpty   ValidationErrorKind = "empty"
	ValidationTooLong ValidationErrorKind = "too_long"
)

// ValidationError reports a text that cannot be classified as given.
// Callers must change the input before retrying.
type ValidationError struct {
	Kind   ValidationErrorKind
	Length int
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case ValidationEmpty:
		return ErrEmptyText.Error()
	case ValidationTooLong:
		return fmt.Sprintf("%s: %d characters (max %d)", ErrTextTooLong, e.Length, MaxTextLength)
	default:
		return "invalid text"
	}
}

func (e *ValidationError) Unwrap() error {
	switch e.Kind {
	case ValidationEmpty:
		return ErrEmptyText
	case ValidationTooLong:
		return ErrTextTooLong
	default:
		return nil
	}
}

// Message is a validated SMS text. The zero value is not valid; use NewMessage.
type Message struct {
	text string
}

// NewMessage validates raw text and wraps it in a Message.
// The text is kept exactly as given: no trimming or case folding.
func NewMessage(raw string) (Message, error) {
	n := utf8.RuneCountInString(raw)
	if n < MinTextLength {
		return Message{}, &ValidationError{Kind: ValidationEmpty, Length: n}
	}
	if n > MaxTextLength {
		return Message{}, &ValidationError{Kind: ValidationTooLong, Length: n}
	}
	return Message{text: raw}, nil
}

// Text returns the raw message text
func (m Message) Text() string {
	return m.text
}

// Len returns the message length in code points
func (m Message) Len() int {
	return utf8.RuneCountInString(m.text)
}
