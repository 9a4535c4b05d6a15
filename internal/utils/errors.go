package utils

import (
	"errors"
	"fmt"
)

// Kind classifies a label generation failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindInvalidInput is an empty box list or a box without an id.
	KindInvalidInput
	// KindCalibration is a calibration axis outside the allowed range.
	KindCalibration
	// KindEncoding is a QR payload that no symbol version can hold.
	KindEncoding
	// KindConfiguration is a broken label layout.
	KindConfiguration
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindCalibration:
		return "calibration"
	case KindEncoding:
		return "encoding"
	case KindConfiguration:
		return "configuration"
	default:
		return "unknown"
	}
}

// LabelError is the typed failure returned by the label pipeline. Subject
// names what failed: a box id, "calibration" or "configuration".
type LabelError struct {
	Kind    Kind
	Subject string
	Message string
	Err     error
}

func (e *LabelError) Error() string {
	msg := e.Message
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = msg + ": " + e.Err.Error()
		}
	}
	if e.Subject == "" {
		return fmt.Sprintf("%s: %s", e.Kind, msg)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Kind, e.Subject, msg)
}

func (e *LabelError) Unwrap() error {
	return e.Err
}

// NewError returns a *LabelError without a cause.
func NewError(kind Kind, subject, message string) error {
	return &LabelError{
		Kind:    kind,
		Subject: subject,
		Message: message,
	}
}

// WrapError returns a *LabelError wrapping err.
func WrapError(kind Kind, subject string, err error) error {
	return &LabelError{
		Kind:    kind,
		Subject: subject,
		Err:     err,
	}
}

// KindOf reports the Kind of the first *LabelError in err's chain.
func KindOf(err error) Kind {
	var le *LabelError
	if errors.As(err, &le) {
		return le.Kind
	}
	return KindUnknown
}
