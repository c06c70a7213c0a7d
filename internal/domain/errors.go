package domain

import (
	"errors"
	"fmt"
)

var (
	errEmptyValue = errors.New("empty value")
	errNotFinite  = errors.New("value is not finite")
	errNotDecimal = errors.New("value is not a decimal number")
)

// MissingFieldError reports a required reading absent from the request.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// ParseError reports a reading that is not a finite decimal number.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("field %q: cannot parse %q as a number: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ModelInferenceError reports that the model failed to produce a usable value.
// Value is set when the model returned a non-finite number.
type ModelInferenceError struct {
	Value float64
	Err   error
}

func (e *ModelInferenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model inference: %v", e.Err)
	}
	return fmt.Sprintf("model inference: unusable output %v", e.Value)
}

func (e *ModelInferenceError) Unwrap() error { return e.Err }

// IsClientError reports whether err was caused by bad request input.
func IsClientError(err error) bool {
	var missing *MissingFieldError
	var parse *ParseError
	return errors.As(err, &missing) || errors.As(err, &parse)
}

// ErrorKind returns a short label for err, suitable for metrics.
func ErrorKind(err error) string {
	var missing *MissingFieldError
	var parse *ParseError
	var inference *ModelInferenceError
	switch {
	case errors.As(err, &missing):
		return "missing_field"
	case errors.As(err, &parse):
		return "parse"
	case errors.As(err, &inference):
		return "inference"
	default:
		return "internal"
	}
}

// ErrorField returns the offending field name for input errors, or "".
func ErrorField(err error) string {
	var missing *MissingFieldError
	if errors.As(err, &missing) {
		return missing.Field
	}
	var parse *ParseError
	if errors.As(err, &parse) {
		return parse.Field
	}
	return ""
}
