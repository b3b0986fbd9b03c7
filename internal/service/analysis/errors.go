package analysis

import (
	"errors"
	"fmt"
)

// ErrorKind classifies analysis failures. The HTTP layer maps each kind to one status code.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindImageFormat   ErrorKind = "image_format"
	KindConfiguration ErrorKind = "configuration"
	KindUpstream      ErrorKind = "upstream"
	KindResponseShape ErrorKind = "response_shape"
)

// Error is the failure type returned by the analysis service.
// Message is safe to show to users; the cause is only logged.
type Error struct {
	Kind    ErrorKind
	Message string
	// Status is the provider's HTTP status for KindUpstream, or 0 when unknown.
	Status int
	cause  error
}

func (e *Error) Error() string {
	if e == nil {
		return "analysis error"
	}
	if e.cause == nil {
		return fmt.Sprintf("analysis %s error: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("analysis %s error: %s: %v", e.Kind, e.Message, e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// ValidationError reports a missing or unknown request field.
func ValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// ImageFormatError reports an unparseable data URI or a media type outside the allow-list.
func ImageFormatError(msg string) *Error {
	return &Error{Kind: KindImageFormat, Message: msg}
}

// ConfigurationError reports a server misconfiguration, such as a missing credential.
func ConfigurationError(msg string) *Error {
	return &Error{Kind: KindConfiguration, Message: msg}
}

// UpstreamError reports a failed model provider call. status is the provider status, or 0.
func UpstreamError(status int, msg string, cause error) *Error {
	return &Error{Kind: KindUpstream, Message: msg, Status: status, cause: cause}
}

// ResponseShapeError reports model output that does not match the requested contract.
func ResponseShapeError(msg string, cause error) *Error {
	return &Error{Kind: KindResponseShape, Message: msg, cause: cause}
}

// KindOf returns the kind of err, or "" when err is not an *Error.
func KindOf(err error) ErrorKind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}
