package apiclient

import (
	"errors"
	"fmt"
)

// Sentinel errors. CallError unwraps to ErrTransport or ErrDecode.
var (
	// ErrTransport indicates the call failed before a response was read.
	ErrTransport = errors.New("apiclient: transport failure")

	// ErrDecode indicates the response body was not valid JSON.
	ErrDecode = errors.New("apiclient: decode failure")

	// ErrInvalidRequest indicates a RequestSpec that cannot be sent.
	ErrInvalidRequest = errors.New("apiclient: invalid request")

	// ErrBodyTooLarge indicates the response body exceeded the size cap.
	ErrBodyTooLarge = errors.New("apiclient: response body too large")

	// ErrTypeMismatch indicates a JSON value of an unexpected type.
	ErrTypeMismatch = errors.New("apiclient: type mismatch")

	// ErrFieldMissing indicates a required JSON object field is absent.
	ErrFieldMissing = errors.New("apiclient: field missing")
)

// ReasonInvalidJSON is the DecodeFailure reason for unparseable bodies.
const ReasonInvalidJSON = "invalid JSON"

// CallError is the error form of a failed CallResult.
type CallError struct {
	Kind       Kind
	Reason     string
	StatusCode int
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s: %s", e.Unwrap(), e.Reason)
}

// Unwrap returns the sentinel matching Kind.
func (e *CallError) Unwrap() error {
	if e.Kind == KindDecodeFailure {
		return ErrDecode
	}
	return ErrTransport
}
