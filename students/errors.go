package students

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrValidation indicates caller-supplied input was rejected locally.
	ErrValidation = errors.New("students: validation failure")

	// ErrAPI indicates the student API call did not produce a usable result.
	ErrAPI = errors.New("students: api failure")
)

// User-facing messages.
const (
	MsgInvalidInput   = "Please provide valid name and age"
	MsgConnectFailed  = "Failed to connect to API server"
	MsgInvalidJSON    = "Invalid JSON response from API"
	MsgCreateFailed   = "Failed to create student"
	MsgListSucceeded  = "Students retrieved successfully!"
	msgCreatedPattern = "Student %s created successfully!"
)

// ValidationError reports the first invalid input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("students: invalid %s: %s", e.Field, e.Reason)
}

// Message returns the user-facing message.
func (e *ValidationError) Message() string { return MsgInvalidInput }

// Unwrap returns ErrValidation.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// APIError reports a failed API operation.
type APIError struct {
	// Op is the operation name, e.g. "create_student".
	Op string

	// UserMessage is safe to show to end users.
	UserMessage string

	// Detail is an error message returned by the API, if any.
	Detail string

	// Err is the underlying cause, usually an *apiclient.CallError.
	Err error
}

func (e *APIError) Error() string {
	msg := "students: " + e.Op + ": " + e.UserMessage
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Message returns the user-facing message.
func (e *APIError) Message() string { return e.UserMessage }

// Unwrap returns the cause and ErrAPI.
func (e *APIError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrAPI}
	}
	return []error{ErrAPI, e.Err}
}

// UserMessage returns the user-facing message for err, falling back to
// fallback for errors this package did not produce.
func UserMessage(err error, fallback string) string {
	var m interface{ Message() string }
	if errors.As(err, &m) {
		return m.Message()
	}
	return fallback
}
