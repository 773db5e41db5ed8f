package errors

import (
	"encoding/json"
	"fmt"
)

var ErrValidation = fmt.Errorf("validation failed")
var ErrLocalResourceNotFound = fmt.Errorf("local resource not found")
var ErrUnsupportedType = fmt.Errorf("unsupported type tag")
var ErrInvalidOverwriteTarget = fmt.Errorf("invalid overwrite target")
var ErrTransport = fmt.Errorf("transport error")

type myError struct {
	msg    string
	target error
}

func (m myError) Error() string        { return m.msg }
func (m myError) Is(target error) bool { return target == m.target }

func NewValidationError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrValidation,
	}
}

func NewLocalResourceNotFoundError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrLocalResourceNotFound,
	}
}

func NewUnsupportedTypeError(tag string) error {
	return &myError{
		msg:    fmt.Sprintf("no entity or repository kind is registered for tag %q", tag),
		target: ErrUnsupportedType,
	}
}

func NewInvalidOverwriteTargetError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrInvalidOverwriteTarget,
	}
}

// TransportError carries the remote outcome without interpreting it. The object
// model forwards these unchanged; retry policy lives below the transport
// interface, never here.
type TransportError struct {
	StatusCode int
	Body       []byte
}

func (t *TransportError) Error() string {
	detail := struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}{}

	if json.Unmarshal(t.Body, &detail) == nil && detail.Message != "" {
		return fmt.Sprintf("remote returned status %d: %s", t.StatusCode, detail.Message)
	}

	return fmt.Sprintf("remote returned status %d", t.StatusCode)
}

func (t *TransportError) Is(target error) bool { return target == ErrTransport }

func NewTransportError(statusCode int, body []byte) error {
	return &TransportError{StatusCode: statusCode, Body: body}
}
