package types

import (
	"errors"
	"fmt"
)

// Error codes produced by the transport. Exactly one code is attached to
// every failed call.
const (
	CodeInvalidURL = "INVALID_URL"
	CodeHTTPError  = "HTTP_ERROR"
	CodeDecode     = "DECODE_ERROR"
	CodeEncode     = "ENCODE_ERROR"
)

// Error represents an API error
type Error struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Err        error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}

	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.Code == t.Code
}

// HTTPStatus extracts the status code from an HTTP_ERROR, if err is one.
func HTTPStatus(err error) (int, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Code == CodeHTTPError {
		return apiErr.StatusCode, true
	}
	return 0, false
}

// IsDecodeError reports whether err is a response-decoding failure.
func IsDecodeError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == CodeDecode
}

// IsEncodeError reports whether err is a request-encoding failure.
func IsEncodeError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == CodeEncode
}
