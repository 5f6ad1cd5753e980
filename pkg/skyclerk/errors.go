package skyclerk

import (
	"errors"

	"github.com/skyclerk/skyclerk-go/internal/types"
)

var (
	// ErrNotAuthenticated is returned when an authenticated call is made
	// without a bearer token. No request is sent.
	ErrNotAuthenticated = types.ErrNotAuthenticated

	// ErrNoActiveAccount is returned when a workspace-scoped call is made
	// before an account has been selected.
	ErrNoActiveAccount = types.ErrNoActiveAccount

	// ErrLoginFailed is returned when the credential exchange is rejected
	ErrLoginFailed = types.ErrLoginFailed
)

// Error is the structured API error carried by every classified failure.
// Code is one of INVALID_URL, HTTP_ERROR, DECODE_ERROR or ENCODE_ERROR;
// HTTP_ERROR additionally carries the status code and the raw response body
// in Message.
type Error = types.Error

// HTTPStatus extracts the status code when err is a server rejection.
func HTTPStatus(err error) (int, bool) {
	return types.HTTPStatus(err)
}

// IsDecodeError reports whether err came from an undecodable response body.
func IsDecodeError(err error) bool {
	return types.IsDecodeError(err)
}

// IsEncodeError reports whether err came from an unserializable request body.
func IsEncodeError(err error) bool {
	return types.IsEncodeError(err)
}

// IsAuthError checks if error is authentication related
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNotAuthenticated) || errors.Is(err, ErrLoginFailed)
}
