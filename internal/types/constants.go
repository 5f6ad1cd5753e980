package types

import (
	"errors"
	"time"
)

const (
	// DefaultBaseURL is the default Skyclerk API base URL
	DefaultBaseURL = "https://app.skyclerk.com"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second

	// UserAgent is the user agent string
	UserAgent = "skyclerk-go/1.0.0"

	// LastPageHeader is the response header that signals list exhaustion
	// on paginated endpoints.
	LastPageHeader = "X-Last-Page"
)

// Common errors
var (
	// ErrNotAuthenticated is returned when an authenticated call is made
	// with no bearer token in the session. The request is never sent.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNoActiveAccount is returned when a workspace-scoped call is made
	// before an active account has been selected.
	ErrNoActiveAccount = errors.New("no active account selected")

	// ErrLoginFailed is returned when the credential exchange fails
	ErrLoginFailed = errors.New("login failed")
)
