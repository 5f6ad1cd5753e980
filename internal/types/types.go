package types

import (
	"context"
	"net/http"
	"time"
)

// Session represents an authenticated session. It holds the bearer token
// issued at login and the account (workspace) the client is operating in.
type Session struct {
	Token     string `json:"token"`
	UserID    int64  `json:"userId"`
	Email     string `json:"email"`
	AccountID int64  `json:"accountId"`
}

// Logger interface for logging
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// RetryConfig configures retry behavior. The client performs no retries
// unless one is provided.
type RetryConfig struct {
	MaxRetries int           `json:"maxRetries"`
	RetryWait  time.Duration `json:"retryWait"`
	MaxWait    time.Duration `json:"maxWait"`
}

// Hooks provides lifecycle hooks for requests
type Hooks struct {
	OnRequest  func(ctx context.Context, req *http.Request)
	OnResponse func(ctx context.Context, resp *http.Response, duration time.Duration)
	OnError    func(ctx context.Context, err error)
}

// FilePart describes the binary part of a multipart upload.
type FilePart struct {
	// FieldName is the form field the server expects the file under
	// ("file" for document uploads, "photo" for receipt uploads).
	FieldName   string
	FileName    string
	ContentType string
	Data        []byte
}
