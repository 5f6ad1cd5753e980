package skyclerk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/skyclerk/skyclerk-go/internal/auth"
	"github.com/skyclerk/skyclerk-go/internal/transport"
	internalTypes "github.com/skyclerk/skyclerk-go/internal/types"
)

const (
	// DefaultBaseURL is the default Skyclerk API base URL
	DefaultBaseURL = internalTypes.DefaultBaseURL

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = internalTypes.DefaultTimeout

	// UserAgent is the user agent string
	UserAgent = internalTypes.UserAgent
)

// Client is the main Skyclerk API client
type Client struct {
	// Service interfaces
	Ledger     LedgerService
	Contacts   ContactService
	Categories CategoryService
	Labels     LabelService
	Files      FileService
	SnapClerk  SnapClerkService
	Account    AccountService
	Profile    ProfileService
	Reports    ReportService
	Ping       PingService
	Auth       AuthService

	// Internal fields
	baseURL    string
	httpClient *http.Client
	transport  Transport
	options    *ClientOptions
	authSvc    *auth.Service
}

// ClientOptions configures the client
type ClientOptions struct {
	// BaseURL overrides the default API base URL
	BaseURL string

	// HTTPClient allows using a custom HTTP client
	HTTPClient *http.Client

	// Timeout sets the HTTP client timeout
	Timeout time.Duration

	// Token provides direct authentication token
	Token string

	// AccountID selects the active workspace up front
	AccountID int64

	// ClientID is the OAuth client id used for login and registration
	ClientID string

	// SessionFile path for session persistence
	SessionFile string

	// Logger for debug logging
	Logger Logger

	// RetryConfig configures retry behavior; nil means one attempt per call
	RetryConfig *internalTypes.RetryConfig

	// RateLimiter for rate limiting
	RateLimiter RateLimiter

	// Hooks for observability
	Hooks *internalTypes.Hooks

	// SentryDSN enables Sentry error tracking when set
	SentryDSN string

	// SentryOptions allows custom Sentry configuration
	SentryOptions *sentry.ClientOptions
}

// Logger interface for logging
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// RateLimiter interface for rate limiting
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// Transport handles HTTP communication with the API
type Transport interface {
	Get(ctx context.Context, path string, query url.Values, result interface{}) error
	GetPaginated(ctx context.Context, path string, query url.Values, result interface{}) (bool, error)
	Post(ctx context.Context, path string, body, result interface{}) error
	PostJSON(ctx context.Context, path string, body, result interface{}) error
	PostForm(ctx context.Context, path string, params url.Values, result interface{}) error
	Put(ctx context.Context, path string, body, result interface{}) error
	Delete(ctx context.Context, path string) error
	Upload(ctx context.Context, path string, file *internalTypes.FilePart, fields map[string]string, result interface{}) error
	SetSession(session *internalTypes.Session)
	Session() *internalTypes.Session
	SetToken(token string)
	SetAccountID(id int64)
	ClearSession()
}

// NewClient creates a new Skyclerk client
func NewClient(opts *ClientOptions) (*Client, error) {
	if opts == nil {
		opts = &ClientOptions{}
	}

	// Initialize Sentry if DSN is provided
	if opts.SentryDSN != "" || opts.SentryOptions != nil {
		sentryOpts := sentry.ClientOptions{}

		if opts.SentryOptions != nil {
			sentryOpts = *opts.SentryOptions
		}

		if opts.SentryDSN != "" {
			sentryOpts.Dsn = opts.SentryDSN
		}

		if sentryOpts.Environment == "" {
			sentryOpts.Environment = "production"
		}

		if err := sentry.Init(sentryOpts); err != nil {
			// Log error but don't fail client creation
			if opts.Logger != nil {
				opts.Logger.Error("Failed to initialize Sentry", "error", err)
			}
		}
	}

	// Set defaults
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Timeout: DefaultTimeout,
		}
	}

	if opts.Timeout > 0 {
		opts.HTTPClient.Timeout = opts.Timeout
	}

	// Create transport using the internal package. Each process gets a
	// stable device identifier for the server's session accounting.
	transportOpts := &transport.Options{
		BaseURL:    opts.BaseURL,
		HTTPClient: opts.HTTPClient,
		Headers: map[string]string{
			"X-Device-Id": uuid.New().String(),
		},
		RetryConfig: opts.RetryConfig,
		Logger:      opts.Logger,
		Hooks:       opts.Hooks,
	}
	trans := transport.NewRestTransport(transportOpts)

	// Seed the session from options
	if opts.Token != "" {
		trans.SetToken(opts.Token)
	}
	if opts.AccountID != 0 {
		trans.SetAccountID(opts.AccountID)
	}

	// Create client
	c := &Client{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		transport:  trans,
		options:    opts,
	}

	// Initialize services
	c.initServices()

	// Load session if file specified and no token was passed directly
	if opts.SessionFile != "" && opts.Token == "" {
		if err := c.Auth.LoadSession(opts.SessionFile); err != nil && opts.Logger != nil {
			opts.Logger.Warn("Failed to load session", "error", err)
		}
	}

	return c, nil
}

// NewClientWithToken creates a client with an auth token
func NewClientWithToken(token string, accountID int64) (*Client, error) {
	return NewClient(&ClientOptions{
		Token:     token,
		AccountID: accountID,
	})
}

// initServices initializes all service implementations
func (c *Client) initServices() {
	c.authSvc = auth.NewService(c.transport, c.options.ClientID, c.options.Logger)

	c.Ledger = &ledgerService{client: c}
	c.Contacts = &contactService{client: c}
	c.Categories = &categoryService{client: c}
	c.Labels = &labelService{client: c}
	c.Files = &fileService{client: c}
	c.SnapClerk = &snapClerkService{client: c}
	c.Account = &accountService{client: c}
	c.Profile = &profileService{client: c}
	c.Reports = &reportService{client: c}
	c.Ping = &pingService{client: c}
	c.Auth = &authService{client: c}
}

// SetToken sets the authentication token
func (c *Client) SetToken(token string) {
	c.transport.SetToken(token)
}

// SetActiveAccount selects the workspace all scoped calls operate in.
func (c *Client) SetActiveAccount(id int64) {
	c.transport.SetAccountID(id)
}

// ActiveAccount returns the selected workspace id, 0 when none is selected.
func (c *Client) ActiveAccount() int64 {
	session := c.transport.Session()
	if session == nil {
		return 0
	}
	return session.AccountID
}

// IsAuthenticated reports whether a bearer token is held.
func (c *Client) IsAuthenticated() bool {
	session := c.transport.Session()
	return session != nil && session.Token != ""
}

// ClearSession drops the token, user and workspace. Safe to call repeatedly.
func (c *Client) ClearSession() {
	c.transport.ClearSession()
}

// GetSession returns the current session, or nil when logged out.
func (c *Client) GetSession() *Session {
	session := c.transport.Session()
	if session == nil {
		return nil
	}
	return &Session{
		Token:     session.Token,
		UserID:    session.UserID,
		Email:     session.Email,
		AccountID: session.AccountID,
	}
}

// Close flushes any pending Sentry events and performs cleanup
func (c *Client) Close() {
	c.Ping.StopMonitor()
	sentry.Flush(2 * time.Second)
}

// accountPath builds the workspace-scoped path for a resource.
func (c *Client) accountPath(resource string) (string, error) {
	id := c.ActiveAccount()
	if id == 0 {
		return "", ErrNoActiveAccount
	}
	return fmt.Sprintf("/api/v3/%d/%s", id, resource), nil
}

// The helpers below funnel every service call through rate limiting and
// Sentry capture before handing off to the transport.

func (c *Client) get(ctx context.Context, path string, query url.Values, result interface{}) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	err := c.transport.Get(ctx, path, query, result)
	c.capture(ctx, err, path)
	return err
}

func (c *Client) getPaginated(ctx context.Context, path string, query url.Values, result interface{}) (bool, error) {
	if err := c.wait(ctx); err != nil {
		return false, err
	}
	lastPage, err := c.transport.GetPaginated(ctx, path, query, result)
	c.capture(ctx, err, path)
	return lastPage, err
}

func (c *Client) post(ctx context.Context, path string, body, result interface{}) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	err := c.transport.Post(ctx, path, body, result)
	c.capture(ctx, err, path)
	return err
}

func (c *Client) put(ctx context.Context, path string, body, result interface{}) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	err := c.transport.Put(ctx, path, body, result)
	c.capture(ctx, err, path)
	return err
}

func (c *Client) delete(ctx context.Context, path string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	err := c.transport.Delete(ctx, path)
	c.capture(ctx, err, path)
	return err
}

func (c *Client) upload(ctx context.Context, path string, file *internalTypes.FilePart, fields map[string]string, result interface{}) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	err := c.transport.Upload(ctx, path, file, fields, result)
	c.capture(ctx, err, path)
	return err
}

// wait blocks on the configured rate limiter, if any.
func (c *Client) wait(ctx context.Context) error {
	if c.options.RateLimiter == nil {
		return nil
	}
	if err := c.options.RateLimiter.Wait(ctx); err != nil {
		c.capture(ctx, err, "rate-limiter")
		return fmt.Errorf("rate limiter: %w", err)
	}
	return nil
}

// capture reports request failures to Sentry. Without sentry.Init this is
// a no-op.
func (c *Client) capture(ctx context.Context, err error, path string) {
	if err == nil {
		return
	}

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("api.path", path)
			hub.CaptureException(err)
		})
	} else {
		sentry.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("api.path", path)
			sentry.CaptureException(err)
		})
	}
}

// persistSession writes the session file when one is configured. Save
// failures never fail the calling flow.
func (c *Client) persistSession() {
	if c.options.SessionFile == "" {
		return
	}
	if err := auth.SaveSession(c.options.SessionFile, c.transport.Session()); err != nil && c.options.Logger != nil {
		c.options.Logger.Warn("Failed to save session", "error", err)
	}
}

// removeSessionFile deletes the persisted session on logout.
func (c *Client) removeSessionFile() {
	if c.options.SessionFile == "" {
		return
	}
	if err := os.Remove(c.options.SessionFile); err != nil && !os.IsNotExist(err) && c.options.Logger != nil {
		c.options.Logger.Warn("Failed to remove session file", "error", err)
	}
}
