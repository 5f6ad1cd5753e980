package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"github.com/skyclerk/skyclerk-go/internal/types"
)

const (
	authHeaderKey   = "Authorization"
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// RestTransport handles all HTTP communication with the Skyclerk API. It is
// the single place where authentication, serialization, pagination and
// status classification happen. The transport itself is stateless per call;
// the only shared state is the session, guarded by a mutex so a logout or
// workspace switch cannot corrupt a request being built concurrently.
type RestTransport struct {
	baseURL     string
	httpClient  *http.Client
	retryClient *retryablehttp.Client
	headers     map[string]string
	logger      types.Logger
	hooks       *types.Hooks

	mu      sync.RWMutex
	session *types.Session
}

// Options for the REST transport
type Options struct {
	BaseURL     string
	HTTPClient  *http.Client
	Headers     map[string]string
	RetryConfig *types.RetryConfig
	Logger      types.Logger
	Hooks       *types.Hooks
}

// NewRestTransport creates a new REST transport
func NewRestTransport(opts *Options) *RestTransport {
	if opts == nil {
		opts = &Options{}
	}

	// Set defaults
	if opts.BaseURL == "" {
		opts.BaseURL = types.DefaultBaseURL
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Timeout: types.DefaultTimeout,
		}
	}

	// Create retry client if configured. Without one every request is
	// attempted exactly once.
	var retryClient *retryablehttp.Client
	if opts.RetryConfig != nil {
		retryClient = retryablehttp.NewClient()
		retryClient.HTTPClient = opts.HTTPClient
		retryClient.RetryMax = opts.RetryConfig.MaxRetries
		retryClient.RetryWaitMin = opts.RetryConfig.RetryWait
		retryClient.RetryWaitMax = opts.RetryConfig.MaxWait

		if opts.Logger != nil {
			retryClient.Logger = &retryLogger{logger: opts.Logger}
		}
	}

	// Set default headers
	headers := map[string]string{
		"Accept":     contentTypeJSON,
		"User-Agent": types.UserAgent,
	}

	// Merge custom headers
	for k, v := range opts.Headers {
		headers[k] = v
	}

	return &RestTransport{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		httpClient:  opts.HTTPClient,
		retryClient: retryClient,
		headers:     headers,
		logger:      opts.Logger,
		hooks:       opts.Hooks,
	}
}

// Get issues an authenticated GET and decodes the JSON body into result.
func (t *RestTransport) Get(ctx context.Context, path string, query url.Values, result interface{}) error {
	_, err := t.roundTrip(ctx, http.MethodGet, path, query, nil, "", true, result)
	return err
}

// GetPaginated issues an authenticated GET and additionally reports whether
// the response marked itself as the last page. The X-Last-Page header is
// parsed case-insensitively; a missing or unparsable value means false.
func (t *RestTransport) GetPaginated(ctx context.Context, path string, query url.Values, result interface{}) (bool, error) {
	header, err := t.roundTrip(ctx, http.MethodGet, path, query, nil, "", true, result)
	if err != nil {
		return false, err
	}
	return parseLastPage(header.Get(types.LastPageHeader)), nil
}

// Post issues an authenticated POST with a JSON body. Both body and result
// may be nil for endpoints that take or return nothing.
func (t *RestTransport) Post(ctx context.Context, path string, body, result interface{}) error {
	payload, err := encodeJSON(body)
	if err != nil {
		return err
	}
	_, err = t.roundTrip(ctx, http.MethodPost, path, nil, payload, contentTypeJSON, true, result)
	return err
}

// PostJSON issues a POST with a JSON body and no Authorization header. Only
// pre-authentication endpoints (registration) use it.
func (t *RestTransport) PostJSON(ctx context.Context, path string, body, result interface{}) error {
	payload, err := encodeJSON(body)
	if err != nil {
		return err
	}
	_, err = t.roundTrip(ctx, http.MethodPost, path, nil, payload, contentTypeJSON, false, result)
	return err
}

// PostForm issues an unauthenticated POST with a form-urlencoded body. Only
// the OAuth token exchange uses it.
func (t *RestTransport) PostForm(ctx context.Context, path string, params url.Values, result interface{}) error {
	payload := []byte(encodeForm(params))
	_, err := t.roundTrip(ctx, http.MethodPost, path, nil, payload, contentTypeForm, false, result)
	return err
}

// Put issues an authenticated PUT with a JSON body.
func (t *RestTransport) Put(ctx context.Context, path string, body, result interface{}) error {
	payload, err := encodeJSON(body)
	if err != nil {
		return err
	}
	_, err = t.roundTrip(ctx, http.MethodPut, path, nil, payload, contentTypeJSON, true, result)
	return err
}

// Delete issues an authenticated DELETE. No body is sent or decoded.
func (t *RestTransport) Delete(ctx context.Context, path string) error {
	_, err := t.roundTrip(ctx, http.MethodDelete, path, nil, nil, "", true, nil)
	return err
}

// Upload issues an authenticated multipart/form-data POST with one file part
// and zero or more text parts. Text fields come first, the file part last.
// A nil result means the response body is not decoded.
func (t *RestTransport) Upload(ctx context.Context, path string, file *types.FilePart, fields map[string]string, result interface{}) error {
	body, contentType, err := buildMultipart(file, fields)
	if err != nil {
		return err
	}
	_, err = t.roundTrip(ctx, http.MethodPost, path, nil, body, contentType, true, result)
	return err
}

// SetSession sets the session
func (t *RestTransport) SetSession(session *types.Session) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.session = session
}

// Session returns a copy of the current session, or nil when logged out.
func (t *RestTransport) Session() *types.Session {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.session == nil {
		return nil
	}
	s := *t.session
	return &s
}

// SetToken sets the bearer token, creating a session if needed.
func (t *RestTransport) SetToken(token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session == nil {
		t.session = &types.Session{}
	}
	t.session.Token = token
}

// SetAccountID sets the active account on the session.
func (t *RestTransport) SetAccountID(id int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session == nil {
		t.session = &types.Session{}
	}
	t.session.AccountID = id
}

// ClearSession drops the session. Safe to call repeatedly.
func (t *RestTransport) ClearSession() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.session = nil
}

// snapshotToken reads the bearer token once, at request-build time.
func (t *RestTransport) snapshotToken() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.session == nil {
		return ""
	}
	return t.session.Token
}

// roundTrip builds, sends and validates a single request. The strict order
// is: auth check, URL build, header injection, send, status validation,
// decode. Returns the response headers for pagination callers.
func (t *RestTransport) roundTrip(ctx context.Context, method, path string, query url.Values, body []byte, contentType string, requiresAuth bool, result interface{}) (http.Header, error) {
	// Authenticated calls fail before any network I/O when no token is
	// present. The token is snapshotted here, not re-read later.
	var token string
	if requiresAuth {
		token = t.snapshotToken()
		if token == "" {
			return nil, types.ErrNotAuthenticated
		}
	}

	u, err := t.buildURL(path, query)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, &types.Error{
			Code:    types.CodeInvalidURL,
			Message: fmt.Sprintf("failed to create %s request for %s", method, u),
			Err:     err,
		}
	}

	// Set headers
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if requiresAuth {
		req.Header.Set(authHeaderKey, "Bearer "+token)
	}

	// Call request hook
	if t.hooks != nil && t.hooks.OnRequest != nil {
		t.hooks.OnRequest(ctx, req)
	}

	if t.logger != nil {
		t.logger.Debug("API request", "method", method, "path", path)
	}

	// Execute request
	start := time.Now()
	resp, err := t.doRequest(req)
	duration := time.Since(start)

	if err != nil {
		if t.hooks != nil && t.hooks.OnError != nil {
			t.hooks.OnError(ctx, err)
		}
		return nil, errors.Wrapf(err, "%s %s failed", method, path)
	}
	defer resp.Body.Close()

	// Call response hook
	if t.hooks != nil && t.hooks.OnResponse != nil {
		t.hooks.OnResponse(ctx, resp, duration)
	}

	// Read response
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response")
	}

	if t.logger != nil {
		t.logger.Debug("API response", "method", method, "path", path, "status", resp.StatusCode, "duration", duration, "size", len(respBody))
	}

	// Validate status before attempting any decode
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, handleHTTPError(resp.StatusCode, respBody)
	}

	// Decode body
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return nil, &types.Error{
				Code:    types.CodeDecode,
				Message: fmt.Sprintf("failed to decode response from %s %s", method, path),
				Err:     err,
			}
		}
	}

	return resp.Header, nil
}

// buildURL joins the base URL, path and query string.
func (t *RestTransport) buildURL(path string, query url.Values) (string, error) {
	u, err := url.Parse(t.baseURL + path)
	if err != nil {
		return "", &types.Error{
			Code:    types.CodeInvalidURL,
			Message: fmt.Sprintf("invalid request URL %q", t.baseURL+path),
			Err:     err,
		}
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

// doRequest executes the HTTP request with retry if configured
func (t *RestTransport) doRequest(req *http.Request) (*http.Response, error) {
	if t.retryClient != nil {
		retryReq, err := retryablehttp.FromRequest(req)
		if err != nil {
			return nil, err
		}
		return t.retryClient.Do(retryReq)
	}
	return t.httpClient.Do(req)
}

// handleHTTPError classifies a non-2xx response. The raw body is carried
// verbatim so callers can surface the server's message.
func handleHTTPError(statusCode int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = "Unknown error"
	}

	return &types.Error{
		Code:       types.CodeHTTPError,
		Message:    msg,
		StatusCode: statusCode,
	}
}

// encodeJSON marshals a request payload, classifying failures as encoding
// errors. A nil body stays nil.
func encodeJSON(body interface{}) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &types.Error{
			Code:    types.CodeEncode,
			Message: "failed to encode request body",
			Err:     err,
		}
	}
	return payload, nil
}

// encodeForm percent-encodes params as application/x-www-form-urlencoded.
// Spaces become %20, not "+", to match what the server's OAuth layer parses.
func encodeForm(params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf strings.Builder
	for _, k := range keys {
		for _, v := range params[k] {
			if buf.Len() > 0 {
				buf.WriteByte('&')
			}
			buf.WriteString(percentEncode(k))
			buf.WriteByte('=')
			buf.WriteString(percentEncode(v))
		}
	}
	return buf.String()
}

func percentEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// buildMultipart assembles a multipart/form-data body: all text fields
// first, the file part last, closed with the trailing boundary.
func buildMultipart(file *types.FilePart, fields map[string]string) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := writer.WriteField(k, fields[k]); err != nil {
			return nil, "", errors.Wrapf(err, "failed to write field %q", k)
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.FieldName, file.FileName))
	header.Set("Content-Type", file.ContentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to create file part")
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, "", errors.Wrap(err, "failed to write file data")
	}

	if err := writer.Close(); err != nil {
		return nil, "", errors.Wrap(err, "failed to close multipart writer")
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}

// parseLastPage parses the X-Last-Page header value.
func parseLastPage(value string) bool {
	last, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(value)))
	if err != nil {
		return false
	}
	return last
}

// retryLogger adapts our logger to retryablehttp
type retryLogger struct {
	logger types.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}
