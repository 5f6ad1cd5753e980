package auth

import (
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/skyclerk/skyclerk-go/internal/types"
)

const (
	tokenEndpoint    = "/oauth/token"
	registerEndpoint = "/register"
	meEndpoint       = "/oauth/me"
)

// Transport is the subset of the REST transport the auth flows need.
type Transport interface {
	Get(ctx context.Context, path string, query url.Values, result interface{}) error
	PostJSON(ctx context.Context, path string, body, result interface{}) error
	PostForm(ctx context.Context, path string, params url.Values, result interface{}) error
}

// Service handles the pre-workspace authentication endpoints. These are the
// only calls in the system that go out without a bearer token, and the only
// ones whose payloads use snake_case keys.
type Service struct {
	transport Transport
	clientID  string
	logger    types.Logger
}

// NewService creates a new auth service
func NewService(transport Transport, clientID string, logger types.Logger) *Service {
	return &Service{
		transport: transport,
		clientID:  clientID,
		logger:    logger,
	}
}

// User is the /oauth/me payload.
type User struct {
	ID        int64         `json:"id"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Email     string        `json:"email"`
	Accounts  []UserAccount `json:"accounts"`
}

// UserAccount is one workspace the user belongs to, as returned by /oauth/me.
type UserAccount struct {
	ID       int64  `json:"id"`
	OwnerID  int64  `json:"owner_id"`
	Name     string `json:"name"`
	Locale   string `json:"locale"`
	Currency string `json:"currency"`
}

// RegisterParams are the inputs to account registration.
type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// tokenResponse is the /oauth/token payload
type tokenResponse struct {
	UserID      int64  `json:"user_id"`
	AccessToken string `json:"access_token"`
}

// registerResponse is the /register payload
type registerResponse struct {
	UserID      int64  `json:"user_id"`
	AccessToken string `json:"access_token"`
	AccountID   int64  `json:"account_id"`
}

// registerRequest is the /register request body
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	First    string `json:"first"`
	Last     string `json:"last"`
	ClientID string `json:"client_id"`
	Token    string `json:"token"`
}

// Login exchanges credentials for a bearer token via the OAuth password
// grant. Returns a fresh session with no account selected yet.
func (s *Service) Login(ctx context.Context, email, password string) (*types.Session, error) {
	params := url.Values{
		"grant_type": {"password"},
		"username":   {email},
		"password":   {password},
		"client_id":  {s.clientID},
	}

	var resp tokenResponse
	if err := s.transport.PostForm(ctx, tokenEndpoint, params, &resp); err != nil {
		if status, ok := types.HTTPStatus(err); ok && (status == 401 || status == 403) {
			return nil, types.ErrLoginFailed
		}
		return nil, err
	}

	if resp.AccessToken == "" {
		return nil, errors.New("no access token in login response")
	}

	if s.logger != nil {
		s.logger.Info("Login successful", "email", email)
	}

	return &types.Session{
		Token:  resp.AccessToken,
		UserID: resp.UserID,
		Email:  email,
	}, nil
}

// Register creates a new user and their first account, returning the fresh
// session and the id of the account that was created.
func (s *Service) Register(ctx context.Context, params *RegisterParams) (*types.Session, int64, error) {
	req := &registerRequest{
		Email:    params.Email,
		Password: params.Password,
		First:    params.FirstName,
		Last:     params.LastName,
		ClientID: s.clientID,
		Token:    "",
	}

	var resp registerResponse
	if err := s.transport.PostJSON(ctx, registerEndpoint, req, &resp); err != nil {
		return nil, 0, err
	}

	if resp.AccessToken == "" {
		return nil, 0, errors.New("no access token in register response")
	}

	if s.logger != nil {
		s.logger.Info("Registration successful", "email", params.Email)
	}

	session := &types.Session{
		Token:  resp.AccessToken,
		UserID: resp.UserID,
		Email:  params.Email,
	}
	return session, resp.AccountID, nil
}

// Me fetches the authenticated user's profile and workspace list.
func (s *Service) Me(ctx context.Context) (*User, error) {
	var user User
	if err := s.transport.Get(ctx, meEndpoint, nil, &user); err != nil {
		return nil, errors.Wrap(err, "failed to get user profile")
	}
	return &user, nil
}

// SaveSession persists a session to disk with restrictive permissions.
func SaveSession(path string, session *types.Session) error {
	if session == nil {
		return types.ErrNotAuthenticated
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.Wrap(err, "failed to create session directory")
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal session")
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return errors.Wrap(err, "failed to write session file")
	}

	return nil
}

// LoadSession reads a previously saved session from disk.
func LoadSession(path string) (*types.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, types.ErrNotAuthenticated
		}
		return nil, errors.Wrap(err, "failed to read session file")
	}

	var session types.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal session")
	}

	if session.Token == "" {
		return nil, types.ErrNotAuthenticated
	}

	return &session, nil
}
