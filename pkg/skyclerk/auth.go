package skyclerk

import (
	"context"

	"github.com/pkg/errors"
	"github.com/skyclerk/skyclerk-go/internal/auth"
)

// authService implements the AuthService interface
type authService struct {
	client *Client
}

// Login performs the OAuth password-grant credential exchange, resolves the
// user's workspaces, and selects the first one when no account is active.
func (a *authService) Login(ctx context.Context, email, password string) error {
	session, err := a.client.authSvc.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.client.transport.SetSession(session)

	user, err := a.client.authSvc.Me(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load user accounts")
	}

	if a.client.ActiveAccount() == 0 && len(user.Accounts) > 0 {
		a.client.SetActiveAccount(user.Accounts[0].ID)
	}

	a.client.persistSession()
	return nil
}

// Register creates a new user and their first account, then logs the
// session into it.
func (a *authService) Register(ctx context.Context, params *RegisterParams) error {
	session, accountID, err := a.client.authSvc.Register(ctx, &auth.RegisterParams{
		Email:     params.Email,
		Password:  params.Password,
		FirstName: params.FirstName,
		LastName:  params.LastName,
	})
	if err != nil {
		return err
	}

	session.AccountID = accountID
	a.client.transport.SetSession(session)

	a.client.persistSession()
	return nil
}

// Logout clears the session and the persisted session file. The token is
// static until logout; there is nothing to revoke server-side.
func (a *authService) Logout() {
	a.client.Ping.StopMonitor()
	a.client.ClearSession()
	a.client.removeSessionFile()
}

// SaveSession saves session to file
func (a *authService) SaveSession(path string) error {
	return auth.SaveSession(path, a.client.transport.Session())
}

// LoadSession loads session from file
func (a *authService) LoadSession(path string) error {
	session, err := auth.LoadSession(path)
	if err != nil {
		return err
	}

	a.client.transport.SetSession(session)
	return nil
}
