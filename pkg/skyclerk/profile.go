package skyclerk

import (
	"context"

	"github.com/pkg/errors"
	"github.com/skyclerk/skyclerk-go/internal/auth"
)

// profileService implements the ProfileService interface
type profileService struct {
	client *Client
}

// Me retrieves the user's profile and workspace list from /oauth/me. This
// is the one endpoint whose payload uses snake_case keys; internal/auth
// owns that decoder.
func (s *profileService) Me(ctx context.Context) (*User, error) {
	user, err := s.client.authSvc.Me(ctx)
	if err != nil {
		return nil, err
	}
	return convertUser(user), nil
}

// Update updates the user's name and email
func (s *profileService) Update(ctx context.Context, update *ProfileUpdate) (*Profile, error) {
	path, err := s.client.accountPath("me")
	if err != nil {
		return nil, err
	}

	var profile Profile
	if err := s.client.put(ctx, path, update, &profile); err != nil {
		return nil, errors.Wrap(err, "failed to update profile")
	}

	return &profile, nil
}

// ChangePassword changes the user's password
func (s *profileService) ChangePassword(ctx context.Context, current, password, confirm string) error {
	path, err := s.client.accountPath("me/change-password")
	if err != nil {
		return err
	}

	body := struct {
		CurrentPassword string `json:"CurrentPassword"`
		Password        string `json:"Password"`
		ConfirmPassword string `json:"ConfirmPassword"`
	}{
		CurrentPassword: current,
		Password:        password,
		ConfirmPassword: confirm,
	}

	if err := s.client.post(ctx, path, body, nil); err != nil {
		return errors.Wrap(err, "failed to change password")
	}

	return nil
}

// convertUser maps the snake_case /oauth/me payload onto the public types.
func convertUser(u *auth.User) *User {
	user := &User{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}

	for _, a := range u.Accounts {
		user.Accounts = append(user.Accounts, &Account{
			ID:       a.ID,
			OwnerID:  a.OwnerID,
			Name:     a.Name,
			Locale:   a.Locale,
			Currency: a.Currency,
		})
	}

	return user
}
