package skyclerk

import (
	"context"

	"github.com/pkg/errors"
)

// accountService implements the AccountService interface
type accountService struct {
	client *Client
}

// Get retrieves the active account
func (s *accountService) Get(ctx context.Context) (*Account, error) {
	path, err := s.client.accountPath("account")
	if err != nil {
		return nil, err
	}

	var account Account
	if err := s.client.get(ctx, path, nil, &account); err != nil {
		return nil, errors.Wrap(err, "failed to get account")
	}

	return &account, nil
}

// Update updates the active account
func (s *accountService) Update(ctx context.Context, account *Account) (*Account, error) {
	path, err := s.client.accountPath("account")
	if err != nil {
		return nil, err
	}

	var updated Account
	if err := s.client.put(ctx, path, account, &updated); err != nil {
		return nil, errors.Wrap(err, "failed to update account")
	}

	return &updated, nil
}

// Delete permanently deletes the active account. The server accepts this as
// an empty POST rather than a DELETE.
func (s *accountService) Delete(ctx context.Context) error {
	path, err := s.client.accountPath("account/delete")
	if err != nil {
		return err
	}

	if err := s.client.post(ctx, path, nil, nil); err != nil {
		return errors.Wrap(err, "failed to delete account")
	}

	return nil
}

// Billing retrieves the account's subscription state
func (s *accountService) Billing(ctx context.Context) (*Billing, error) {
	path, err := s.client.accountPath("account/billing")
	if err != nil {
		return nil, err
	}

	var billing Billing
	if err := s.client.get(ctx, path, nil, &billing); err != nil {
		return nil, errors.Wrap(err, "failed to get billing")
	}

	return &billing, nil
}
