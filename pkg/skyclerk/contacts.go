package skyclerk

import (
	"context"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
)

// contactService implements the ContactService interface
type contactService struct {
	client *Client
}

// List retrieves contacts
func (s *contactService) List(ctx context.Context, opts *ContactListOptions) ([]*Contact, error) {
	path, err := s.client.accountPath("contacts")
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	if opts != nil {
		if opts.Limit > 0 {
			query.Set("limit", strconv.Itoa(opts.Limit))
		}
		if opts.Search != "" {
			query.Set("search", opts.Search)
		}
	}

	var contacts []*Contact
	if err := s.client.get(ctx, path, query, &contacts); err != nil {
		return nil, errors.Wrap(err, "failed to list contacts")
	}

	return contacts, nil
}

// Create creates a new contact
func (s *contactService) Create(ctx context.Context, contact *Contact) (*Contact, error) {
	path, err := s.client.accountPath("contacts")
	if err != nil {
		return nil, err
	}

	var created Contact
	if err := s.client.post(ctx, path, contact, &created); err != nil {
		return nil, errors.Wrap(err, "failed to create contact")
	}

	return &created, nil
}
