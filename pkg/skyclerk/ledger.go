package skyclerk

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
)

// ledgerService implements the LedgerService interface
type ledgerService struct {
	client *Client
}

// List retrieves one page of ledger entries
func (s *ledgerService) List(ctx context.Context, opts *LedgerListOptions) (*LedgerEntryList, error) {
	path, err := s.client.accountPath("ledger")
	if err != nil {
		return nil, err
	}

	page := 1
	query := url.Values{}
	if opts != nil {
		if opts.Page > 0 {
			page = opts.Page
		}
		if opts.Type != "" {
			query.Set("type", string(opts.Type))
		}
		if opts.Search != "" {
			query.Set("search", opts.Search)
		}
	}
	query.Set("page", strconv.Itoa(page))

	var entries []*LedgerEntry
	lastPage, err := s.client.getPaginated(ctx, path, query, &entries)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ledger entries")
	}

	return &LedgerEntryList{Entries: entries, LastPage: lastPage}, nil
}

// Get retrieves a single ledger entry by ID
func (s *ledgerService) Get(ctx context.Context, id int64) (*LedgerEntry, error) {
	path, err := s.client.accountPath(fmt.Sprintf("ledger/%d", id))
	if err != nil {
		return nil, err
	}

	var entry LedgerEntry
	if err := s.client.get(ctx, path, nil, &entry); err != nil {
		return nil, errors.Wrapf(err, "failed to get ledger entry %d", id)
	}

	return &entry, nil
}

// Create creates a new ledger entry
func (s *ledgerService) Create(ctx context.Context, entry *LedgerEntry) (*LedgerEntry, error) {
	path, err := s.client.accountPath("ledger")
	if err != nil {
		return nil, err
	}

	var created LedgerEntry
	if err := s.client.post(ctx, path, entry, &created); err != nil {
		return nil, errors.Wrap(err, "failed to create ledger entry")
	}

	return &created, nil
}

// Delete deletes a ledger entry
func (s *ledgerService) Delete(ctx context.Context, id int64) error {
	path, err := s.client.accountPath(fmt.Sprintf("ledger/%d", id))
	if err != nil {
		return err
	}

	if err := s.client.delete(ctx, path); err != nil {
		return errors.Wrapf(err, "failed to delete ledger entry %d", id)
	}

	return nil
}
