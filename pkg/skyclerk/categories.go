package skyclerk

import (
	"context"

	"github.com/pkg/errors"
)

// categoryService implements the CategoryService interface
type categoryService struct {
	client *Client
}

// List retrieves all categories
func (s *categoryService) List(ctx context.Context) ([]*Category, error) {
	path, err := s.client.accountPath("categories")
	if err != nil {
		return nil, err
	}

	var categories []*Category
	if err := s.client.get(ctx, path, nil, &categories); err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}
