package skyclerk

import (
	"context"

	"github.com/pkg/errors"
)

// labelService implements the LabelService interface
type labelService struct {
	client *Client
}

// List retrieves all labels
func (s *labelService) List(ctx context.Context) ([]*Label, error) {
	path, err := s.client.accountPath("labels")
	if err != nil {
		return nil, err
	}

	var labels []*Label
	if err := s.client.get(ctx, path, nil, &labels); err != nil {
		return nil, errors.Wrap(err, "failed to list labels")
	}

	return labels, nil
}

// Create creates a new label
func (s *labelService) Create(ctx context.Context, name string) (*Label, error) {
	path, err := s.client.accountPath("labels")
	if err != nil {
		return nil, err
	}

	body := struct {
		Name string `json:"Name"`
	}{Name: name}

	var created Label
	if err := s.client.post(ctx, path, body, &created); err != nil {
		return nil, errors.Wrapf(err, "failed to create label %q", name)
	}

	return &created, nil
}
