package skyclerk

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	internalTypes "github.com/skyclerk/skyclerk-go/internal/types"
)

// snapClerkService implements the SnapClerkService interface
type snapClerkService struct {
	client *Client
}

// List retrieves one page of receipts, newest first
func (s *snapClerkService) List(ctx context.Context, page int) (*SnapClerkList, error) {
	path, err := s.client.accountPath("snapclerk")
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("order", "desc")
	query.Set("sort", "created_at")

	var receipts []*SnapClerk
	lastPage, err := s.client.getPaginated(ctx, path, query, &receipts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list snapclerk receipts")
	}

	return &SnapClerkList{Receipts: receipts, LastPage: lastPage}, nil
}

// Create submits a receipt photo for processing. The server replies with no
// usable body, so nothing is decoded.
func (s *snapClerkService) Create(ctx context.Context, upload *SnapClerkUpload) error {
	path, err := s.client.accountPath("snapclerk")
	if err != nil {
		return err
	}

	file := &internalTypes.FilePart{
		FieldName:   "photo",
		FileName:    upload.FileName,
		ContentType: upload.ContentType,
		Data:        upload.Data,
	}

	fields := map[string]string{}
	if upload.Note != "" {
		fields["note"] = upload.Note
	}
	if upload.Lat != "" {
		fields["lat"] = upload.Lat
	}
	if upload.Lon != "" {
		fields["lon"] = upload.Lon
	}
	if len(upload.Labels) > 0 {
		fields["labels"] = strings.Join(upload.Labels, ",")
	}
	if upload.Category != "" {
		fields["category"] = upload.Category
	}

	if err := s.client.upload(ctx, path, file, fields, nil); err != nil {
		return errors.Wrap(err, "failed to upload receipt")
	}

	return nil
}
