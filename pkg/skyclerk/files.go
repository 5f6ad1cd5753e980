package skyclerk

import (
	"context"

	"github.com/pkg/errors"
	internalTypes "github.com/skyclerk/skyclerk-go/internal/types"
)

// fileService implements the FileService interface
type fileService struct {
	client *Client
}

// Upload uploads a file and returns its stored metadata
func (s *fileService) Upload(ctx context.Context, fileName, contentType string, data []byte, fields map[string]string) (*FileMetadata, error) {
	path, err := s.client.accountPath("files")
	if err != nil {
		return nil, err
	}

	file := &internalTypes.FilePart{
		FieldName:   "file",
		FileName:    fileName,
		ContentType: contentType,
		Data:        data,
	}

	var metadata FileMetadata
	if err := s.client.upload(ctx, path, file, fields, &metadata); err != nil {
		return nil, errors.Wrapf(err, "failed to upload file %q", fileName)
	}

	return &metadata, nil
}
