package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/linkhub/internal/common"
	"github.com/dmitrijs2005/linkhub/internal/server/objectstore"
)

// BlobStore is the storage capability ObjectService needs: scoped write
// grants and reads by key. *objectstore.Client satisfies it.
type BlobStore interface {
	PresignPut(ctx context.Context, key string, expires time.Duration) (string, error)
	Get(ctx context.Context, key string) (*objectstore.Object, error)
}

// ObjectMetadata echoes the client-declared upload attributes, with the
// content type possibly coerced.
type ObjectMetadata struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// UploadGrant is a time-limited write grant for a freshly generated object key.
type UploadGrant struct {
	UploadURL  string         `json:"uploadURL"`
	ObjectPath string         `json:"objectPath"`
	Metadata   ObjectMetadata `json:"metadata"`
}

// ObjectService is the object storage gateway: it issues upload grants for
// server-chosen keys and serves reads through the path codec.
type ObjectService struct {
	store    BlobStore
	grantTTL time.Duration
}

func NewObjectService(store BlobStore, grantTTL time.Duration) *ObjectService {
	return &ObjectService{store: store, grantTTL: grantTTL}
}

// NewStorageKey returns a fresh object key. Keys are always server-generated
// so clients can neither traverse paths nor overwrite existing objects.
func NewStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("uploads/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

// IssueUploadGrant generates a never-reused object key and a time-limited
// write-capable URL scoped to it. Declared image content types are coerced
// to image/png regardless of the client's claim, so the stored type cannot
// be spoofed. A missing name fails with common.ErrorValidation.
func (s *ObjectService) IssueUploadGrant(ctx context.Context, name string, size int64, contentType string) (*UploadGrant, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: missing required field: name", common.ErrorValidation)
	}

	if strings.HasPrefix(contentType, "image/") {
		contentType = "image/png"
	}

	key := NewStorageKey()

	uploadURL, err := s.store.PresignPut(ctx, key, s.grantTTL)
	if err != nil {
		return nil, fmt.Errorf("error issuing upload grant: %w", err)
	}

	return &UploadGrant{
		UploadURL:  uploadURL,
		ObjectPath: objectstore.ExternalPath(key),
		Metadata:   ObjectMetadata{Name: name, Size: size, ContentType: contentType},
	}, nil
}

// ReadObject decodes externalPath through the codec and streams the backing
// object. Unknown keys and undecodable paths fail with common.ErrorNotFound;
// any other backing failure is a service error.
func (s *ObjectService) ReadObject(ctx context.Context, externalPath string) (*objectstore.Object, error) {
	key, err := objectstore.StorageKey(externalPath)
	if err != nil {
		return nil, common.ErrorNotFound
	}

	obj, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error reading object: %w", err)
	}

	return obj, nil
}
