// Package storage provides file storage for request enclosures.
//
// This package defines a Storage interface with implementations for:
// - LocalStorage: File system storage for development
// - S3Storage: S3-compatible object storage for production
//
// Enclosures are the files attached to a safety request: activity
// schedules, driver authorizations and similar supporting documents.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Storage defines the interface for file storage operations.
//
// All methods are context-aware for timeout and cancellation support.
type Storage interface {
	// Put stores data at the specified key with the given options.
	// Returns ErrKeyExists if the key is taken and overwrite is disabled.
	Put(ctx context.Context, key string, data io.Reader, opts PutOptions) error

	// Get retrieves the data at the specified key. The caller must close
	// the returned reader. Returns ErrNotFound if the key doesn't exist.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)

	// Delete removes the object at the specified key. Deleting a missing
	// key is not an error.
	Delete(ctx context.Context, key string) error

	// URL returns a URL for accessing the object, presigned for the given
	// duration where the backend supports it.
	URL(ctx context.Context, key string, expires time.Duration) (string, error)

	// Exists checks if an object exists at the specified key.
	Exists(ctx context.Context, key string) (bool, error)
}

// PutOptions configures how an object is stored.
type PutOptions struct {
	// ContentType is the MIME type of the object. If empty, it is
	// detected from the key's extension or the content itself.
	ContentType string

	// MaxSize caps the object size in bytes; 0 means no limit.
	// Oversized uploads fail with ErrTooLarge.
	MaxSize int64

	// Overwrite allows replacing an existing object at the same key.
	Overwrite bool
}

// ObjectInfo contains metadata about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
	ETag         string
}

// LocalConfig holds configuration for local filesystem storage.
type LocalConfig struct {
	// BasePath is the root directory where files are stored.
	BasePath string

	// BaseURL is the public URL prefix for accessing files.
	BaseURL string
}

// S3Config holds configuration for S3-compatible object storage.
type S3Config struct {
	// Endpoint overrides the service URL, for providers that are
	// S3-compatible but not AWS. Empty uses the default AWS endpoint.
	Endpoint string

	AccessKeyID     string
	SecretAccessKey string
	BucketName      string

	// Region defaults to "auto" when the endpoint is custom.
	Region string
}

const (
	// ProviderLocal identifies the local filesystem storage provider.
	ProviderLocal = "local"

	// ProviderS3 identifies the S3-compatible storage provider.
	ProviderS3 = "s3"
)

// EnclosureKey generates a storage key for a request enclosure.
// Format: requests/{requestID}/enclosures/{fieldID}/{uuid}{ext}
func EnclosureKey(requestID, fieldID, filename string) string {
	ext := filepath.Ext(filename)
	return fmt.Sprintf("requests/%s/enclosures/%s/%s%s", requestID, fieldID, uuid.New(), ext)
}

// DocumentKey generates a storage key for an archived request document.
// Format: requests/{requestID}/documents/request.{format}
func DocumentKey(requestID, format string) string {
	return fmt.Sprintf("requests/%s/documents/request.%s", requestID, format)
}
