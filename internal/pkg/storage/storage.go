package storage

import (
	"context"
	"io"
	"time"
)

type FileStorage interface {
	// Upload stores file under path and returns the cleaned key.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a file. Missing files are not an error.
	Delete(ctx context.Context, path string) error

	// GetURL returns a URL the client can fetch the file from.
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	Exists(ctx context.Context, path string) (bool, error)
}
