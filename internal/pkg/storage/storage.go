package storage

import (
	"context"
	"io"
)

// Storage abstracts where uploaded item photos live. The rest of the code
// only ever deals in relative paths.
type Storage interface {
	// Save writes content under the given relative path.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the file stored under the given relative path.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the file stored under the given relative path.
	Delete(ctx context.Context, path string) error
}
