package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned by GetObject when no blob exists under the
// requested key. Callers that can run without the blob (e.g. serving with no
// trained model) match on it with errors.Is.
var ErrObjectNotFound = errors.New("object not found")

// Provider is the blob store holding trained model artifacts.
type Provider interface {
	PutObject(ctx context.Context, bucket, key string, data io.Reader) error

	GetObject(ctx context.Context, bucket, key string) ([]byte, error)

	ObjectExists(ctx context.Context, bucket, key string) (bool, error)

	DeleteObject(ctx context.Context, bucket, key string) error
}
