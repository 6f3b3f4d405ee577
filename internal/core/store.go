package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"coach-backend/internal/storage"
)

var (
	// ErrArtifactNotFound means no model has been trained yet. Serving
	// continues without inference; this is never fatal.
	ErrArtifactNotFound = errors.New("model artifact not found")

	// ErrArtifactCorrupt means a blob exists but cannot be used.
	ErrArtifactCorrupt = errors.New("model artifact is corrupt")
)

// SaveArtifact persists the artifact blob. The provider guarantees the write
// is atomic, so readers either see the previous artifact or the new one.
func SaveArtifact(ctx context.Context, provider storage.Provider, bucket, key string, artifact *Artifact) error {
	if !artifact.Valid() {
		return fmt.Errorf("refusing to save incomplete artifact: %w", ErrArtifactCorrupt)
	}
	data, err := artifact.Encode()
	if err != nil {
		return err
	}
	if err := provider.PutObject(ctx, bucket, key, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("saving model artifact %s/%s: %w", bucket, key, err)
	}
	return nil
}

// LoadArtifact fetches and decodes the artifact blob. A missing blob yields
// ErrArtifactNotFound, an undecodable one ErrArtifactCorrupt.
func LoadArtifact(ctx context.Context, provider storage.Provider, bucket, key string) (*Artifact, error) {
	data, err := provider.GetObject(ctx, bucket, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: %s/%s", ErrArtifactNotFound, bucket, key)
		}
		return nil, fmt.Errorf("reading model artifact %s/%s: %w", bucket, key, err)
	}

	artifact, err := DecodeArtifact(data)
	if err != nil {
		slog.Error("model artifact could not be decoded", "bucket", bucket, "key", key, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrArtifactCorrupt, err)
	}
	return artifact, nil
}
