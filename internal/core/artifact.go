package core

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// Artifact is the persisted training output: the fitted pipeline plus the
// ordered label list. Class index i produced by the pipeline means
// Labels[i]; the pipeline output is meaningless without the list, so the two
// are only ever stored and loaded together.
type Artifact struct {
	Pipeline *Pipeline
	Labels   []string
}

// Valid reports whether the artifact has both required components.
func (a *Artifact) Valid() bool {
	return a != nil && a.Pipeline != nil && len(a.Labels) > 0
}

// Predict maps one observation to a weak-topic label. It never fails hard:
// a nil or malformed artifact, a classifier error, or an out-of-range class
// index all yield ok=false, since an unavailable prediction is a normal
// condition the caller falls back from.
func (a *Artifact) Predict(productType string, attempts, successes int) (string, bool) {
	if !a.Valid() {
		return "", false
	}
	idx, ok := a.Pipeline.Predict(Example{
		ProductType: NormalizeProductType(productType),
		Attempts:    float64(attempts),
		Successes:   float64(successes),
	})
	if !ok || idx < 0 || idx >= len(a.Labels) {
		return "", false
	}
	return a.Labels[idx], true
}

// Encode serializes the artifact to an opaque blob.
func (a *Artifact) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(a); err != nil {
		return nil, fmt.Errorf("encoding model artifact: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeArtifact deserializes an artifact blob and rejects blobs missing
// either the pipeline or the label list.
func DecodeArtifact(data []byte) (*Artifact, error) {
	var artifact Artifact
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&artifact); err != nil {
		return nil, fmt.Errorf("decoding model artifact: %w", err)
	}
	if !artifact.Valid() {
		return nil, fmt.Errorf("model artifact is missing pipeline or labels")
	}
	return &artifact, nil
}
