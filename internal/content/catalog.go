// Package content holds the static mapping from weak-skill topics to
// coaching material.
package content

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultKey is the reserved catalog group used when no other key resolves.
// Every catalog must have at least one entry under it.
const DefaultKey = "default"

// Entry is one piece of coaching content: a short training video, a sales
// tip, and a concrete next step for the agent.
type Entry struct {
	Video    string `json:"video"`
	Tip      string `json:"tip"`
	NextStep string `json:"next_step"`
}

// Catalog maps topic keys (pre-normalized, lowercase) to content groups. It
// is fixed at process start and safe for concurrent reads.
type Catalog map[string][]Entry

// Resolve returns the group for key, falling back to the default group when
// the key is unknown. Keys are matched exactly; callers normalize first.
func (c Catalog) Resolve(key string) []Entry {
	if entries, ok := c[key]; ok && len(entries) > 0 {
		return entries
	}
	return c[DefaultKey]
}

// Has reports whether key resolves to its own group (not the default).
func (c Catalog) Has(key string) bool {
	entries, ok := c[key]
	return ok && len(entries) > 0
}

// Topics lists every non-default key, for the /topics endpoint.
func (c Catalog) Topics() []string {
	topics := make([]string, 0, len(c))
	for key := range c {
		if key != DefaultKey {
			topics = append(topics, key)
		}
	}
	return topics
}

func (c Catalog) validate() error {
	if len(c[DefaultKey]) == 0 {
		return fmt.Errorf("catalog has no %q group", DefaultKey)
	}
	for key, entries := range c {
		for _, e := range entries {
			if e.Video == "" || e.Tip == "" || e.NextStep == "" {
				return fmt.Errorf("catalog group %q has an entry with empty fields", key)
			}
		}
	}
	return nil
}

// Load reads a catalog override from a JSON file mapping topic keys to entry
// lists. The file must define a non-empty default group.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content catalog %s: %w", path, err)
	}
	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parsing content catalog %s: %w", path, err)
	}
	if err := catalog.validate(); err != nil {
		return nil, fmt.Errorf("content catalog %s: %w", path, err)
	}
	return catalog, nil
}
