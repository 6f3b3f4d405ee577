package content_test

import (
	"os"
	"path/filepath"
	"testing"

	"coach-backend/internal/content"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogIsComplete(t *testing.T) {
	catalog := content.Default()

	require.NotEmpty(t, catalog[content.DefaultKey])
	for key, entries := range catalog {
		require.NotEmpty(t, entries, "group %s", key)
		for _, e := range entries {
			assert.NotEmpty(t, e.Video)
			assert.NotEmpty(t, e.Tip)
			assert.NotEmpty(t, e.NextStep)
		}
	}
}

func TestResolveKnownKey(t *testing.T) {
	catalog := content.Default()

	entries := catalog.Resolve("loan_closing_technique")
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Tip, "closing")
}

func TestResolveUnknownKeyFallsBackToDefault(t *testing.T) {
	catalog := content.Default()

	assert.Equal(t, catalog[content.DefaultKey], catalog.Resolve("unknown_product"))
}

func TestResolveIsCaseSensitive(t *testing.T) {
	catalog := content.Default()

	// Keys are expected pre-normalized; a cased key is not a match.
	assert.Equal(t, catalog[content.DefaultKey], catalog.Resolve("Loan_Closing_Technique"))
}

func TestHas(t *testing.T) {
	catalog := content.Default()

	assert.True(t, catalog.Has("insurance_claim_process"))
	assert.False(t, catalog.Has("unknown_topic"))
	assert.True(t, catalog.Has(content.DefaultKey))
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"default": [{"video": "https://example.com/v", "tip": "tip", "next_step": "step"}],
		"loan": [{"video": "https://example.com/loan", "tip": "loan tip", "next_step": "loan step"}]
	}`), 0644))

	catalog, err := content.Load(path)
	require.NoError(t, err)
	assert.True(t, catalog.Has("loan"))
	assert.ElementsMatch(t, []string{"loan"}, catalog.Topics())
}

func TestLoadCatalogRequiresDefaultGroup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"loan": [{"video": "v", "tip": "t", "next_step": "s"}]
	}`), 0644))

	_, err := content.Load(path)
	assert.ErrorContains(t, err, "default")
}

func TestLoadCatalogRejectsEmptyFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"default": [{"video": "", "tip": "t", "next_step": "s"}]
	}`), 0644))

	_, err := content.Load(path)
	assert.Error(t, err)
}
