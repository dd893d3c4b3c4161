package phrases

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	p := Default()
	assert.Contains(t, p.Welcome, "APPICS bounty campaign")
	assert.Len(t, p.Suggestions, 6)
	assert.Equal(t, "Here's the analysis:", p.Analysis)
	assert.Equal(t, "Here are the results:", p.Results)
	assert.Equal(t, "entries", p.Labels.Default)
}

func TestFoundEntries(t *testing.T) {
	p := Default()
	assert.Equal(t, "Found 3 entries:", p.FoundEntries(3, ""))
	assert.Equal(t, "Found 12 email addresses:", p.FoundEntries(12, p.Labels.Email))
}

func TestServiceUnavailable(t *testing.T) {
	p := Default()
	assert.Equal(t,
		"Sorry, the service is temporarily unavailable (503). Please try again in a moment.",
		p.ServiceUnavailable(503))
}

func TestLoad(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		p, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), p)
	})

	t.Run("file overrides selected entries", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "phrases.yaml")
		content := "found: \"{n} {label} matched\"\nlabels:\n  default: rows\nsuggestions:\n  - Only one\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		p, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "7 rows matched", p.FoundEntries(7, ""))
		assert.Equal(t, []string{"Only one"}, p.Suggestions)
		assert.Equal(t, "Instagram accounts", p.Labels.Instagram)
		assert.Equal(t, Default().Apology, p.Apology)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("found: [unterminated"), 0o600))
		_, err := Load(path)
		require.Error(t, err)
	})
}
