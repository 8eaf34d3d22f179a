package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTokenFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".github-token")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadFirstLine(t *testing.T) {
	t.Parallel()

	t.Run("should return the trimmed first line", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeTokenFile(t, "  ghp_abc123 \nsecond line\n")

		// when
		line, err := ReadFirstLine(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "ghp_abc123", line)
	})

	t.Run("should return an empty string for an empty file", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeTokenFile(t, "")

		// when
		line, err := ReadFirstLine(path)

		// then
		require.NoError(t, err)
		assert.Empty(t, line)
	})

	t.Run("should fail with a filesystem error when the file is missing", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := ReadFirstLine(filepath.Join(t.TempDir(), "missing"))

		// then
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestExpandHome(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "should expand a home-relative path", path: "~/.github-token", expected: filepath.Join(home, ".github-token")},
		{name: "should expand a bare tilde", path: "~", expected: home},
		{name: "should leave absolute paths alone", path: "/etc/token", expected: "/etc/token"},
		{name: "should leave other users alone", path: "~bob/token", expected: "~bob/token"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			result, err := ExpandHome(tt.path)

			// then
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestResolveToken(t *testing.T) {
	t.Parallel()

	t.Run("should prefer the explicit token", func(t *testing.T) {
		t.Parallel()

		// when
		token, err := ResolveToken("explicit", filepath.Join(t.TempDir(), "missing"))

		// then
		require.NoError(t, err)
		assert.Equal(t, "explicit", token)
	})

	t.Run("should fall back to the token file", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeTokenFile(t, "from-file\n")

		// when
		token, err := ResolveToken("", path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "from-file", token)
	})
}
