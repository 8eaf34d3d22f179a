package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orgsync/pkg/github"
)

func TestOptions(t *testing.T) {
	t.Parallel()

	t.Run("should reject a token together with a token file", func(t *testing.T) {
		t.Parallel()

		// given
		cmd, opts := newCommand()
		require.NoError(t, cmd.ParseFlags([]string{"-t", "abc", "-p", "/tmp/token"}))

		// when
		err := opts.validate(cmd)

		// then
		assert.EqualError(t, err, "use either -t/--token or -p/--token_file_path")
	})

	t.Run("should reject an unknown engine", func(t *testing.T) {
		t.Parallel()

		// given
		cmd, opts := newCommand()
		require.NoError(t, cmd.ParseFlags([]string{"--engine", "svn"}))

		// when
		err := opts.validate(cmd)

		// then
		assert.Error(t, err)
	})

	t.Run("should resolve every flag into the config", func(t *testing.T) {
		t.Parallel()

		// given
		tokenFile := filepath.Join(t.TempDir(), "token")
		require.NoError(t, os.WriteFile(tokenFile, []byte("from-file\n"), 0o600))
		cmd, opts := newCommand()
		require.NoError(t, cmd.ParseFlags([]string{
			"-u", "git.example.com", "-e", "-p", tokenFile, "-o", "myorg", "-s", "-n", "-f", "--engine", "go-git", "-v",
		}))

		// when
		require.NoError(t, opts.validate(cmd))
		cfg, err := opts.config()

		// then
		require.NoError(t, err)
		assert.Equal(t, Config{
			BaseURL:       "git.example.com",
			Enterprise:    true,
			Token:         "from-file",
			Org:           "myorg",
			SSH:           true,
			NoDelete:      true,
			ForceDeletion: true,
			Engine:        engineGoGit,
			Verbose:       true,
		}, cfg)
	})

	t.Run("should default the organization to the current folder", func(t *testing.T) {
		t.Parallel()

		// given
		cmd, opts := newCommand()
		require.NoError(t, cmd.ParseFlags([]string{"-t", "abc"}))
		wd, err := os.Getwd()
		require.NoError(t, err)

		// when
		cfg, err := opts.config()

		// then
		require.NoError(t, err)
		assert.Equal(t, filepath.Base(wd), cfg.Org)
		assert.Equal(t, "abc", cfg.Token)
		assert.Equal(t, defaultBaseURL, cfg.BaseURL)
		assert.Equal(t, engineExec, cfg.Engine)
	})

	t.Run("should fail when the token file is missing", func(t *testing.T) {
		t.Parallel()

		// given
		cmd, opts := newCommand()
		require.NoError(t, cmd.ParseFlags([]string{"-p", filepath.Join(t.TempDir(), "missing"), "-o", "myorg"}))

		// when
		_, err := opts.config()

		// then
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		code     int
		expected string
	}{
		{name: "should succeed silently without an error", err: nil, code: 0, expected: ""},
		{name: "should not repeat a flag error", err: ErrCmd, code: 1, expected: ""},
		{name: "should print any other error", err: errors.New("boom"), code: 1, expected: "boom\n"},
		{
			name:     "should print the status and body of an api error",
			err:      fmt.Errorf("listing: %w", &github.APIError{StatusCode: 404, Body: `{"message":"Not Found"}`}),
			code:     1,
			expected: "404\n{\"message\":\"Not Found\"}\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			var stderr bytes.Buffer

			// when
			code := exitCode(tt.err, &stderr)

			// then
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.expected, stderr.String())
		})
	}
}
