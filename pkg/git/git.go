package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CloneURL builds the clone address of org/name on host, either as an SSH
// scp-like address or as an HTTPS URL.
func CloneURL(host, org, name string, ssh bool) string {
	if ssh {
		return fmt.Sprintf("git@%s:%s/%s", host, org, name)
	}
	return fmt.Sprintf("https://%s/%s/%s", host, org, name)
}

// ExecCloner shells out to the git client found on PATH, so credentials,
// SSH keys and proxies come from the user's own git configuration.
type ExecCloner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (c ExecCloner) Clone(ctx context.Context, url, path string) error {
	cmd := c.command(ctx, url, path)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git clone %s: %w", url, err)
	}
	return nil
}

func (c ExecCloner) command(ctx context.Context, url, path string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, gitBinary, "clone", url, path)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	return cmd
}

// GoGitCloner clones in-process. The clone lands in a hidden staging
// directory beside path and is renamed into place once complete.
type GoGitCloner struct {
	auth     transport.AuthMethod
	Progress io.Writer
}

// NewGoGitCloner authenticates HTTPS clones with token. SSH clones use the
// default go-git SSH auth, which talks to the running ssh-agent.
func NewGoGitCloner(token string, ssh bool) *GoGitCloner {
	c := &GoGitCloner{}
	if !ssh && token != "" {
		c.auth = &githttp.BasicAuth{
			Username: tokenBasicAuthLogin,
			Password: token,
		}
	}
	return c
}

func (c *GoGitCloner) Clone(ctx context.Context, url, path string) error {
	staging := filepath.Join(filepath.Dir(path), stagingDirPrefix+uuid.NewString())

	_, err := git.PlainCloneContext(ctx, staging, false, &git.CloneOptions{
		URL:      url,
		Auth:     c.auth,
		Progress: c.Progress,
	})
	if err != nil {
		os.RemoveAll(staging)
		return fmt.Errorf("clone %s: %w", url, err)
	}

	if err := os.Rename(staging, path); err != nil {
		os.RemoveAll(staging)
		return err
	}
	return nil
}

// CloneAll clones every name missing from fs, one after the other, into
// fs.Root(). A failed clone is logged and recorded in its result; it never
// stops the remaining clones. Only context cancellation ends the loop early.
func CloneAll(ctx context.Context, cloner Cloner, fs billy.Filesystem, names []string,
	opts CloneOptions, log logrus.FieldLogger) []CloneResult {
	results := make([]CloneResult, 0, len(names))
	for _, name := range names {
		if ctx.Err() != nil {
			break
		}

		result := CloneResult{
			Name: name,
			URL:  CloneURL(opts.Host, opts.Org, name, opts.SSH),
		}

		exists, err := isDir(fs, name)
		if err != nil {
			result.Error = err
			log.WithError(err).Warnf("Could not inspect %s", name)
			results = append(results, result)
			continue
		}
		if exists {
			result.Skipped = true
			log.Debugf("Skipping %s, already present", name)
			results = append(results, result)
			continue
		}

		log.Debugf("Cloning %s", result.URL)
		if err := cloner.Clone(ctx, result.URL, filepath.Join(fs.Root(), name)); err != nil {
			result.Error = err
			log.WithError(err).Warnf("Failed to clone %s", name)
		}
		results = append(results, result)
	}

	return results
}

// Failed returns the results that carry an error.
func Failed(results []CloneResult) []CloneResult {
	var failed []CloneResult
	for _, r := range results {
		if r.Error != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

func isDir(fs billy.Filesystem, name string) (bool, error) {
	fi, err := fs.Stat(name)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return fi.IsDir(), nil
}
