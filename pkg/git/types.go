package git

import "context"

const (
	gitBinary           = "git"
	stagingDirPrefix    = ".orgsync-"
	tokenBasicAuthLogin = "x-access-token"
)

// Cloner clones the repository at url into path. path must not exist yet.
type Cloner interface {
	Clone(ctx context.Context, url, path string) error
}

type CloneOptions struct {
	Host string
	Org  string
	SSH  bool
}

type CloneResult struct {
	Name    string
	URL     string
	Skipped bool
	Error   error
}
