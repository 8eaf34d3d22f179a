package cmd

const (
	engineExec  = "exec"
	engineGoGit = "go-git"

	defaultBaseURL       = "github.com"
	defaultTokenFilePath = "~/.github-token"
)

type options struct {
	BaseURL       *string
	Enterprise    *bool
	Token         *string
	TokenFilePath *string
	OrgName       *string
	SSL           *bool
	NoDelete      *bool
	ForceDeletion *bool
	Engine        *string
	Verbose       *bool
}

// Config is the resolved, immutable configuration of one run.
type Config struct {
	BaseURL       string
	Enterprise    bool
	Token         string
	Org           string
	SSH           bool
	NoDelete      bool
	ForceDeletion bool
	Engine        string
	Verbose       bool
}
