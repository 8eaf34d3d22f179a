package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"orgsync/cmd/common"
	"orgsync/pkg/folders"
	"orgsync/pkg/git"
	"orgsync/pkg/github"
)

var ErrCmd = errors.New("errCmd")

func NewCommand() *cobra.Command {
	rootCmd, _ := newCommand()
	return rootCmd
}

func newCommand() (*cobra.Command, *options) {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "orgsync",
		Short: "Clone all repositories of a GitHub organization and remove folders that are not part of it.",
		Long: `Clone all repositories of a GitHub organization into the current directory.
On top it cleans up the folders that are not part of that organization.

The organization defaults to the name of the current directory and the token
to the first line of ~/.github-token.`,
		Args: cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetOutput(cmd.ErrOrStderr())
			logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return syncMain(cmd, opts)
		},
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	flags := rootCmd.Flags()
	flags.SortFlags = false
	opts.BaseURL = flags.StringP("base_url", "u", defaultBaseURL, "Base URL of the GitHub instance (without http/ssl/git)")
	opts.Enterprise = flags.BoolP("enterprise-api", "e", false, "Call the GitHub Enterprise API")
	opts.Token = flags.StringP("token", "t", "", "Authentication token for the API requests")
	opts.TokenFilePath = flags.StringP("token_file_path", "p", defaultTokenFilePath, "Path to the token file")
	opts.OrgName = flags.StringP("org_name", "o", "", "Name of the organization to clone (default: current directory name)")
	opts.SSL = flags.BoolP("ssl", "s", false, "Clone over ssh instead of https")
	opts.NoDelete = flags.BoolP("no-delete-obsolete-folders", "n", false, "Keep folders that are not part of the organization")
	opts.ForceDeletion = flags.BoolP("force-deletion", "f", false, "Delete folders that are not part of the organization without asking")
	opts.Engine = flags.String("engine", engineExec, "Clone engine: exec (system git) or go-git")
	opts.Verbose = flags.BoolP("verbose", "v", false, "Enable debug output")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		cmd.Printf("Error: %s\n", err)
		return ErrCmd
	})

	return rootCmd, opts
}

func (o options) validate(cmd *cobra.Command) error {
	if cmd.Flags().Changed("token") && cmd.Flags().Changed("token_file_path") {
		return errors.New("use either -t/--token or -p/--token_file_path")
	}
	if *o.Engine != engineExec && *o.Engine != engineGoGit {
		return fmt.Errorf("unknown engine %q, use %s or %s", *o.Engine, engineExec, engineGoGit)
	}
	return nil
}

func (o options) config() (Config, error) {
	org := *o.OrgName
	if org == "" {
		name, err := common.CurrentFolderName()
		if err != nil {
			return Config{}, err
		}
		org = name
	}

	token, err := common.ResolveToken(*o.Token, *o.TokenFilePath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read token: %w", err)
	}

	return Config{
		BaseURL:       *o.BaseURL,
		Enterprise:    *o.Enterprise,
		Token:         token,
		Org:           org,
		SSH:           *o.SSL,
		NoDelete:      *o.NoDelete,
		ForceDeletion: *o.ForceDeletion,
		Engine:        *o.Engine,
		Verbose:       *o.Verbose,
	}, nil
}

func syncMain(cmd *cobra.Command, opts *options) error {
	if err := opts.validate(cmd); err != nil {
		return err
	}

	cfg, err := opts.config()
	if err != nil {
		return err
	}
	if cfg.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	var cloner git.Cloner = git.ExecCloner{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
	if cfg.Engine == engineGoGit {
		gc := git.NewGoGitCloner(cfg.Token, cfg.SSH)
		gc.Progress = cmd.ErrOrStderr()
		cloner = gc
	}

	s := &syncer{
		cfg:       cfg,
		apiURL:    github.APIURL(cfg.BaseURL, cfg.Enterprise),
		cloner:    cloner,
		confirmer: folders.PromptConfirmer{},
		fs:        osfs.New(wd),
		out:       cmd.OutOrStdout(),
		log:       logrus.StandardLogger(),
	}
	return s.run(cmd.Context())
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	rootCmd := NewCommand()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err, rootCmd.ErrOrStderr()))
}

// exitCode reports err on w and maps it to the process exit status.
func exitCode(err error, w io.Writer) int {
	if err == nil {
		return 0
	}

	var apiErr *github.APIError
	switch {
	case errors.As(err, &apiErr):
		fmt.Fprintln(w, apiErr.StatusCode)
		fmt.Fprintln(w, apiErr.Body)
	case err != ErrCmd:
		fmt.Fprintln(w, err)
	}
	return 1
}
