package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/go-git/go-billy/v5"
	"github.com/sirupsen/logrus"

	"orgsync/pkg/folders"
	"orgsync/pkg/git"
	"orgsync/pkg/github"
)

type syncer struct {
	cfg       Config
	apiURL    string
	cloner    git.Cloner
	confirmer folders.Confirmer
	fs        billy.Filesystem
	out       io.Writer
	log       logrus.FieldLogger
}

// run lists the organization, clones what is missing and reconciles the
// working directory, in that order. Listing must complete before anything
// touches the filesystem.
func (s *syncer) run(ctx context.Context) error {
	names, err := s.listRepositories(ctx)
	if err != nil {
		return err
	}

	s.log.Info("Cloning all repositories...")
	results := git.CloneAll(ctx, s.cloner, s.fs, names, git.CloneOptions{
		Host: s.cfg.BaseURL,
		Org:  s.cfg.Org,
		SSH:  s.cfg.SSH,
	}, s.log)
	if failed := git.Failed(results); len(failed) > 0 {
		s.log.Warnf("%d of %d repositories could not be cloned", len(failed), len(names))
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if !s.cfg.NoDelete {
		r := folders.Reconciler{
			FS:        s.fs,
			Confirmer: s.confirmer,
			Force:     s.cfg.ForceDeletion,
			Out:       s.out,
			Log:       s.log,
		}
		if _, err := r.Run(names); err != nil {
			return err
		}
	}

	s.log.Info("Done.")
	fmt.Fprintln(s.out, "--------------------------------")
	fmt.Fprintln(s.out, "Thanks for using the GitHub Sync Organization Repository Tool!")
	fmt.Fprintln(s.out, "--------------------------------")
	return nil
}

func (s *syncer) listRepositories(ctx context.Context) ([]string, error) {
	client, err := github.NewClient(ctx, s.cfg.Token, s.apiURL)
	if err != nil {
		return nil, err
	}

	var names []string
	pages := client.OrgRepositories(s.cfg.Org)
	for pages.Next(ctx) {
		names = append(names, pages.Page()...)
		s.log.Infof("Parsed %d repos", len(names))
	}
	if err := pages.Err(); err != nil {
		return nil, err
	}
	return names, nil
}
