package folders

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/sirupsen/logrus"
)

// LocalDirectories lists the sub-directories of the root of fs. Plain files
// are ignored.
func LocalDirectories(fs billy.Filesystem) ([]string, error) {
	entries, err := fs.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", fs.Root(), err)
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// Diff returns the sorted names of local that are absent from remote.
func Diff(local, remote []string) []string {
	known := make(map[string]struct{}, len(remote))
	for _, name := range remote {
		known[name] = struct{}{}
	}

	diff := []string{}
	for _, name := range local {
		if _, ok := known[name]; !ok {
			diff = append(diff, name)
		}
	}
	sort.Strings(diff)
	return diff
}

// Reconciler removes local directories that have no remote counterpart.
type Reconciler struct {
	FS        billy.Filesystem
	Confirmer Confirmer
	Force     bool
	Out       io.Writer
	Log       logrus.FieldLogger
}

// Run deletes every local directory missing from remote and returns the
// deleted names. A declined confirmation deletes nothing and is not an error.
func (r Reconciler) Run(remote []string) ([]string, error) {
	local, err := LocalDirectories(r.FS)
	if err != nil {
		return nil, err
	}

	diff := Diff(local, remote)
	if len(diff) == 0 {
		fmt.Fprintln(r.Out, "Did not find any folders that are not in the organization.")
		return nil, nil
	}

	fmt.Fprintln(r.Out, "The following folders are not in the organization:")
	for _, name := range diff {
		fmt.Fprintln(r.Out, name)
	}

	if !r.Force {
		ok, err := r.Confirmer.Confirm(confirmQuestion)
		if err != nil {
			return nil, fmt.Errorf("confirmation failed: %w", err)
		}
		if !ok {
			r.Log.Info("Keeping the folders")
			return nil, nil
		}
	}

	r.Log.Info("Deleting the folders...")
	deleted := make([]string, 0, len(diff))
	for _, name := range diff {
		if err := util.RemoveAll(r.FS, name); err != nil {
			return deleted, fmt.Errorf("failed to delete %s: %w", name, err)
		}
		r.Log.Debugf("Deleted %s", name)
		deleted = append(deleted, name)
	}
	return deleted, nil
}
