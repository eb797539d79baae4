package main

import (
	"os"
	"path/filepath"

	"govc/internal/errutil"
	"github.com/spf13/cobra"
)

func newAddCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add PATH...",
		Short: "Add file contents to the index",
		Args:  cobra.MinimumNArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return addCmd(cfg, args)
	}

	return cmd
}

func addCmd(cfg *globalFlags, paths []string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	worktree := cfg.C.String()
	for _, p := range paths {
		abs := p
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(worktree, p)
		}

		data, err := os.ReadFile(abs)
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(worktree, abs)
		if err != nil {
			return err
		}

		if _, err := r.StageBlob(filepath.ToSlash(rel), data); err != nil {
			return err
		}
	}
	return nil
}
