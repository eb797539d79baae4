package main

import (
	"fmt"
	"io"

	"govc/internal/errutil"
	"github.com/spf13/cobra"
)

func newRevParseCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rev-parse REVISION",
		Short: "Pick out and massage parameters",
		Args:  cobra.MaximumNArgs(1),
	}

	gitDir := cmd.Flags().Bool("git-dir", false, "Show the path to the .git directory instead of resolving a revision.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if *gitDir {
			return revParseGitDirCmd(cmd.OutOrStdout(), cfg)
		}
		if len(args) != 1 {
			return fmt.Errorf("revision required")
		}
		return revParseCmd(cmd.OutOrStdout(), cfg, args[0])
	}

	return cmd
}

func revParseGitDirCmd(out io.Writer, cfg *globalFlags) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	fmt.Fprintln(out, r.Path())
	return nil
}

func revParseCmd(out io.Writer, cfg *globalFlags, rev string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	oid, err := r.ResolveRevision(rev)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, oid.String())
	return nil
}
