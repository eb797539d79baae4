package main

import (
	"fmt"
	"io"

	"govc/ginternals"
	"govc/ginternals/object"
	"govc/internal/errutil"
	"github.com/spf13/cobra"
)

func newCommitCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Record changes staged in the index to the repository",
		Args:  cobra.NoArgs,
	}

	message := cmd.Flags().StringP("message", "m", "", "Use the given commit message.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return commitCmd(cmd.OutOrStdout(), cfg, *message)
	}

	return cmd
}

func commitCmd(out io.Writer, cfg *globalFlags, message string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	idx, err := r.Index()
	if err != nil {
		return err
	}

	tb := r.NewTreeBuilder()
	for _, e := range idx.Entries {
		mode := object.ModeFile
		if e.Mode&0o111 != 0 {
			mode = object.ModeExecutable
		}
		if err := tb.Insert(e.Path, e.ID, mode); err != nil {
			return err
		}
	}

	tree, err := tb.Write()
	if err != nil {
		return err
	}

	var parents []ginternals.Oid
	if headOid, err := r.ResolveRevision(ginternals.Head); err == nil {
		parents = append(parents, headOid)
	}

	author := object.NewSignature(cfg.env.Get("GIT_AUTHOR_NAME"), cfg.env.Get("GIT_AUTHOR_EMAIL"))
	c, err := r.NewCommit(ginternals.LocalBranchFullName(ginternals.Master), tree.ID(), author, &object.CommitOptions{
		Message:   message,
		ParentsID: parents,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, c.ID().String())
	return nil
}
