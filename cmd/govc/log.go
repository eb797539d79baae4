package main

import (
	"fmt"
	"io"

	"govc/ginternals/object"
	"govc/internal/errutil"
	"github.com/spf13/cobra"
)

func newLogCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log [commit]",
		Short: "Show commit logs",
		Args:  cobra.MaximumNArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		rev := "HEAD"
		if len(args) > 0 {
			rev = args[0]
		}
		return logCmd(cmd.OutOrStdout(), cfg, rev)
	}

	return cmd
}

func logCmd(out io.Writer, cfg *globalFlags, rev string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	oid, err := r.ResolveRevision(rev)
	if err != nil {
		return err
	}

	return r.WalkHistory(oid, func(c *object.Commit) error {
		fmt.Fprintf(out, "commit %s\n", c.ID().String())
		fmt.Fprintf(out, "Author: %s\n\n", c.Author().String())
		fmt.Fprintf(out, "    %s\n\n", c.Message())
		return nil
	})
}
