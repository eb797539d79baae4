package main

import (
	"fmt"
	"io"

	"govc/ginternals"
	"govc/internal/errutil"
	"github.com/spf13/cobra"
)

func newShowRefCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show-ref",
		Short: "List references",
		Args:  cobra.NoArgs,
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return showRefCmd(cmd.OutOrStdout(), cfg)
	}

	return cmd
}

func showRefCmd(out io.Writer, cfg *globalFlags) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	return r.WalkReferences(func(ref *ginternals.Reference) error {
		if ref.Type() != ginternals.OidReference {
			return nil
		}
		fmt.Fprintf(out, "%s %s\n", ref.Target().String(), ref.Name())
		return nil
	})
}
