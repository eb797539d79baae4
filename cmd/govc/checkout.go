package main

import (
	"govc/internal/errutil"
	"github.com/spf13/cobra"
)

func newCheckoutCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout COMMIT PATH",
		Short: "Checkout a commit or tree inside of a directory",
		Args:  cobra.ExactArgs(2),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) (err error) {
		r, err := loadRepository(cfg)
		if err != nil {
			return err
		}
		defer errutil.Close(r, &err)

		oid, err := r.ResolveRevision(args[0])
		if err != nil {
			return err
		}
		return r.Checkout(oid, args[1])
	}

	return cmd
}
