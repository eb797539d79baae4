package main

import (
	"govc/ginternals/object"
	"govc/internal/errutil"
	"github.com/spf13/cobra"
)

func newTagCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag NAME [TARGET]",
		Short: "Create a tag",
		Args:  cobra.RangeArgs(1, 2),
	}

	annotate := cmd.Flags().BoolP("annotate", "a", false, "Create an annotated tag object.")
	message := cmd.Flags().StringP("message", "m", "", "Use the given tag message.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		target := "HEAD"
		if len(args) == 2 {
			target = args[1]
		}
		return tagCmd(cfg, args[0], target, *annotate, *message)
	}

	return cmd
}

func tagCmd(cfg *globalFlags, name, target string, annotate bool, message string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	oid, err := r.ResolveRevision(target)
	if err != nil {
		return err
	}

	if !annotate {
		_, err = r.NewLightweightTag(name, oid)
		return err
	}

	tagger := object.NewSignature(cfg.env.Get("GIT_AUTHOR_NAME"), cfg.env.Get("GIT_AUTHOR_EMAIL"))
	_, err = r.NewAnnotatedTag(name, oid, tagger, message)
	return err
}
