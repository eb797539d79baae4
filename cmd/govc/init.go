package main

import (
	"io"
	"os"
	"path/filepath"

	git "govc"
	"govc/ginternals"
	"github.com/spf13/cobra"
)

type initCmdFlags struct {
	quiet bool
}

func newInitCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create an empty git repository",
		Args:  cobra.MaximumNArgs(1),
	}

	flags := initCmdFlags{}
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "Only print error and warning messages; all other output will be suppressed.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		directory := cfg.C.String()
		if len(args) > 0 {
			directory = args[0]
		}
		return initCmd(cmd.OutOrStdout(), cfg, flags, directory)
	}

	return cmd
}

func initCmd(out io.Writer, cfg *globalFlags, flags initCmdFlags, directory string) error {
	_, err := os.Stat(filepath.Join(directory, ".git", ginternals.Head))
	newRepo := err != nil

	r, err := git.InitRepositoryWithOptions(directory, git.InitOptions{
		IsBare: cfg.Bare,
	})
	if err != nil {
		return err
	}

	if newRepo {
		fprintln(flags.quiet, out, "Initialized empty Git repository in", r.Path())
	} else {
		fprintln(flags.quiet, out, "Reinitialized existing Git repository in", r.Path())
	}

	return r.Close()
}
