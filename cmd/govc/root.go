package main

import (
	"govc/env"
	"govc/internal/pathutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// globalFlags holds the flags shared by every subcommand
type globalFlags struct {
	// C points to the directory to run as if govc was started from
	C pflag.Value
	// GitDir holds the value of --git-dir. No subcommand reads it: the
	// .git directory is found from C or $GIT_DIR
	GitDir string
	// WorkTree holds the value of --work-tree. No subcommand reads it:
	// the working tree comes from $GIT_WORK_TREE or the config
	WorkTree string
	// Bare states whether the repository has no working directory
	Bare bool

	env *env.Env
}

func newRootCmd(cwd string, e *env.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "govc",
		Short:         "git implementation in pure Go",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cfg := &globalFlags{
		env: e,
	}
	cfg.C = pathutil.NewDirPathFlagWithDefault(cwd)
	cmd.PersistentFlags().VarS(cfg.C, "C", "C", "Run as if govc was started in the provided path instead of the current working directory.")
	cmd.PersistentFlags().StringVar(&cfg.GitDir, "git-dir", "", "Accepted but not applied; the repository is located through -C or the GIT_DIR environment variable.")
	cmd.PersistentFlags().StringVar(&cfg.WorkTree, "work-tree", "", "Accepted but not applied; the working tree is set through the GIT_WORK_TREE environment variable.")
	cmd.PersistentFlags().BoolVar(&cfg.Bare, "bare", false, "Treat the repository as a bare repository.")

	// porcelain
	cmd.AddCommand(newInitCmd(cfg))
	cmd.AddCommand(newLogCmd(cfg))
	cmd.AddCommand(newCheckoutCmd(cfg))
	cmd.AddCommand(newTagCmd(cfg))
	cmd.AddCommand(newAddCmd(cfg))
	cmd.AddCommand(newCommitCmd(cfg))

	// plumbing
	cmd.AddCommand(newCatFileCmd(cfg))
	cmd.AddCommand(newHashObjectCmd())
	cmd.AddCommand(newLsTreeCmd(cfg))
	cmd.AddCommand(newShowRefCmd(cfg))
	cmd.AddCommand(newRevParseCmd(cfg))

	return cmd
}
