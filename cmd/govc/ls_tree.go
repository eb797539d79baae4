package main

import (
	"fmt"
	"io"

	git "govc"
	"govc/ginternals/object"
	"govc/internal/errutil"
	"github.com/spf13/cobra"
)

func newLsTreeCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls-tree TREE-ISH",
		Short: "List the contents of a tree object",
		Args:  cobra.ExactArgs(1),
	}

	recursive := cmd.Flags().BoolP("r", "r", false, "Recurse into sub-trees.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return lsTreeCmd(cmd.OutOrStdout(), cfg, args[0], *recursive)
	}

	return cmd
}

func lsTreeCmd(out io.Writer, cfg *globalFlags, treeIsh string, recursive bool) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	oid, err := r.ResolveRevision(treeIsh)
	if err != nil {
		return err
	}

	o, err := r.Object(oid)
	if err != nil {
		return err
	}
	if o.Type() == object.TypeCommit {
		c, err := o.AsCommit()
		if err != nil {
			return err
		}
		oid = c.TreeID()
	}

	tree, err := r.GetTree(oid)
	if err != nil {
		return err
	}

	return lsTree(out, r, tree, "", recursive)
}

func lsTree(out io.Writer, r *git.Repository, tree *object.Tree, prefix string, recursive bool) error {
	for _, e := range tree.Entries() {
		path := prefix + e.Path
		if recursive && e.Mode.ObjectType() == object.TypeTree {
			sub, err := r.GetTree(e.ID)
			if err != nil {
				return err
			}
			if err := lsTree(out, r, sub, path+"/", recursive); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintf(out, "%06o %s %s\t%s\n", e.Mode, e.Mode.ObjectType().String(), e.ID.String(), path)
	}
	return nil
}
