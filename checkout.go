package git

import (
	"os"
	"path/filepath"

	"govc/ginternals"
	"govc/ginternals/object"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// Checkout writes the tree pointed to by oid (a tree, or a commit's
// tree) to destPath, recreating its directory structure. oid may be a
// tree id or a commit id. destPath must either not exist yet, or be an
// empty directory.
func (r *Repository) Checkout(oid ginternals.Oid, destPath string) error {
	o, err := r.Object(oid)
	if err != nil {
		return xerrors.Errorf("could not get object %s: %w", oid.String(), err)
	}

	var t *object.Tree
	switch o.Type() {
	case object.TypeCommit:
		c, err := o.AsCommit()
		if err != nil {
			return xerrors.Errorf("could not read commit %s: %w", oid.String(), err)
		}
		t, err = r.GetTree(c.TreeID())
		if err != nil {
			return xerrors.Errorf("could not get tree %s: %w", c.TreeID().String(), err)
		}
	case object.TypeTree:
		t, err = o.AsTree()
		if err != nil {
			return xerrors.Errorf("could not read tree %s: %w", oid.String(), err)
		}
	default:
		return xerrors.Errorf("object %s is a %s, expected a commit or a tree", oid.String(), o.Type().String())
	}

	empty, err := r.destPathIsUsable(destPath)
	if err != nil {
		return err
	}
	if !empty {
		return xerrors.Errorf("%s is not an empty directory", destPath)
	}

	if err := r.wt.MkdirAll(destPath, 0o755); err != nil {
		return xerrors.Errorf("could not create %s: %w", destPath, err)
	}

	return r.checkoutTree(t, destPath)
}

func (r *Repository) destPathIsUsable(destPath string) (bool, error) {
	info, err := r.wt.Stat(destPath)
	if err != nil {
		// a path that doesn't exist yet is usable, we'll create it
		return true, nil //nolint:nilerr // afero returns a generic os.IsNotExist-compatible error here
	}
	if !info.IsDir() {
		return false, xerrors.Errorf("%s is not a directory", destPath)
	}

	entries, err := afero.ReadDir(r.wt, destPath)
	if err != nil {
		return false, xerrors.Errorf("could not list %s: %w", destPath, err)
	}
	return len(entries) == 0, nil
}

func (r *Repository) checkoutTree(t *object.Tree, destPath string) error {
	for _, e := range t.Entries() {
		dest := filepath.Join(destPath, e.Path)

		o, err := r.Object(e.ID)
		if err != nil {
			return xerrors.Errorf("could not get object %s: %w", e.ID.String(), err)
		}

		switch o.Type() {
		case object.TypeTree:
			sub, err := o.AsTree()
			if err != nil {
				return xerrors.Errorf("could not read tree %s: %w", e.ID.String(), err)
			}
			if err := r.wt.MkdirAll(dest, 0o755); err != nil {
				return xerrors.Errorf("could not create %s: %w", dest, err)
			}
			if err := r.checkoutTree(sub, dest); err != nil {
				return err
			}
		case object.TypeBlob:
			if err := afero.WriteFile(r.wt, dest, o.AsBlob().Bytes(), fileModeFor(e.Mode)); err != nil {
				return xerrors.Errorf("could not write %s: %w", dest, err)
			}
		default:
			return xerrors.Errorf("unexpected object type %s for tree entry %s", o.Type().String(), e.Path)
		}
	}
	return nil
}

func fileModeFor(mode object.TreeObjectMode) os.FileMode {
	if mode == object.ModeExecutable {
		return 0o755
	}
	return 0o644
}
