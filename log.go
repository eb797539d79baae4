package git

import (
	"errors"

	"govc/backend"
	"govc/ginternals"
	"govc/ginternals/object"
	"golang.org/x/xerrors"
)

// LogEntryFunc is called once per commit visited by WalkHistory. Return
// WalkStop to stop the walk early without it being treated as an error.
type LogEntryFunc = func(c *object.Commit) error

// Log returns the commit history starting at oid, in the order
// WalkHistory visits it: the starting commit comes first, and every
// parent of a merge commit is followed, first parent first.
func (r *Repository) Log(oid ginternals.Oid) ([]*object.Commit, error) {
	var commits []*object.Commit
	err := r.WalkHistory(oid, func(c *object.Commit) error {
		commits = append(commits, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return commits, nil
}

// WalkHistory walks the ancestry graph of oid depth-first, calling f
// once per commit. Each commit is visited at most once even if it is
// reachable through more than one path (e.g. after a merge).
func (r *Repository) WalkHistory(oid ginternals.Oid, f LogEntryFunc) error {
	seen := map[ginternals.Oid]struct{}{}
	return r.walkHistory(oid, seen, f)
}

func (r *Repository) walkHistory(oid ginternals.Oid, seen map[ginternals.Oid]struct{}, f LogEntryFunc) error {
	if oid.IsZero() {
		return nil
	}
	if _, ok := seen[oid]; ok {
		return nil
	}
	seen[oid] = struct{}{}

	c, err := r.GetCommit(oid)
	if err != nil {
		return xerrors.Errorf("could not get commit %s: %w", oid.String(), err)
	}

	if err := f(c); err != nil {
		if errors.Is(err, backend.WalkStop) {
			return nil
		}
		return err
	}

	for _, parentID := range c.ParentIDs() {
		if err := r.walkHistory(parentID, seen, f); err != nil {
			return err
		}
	}
	return nil
}
