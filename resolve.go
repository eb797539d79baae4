package git

import (
	"errors"

	"govc/ginternals"
	"golang.org/x/xerrors"
)

// ErrInvalidRevision is returned by ResolveRevision when name doesn't
// match an object id, nor any of the reference name variants tried
var ErrInvalidRevision = errors.New("not a valid object name")

// ResolveRevision turns a user-provided revision string into an Oid.
// name may be a full 40-hex object id (abbreviated ids are not
// resolved), a fully
// qualified reference (refs/heads/main), or a short branch/tag name
// (main, v1.0.0). The well-known name ginternals.Head is tried as-is,
// since it is already a fully qualified reference name.
func (r *Repository) ResolveRevision(name string) (ginternals.Oid, error) {
	if oid, err := ginternals.NewOidFromStr(name); err == nil {
		if _, err := r.Object(oid); err == nil {
			return oid, nil
		}
	}

	candidates := []string{
		name,
		ginternals.RefFullName(name),
		ginternals.LocalBranchFullName(name),
		ginternals.LocalTagFullName(name),
	}

	seen := map[string]struct{}{}
	for _, refName := range candidates {
		if _, ok := seen[refName]; ok {
			continue
		}
		seen[refName] = struct{}{}

		ref, err := r.Reference(refName)
		if err == nil {
			return ref.Target(), nil
		}
		if !errors.Is(err, ginternals.ErrRefNotFound) {
			return ginternals.NullOid, xerrors.Errorf("could not look up reference %s: %w", refName, err)
		}
	}

	return ginternals.NullOid, xerrors.Errorf("%s: %w", name, ErrInvalidRevision)
}
