package fsbackend

import (
	"fmt"
	"os"
	"path/filepath"

	"govc/backend"
	"govc/ginternals"
	"govc/internal/gitpath"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// Reference returns a stored reference from its name
// ErrRefNotFound is returned if the reference doesn't exists
func (b *Backend) Reference(name string) (*ginternals.Reference, error) {
	finder := func(name string) ([]byte, error) {
		data, err := afero.ReadFile(b.fs, b.systemPath(name))
		if err != nil {
			if os.IsNotExist(err) {
				return nil, xerrors.Errorf(`ref "%s": %w`, name, ginternals.ErrRefNotFound)
			}
			return nil, xerrors.Errorf("could not read reference content: %w", err)
		}
		return data, nil
	}
	return ginternals.ResolveReference(name, finder)
}

// systemPath returns a path from a ref name
// Ex.: On windows refs/heads/master would return refs\heads\master
func (b *Backend) systemPath(name string) string {
	switch os.PathSeparator {
	case '/':
		return filepath.Join(b.root, name)
	default:
		name = filepath.FromSlash(name)
		return filepath.Join(b.root, name)
	}
}

// WriteReference writes the given reference on disk. If the
// reference already exists it will be overwritten
func (b *Backend) WriteReference(ref *ginternals.Reference) error {
	if !ginternals.IsRefNameValid(ref.Name()) {
		return ginternals.ErrRefNameInvalid
	}

	target := ""
	switch ref.Type() {
	case ginternals.SymbolicReference:
		target = fmt.Sprintf("ref: %s\n", ref.SymbolicTarget())
	case ginternals.OidReference:
		target = fmt.Sprintf("%s\n", ref.Target().String())
	default:
		return xerrors.Errorf("reference type %d: %w", ref.Type(), ginternals.ErrUnknownRefType)
	}

	p := b.systemPath(ref.Name())
	if err := b.fs.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return xerrors.Errorf("could not create directory for reference: %w", err)
	}
	if err := afero.WriteFile(b.fs, p, []byte(target), 0o644); err != nil {
		return xerrors.Errorf("could not persist reference to disk: %w", err)
	}
	return nil
}

// WriteReferenceSafe writes the given reference in the db
// ErrRefExists is returned if the reference already exists
func (b *Backend) WriteReferenceSafe(ref *ginternals.Reference) error {
	if !ginternals.IsRefNameValid(ref.Name()) {
		return ginternals.ErrRefNameInvalid
	}

	p := b.systemPath(ref.Name())
	_, err := b.fs.Stat(p)
	if err == nil {
		return ginternals.ErrRefExists
	}
	if !os.IsNotExist(err) {
		return xerrors.Errorf("could not check if reference exists on disk: %w", err)
	}

	return b.WriteReference(ref)
}

// WalkReferences runs the provided method on all the references stored
// under refs/ (HEAD is intentionally not visited, the way `git
// for-each-ref` behaves)
func (b *Backend) WalkReferences(f backend.RefWalkFunc) error {
	root := filepath.Join(b.root, gitpath.RefsPath)
	err := afero.Walk(b.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// the repo might not have any ref yet
			return nil
		}
		if info.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(b.root, path)
		if relErr != nil {
			return xerrors.Errorf("could not compute reference name for %s: %w", path, relErr)
		}
		name := filepath.ToSlash(rel)

		ref, refErr := b.Reference(name)
		if refErr != nil {
			return xerrors.Errorf("could not resolve reference %s: %w", name, refErr)
		}

		return f(ref)
	})
	if err != nil {
		if xerrors.Is(err, backend.WalkStop) {
			return nil
		}
		return err
	}
	return nil
}
