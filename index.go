package git

import (
	"os"

	"govc/ginternals"
	"govc/ginternals/index"
	"golang.org/x/xerrors"
)

// Index returns the repository's staging area. A repository that has
// never staged anything returns an empty index rather than an error.
func (r *Repository) Index() (*index.Index, error) {
	data, err := os.ReadFile(ginternals.IndexPath(r.Config))
	if err != nil {
		if os.IsNotExist(err) {
			return index.New(), nil
		}
		return nil, xerrors.Errorf("could not read index file: %w", err)
	}

	idx, err := index.Parse(data)
	if err != nil {
		return nil, xerrors.Errorf("could not parse index file: %w", err)
	}
	return idx, nil
}

// WriteIndex persists the given index as the repository's staging area
func (r *Repository) WriteIndex(idx *index.Index) error {
	data := idx.Serialize()
	if err := os.WriteFile(ginternals.IndexPath(r.Config), data, 0o644); err != nil { //nolint:gosec // index is not a secret
		return xerrors.Errorf("could not write index file: %w", err)
	}
	return nil
}

// StageBlob hashes and persists data as a blob, then stages it in the
// index at the given path, replacing whatever was staged there before
func (r *Repository) StageBlob(path string, data []byte) (ginternals.Oid, error) {
	blob, err := r.NewBlob(data)
	if err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not create blob: %w", err)
	}

	idx, err := r.Index()
	if err != nil {
		return ginternals.NullOid, err
	}

	idx.Add(index.Entry{
		Mode: regularFileMode,
		Size: uint32(len(data)), //nolint:gosec // index file sizes are truncated to 32 bits by the format itself
		ID:   blob.ID(),
		Path: path,
	})

	if err := r.WriteIndex(idx); err != nil {
		return ginternals.NullOid, err
	}
	return blob.ID(), nil
}

// UnstageFile removes path from the index, if present
func (r *Repository) UnstageFile(path string) error {
	idx, err := r.Index()
	if err != nil {
		return err
	}
	idx.Remove(path)
	return r.WriteIndex(idx)
}

// regularFileMode is the mode git stores in the index for blobs staged
// through StageBlob. Symlinks and gitlinks are staged by constructing
// an index.Entry by hand instead.
const regularFileMode = 0o100644
