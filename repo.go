// Package git is the entry point of the library. It exposes a
// Repository type that ties together the object database, the
// reference store and the configuration of a repository.
package git

import (
	"errors"
	"path/filepath"

	"govc/backend"
	"govc/backend/fsbackend"
	"govc/env"
	"govc/ginternals"
	"govc/ginternals/config"
	"govc/ginternals/object"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// ErrRepositoryExists is returned by InitRepository when a repository
// already exists at the requested location
var ErrRepositoryExists = errors.New("repository already exists")

// ErrRepositoryNotExist is returned by OpenRepository when no
// repository could be found at the requested location
var ErrRepositoryNotExist = errors.New("repository does not exist")

// Repository represents a git repository
type Repository struct {
	Config *config.Config

	dotGit backend.Backend
	wt     afero.Fs
}

// InitOptions contains all the options available to create a
// repository
type InitOptions struct {
	// IsBare states whether the repository should have a working
	// directory or not
	IsBare bool
	// GitBackend represents the backend object used to persist
	// objects and references. Defaults to a fsbackend.Backend
	GitBackend backend.Backend
	// WorkingTreeBackend represents the filesystem implementation used
	// to interact with the working directory. Defaults to the OS
	// filesystem. Unused for bare repositories.
	WorkingTreeBackend afero.Fs
}

// InitRepository creates a new repository at the given location
func InitRepository(repoPath string) (*Repository, error) {
	return InitRepositoryWithOptions(repoPath, InitOptions{})
}

// InitRepositoryWithOptions creates a new repository at the given
// location, using the provided options
func InitRepositoryWithOptions(repoPath string, opts InitOptions) (r *Repository, err error) {
	cfg, err := config.LoadConfigSkipEnv(config.LoadConfigOptions{
		WorkingDirectory: repoPath,
		IsBare:           opts.IsBare,
		SkipGitDirLookUp: true,
	})
	if err != nil {
		return nil, xerrors.Errorf("could not load config: %w", err)
	}

	r = &Repository{
		Config: cfg,
		dotGit: opts.GitBackend,
		wt:     opts.WorkingTreeBackend,
	}
	if r.dotGit == nil {
		r.dotGit = fsbackend.New(cfg.GitDirPath)
	}
	if r.wt == nil && !opts.IsBare {
		r.wt = afero.NewOsFs()
	}

	if err = r.dotGit.Init(); err != nil {
		return nil, xerrors.Errorf("could not initialize the odb: %w", err)
	}

	head := ginternals.NewSymbolicReference(ginternals.Head, ginternals.LocalBranchFullName(ginternals.Master))
	if err = r.dotGit.WriteReferenceSafe(head); err != nil {
		if errors.Is(err, ginternals.ErrRefExists) {
			return nil, xerrors.Errorf("%s: %w", repoPath, ErrRepositoryExists)
		}
		return nil, xerrors.Errorf("could not write HEAD: %w", err)
	}

	return r, nil
}

// OpenOptions contains all the options available to open an existing
// repository
type OpenOptions struct {
	// IsBare states whether the repository has a working directory or
	// not
	IsBare bool
	// GitBackend represents the backend object used to persist
	// objects and references. Defaults to a fsbackend.Backend
	GitBackend backend.Backend
	// WorkingTreeBackend represents the filesystem implementation used
	// to interact with the working directory. Defaults to the OS
	// filesystem. Unused for bare repositories.
	WorkingTreeBackend afero.Fs
}

// OpenRepository opens an existing repository located at, or above,
// the given path
func OpenRepository(repoPath string) (*Repository, error) {
	return OpenRepositoryWithOptions(repoPath, OpenOptions{})
}

// OpenRepositoryWithOptions opens an existing repository located at,
// or above, the given path, using the provided options
func OpenRepositoryWithOptions(repoPath string, opts OpenOptions) (r *Repository, err error) {
	cfg, err := config.LoadConfig(env.NewFromOs(), config.LoadConfigOptions{
		WorkingDirectory: repoPath,
		IsBare:           opts.IsBare,
	})
	if err != nil {
		return nil, xerrors.Errorf("could not load config: %w", err)
	}

	r = &Repository{
		Config: cfg,
		dotGit: opts.GitBackend,
		wt:     opts.WorkingTreeBackend,
	}
	if r.dotGit == nil {
		r.dotGit = fsbackend.New(cfg.GitDirPath)
	}
	if r.wt == nil && !opts.IsBare {
		r.wt = afero.NewOsFs()
	}

	if _, err = r.dotGit.Reference(ginternals.Head); err != nil {
		if errors.Is(err, ginternals.ErrRefNotFound) {
			return nil, xerrors.Errorf("%s: %w", repoPath, ErrRepositoryNotExist)
		}
		return nil, xerrors.Errorf("could not resolve HEAD: %w", err)
	}

	return r, nil
}

// IsBare returns whether the repository has no working directory
func (r *Repository) IsBare() bool {
	return r.wt == nil
}

// Close frees all the resources help by the repository
func (r *Repository) Close() error {
	return r.dotGit.Close()
}

// Path returns the path to the .git directory
func (r *Repository) Path() string {
	return r.Config.GitDirPath
}

// WorkingTreePath returns the path to the working directory, or an
// empty string for bare repositories
func (r *Repository) WorkingTreePath() string {
	return r.Config.WorkTreePath
}

// Object returns the object matching the given oid
func (r *Repository) Object(oid ginternals.Oid) (*object.Object, error) {
	o, err := r.dotGit.Object(oid)
	if err != nil {
		return nil, xerrors.Errorf("could not get object %s: %w", oid.String(), err)
	}
	return o, nil
}

// HasObject returns whether an object exists in the odb
func (r *Repository) HasObject(oid ginternals.Oid) (bool, error) {
	return r.dotGit.HasObject(oid)
}

// WriteObject persists an object to the odb and returns its Oid
func (r *Repository) WriteObject(o *object.Object) (ginternals.Oid, error) {
	oid, err := r.dotGit.WriteObject(o)
	if err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not write object: %w", err)
	}
	return oid, nil
}

// NewBlob creates, persists, and returns a new Blob object
func (r *Repository) NewBlob(data []byte) (*object.Blob, error) {
	o := object.New(object.TypeBlob, data)
	if _, err := r.WriteObject(o); err != nil {
		return nil, xerrors.Errorf("could not persist blob: %w", err)
	}
	return o.AsBlob(), nil
}

// GetCommit returns the commit matching the given oid
func (r *Repository) GetCommit(oid ginternals.Oid) (*object.Commit, error) {
	o, err := r.Object(oid)
	if err != nil {
		return nil, err
	}
	return o.AsCommit()
}

// NewCommit creates and persists a new commit on top of the given
// reference
func (r *Repository) NewCommit(refName string, treeID ginternals.Oid, author object.Signature, opts *object.CommitOptions) (*object.Commit, error) {
	c := object.NewCommit(treeID, author, opts)
	if _, err := r.WriteObject(c.ToObject()); err != nil {
		return nil, xerrors.Errorf("could not persist commit: %w", err)
	}

	ref := ginternals.NewReference(refName, c.ID())
	if err := r.dotGit.WriteReference(ref); err != nil {
		return nil, xerrors.Errorf("could not update reference %s: %w", refName, err)
	}
	return c, nil
}

// GetTree returns the tree matching the given oid
func (r *Repository) GetTree(oid ginternals.Oid) (*object.Tree, error) {
	o, err := r.Object(oid)
	if err != nil {
		return nil, err
	}
	return o.AsTree()
}

// GetTag returns the tag matching the given oid
func (r *Repository) GetTag(oid ginternals.Oid) (*object.Tag, error) {
	o, err := r.Object(oid)
	if err != nil {
		return nil, err
	}
	return o.AsTag()
}

// Reference returns the reference matching the given name. name can
// be a full reference name (refs/heads/main), or a well known
// reference like ginternals.Head
func (r *Repository) Reference(name string) (*ginternals.Reference, error) {
	return r.dotGit.Reference(name)
}

// NewReference creates and persists a reference pointing at an Oid
func (r *Repository) NewReference(name string, target ginternals.Oid) (*ginternals.Reference, error) {
	ref := ginternals.NewReference(name, target)
	if err := r.dotGit.WriteReferenceSafe(ref); err != nil {
		return nil, xerrors.Errorf("could not persist reference %s: %w", name, err)
	}
	return ref, nil
}

// NewSymbolicReference creates and persists a reference pointing at
// another reference
func (r *Repository) NewSymbolicReference(name, target string) (*ginternals.Reference, error) {
	ref := ginternals.NewSymbolicReference(name, target)
	if err := r.dotGit.WriteReference(ref); err != nil {
		return nil, xerrors.Errorf("could not persist reference %s: %w", name, err)
	}
	return ref, nil
}

// WalkReferences runs f on every reference stored in the repository
func (r *Repository) WalkReferences(f backend.RefWalkFunc) error {
	return r.dotGit.WalkReferences(f)
}

// WalkObjectIDs runs f on every object id known to the repository
func (r *Repository) WalkObjectIDs(f backend.OidWalkFunc) error {
	return r.dotGit.WalkLooseObjectIDs(f)
}

// NewTreeBuilder returns a TreeBuilder with no entries
func (r *Repository) NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{
		backend: r.dotGit,
	}
}

// NewTreeBuilderFromTree returns a TreeBuilder pre-populated with the
// entries of the given tree
func (r *Repository) NewTreeBuilderFromTree(t *object.Tree) *TreeBuilder {
	entries := make(map[string]object.TreeEntry, len(t.Entries()))
	for _, e := range t.Entries() {
		entries[e.Path] = e
	}
	return &TreeBuilder{
		backend: r.dotGit,
		entries: entries,
	}
}

// absWorkingTreePath joins the given path with the working tree's root
func (r *Repository) absWorkingTreePath(path string) (string, error) {
	if r.IsBare() {
		return "", xerrors.New("repository has no working tree")
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	return filepath.Join(r.Config.WorkTreePath, path), nil
}
