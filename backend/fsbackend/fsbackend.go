// Package fsbackend contains an implementation of the backend.Backend
// interface for the filesystem. It stores every object as a loose,
// zlib-compressed file under .git/objects and every reference as a
// plain file under .git/refs (or .git/HEAD), the way a git repository
// looks before it has ever been repacked.
package fsbackend

import (
	"path/filepath"
	"sync"

	"govc/backend"
	"govc/internal/cache"
	"govc/internal/gitpath"
	"govc/internal/syncutil"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// we make sure the struct implements the interface
var _ backend.Backend = (*Backend)(nil)

// defaultCacheSize is the number of inflated objects kept in memory
const defaultCacheSize = 128

// defaultMutexPoolSize is the number of stripes used by the backend's
// keyed mutex
const defaultMutexPoolSize = 32

// Backend is a Backend implementation that uses the filesystem to
// store data
type Backend struct {
	root string
	fs   afero.Fs

	// objectMu serializes concurrent access to a given object
	// without forcing every single write through one global lock
	objectMu *syncutil.NamedMutex
	// cache holds recently accessed objects, since inflating the same
	// loose object over and over is wasteful
	cache *cache.LRU

	// looseObjects tracks the oids known to exist on disk: the ones
	// written by this backend and the ones found by
	// WalkLooseObjectIDs(), which walks this set
	looseObjects sync.Map
}

// New returns a new Backend object
func New(dotGitPath string) *Backend {
	return &Backend{
		root:     dotGitPath,
		fs:       afero.NewOsFs(),
		objectMu: syncutil.NewNamedMutex(defaultMutexPoolSize),
		cache:    cache.NewLRU(defaultCacheSize),
	}
}

// Close frees the resources held by the backend
func (b *Backend) Close() error {
	b.cache.Clear()
	return nil
}

// Init initializes a repository
func (b *Backend) Init() error {
	// Create the directories
	dirs := []string{
		gitpath.ObjectsPath,
		gitpath.RefsTagsPath,
		gitpath.RefsHeadsPath,
		gitpath.ObjectsInfoPath,
	}
	for _, d := range dirs {
		fullPath := filepath.Join(b.root, d)
		if err := b.fs.MkdirAll(fullPath, 0o750); err != nil {
			return xerrors.Errorf("could not create directory %s: %w", d, err)
		}
	}

	// Create the files with the default content
	// (taken from a repo created on github)
	files := []struct {
		path    string
		content []byte
	}{
		{
			path:    gitpath.DescriptionPath,
			content: []byte("Unnamed repository; edit this file 'description' to name the repository.\n"),
		},
	}
	for _, f := range files {
		fullPath := filepath.Join(b.root, f.path)
		if err := afero.WriteFile(b.fs, fullPath, f.content, 0o644); err != nil {
			return xerrors.Errorf("could not create file %s: %w", f, err)
		}
	}

	err := b.setDefaultCfg()
	if err != nil {
		return xerrors.Errorf("could not set the default config: %w", err)
	}

	return nil
}
