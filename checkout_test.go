package git

import (
	"path/filepath"
	"testing"

	"govc/ginternals"
	"govc/ginternals/object"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckout(t *testing.T) {
	t.Parallel()

	r, err := InitRepository(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, r.Close()) })
	r.wt = afero.NewMemMapFs()

	blob, err := r.NewBlob([]byte("hello world"))
	require.NoError(t, err)

	tb := r.NewTreeBuilder()
	require.NoError(t, tb.Insert("top.txt", blob.ID(), object.ModeFile))

	subTb := r.NewTreeBuilder()
	require.NoError(t, subTb.Insert("nested.txt", blob.ID(), object.ModeFile))
	subTree, err := subTb.Write()
	require.NoError(t, err)
	require.NoError(t, tb.Insert("sub", subTree.ID(), object.ModeDirectory))

	tree, err := tb.Write()
	require.NoError(t, err)

	author := object.NewSignature("author", "author@domain.tld")
	ci, err := r.NewCommit(ginternals.LocalBranchFullName(ginternals.Master), tree.ID(), author, &object.CommitOptions{
		Message: "initial commit",
	})
	require.NoError(t, err)

	dest := "/checkout"
	require.NoError(t, r.Checkout(ci.ID(), dest))

	data, err := afero.ReadFile(r.wt, filepath.Join(dest, "top.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))

	data, err = afero.ReadFile(r.wt, filepath.Join(dest, "sub", "nested.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
}

func TestCheckoutRejectsNonEmptyDestination(t *testing.T) {
	t.Parallel()

	r, _, treeID := testRepoWithObjects(t)
	r.wt = afero.NewMemMapFs()

	dest := "/checkout"
	require.NoError(t, afero.WriteFile(r.wt, filepath.Join(dest, "existing.txt"), []byte("x"), 0o644))

	err := r.Checkout(treeID, dest)
	require.Error(t, err)
}
