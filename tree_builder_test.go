package git

import (
	"errors"
	"fmt"
	"testing"

	"govc/ginternals"
	"govc/ginternals/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRepoWithObjects returns a freshly initialized repository
// containing one blob and one tree, and returns their oids
func testRepoWithObjects(t *testing.T) (r *Repository, blobID, treeID ginternals.Oid) {
	t.Helper()

	r, err := InitRepository(t.TempDir())
	require.NoError(t, err, "failed initializing a repo")
	t.Cleanup(func() {
		require.NoError(t, r.Close(), "failed closing repo")
	})

	blob, err := r.NewBlob([]byte("hello world"))
	require.NoError(t, err)
	blobID = blob.ID()

	tb := r.NewTreeBuilder()
	err = tb.Insert("blob", blobID, object.ModeFile)
	require.NoError(t, err)
	tree, err := tb.Write()
	require.NoError(t, err)
	treeID = tree.ID()

	return r, blobID, treeID
}

func TestTreeBuilderInsert(t *testing.T) {
	t.Parallel()

	t.Run("single pass/fail", func(t *testing.T) {
		t.Parallel()

		r, blobID, treeID := testRepoWithObjects(t)

		ci, err := r.NewCommit(ginternals.LocalBranchFullName(ginternals.Master), treeID, object.NewSignature("author", "author@domain.tld"), &object.CommitOptions{
			Message: "initial commit",
		})
		require.NoError(t, err)

		testCases := []struct {
			desc          string
			sha           string
			expectedError error
		}{
			{
				desc:          "should fail inserting an object that doesn't exist",
				sha:           ginternals.NullOid.String(),
				expectedError: ginternals.ErrObjectNotFound,
			},
			{
				desc:          "should fail inserting a commit",
				sha:           ci.ID().String(),
				expectedError: object.ErrObjectInvalid,
			},
			{
				desc: "should pass inserting a blob",
				sha:  blobID.String(),
			},
			{
				desc: "should pass inserting a tree",
				sha:  treeID.String(),
			},
		}
		for i, tc := range testCases {
			tc := tc
			t.Run(fmt.Sprintf("%d/%s", i, tc.desc), func(t *testing.T) {
				t.Parallel()

				oid, err := ginternals.NewOidFromStr(tc.sha)
				require.NoError(t, err)

				tb := r.NewTreeBuilder()
				err = tb.Insert("somewhere", oid, object.ModeFile)
				if tc.expectedError != nil {
					require.Error(t, err)
					assert.True(t, errors.Is(err, tc.expectedError))
				} else {
					require.NoError(t, err)
					assert.Len(t, tb.entries, 1)
				}
			})
		}
	})

	t.Run("should pass inserting multiple objects", func(t *testing.T) {
		t.Parallel()

		r, blobID, treeID := testRepoWithObjects(t)

		tb := r.NewTreeBuilder()

		err := tb.Insert("blob", blobID, object.ModeFile)
		require.NoError(t, err)

		err = tb.Insert("tree", treeID, object.ModeDirectory)
		require.NoError(t, err)

		assert.Len(t, tb.entries, 2)
	})

	t.Run("should pass overwritting a path", func(t *testing.T) {
		t.Parallel()

		r, blobID, treeID := testRepoWithObjects(t)

		tb := r.NewTreeBuilder()

		err := tb.Insert("path", blobID, object.ModeFile)
		require.NoError(t, err)

		err = tb.Insert("path", treeID, object.ModeDirectory)
		require.NoError(t, err)

		assert.Len(t, tb.entries, 1)
		require.Contains(t, tb.entries, "path")
		require.Equal(t, tb.entries["path"].ID, treeID)
		require.Equal(t, tb.entries["path"].Mode, object.ModeDirectory)
	})

	t.Run("should fail with invalid mode", func(t *testing.T) {
		t.Parallel()

		r, blobID, _ := testRepoWithObjects(t)

		tb := r.NewTreeBuilder()

		err := tb.Insert("path", blobID, 0o644)
		require.Error(t, err)
	})
}

func TestTreeBuilderRemove(t *testing.T) {
	t.Parallel()

	t.Run("should remove elements", func(t *testing.T) {
		t.Parallel()

		r, blobID, treeID := testRepoWithObjects(t)

		tb := r.NewTreeBuilder()

		err := tb.Insert("blob", blobID, object.ModeFile)
		require.NoError(t, err)

		err = tb.Insert("tree", treeID, object.ModeDirectory)
		require.NoError(t, err)
		assert.Len(t, tb.entries, 2)

		// Remove the blob
		tb.Remove("blob")
		assert.Len(t, tb.entries, 1)

		// Remove the tree
		tb.Remove("tree")
		assert.Len(t, tb.entries, 0)
	})

	t.Run("should pass removing something that doesn't exists", func(t *testing.T) {
		t.Parallel()

		r, _, _ := testRepoWithObjects(t)

		tb := r.NewTreeBuilder()

		// Remove the blob
		assert.Len(t, tb.entries, 0)
		tb.Remove("blob")
		assert.Len(t, tb.entries, 0)

		// Let's test with an allocated map
		tb.entries = map[string]object.TreeEntry{}
		tb.Remove("blob")
		assert.Len(t, tb.entries, 0)
	})
}

func TestTreeBuilderWrite(t *testing.T) {
	t.Parallel()

	t.Run("should return 4b825dc642cb6eb9a060e54bf8d69288fbee4904 for empty tree", func(t *testing.T) {
		t.Parallel()

		r, err := InitRepository(t.TempDir())
		require.NoError(t, err, "failed initializing a repo")
		t.Cleanup(func() {
			require.NoError(t, r.Close(), "failed closing repo")
		})

		tb := r.NewTreeBuilder()
		tree, err := tb.Write()
		require.NoError(t, err)
		assert.Empty(t, tree.Entries())
		assert.Equal(t, "4b825dc642cb6eb9a060e54bf8d69288fbee4904", tree.ID().String())
	})

	t.Run("should persist tree", func(t *testing.T) {
		t.Parallel()

		r, blobID, treeID := testRepoWithObjects(t)

		tb := r.NewTreeBuilder()

		err := tb.Insert("blob", blobID, object.ModeFile)
		require.NoError(t, err)

		err = tb.Insert("tree", treeID, object.ModeDirectory)
		require.NoError(t, err)

		tree, err := tb.Write()
		require.NoError(t, err)
		assert.Len(t, tb.entries, 2)

		p := ginternals.LooseObjectPath(r.Config, tree.ID().String())
		assert.FileExists(t, p)
	})

	t.Run("building an existing tree should return the same data", func(t *testing.T) {
		t.Parallel()

		r, _, treeID := testRepoWithObjects(t)

		tree, err := r.GetTree(treeID)
		require.NoError(t, err)

		// Create a tree and write it right away
		tb := r.NewTreeBuilderFromTree(tree)
		newTree, err := tb.Write()
		require.NoError(t, err)
		assert.Equal(t, tree.ID().String(), newTree.ID().String())
		assert.Equal(t, tree.Entries(), newTree.Entries())
	})
}
