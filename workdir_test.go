package reposnap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkDirEmptyPath(t *testing.T) {
	assert := assert.New(t)

	_, err := NewWorkDir("")
	assert.True(ErrUnsafePath.Is(err))
}

func TestWorkDirRemoveRefusesUnsafePaths(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	w, err := NewWorkDir(t.TempDir())
	require.NoError(err)

	for _, p := range []string{
		"",
		"/",
		w.Root(),
		"/etc",
		filepath.Dir(w.Root()),
		filepath.Join(w.Root(), ".."),
	} {
		err := w.Remove(p)
		assert.True(ErrUnsafePath.Is(err), "expected unsafe path error for %q", p)
	}
}

func TestWorkDirRemove(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	w, err := NewWorkDir(t.TempDir())
	require.NoError(err)

	repo := w.RepoPath("some-repo")
	require.NoError(os.MkdirAll(filepath.Join(repo, "nested"), 0755))
	require.NoError(os.WriteFile(filepath.Join(repo, "nested", "f"), []byte("x"), 0644))

	assert.NoError(w.Remove(repo))

	_, err = os.Stat(repo)
	assert.True(os.IsNotExist(err))
}

func TestWorkDirRepoPath(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	w, err := NewWorkDir(t.TempDir())
	require.NoError(err)

	assert.Equal(filepath.Join(w.Root(), "lkml"), w.RepoPath("lkml"))
}
