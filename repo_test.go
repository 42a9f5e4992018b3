package reposnap

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-billy.v4/memfs"
	"gopkg.in/src-d/go-billy.v4/util"
	"gopkg.in/src-d/go-git.v4"
	"gopkg.in/src-d/go-git.v4/plumbing"
	"gopkg.in/src-d/go-git.v4/plumbing/object"
	"gopkg.in/src-d/go-git.v4/plumbing/transport"
	"gopkg.in/src-d/go-git.v4/plumbing/transport/client"
	"gopkg.in/src-d/go-git.v4/plumbing/transport/server"
	"gopkg.in/src-d/go-git.v4/storage/memory"
)

// newTestRepo creates an in-memory repository with a worktree to commit to.
func newTestRepo(t *testing.T) (*git.Repository, billy.Filesystem) {
	t.Helper()

	fs := memfs.New()
	r, err := git.Init(memory.NewStorage(), fs)
	require.NoError(t, err)

	return r, fs
}

// commitAt adds one commit to the repository with the given author and
// committer time and returns its hash.
func commitAt(t *testing.T, r *git.Repository, fs billy.Filesystem, when time.Time) plumbing.Hash {
	t.Helper()

	w, err := r.Worktree()
	require.NoError(t, err)

	content := []byte(fmt.Sprintf("content at %s\n", when))
	require.NoError(t, util.WriteFile(fs, "m", content, 0644))

	_, err = w.Add("m")
	require.NoError(t, err)

	sig := &object.Signature{Name: "test", Email: "test@example.com", When: when}
	h, err := w.Commit(when.String(), &git.CommitOptions{
		Author:    sig,
		Committer: sig,
	})
	require.NoError(t, err)

	return h
}

// serveInProc serves the repository through an in-process transport and
// returns a URL it can be cloned and fetched from.
func serveInProc(t *testing.T, r *git.Repository) string {
	t.Helper()

	proto := fmt.Sprintf("reposnap%d", rand.Uint32())
	url := fmt.Sprintf("%s://repo", proto)

	ep, err := transport.NewEndpoint(url)
	require.NoError(t, err)

	loader := server.MapLoader{ep.String(): r.Storer}
	client.InstallProtocol(proto, server.NewClient(loader))
	t.Cleanup(func() { client.InstallProtocol(proto, nil) })

	return url
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

func mustDate(t *testing.T, s string) Date {
	t.Helper()

	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}
