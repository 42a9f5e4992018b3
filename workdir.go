package reposnap

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-billy.v4/osfs"
	"gopkg.in/src-d/go-billy.v4/util"
	"gopkg.in/src-d/go-errors.v1"
)

// ErrUnsafePath signals an attempt to remove a path outside the work root.
var ErrUnsafePath = errors.NewKind("refusing to remove unsafe path %q")

// WorkDir is the root directory holding all working copies. Destructive
// removal only happens through it, on paths proven to be inside the root.
type WorkDir struct {
	root string
	fs   billy.Filesystem
}

// NewWorkDir creates the work root if needed and returns a WorkDir rooted
// at its absolute path.
func NewWorkDir(path string) (*WorkDir, error) {
	if path == "" {
		return nil, ErrUnsafePath.New(path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, err
	}

	return &WorkDir{root: abs, fs: osfs.New(abs)}, nil
}

// Root returns the absolute path of the work root.
func (w *WorkDir) Root() string {
	return w.root
}

// RepoPath returns the working copy path for a repository name.
func (w *WorkDir) RepoPath(name string) string {
	return filepath.Join(w.root, name)
}

// Remove deletes a directory tree under the work root. It refuses the empty
// path, the filesystem root, the work root itself and anything outside it.
func (w *WorkDir) Remove(path string) error {
	rel, err := w.contained(path)
	if err != nil {
		return err
	}

	return util.RemoveAll(w.fs, rel)
}

func (w *WorkDir) contained(path string) (string, error) {
	if path == "" || path == "/" {
		return "", ErrUnsafePath.New(path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(w.root, abs)
	if err != nil {
		return "", ErrUnsafePath.New(path)
	}

	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrUnsafePath.New(path)
	}

	return rel, nil
}
