package reposnap

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/src-d/go-errors.v1"
	"gopkg.in/src-d/go-git.v4"
)

var (
	// ErrCloneFailed signals that a fresh clone could not be completed.
	ErrCloneFailed = errors.NewKind("clone of %s failed")

	// ErrUpdateFailed signals that fetch or pull on an existing working
	// copy failed.
	ErrUpdateFailed = errors.NewKind("update of %s failed")

	// ErrUnexpectedPath signals that the working copy path exists but is
	// not a git repository. Such paths are never removed automatically.
	ErrUnexpectedPath = errors.NewKind("path %s exists but is not a git repository")
)

// Synchronizer brings working copies under a WorkDir in sync with their
// expected remotes. A copy bound to a different remote is removed and
// cloned again instead of being updated against the wrong source.
type Synchronizer struct {
	work *WorkDir
	log  *logrus.Entry
}

// NewSynchronizer creates a Synchronizer over the given work root.
func NewSynchronizer(work *WorkDir, log *logrus.Entry) *Synchronizer {
	return &Synchronizer{work: work, log: log}
}

// WorkDir returns the work root the synchronizer operates on.
func (s *Synchronizer) WorkDir() *WorkDir {
	return s.work
}

// Sync ensures a freshly fetched working copy for the spec and returns it.
func (s *Synchronizer) Sync(ctx context.Context, spec RepoSpec) (*git.Repository, error) {
	path := s.work.RepoPath(spec.Name)
	log := s.log.WithFields(logrus.Fields{"repo": spec.Name, "path": path})

	r, err := git.PlainOpen(path)
	if err == git.ErrRepositoryNotExists {
		if _, serr := os.Stat(path); serr == nil {
			return nil, ErrUnexpectedPath.New(path)
		}

		log.Info("cloning fresh working copy")
		return s.clone(ctx, path, spec)
	}

	if err != nil {
		return nil, err
	}

	if remoteMatches(r, spec.URL) {
		log.Info("updating working copy")
		return s.update(ctx, r, spec)
	}

	log.Warn("bound remote does not match expected url, re-cloning")
	if err := s.work.Remove(path); err != nil {
		return nil, err
	}

	return s.clone(ctx, path, spec)
}

func (s *Synchronizer) clone(ctx context.Context, path string, spec RepoSpec) (*git.Repository, error) {
	r, err := git.PlainCloneContext(ctx, path, false, &git.CloneOptions{
		URL: spec.URL,
	})
	if err != nil {
		// Leave no partially initialized directory behind.
		if rerr := s.work.Remove(path); rerr != nil && !ErrUnsafePath.Is(rerr) {
			s.log.WithField("path", path).WithError(rerr).
				Warn("could not clean up after failed clone")
		}

		return nil, ErrCloneFailed.Wrap(err, spec.URL)
	}

	return r, nil
}

func (s *Synchronizer) update(ctx context.Context, r *git.Repository, spec RepoSpec) (*git.Repository, error) {
	err := r.FetchContext(ctx, &git.FetchOptions{RemoteName: git.DefaultRemoteName})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return nil, ErrUpdateFailed.Wrap(err, spec.URL)
	}

	w, err := r.Worktree()
	if err != nil {
		return nil, err
	}

	err = w.PullContext(ctx, &git.PullOptions{RemoteName: git.DefaultRemoteName})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return nil, ErrUpdateFailed.Wrap(err, spec.URL)
	}

	return r, nil
}

// remoteMatches reports whether the origin remote of r points at the
// expected URL, comparing normalized forms. An unreadable remote counts as
// a mismatch so the copy gets rebuilt.
func remoteMatches(r *git.Repository, url string) bool {
	remote, err := r.Remote(git.DefaultRemoteName)
	if err != nil {
		return false
	}

	urls := remote.Config().URLs
	return len(urls) > 0 && NormalizeURL(urls[0]) == NormalizeURL(url)
}
