package reposnap

import (
	"io"
	"time"

	"gopkg.in/src-d/go-errors.v1"
	"gopkg.in/src-d/go-git.v4"
	"gopkg.in/src-d/go-git.v4/plumbing/object"
)

var (
	// ErrNoCommitBeforeDate signals a repository whose whole history
	// postdates the requested end date.
	ErrNoCommitBeforeDate = errors.NewKind("no commit at or before %s")

	// ErrStartDateTooEarly signals a start date that does not postdate
	// the repository's earliest commit.
	ErrStartDateTooEarly = errors.NewKind("start date %s does not postdate earliest commit day %s")

	// ErrNoHistory signals a repository without any commits.
	ErrNoHistory = errors.NewKind("repository has no commits")
)

// CheckoutBefore hard-resets the working tree of r to the most recent
// commit committed at or before the end date's boundary (23:59:59 local)
// and returns that commit. Any local state is discarded.
func CheckoutBefore(r *git.Repository, end Date) (*object.Commit, error) {
	c, err := lastCommitBefore(r, end.Boundary())
	if err != nil {
		return nil, err
	}

	w, err := r.Worktree()
	if err != nil {
		return nil, err
	}

	err = w.Reset(&git.ResetOptions{Commit: c.Hash, Mode: git.HardReset})
	if err != nil {
		return nil, err
	}

	return c, nil
}

// lastCommitBefore walks history from HEAD in committer time order and
// returns the first commit at or before the boundary. Among commits with
// the same committer time the graph-later one wins, since it comes out of
// the log first.
func lastCommitBefore(r *git.Repository, boundary time.Time) (*object.Commit, error) {
	iter, err := r.Log(&git.LogOptions{Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, ErrNoHistory.Wrap(err)
	}
	defer iter.Close()

	for {
		c, err := iter.Next()
		if err == io.EOF {
			return nil, ErrNoCommitBeforeDate.New(boundary.Format(dateLayout))
		}

		if err != nil {
			return nil, err
		}

		if !c.Committer.When.After(boundary) {
			return c, nil
		}
	}
}

// EarliestCommit returns the commit with the smallest committer time
// reachable from HEAD.
func EarliestCommit(r *git.Repository) (*object.Commit, error) {
	iter, err := r.Log(&git.LogOptions{})
	if err != nil {
		return nil, ErrNoHistory.Wrap(err)
	}
	defer iter.Close()

	var earliest *object.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if earliest == nil || c.Committer.When.Before(earliest.Committer.When) {
			earliest = c
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if earliest == nil {
		return nil, ErrNoHistory.New()
	}

	return earliest, nil
}

// CheckStartDate verifies that the requested start date falls strictly
// after the day of the repository's earliest commit. Extraction assumes
// there is history before the start date, so an earlier or equal start is
// a configuration error rather than something to clamp.
func CheckStartDate(r *git.Repository, start Date) error {
	earliest, err := EarliestCommit(r)
	if err != nil {
		return err
	}

	day := earliest.Committer.When.Format(dateLayout)
	if start.String() <= day {
		return ErrStartDateTooEarly.New(start, day)
	}

	return nil
}
