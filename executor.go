package reposnap

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/src-d/go-billy.v4/osfs"
	"gopkg.in/src-d/go-queue.v1"
)

// Executor runs the whole snapshot pipeline: it queues one job per
// repository, consumes them strictly in order, and merges the output tree
// once every repository has been processed. The first failing job aborts
// the run; there is no retry and no partial success.
type Executor struct {
	log        *logrus.Entry
	q          queue.Queue
	sync       *Synchronizer
	extractor  Extractor
	outputRoot string
	start, end Date
	maxBatch   int64
}

// NewExecutor creates an executor for one batch run.
func NewExecutor(
	log *logrus.Entry,
	q queue.Queue,
	sync *Synchronizer,
	extractor Extractor,
	outputRoot string,
	start, end Date,
	maxBatch int64,
) *Executor {
	return &Executor{
		log:        log,
		q:          q,
		sync:       sync,
		extractor:  extractor,
		outputRoot: outputRoot,
		start:      start,
		end:        end,
		maxBatch:   maxBatch,
	}
}

// Execute queues all jobs from the iterator, processes them sequentially
// and runs the merger over the output root. It returns the first failure.
func (e *Executor) Execute(ctx context.Context, iter JobIter) error {
	defer iter.Close()

	n, err := e.queueJobs(iter)
	if err != nil {
		return err
	}

	if err := e.processJobs(ctx, n); err != nil {
		return err
	}

	merger := NewMerger(osfs.New(e.outputRoot), e.maxBatch, e.log)
	return merger.Merge()
}

func (e *Executor) queueJobs(iter JobIter) (int, error) {
	var n int
	for {
		job, err := iter.Next()
		if err == io.EOF {
			e.log.WithField("jobs", n).Debug("jobs queued")
			return n, nil
		}

		if err != nil {
			return n, err
		}

		qj, err := queue.NewJob()
		if err != nil {
			return n, err
		}

		if err := qj.Encode(job); err != nil {
			return n, err
		}

		if err := e.q.Publish(qj); err != nil {
			return n, err
		}

		n++
	}
}

func (e *Executor) processJobs(ctx context.Context, n int) error {
	iter, err := e.q.Consume(1)
	if err != nil {
		return err
	}
	defer iter.Close()

	for i := 0; i < n; i++ {
		qj, err := iter.Next()
		if err != nil {
			return err
		}

		var job Job
		if err := qj.Decode(&job); err != nil {
			_ = qj.Reject(false)
			return err
		}

		if err := e.process(ctx, &job); err != nil {
			_ = qj.Reject(false)
			return err
		}

		if err := qj.Ack(); err != nil {
			return err
		}
	}

	return nil
}

func (e *Executor) process(ctx context.Context, j *Job) error {
	log := e.log.WithField("repo", j.Spec.Name)
	log.WithField("url", j.Spec.URL).Info("processing repository")

	r, err := e.sync.Sync(ctx, j.Spec)
	if err != nil {
		return err
	}

	if err := CheckStartDate(r, e.start); err != nil {
		return err
	}

	c, err := CheckoutBefore(r, e.end)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"commit": c.Hash.String(),
		"date":   c.Committer.When.Format(dateLayout),
	}).Info("working copy at historical commit")

	outDir := filepath.Join(e.outputRoot, j.Spec.Name)
	if err := os.RemoveAll(outDir); err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	repoPath := e.sync.WorkDir().RepoPath(j.Spec.Name)
	return e.extractor.Extract(ctx, repoPath, e.start, outDir)
}
