package reposnap

import (
	"io"
)

// Job represents one repository to synchronize, check out and extract.
type Job struct {
	Spec RepoSpec
}

// JobIter is an iterator of Job.
type JobIter interface {
	io.Closer
	// Next returns the next job. It returns io.EOF when there are no
	// more jobs.
	Next() (*Job, error)
}

// NewSpecJobIter returns a JobIter that yields one job per resolved spec,
// in the order the specs were given.
func NewSpecJobIter(specs []RepoSpec) JobIter {
	return &specJobIter{specs: specs}
}

type specJobIter struct {
	specs []RepoSpec
	pos   int
}

func (i *specJobIter) Next() (*Job, error) {
	if i.pos >= len(i.specs) {
		return nil, io.EOF
	}

	j := &Job{Spec: i.specs[i.pos]}
	i.pos++
	return j, nil
}

func (i *specJobIter) Close() error {
	return nil
}
