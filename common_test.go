package reposnap

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpecJobIter(t *testing.T) {
	assert := assert.New(t)

	iter := NewSpecJobIter([]RepoSpec{
		{Name: "a", URL: "git://foo/a"},
		{Name: "b", URL: "git://foo/b"},
	})

	j, err := iter.Next()
	assert.NoError(err)
	assert.Equal(&Job{Spec: RepoSpec{Name: "a", URL: "git://foo/a"}}, j)

	j, err = iter.Next()
	assert.NoError(err)
	assert.Equal(&Job{Spec: RepoSpec{Name: "b", URL: "git://foo/b"}}, j)

	j, err = iter.Next()
	assert.Equal(io.EOF, err)
	assert.Nil(j)

	j, err = iter.Next()
	assert.Equal(io.EOF, err)
	assert.Nil(j)

	assert.NoError(iter.Close())
}

func TestSpecJobIterEmpty(t *testing.T) {
	assert := assert.New(t)

	iter := NewSpecJobIter(nil)

	j, err := iter.Next()
	assert.Equal(io.EOF, err)
	assert.Nil(j)
}
