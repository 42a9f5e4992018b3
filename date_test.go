package reposnap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	assert := assert.New(t)

	d, err := ParseDate("20260113")
	assert.NoError(err)
	assert.Equal("20260113", d.String())
	assert.Equal(time.Date(2026, 1, 13, 0, 0, 0, 0, time.Local), d.Time())
	assert.Equal(time.Date(2026, 1, 13, 23, 59, 59, 0, time.Local), d.Boundary())
}

func TestParseDateRejectsInvalid(t *testing.T) {
	assert := assert.New(t)

	for _, s := range []string{
		"",
		"2026011",
		"202601130",
		"2026a113",
		"20260013",
		"20261313",
		"20260100",
		"20260132",
		"13-01-26",
	} {
		_, err := ParseDate(s)
		assert.True(ErrInvalidDate.Is(err), "expected invalid date error for %q", s)
	}
}

func TestParseDateAcceptsBoundaryValues(t *testing.T) {
	assert := assert.New(t)

	for _, s := range []string{"20260101", "20261231", "20260131"} {
		_, err := ParseDate(s)
		assert.NoError(err, "expected %q to parse", s)
	}
}

func TestDateAfter(t *testing.T) {
	assert := assert.New(t)

	a, err := ParseDate("20260110")
	assert.NoError(err)
	b, err := ParseDate("20260112")
	assert.NoError(err)

	assert.True(b.After(a))
	assert.False(a.After(b))
	assert.False(a.After(a))
}
