package reposnap

import (
	"time"

	"gopkg.in/src-d/go-errors.v1"
)

// ErrInvalidDate signals a date argument that is not a valid YYYYMMDD value.
var ErrInvalidDate = errors.NewKind("invalid date %q")

const dateLayout = "20060102"

// Date is a calendar date given as YYYYMMDD, in local time.
type Date struct {
	year  int
	month int
	day   int
}

// ParseDate parses a YYYYMMDD string into a Date. Months outside 1-12 and
// days outside 1-31 are rejected, as is anything not exactly eight digits.
func ParseDate(s string) (Date, error) {
	if len(s) != 8 {
		return Date{}, ErrInvalidDate.New(s)
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return Date{}, ErrInvalidDate.New(s)
		}
	}

	d := Date{
		year:  atoi(s[0:4]),
		month: atoi(s[4:6]),
		day:   atoi(s[6:8]),
	}

	if d.month < 1 || d.month > 12 || d.day < 1 || d.day > 31 {
		return Date{}, ErrInvalidDate.New(s)
	}

	return d, nil
}

func atoi(s string) int {
	var n int
	for _, r := range s {
		n = n*10 + int(r-'0')
	}

	return n
}

// Time returns midnight of the date in local time.
func (d Date) Time() time.Time {
	return time.Date(d.year, time.Month(d.month), d.day, 0, 0, 0, 0, time.Local)
}

// Boundary returns the last instant of the date, 23:59:59 local time. It is
// the inclusive upper bound used when selecting historical commits.
func (d Date) Boundary() time.Time {
	return time.Date(d.year, time.Month(d.month), d.day, 23, 59, 59, 0, time.Local)
}

// After reports whether d is a later calendar date than o.
func (d Date) After(o Date) bool {
	return d.Time().After(o.Time())
}

func (d Date) String() string {
	return d.Time().Format(dateLayout)
}
