// Package search filters the jobs collection by composable criteria.
package search

import (
	"strings"

	"github.com/ruraljobs/portal/app/portal"
)

// Criteria holds the recognized filter dimensions. Empty fields are skipped,
// supplied ones combine with logical AND.
type Criteria struct {
	Text     string // case-insensitive substring over title and description
	District string // exact match
	Taluka   string // exact match
	Village  string // case-insensitive substring
	Type     string // exact match
}

// IsEmpty reports whether no filtering is requested
func (c Criteria) IsEmpty() bool {
	return c == Criteria{}
}

// Jobs returns the subset of jobs satisfying every supplied criterion, in
// the input order, plus the result count. An empty result is a normal
// outcome, not a failure.
func Jobs(jobs []portal.Job, c Criteria) ([]portal.Job, int) {
	res := make([]portal.Job, 0, len(jobs))
	for _, job := range jobs {
		if matches(job, c) {
			res = append(res, job)
		}
	}
	return res, len(res)
}

func matches(job portal.Job, c Criteria) bool {
	if c.Text != "" {
		haystack := strings.ToLower(job.Title + " " + job.Desc)
		if !strings.Contains(haystack, strings.ToLower(c.Text)) {
			return false
		}
	}
	if c.District != "" && job.District != c.District {
		return false
	}
	if c.Taluka != "" && job.Taluka != c.Taluka {
		return false
	}
	if c.Village != "" && !strings.Contains(strings.ToLower(job.Village), strings.ToLower(c.Village)) {
		return false
	}
	if c.Type != "" && job.Type != c.Type {
		return false
	}
	return true
}
