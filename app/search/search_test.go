package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruraljobs/portal/app/portal"
)

func demoJobs() []portal.Job {
	return portal.DefaultSeed().Jobs
}

func ids(jobs []portal.Job) []string {
	res := make([]string, 0, len(jobs))
	for _, j := range jobs {
		res = append(res, j.ID)
	}
	return res
}

func TestJobs_EmptyCriteriaReturnsAll(t *testing.T) {
	jobs := demoJobs()
	res, count := Jobs(jobs, Criteria{})
	assert.Equal(t, len(jobs), count)
	assert.Equal(t, ids(jobs), ids(res), "no filtering keeps the input order")
}

func TestJobs_Filters(t *testing.T) {
	tbl := []struct {
		name     string
		criteria Criteria
		expected []string
	}{
		{"district exact", Criteria{District: "Pune"}, []string{"j1"}},
		{"district no match", Criteria{District: "Solapur"}, []string{}},
		{"district is case sensitive", Criteria{District: "pune"}, []string{}},
		{"taluka exact", Criteria{Taluka: "Sinnar"}, []string{"j2"}},
		{"type exact", Criteria{Type: "Part Time"}, []string{"j3"}},
		{"text in title", Criteria{Text: "tailoring"}, []string{"j2"}},
		{"text in description", Criteria{Text: "harvesting"}, []string{"j1"}},
		{"text ignores case", Criteria{Text: "FARM"}, []string{"j1"}},
		{"village substring", Criteria{Village: "gaon"}, []string{"j2"}},
		{"village ignores case", Criteria{Village: "DHULE"}, []string{"j2"}},
		{"combined criteria are anded", Criteria{District: "Nashik", Type: "Apprenticeship"}, []string{"j2"}},
		{"combined mismatch", Criteria{District: "Nashik", Type: "Part Time"}, []string{}},
		{"text over multiple jobs", Criteria{Text: "a"}, []string{"j1", "j2", "j3"}},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			res, count := Jobs(demoJobs(), tt.criteria)
			assert.Equal(t, tt.expected, ids(res))
			assert.Equal(t, len(tt.expected), count)
		})
	}
}

func TestJobs_OrderPreserved(t *testing.T) {
	jobs := []portal.Job{
		{ID: "a", Title: "farm work", District: "Pune"},
		{ID: "b", Title: "office work", District: "Pune"},
		{ID: "c", Title: "farm work", District: "Pune"},
	}
	res, count := Jobs(jobs, Criteria{Text: "farm"})
	require.Equal(t, 2, count)
	assert.Equal(t, []string{"a", "c"}, ids(res))
}

func TestJobs_EmptyInput(t *testing.T) {
	res, count := Jobs(nil, Criteria{District: "Pune"})
	assert.Equal(t, 0, count)
	assert.Empty(t, res)
}

func TestCriteria_IsEmpty(t *testing.T) {
	assert.True(t, Criteria{}.IsEmpty())
	assert.False(t, Criteria{District: "Pune"}.IsEmpty())
	assert.False(t, Criteria{Text: "x"}.IsEmpty())
}
