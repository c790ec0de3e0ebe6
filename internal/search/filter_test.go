package search

import (
	"testing"

	"job-listing/internal/domain/job"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleJobs() []*job.Job {
	return []*job.Job{
		{
			ID:         "1",
			Name:       "Backend Engineer",
			Company:    &job.Company{Name: "Acme"},
			Categories: []job.Category{{Name: "Engineering"}},
			Locations:  []job.Location{{Name: "Remote"}},
			Type:       "Full-time",
		},
		{
			ID:         "2",
			Name:       "Sales Rep",
			Company:    &job.Company{Name: "Beta"},
			Categories: []job.Category{{Name: "Sales"}},
			Locations:  []job.Location{{Name: "Chicago"}},
			Type:       "Part-time",
		},
		{
			ID:         "3",
			Name:       "Data Analyst",
			Categories: []job.Category{{Name: "Data Science"}},
			Locations:  []job.Location{{Name: "New York, NY"}, {Name: "Remote - USA"}},
			Contents:   "<p>Work with our engineering team</p>",
		},
		{
			ID:   "4",
			Name: "Office Manager",
		},
	}
}

func ids(jobs []*job.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func TestFilterJobs_NeutralCriteriaIsIdentity(t *testing.T) {
	jobs := sampleJobs()

	got := FilterJobs(jobs, DefaultCriteria())

	require.Len(t, got, len(jobs))
	for i := range jobs {
		assert.Same(t, jobs[i], got[i])
	}
}

func TestFilterJobs_EmptyInput(t *testing.T) {
	got := FilterJobs(nil, Criteria{SearchQuery: "x", Category: "Sales", JobType: "Contract", RemoteOnly: true})
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got = FilterJobs([]*job.Job{}, DefaultCriteria())
	assert.Empty(t, got)
}

func TestFilterJobs_Search(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "title", query: "backend", want: []string{"1"}},
		{name: "company", query: "beta", want: []string{"2"}},
		{name: "contents", query: "engineering team", want: []string{"3"}},
		{name: "title and contents", query: "engineer", want: []string{"1", "3"}},
		{name: "no match", query: "astronaut", want: []string{}},
		{name: "surrounding whitespace", query: "  sales  ", want: []string{"2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultCriteria()
			c.SearchQuery = tt.query
			assert.Equal(t, tt.want, ids(FilterJobs(sampleJobs(), c)))
		})
	}
}

func TestFilterJobs_SearchIsCaseInsensitive(t *testing.T) {
	jobs := sampleJobs()
	upper := DefaultCriteria()
	upper.SearchQuery = "ENGINEER"
	lower := DefaultCriteria()
	lower.SearchQuery = "engineer"

	assert.Equal(t, FilterJobs(jobs, lower), FilterJobs(jobs, upper))
	assert.Equal(t, FilterJobs(jobs, lower), FilterJobs(jobs, upper.Normalize()))
}

func TestFilterJobs_CategoryIsExactMatch(t *testing.T) {
	c := DefaultCriteria()

	c.Category = "Data"
	assert.Empty(t, FilterJobs(sampleJobs(), c))

	c.Category = "Data Science"
	assert.Equal(t, []string{"3"}, ids(FilterJobs(sampleJobs(), c)))

	c.Category = "sales"
	assert.Empty(t, FilterJobs(sampleJobs(), c))
}

func TestFilterJobs_JobTypeIsSubstringMatch(t *testing.T) {
	c := DefaultCriteria()

	c.JobType = "Full-time"
	assert.Equal(t, []string{"1"}, ids(FilterJobs(sampleJobs(), c)))

	c.JobType = "TIME"
	assert.Equal(t, []string{"1", "2"}, ids(FilterJobs(sampleJobs(), c)))

	c.JobType = "Internship"
	assert.Empty(t, FilterJobs(sampleJobs(), c))
}

func TestFilterJobs_RemoteOnly(t *testing.T) {
	c := DefaultCriteria()
	c.RemoteOnly = true

	assert.Equal(t, []string{"1", "3"}, ids(FilterJobs(sampleJobs(), c)))

	nyc := []*job.Job{{ID: "ny", Name: "x", Locations: []job.Location{{Name: "New York, NY"}}}}
	assert.Empty(t, FilterJobs(nyc, c))

	remoteUSA := []*job.Job{{ID: "r", Name: "x", Locations: []job.Location{{Name: "Remote - USA"}}}}
	assert.Len(t, FilterJobs(remoteUSA, c), 1)
}

func TestFilterJobs_MissingFieldsNeverMatchButNeverPanic(t *testing.T) {
	bare := []*job.Job{{ID: "bare"}, nil}

	assert.Equal(t, []string{"bare"}, ids(FilterJobs(bare, DefaultCriteria())))

	for _, c := range []Criteria{
		{SearchQuery: "acme", Category: job.SentinelAll, JobType: job.SentinelAll},
		{Category: "Sales", JobType: job.SentinelAll},
		{Category: job.SentinelAll, JobType: "Contract"},
		{Category: job.SentinelAll, JobType: job.SentinelAll, RemoteOnly: true},
	} {
		assert.Empty(t, FilterJobs(bare, c))
	}
}

func TestFilterJobs_EndToEndRemoteScenario(t *testing.T) {
	jobs := sampleJobs()[:2]

	got := FilterJobs(jobs, Criteria{SearchQuery: "", Category: "all", JobType: "all", RemoteOnly: true})

	require.Len(t, got, 1)
	assert.Equal(t, "Backend Engineer", got[0].Name)
	assert.Same(t, jobs[0], got[0])
}

func TestFilterJobs_SubsetIdempotentAndNonMutating(t *testing.T) {
	jobs := sampleJobs()
	before := ids(jobs)
	criteria := []Criteria{
		DefaultCriteria(),
		{SearchQuery: "engineer", Category: job.SentinelAll, JobType: job.SentinelAll},
		{SearchQuery: "", Category: "Engineering", JobType: "full", RemoteOnly: true},
		{SearchQuery: "a", Category: job.SentinelAll, JobType: job.SentinelAll, RemoteOnly: true},
	}

	for _, c := range criteria {
		once := FilterJobs(jobs, c)
		for _, r := range once {
			assert.Contains(t, jobs, r)
		}
		assert.Equal(t, once, FilterJobs(once, c))
	}
	assert.Equal(t, before, ids(jobs))
}

func TestCriteria_NormalizeAndHasActiveFilters(t *testing.T) {
	assert.False(t, DefaultCriteria().HasActiveFilters())

	c := Criteria{SearchQuery: "  Go Developer ", Category: "", JobType: " "}.Normalize()
	assert.Equal(t, Criteria{SearchQuery: "go developer", Category: "all", JobType: "all"}, c)
	assert.True(t, c.HasActiveFilters())

	assert.True(t, Criteria{Category: "Sales", JobType: "all"}.HasActiveFilters())
	assert.True(t, Criteria{Category: "all", JobType: "Contract"}.HasActiveFilters())
	assert.True(t, Criteria{Category: "all", JobType: "all", RemoteOnly: true}.HasActiveFilters())
}

func TestExtractCategories(t *testing.T) {
	jobs := append(sampleJobs(),
		&job.Job{ID: "5", Categories: []job.Category{{Name: ""}, {Name: "Sales"}, {Name: "Design"}}},
		nil,
	)

	assert.Equal(t, []string{"Engineering", "Sales", "Data Science", "Design"}, ExtractCategories(jobs))
	assert.Empty(t, ExtractCategories(nil))
}
