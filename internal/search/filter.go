package search

import (
	"strings"

	"job-listing/internal/domain/job"
)

const remoteMarker = "remote"

// Criteria is the set of user-selected constraints applied to a job list.
// The "all" sentinel on Category and JobType, an empty SearchQuery and a
// false RemoteOnly each mean "do not constrain on this dimension".
type Criteria struct {
	SearchQuery string `json:"search_query"`
	Category    string `json:"category"`
	JobType     string `json:"job_type"`
	RemoteOnly  bool   `json:"remote_only"`
}

func DefaultCriteria() Criteria {
	return Criteria{
		SearchQuery: "",
		Category:    job.SentinelAll,
		JobType:     job.SentinelAll,
		RemoteOnly:  false,
	}
}

// Normalize returns c with the query folded and trimmed and blank selector
// values replaced by the "all" sentinel.
func (c Criteria) Normalize() Criteria {
	c.SearchQuery = NormalizeQuery(c.SearchQuery)
	if strings.TrimSpace(c.Category) == "" {
		c.Category = job.SentinelAll
	}
	if strings.TrimSpace(c.JobType) == "" {
		c.JobType = job.SentinelAll
	}
	return c
}

func (c Criteria) HasActiveFilters() bool {
	return c.SearchQuery != "" ||
		c.Category != job.SentinelAll ||
		c.JobType != job.SentinelAll ||
		c.RemoteOnly
}

// FilterJobs returns the jobs satisfying every active criterion, in input
// order. The result is a new slice sharing record pointers with jobs; jobs
// itself is never modified. Nil records are skipped.
func FilterJobs(jobs []*job.Job, c Criteria) []*job.Job {
	query := NormalizeQuery(c.SearchQuery)
	jobType := strings.ToLower(c.JobType)

	out := make([]*job.Job, 0, len(jobs))
	for _, j := range jobs {
		if j == nil {
			continue
		}
		if !matchesSearch(j, query) {
			continue
		}
		if !matchesCategory(j, c.Category) {
			continue
		}
		if !matchesType(j, c.JobType, jobType) {
			continue
		}
		if c.RemoteOnly && !IsRemote(j) {
			continue
		}
		out = append(out, j)
	}
	return out
}

func matchesSearch(j *job.Job, query string) bool {
	if query == "" {
		return true
	}
	return containsFolded(j.Name, query) ||
		containsFolded(j.CompanyName(), query) ||
		containsFolded(j.Contents, query)
}

// Category matching is exact equality, unlike job type matching.
func matchesCategory(j *job.Job, category string) bool {
	if category == job.SentinelAll {
		return true
	}
	for _, c := range j.Categories {
		if c.Name == category {
			return true
		}
	}
	return false
}

func matchesType(j *job.Job, raw, folded string) bool {
	if raw == job.SentinelAll {
		return true
	}
	if j.Type == "" {
		return false
	}
	return strings.Contains(strings.ToLower(j.Type), folded)
}

// IsRemote reports whether any location of j mentions "remote".
func IsRemote(j *job.Job) bool {
	if j == nil {
		return false
	}
	for _, l := range j.Locations {
		if containsFolded(l.Name, remoteMarker) {
			return true
		}
	}
	return false
}

// ExtractCategories returns the distinct non-empty category names across
// jobs in first-seen order.
func ExtractCategories(jobs []*job.Job) []string {
	out := make([]string, 0)
	seen := make(map[string]struct{})
	for _, j := range jobs {
		if j == nil {
			continue
		}
		for _, c := range j.Categories {
			if c.Name == "" {
				continue
			}
			if _, ok := seen[c.Name]; ok {
				continue
			}
			seen[c.Name] = struct{}{}
			out = append(out, c.Name)
		}
	}
	return out
}
