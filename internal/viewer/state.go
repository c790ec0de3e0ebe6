package viewer

import (
	"job-listing/internal/domain/job"
	"job-listing/internal/search"
)

type Status string

const (
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// State is a snapshot of one listing view. Transitions never modify the
// receiver; each returns a new State. Jobs is the full page as fetched and
// Filtered is always FilterJobs(Jobs, Criteria).
type State struct {
	Status   Status
	Err      string
	Jobs     []*job.Job
	Criteria search.Criteria
	Expanded map[string]bool
	Filtered []*job.Job
}

func NewState() State {
	return State{
		Status:   StatusLoading,
		Criteria: search.DefaultCriteria(),
		Expanded: map[string]bool{},
		Filtered: []*job.Job{},
	}
}

// Loaded stores the fetched page. Only the first outcome of a fetch counts,
// so a State that is no longer loading is returned unchanged.
func (s State) Loaded(jobs []*job.Job) State {
	if s.Status != StatusLoading {
		return s
	}
	if jobs == nil {
		jobs = []*job.Job{}
	}
	s.Status = StatusSuccess
	s.Err = ""
	s.Jobs = jobs
	return s.refilter()
}

func (s State) Failed(err error) State {
	if s.Status != StatusLoading {
		return s
	}
	s.Status = StatusError
	s.Err = "unknown error"
	if err != nil {
		s.Err = err.Error()
	}
	return s
}

func (s State) WithCriteria(c search.Criteria) State {
	s.Criteria = c.Normalize()
	return s.refilter()
}

func (s State) WithSearchQuery(q string) State {
	c := s.Criteria
	c.SearchQuery = q
	return s.WithCriteria(c)
}

func (s State) WithCategory(category string) State {
	c := s.Criteria
	c.Category = category
	return s.WithCriteria(c)
}

func (s State) WithJobType(jobType string) State {
	c := s.Criteria
	c.JobType = jobType
	return s.WithCriteria(c)
}

func (s State) WithRemoteOnly(remote bool) State {
	c := s.Criteria
	c.RemoteOnly = remote
	return s.WithCriteria(c)
}

// Reset restores neutral criteria. Expanded cards stay expanded.
func (s State) Reset() State {
	return s.WithCriteria(search.DefaultCriteria())
}

// ToggleExpanded flips the expansion flag of the job with the given id.
// Ids not in the loaded page are ignored.
func (s State) ToggleExpanded(id string) State {
	if !s.hasJob(id) {
		return s
	}
	next := make(map[string]bool, len(s.Expanded)+1)
	for k, v := range s.Expanded {
		next[k] = v
	}
	if next[id] {
		delete(next, id)
	} else {
		next[id] = true
	}
	s.Expanded = next
	return s
}

func (s State) IsExpanded(id string) bool {
	return s.Expanded[id]
}

func (s State) hasJob(id string) bool {
	for _, j := range s.Jobs {
		if j != nil && j.ID == id {
			return true
		}
	}
	return false
}

func (s State) refilter() State {
	s.Filtered = search.FilterJobs(s.Jobs, s.Criteria)
	return s
}
