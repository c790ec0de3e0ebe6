package viewer

import (
	"fmt"
	"strings"

	"job-listing/internal/domain/job"
	"job-listing/internal/search"
)

const EmptyMessage = "No jobs match your current filters"

type Card struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Company     string `json:"company"`
	Categories  string `json:"categories"`
	Location    string `json:"location"`
	Expanded    bool   `json:"expanded"`
	Description string `json:"description,omitempty"`
}

type Filters struct {
	Criteria        search.Criteria `json:"criteria"`
	HasFilters      bool            `json:"has_filters"`
	CategoryOptions []string        `json:"category_options"`
	JobTypeOptions  []string        `json:"job_type_options"`
}

type View struct {
	Status  Status  `json:"status"`
	Error   string  `json:"error,omitempty"`
	Header  string  `json:"header,omitempty"`
	Total   int     `json:"total"`
	Shown   int     `json:"shown"`
	Cards   []Card  `json:"cards"`
	Empty   string  `json:"empty,omitempty"`
	Filters Filters `json:"filters"`
}

// Render builds the presentation model of s. It has no side effects.
func Render(s State) View {
	v := View{
		Status: s.Status,
		Cards:  []Card{},
		Filters: Filters{
			Criteria:        s.Criteria,
			HasFilters:      s.Criteria.HasActiveFilters(),
			CategoryOptions: append([]string{job.SentinelAll}, search.ExtractCategories(s.Jobs)...),
			JobTypeOptions:  JobTypeOptions(),
		},
	}

	switch s.Status {
	case StatusLoading:
		return v
	case StatusError:
		v.Error = "Error: " + s.Err
		return v
	}

	v.Total = len(s.Jobs)
	v.Shown = len(s.Filtered)
	v.Header = headerText(v.Shown, v.Total)
	for _, j := range s.Filtered {
		v.Cards = append(v.Cards, renderCard(j, s.IsExpanded(j.ID)))
	}
	if len(v.Cards) == 0 {
		v.Empty = EmptyMessage
	}
	return v
}

func JobTypeOptions() []string {
	return append([]string{job.SentinelAll}, job.Types...)
}

func headerText(shown, total int) string {
	if shown == total {
		return fmt.Sprintf("Showing all %d jobs", total)
	}
	return fmt.Sprintf("Showing %d of %d jobs", shown, total)
}

func renderCard(j *job.Job, expanded bool) Card {
	c := Card{
		ID:         j.ID,
		Name:       j.Name,
		Company:    j.CompanyName(),
		Categories: joinCategories(j.Categories),
		Location:   j.FirstLocation(),
		Expanded:   expanded,
	}
	if expanded && j.Contents != "" {
		c.Description = StripMarkup(j.Contents)
	}
	return c
}

func joinCategories(cats []job.Category) string {
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		if c.Name == "" {
			continue
		}
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}
