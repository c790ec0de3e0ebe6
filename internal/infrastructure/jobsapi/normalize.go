package jobsapi

import (
	"bytes"
	"encoding/json"

	"job-listing/internal/domain/job"
)

type pageResponse struct {
	Results []apiJob `json:"results"`
}

type apiNamed struct {
	Name string `json:"name"`
}

type apiJob struct {
	ID         rawID       `json:"id"`
	Name       string      `json:"name"`
	Company    *apiNamed   `json:"company"`
	Categories []*apiNamed `json:"categories"`
	Locations  []*apiNamed `json:"locations"`
	Type       *string     `json:"type"`
	Contents   *string     `json:"contents"`
}

// rawID keeps the upstream id as text whether it arrives as a JSON number
// or a JSON string.
type rawID string

func (id *rawID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = rawID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = rawID(n.String())
	return nil
}

// normalize maps decoded API records to jobs. Null nested objects and null
// list entries are dropped; every other API field is ignored.
func normalize(in []apiJob) []*job.Job {
	out := make([]*job.Job, 0, len(in))
	for i := range in {
		out = append(out, normalizeOne(in[i]))
	}
	return out
}

func normalizeOne(r apiJob) *job.Job {
	j := &job.Job{
		ID:   string(r.ID),
		Name: r.Name,
	}
	if r.Company != nil {
		j.Company = &job.Company{Name: r.Company.Name}
	}
	for _, c := range r.Categories {
		if c == nil {
			continue
		}
		j.Categories = append(j.Categories, job.Category{Name: c.Name})
	}
	for _, l := range r.Locations {
		if l == nil {
			continue
		}
		j.Locations = append(j.Locations, job.Location{Name: l.Name})
	}
	if r.Type != nil {
		j.Type = *r.Type
	}
	if r.Contents != nil {
		j.Contents = *r.Contents
	}
	return j
}
