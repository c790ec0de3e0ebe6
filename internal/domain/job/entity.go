package job

const SentinelAll = "all"

// Types are the employment types offered by the job type selector.
var Types = []string{"Full-time", "Part-time", "Contract", "Internship"}

type Company struct {
	Name string `json:"name"`
}

type Category struct {
	Name string `json:"name"`
}

type Location struct {
	Name string `json:"name"`
}

// Job is one posting from a fetched page. Records are read-only once the
// page is loaded; UI expansion state is kept by the viewer, keyed by ID.
type Job struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Company    *Company   `json:"company,omitempty"`
	Categories []Category `json:"categories,omitempty"`
	Locations  []Location `json:"locations,omitempty"`
	Type       string     `json:"type,omitempty"`
	Contents   string     `json:"contents,omitempty"`
}

func (j *Job) CompanyName() string {
	if j == nil || j.Company == nil {
		return ""
	}
	return j.Company.Name
}

func (j *Job) FirstLocation() string {
	if j == nil || len(j.Locations) == 0 {
		return ""
	}
	return j.Locations[0].Name
}
