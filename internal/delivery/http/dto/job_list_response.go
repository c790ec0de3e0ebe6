package dto

import "job-listing/internal/viewer"

type JobTypesResponse struct {
	Options []string `json:"options"`
}

// JobListResponse is the one-shot listing: the page fetched and filtered in
// a single request, rendered the same way as a session view.
type JobListResponse struct {
	viewer.View
	Categories []string `json:"categories"`
}

type HealthResponse struct {
	App           string `json:"app"`
	Environment   string `json:"environment"`
	Cache         string `json:"cache"`
	Sessions      int    `json:"sessions"`
	SocketClients int    `json:"socket_clients"`
}
