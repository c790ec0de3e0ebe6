package dto

import (
	"job-listing/internal/viewer"

	"github.com/google/uuid"
)

type SessionResponse struct {
	SessionID uuid.UUID   `json:"session_id"`
	View      viewer.View `json:"view"`
}

type CriteriaRequest struct {
	SearchQuery *string `json:"search_query"`
	Category    *string `json:"category"`
	JobType     *string `json:"job_type"`
	RemoteOnly  *bool   `json:"remote_only"`
}

type SearchInputRequest struct {
	Input string `json:"input"`
}

type SearchInputResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	Pending   string    `json:"pending"`
}
