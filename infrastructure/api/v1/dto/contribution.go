// Package dto defines the request and response shapes of the API.
package dto

import (
	"time"

	"github.com/teacherlog/teacherlog/domain/contribution"
)

// CreateContributionRequest is the body of POST /api/contributions.
type CreateContributionRequest struct {
	Date             string  `json:"date"`
	ContributionType string  `json:"contribution_type"`
	Reference        *string `json:"reference"`
	TimeSpent        int     `json:"time_spent"`
	Description      string  `json:"description"`
	InputMode        string  `json:"input_mode"`
}

// ToParams converts the request into domain create params.
func (r CreateContributionRequest) ToParams() contribution.CreateParams {
	return contribution.CreateParams{
		Date:             r.Date,
		ContributionType: r.ContributionType,
		Reference:        r.Reference,
		TimeSpent:        r.TimeSpent,
		Description:      r.Description,
		InputMode:        r.InputMode,
	}
}

// UpdateContributionRequest is the body of PUT /api/contributions/{id}.
// Absent fields keep their stored values.
type UpdateContributionRequest struct {
	Date             *string `json:"date"`
	ContributionType *string `json:"contribution_type"`
	Reference        *string `json:"reference"`
	TimeSpent        *int    `json:"time_spent"`
	Description      *string `json:"description"`
}

// ToParams converts the request into domain update params.
func (r UpdateContributionRequest) ToParams() contribution.UpdateParams {
	return contribution.UpdateParams{
		Date:             r.Date,
		ContributionType: r.ContributionType,
		Reference:        r.Reference,
		TimeSpent:        r.TimeSpent,
		Description:      r.Description,
	}
}

// ContributionResponse is the wire shape of a stored record.
type ContributionResponse struct {
	ID               string    `json:"id"`
	Date             string    `json:"date"`
	ContributionType string    `json:"contribution_type"`
	Reference        *string   `json:"reference"`
	TimeSpent        int       `json:"time_spent"`
	Description      string    `json:"description"`
	InputMode        string    `json:"input_mode"`
	CreatedAt        time.Time `json:"created_at"`
}

// ContributionToDTO maps a domain record to its response shape.
func ContributionToDTO(c contribution.Contribution) ContributionResponse {
	var ref *string
	if c.Reference() != "" {
		r := c.Reference()
		ref = &r
	}
	return ContributionResponse{
		ID:               c.ID(),
		Date:             c.Date(),
		ContributionType: string(c.ContributionType()),
		Reference:        ref,
		TimeSpent:        c.TimeSpent(),
		Description:      c.Description(),
		InputMode:        string(c.InputMode()),
		CreatedAt:        c.CreatedAt(),
	}
}

// ContributionsToDTO maps a list of domain records.
func ContributionsToDTO(records []contribution.Contribution) []ContributionResponse {
	out := make([]ContributionResponse, len(records))
	for i, c := range records {
		out[i] = ContributionToDTO(c)
	}
	return out
}

// MessageResponse carries a human-readable status message.
type MessageResponse struct {
	Message string `json:"message"`
}
