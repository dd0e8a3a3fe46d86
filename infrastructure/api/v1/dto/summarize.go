package dto

import "github.com/teacherlog/teacherlog/application/service"

// SummarizeItem is one record in a summarization request. Items need
// not reference stored records.
type SummarizeItem struct {
	ContributionType string `json:"contribution_type"`
	Description      string `json:"description"`
	TimeSpent        int    `json:"time_spent"`
	Date             string `json:"date"`
}

// SummarizeRequest is the body of POST /api/summarize.
type SummarizeRequest struct {
	Contributions []SummarizeItem `json:"contributions"`
}

// ToItems converts the request into service summary items.
func (r SummarizeRequest) ToItems() []service.SummaryItem {
	items := make([]service.SummaryItem, len(r.Contributions))
	for i, c := range r.Contributions {
		items[i] = service.SummaryItem{
			ContributionType: c.ContributionType,
			Description:      c.Description,
			TimeSpent:        c.TimeSpent,
			Date:             c.Date,
		}
	}
	return items
}

// SummarizeResponse carries the generated summary text.
type SummarizeResponse struct {
	Summary string `json:"summary"`
}
