package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/teacherlog/teacherlog/domain/contribution"
	"github.com/teacherlog/teacherlog/infrastructure/provider"
)

// MaxSummaryBatch is the largest batch of records accepted for
// summarization.
const MaxSummaryBatch = 1000

// promptItemLimit caps how many records are rendered into the prompt,
// keeping it within the generation service's input-size limits.
const promptItemLimit = 100

// Caps applied to interpolated prompt fields. Records posted to the
// summarize endpoint may bypass the create path, so they are sanitized
// again here before touching the prompt.
const (
	promptTypeLimit        = 100
	promptDescriptionLimit = 500
)

// Generation parameters for the summary completion.
const (
	summaryTemperature = 0.7
	summaryMaxTokens   = 1000
)

const summarySystemPrompt = "You are an academic documentation expert specializing in teacher appraisals and accreditation documentation."

const summaryPromptHeader = `You are an academic documentation assistant. Generate a professional summary of the following teacher contributions for appraisal and accreditation purposes (NAAC/NBA).

Contributions:
`

const summaryPromptFooter = `

Create a comprehensive summary that:
1. Categorizes contributions by type
2. Highlights total time invested
3. Emphasizes impact and scope
4. Uses formal academic language
5. Formats it professionally for inclusion in appraisal documents

Summary:`

// SummaryItem is one record in a summarization batch. Items are
// caller-supplied and are not required to reference stored records.
type SummaryItem struct {
	ContributionType string
	Description      string
	TimeSpent        int
	Date             string
}

// Summary turns batches of contribution records into a prose summary
// through a text generation provider.
type Summary struct {
	generator provider.TextGenerator
}

// NewSummary creates a new Summary service. generator may be nil when no
// provider is configured; Summarize then fails with ErrNotConfigured.
func NewSummary(generator provider.TextGenerator) *Summary {
	return &Summary{generator: generator}
}

// Summarize renders the batch into a fixed instruction prompt and
// returns the generated summary text unmodified.
func (s *Summary) Summarize(ctx context.Context, items []SummaryItem) (string, error) {
	if len(items) == 0 {
		return "", contribution.NewValidationError("contributions", "No contributions provided")
	}
	if len(items) > MaxSummaryBatch {
		return "", contribution.NewValidationError("contributions", "Too many contributions")
	}

	if s.generator == nil {
		return "", provider.ErrNotConfigured
	}

	if len(items) > promptItemLimit {
		items = items[:promptItemLimit]
	}

	var b strings.Builder
	b.WriteString(summaryPromptHeader)
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s: %s (%d minutes on %s)",
			contribution.Sanitize(item.ContributionType, promptTypeLimit),
			contribution.Sanitize(item.Description, promptDescriptionLimit),
			item.TimeSpent,
			item.Date,
		)
	}
	b.WriteString(summaryPromptFooter)

	req := provider.NewChatCompletionRequest([]provider.Message{
		provider.SystemMessage(summarySystemPrompt),
		provider.UserMessage(b.String()),
	}).WithTemperature(summaryTemperature).WithMaxTokens(summaryMaxTokens)

	resp, err := s.generator.ChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}
	return resp.Content(), nil
}
