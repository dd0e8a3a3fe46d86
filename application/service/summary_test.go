package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teacherlog/teacherlog/domain/contribution"
	"github.com/teacherlog/teacherlog/infrastructure/provider"
)

// fakeGenerator records the last request and returns a canned response.
type fakeGenerator struct {
	lastReq provider.ChatCompletionRequest
	content string
	err     error
}

func (f *fakeGenerator) ChatCompletion(_ context.Context, req provider.ChatCompletionRequest) (provider.ChatCompletionResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return provider.ChatCompletionResponse{}, f.err
	}
	return provider.NewChatCompletionResponse(f.content, "stop", provider.NewUsage(0, 0, 0)), nil
}

func TestSummarizeEmptyBatch(t *testing.T) {
	s := NewSummary(&fakeGenerator{})

	_, err := s.Summarize(context.Background(), nil)

	var vErr *contribution.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "No contributions provided", vErr.Message)
}

func TestSummarizeBatchTooLarge(t *testing.T) {
	s := NewSummary(&fakeGenerator{})

	items := make([]SummaryItem, MaxSummaryBatch+1)
	_, err := s.Summarize(context.Background(), items)

	var vErr *contribution.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestSummarizeUnconfigured(t *testing.T) {
	s := NewSummary(nil)

	_, err := s.Summarize(context.Background(), []SummaryItem{
		{ContributionType: "Student Mentoring", Description: "weekly mentoring sessions", TimeSpent: 60, Date: "2024-03-01"},
	})
	require.ErrorIs(t, err, provider.ErrNotConfigured)
}

func TestSummarizePromptShape(t *testing.T) {
	gen := &fakeGenerator{content: "generated summary text"}
	s := NewSummary(gen)

	summary, err := s.Summarize(context.Background(), []SummaryItem{
		{ContributionType: "Student Mentoring", Description: "weekly mentoring sessions", TimeSpent: 60, Date: "2024-03-01"},
		{ContributionType: "Committee Work", Description: "exam committee duties", TimeSpent: 45, Date: "2024-03-02"},
	})
	require.NoError(t, err)
	require.Equal(t, "generated summary text", summary)

	msgs := gen.lastReq.Messages()
	require.Len(t, msgs, 2)
	require.Equal(t, "system", msgs[0].Role())
	require.Equal(t, "user", msgs[1].Role())

	prompt := msgs[1].Content()
	require.Contains(t, prompt, "- Student Mentoring: weekly mentoring sessions (60 minutes on 2024-03-01)")
	require.Contains(t, prompt, "- Committee Work: exam committee duties (45 minutes on 2024-03-02)")
	require.Contains(t, prompt, "1. Categorizes contributions by type")

	require.Equal(t, 1000, gen.lastReq.MaxTokens())
	require.InDelta(t, 0.7, gen.lastReq.Temperature(), 1e-9)
}

func TestSummarizeCapsPromptItems(t *testing.T) {
	gen := &fakeGenerator{content: "ok"}
	s := NewSummary(gen)

	items := make([]SummaryItem, 150)
	for i := range items {
		items[i] = SummaryItem{ContributionType: "Other", Description: "some activity", TimeSpent: 30, Date: "2024-01-01"}
	}

	_, err := s.Summarize(context.Background(), items)
	require.NoError(t, err)

	prompt := gen.lastReq.Messages()[1].Content()
	require.Equal(t, promptItemLimit, strings.Count(prompt, "- Other:"))
}

func TestSummarizeSanitizesItems(t *testing.T) {
	gen := &fakeGenerator{content: "ok"}
	s := NewSummary(gen)

	_, err := s.Summarize(context.Background(), []SummaryItem{
		{
			ContributionType: "<b>Student Mentoring</b>",
			Description:      "sessions <script>alert(1)</script> held weekly",
			TimeSpent:        60,
			Date:             "2024-03-01",
		},
	})
	require.NoError(t, err)

	prompt := gen.lastReq.Messages()[1].Content()
	require.Contains(t, prompt, "- Student Mentoring: sessions  held weekly (60 minutes on 2024-03-01)")
	require.NotContains(t, prompt, "<script>")
	require.NotContains(t, prompt, "<b>")
}

func TestSummarizeProviderFailure(t *testing.T) {
	provErr := provider.NewProviderError("chat_completion", 500, "upstream exploded", errors.New("boom"))
	s := NewSummary(&fakeGenerator{err: provErr})

	_, err := s.Summarize(context.Background(), []SummaryItem{
		{ContributionType: "Other", Description: "some activity", TimeSpent: 30, Date: "2024-01-01"},
	})
	require.Error(t, err)

	var pe *provider.ProviderError
	require.ErrorAs(t, err, &pe)
}
