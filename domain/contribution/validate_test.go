package contribution

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validParams() CreateParams {
	return CreateParams{
		Date:             "2024-01-15",
		ContributionType: "Workshop/Seminar",
		TimeSpent:        60,
		Description:      "Conducted a workshop on data structures for second-year students.",
	}
}

func TestNewValid(t *testing.T) {
	now := time.Date(2024, 1, 15, 9, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))

	c, err := New(validParams(), now)
	require.NoError(t, err)
	require.Empty(t, c.ID())
	require.Equal(t, TypeWorkshopSeminar, c.ContributionType())
	require.Equal(t, InputModeText, c.InputMode())
	require.Equal(t, now.UTC(), c.CreatedAt())
}

func TestNewAcceptsDateLayouts(t *testing.T) {
	for _, date := range []string{
		"2024-01-15",
		"2024-01-15T09:30:00",
		"2024-01-15T09:30:00Z",
		"2024-01-15T09:30:00+05:30",
	} {
		params := validParams()
		params.Date = date
		_, err := New(params, time.Now())
		require.NoError(t, err, "date %q", date)
	}
}

func TestNewRejectsBadDate(t *testing.T) {
	for _, date := range []string{"", "15-01-2024", "2024/01/15", "yesterday"} {
		params := validParams()
		params.Date = date

		_, err := New(params, time.Now())
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, "date %q", date)
		require.Equal(t, FieldDate, vErr.Field)
	}
}

func TestNewTimeSpentBoundaries(t *testing.T) {
	tests := []struct {
		minutes int
		wantOK  bool
	}{
		{4, false},
		{5, true},
		{7, false},
		{60, true},
		{480, true},
		{481, false},
		{0, false},
		{-5, false},
	}

	for _, tt := range tests {
		params := validParams()
		params.TimeSpent = tt.minutes

		_, err := New(params, time.Now())
		if tt.wantOK {
			require.NoError(t, err, "minutes %d", tt.minutes)
		} else {
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr, "minutes %d", tt.minutes)
			require.Equal(t, FieldTimeSpent, vErr.Field)
		}
	}
}

func TestNewDescriptionMinimumOnRawInput(t *testing.T) {
	params := validParams()
	params.Description = "123456789"
	_, err := New(params, time.Now())
	require.Error(t, err)

	params.Description = "1234567890"
	_, err = New(params, time.Now())
	require.NoError(t, err)

	// The minimum is checked before sanitization: markup padding counts
	// toward the raw length even though it is stripped afterwards.
	params.Description = "<b>12345678</b>"
	c, err := New(params, time.Now())
	require.NoError(t, err)
	require.Equal(t, "12345678", c.Description())
}

func TestNewRejectsUnknownType(t *testing.T) {
	params := validParams()
	params.ContributionType = "Gardening"

	_, err := New(params, time.Now())
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, FieldContributionType, vErr.Field)
}

func TestNewAcceptsAllTypes(t *testing.T) {
	require.Len(t, Types(), 16)

	for _, typ := range Types() {
		params := validParams()
		params.ContributionType = string(typ)
		_, err := New(params, time.Now())
		require.NoError(t, err, "type %q", typ)
	}
}

func TestNewInputMode(t *testing.T) {
	params := validParams()
	params.InputMode = "voice"
	c, err := New(params, time.Now())
	require.NoError(t, err)
	require.Equal(t, InputModeVoice, c.InputMode())

	params.InputMode = "telepathy"
	_, err = New(params, time.Now())
	require.Error(t, err)
}

func TestNewSanitizesReference(t *testing.T) {
	ref := "circular <b>ref/2024/11</b>"
	params := validParams()
	params.Reference = &ref

	c, err := New(params, time.Now())
	require.NoError(t, err)
	require.Equal(t, "circular ref/2024/11", c.Reference())
}

func TestNewCapsLengths(t *testing.T) {
	longRef := strings.Repeat("r", 300)
	params := validParams()
	params.Reference = &longRef
	params.Description = strings.Repeat("d", 1500)

	c, err := New(params, time.Now())
	require.NoError(t, err)
	require.Len(t, c.Reference(), MaxReferenceLength)
	require.Len(t, c.Description(), MaxDescriptionLength)
}

func TestUpdateFields(t *testing.T) {
	date := "2024-02-01"
	minutes := 45
	desc := "Reviewed three <i>conference</i> papers in detail."

	fields, err := UpdateParams{
		Date:        &date,
		TimeSpent:   &minutes,
		Description: &desc,
	}.Fields()
	require.NoError(t, err)

	require.Equal(t, map[string]any{
		FieldDate:        "2024-02-01",
		FieldTimeSpent:   45,
		FieldDescription: "Reviewed three conference papers in detail.",
	}, fields)
}

func TestUpdateFieldsEmpty(t *testing.T) {
	fields, err := UpdateParams{}.Fields()
	require.NoError(t, err)
	require.Empty(t, fields)
}

func TestUpdateFieldsTimeSpentBoundaries(t *testing.T) {
	tests := []struct {
		minutes int
		wantOK  bool
	}{
		{4, false},
		{5, true},
		{7, false},
		{480, true},
		{481, false},
	}

	for _, tt := range tests {
		minutes := tt.minutes
		fields, err := UpdateParams{TimeSpent: &minutes}.Fields()
		if tt.wantOK {
			require.NoError(t, err, "minutes %d", tt.minutes)
			require.Equal(t, tt.minutes, fields[FieldTimeSpent])
		} else {
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr, "minutes %d", tt.minutes)
			require.Equal(t, FieldTimeSpent, vErr.Field)
		}
	}
}

func TestUpdateFieldsInvalid(t *testing.T) {
	badType := "Gardening"
	_, err := UpdateParams{ContributionType: &badType}.Fields()
	require.Error(t, err)

	shortDesc := "too short"
	_, err = UpdateParams{Description: &shortDesc}.Fields()
	require.Error(t, err)
}
