package contribution

import (
	"time"
	"unicode/utf8"
)

// Accepted date layouts. RFC3339 covers full timestamps with a trailing
// "Z" or a numeric offset; the remaining layouts cover bare dates and
// zone-less timestamps.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func validDate(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func validTimeSpent(minutes int) error {
	if minutes < MinTimeSpent || minutes > MaxTimeSpent {
		return NewValidationError(FieldTimeSpent, "time_spent must be between 5 and 480 minutes")
	}
	if minutes%TimeSpentStep != 0 {
		return NewValidationError(FieldTimeSpent, "time_spent must be a multiple of 5 minutes")
	}
	return nil
}

// CreateParams holds the client-supplied fields of a create request.
type CreateParams struct {
	Date             string
	ContributionType string
	Reference        *string
	TimeSpent        int
	Description      string
	InputMode        string

	// Sanitized values, populated during validation.
	reference   string
	description string
	inputMode   InputMode
}

// validate checks every field and returns a copy carrying the sanitized
// values. The minimum description length is enforced on the raw input,
// before sanitization.
func (p CreateParams) validate() (CreateParams, error) {
	if !validDate(p.Date) {
		return p, NewValidationError(FieldDate, "date must be a valid ISO-8601 date")
	}

	if !Type(p.ContributionType).IsValid() {
		return p, NewValidationError(FieldContributionType, "contribution_type must be one of the allowed categories")
	}

	if err := validTimeSpent(p.TimeSpent); err != nil {
		return p, err
	}

	if utf8.RuneCountInString(p.Description) < MinDescriptionLength {
		return p, NewValidationError(FieldDescription, "description must be at least 10 characters")
	}
	p.description = Sanitize(p.Description, MaxDescriptionLength)

	if p.Reference != nil {
		p.reference = Sanitize(*p.Reference, MaxReferenceLength)
	}

	switch {
	case p.InputMode == "":
		p.inputMode = InputModeText
	case InputMode(p.InputMode).IsValid():
		p.inputMode = InputMode(p.InputMode)
	default:
		return p, NewValidationError("input_mode", `input_mode must be "text" or "voice"`)
	}

	return p, nil
}

// UpdateParams holds the client-supplied fields of a partial update.
// Nil fields are absent and retain their stored values. input_mode is
// fixed at creation and cannot be updated.
type UpdateParams struct {
	Date             *string
	ContributionType *string
	Reference        *string
	TimeSpent        *int
	Description      *string
}

// Fields validates every present field and returns the sanitized update
// set keyed by stored field name. An empty map means there is nothing to
// update; callers reject that case.
func (p UpdateParams) Fields() (map[string]any, error) {
	fields := make(map[string]any)

	if p.Date != nil {
		if !validDate(*p.Date) {
			return nil, NewValidationError(FieldDate, "date must be a valid ISO-8601 date")
		}
		fields[FieldDate] = *p.Date
	}

	if p.ContributionType != nil {
		if !Type(*p.ContributionType).IsValid() {
			return nil, NewValidationError(FieldContributionType, "contribution_type must be one of the allowed categories")
		}
		fields[FieldContributionType] = *p.ContributionType
	}

	if p.TimeSpent != nil {
		if err := validTimeSpent(*p.TimeSpent); err != nil {
			return nil, err
		}
		fields[FieldTimeSpent] = *p.TimeSpent
	}

	if p.Description != nil {
		if utf8.RuneCountInString(*p.Description) < MinDescriptionLength {
			return nil, NewValidationError(FieldDescription, "description must be at least 10 characters")
		}
		fields[FieldDescription] = Sanitize(*p.Description, MaxDescriptionLength)
	}

	if p.Reference != nil {
		fields[FieldReference] = Sanitize(*p.Reference, MaxReferenceLength)
	}

	return fields, nil
}
