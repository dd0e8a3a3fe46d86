// Package contribution provides domain types for teacher contribution records.
package contribution

import (
	"time"
)

// Type represents a contribution category.
type Type string

// Contribution type constants.
const (
	TypeStudentMentoring          Type = "Student Mentoring"
	TypeProjectGuidance           Type = "Project Guidance"
	TypeInternshipSupport         Type = "Internship Support"
	TypeResearchPaperReview       Type = "Research Paper Review"
	TypeCompetitionPreparation    Type = "Competition Preparation"
	TypeWorkshopSeminar           Type = "Workshop/Seminar"
	TypeAcademicEventOrganization Type = "Academic Event Organization"
	TypeCareerGuidance            Type = "Career Guidance"
	TypeCourseMaterialDevelopment Type = "Course Material Development"
	TypeIndustryCollaboration     Type = "Industry Collaboration"
	TypeCommitteeWork             Type = "Committee Work"
	TypeCurriculumDevelopment     Type = "Curriculum Development"
	TypeLabSetupMaintenance       Type = "Lab Setup & Maintenance"
	TypeStudentCounseling         Type = "Student Counseling"
	TypePlacementActivities       Type = "Placement Activities"
	TypeOther                     Type = "Other"
)

// Types returns all valid contribution types.
func Types() []Type {
	return []Type{
		TypeStudentMentoring,
		TypeProjectGuidance,
		TypeInternshipSupport,
		TypeResearchPaperReview,
		TypeCompetitionPreparation,
		TypeWorkshopSeminar,
		TypeAcademicEventOrganization,
		TypeCareerGuidance,
		TypeCourseMaterialDevelopment,
		TypeIndustryCollaboration,
		TypeCommitteeWork,
		TypeCurriculumDevelopment,
		TypeLabSetupMaintenance,
		TypeStudentCounseling,
		TypePlacementActivities,
		TypeOther,
	}
}

// IsValid reports whether t is a member of the fixed category set.
func (t Type) IsValid() bool {
	for _, v := range Types() {
		if t == v {
			return true
		}
	}
	return false
}

// InputMode represents how a contribution was captured.
type InputMode string

// Input mode constants.
const (
	InputModeText  InputMode = "text"
	InputModeVoice InputMode = "voice"
)

// IsValid reports whether m is a known input mode.
func (m InputMode) IsValid() bool {
	return m == InputModeText || m == InputModeVoice
}

// Field length limits.
const (
	MaxReferenceLength   = 200
	MaxDescriptionLength = 1000
	MinDescriptionLength = 10
	MinTimeSpent         = 5
	MaxTimeSpent         = 480
	TimeSpentStep        = 5
)

// Field names used in partial update sets. These match the stored
// document field names.
const (
	FieldDate             = "date"
	FieldContributionType = "contribution_type"
	FieldReference        = "reference"
	FieldTimeSpent        = "time_spent"
	FieldDescription      = "description"
)

// Contribution represents a single logged teacher contribution.
// The identifier and creation timestamp are assigned by the store
// and are never client-supplied.
type Contribution struct {
	id               string
	date             string
	contributionType Type
	reference        string
	timeSpent        int
	description      string
	inputMode        InputMode
	createdAt        time.Time
}

// New creates a validated, sanitized Contribution ready for insertion.
// The id is empty until the store assigns one; createdAt is set to now.
func New(params CreateParams, now time.Time) (Contribution, error) {
	p, err := params.validate()
	if err != nil {
		return Contribution{}, err
	}

	return Contribution{
		date:             p.Date,
		contributionType: Type(p.ContributionType),
		reference:        p.reference,
		timeSpent:        p.TimeSpent,
		description:      p.description,
		inputMode:        p.inputMode,
		createdAt:        now.UTC(),
	}, nil
}

// Restore reconstructs a Contribution from stored values. It performs no
// validation; the store is trusted to hold only valid records.
func Restore(id, date string, contributionType Type, reference string, timeSpent int, description string, inputMode InputMode, createdAt time.Time) Contribution {
	return Contribution{
		id:               id,
		date:             date,
		contributionType: contributionType,
		reference:        reference,
		timeSpent:        timeSpent,
		description:      description,
		inputMode:        inputMode,
		createdAt:        createdAt,
	}
}

// ID returns the store-assigned identifier, empty before insertion.
func (c Contribution) ID() string { return c.id }

// Date returns the contribution date as an ISO-8601 string.
func (c Contribution) Date() string { return c.date }

// ContributionType returns the category.
func (c Contribution) ContributionType() Type { return c.contributionType }

// Reference returns the optional free-text reference, empty when unset.
func (c Contribution) Reference() string { return c.reference }

// TimeSpent returns the time spent in minutes.
func (c Contribution) TimeSpent() int { return c.timeSpent }

// Description returns the sanitized description.
func (c Contribution) Description() string { return c.description }

// InputMode returns how the contribution was captured.
func (c Contribution) InputMode() InputMode { return c.inputMode }

// CreatedAt returns the server-assigned creation timestamp.
func (c Contribution) CreatedAt() time.Time { return c.createdAt }
