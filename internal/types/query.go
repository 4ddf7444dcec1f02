// Package types provides type definitions for structured data used throughout the talent-search system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SkillOperator describes how mandatory skills combine when matching candidates.
type SkillOperator string

const (
	// SkillOperatorAnd requires all mandatory skills to be present.
	SkillOperatorAnd SkillOperator = "AND"
	// SkillOperatorOr requires at least one mandatory skill to be present.
	SkillOperatorOr SkillOperator = "OR"
)

// ExperienceOperator describes how a years-of-experience figure compares
// against a candidate's actual years.
type ExperienceOperator string

const (
	OpGreaterThan ExperienceOperator = "gt"
	OpAtLeast     ExperienceOperator = "gte"
	OpLessThan    ExperienceOperator = "lt"
	OpAtMost      ExperienceOperator = "lte"
	OpExactly     ExperienceOperator = "eq"
	OpBetween     ExperienceOperator = "between"
)

// ContextType tags whether an experience figure refers to one named skill
// or to the candidate's overall career.
type ContextType string

const (
	ContextSkillSpecific ContextType = "skill_specific"
	ContextTotal         ContextType = "total"
)

// ExperienceContext records what a stated years-of-experience figure refers to.
type ExperienceContext struct {
	Type   ContextType `json:"type"`
	Skill  string      `json:"skill,omitempty"` // Set when Type is skill_specific
	Reason string      `json:"reason,omitempty"`
}

// SkillRequirement carries a per-skill experience requirement extracted from text.
type SkillRequirement struct {
	Skill    string             `json:"skill"`
	MinYears float64            `json:"min_years"`
	MaxYears *float64           `json:"max_years,omitempty"`
	Operator ExperienceOperator `json:"operator"`
}

// AvailabilityStatus is one of the three availability values stored on candidates.
type AvailabilityStatus string

const (
	AvailabilityAvailable    AvailabilityStatus = "Available"
	AvailabilityLimited      AvailabilityStatus = "Limited"
	AvailabilityNotAvailable AvailabilityStatus = "Not Available"
)

// Availability describes the detected availability requirement and which
// keyword(s) triggered it.
type Availability struct {
	Status   AvailabilityStatus `json:"status,omitempty"`
	Keywords []string           `json:"keywords,omitempty"`
	Details  string             `json:"details,omitempty"`
}

// Detected reports whether any availability status was found.
func (a Availability) Detected() bool {
	return a.Status != ""
}

// ParsedQuery is the structured interpretation of a free-form hiring query.
// Constructed fresh per request; never mutated after parsing.
type ParsedQuery struct {
	Query string `json:"query"`

	// Skill classification. A canonical skill name appears in at most one
	// of Skills (mandatory) and OptionalSkills.
	Skills         []string      `json:"skills"`
	OptionalSkills []string      `json:"optional_skills"`
	SkillOperator  SkillOperator `json:"skill_operator"`

	// Category detection and expansion.
	Categories          []string `json:"categories"`
	MandatoryCategories []string `json:"mandatory_categories"`
	OptionalCategories  []string `json:"optional_categories"`
	CategorySkills      []string `json:"category_skills"`

	// Global experience requirement.
	MinYears           *float64           `json:"min_years_experience,omitempty"`
	MaxYears           *float64           `json:"max_years_experience,omitempty"`
	ExperienceOperator ExperienceOperator `json:"experience_operator"`
	ExperienceContext  *ExperienceContext `json:"experience_context,omitempty"`

	// Per-skill experience requirements.
	SkillRequirements []SkillRequirement `json:"skill_requirements"`

	// Location and availability.
	Location     string       `json:"location,omitempty"` // Primary (first detected)
	Locations    []string     `json:"locations"`
	Availability Availability `json:"availability"`

	// Best-effort auxiliary entities.
	Roles          []string `json:"roles"`
	Certifications []string `json:"certifications"`
	Companies      []string `json:"companies"`
	Dates          []string `json:"dates"`
	SkillLevels    []string `json:"skill_levels"`

	// Human-readable summary of everything that was extracted.
	AppliedFilters []string `json:"applied_filters"`
}

// EmptyParsedQuery returns the defined result for empty or whitespace-only
// input. All lists are non-nil so JSON output stays stable.
func EmptyParsedQuery() *ParsedQuery {
	return &ParsedQuery{
		Skills:              []string{},
		OptionalSkills:      []string{},
		SkillOperator:       SkillOperatorAnd,
		Categories:          []string{},
		MandatoryCategories: []string{},
		OptionalCategories:  []string{},
		CategorySkills:      []string{},
		ExperienceOperator:  OpAtLeast,
		SkillRequirements:   []SkillRequirement{},
		Locations:           []string{},
		Roles:               []string{},
		Certifications:      []string{},
		Companies:           []string{},
		Dates:               []string{},
		SkillLevels:         []string{},
		AppliedFilters:      []string{},
	}
}

// RequiresExperience reports whether the query carries any global
// years-of-experience requirement.
func (q *ParsedQuery) RequiresExperience() bool {
	return q.MinYears != nil && *q.MinYears > 0
}

// SkillRequirementFor returns the per-skill requirement for the given
// canonical skill name, if one was extracted.
func (q *ParsedQuery) SkillRequirementFor(skill string) (SkillRequirement, bool) {
	for _, req := range q.SkillRequirements {
		if EqualFold(req.Skill, skill) {
			return req, true
		}
	}
	return SkillRequirement{}, false
}
