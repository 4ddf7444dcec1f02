package types

// SkillStatus labels how a single required skill compared against a candidate.
type SkillStatus string

const (
	SkillStatusMatch   SkillStatus = "Match"
	SkillStatusPartial SkillStatus = "Partial"
	SkillStatusMissing SkillStatus = "Missing"
)

// SkillAssessment is the per-required-skill breakdown inside a MatchResult.
type SkillAssessment struct {
	Skill          string      `json:"skill"`
	Status         SkillStatus `json:"status"`
	Mandatory      bool        `json:"mandatory"`
	RequiredYears  float64     `json:"required_years,omitempty"`
	CandidateYears float64     `json:"candidate_years"`
	Proficiency    string      `json:"proficiency,omitempty"`
}

// ExperienceAnalysis mirrors the experience inputs used during scoring.
type ExperienceAnalysis struct {
	RequiredMin    *float64           `json:"required_min,omitempty"`
	RequiredMax    *float64           `json:"required_max,omitempty"`
	Operator       ExperienceOperator `json:"operator"`
	ContextType    ContextType        `json:"context_type,omitempty"`
	Skill          string             `json:"skill,omitempty"`
	CandidateYears float64            `json:"candidate_years"`
	Satisfied      bool               `json:"satisfied"`
}

// ComponentScores holds the 0-100 score for each weighted component.
type ComponentScores struct {
	Skill        float64 `json:"skill_match"`
	Experience   float64 `json:"experience_match"`
	Location     float64 `json:"location_match"`
	Availability float64 `json:"availability_match"`
	Similarity   float64 `json:"semantic_similarity"`
}

// MatchResult is the scored comparison of one candidate against a parsed query.
type MatchResult struct {
	CandidateID            string             `json:"candidate_id,omitempty"`
	CandidateName          string             `json:"candidate_name,omitempty"`
	OverallMatchPercentage float64            `json:"overall_match_percentage"`
	ComponentScores        ComponentScores    `json:"component_scores"`
	SkillAnalysis          []SkillAssessment  `json:"skill_analysis"`
	ExperienceAnalysis     ExperienceAnalysis `json:"experience_analysis"`
	LocationMatched        bool               `json:"location_match"`
	AvailabilityMatched    bool               `json:"availability_match"`
}

// Recommendation is the hiring advice derived from a MatchResult.
type Recommendation struct {
	Verdict         string   `json:"recommendation"` // "Good fit", "Needs training", "Not recommended"
	Reason          string   `json:"reason"`
	SuggestedAction string   `json:"suggested_action"`
	MissingSkills   []string `json:"missing_skills,omitempty"`
}

// LearningSuggestion describes one skill gap and a rough training estimate.
type LearningSuggestion struct {
	Skill          string  `json:"skill"`
	CurrentYears   float64 `json:"current_years"`
	RequiredYears  float64 `json:"required_years"`
	GapYears       float64 `json:"gap_years"`
	Priority       string  `json:"priority"` // "High" for mandatory gaps, "Medium" otherwise
	EstimatedHours int     `json:"estimated_training_hours"`
}
