package types

import "strings"

// CandidateSkill is one skill on a candidate profile with its accumulated
// years of experience and an optional proficiency level.
type CandidateSkill struct {
	Name        string  `json:"name" validate:"required"`
	Years       float64 `json:"years_of_experience" validate:"gte=0"`
	Proficiency string  `json:"proficiency,omitempty"` // e.g. Beginner, Intermediate, Expert
}

// CandidateRecord is the flat candidate view supplied by the persistence/
// retrieval layer. Similarity, when present, is a semantic-similarity score
// in [0,1] produced by a separate retrieval step.
type CandidateRecord struct {
	ID           string           `json:"id,omitempty"`
	Name         string           `json:"name,omitempty"`
	Skills       []CandidateSkill `json:"skills" validate:"dive"`
	TotalYears   float64          `json:"total_years" validate:"gte=0"`
	Location     string           `json:"location,omitempty"`
	Availability string           `json:"availability,omitempty"`
	Similarity   *float64         `json:"similarity,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// SkillNamed returns the candidate's entry for the given skill name.
// Matching is case-insensitive and tolerates the stored skill carrying the
// required name as a word (e.g. required "SQL Server" vs stored "sql server").
func (c *CandidateRecord) SkillNamed(name string) (CandidateSkill, bool) {
	target := strings.ToLower(strings.TrimSpace(name))
	for _, s := range c.Skills {
		if strings.ToLower(strings.TrimSpace(s.Name)) == target {
			return s, true
		}
	}
	// Fall back to containment so "React" matches a stored "React.js".
	for _, s := range c.Skills {
		if strings.Contains(strings.ToLower(s.Name), target) {
			return s, true
		}
	}
	return CandidateSkill{}, false
}

// HasSkill reports whether the candidate lists the given skill.
func (c *CandidateRecord) HasSkill(name string) bool {
	_, ok := c.SkillNamed(name)
	return ok
}

// EqualFold compares two strings case-insensitively, ignoring surrounding
// whitespace. Stored candidate fields and extracted query values both carry
// inconsistent casing and stray spaces.
func EqualFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
