package extract

import "strings"

// DeduplicateSubstrings removes skills that occur inside another detected
// skill at a true word boundary. "SQL" is dropped when "SQL Server" is
// present and "Java" when "JavaScript" is present, but "sql" inside
// "sqlalchemy" is not real containment (no boundary) and both survive.
func DeduplicateSubstrings(skills []string) []string {
	var out []string
	for i, skill := range skills {
		if !isSubsumed(skill, skills, i) {
			out = append(out, skill)
		}
	}
	return out
}

func isSubsumed(skill string, all []string, self int) bool {
	skillLower := strings.ToLower(skill)
	for j, other := range all {
		if j == self {
			continue
		}
		otherLower := strings.ToLower(other)
		if len(otherLower) <= len(skillLower) {
			continue
		}

		if idx := strings.Index(otherLower, skillLower); idx >= 0 {
			beforeOK := idx == 0 || otherLower[idx-1] == ' ' || otherLower[idx-1] == '-'
			after := idx + len(skillLower)
			afterOK := after >= len(otherLower) || otherLower[after] == ' ' || otherLower[after] == '-'
			if beforeOK && afterOK {
				return true
			}
		}

		// A single-word skill hiding in the first word of a multi-word skill
		// ("Java" vs "Java Script") also counts as subsumed.
		if !strings.Contains(skillLower, " ") && strings.Contains(otherLower, " ") {
			firstWord := strings.SplitN(otherLower, " ", 2)[0]
			if strings.Contains(firstWord, skillLower) || strings.HasPrefix(firstWord, skillLower) {
				return true
			}
		}
	}
	return false
}

// DeduplicateConflicting is the final conflict-resolution pass over an
// assembled skill list: a skill is dropped when it is a prefix of a longer
// skill continuing at a word boundary or into more letters ("Java" vs
// "JavaScript"), or when it appears as a whole word inside a multi-word
// skill ("SQL" in "SQL Server").
func DeduplicateConflicting(skills []string) []string {
	if len(skills) == 0 {
		return skills
	}

	var out []string
	for i, skill := range skills {
		if !conflictsWithLonger(skill, skills, i) {
			out = append(out, skill)
		}
	}
	return out
}

func conflictsWithLonger(skill string, all []string, self int) bool {
	skillLower := strings.ToLower(skill)
	for j, other := range all {
		if j == self {
			continue
		}
		otherLower := strings.ToLower(other)
		if skillLower == otherLower {
			continue
		}

		if strings.HasPrefix(otherLower, skillLower) && len(otherLower) > len(skillLower) {
			next := otherLower[len(skillLower)]
			if next == ' ' || next == '-' || (next >= 'a' && next <= 'z') {
				return true
			}
		}

		if strings.Contains(otherLower, " ") {
			for _, word := range strings.Fields(otherLower) {
				if word == skillLower {
					return true
				}
			}
		}
	}
	return false
}
