// Package experience extracts numeric year ranges and comparison operators
// from experience mentions and associates each one with a specific skill or
// the overall career context.
package experience

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/talent-search/internal/types"
)

var (
	// "2 to 5 years", "3-7 yrs"
	reYearRange = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:to|-)\s*(\d+(?:\.\d+)?)\s*(?:year|yr)`)
	// "5 years", "5+ yrs"
	reYearSingle = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*\+?\s*(?:year|yr)`)
)

// ExtractYearRange parses a years phrase. An explicit range returns both
// bounds; a single figure returns (min, nil). Numbers may be fractional.
func ExtractYearRange(text string) (*float64, *float64) {
	lower := strings.ToLower(text)

	if m := reYearRange.FindStringSubmatch(lower); m != nil {
		minYears, err1 := strconv.ParseFloat(m[1], 64)
		maxYears, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil {
			return &minYears, &maxYears
		}
	}

	if m := reYearSingle.FindStringSubmatch(lower); m != nil {
		years, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return &years, nil
		}
	}

	return nil, nil
}

// operator phrase families, checked in precedence order after the explicit
// range check.
var (
	gtPhrases  = []string{"more than", "greater than", "over", "above"}
	gtePhrases = []string{"at least", "minimum", "min"}
	ltPhrases  = []string{"less than", "under", "below"}
	ltePhrases = []string{"at most", "maximum", "max"}
	eqPhrases  = []string{"exactly", "equal to"}
)

// ExtractOperator infers the comparison operator for the global experience
// requirement. An explicit range phrase forces between; otherwise comparison
// phrases in the query decide; a trailing "+" on any phrase means gte; the
// default is gte.
func ExtractOperator(query string, phrases []string) types.ExperienceOperator {
	for _, exp := range phrases {
		expLower := strings.ToLower(exp)
		if strings.Contains(expLower, "to") || strings.Contains(exp, "-") {
			return types.OpBetween
		}
	}

	queryLower := strings.ToLower(query)
	switch {
	case containsAny(queryLower, gtPhrases):
		return types.OpGreaterThan
	case containsAny(queryLower, gtePhrases):
		return types.OpAtLeast
	case containsAny(queryLower, ltPhrases):
		return types.OpLessThan
	case containsAny(queryLower, ltePhrases):
		return types.OpAtMost
	case containsAny(queryLower, eqPhrases):
		return types.OpExactly
	}

	for _, exp := range phrases {
		if strings.Contains(exp, "+") {
			return types.OpAtLeast
		}
	}

	return types.OpAtLeast
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// bindingWindow is the maximum character distance between a skill mention
// and an experience phrase for them to bind.
const bindingWindow = 50

// connectives must appear between a skill and an experience phrase for the
// two to bind ("Python with 2 years").
var connectives = []string{"with", "of", "in", "having"}

// MapToSkills associates each experience phrase with a skill by positional
// proximity and connective cues; the first matching phrase wins per skill.
// When no skill-specific binding is found anywhere but experience phrases
// exist, the first phrase's range is applied to every skill. That shared
// fallback is deliberately broad; it can overstate requirements for
// unrelated skills but matches long-standing behavior.
func MapToSkills(query string, skills, techExp, overallExp []string) []types.SkillRequirement {
	queryLower := strings.ToLower(query)
	allPhrases := append(append([]string{}, techExp...), overallExp...)

	var requirements []types.SkillRequirement

	for _, skill := range skills {
		skillLower := strings.ToLower(skill)
		skillPos := FindSkillPosition(queryLower, skillLower)
		if skillPos < 0 {
			continue
		}

	phrases:
		for _, exp := range allPhrases {
			expLower := strings.ToLower(exp)
			// A phrase like "2 years" can occur several times; each skill
			// considers every occurrence, not just the first one.
			for _, expPos := range indexAll(queryLower, expLower) {
				if abs(skillPos-expPos) >= bindingWindow {
					continue
				}

				lo, hi := skillPos, expPos
				if lo > hi {
					lo, hi = hi, lo
				}
				end := hi + len(expLower)
				if end > len(queryLower) {
					end = len(queryLower)
				}
				between := queryLower[lo:end]
				if !containsAny(between, connectives) {
					continue
				}

				minYears, maxYears := ExtractYearRange(exp)
				if minYears == nil || *minYears == 0 {
					continue
				}

				requirements = append(requirements, types.SkillRequirement{
					Skill:    skill,
					MinYears: *minYears,
					MaxYears: maxYears,
					Operator: rangeOperator(maxYears),
				})
				break phrases
			}
		}
	}

	if len(requirements) == 0 && len(allPhrases) > 0 {
		minYears, maxYears := ExtractYearRange(allPhrases[0])
		if minYears != nil && *minYears > 0 {
			for _, skill := range skills {
				requirements = append(requirements, types.SkillRequirement{
					Skill:    skill,
					MinYears: *minYears,
					MaxYears: maxYears,
					Operator: rangeOperator(maxYears),
				})
			}
		}
	}

	return requirements
}

func rangeOperator(maxYears *float64) types.ExperienceOperator {
	if maxYears != nil {
		return types.OpBetween
	}
	return types.OpAtLeast
}

func indexAll(haystack, needle string) []int {
	var positions []int
	for from := 0; ; {
		rel := strings.Index(haystack[from:], needle)
		if rel < 0 {
			return positions
		}
		positions = append(positions, from+rel)
		from += rel + 1
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// FindSkillPosition locates a skill name in the lowercased query, tolerating
// compound names spelled apart ("javascript" also found as "java script").
func FindSkillPosition(queryLower, skillLower string) int {
	if pos := strings.Index(queryLower, skillLower); pos >= 0 {
		return pos
	}
	if strings.Contains(skillLower, " ") || len(skillLower) <= 4 {
		return -1
	}
	for i := 3; i < len(skillLower)-2; i++ {
		variant := skillLower[:i] + " " + skillLower[i:]
		if pos := strings.Index(queryLower, variant); pos >= 0 {
			return pos
		}
	}
	return -1
}

// GlobalRange extracts the global experience requirement from the first
// experience phrase mentioned, tech-specific phrases first.
func GlobalRange(techExp, overallExp []string) (*float64, *float64) {
	all := append(append([]string{}, techExp...), overallExp...)
	if len(all) == 0 {
		return nil, nil
	}
	return ExtractYearRange(all[0])
}

// DetermineContext decides whether the stated experience refers to one named
// skill or the whole career. Precedence: explicit textual patterns, then a
// detected skill-scoped phrase, then an overall-career phrase.
func DetermineContext(query string, skills, techExp, overallExp []string) *types.ExperienceContext {
	if len(techExp) == 0 && len(overallExp) == 0 {
		return nil
	}

	queryLower := strings.ToLower(query)

	for _, skill := range skills {
		skillLower := strings.ToLower(skill)

		if strings.Contains(queryLower, "of "+skillLower) {
			return &types.ExperienceContext{
				Type:   types.ContextSkillSpecific,
				Skill:  skill,
				Reason: `explicit "of ` + skill + `" pattern detected`,
			}
		}
		if strings.Contains(queryLower, "in "+skillLower) {
			return &types.ExperienceContext{
				Type:   types.ContextSkillSpecific,
				Skill:  skill,
				Reason: `explicit "in ` + skill + `" pattern detected`,
			}
		}
		if strings.Contains(queryLower, skillLower+" experience") {
			return &types.ExperienceContext{
				Type:   types.ContextSkillSpecific,
				Skill:  skill,
				Reason: `"` + skill + ` experience" pattern detected`,
			}
		}
		if strings.Contains(queryLower, "experience with "+skillLower) {
			return &types.ExperienceContext{
				Type:   types.ContextSkillSpecific,
				Skill:  skill,
				Reason: `"experience with ` + skill + `" pattern detected`,
			}
		}
	}

	if len(techExp) > 0 {
		target := ""
		if len(skills) > 0 {
			target = skills[0]
		}
		return &types.ExperienceContext{
			Type:   types.ContextSkillSpecific,
			Skill:  target,
			Reason: "skill-scoped experience phrase detected",
		}
	}

	return &types.ExperienceContext{
		Type:   types.ContextTotal,
		Reason: "overall-experience phrase detected, no specific skill mentioned",
	}
}
