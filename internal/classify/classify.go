// Package classify assigns detected skills and categories to mandatory or
// optional, based on requirement keyword proximity within clause boundaries.
package classify

import (
	"sort"
	"strings"

	"github.com/jonathan/talent-search/internal/extract"
	"github.com/jonathan/talent-search/internal/lexicon"
	"github.com/jonathan/talent-search/internal/types"
)

// Kind is the requirement classification of one skill.
type Kind string

const (
	KindMandatory Kind = "mandatory"
	KindOptional  Kind = "optional"
	// KindUnknown means no requirement keyword resolved the skill; callers
	// apply the default-mandatory policy.
	KindUnknown Kind = "unknown"
)

// MandatoryKeywords and OptionalKeywords are the literal requirement cues
// scanned for in the raw text, in match-priority order.
var (
	MandatoryKeywords = []string{"mandatory", "required", "must have", "essential"}
	OptionalKeywords  = []string{"optional", "nice to have", "good to have", "preferred", "bonus", "added advantage", "not required"}
)

const (
	// afterWindow is how far past a skill a requirement keyword may sit and
	// still bind to it.
	afterWindow = 30
	// beforeWindow is how far before a skill a requirement keyword may sit.
	beforeWindow = 50
	// keywordSkillGap rejects a before-keyword binding when another skill
	// sits this close to the keyword.
	keywordSkillGap = 15
	// occupiedWindow treats a new match this close after a processed
	// position as the same mention.
	occupiedWindow = 20
)

type keywordHit struct {
	pos  int
	text string
	kind Kind
}

// keywordPositions records every occurrence of every requirement keyword,
// sorted by position.
func keywordPositions(queryLower string) []keywordHit {
	var hits []keywordHit
	scan := func(keywords []string, kind Kind) {
		for _, kw := range keywords {
			for pos := 0; ; {
				idx := strings.Index(queryLower[pos:], kw)
				if idx < 0 {
					break
				}
				at := pos + idx
				hits = append(hits, keywordHit{pos: at, text: kw, kind: kind})
				pos = at + len(kw)
			}
		}
	}
	scan(MandatoryKeywords, KindMandatory)
	scan(OptionalKeywords, KindOptional)

	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	return hits
}

// SkillRequirements builds the skill -> mandatory/optional map by analysing
// requirement keyword positions around each known-skill occurrence. Skills
// are tried longest name first, including de-concatenated spaced variants of
// compound single-word names ("javascript" also tried as "java script").
// Keys are lowercase canonical skill names.
func SkillRequirements(query string, lex *lexicon.Lexicon) map[string]Kind {
	queryLower := strings.ToLower(query)
	hits := keywordPositions(queryLower)
	result := make(map[string]Kind)

	techs := lex.KnownTechnologies()
	techsLower := make([]string, len(techs))
	for i, t := range techs {
		techsLower[i] = strings.ToLower(t)
	}

	var processed []int

	for ti, tech := range techs {
		techLower := techsLower[ti]

		for _, variant := range spacedVariants(techLower) {
			pos := 0
			for {
				idx := strings.Index(queryLower[pos:], variant)
				if idx < 0 {
					break
				}
				at := pos + idx
				end := at + len(variant)

				if positionOccupied(processed, at, end) {
					pos = at + 1
					continue
				}
				processed = append(processed, at)

				kind := resolveKind(queryLower, at, end, techLower, techsLower, hits)
				result[strings.ToLower(lex.Normalize(tech))] = kind
				break // first occurrence per variant
			}
		}
	}

	return result
}

// spacedVariants returns the name itself plus every split of a compound
// single-word name into two spaced words ("javascript" -> "java script",
// "javas cript", ...), so queries that spell a technology apart still bind.
func spacedVariants(techLower string) []string {
	variants := []string{techLower}
	if strings.Contains(techLower, " ") || len(techLower) <= 4 {
		return variants
	}
	for i := 3; i < len(techLower)-2; i++ {
		variants = append(variants, techLower[:i]+" "+techLower[i:])
	}
	return variants
}

func positionOccupied(processed []int, at, end int) bool {
	for _, p := range processed {
		if (at <= p && p < end) || (p <= at && at < p+occupiedWindow) {
			return true
		}
	}
	return false
}

// resolveKind applies the positional binding rules: keyword after the skill
// within afterWindow and no other skill interposed wins; otherwise a keyword
// before the skill within beforeWindow with no skill hugging the keyword;
// otherwise the default-mandatory policy.
func resolveKind(queryLower string, at, end int, techLower string, techsLower []string, hits []keywordHit) Kind {
	for _, hit := range hits {
		if hit.pos <= end {
			continue
		}
		if hit.pos-end >= afterWindow {
			continue
		}
		between := queryLower[end:hit.pos]
		if !anySkillContained(between, techLower, techsLower) {
			return hit.kind
		}
	}

	for i := len(hits) - 1; i >= 0; i-- {
		hit := hits[i]
		if hit.pos >= at {
			continue
		}
		kwEnd := hit.pos + len(hit.text)
		if at-kwEnd >= beforeWindow {
			continue
		}
		between := ""
		if kwEnd < at {
			between = queryLower[kwEnd:at]
		}
		if !anySkillNear(between, techLower, techsLower) {
			return hit.kind
		}
	}

	return KindMandatory
}

// anySkillContained reports whether any other known skill occurs in text as
// a whole word. Word-boundary containment, not naive substring, so "R" never
// matches inside "years".
func anySkillContained(text, selfLower string, techsLower []string) bool {
	for _, other := range techsLower {
		if other == selfLower {
			continue
		}
		idx := strings.Index(text, other)
		if idx < 0 {
			continue
		}
		beforeOK := idx == 0 || !isAlnum(text[idx-1])
		after := idx + len(other)
		afterOK := after >= len(text) || !isAlnum(text[after])
		if beforeOK && afterOK {
			return true
		}
	}
	return false
}

// anySkillNear reports whether any other skill starts within keywordSkillGap
// characters of the start of text.
func anySkillNear(text, selfLower string, techsLower []string) bool {
	for _, other := range techsLower {
		if other == selfLower {
			continue
		}
		if idx := strings.Index(text, other); idx >= 0 && idx < keywordSkillGap {
			return true
		}
	}
	return false
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// ClauseKind classifies the text window between endPos and the next clause
// boundary (the nearer of the next comma or " and "). Returns KindUnknown
// when no requirement keyword appears in the clause; the caller applies the
// default-mandatory policy.
func ClauseKind(query string, endPos int) Kind {
	queryLower := strings.ToLower(query)
	if endPos > len(queryLower) {
		endPos = len(queryLower)
	}

	clauseEnd := len(queryLower)
	if idx := strings.Index(queryLower[endPos:], ","); idx >= 0 {
		clauseEnd = endPos + idx
	}
	if idx := strings.Index(queryLower[endPos:], " and "); idx >= 0 && endPos+idx < clauseEnd {
		clauseEnd = endPos + idx
	}

	window := queryLower[endPos:clauseEnd]

	for _, kw := range MandatoryKeywords {
		if strings.Contains(window, kw) {
			return KindMandatory
		}
	}
	for _, kw := range OptionalKeywords {
		if strings.Contains(window, kw) {
			return KindOptional
		}
	}
	return KindUnknown
}

// Operator returns OR when the text contains a literal "or" (or "|") and at
// least two mandatory skills were detected; AND otherwise.
func Operator(query string, mandatorySkills []string) types.SkillOperator {
	queryLower := strings.ToLower(query)
	if len(mandatorySkills) >= 2 &&
		(strings.Contains(queryLower, " or ") || strings.Contains(query, "|")) {
		return types.SkillOperatorOr
	}
	return types.SkillOperatorAnd
}

// ResolveCrossListConflicts removes skills that lose a super/substring
// conflict, even across the mandatory/optional boundary: with "JavaScript"
// optional and "Java" mandatory, "Java" is dropped from the mandatory list.
func ResolveCrossListConflicts(mandatory, optional []string) ([]string, []string) {
	combined := make([]string, 0, len(mandatory)+len(optional))
	combined = append(combined, mandatory...)
	combined = append(combined, optional...)

	surviving := make(map[string]struct{})
	for _, s := range extract.DeduplicateConflicting(combined) {
		surviving[strings.ToLower(s)] = struct{}{}
	}

	keep := func(list []string) []string {
		var out []string
		for _, s := range list {
			if _, ok := surviving[strings.ToLower(s)]; ok {
				out = append(out, s)
			}
		}
		return out
	}
	return keep(mandatory), keep(optional)
}
