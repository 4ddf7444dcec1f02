package extract

import (
	"regexp"
	"strings"
)

// explicitCategoryPhrases gate the loose-keyword path of category detection.
// Without one of these phrases a bare technology mention ("JavaScript") must
// not trigger a related category ("JavaScript Library") expansion.
var explicitCategoryPhrases = []*regexp.Regexp{
	regexp.MustCompile(`\bany\s+\w+\s+(?:skill|technology|tool|platform|framework)`),
	regexp.MustCompile(`\b(?:one|more)\s+or\s+more\s+\w+\s+(?:skill|technology)`),
	regexp.MustCompile(`\b(?:database|cloud|frontend|backend|devops|mobile)\s+(?:expert|specialist)`),
}

// roleBasedKeywords expand to a whole category ("need a developer" means any
// programming language) unless a specific technology precedes them.
var roleBasedKeywords = map[string]struct{}{
	"developer": {}, "programmer": {}, "engineer": {},
	"architect": {}, "analyst": {}, "consultant": {},
}

// precedingTechWindow is how close (in characters) a technology mention must
// be before a role keyword to suppress category expansion: "Python developer"
// yields only Python.
const precedingTechWindow = 15

// DetectCategories finds technology categories mentioned in the query and
// expands them to their member skills. Category names and aliases always
// match; loose keywords match only when an explicit category phrase is
// present. Matches functioning as verbs in the sentence are skipped.
func (e *Extractor) DetectCategories(queryLower string, tokens []Token) (categories []string, categorySkills []string) {
	verbByWord := verbIndex(tokens)

	useKeywords := false
	for _, re := range explicitCategoryPhrases {
		if re.MatchString(queryLower) {
			useKeywords = true
			break
		}
	}

	knownTechs := e.knownTechsLower()

	seen := make(map[string]struct{})
	addCategory := func(name string, techs []string) {
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		categories = append(categories, name)
		categorySkills = append(categorySkills, techs...)
	}

	for _, cat := range e.lex.Categories() {
		if matchCategoryPhrase(cat.Name, queryLower, verbByWord) {
			addCategory(cat.Name, cat.Technologies)
			continue
		}

		aliasMatched := false
		for _, alias := range cat.Aliases {
			if matchCategoryPhrase(alias, queryLower, verbByWord) {
				addCategory(cat.Name, cat.Technologies)
				aliasMatched = true
				break
			}
		}
		if aliasMatched || !useKeywords {
			continue
		}

		techSet := make(map[string]struct{}, len(cat.Technologies))
		for _, t := range cat.Technologies {
			techSet[strings.ToLower(t)] = struct{}{}
		}

		for _, keyword := range cat.Keywords {
			kwLower := strings.ToLower(keyword)
			if len(kwLower) < 4 {
				continue
			}
			// A keyword that is itself a technology name never stands for the
			// category; the technology match already covers it.
			if _, isTech := techSet[kwLower]; isTech {
				continue
			}

			_, roleBased := roleBasedKeywords[kwLower]
			matched := false
			for _, pos := range keywordOccurrences(kwLower, queryLower, verbByWord) {
				// Each occurrence is suppressed independently; a later
				// standalone "developer" still counts when the first one
				// follows a technology name.
				if roleBased && techPrecedes(queryLower[:pos], pos, knownTechs) {
					continue
				}
				matched = true
				break
			}
			if matched {
				addCategory(cat.Name, cat.Technologies)
				break
			}
		}
	}

	categorySkills = dedupeStrings(categorySkills)
	return categories, categorySkills
}

// matchCategoryPhrase matches a category name or alias as a whole word,
// skipping occurrences the POS tagger saw as verbs.
func matchCategoryPhrase(phrase, queryLower string, verbByWord map[string]bool) bool {
	lower := strings.ToLower(phrase)
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(lower) + `\b`)
	if err != nil {
		return false
	}
	for _, m := range re.FindAllStringIndex(queryLower, -1) {
		if spanIsVerb(queryLower[m[0]:m[1]], verbByWord) {
			continue
		}
		return true
	}
	return false
}

// keywordOccurrences returns the positions of every non-verb whole-word
// occurrence of a keyword.
func keywordOccurrences(kwLower, queryLower string, verbByWord map[string]bool) []int {
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(kwLower) + `\b`)
	if err != nil {
		return nil
	}
	var positions []int
	for _, m := range re.FindAllStringIndex(queryLower, -1) {
		if spanIsVerb(queryLower[m[0]:m[1]], verbByWord) {
			continue
		}
		positions = append(positions, m[0])
	}
	return positions
}

func spanIsVerb(spanLower string, verbByWord map[string]bool) bool {
	for _, word := range strings.Fields(spanLower) {
		if verbByWord[word] {
			return true
		}
	}
	return false
}

// techPrecedes reports whether any known technology occurs within
// precedingTechWindow characters before keywordPos.
func techPrecedes(before string, keywordPos int, knownTechs []string) bool {
	for _, tech := range knownTechs {
		idx := strings.LastIndex(before, tech)
		if idx >= 0 && keywordPos-idx < precedingTechWindow {
			return true
		}
	}
	return false
}

// knownTechsLower collects catalog names and normalization canonicals in
// lowercase, for the preceding-technology check.
func (e *Extractor) knownTechsLower() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, tech := range e.lex.KnownTechnologies() {
		lower := strings.ToLower(tech)
		if _, dup := seen[lower]; !dup {
			seen[lower] = struct{}{}
			out = append(out, lower)
		}
	}
	for variant, canonical := range e.lex.NormalizationVariants() {
		for _, s := range []string{variant, strings.ToLower(canonical)} {
			if _, dup := seen[s]; !dup {
				seen[s] = struct{}{}
				out = append(out, s)
			}
		}
	}
	return out
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, s := range in {
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
