package extract

import (
	"regexp"
	"strings"

	"github.com/jonathan/talent-search/internal/lexicon"
)

// Rule patterns, evaluated in the order listed in newDomainRules. Earlier
// rules claim their spans first; later matches overlapping a claimed span are
// dropped.
var (
	reOverallExpA = regexp.MustCompile(`(?i)\b(?:overall|over\s*all|total)\s+experience\s*(?:of\s*)?\d+(?:\.\d+)?(?:\s*(?:to|-)\s*\d+(?:\.\d+)?)?\s*\+?\s*(?:years?|yrs?)\b`)
	reOverallExpB = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?(?:\s*(?:to|-)\s*\d+(?:\.\d+)?)?\s*\+?\s*(?:years?|yrs?)\s+(?:of\s+)?(?:overall|over\s*all|total)\s+experience\b`)
	reYearsPhrase = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?(?:\s*(?:to|-)\s*\d+(?:\.\d+)?)?\s*\+?\s*(?:years?|yrs?)(?:\s+of\s+experience|\s+experience)?\b`)
	reCert        = regexp.MustCompile(`(?i)\b(?:certified\s+[a-z0-9#+.]+(?:\s+[a-z0-9#+.]+){0,3}|[a-z0-9#+.]+\s+certified|pmp|cissp|ccna)\b`)
	reSkillLevel  = regexp.MustCompile(`(?i)\b(?:beginner|intermediate|advanced|expert|proficient|senior|junior|entry[- ]level)\b`)
	reRole        = regexp.MustCompile(`(?i)\b(?:developer|engineer|manager|architect|analyst|consultant|programmer)s?\b`)
	reDate        = regexp.MustCompile(`(?i)\b(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\s+\d{4}\b|\b(?:19|20)\d{2}\b`)
	reOrg         = regexp.MustCompile(`\b[A-Z][A-Za-z&]+(?:\s+[A-Z][A-Za-z&]+)*\s+(?:Inc|Ltd|LLC|Corp|Technologies|Solutions|Systems)\b`)
)

type domainRule struct {
	label Label
	re    *regexp.Regexp
}

func newDomainRules() []domainRule {
	return []domainRule{
		{LabelOverallExperience, reOverallExpA},
		{LabelOverallExperience, reOverallExpB},
		{LabelTechExperience, reYearsPhrase},
		{LabelCertification, reCert},
		{LabelSkillLevel, reSkillLevel},
		{LabelRole, reRole},
		{LabelDate, reDate},
		{LabelOrganization, reOrg},
	}
}

// DomainTagger recognizes the domain-specific labels (experience phrases,
// roles, skill levels, certifications, technologies, categories) with an
// ordered rule cascade over the lexicon.
type DomainTagger struct {
	lex         *lexicon.Lexicon
	rules       []domainRule
	categoryRes map[string]*regexp.Regexp // matched phrase (lowercase) -> pattern, value nil is never stored
	categoryOf  map[string]string         // matched phrase (lowercase) -> category name
}

// NewDomainTagger builds the rule cascade over the given lexicon.
func NewDomainTagger(lex *lexicon.Lexicon) *DomainTagger {
	d := &DomainTagger{
		lex:         lex,
		rules:       newDomainRules(),
		categoryRes: make(map[string]*regexp.Regexp),
		categoryOf:  make(map[string]string),
	}
	for _, cat := range lex.Categories() {
		phrases := append([]string{cat.Name}, cat.Aliases...)
		for _, phrase := range phrases {
			lower := strings.ToLower(phrase)
			re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(lower) + `\b`)
			if err != nil {
				continue
			}
			d.categoryRes[lower] = re
			d.categoryOf[lower] = cat.Name
		}
	}
	return d
}

type span struct{ start, end int }

func overlaps(claimed []span, start, end int) bool {
	for _, s := range claimed {
		if start < s.end && end > s.start {
			return true
		}
	}
	return false
}

// Tag runs the full rule cascade. Precedence: experience phrases, then
// certifications, skill levels, roles, dates, organizations, then lexicon
// technologies (longest name first), then category names and aliases.
func (d *DomainTagger) Tag(text string) ([]Entity, error) {
	lower := strings.ToLower(text)
	var claimed []span
	var entities []Entity

	add := func(label Label, start, end int) {
		if overlaps(claimed, start, end) {
			return
		}
		claimed = append(claimed, span{start, end})
		entities = append(entities, Entity{
			Text:  text[start:end],
			Start: start,
			End:   end,
			Label: label,
		})
	}

	for _, rule := range d.rules {
		for _, m := range rule.re.FindAllStringIndex(text, -1) {
			add(rule.label, m[0], m[1])
		}
	}

	// Technologies, longest canonical name first so "SQL Server" claims its
	// span before "SQL" can.
	for _, tech := range d.lex.KnownTechnologies() {
		for _, m := range findTechnology(d.lex, tech, lower) {
			add(LabelTechnology, m.start, m.end)
		}
	}

	for _, re := range d.categoryRes {
		for _, m := range re.FindAllStringIndex(text, -1) {
			add(LabelTechCategory, m[0], m[1])
		}
	}

	return entities, nil
}

// CategoryFor resolves a matched category phrase back to its canonical
// category name.
func (d *DomainTagger) CategoryFor(phrase string) (string, bool) {
	name, ok := d.categoryOf[strings.ToLower(strings.TrimSpace(phrase))]
	return name, ok
}

// findTechnology locates all occurrences of a technology name in the
// lowercased text, using the lexicon's whole-word pattern when available and
// substring search otherwise (names like "C++" cannot anchor \b).
func findTechnology(lex *lexicon.Lexicon, tech, textLower string) []span {
	techLower := strings.ToLower(tech)
	var spans []span

	if re := lex.TechnologyPattern(tech); re != nil {
		for _, m := range re.FindAllStringIndex(textLower, -1) {
			spans = append(spans, span{m[0], m[1]})
		}
		return spans
	}

	for idx := 0; ; {
		found := strings.Index(textLower[idx:], techLower)
		if found < 0 {
			break
		}
		start := idx + found
		spans = append(spans, span{start, start + len(techLower)})
		idx = start + len(techLower)
	}
	return spans
}
