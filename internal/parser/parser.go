// Package parser wires entity extraction, requirement classification,
// experience resolution, and location detection into one query
// interpretation pipeline.
package parser

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/talent-search/internal/classify"
	"github.com/jonathan/talent-search/internal/experience"
	"github.com/jonathan/talent-search/internal/extract"
	"github.com/jonathan/talent-search/internal/lexicon"
	"github.com/jonathan/talent-search/internal/location"
	"github.com/jonathan/talent-search/internal/types"
)

var (
	reRoleKeyword = regexp.MustCompile(`(?i)\b(developer|engineer|manager|architect|analyst|consultant)s?\b`)

	roleKeywords = map[string]struct{}{
		"developer": {}, "engineer": {}, "manager": {},
		"architect": {}, "analyst": {}, "consultant": {},
	}

	// Roles starting with these words are imperative misclassifications
	// ("find developers"), not role names.
	roleVerbPrefixes = []string{"find", "show", "list", "want", "looking", "search"}
)

// Parser interprets free-form hiring queries into structured filters.
type Parser struct {
	lex       *lexicon.Lexicon
	extractor *extract.Extractor
}

// New builds a Parser around a loaded lexicon and entity extractor.
func New(lex *lexicon.Lexicon, extractor *extract.Extractor) *Parser {
	return &Parser{lex: lex, extractor: extractor}
}

// Parse runs the full interpretation pipeline. It never fails: empty input
// yields the defined empty result, and every stage degrades to its fallback
// when its inputs are missing.
func (p *Parser) Parse(query string) *types.ParsedQuery {
	if strings.TrimSpace(query) == "" {
		return types.EmptyParsedQuery()
	}
	queryLower := strings.ToLower(query)

	availability := location.DetectAvailability(query)
	requirementMap := classify.SkillRequirements(query, p.lex)
	extraction := p.extractor.Extract(query)
	locations := location.ExtractLocations(query, extraction.Entities, p.lex)
	detectedCategories, categorySkills := p.extractor.DetectCategories(queryLower, extraction.Tokens)

	var (
		mandatory      []string
		optional       []string
		techCategories []string
		techExp        []string
		overallExp     []string
		skillLevels    []string
		roles          []string
		certifications []string
		companies      []string
		dates          []string
	)

	for _, ent := range extraction.Entities {
		text := strings.TrimSpace(ent.Text)
		if text == "" {
			continue
		}

		switch ent.Label {
		case extract.LabelTechnology:
			normalized := p.lex.Normalize(text)
			switch requirementMap[strings.ToLower(normalized)] {
			case classify.KindMandatory:
				mandatory = appendUnique(mandatory, normalized)
			case classify.KindOptional:
				optional = appendUnique(optional, normalized)
			default:
				// Position-based fallback within the clause.
				if classify.ClauseKind(query, ent.End) == classify.KindOptional {
					optional = appendUnique(optional, normalized)
				} else {
					mandatory = appendUnique(mandatory, normalized)
				}
			}

		case extract.LabelTechCategory:
			if !containsFold(techCategories, text) {
				techCategories = append(techCategories, text)
				categorySkills = append(categorySkills, p.lex.ExpandCategory(text)...)
			}

		case extract.LabelTechExperience:
			techExp = append(techExp, text)

		case extract.LabelOverallExperience:
			overallExp = append(overallExp, text)

		case extract.LabelSkillLevel:
			skillLevels = appendUnique(skillLevels, text)

		case extract.LabelRole:
			roles = appendUnique(roles, text)

		case extract.LabelCertification:
			certifications = appendUnique(certifications, text)

		case extract.LabelOrganization:
			companies = appendUnique(companies, text)

		case extract.LabelDate:
			dates = appendUnique(dates, text)
		}
	}

	// Fallback keyword pass catches skills the taggers missed (lowercase
	// mentions, misspellings, spaced spellings).
	mandatory, optional = p.mergeFallbackSkills(query, queryLower, requirementMap, mandatory, optional)

	roles = p.resolveRoles(query, queryLower, roles, extraction.Tokens)

	allCategories := mergeCategories(detectedCategories, techCategories)
	categorySkills = dedupePreservingOrder(categorySkills)
	mandatoryCategories, optionalCategories := classifyCategories(allCategories, queryLower, requirementMap)

	// Conflicting-skill cleanup runs after every source has contributed:
	// first within each list, then across the two. It must precede
	// experience mapping so a dropped fragment ("Java" next to
	// "JavaScript") never picks up a requirement entry.
	mandatory = extract.DeduplicateConflicting(mandatory)
	optional = extract.DeduplicateConflicting(optional)
	mandatory, optional = classify.ResolveCrossListConflicts(mandatory, optional)

	skillRequirements := experience.MapToSkills(query, mandatory, techExp, overallExp)
	globalMin, globalMax := experience.GlobalRange(techExp, overallExp)
	allPhrases := append(append([]string{}, techExp...), overallExp...)
	expOperator := experience.ExtractOperator(query, allPhrases)
	expContext := experience.DetermineContext(query, mandatory, techExp, overallExp)

	skillOperator := classify.Operator(query, mandatory)

	result := types.EmptyParsedQuery()
	result.Query = query
	result.Skills = orEmpty(mandatory)
	result.OptionalSkills = orEmpty(optional)
	result.SkillOperator = skillOperator
	result.Categories = orEmpty(allCategories)
	result.MandatoryCategories = orEmpty(mandatoryCategories)
	result.OptionalCategories = orEmpty(optionalCategories)
	result.CategorySkills = orEmpty(categorySkills)
	result.MinYears = globalMin
	result.MaxYears = globalMax
	result.ExperienceOperator = expOperator
	result.ExperienceContext = expContext
	if skillRequirements != nil {
		result.SkillRequirements = skillRequirements
	}
	if len(locations) > 0 {
		result.Location = locations[0]
	}
	result.Locations = orEmpty(locations)
	result.Availability = availability
	result.Roles = orEmpty(roles)
	result.Certifications = orEmpty(certifications)
	result.Companies = orEmpty(companies)
	result.Dates = orEmpty(dates)
	result.SkillLevels = orEmpty(skillLevels)
	result.AppliedFilters = buildAppliedFilters(result)

	log.Printf("[parser] query interpreted: %d mandatory, %d optional, %d categories, %d locations",
		len(result.Skills), len(result.OptionalSkills), len(result.Categories), len(result.Locations))

	return result
}

// mergeFallbackSkills folds keyword-matched skills into the entity-derived
// lists, resolving single-word vs multi-word conflicts (a bare "Java" must
// not survive next to "JavaScript") and classifying newcomers by requirement
// map, position relative to the first optional keyword, then clause context.
func (p *Parser) mergeFallbackSkills(query, queryLower string, requirementMap map[string]classify.Kind, mandatory, optional []string) ([]string, []string) {
	firstOptionalPos := firstOptionalKeywordPos(queryLower)

	for _, skill := range p.extractor.FallbackSkills(queryLower) {
		skillLower := strings.ToLower(skill)

		conflicted := false
		for _, existing := range append(append([]string{}, mandatory...), optional...) {
			existingLower := strings.ToLower(existing)
			switch {
			case !strings.Contains(skillLower, " ") && strings.Contains(existingLower, " "):
				first := strings.Fields(existingLower)[0]
				if strings.Contains(first, skillLower) || strings.HasPrefix(first, skillLower) {
					conflicted = true
				}
			case strings.Contains(skillLower, " ") && !strings.Contains(existingLower, " "):
				first := strings.Fields(skillLower)[0]
				if strings.Contains(first, existingLower) || strings.HasPrefix(first, existingLower) {
					// The multi-word name wins; drop the fragment.
					mandatory = removeString(mandatory, existing)
					optional = removeString(optional, existing)
				}
			}
			if conflicted {
				break
			}
		}
		if conflicted || containsString(mandatory, skill) || containsString(optional, skill) {
			continue
		}

		switch requirementMap[skillLower] {
		case classify.KindMandatory:
			mandatory = append(mandatory, skill)
		case classify.KindOptional:
			optional = append(optional, skill)
		default:
			pos := experience.FindSkillPosition(queryLower, skillLower)
			switch {
			case pos < 0:
				mandatory = append(mandatory, skill)
			case pos < firstOptionalPos:
				mandatory = append(mandatory, skill)
			case classify.ClauseKind(query, pos+len(skillLower)) == classify.KindOptional:
				optional = append(optional, skill)
			default:
				mandatory = append(mandatory, skill)
			}
		}
	}

	return mandatory, optional
}

// resolveRoles completes and cleans the role list: a keyword fallback adds
// roles the taggers missed, imperative misclassifications are dropped, and a
// canonical capitalized form covers the no-roles case.
func (p *Parser) resolveRoles(query, queryLower string, roles []string, tokens []extract.Token) []string {
	if reRoleKeyword.MatchString(query) {
		for _, tok := range tokens {
			base := strings.TrimSuffix(strings.ToLower(tok.Text), "s")
			if _, known := roleKeywords[base]; known && !containsString(roles, tok.Text) {
				roles = append(roles, tok.Text)
				break
			}
		}
	}

	var cleaned []string
	for _, r := range roles {
		low := strings.TrimSpace(strings.ToLower(r))
		if low == "" || hasVerbPrefix(low) {
			continue
		}
		cleaned = append(cleaned, r)
	}
	cleaned = dedupePreservingOrder(cleaned)

	if len(cleaned) == 0 {
		if m := reRoleKeyword.FindStringSubmatch(queryLower); m != nil {
			kw := m[1]
			cleaned = append(cleaned, strings.ToUpper(kw[:1])+kw[1:])
		}
	}

	return cleaned
}

func hasVerbPrefix(roleLower string) bool {
	for _, p := range roleVerbPrefixes {
		if roleLower == p || strings.HasPrefix(roleLower, p+" ") {
			return true
		}
	}
	return false
}

func mergeCategories(detected, fromEntities []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, cat := range append(append([]string{}, detected...), fromEntities...) {
		key := strings.ToLower(cat)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, cat)
	}
	return out
}

// classifyCategories splits categories into mandatory and optional using the
// requirement map when the category name itself was classified, otherwise
// its position relative to the first optional keyword.
func classifyCategories(categories []string, queryLower string, requirementMap map[string]classify.Kind) (mandatoryCats, optionalCats []string) {
	firstOptionalPos := firstOptionalKeywordPos(queryLower)
	hasOptionalCue := false
	for _, kw := range []string{"optional", "nice to have", "good to have"} {
		if strings.Contains(queryLower, kw) {
			hasOptionalCue = true
			break
		}
	}

	for _, category := range categories {
		catLower := strings.ToLower(category)

		kind := requirementMap[catLower]
		if kind == "" || kind == classify.KindUnknown {
			catPos := strings.Index(queryLower, catLower)
			switch {
			case catPos >= 0 && catPos < firstOptionalPos:
				kind = classify.KindMandatory
			case hasOptionalCue:
				kind = classify.KindOptional
			default:
				kind = classify.KindMandatory
			}
		}

		if kind == classify.KindOptional {
			optionalCats = append(optionalCats, category)
		} else {
			mandatoryCats = append(mandatoryCats, category)
		}
	}
	return mandatoryCats, optionalCats
}

func firstOptionalKeywordPos(queryLower string) int {
	pos := len(queryLower)
	for _, kw := range classify.OptionalKeywords {
		if p := strings.Index(queryLower, kw); p >= 0 && p < pos {
			pos = p
		}
	}
	return pos
}

// buildAppliedFilters renders the human-readable summary of everything the
// parser extracted.
func buildAppliedFilters(q *types.ParsedQuery) []string {
	filters := []string{}

	if len(q.Skills) > 0 {
		filters = append(filters, "Skills: "+strings.Join(q.Skills, ", "))
	}
	if len(q.Categories) > 0 {
		filters = append(filters, "Categories: "+strings.Join(q.Categories, ", "))
	}

	if len(q.SkillRequirements) > 0 {
		for _, req := range q.SkillRequirements {
			filters = append(filters, req.Skill+": "+yearsText(req.MinYears, req.MaxYears))
		}
	} else if q.MinYears != nil {
		expText := "Experience: " + yearsText(*q.MinYears, q.MaxYears)
		if q.ExperienceContext != nil && q.ExperienceContext.Type == types.ContextSkillSpecific && q.ExperienceContext.Skill != "" {
			expText += " in " + q.ExperienceContext.Skill
		}
		filters = append(filters, expText)
	}

	if q.Location != "" {
		filters = append(filters, "Location: "+q.Location)
	}
	if q.Availability.Detected() {
		filters = append(filters, "Availability: "+string(q.Availability.Status))
	}

	return filters
}

func yearsText(minYears float64, maxYears *float64) string {
	if maxYears != nil {
		return formatYears(minYears) + "-" + formatYears(*maxYears) + " years"
	}
	return formatYears(minYears) + "+ years"
}

func formatYears(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Stats reports the loaded interpretation resources for diagnostics.
type Stats struct {
	EntityTypes []string      `json:"entity_types"`
	Lexicon     lexicon.Stats `json:"lexicon"`
}

func (p *Parser) Stats() Stats {
	return Stats{
		EntityTypes: []string{
			string(extract.LabelTechnology), string(extract.LabelTechCategory),
			string(extract.LabelTechExperience), string(extract.LabelOverallExperience),
			string(extract.LabelSkillLevel), string(extract.LabelRole),
			string(extract.LabelCertification), string(extract.LabelLocation),
			string(extract.LabelOrganization), string(extract.LabelDate),
		},
		Lexicon: p.lex.Stats(),
	}
}

func appendUnique(list []string, v string) []string {
	if containsString(list, v) {
		return list
	}
	return append(list, v)
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

func removeString(list []string, v string) []string {
	out := list[:0]
	for _, s := range list {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}

func dedupePreservingOrder(in []string) []string {
	var out []string
	seen := make(map[string]struct{})
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

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
