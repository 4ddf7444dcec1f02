package extract

import (
	"log"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/talent-search/internal/lexicon"
)

// verbTokens are imperative sentence-structure words the taggers sometimes
// misclassify as entities ("find me a...", "show employees with...").
var verbTokens = map[string]struct{}{
	"guide": {}, "find": {}, "show": {}, "list": {}, "want": {},
	"search": {}, "help": {}, "suggest": {}, "need": {}, "recommend": {},
	"tell": {}, "display": {}, "looking": {}, "seeking": {},
}

// requirementWords inside a TECHNOLOGY span signal a tagger misclassification
// ("script is optional" is not a technology).
var requirementWords = []string{
	"mandatory", "required", "must have", "essential",
	"optional", "nice to have", "good to have", "preferred",
	"bonus", "added advantage", "not required",
}

// Extractor merges the statistical tagger and the deterministic rule cascade
// into one filtered entity list, and provides the lexicon fallback scans.
type Extractor struct {
	lex         *lexicon.Lexicon
	statistical Tagger
	pos         POSTagger
	domain      *DomainTagger
}

// New builds an Extractor. The statistical tagger and POS tagger may be nil,
// in which case only the deterministic path runs (degraded recall, never an
// error).
func New(lex *lexicon.Lexicon, statistical Tagger, pos POSTagger) *Extractor {
	return &Extractor{
		lex:         lex,
		statistical: statistical,
		pos:         pos,
		domain:      NewDomainTagger(lex),
	}
}

// Lexicon returns the lexicon the extractor was built over.
func (e *Extractor) Lexicon() *lexicon.Lexicon {
	return e.lex
}

// Domain returns the deterministic rule cascade.
func (e *Extractor) Domain() *DomainTagger {
	return e.domain
}

// Extraction is the merged, filtered output for one query text.
type Extraction struct {
	Entities []Entity
	Tokens   []Token
}

// ByLabel returns the entity texts for one label in detection order,
// deduplicated case-insensitively.
func (x *Extraction) ByLabel(label Label) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, ent := range x.Entities {
		if ent.Label != label {
			continue
		}
		key := strings.ToLower(ent.Text)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, ent.Text)
	}
	return out
}

// EntitiesFor returns all entities carrying the given label.
func (x *Extraction) EntitiesFor(label Label) []Entity {
	var out []Entity
	for _, ent := range x.Entities {
		if ent.Label == label {
			out = append(out, ent)
		}
	}
	return out
}

// Extract runs both taggers and applies the post-filters. Tagger failures are
// logged and treated as an empty contribution; extraction never fails.
func (e *Extractor) Extract(text string) *Extraction {
	var entities []Entity
	var tokens []Token

	if domainEnts, err := e.domain.Tag(text); err == nil {
		entities = append(entities, domainEnts...)
	}

	if e.statistical != nil {
		statEnts, err := e.statistical.Tag(text)
		if err != nil {
			log.Printf("[extract] Statistical tagger failed: %v (continuing with rule results)", err)
		} else {
			entities = append(entities, statEnts...)
		}
	}

	if e.pos != nil {
		posTokens, err := e.pos.TagPOS(text)
		if err != nil {
			log.Printf("[extract] POS tagging failed: %v", err)
		} else {
			tokens = posTokens
		}
	}

	entities = filterEntities(entities, tokens)
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].Start < entities[j].Start
	})

	return &Extraction{Entities: entities, Tokens: tokens}
}

// filterEntities applies the misclassification filters: imperative verb
// tokens, requirement keywords inside TECHNOLOGY spans, and verb-rooted
// SKILL_LEVEL/ROLE spans.
func filterEntities(entities []Entity, tokens []Token) []Entity {
	verbByWord := verbIndex(tokens)

	kept := entities[:0]
	for _, ent := range entities {
		lower := strings.ToLower(strings.TrimSpace(ent.Text))

		if _, isVerb := verbTokens[lower]; isVerb {
			continue
		}

		if ent.Label == LabelTechnology && containsRequirementWord(lower) {
			continue
		}

		if ent.Label == LabelSkillLevel || ent.Label == LabelRole {
			if spanRootIsVerb(lower, verbByWord) {
				continue
			}
		}

		kept = append(kept, ent)
	}
	return kept
}

func containsRequirementWord(textLower string) bool {
	for _, kw := range requirementWords {
		if strings.Contains(textLower, kw) {
			return true
		}
	}
	return false
}

// verbIndex maps lowercase token text to whether the tagger saw it as a verb
// or auxiliary anywhere in the sentence.
func verbIndex(tokens []Token) map[string]bool {
	idx := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		key := strings.ToLower(tok.Text)
		if _, exists := idx[key]; !exists {
			idx[key] = tok.IsVerb()
		}
	}
	return idx
}

// spanRootIsVerb checks the first word of a span against the POS index.
func spanRootIsVerb(spanLower string, verbByWord map[string]bool) bool {
	fields := strings.Fields(spanLower)
	if len(fields) == 0 {
		return false
	}
	return verbByWord[fields[0]]
}

// FallbackSkills scans the lowercased query for technologies the statistical
// tagger misses: miscapitalized catalog names and typo variants from the
// normalization map. Word-boundary matching is used for alphanumeric
// variants; variants containing punctuation (".net") use substring matching.
// The result is verb-filtered and substring-deduplicated.
func (e *Extractor) FallbackSkills(queryLower string) []string {
	var found []string
	have := make(map[string]struct{})
	addSkill := func(name string) {
		key := strings.ToLower(name)
		if _, dup := have[key]; dup {
			return
		}
		have[key] = struct{}{}
		found = append(found, name)
	}

	// Typo/variant pass first, normalized to the canonical form.
	variants := make([]string, 0, len(e.lex.NormalizationVariants()))
	for variant := range e.lex.NormalizationVariants() {
		variants = append(variants, variant)
	}
	sort.Strings(variants)

	for _, variant := range variants {
		canonical := e.lex.NormalizationVariants()[variant]
		if matchVariant(variant, queryLower) {
			addSkill(e.lex.Normalize(canonical))
		}
	}

	// Catalog pass, longest names first.
	for _, tech := range e.lex.KnownTechnologies() {
		if e.lex.MatchTechnology(tech, queryLower) {
			addSkill(tech)
		}
	}

	filtered := found[:0]
	for _, skill := range found {
		if _, isVerb := verbTokens[strings.ToLower(skill)]; !isVerb {
			filtered = append(filtered, skill)
		}
	}

	return DeduplicateSubstrings(filtered)
}

var alphanumeric = regexp.MustCompile(`^\w+$`)

// matchVariant matches a normalization-map variant against the lowercased
// query. Pure alphanumeric variants require word boundaries so "py" does not
// fire inside "numpy"; punctuated variants like ".net" match as substrings.
func matchVariant(variant, queryLower string) bool {
	if alphanumeric.MatchString(strings.ReplaceAll(variant, " ", "")) && !strings.Contains(variant, " ") {
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(variant) + `\b`)
		if err != nil {
			return strings.Contains(queryLower, variant)
		}
		return re.MatchString(queryLower)
	}
	if strings.Contains(variant, " ") {
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(variant) + `\b`)
		if err == nil {
			return re.MatchString(queryLower)
		}
	}
	return strings.Contains(queryLower, variant)
}
