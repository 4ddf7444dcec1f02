// Package lexicon loads and indexes the technology catalog, the skill
// normalization map, and the location gazetteer. The lexicon is built once at
// startup and is read-only afterwards, so it can be shared across requests.
package lexicon

import (
	"embed"
	"encoding/json"
	"log"
	"os"
	"regexp"
	"sort"
	"strings"
)

//go:embed data/*.json
var defaultData embed.FS

// Category is a named grouping of related technologies that can be expanded
// to its member skill list when detected in text.
type Category struct {
	Name         string
	Technologies []string
	Aliases      []string
	Keywords     []string
}

// FileSet names the optional external data files. Empty paths fall back to
// the embedded defaults; missing files degrade to an empty section with a
// logged warning, never an error.
type FileSet struct {
	TechDictionary   string
	NormalizationMap string
	Locations        string
}

// Lexicon indexes technologies, categories, normalization variants, and
// locations for longest-match-first lookup.
type Lexicon struct {
	categories []Category
	byCategory map[string]*Category // lowercase category name -> entry

	// Canonical technology names ordered by length descending so substring
	// and regex matching tries "JavaScript" before "Java".
	techs       []string
	techByLower map[string]string
	// One case-insensitive whole-word pattern per technology. A nil value
	// means the name cannot anchor word boundaries (e.g. "C++", ".NET") and
	// a plain case-insensitive substring test is used instead.
	techPatterns map[string]*regexp.Regexp

	normalization map[string]string // lowercase variant -> canonical

	locations   []string
	locationSet map[string]struct{}
}

type techDictFile struct {
	Categories map[string]struct {
		Technologies []string `json:"technologies"`
		Aliases      []string `json:"aliases"`
		Keywords     []string `json:"keywords"`
	} `json:"categories"`
}

// Load builds a Lexicon from the given file set. Every section degrades
// independently: a missing or malformed file yields an empty section and a
// warning, parsing continues with reduced recall.
func Load(files FileSet) *Lexicon {
	lex := &Lexicon{
		byCategory:    make(map[string]*Category),
		techByLower:   make(map[string]string),
		techPatterns:  make(map[string]*regexp.Regexp),
		normalization: make(map[string]string),
		locationSet:   make(map[string]struct{}),
	}

	lex.loadTechDictionary(files.TechDictionary)
	lex.loadNormalizationMap(files.NormalizationMap)
	lex.loadLocations(files.Locations)
	lex.buildIndexes()

	return lex
}

// LoadDefault builds a Lexicon from the embedded data files only.
func LoadDefault() *Lexicon {
	return Load(FileSet{})
}

func (l *Lexicon) loadTechDictionary(path string) {
	data, ok := readDataFile(path, "data/tech_dictionary.json")
	if !ok {
		return
	}

	var file techDictFile
	if err := json.Unmarshal(data, &file); err != nil {
		log.Printf("[lexicon] Failed to parse tech dictionary: %v", err)
		return
	}

	names := make([]string, 0, len(file.Categories))
	for name := range file.Categories {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry := file.Categories[name]
		cat := Category{
			Name:         name,
			Technologies: entry.Technologies,
			Aliases:      entry.Aliases,
			Keywords:     entry.Keywords,
		}
		l.categories = append(l.categories, cat)
	}
	for i := range l.categories {
		l.byCategory[strings.ToLower(l.categories[i].Name)] = &l.categories[i]
	}
}

func (l *Lexicon) loadNormalizationMap(path string) {
	data, ok := readDataFile(path, "data/normalization_map.json")
	if !ok {
		return
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("[lexicon] Failed to parse normalization map: %v", err)
		return
	}
	for variant, canonical := range raw {
		l.normalization[strings.ToLower(variant)] = canonical
	}
}

func (l *Lexicon) loadLocations(path string) {
	data, ok := readDataFile(path, "data/locations.json")
	if !ok {
		return
	}

	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("[lexicon] Failed to parse location list: %v", err)
		return
	}
	for _, loc := range raw {
		lower := strings.ToLower(strings.TrimSpace(loc))
		if lower == "" {
			continue
		}
		if _, seen := l.locationSet[lower]; !seen {
			l.locations = append(l.locations, lower)
			l.locationSet[lower] = struct{}{}
		}
	}
}

// readDataFile reads an external file when a path is given, otherwise the
// embedded default. Returns false when neither is available.
func readDataFile(path, embedded string) ([]byte, bool) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("[lexicon] Cannot read %s: %v (continuing with empty section)", path, err)
			return nil, false
		}
		return data, true
	}

	data, err := defaultData.ReadFile(embedded)
	if err != nil {
		log.Printf("[lexicon] Missing embedded data %s: %v", embedded, err)
		return nil, false
	}
	return data, true
}

// buildIndexes flattens category technology lists into one list ordered by
// length descending and precompiles per-technology match patterns.
func (l *Lexicon) buildIndexes() {
	seen := make(map[string]struct{})
	for _, cat := range l.categories {
		for _, tech := range cat.Technologies {
			lower := strings.ToLower(tech)
			if _, dup := seen[lower]; dup {
				continue
			}
			seen[lower] = struct{}{}
			l.techs = append(l.techs, tech)
			l.techByLower[lower] = tech
		}
	}

	// Longest first so "JavaScript" wins over "Java" and "SQL Server" over "SQL".
	sort.SliceStable(l.techs, func(i, j int) bool {
		return len(l.techs[i]) > len(l.techs[j])
	})

	for _, tech := range l.techs {
		l.techPatterns[tech] = compileWordPattern(tech)
	}
}

// compileWordPattern builds a case-insensitive whole-word pattern for a
// technology name. Names whose edges are not word characters ("C++", ".NET")
// cannot anchor \b and get nil, signalling substring matching.
func compileWordPattern(name string) *regexp.Regexp {
	lower := strings.ToLower(name)
	if lower == "" {
		return nil
	}
	if !isWordChar(lower[0]) || !isWordChar(lower[len(lower)-1]) {
		return nil
	}
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(lower) + `\b`)
	if err != nil {
		return nil
	}
	return re
}

func isWordChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// KnownTechnologies returns all canonical technology names ordered by length
// descending. The returned slice must not be modified.
func (l *Lexicon) KnownTechnologies() []string {
	return l.techs
}

// Categories returns all category entries. The returned slice must not be
// modified.
func (l *Lexicon) Categories() []Category {
	return l.categories
}

// LookupTechnology resolves text to a canonical technology name via the
// catalog or the normalization map.
func (l *Lexicon) LookupTechnology(text string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if canonical, ok := l.techByLower[lower]; ok {
		return canonical, true
	}
	if canonical, ok := l.normalization[lower]; ok {
		return canonical, true
	}
	return "", false
}

// ExpandCategory returns the member technologies of a category, matched by
// canonical name or alias. Unknown categories expand to nothing.
func (l *Lexicon) ExpandCategory(name string) []string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if cat, ok := l.byCategory[lower]; ok {
		return cat.Technologies
	}
	for i := range l.categories {
		for _, alias := range l.categories[i].Aliases {
			if strings.ToLower(alias) == lower {
				return l.categories[i].Technologies
			}
		}
	}
	return nil
}

// requirementKeywords are stripped from the tail of a skill phrase before
// normalization ("python mandatory" -> "python").
var requirementKeywords = []string{
	"mandatory", "required", "must have", "essential",
	"optional", "nice to have", "good to have", "preferred",
	"bonus", "added advantage", "not required",
}

// Normalize maps a variant/typo/casing to the canonical skill name, or
// returns the trimmed input unchanged when unknown. Normalizing an already
// canonical name returns it unchanged.
func (l *Lexicon) Normalize(skill string) string {
	trimmed := strings.TrimSpace(skill)
	lower := strings.ToLower(trimmed)

	for _, kw := range requirementKeywords {
		if strings.HasSuffix(lower, kw) {
			lower = strings.TrimSpace(strings.TrimSuffix(lower, kw))
			break
		}
	}

	if canonical, ok := l.normalization[lower]; ok {
		return canonical
	}
	if canonical, ok := l.techByLower[lower]; ok {
		return canonical
	}
	return trimmed
}

// NormalizationVariants returns the variant -> canonical pairs with lowercase
// variants. The returned map must not be modified.
func (l *Lexicon) NormalizationVariants() map[string]string {
	return l.normalization
}

// TechnologyPattern returns the precompiled whole-word pattern for a
// canonical technology name, or nil when the name requires plain substring
// matching.
func (l *Lexicon) TechnologyPattern(tech string) *regexp.Regexp {
	return l.techPatterns[tech]
}

// MatchTechnology reports whether the given technology name occurs in text,
// using the precompiled whole-word pattern when one exists and a plain
// case-insensitive substring test otherwise. Text is expected lowercase.
func (l *Lexicon) MatchTechnology(tech, textLower string) bool {
	if re, ok := l.techPatterns[tech]; ok && re != nil {
		return re.MatchString(textLower)
	}
	return strings.Contains(textLower, strings.ToLower(tech))
}

// Locations returns the gazetteer entries (lowercase). The returned slice
// must not be modified.
func (l *Lexicon) Locations() []string {
	return l.locations
}

// LookupLocation reports whether text is a known gazetteer place name.
func (l *Lexicon) LookupLocation(text string) bool {
	_, ok := l.locationSet[strings.ToLower(strings.TrimSpace(text))]
	return ok
}

// Stats summarises what was loaded, for health/diagnostic endpoints.
type Stats struct {
	Categories     int `json:"categories"`
	Technologies   int `json:"technologies"`
	Normalizations int `json:"normalizations"`
	Locations      int `json:"locations"`
}

// Stats returns load counts for diagnostics.
func (l *Lexicon) Stats() Stats {
	return Stats{
		Categories:     len(l.categories),
		Technologies:   len(l.techs),
		Normalizations: len(l.normalization),
		Locations:      len(l.locations),
	}
}
