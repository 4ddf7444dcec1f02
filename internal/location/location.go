// Package location pulls location names and availability status out of free
// text queries.
package location

import (
	"log"
	"regexp"
	"strings"

	"github.com/jonathan/talent-search/internal/extract"
	"github.com/jonathan/talent-search/internal/lexicon"
	"github.com/jonathan/talent-search/internal/types"
)

// Cue patterns capture a capitalized location phrase after a placement
// keyword. The captured group may hold several locations joined by
// and/or/comma; splitting happens afterwards.
var cuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`available\s+(?:in|at)\s+([A-Z][a-zA-Z\s,\-&]*?)(?:\s+(?:based|with|for|$|\.))`),
	regexp.MustCompile(`based\s+(?:in|at)\s+([A-Z][a-zA-Z\s,\-&]*?)(?:\s+(?:with|for|$|\.))`),
	regexp.MustCompile(`located\s+(?:in|at)\s+([A-Z][a-zA-Z\s,\-&]*?)(?:\s+(?:with|for|$|\.))`),
	regexp.MustCompile(`can\s+work\s+in\s+([A-Z][a-zA-Z\s,\-&]*?)(?:\s+(?:with|for|$|\.))`),
	regexp.MustCompile(`(?:in|available in)\s+([A-Z][a-zA-Z\s,\-&]*)(?:\s*(?:$|\.|,))`),
}

var reLocationSplit = regexp.MustCompile(`\s+(?:and|or)\s+|,\s*`)

// availabilityWords mark captured phrases that describe availability rather
// than a place ("available for immediate support").
var availabilityWords = []string{"immediate", "asap", "urgently", "temporary", "support", "contract"}

// ExtractLocations collects location names from three sources in order:
// named entities tagged GPE, cue phrases like "based in X", and direct
// mentions of gazetteer entries. Multiple locations joined by and/or/comma
// are split apart. Results preserve query casing and order of first mention.
func ExtractLocations(query string, entities []extract.Entity, lex *lexicon.Lexicon) []string {
	var found []string
	seen := make(map[string]bool)
	add := func(loc string) bool {
		key := strings.ToLower(loc)
		if seen[key] {
			return false
		}
		seen[key] = true
		found = append(found, loc)
		return true
	}

	for _, ent := range entities {
		if ent.Label != extract.LabelLocation {
			continue
		}
		if loc := strings.TrimSpace(ent.Text); loc != "" && add(loc) {
			log.Printf("[location] detected (NER): %s", loc)
		}
	}

	for _, pattern := range cuePatterns {
		for _, m := range pattern.FindAllStringSubmatch(query, -1) {
			captured := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(m[1]), ","))
			if captured == "" || mentionsAvailability(captured) {
				continue
			}
			for _, loc := range reLocationSplit.Split(captured, -1) {
				loc = strings.TrimSpace(loc)
				if len(loc) > 2 && add(loc) {
					log.Printf("[location] detected (keyword): %s", loc)
				}
			}
		}
	}

	queryLower := strings.ToLower(query)
	for _, place := range lex.Locations() {
		if !strings.Contains(queryLower, place) {
			continue
		}
		boundary := regexp.MustCompile(`\b` + regexp.QuoteMeta(place) + `\b`)
		if !boundary.MatchString(queryLower) {
			continue
		}
		if strings.Contains(place, " ") {
			// Multi-word place: recover the original casing by offset.
			pos := strings.Index(queryLower, place)
			original := query[pos : pos+len(place)]
			if add(original) {
				log.Printf("[location] detected (gazetteer): %s", original)
			}
			continue
		}
		for _, word := range strings.Fields(query) {
			clean := strings.TrimRight(word, ",.;:!?")
			if strings.EqualFold(clean, place) {
				if add(clean) {
					log.Printf("[location] detected (gazetteer): %s", clean)
				}
				break
			}
		}
	}

	return found
}

func mentionsAvailability(text string) bool {
	textLower := strings.ToLower(text)
	for _, word := range availabilityWords {
		if strings.Contains(textLower, word) {
			return true
		}
	}
	return false
}

// Availability keyword families in precedence order: immediate beats
// limited, limited beats unavailable.
var (
	immediateKeywords = []string{"immediate", "immediately", "asap", "urgently", "urgent", "right away", "straight away"}
	limitedKeywords   = []string{"part time", "part-time", "part-timer", "contract", "freelance", "support", "temporarily",
		"limited support", "limited availability", "flexible", "flexible hours"}
	unavailableKeywords = []string{"no availability", "not available", "unavailable", "not immediately", "cannot be available"}
)

// DetectAvailability maps availability keywords in the query to one of the
// stored candidate statuses. Every immediate keyword found is recorded;
// limited and unavailable stop at the first hit.
func DetectAvailability(query string) types.Availability {
	queryLower := strings.ToLower(query)
	result := types.Availability{}

	for _, keyword := range immediateKeywords {
		if strings.Contains(queryLower, keyword) {
			result.Status = types.AvailabilityAvailable
			result.Keywords = append(result.Keywords, keyword)
			result.Details = "Immediate/ASAP"
			log.Printf("[location] availability (immediate): %s", keyword)
		}
	}

	if result.Status != types.AvailabilityAvailable {
		for _, keyword := range limitedKeywords {
			if strings.Contains(queryLower, keyword) {
				result.Status = types.AvailabilityLimited
				result.Keywords = append(result.Keywords, keyword)
				result.Details = titleCase(keyword) + " basis"
				log.Printf("[location] availability (limited): %s", keyword)
				break
			}
		}
	}

	if result.Status == "" {
		for _, keyword := range unavailableKeywords {
			if strings.Contains(queryLower, keyword) {
				result.Status = types.AvailabilityNotAvailable
				result.Keywords = append(result.Keywords, keyword)
				result.Details = "Currently unavailable"
				log.Printf("[location] availability (unavailable): %s", keyword)
				break
			}
		}
	}

	return result
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
