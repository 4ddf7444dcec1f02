package extract

import (
	"strings"

	prose "github.com/jdkato/prose/v2"
)

// StatisticalTagger wraps the pretrained prose model. It contributes generic
// geo/person entities and the part-of-speech tags the rule layers consult.
// The model is stateless per call and safe for concurrent use.
type StatisticalTagger struct{}

// NewStatisticalTagger returns the process-wide statistical tagger.
func NewStatisticalTagger() *StatisticalTagger {
	return &StatisticalTagger{}
}

// Tag runs named-entity recognition and maps results to spans with byte
// offsets. prose reports entity text without positions, so occurrences are
// located left to right in the source text.
func (t *StatisticalTagger) Tag(text string) ([]Entity, error) {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, err
	}

	var entities []Entity
	cursor := 0
	for _, ent := range doc.Entities() {
		label := Label(ent.Label)
		if label != LabelLocation && label != LabelPerson {
			continue
		}
		idx := strings.Index(text[cursor:], ent.Text)
		start := cursor
		if idx >= 0 {
			start = cursor + idx
			cursor = start + len(ent.Text)
		} else {
			// Repeated entity earlier in the text; fall back to first match.
			if first := strings.Index(text, ent.Text); first >= 0 {
				start = first
			} else {
				continue
			}
		}
		entities = append(entities, Entity{
			Text:  ent.Text,
			Start: start,
			End:   start + len(ent.Text),
			Label: label,
		})
	}
	return entities, nil
}

// TagPOS tokenizes the text and returns Penn Treebank part-of-speech tags.
func (t *StatisticalTagger) TagPOS(text string) ([]Token, error) {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, err
	}

	tokens := doc.Tokens()
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, Token{Text: tok.Text, Tag: tok.Tag})
	}
	return out, nil
}
