// Package extract turns raw query text into typed entity spans. Two
// strategies run behind a shared Tagger interface: a statistical
// general-purpose tagger and a deterministic rule cascade, whose results are
// merged with precedence and conflict resolution.
package extract

// Label identifies the kind of entity a span represents.
type Label string

const (
	LabelTechnology        Label = "TECHNOLOGY"
	LabelTechCategory      Label = "TECH_CATEGORY"
	LabelTechExperience    Label = "TECH_EXPERIENCE"
	LabelOverallExperience Label = "OVERALL_EXPERIENCE"
	LabelSkillLevel        Label = "SKILL_LEVEL"
	LabelRole              Label = "ROLE"
	LabelCertification     Label = "CERTIFICATION"
	LabelLocation          Label = "GPE"
	LabelOrganization      Label = "ORG"
	LabelDate              Label = "DATE"
	LabelPerson            Label = "PERSON"
)

// Entity is one typed span detected in the query text. Offsets are byte
// positions into the original text.
type Entity struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label Label  `json:"label"`
}

// Token is one tokenized word with its Penn Treebank part-of-speech tag.
type Token struct {
	Text string
	Tag  string
}

// IsVerb reports whether the token is tagged as a verb or modal auxiliary.
func (t Token) IsVerb() bool {
	return len(t.Tag) >= 2 && t.Tag[:2] == "VB" || t.Tag == "MD"
}

// Tagger produces typed entity spans from raw text.
type Tagger interface {
	Tag(text string) ([]Entity, error)
}

// POSTagger produces part-of-speech tagged tokens from raw text. Used by the
// category detector to reject keyword matches that function as verbs.
type POSTagger interface {
	TagPOS(text string) ([]Token, error)
}
