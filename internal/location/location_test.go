package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-search/internal/extract"
	"github.com/jonathan/talent-search/internal/lexicon"
	"github.com/jonathan/talent-search/internal/types"
)

func testLexicon(t *testing.T) *lexicon.Lexicon {
	t.Helper()
	return lexicon.LoadDefault()
}

func TestExtractLocations_FromEntities(t *testing.T) {
	entities := []extract.Entity{
		{Text: "London", Start: 20, End: 26, Label: extract.LabelLocation},
		{Text: "Python", Start: 0, End: 6, Label: extract.LabelTechnology},
	}
	locs := ExtractLocations("python developer in London", entities, testLexicon(t))
	assert.Equal(t, []string{"London"}, locs)
}

func TestExtractLocations_CuePhrase(t *testing.T) {
	locs := ExtractLocations("java developer based in Bangalore", nil, testLexicon(t))
	require.NotEmpty(t, locs)
	assert.Equal(t, "Bangalore", locs[0])
}

func TestExtractLocations_MultipleJoined(t *testing.T) {
	locs := ExtractLocations("available in Mumbai and Pune", nil, testLexicon(t))
	assert.Contains(t, locs, "Mumbai")
	assert.Contains(t, locs, "Pune")
}

func TestExtractLocations_RejectsAvailabilityText(t *testing.T) {
	// "Immediate" after "available in" is availability, not a place. The
	// gazetteer may still contribute real places elsewhere in the query.
	locs := ExtractLocations("react developer available in Immediate Support", nil, testLexicon(t))
	for _, loc := range locs {
		assert.NotContains(t, loc, "Immediate")
	}
}

func TestExtractLocations_GazetteerMultiWord(t *testing.T) {
	locs := ExtractLocations("engineer from Sri Lanka with python", nil, testLexicon(t))
	assert.Contains(t, locs, "Sri Lanka")
}

func TestExtractLocations_GazetteerWordBoundary(t *testing.T) {
	// "push" contains "us" but must not yield a US location.
	locs := ExtractLocations("developer who can push code daily", nil, testLexicon(t))
	assert.NotContains(t, locs, "us")
}

func TestExtractLocations_Deduplicates(t *testing.T) {
	entities := []extract.Entity{
		{Text: "Chennai", Start: 19, End: 26, Label: extract.LabelLocation},
	}
	locs := ExtractLocations("python devs based in Chennai, Chennai preferred", entities, testLexicon(t))
	count := 0
	for _, loc := range locs {
		if loc == "Chennai" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestDetectAvailability_Immediate(t *testing.T) {
	avail := DetectAvailability("python developer available immediately")
	assert.Equal(t, types.AvailabilityAvailable, avail.Status)
	assert.Contains(t, avail.Keywords, "immediately")
	assert.Equal(t, "Immediate/ASAP", avail.Details)
}

func TestDetectAvailability_Limited(t *testing.T) {
	avail := DetectAvailability("react developer for part time work")
	assert.Equal(t, types.AvailabilityLimited, avail.Status)
	assert.Contains(t, avail.Keywords, "part time")
}

func TestDetectAvailability_NotAvailable(t *testing.T) {
	avail := DetectAvailability("who is not available right now")
	// "right away" not present; "not available" should win.
	assert.Equal(t, types.AvailabilityNotAvailable, avail.Status)
}

func TestDetectAvailability_ImmediateBeatsLimited(t *testing.T) {
	avail := DetectAvailability("urgent contract role, start asap")
	assert.Equal(t, types.AvailabilityAvailable, avail.Status)
	assert.Contains(t, avail.Keywords, "urgent")
	assert.Contains(t, avail.Keywords, "asap")
}

func TestDetectAvailability_None(t *testing.T) {
	avail := DetectAvailability("python developer in London")
	assert.False(t, avail.Detected())
	assert.Empty(t, avail.Keywords)
}
