package match

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/talent-search/internal/types"
)

// maxConcurrentScores bounds the scoring fan-out when ranking a candidate
// batch.
const maxConcurrentScores = 8

// RankedCandidate pairs a candidate with their scored result and the derived
// advice.
type RankedCandidate struct {
	Candidate           types.CandidateRecord      `json:"candidate"`
	Result              *types.MatchResult         `json:"match"`
	Recommendation      types.Recommendation       `json:"recommendation"`
	LearningSuggestions []types.LearningSuggestion `json:"learning_suggestions,omitempty"`
}

// Rank scores every candidate against the query concurrently and returns
// them ordered by overall match percentage, best first. Ordering is stable:
// ties keep the input order.
func Rank(ctx context.Context, query *types.ParsedQuery, candidates []types.CandidateRecord) ([]RankedCandidate, error) {
	ranked := make([]RankedCandidate, len(candidates))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentScores)

	for i := range candidates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			candidate := candidates[i]
			result := Score(&candidate, query)
			ranked[i] = RankedCandidate{
				Candidate:           candidate,
				Result:              result,
				Recommendation:      Recommend(result),
				LearningSuggestions: LearningSuggestions(result.SkillAnalysis),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.OverallMatchPercentage > ranked[j].Result.OverallMatchPercentage
	})
	return ranked, nil
}
