package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/talent-search/internal/db"
	"github.com/jonathan/talent-search/internal/match"
	"github.com/jonathan/talent-search/internal/types"
)

var validate = validator.New()

// ParseRequest is the body of POST /api/parse.
type ParseRequest struct {
	Query string `json:"query"`
}

// MatchRequest is the body of POST /api/match. The candidate is supplied
// inline so the endpoint works without a candidate store.
type MatchRequest struct {
	Query     string                `json:"query" validate:"required"`
	Candidate types.CandidateRecord `json:"candidate" validate:"required"`
}

// MatchResponse pairs the interpreted query with its scoring outcome.
type MatchResponse struct {
	ParsedQuery         *types.ParsedQuery         `json:"parsed_query"`
	Result              *types.MatchResult         `json:"result"`
	Recommendation      types.Recommendation       `json:"recommendation"`
	LearningSuggestions []types.LearningSuggestion `json:"learning_suggestions"`
	Summary             string                     `json:"summary"`
}

// SearchRequest is the body of POST /api/search.
type SearchRequest struct {
	Query string `json:"query" validate:"required"`
	Limit int    `json:"limit" validate:"gte=0"`
}

// SearchResponse holds the interpreted query and the ranked candidates.
type SearchResponse struct {
	ParsedQuery *types.ParsedQuery      `json:"parsed_query"`
	Candidates  []match.RankedCandidate `json:"candidates"`
	Total       int                     `json:"total"`
}

// handleParse interprets a free-form hiring query.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// An empty query is not an error; it yields the defined empty result.
	s.jsonResponse(w, http.StatusOK, s.parser.Parse(req.Query))
}

// handleMatch scores one inline candidate against a query.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	parsed := s.parser.Parse(req.Query)
	result := match.Score(&req.Candidate, parsed)
	rec := match.Recommend(result)

	s.jsonResponse(w, http.StatusOK, MatchResponse{
		ParsedQuery:         parsed,
		Result:              result,
		Recommendation:      rec,
		LearningSuggestions: match.LearningSuggestions(result.SkillAnalysis),
		Summary:             match.Summary(result, rec),
	})
}

// handleSearch parses the query, fetches matching candidates from the store,
// and returns them ranked by overall match percentage.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "candidate store not configured")
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	limit := req.Limit
	if limit <= 0 || limit > s.maxCandidates {
		limit = s.maxCandidates
	}

	parsed := s.parser.Parse(req.Query)

	// Coarse store-side pre-filter on every skill the query mentions.
	// Precise skill matching happens during scoring.
	skills := append(append([]string{}, parsed.Skills...), parsed.OptionalSkills...)
	candidates, err := s.db.SearchCandidates(r.Context(), skills, limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "candidate search failed")
		return
	}

	ranked, err := match.Rank(r.Context(), parsed, candidates)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "candidate ranking failed")
		return
	}

	s.jsonResponse(w, http.StatusOK, SearchResponse{
		ParsedQuery: parsed,
		Candidates:  ranked,
		Total:       len(ranked),
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStats reports what the parser has loaded.
func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.parser.Stats())
}

func (s *Server) handleUpsertCandidate(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "candidate store not configured")
		return
	}

	var record types.CandidateRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	id, err := s.db.UpsertCandidate(r.Context(), &record)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"id": id.String()})
}

func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "candidate store not configured")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid candidate id")
		return
	}

	record, err := s.db.GetCandidate(r.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "candidate not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "failed to load candidate")
		return
	}

	s.jsonResponse(w, http.StatusOK, record)
}

func (s *Server) handleDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "candidate store not configured")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid candidate id")
		return
	}

	if err := s.db.DeleteCandidate(r.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "candidate not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "failed to delete candidate")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}
