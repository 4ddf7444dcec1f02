package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-search/internal/types"
)

// ErrNotFound is returned when a candidate lookup matches no row.
var ErrNotFound = errors.New("candidate not found")

var validate = validator.New()

// UpsertCandidate inserts or updates a candidate profile. A missing ID gets a
// fresh UUID. The record is validated before touching the database.
func (db *DB) UpsertCandidate(ctx context.Context, c *types.CandidateRecord) (uuid.UUID, error) {
	if err := validate.Struct(c); err != nil {
		return uuid.Nil, fmt.Errorf("invalid candidate: %w", err)
	}

	id, err := uuid.Parse(c.ID)
	if c.ID == "" || err != nil {
		id = uuid.New()
	}

	skillsJSON, err := json.Marshal(c.Skills)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal skills: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO candidates (id, name, skills, total_years, location, availability)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE
		 SET name = $2, skills = $3, total_years = $4, location = $5, availability = $6, updated_at = NOW()`,
		id, c.Name, skillsJSON, c.TotalYears, c.Location, c.Availability,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert candidate: %w", err)
	}
	return id, nil
}

// GetCandidate fetches one candidate by ID.
func (db *DB) GetCandidate(ctx context.Context, id uuid.UUID) (*types.CandidateRecord, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, name, skills, total_years, location, availability
		 FROM candidates WHERE id = $1`, id)

	c, err := scanCandidate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return c, nil
}

// SearchCandidates returns candidates whose stored skill list mentions any of
// the given skills, most recently updated first. Empty skills means no skill
// filter. Matching happens here only as a coarse pre-filter; the match
// package does the real scoring.
func (db *DB) SearchCandidates(ctx context.Context, skills []string, limit int) ([]types.CandidateRecord, error) {
	query, args := buildCandidateSearch(skills, limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search candidates: %w", err)
	}
	defer rows.Close()

	var out []types.CandidateRecord
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// DeleteCandidate removes a candidate.
func (db *DB) DeleteCandidate(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// buildCandidateSearch assembles the search SQL. Skill terms become
// case-insensitive containment tests over the skills JSON text, OR-combined:
// the pre-filter must not drop partially matching candidates.
func buildCandidateSearch(skills []string, limit int) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, name, skills, total_years, location, availability FROM candidates`)

	var args []any
	var clauses []string
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		args = append(args, "%"+skill+"%")
		clauses = append(clauses, fmt.Sprintf("skills::text ILIKE $%d", len(args)))
	}
	if len(clauses) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(clauses, " OR "))
	}

	sb.WriteString(" ORDER BY updated_at DESC")
	if limit > 0 {
		args = append(args, limit)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}

	return sb.String(), args
}

func scanCandidate(row pgx.Row) (*types.CandidateRecord, error) {
	var (
		id         uuid.UUID
		c          types.CandidateRecord
		skillsJSON []byte
	)
	if err := row.Scan(&id, &c.Name, &skillsJSON, &c.TotalYears, &c.Location, &c.Availability); err != nil {
		return nil, err
	}
	c.ID = id.String()
	if len(skillsJSON) > 0 {
		if err := json.Unmarshal(skillsJSON, &c.Skills); err != nil {
			return nil, fmt.Errorf("malformed skills payload: %w", err)
		}
	}
	return &c, nil
}
