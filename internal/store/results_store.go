package store

import (
	"context"
	"time"

	"example.com/scoreboard/internal/scoreboard"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	DefaultRecentLimit = 20
	MaxRecentLimit     = 100
)

type Result struct {
	ID         string    `json:"id"`
	Home       string    `json:"home"`
	Away       string    `json:"away"`
	HomeScore  int       `json:"homeScore"`
	AwayScore  int       `json:"awayScore"`
	FinishedAt time.Time `json:"finishedAt"`
}

// ResultsStore archives finished matches in Postgres.
type ResultsStore struct {
	db *pgxpool.Pool
}

func NewResultsStore(db *pgxpool.Pool) *ResultsStore {
	return &ResultsStore{db: db}
}

func (s *ResultsStore) Archive(ctx context.Context, m scoreboard.Match, finishedAt time.Time) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO finished_matches (id, home, away, home_score, away_score, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.NewString(), m.Home, m.Away, m.HomeScore, m.AwayScore, finishedAt.UTC())
	return err
}

// Recent returns the latest finished matches, newest first.
func (s *ResultsStore) Recent(ctx context.Context, limit int) ([]Result, error) {
	limit = ClampLimit(limit)

	rows, err := s.db.Query(ctx, `
		SELECT id::text, home, away, home_score, away_score, finished_at
		FROM finished_matches
		ORDER BY finished_at DESC, id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Result, 0, limit)
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.ID, &r.Home, &r.Away, &r.HomeScore, &r.AwayScore, &r.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultRecentLimit
	case limit > MaxRecentLimit:
		return MaxRecentLimit
	}
	return limit
}
