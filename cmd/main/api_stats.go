package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const hitsSchema = `
CREATE TABLE IF NOT EXISTS page_hits (
    path          TEXT PRIMARY KEY,
    total_hits    INTEGER NOT NULL DEFAULT 1,
    first_seen    DATETIME NOT NULL,
    last_seen     DATETIME NOT NULL
);
`

// PageHits is the view counter of a single page.
type PageHits struct {
	Path      string    `json:"path"`
	TotalHits int64     `json:"total_hits"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
}

// HitsSummary provides a high-level overview of all collected page views.
type HitsSummary struct {
	TotalRequests int64 `json:"total_requests"`
	UniquePages   int64 `json:"unique_pages"`
	Endgames      int   `json:"endgames"`
}

// StatsAPI counts page views and reports them on the admin server.
type StatsAPI struct {
	db      *sql.DB
	logger  *slog.Logger
	endgame EndgameCounter
}

// EndgameCounter reports how many endgames have statistics loaded.
type EndgameCounter interface {
	Count(ctx context.Context) (int, error)
}

func setupHitsSchema(db *sql.DB) error {
	_, err := db.Exec(hitsSchema)
	return err
}

func NewStatsAPI(db *sql.DB, logger *slog.Logger, endgames EndgameCounter) *StatsAPI {
	return &StatsAPI{
		db:      db,
		logger:  logger,
		endgame: endgames,
	}
}

func (s *StatsAPI) RegisterRoutes(r chi.Router) {
	r.Get("/api/stats/summary", s.handleSummary)
	r.Get("/api/stats/pages", s.handlePages)
}

// RecordHit counts a view of path.
func (s *StatsAPI) RecordHit(ctx context.Context, path string) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO page_hits (path, first_seen, last_seen) VALUES (?, ?, ?)
        ON CONFLICT(path) DO UPDATE SET total_hits = total_hits + 1, last_seen = ?
    `, path, now, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert page_hits: %w", err)
	}
	return nil
}

// TopPages returns the most viewed pages, most viewed first.
func (s *StatsAPI) TopPages(ctx context.Context, limit int) ([]PageHits, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT path, total_hits, first_seen, last_seen FROM page_hits ORDER BY total_hits DESC, path LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query page_hits: %w", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	results := []PageHits{}
	for rows.Next() {
		var h PageHits
		if err = rows.Scan(&h.Path, &h.TotalHits, &h.FirstSeen, &h.LastSeen); err != nil {
			return nil, fmt.Errorf("failed to scan page_hits: %w", err)
		}
		results = append(results, h)
	}
	return results, rows.Err()
}

func (s *StatsAPI) handleSummary(w http.ResponseWriter, r *http.Request) {
	var summary HitsSummary
	if err := s.db.QueryRowContext(r.Context(), "SELECT COALESCE(SUM(total_hits), 0) FROM page_hits").Scan(&summary.TotalRequests); err != nil {
		s.logger.Error("Failed to sum page hits", "error", err)
	}
	if err := s.db.QueryRowContext(r.Context(), "SELECT COUNT(*) FROM page_hits").Scan(&summary.UniquePages); err != nil {
		s.logger.Error("Failed to count pages", "error", err)
	}
	if n, err := s.endgame.Count(r.Context()); err != nil {
		s.logger.Error("Failed to count endgames", "error", err)
	} else {
		summary.Endgames = n
	}
	respondWithJSON(w, http.StatusOK, summary)
}

func (s *StatsAPI) handlePages(w http.ResponseWriter, r *http.Request) {
	pages, err := s.TopPages(r.Context(), 100)
	if err != nil {
		s.logger.Error("Failed to query top pages", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	respondWithJSON(w, http.StatusOK, pages)
}
