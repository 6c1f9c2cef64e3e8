// Package cache persists generated answers keyed by the prompt that produced
// them, with fuzzy lookup so near-identical prompts reuse cached responses.
package cache

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/skanbot/skanbot/internal/similarity"
)

// DefaultFuzzyThreshold is the minimum similarity ratio for a cache hit.
const DefaultFuzzyThreshold = 0.85

const schemaSQL = `
CREATE TABLE IF NOT EXISTS answer_cache (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	prompt TEXT NOT NULL UNIQUE,
	response TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`

// Entry is one cached prompt/response pair.
type Entry struct {
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
}

// Store is a sqlite-backed answer cache.
type Store struct {
	db        *sql.DB
	threshold float64
	logger    *slog.Logger
}

// Open opens (creating if needed) the cache database at path.
func Open(path string, fuzzyThreshold float64, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if fuzzyThreshold <= 0 || fuzzyThreshold > 1 {
		fuzzyThreshold = DefaultFuzzyThreshold
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create cache schema: %w", err)
	}

	return &Store{db: db, threshold: fuzzyThreshold, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores a prompt/response pair, replacing any previous response for the
// same prompt.
func (s *Store) Save(ctx context.Context, prompt, response string) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return fmt.Errorf("empty prompt")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO answer_cache (prompt, response) VALUES (?, ?)
		 ON CONFLICT(prompt) DO UPDATE SET response = excluded.response`,
		prompt, response)
	if err != nil {
		return fmt.Errorf("save cache entry: %w", err)
	}
	return nil
}

// All returns every cached pair in insertion order.
func (s *Store) All(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT prompt, response FROM answer_cache ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query cache: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Prompt, &e.Response); err != nil {
			return nil, fmt.Errorf("scan cache entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// FuzzyFind returns the response whose prompt best matches the query, if the
// best similarity reaches the threshold.
func (s *Store) FuzzyFind(ctx context.Context, prompt string) (string, bool, error) {
	entries, err := s.All(ctx)
	if err != nil {
		return "", false, err
	}

	query := strings.ToLower(strings.TrimSpace(prompt))
	best := ""
	bestRatio := 0.0
	for _, e := range entries {
		r := similarity.Ratio(query, strings.ToLower(e.Prompt))
		if r > bestRatio {
			bestRatio = r
			best = e.Response
		}
	}

	if bestRatio < s.threshold {
		return "", false, nil
	}
	s.logger.Debug("cache hit", "ratio", bestRatio)
	return best, true, nil
}
