// Package garbage maintains the learned dictionary of known-bad OCR lines.
//
// The dictionary is a JSON array on disk, read and written wholesale. It only
// ever grows: lines are learned across pipeline runs and never pruned
// automatically. Persistence is read-modify-write with last-writer-wins
// semantics; a process-local mutex serializes learners in this process, but
// concurrent processes can lose updates. That risk is accepted for a
// single-bot deployment.
package garbage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Store persists the garbage line dictionary.
type Store struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

// NewStore creates a store backed by the JSON file at path.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the location of the dictionary file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the dictionary from disk. A missing or unreadable file degrades
// to an empty dictionary rather than an error: no garbage known yet.
func (s *Store) Load() []string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read garbage dictionary", "path", s.path, "error", err)
		}
		return nil
	}

	var entries []string
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("garbage dictionary is corrupt, treating as empty", "path", s.path, "error", err)
		return nil
	}
	return entries
}

// Filter returns the input lines excluding any whose trimmed form exactly
// matches a stored entry. The comparison is deliberately case-sensitive and
// unnormalized: the learner stores the same raw trimmed form, so both sides
// stay consistent.
func (s *Store) Filter(lines []string) []string {
	entries := s.Load()
	if len(entries) == 0 {
		return lines
	}

	known := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		known[e] = struct{}{}
	}

	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := known[strings.TrimSpace(line)]; ok {
			continue
		}
		kept = append(kept, line)
	}
	return kept
}

// Learn adds any candidate lines not already in the dictionary and persists
// the updated set. Candidates are trimmed; empty strings are never stored.
// Nothing is ever removed.
func (s *Store) Learn(candidates []string) error {
	if len(candidates) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.Load()
	known := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		known[e] = struct{}{}
	}

	changed := false
	for _, c := range candidates {
		clean := strings.TrimSpace(c)
		if clean == "" {
			continue
		}
		if _, ok := known[clean]; ok {
			continue
		}
		known[clean] = struct{}{}
		entries = append(entries, clean)
		changed = true
	}

	if !changed {
		return nil
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal garbage dictionary: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write garbage dictionary: %w", err)
	}
	return nil
}
