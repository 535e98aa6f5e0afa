// Package history persists completed dictations in a local JSON file.
//
// The store keeps the most recent entries newest-first and caps the file at
// a fixed number of records, suitable for a single-user desktop deployment.
// For multi-user use this should be replaced with a database-backed
// implementation.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultLimit is the maximum number of entries kept when no other limit is
// configured.
const DefaultLimit = 100

// charsPerMinute is the assumed typing speed used to estimate how much time
// a dictation saved over typing the same text.
const charsPerMinute = 200

// Entry is a single completed dictation.
type Entry struct {
	// ID uniquely identifies the entry.
	ID string `json:"id"`

	// Timestamp is when the dictation finished.
	Timestamp time.Time `json:"timestamp"`

	// Text is the final cleaned text.
	Text string `json:"text"`

	// RawText is the unmodified transcript.
	RawText string `json:"raw_text,omitempty"`

	// Language is the detected language of the dictation.
	Language string `json:"language,omitempty"`

	// Mode is the ID of the mode the dictation was cleaned with.
	Mode string `json:"mode,omitempty"`
}

// Stats aggregates the whole history for display.
type Stats struct {
	// TotalTranscriptions is the number of stored entries.
	TotalTranscriptions int `json:"total_transcriptions"`

	// TotalChars is the summed length of all final texts.
	TotalChars int `json:"total_chars"`

	// SavedTime estimates the typing time the dictations replaced,
	// assuming 200 characters per minute.
	SavedTime time.Duration `json:"saved_time"`
}

// StoreOption is a functional option for the Store.
type StoreOption func(*Store)

// WithLimit overrides the maximum number of retained entries.
// Default: 100.
func WithLimit(n int) StoreOption {
	return func(s *Store) {
		if n > 0 {
			s.limit = n
		}
	}
}

// Store persists dictation history as a JSON array in a local file,
// newest entry first. Thread-safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	path  string
	limit int
}

// NewStore creates a Store that reads and writes the given path. The file
// is created on the first append.
func NewStore(path string, opts ...StoreOption) *Store {
	s := &Store{path: path, limit: DefaultLimit}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Append prepends an entry and trims the history to the configured limit.
// A missing ID or timestamp is filled in.
func (s *Store) Append(entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = fmt.Sprintf("%d", time.Now().UnixNano())
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	entries, err := s.load()
	if err != nil {
		return err
	}

	entries = append([]Entry{entry}, entries...)
	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}
	return s.save(entries)
}

// List returns all stored entries, newest first.
func (s *Store) List() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Delete removes the entry with the given ID. Unknown IDs are a no-op.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return nil
	}
	return s.save(kept)
}

// Clear removes all entries.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save([]Entry{})
}

// Stats aggregates the stored history.
func (s *Store) Stats() (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return Stats{}, err
	}

	var st Stats
	st.TotalTranscriptions = len(entries)
	for _, e := range entries {
		st.TotalChars += len([]rune(e.Text))
	}
	st.SavedTime = time.Duration(float64(st.TotalChars) / charsPerMinute * float64(time.Minute))
	return st, nil
}

// load reads the history file. A missing file is an empty history.
func (s *Store) load() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("history: read file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("history: parse file: %w", err)
	}
	return entries, nil
}

// save writes the history atomically via a temp file in the same directory.
func (s *Store) save(entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("history: marshal: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("history: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return fmt.Errorf("history: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("history: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("history: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("history: replace file: %w", err)
	}
	return nil
}
