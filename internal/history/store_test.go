package history

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T, opts ...StoreOption) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "history.json"), opts...)
}

func TestStore_AppendAndList(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	if err := s.Append(Entry{Text: "erste", Mode: "standard", Language: "de"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Append(Entry{Text: "zweite", Mode: "email", Language: "de"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	// Newest first.
	if entries[0].Text != "zweite" || entries[1].Text != "erste" {
		t.Errorf("order wrong: %q, %q", entries[0].Text, entries[1].Text)
	}
	if entries[0].ID == "" || entries[0].Timestamp.IsZero() {
		t.Error("ID and timestamp must be filled in")
	}
}

func TestStore_EmptyFileIsEmptyHistory(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	entries, err := s.List()
	if err != nil {
		t.Fatalf("List on missing file: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}

func TestStore_LimitEnforced(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, WithLimit(3))

	for i := 0; i < 5; i++ {
		err := s.Append(Entry{ID: fmt.Sprintf("e%d", i), Text: fmt.Sprintf("text %d", i)})
		if err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	// The newest three survive, oldest dropped.
	if entries[0].ID != "e4" || entries[2].ID != "e2" {
		t.Errorf("wrong entries kept: %q .. %q", entries[0].ID, entries[2].ID)
	}
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	s.Append(Entry{ID: "a", Text: "eins"})
	s.Append(Entry{ID: "b", Text: "zwei"})

	if err := s.Delete("a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	entries, _ := s.List()
	if len(entries) != 1 || entries[0].ID != "b" {
		t.Errorf("got %+v, want only b", entries)
	}

	// Unknown ID is a no-op.
	if err := s.Delete("missing"); err != nil {
		t.Errorf("Delete unknown: %v", err)
	}
}

func TestStore_Clear(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	s.Append(Entry{Text: "weg damit"})
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	entries, _ := s.List()
	if len(entries) != 0 {
		t.Errorf("got %d entries after Clear, want 0", len(entries))
	}
}

func TestStore_Stats(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	// 400 chars at 200 chars/min is two minutes saved.
	long := make([]rune, 400)
	for i := range long {
		long[i] = 'a'
	}
	s.Append(Entry{Text: string(long)})

	st, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.TotalTranscriptions != 1 {
		t.Errorf("TotalTranscriptions=%d, want 1", st.TotalTranscriptions)
	}
	if st.TotalChars != 400 {
		t.Errorf("TotalChars=%d, want 400", st.TotalChars)
	}
	if st.SavedTime != 2*time.Minute {
		t.Errorf("SavedTime=%v, want 2m", st.SavedTime)
	}
}

func TestStore_StatsCountsRunes(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	s.Append(Entry{Text: "äöü"})
	st, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.TotalChars != 3 {
		t.Errorf("TotalChars=%d, want 3 (runes, not bytes)", st.TotalChars)
	}
}
