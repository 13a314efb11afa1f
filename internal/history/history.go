// Package history keeps a bounded in-memory record of recent predictions.
// The scoring core itself is stateless; this store belongs to the serving
// layer and is injected where needed.
package history

import (
	"sync"
	"time"

	"github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/analysis"
	"github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/config"
)

// Entry is one remembered prediction.
type Entry struct {
	ID        int                       `json:"id"`
	Timestamp string                    `json:"timestamp"`
	Result    analysis.PredictionResult `json:"result"`
}

// Store is a FIFO-evicting history with a fixed capacity. Safe for
// concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
	nextID  int
	limit   int
}

// NewStore creates a history store. A non-positive limit falls back to
// config.DefaultHistoryLimit.
func NewStore(limit int) *Store {
	if limit <= 0 {
		limit = config.DefaultHistoryLimit
	}
	return &Store{
		entries: make([]Entry, 0, limit),
		limit:   limit,
	}
}

// Append records a prediction, evicting the oldest entry once the store
// is full.
func (s *Store) Append(result analysis.PredictionResult) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := Entry{
		ID:        s.nextID,
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
		Result:    result,
	}
	s.nextID++

	s.entries = append(s.entries, entry)
	if len(s.entries) > s.limit {
		s.entries = s.entries[len(s.entries)-s.limit:]
	}

	return entry
}

// All returns the remembered entries, oldest first.
func (s *Store) All() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Latest returns the most recent entry, if any.
func (s *Store) Latest() (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// Clear discards all entries.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = s.entries[:0]
}

// Len returns the number of remembered entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
