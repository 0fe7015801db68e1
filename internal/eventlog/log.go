// Package eventlog provides an append-only, newest-first log of timestamped
// text entries written in batches.
package eventlog

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is a single immutable log record.
type Entry struct {
	ID   string    `json:"id"`
	Seq  uint64    `json:"seq"` // Strictly increasing across the log's lifetime, survives Clear
	Time time.Time `json:"time"`
	Text string    `json:"text"`
}

// Log holds entries in reverse-chronological order. New batches are
// prepended as a contiguous block that keeps its own internal order.
type Log struct {
	mu         sync.RWMutex
	entries    []Entry
	seq        uint64
	maxEntries int
	now        func() time.Time
	newID      func(seq uint64) string
}

// Option configures a Log.
type Option func(*Log)

// WithMaxEntries caps the log length. Oldest entries are dropped first.
// Zero or negative means unbounded.
func WithMaxEntries(n int) Option {
	return func(l *Log) {
		if n < 0 {
			n = 0
		}
		l.maxEntries = n
	}
}

// WithClock sets the time source used to stamp batches.
func WithClock(now func() time.Time) Option {
	return func(l *Log) {
		if now != nil {
			l.now = now
		}
	}
}

// WithIDFunc sets the entry id generator. It receives the entry's sequence
// number and must return a value unique within the log.
func WithIDFunc(fn func(seq uint64) string) Option {
	return func(l *Log) {
		if fn != nil {
			l.newID = fn
		}
	}
}

// New creates an empty Log.
func New(opts ...Option) *Log {
	l := &Log{
		now:   time.Now,
		newID: func(uint64) string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AppendBatch records lines produced by one action. All entries share a
// single timestamp and the batch is placed ahead of every existing entry,
// in the order given. Returns the created entries; an empty call is a no-op.
func (l *Log) AppendBatch(lines ...string) []Entry {
	if len(lines) == 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	ts := l.now()
	batch := make([]Entry, len(lines))
	for i, text := range lines {
		l.seq++
		batch[i] = Entry{
			ID:   l.newID(l.seq),
			Seq:  l.seq,
			Time: ts,
			Text: text,
		}
	}

	merged := make([]Entry, 0, len(batch)+len(l.entries))
	merged = append(merged, batch...)
	merged = append(merged, l.entries...)
	if l.maxEntries > 0 && len(merged) > l.maxEntries {
		merged = merged[:l.maxEntries]
	}
	l.entries = merged

	return append([]Entry(nil), batch...)
}

// All returns a copy of the entries, newest first.
func (l *Log) All() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Entry(nil), l.entries...)
}

// Len returns the number of entries currently held.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Clear removes all entries and returns how many were dropped.
func (l *Log) Clear() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.entries)
	l.entries = nil
	return n
}
