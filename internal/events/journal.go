package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Sink consumes events from the router.
type Sink interface {
	Start(ctx context.Context, events <-chan Event) error
	Stop() error
}

// largeJournalThreshold is the size above which a warning is logged on rotation.
const largeJournalThreshold = 50 * 1024 * 1024

// JournalSink appends every event to a JSON-lines file so a session can be
// replayed with "agentshell events".
type JournalSink struct {
	path    string
	file    *os.File
	encoder *json.Encoder
	mu      sync.Mutex
	started bool
	done    chan struct{}
	written int
}

// NewJournalSink creates a sink that writes to path once started.
func NewJournalSink(path string) *JournalSink {
	return &JournalSink{
		path: path,
		done: make(chan struct{}),
	}
}

// Start opens the journal and consumes events until ctx is canceled or the
// channel closes.
func (s *JournalSink) Start(ctx context.Context, events <-chan Event) error {
	if err := s.open(); err != nil {
		return err
	}

	s.mu.Lock()
	s.started = true
	s.mu.Unlock()

	go s.run(ctx, events)
	return nil
}

func (s *JournalSink) open() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create journal directory: %w", err)
	}
	if err := s.rotateExisting(); err != nil {
		return err
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}

	s.mu.Lock()
	s.file = file
	s.encoder = json.NewEncoder(file)
	s.mu.Unlock()
	return nil
}

// rotateExisting moves a non-empty journal aside with a timestamp suffix so
// each session starts with a fresh file.
func (s *JournalSink) rotateExisting() error {
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat journal: %w", err)
	}
	if info.Size() == 0 {
		return nil
	}

	if info.Size() > largeJournalThreshold {
		slog.Warn("large journal file, consider removing old .bak files",
			"size_mb", info.Size()/(1024*1024),
			"dir", filepath.Dir(s.path))
	}

	bakPath := fmt.Sprintf("%s.%s.bak", s.path, time.Now().Format("2006-01-02T15-04-05"))
	if err := os.Rename(s.path, bakPath); err != nil {
		return fmt.Errorf("rotate journal: %w", err)
	}
	return nil
}

func (s *JournalSink) run(ctx context.Context, events <-chan Event) {
	defer close(s.done)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			s.write(event)
		}
	}
}

func (s *JournalSink) write(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.encoder == nil {
		return
	}
	if err := s.encoder.Encode(event); err != nil {
		slog.Error("journal: failed to write event", "event_type", event.Type(), "error", err)
		return
	}
	s.written++
}

// Stop waits for the consumer goroutine to exit and closes the file.
// The caller must cancel the context or close the channel first.
func (s *JournalSink) Stop() error {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if !started {
		return nil
	}

	<-s.done

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	s.encoder = nil
	return err
}

// Path returns the journal file path.
func (s *JournalSink) Path() string {
	return s.path
}

// Written returns how many events were written successfully.
func (s *JournalSink) Written() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.written
}
