package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/npratt/agentshell/internal/events"
)

const (
	followPollInterval = 100 * time.Millisecond
	waitFileInterval   = 500 * time.Millisecond
)

// tailLast prints the last n events from the journal.
func tailLast(w io.Writer, path string, n int, layout string) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(w, "No events yet (journal does not exist)")
			return nil
		}
		return fmt.Errorf("open journal: %w", err)
	}
	defer func() { _ = file.Close() }()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read journal: %w", err)
	}

	if len(lines) == 0 {
		fmt.Fprintln(w, "No events yet")
		return nil
	}

	start := 0
	if n > 0 && len(lines) > n {
		start = len(lines) - n
	}
	for _, line := range lines[start:] {
		printEventLine(w, line, layout)
	}
	return nil
}

// waitForFile polls until path exists and returns it opened.
func waitForFile(ctx context.Context, path string) (*os.File, error) {
	ticker := time.NewTicker(waitFileInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			file, err := os.Open(path)
			if err == nil {
				return file, nil
			}
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("open file: %w", err)
			}
		}
	}
}

// tailFollow prints events appended to the journal until ctx is cancelled.
func tailFollow(ctx context.Context, w io.Writer, path, layout string) error {
	file, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("open journal: %w", err)
		}
		fmt.Fprintln(w, "Waiting for journal to be created...")
		file, err = waitForFile(ctx, path)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
	defer func() { _ = file.Close() }()

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("seek to end: %w", err)
	}

	fmt.Fprintln(w, "Following events (Ctrl+C to stop)...")
	reader := bufio.NewReader(file)
	var partial string
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		chunk, err := reader.ReadString('\n')
		partial += chunk
		if err != nil {
			if err != io.EOF {
				return fmt.Errorf("read journal: %w", err)
			}
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(followPollInterval):
			}
			continue
		}
		printEventLine(w, strings.TrimSpace(partial), layout)
		partial = ""
	}
}

// printEventLine prints one journal line as "stamp text". Lines that are not
// events are printed as-is; event types this build does not know are skipped.
func printEventLine(w io.Writer, line, layout string) {
	if line == "" {
		return
	}
	ev, err := events.ParseEvent([]byte(line))
	if err != nil {
		fmt.Fprintln(w, line)
		return
	}
	if ev == nil {
		return
	}
	text := events.Format(ev)
	if text == "" {
		text = string(ev.Type())
	}
	fmt.Fprintf(w, "%s %s\n", ev.Timestamp().Format(layout), text)
}
