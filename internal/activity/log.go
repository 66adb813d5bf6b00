// Package activity keeps the operator-visible event log of a session.
package activity

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const timeLayout = "15:04:05"

// Log is an append-only event buffer read newest first. It is never trimmed.
type Log struct {
	mu      sync.Mutex
	entries []string
	now     func() time.Time
	logger  *slog.Logger
}

// New creates an empty Log. A nil logger disables the diagnostic mirror.
func New(logger *slog.Logger) *Log {
	return &Log{now: time.Now, logger: logger}
}

// SetClock overrides the time source.
func (l *Log) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// Record adds a timestamped entry with an optional payload rendered as
// indented JSON.
func (l *Log) Record(message string, payload any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lines := []string{fmt.Sprintf("[%s] %s", l.now().Format(timeLayout), message)}
	if payload != nil {
		lines = append(lines, formatPayload(payload))
	}
	l.entries = append(l.entries, strings.Join(lines, "\n"))

	if l.logger != nil {
		l.logger.Debug("activity", "message", message, "payload", payload)
	}
}

// Entries returns the entries newest first.
func (l *Log) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[len(l.entries)-1-i] = e
	}
	return out
}

// Len returns the number of recorded entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// String renders the whole buffer, newest entry on top.
func (l *Log) String() string {
	entries := l.Entries()
	if len(entries) == 0 {
		return ""
	}
	return strings.Join(entries, "\n\n") + "\n\n"
}

func formatPayload(payload any) string {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", payload)
	}
	return string(data)
}
