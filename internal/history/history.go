// Package history keeps a local log of translations (~/.numsay/history.jsonl).
// Privacy-first: everything stays on disk, nothing is shipped anywhere.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Entry represents a single recorded translation.
type Entry struct {
	Timestamp  time.Time `json:"ts"`
	Command    string    `json:"cmd"` // say, batch, excel, shell, watch
	Input      string    `json:"in"`
	Words      string    `json:"words,omitempty"`
	Digits     int       `json:"digits"`
	DurationMs int64     `json:"ms"`
	Err        string    `json:"err,omitempty"`
}

// NewEntry builds an entry for one translation attempt. A nil err records a
// success; otherwise Words stays empty and the failure is kept for stats.
func NewEntry(command, input, words string, d time.Duration, err error) Entry {
	e := Entry{
		Timestamp:  time.Now(),
		Command:    command,
		Input:      input,
		Digits:     CountDigits(input),
		DurationMs: d.Milliseconds(),
	}
	if err != nil {
		e.Err = err.Error()
	} else {
		e.Words = words
	}
	return e
}

// CountDigits returns the number of decimal digits in s, ignoring signs and
// separators.
func CountDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// Stats holds aggregated history statistics.
type Stats struct {
	TotalTranslations int            `json:"total_translations"`
	ByCommand         map[string]int `json:"by_command"`
	ErrorCount        int            `json:"error_count"`
	AvgDurationMs     float64        `json:"avg_duration_ms"`
	MaxDigits         int            `json:"max_digits"`
	LargestInput      string         `json:"largest_input,omitempty"`
}

// Store manages the local history store.
type Store struct {
	Path    string
	MaxSize int64 // default 10MB
	Enabled bool
}

// DefaultStore returns an enabled Store at the default location.
func DefaultStore() *Store {
	home, _ := os.UserHomeDir()
	return &Store{
		Path:    filepath.Join(home, ".numsay", "history.jsonl"),
		MaxSize: 10 * 1024 * 1024,
		Enabled: true,
	}
}

// Record appends an entry to the store. Non-blocking, best-effort: a
// translation never fails because its history could not be written. A store
// that has grown past MaxSize is truncated before the append.
func (s *Store) Record(e Entry) {
	if !s.Enabled || s.Path == "" {
		return
	}
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return
	}
	_ = s.Rotate()

	f, err := os.OpenFile(s.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(e)
	if err != nil {
		return
	}
	data = append(data, '\n')
	_, _ = f.Write(data)
}

// ReadEntries reads all entries from the store, skipping malformed lines.
func (s *Store) ReadEntries() ([]Entry, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []Entry
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Filter returns entries matching the given criteria. Zero times and empty
// strings match everything; failedOnly keeps only failed translations.
func Filter(entries []Entry, since, until time.Time, command string, failedOnly bool) []Entry {
	var result []Entry
	for _, e := range entries {
		if !since.IsZero() && e.Timestamp.Before(since) {
			continue
		}
		if !until.IsZero() && e.Timestamp.After(until) {
			continue
		}
		if command != "" && e.Command != command {
			continue
		}
		if failedOnly && e.Err == "" {
			continue
		}
		result = append(result, e)
	}
	return result
}

// Summary returns aggregated stats from the store.
func (s *Store) Summary() (*Stats, error) {
	entries, err := s.ReadEntries()
	if err != nil {
		return nil, err
	}

	stats := &Stats{ByCommand: make(map[string]int)}
	var totalDuration int64

	for _, e := range entries {
		stats.TotalTranslations++
		stats.ByCommand[e.Command]++
		totalDuration += e.DurationMs
		if e.Err != "" {
			stats.ErrorCount++
		}
		if e.Digits > stats.MaxDigits {
			stats.MaxDigits = e.Digits
			stats.LargestInput = e.Input
		}
	}

	if stats.TotalTranslations > 0 {
		stats.AvgDurationMs = float64(totalDuration) / float64(stats.TotalTranslations)
	}

	return stats, nil
}

// Size returns the size of the history store in bytes.
func (s *Store) Size() int64 {
	info, err := os.Stat(s.Path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// Rotate truncates the store when it exceeds MaxSize.
func (s *Store) Rotate() error {
	info, err := os.Stat(s.Path)
	if err != nil {
		return nil
	}
	if info.Size() <= s.MaxSize {
		return nil
	}
	return os.Truncate(s.Path, 0)
}

// Clear removes all history data.
func (s *Store) Clear() error {
	if _, err := os.Stat(s.Path); os.IsNotExist(err) {
		return nil
	}
	return os.Truncate(s.Path, 0)
}
