package history

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return &Store{
		Path:    filepath.Join(t.TempDir(), "history.jsonl"),
		MaxSize: 10 * 1024 * 1024,
		Enabled: true,
	}
}

func TestRecordWritesEntry(t *testing.T) {
	s := testStore(t)
	s.Record(NewEntry("say", "55", "fifty-five", 2*time.Millisecond, nil))

	entries, err := s.ReadEntries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Command != "say" || e.Input != "55" || e.Words != "fifty-five" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.Digits != 2 {
		t.Errorf("digits = %d, want 2", e.Digits)
	}
}

func TestRecordDisabledIsNoop(t *testing.T) {
	s := testStore(t)
	s.Enabled = false
	s.Record(NewEntry("say", "55", "fifty-five", 0, nil))

	if _, err := os.Stat(s.Path); err == nil {
		t.Error("disabled store should not create file")
	}
}

func TestRecordAppendsEntries(t *testing.T) {
	s := testStore(t)
	for i := 0; i < 3; i++ {
		s.Record(NewEntry("batch", "7", "seven", 0, nil))
	}

	entries, err := s.ReadEntries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("expected 3 entries, got %d", len(entries))
	}
}

func TestRecordCreatesDirectory(t *testing.T) {
	s := testStore(t)
	s.Path = filepath.Join(filepath.Dir(s.Path), "subdir", "deep", "history.jsonl")
	s.Record(NewEntry("say", "1", "one", 0, nil))

	if _, err := os.Stat(s.Path); os.IsNotExist(err) {
		t.Error("expected store file to be created in nested directory")
	}
}

func TestRecordFailure(t *testing.T) {
	s := testStore(t)
	s.Record(NewEntry("say", "abc", "", 0, errors.New("not a base-10 integer")))

	entries, err := s.ReadEntries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Err == "" {
		t.Error("failed translation should record its error")
	}
	if entries[0].Words != "" {
		t.Error("failed translation should not record words")
	}
}

func TestReadEntriesMissingFile(t *testing.T) {
	s := testStore(t)
	entries, err := s.ReadEntries()
	if err != nil {
		t.Fatalf("expected nil error for missing file, got: %v", err)
	}
	if len(entries) != 0 {
		t.Error("expected empty entries for missing file")
	}
}

func TestReadEntriesSkipsMalformed(t *testing.T) {
	s := testStore(t)
	s.Record(NewEntry("say", "5", "five", 0, nil))
	f, err := os.OpenFile(s.Path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("{not json\n")
	f.Close()
	s.Record(NewEntry("say", "6", "six", 0, nil))

	entries, err := s.ReadEntries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 valid entries, got %d", len(entries))
	}
}

func TestFilter(t *testing.T) {
	now := time.Now()
	entries := []Entry{
		{Timestamp: now.Add(-2 * time.Hour), Command: "say", Input: "1"},
		{Timestamp: now.Add(-1 * time.Hour), Command: "batch", Input: "2", Err: "bad line"},
		{Timestamp: now, Command: "say", Input: "3"},
	}

	// Filter by command
	result := Filter(entries, time.Time{}, time.Time{}, "say", false)
	if len(result) != 2 {
		t.Errorf("expected 2 say entries, got %d", len(result))
	}

	// Filter by failure
	result = Filter(entries, time.Time{}, time.Time{}, "", true)
	if len(result) != 1 {
		t.Errorf("expected 1 failed entry, got %d", len(result))
	}

	// Filter by time
	result = Filter(entries, now.Add(-90*time.Minute), time.Time{}, "", false)
	if len(result) != 2 {
		t.Errorf("expected 2 recent entries, got %d", len(result))
	}
}

func TestSummary(t *testing.T) {
	s := testStore(t)
	s.Record(NewEntry("say", "55", "fifty-five", 4*time.Millisecond, nil))
	s.Record(NewEntry("say", "1,000,000", "one million", 2*time.Millisecond, nil))
	s.Record(NewEntry("batch", "abc", "", 0, errors.New("not a base-10 integer")))

	stats, err := s.Summary()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalTranslations != 3 {
		t.Errorf("total = %d, want 3", stats.TotalTranslations)
	}
	if stats.ByCommand["say"] != 2 {
		t.Errorf("say count = %d, want 2", stats.ByCommand["say"])
	}
	if stats.ErrorCount != 1 {
		t.Errorf("errors = %d, want 1", stats.ErrorCount)
	}
	if stats.MaxDigits != 7 {
		t.Errorf("max digits = %d, want 7", stats.MaxDigits)
	}
	if stats.LargestInput != "1,000,000" {
		t.Errorf("largest input = %q", stats.LargestInput)
	}
	if stats.AvgDurationMs != 2.0 {
		t.Errorf("avg duration = %v, want 2.0", stats.AvgDurationMs)
	}
}

func TestSummaryEmptyStore(t *testing.T) {
	s := testStore(t)
	stats, err := s.Summary()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalTranslations != 0 {
		t.Errorf("total = %d, want 0", stats.TotalTranslations)
	}
}

func TestRotate(t *testing.T) {
	s := testStore(t)
	s.MaxSize = 10
	s.Record(NewEntry("say", "55", "fifty-five", 0, nil))

	if err := s.Rotate(); err != nil {
		t.Fatal(err)
	}
	if size := s.Size(); size != 0 {
		t.Errorf("expected truncated store, size = %d", size)
	}
}

func TestRecordRotatesOversizedStore(t *testing.T) {
	s := testStore(t)
	s.MaxSize = 10
	s.Record(NewEntry("say", "1", "one", 0, nil))
	s.Record(NewEntry("say", "2", "two", 0, nil))

	entries, err := s.ReadEntries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected rotation to leave 1 entry, got %d", len(entries))
	}
	if entries[0].Input != "2" {
		t.Errorf("surviving entry = %q, want the latest", entries[0].Input)
	}
}

func TestClear(t *testing.T) {
	s := testStore(t)
	s.Record(NewEntry("say", "55", "fifty-five", 0, nil))

	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	entries, err := s.ReadEntries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Error("expected empty store after clear")
	}
}

func TestClearMissingFile(t *testing.T) {
	s := testStore(t)
	if err := s.Clear(); err != nil {
		t.Errorf("Clear on missing file should be a no-op, got: %v", err)
	}
}

func TestCountDigits(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"0", 1},
		{"-55", 2},
		{"1,000,000", 7},
		{"1_000", 4},
		{"abc", 0},
	}
	for _, tt := range tests {
		if got := CountDigits(tt.in); got != tt.want {
			t.Errorf("CountDigits(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
