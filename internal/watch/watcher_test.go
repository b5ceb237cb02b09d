package watch

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klytics/numsay/internal/numfile"
)

func TestNewWatcher(t *testing.T) {
	w, err := New(WatchConfig{
		Directories: []string{t.TempDir()},
		Debounce:    100,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if w == nil {
		t.Fatal("expected non-nil watcher")
	}
	w.watcher.Close()
}

func TestMatchesPatterns(t *testing.T) {
	w, _ := New(WatchConfig{Patterns: []string{"invoice_*.csv", "daily_*"}}, nil)
	defer w.watcher.Close()

	if !w.matchesPatterns("/tmp/invoice_2024.csv") {
		t.Error("should match invoice_2024.csv")
	}
	if !w.matchesPatterns("/tmp/daily_totals.txt") {
		t.Error("should match daily_totals.txt")
	}
	if w.matchesPatterns("/tmp/readings.txt") {
		t.Error("should not match readings.txt")
	}
}

func TestMatchesPatternsEmpty(t *testing.T) {
	w, _ := New(WatchConfig{}, nil)
	defer w.watcher.Close()

	if !w.matchesPatterns("/tmp/anything.txt") {
		t.Error("empty pattern list should match everything")
	}
}

func TestWatcherTranslates(t *testing.T) {
	dir := t.TempDir()

	w, err := New(WatchConfig{
		Directories: []string{dir},
		Debounce:    50,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan string, 1)
	inner := w.Handler
	w.Handler = func(path string) (*numfile.Result, error) {
		res, err := inner(path)
		done <- path
		return res, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		w.Start(ctx)
	}()

	// Give the watcher time to start
	time.Sleep(100 * time.Millisecond)

	testFile := filepath.Join(dir, "numbers.txt")
	os.WriteFile(testFile, []byte("55\n-1024\n"), 0644)

	select {
	case path := <-done:
		if path != testFile {
			t.Errorf("expected %q, got %q", testFile, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for translation")
	}

	out, err := os.ReadFile(filepath.Join(dir, "numbers.words.txt"))
	if err != nil {
		t.Fatalf("words file not written: %v", err)
	}
	if !strings.Contains(string(out), "fifty-five") {
		t.Errorf("unexpected words output: %q", out)
	}

	// The event record lands after the handler returns; poll briefly.
	var events []Event
	for i := 0; i < 50 && len(events) == 0; i++ {
		events = w.GetEvents()
		time.Sleep(20 * time.Millisecond)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Status != "translated" || events[0].Translated != 2 {
		t.Errorf("unexpected event: %+v", events[0])
	}

	cancel()
}

func TestWatcherSkipsOtherFiles(t *testing.T) {
	dir := t.TempDir()

	w, err := New(WatchConfig{
		Directories: []string{dir},
		Debounce:    50,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	handlerCalled := false
	w.Handler = func(path string) (*numfile.Result, error) {
		handlerCalled = true
		return &numfile.Result{}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go w.Start(ctx)
	time.Sleep(100 * time.Millisecond)

	// Not a number-list extension
	os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# notes"), 0644)
	time.Sleep(200 * time.Millisecond)

	if handlerCalled {
		t.Error("handler should not be called for .md files")
	}

	cancel()
}

func TestWatcherIgnoresOwnOutput(t *testing.T) {
	dir := t.TempDir()

	w, err := New(WatchConfig{
		Directories: []string{dir},
		Debounce:    50,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	handlerCalled := false
	w.Handler = func(path string) (*numfile.Result, error) {
		handlerCalled = true
		return &numfile.Result{}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go w.Start(ctx)
	time.Sleep(100 * time.Millisecond)

	// A words file the watcher itself would have produced
	os.WriteFile(filepath.Join(dir, "numbers.words.txt"), []byte("fifty-five\n"), 0644)
	time.Sleep(200 * time.Millisecond)

	if handlerCalled {
		t.Error("handler should not be called for words output files")
	}

	cancel()
}

func TestPIDFile(t *testing.T) {
	dir := t.TempDir()

	if err := WritePIDFile(dir); err != nil {
		t.Fatal(err)
	}

	pid, err := ReadPIDFile(dir)
	if err != nil {
		t.Fatal(err)
	}
	if pid != os.Getpid() {
		t.Errorf("expected PID %d, got %d", os.Getpid(), pid)
	}

	if err := RemovePIDFile(dir); err != nil {
		t.Fatal(err)
	}

	_, err = ReadPIDFile(dir)
	if err == nil {
		t.Error("expected error after removing PID file")
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	dir := t.TempDir()

	config := WatchConfig{
		Directories: []string{"/tmp/numbers"},
		Patterns:    []string{"*.csv"},
		OutDir:      "/tmp/words",
		Recursive:   true,
		Debounce:    500,
	}

	if err := SaveConfig(dir, config); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(loaded.Directories) != 1 || loaded.Directories[0] != "/tmp/numbers" {
		t.Errorf("directories mismatch: %v", loaded.Directories)
	}
	if !loaded.Recursive {
		t.Error("expected recursive=true")
	}
	if loaded.OutDir != "/tmp/words" {
		t.Errorf("outDir mismatch: %q", loaded.OutDir)
	}
	if len(loaded.Patterns) != 1 {
		t.Errorf("expected 1 pattern, got %d", len(loaded.Patterns))
	}
}

func TestGetStatus(t *testing.T) {
	w, _ := New(WatchConfig{
		Directories: []string{"/tmp/a", "/tmp/b"},
		Patterns:    []string{"*.txt"},
	}, nil)
	defer w.watcher.Close()

	status := w.GetStatus()
	if !status.Running {
		t.Error("expected running=true")
	}
	if len(status.Directories) != 2 {
		t.Errorf("expected 2 directories, got %d", len(status.Directories))
	}
	if len(status.Patterns) != 1 {
		t.Errorf("expected 1 pattern, got %d", len(status.Patterns))
	}
}

func TestEventJSON(t *testing.T) {
	evt := Event{
		Time:       time.Now(),
		Path:       "/tmp/numbers.txt",
		Operation:  "CREATE",
		Output:     "/tmp/numbers.words.txt",
		Translated: 12,
		Status:     "translated",
	}

	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatal(err)
	}

	var decoded Event
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Path != "/tmp/numbers.txt" {
		t.Errorf("Path = %q", decoded.Path)
	}
	if decoded.Status != "translated" {
		t.Errorf("Status = %q", decoded.Status)
	}
	if decoded.Translated != 12 {
		t.Errorf("Translated = %d", decoded.Translated)
	}
}

func TestDefaultDebounce(t *testing.T) {
	w, _ := New(WatchConfig{Debounce: 0}, nil)
	defer w.watcher.Close()

	if w.Config.Debounce != 500 {
		t.Errorf("expected default debounce 500, got %d", w.Config.Debounce)
	}
}
