// Package watch provides a file system watcher for hands-free translation.
// It monitors directories for new/modified number files (.txt, .csv) and
// writes a words file next to each one as it changes.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/klytics/numsay/internal/numfile"
	"github.com/klytics/numsay/numword"
)

// WatchConfig holds the complete watcher configuration.
type WatchConfig struct {
	Directories []string `json:"directories"`
	Patterns    []string `json:"patterns,omitempty"` // Glob patterns (e.g., "invoice_*.csv"); empty matches all number files
	OutDir      string   `json:"outDir,omitempty"`   // Where words files go; empty means next to the input
	Recursive   bool     `json:"recursive"`
	Debounce    int      `json:"debounceMs"` // Milliseconds to wait before translating
}

// Event represents a file event that was detected and processed.
type Event struct {
	Time       time.Time `json:"time"`
	Path       string    `json:"path"`
	Operation  string    `json:"operation"` // fsnotify op name ("CREATE", "WRITE")
	Output     string    `json:"output,omitempty"`
	Translated int       `json:"translated,omitempty"`
	Failed     int       `json:"failed,omitempty"`
	Status     string    `json:"status"` // "translated", "error", "skipped"
	Error      string    `json:"error,omitempty"`
}

// Handler translates one file and reports what it produced.
type Handler func(path string) (*numfile.Result, error)

// Watcher monitors directories for number files and translates them.
type Watcher struct {
	Config   WatchConfig
	Logger   *log.Logger
	Events   []Event
	Handler  Handler
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	debounce map[string]*time.Timer
}

// Status represents the current watcher status.
type Status struct {
	Running     bool     `json:"running"`
	Directories []string `json:"directories"`
	Patterns    []string `json:"patterns,omitempty"`
	OutDir      string   `json:"outDir,omitempty"`
	EventCount  int      `json:"eventCount"`
	StartedAt   string   `json:"startedAt,omitempty"`
}

// numberExtensions are the file types the watcher translates.
var numberExtensions = map[string]bool{
	".txt": true, ".csv": true,
}

// New creates a Watcher that translates with tr. A nil translator means
// the default English one.
func New(config WatchConfig, tr *numword.Translator) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create file watcher: %w", err)
	}

	if config.Debounce <= 0 {
		config.Debounce = 500
	}
	if tr == nil {
		tr = numword.Default()
	}

	w := &Watcher{
		Config:   config,
		Logger:   log.New(os.Stderr, "[watch] ", log.LstdFlags),
		watcher:  fsw,
		debounce: make(map[string]*time.Timer),
	}
	w.Handler = func(path string) (*numfile.Result, error) {
		return numfile.TranslateToFile(tr, path, config.OutDir)
	}

	return w, nil
}

// Start begins watching the configured directories. It blocks until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	// Add directories
	for _, dir := range w.Config.Directories {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("could not resolve %s: %w", dir, err)
		}

		if w.Config.Recursive {
			if err := w.addRecursive(absDir); err != nil {
				return err
			}
		} else {
			if err := w.watcher.Add(absDir); err != nil {
				return fmt.Errorf("could not watch %s: %w", absDir, err)
			}
		}
	}

	w.Logger.Printf("Watching %d directory(ies) for number files", len(w.Config.Directories))

	// Event loop
	for {
		select {
		case <-ctx.Done():
			w.Logger.Println("Stopping watcher")
			return w.watcher.Close()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.Logger.Printf("Error: %v", err)
		}
	}
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if info.IsDir() {
			// Skip hidden directories
			if strings.HasPrefix(filepath.Base(path), ".") && path != dir {
				return filepath.SkipDir
			}
			return w.watcher.Add(path)
		}
		return nil
	})
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Only process create and write events
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	path := event.Name
	ext := strings.ToLower(filepath.Ext(path))

	// Check if it's a number-list file
	if !numberExtensions[ext] {
		return
	}

	// Skip temp files
	base := filepath.Base(path)
	if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, ".~") {
		return
	}

	// Skip our own words files, or a create/write loop never ends
	if numfile.IsWordsOutput(path) {
		return
	}

	// Debounce: wait before processing to avoid rapid fire
	w.mu.Lock()
	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}
	w.debounce[path] = time.AfterFunc(time.Duration(w.Config.Debounce)*time.Millisecond, func() {
		w.processFile(path, event.Op.String())
	})
	w.mu.Unlock()
}

func (w *Watcher) processFile(path string, operation string) {
	if !w.matchesPatterns(path) {
		w.mu.Lock()
		w.Events = append(w.Events, Event{
			Time:      time.Now(),
			Path:      path,
			Operation: operation,
			Status:    "skipped",
		})
		w.mu.Unlock()
		return
	}

	evt := Event{
		Time:      time.Now(),
		Path:      path,
		Operation: operation,
	}

	res, err := w.Handler(path)
	if err != nil {
		evt.Status = "error"
		evt.Error = err.Error()
		w.Logger.Printf("Error translating %s: %v", path, err)
	} else {
		evt.Status = "translated"
		evt.Output = res.OutputPath
		evt.Translated = res.Translated
		evt.Failed = res.Failed
		w.Logger.Printf("Translated %s → %s (%d ok, %d failed)",
			path, res.OutputPath, res.Translated, res.Failed)
	}

	w.mu.Lock()
	w.Events = append(w.Events, evt)
	w.mu.Unlock()
}

// matchesPatterns reports whether the base name matches any configured
// glob pattern. An empty pattern list matches every number file.
func (w *Watcher) matchesPatterns(path string) bool {
	if len(w.Config.Patterns) == 0 {
		return true
	}
	base := filepath.Base(path)
	for _, p := range w.Config.Patterns {
		if matched, _ := filepath.Match(p, base); matched {
			return true
		}
	}
	return false
}

// GetStatus returns the current watcher status.
func (w *Watcher) GetStatus() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Status{
		Running:     true,
		Directories: w.Config.Directories,
		Patterns:    w.Config.Patterns,
		OutDir:      w.Config.OutDir,
		EventCount:  len(w.Events),
	}
}

// GetEvents returns all recorded events.
func (w *Watcher) GetEvents() []Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	events := make([]Event, len(w.Events))
	copy(events, w.Events)
	return events
}

// Daemon manages a persistent watcher process with PID file tracking.

const pidFile = "watch.pid"

// WritePIDFile writes the current process ID to the PID file in the given directory.
func WritePIDFile(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	path := filepath.Join(dir, pidFile)
	return os.WriteFile(path, []byte(fmt.Sprintf("%d", os.Getpid())), 0644)
}

// ReadPIDFile reads the PID from the PID file.
func ReadPIDFile(dir string) (int, error) {
	path := filepath.Join(dir, pidFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var pid int
	if _, err := fmt.Sscanf(string(data), "%d", &pid); err != nil {
		return 0, fmt.Errorf("invalid PID file: %w", err)
	}
	return pid, nil
}

// RemovePIDFile removes the PID file.
func RemovePIDFile(dir string) error {
	return os.Remove(filepath.Join(dir, pidFile))
}

// SaveConfig writes the watcher config to a JSON file.
func SaveConfig(dir string, config WatchConfig) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "watch-config.json"), data, 0644)
}

// LoadConfig reads the watcher config from a JSON file.
func LoadConfig(dir string) (*WatchConfig, error) {
	data, err := os.ReadFile(filepath.Join(dir, "watch-config.json"))
	if err != nil {
		return nil, err
	}
	var config WatchConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("invalid watch config: %w", err)
	}
	return &config, nil
}

// DefaultConfigDir returns the default config directory for the watcher.
func DefaultConfigDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".numsay")
}
