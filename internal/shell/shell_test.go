package shell

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klytics/numsay/internal/history"
	"github.com/klytics/numsay/numword"
)

func mockRunner(version string) CommandRunner {
	return func(ctx context.Context, args []string, stdout, stderr io.Writer) error {
		if len(args) == 0 {
			return fmt.Errorf("no command")
		}
		switch args[0] {
		case "version":
			fmt.Fprintf(stdout, "numsay %s\n", version)
			return nil
		case "lexicon":
			if len(args) > 1 && args[1] == "scales" {
				fmt.Fprintf(stdout, "thousand\nmillion\n")
				return nil
			}
			return nil
		case "unknown-command":
			return fmt.Errorf("unknown command: %s", args[0])
		}
		fmt.Fprintf(stdout, "OK\n")
		return nil
	}
}

func TestNewSession(t *testing.T) {
	s, err := NewSession(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Translator == nil {
		t.Error("expected a default translator")
	}
	if len(s.CommandHistory) != 0 {
		t.Errorf("expected empty history, got %d entries", len(s.CommandHistory))
	}
	if s.HistoryFile == "" {
		t.Error("expected history file path to be set")
	}
	if len(s.KnownCommands) == 0 {
		t.Error("expected known commands to be populated")
	}
}

func TestEvalVersion(t *testing.T) {
	DefaultRunner = mockRunner("v1.2.0-test")
	defer func() { DefaultRunner = nil }()

	s, _ := NewSession(nil)
	output, err := s.Eval(context.Background(), "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, "v1.2.0-test") {
		t.Errorf("expected version output, got: %q", output)
	}
}

func TestEvalLexiconScales(t *testing.T) {
	DefaultRunner = mockRunner("v1.2.0")
	defer func() { DefaultRunner = nil }()

	s, _ := NewSession(nil)
	output, err := s.Eval(context.Background(), "lexicon scales")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, "thousand") {
		t.Errorf("expected scale words, got: %q", output)
	}
}

func TestEvalNumericLine(t *testing.T) {
	DefaultRunner = nil
	s, _ := NewSession(nil)

	output, err := s.Eval(context.Background(), "55")
	if err != nil {
		t.Fatal(err)
	}
	if output != "fifty-five\n" {
		t.Errorf("Eval(55) = %q, want %q", output, "fifty-five\n")
	}
	if s.LastWords != "fifty-five" {
		t.Errorf("LastWords = %q", s.LastWords)
	}
}

func TestEvalUnknownCommand(t *testing.T) {
	DefaultRunner = mockRunner("v1.2.0")
	defer func() { DefaultRunner = nil }()

	s, _ := NewSession(nil)
	_, err := s.Eval(context.Background(), "unknown-command")
	if err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestEvalEmpty(t *testing.T) {
	DefaultRunner = mockRunner("v1.2.0")
	defer func() { DefaultRunner = nil }()

	s, _ := NewSession(nil)
	output, err := s.Eval(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output != "" {
		t.Errorf("expected empty output, got: %q", output)
	}
}

func TestEvalNoRunner(t *testing.T) {
	DefaultRunner = nil
	s, _ := NewSession(nil)
	_, err := s.Eval(context.Background(), "version")
	if err == nil {
		t.Error("expected error when runner is nil")
	}
}

func TestLooksNumeric(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"55", true},
		{"-1024", true},
		{"+7", true},
		{"1,000,000", true},
		{"say 55", false},
		{"help", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := LooksNumeric(tt.in); got != tt.want {
			t.Errorf("LooksNumeric(%q) = %t, want %t", tt.in, got, tt.want)
		}
	}
}

func TestTranslateRecordsHistory(t *testing.T) {
	s, _ := NewSession(nil)
	s.Store = &history.Store{
		Path:    filepath.Join(t.TempDir(), "history.jsonl"),
		MaxSize: 1024,
		Enabled: true,
	}

	s.translate("55")
	if s.LastWords != "fifty-five" {
		t.Errorf("LastWords = %q, want %q", s.LastWords, "fifty-five")
	}

	s.translate("not-a-number-but-starts-numeric")
	entries, err := s.Store.ReadEntries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(entries))
	}
	if entries[0].Command != "shell" || entries[0].Words != "fifty-five" {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Err == "" {
		t.Error("failed translation should be recorded with its error")
	}
}

func TestSetAnd(t *testing.T) {
	s, _ := NewSession(nil)
	if err := s.setAnd(true); err != nil {
		t.Fatal(err)
	}
	words, err := s.Translator.Translate(105)
	if err != nil {
		t.Fatal(err)
	}
	if words != "one hundred and five" {
		t.Errorf("after set and on, Translate(105) = %q", words)
	}

	if err := s.setAnd(false); err != nil {
		t.Fatal(err)
	}
	words, _ = s.Translator.Translate(105)
	if words != "one hundred five" {
		t.Errorf("after set and off, Translate(105) = %q", words)
	}
}

func TestCompleteTopLevel(t *testing.T) {
	s, _ := NewSession(nil)
	matches := s.Complete("wa")
	if len(matches) != 1 || matches[0] != "watch" {
		t.Errorf("expected [watch], got %v", matches)
	}
}

func TestCompleteMultipleMatches(t *testing.T) {
	s, _ := NewSession(nil)
	matches := s.Complete("h")
	found := make(map[string]bool)
	for _, m := range matches {
		found[m] = true
	}
	for _, expected := range []string{"help", "history"} {
		if !found[expected] {
			t.Errorf("expected %q in completions, got %v", expected, matches)
		}
	}
}

func TestCompleteSubcommand(t *testing.T) {
	s, _ := NewSession(nil)
	matches := s.Complete("excel an")
	if len(matches) != 1 || matches[0] != "annotate" {
		t.Errorf("expected [annotate], got %v", matches)
	}
}

func TestCompleteEmpty(t *testing.T) {
	s, _ := NewSession(nil)
	matches := s.Complete("")
	if len(matches) == 0 {
		t.Error("expected all commands for empty input")
	}
}

func TestCompleteUnknownCommand(t *testing.T) {
	s, _ := NewSession(nil)
	matches := s.Complete("zzz ")
	// No subcommands for unknown command
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %v", matches)
	}
}

func TestLastOutputUpdated(t *testing.T) {
	DefaultRunner = mockRunner("v1.2.0")
	defer func() { DefaultRunner = nil }()

	s, _ := NewSession(nil)

	s.Eval(context.Background(), "version")
	if !strings.Contains(s.LastOutput, "1.2.0") {
		t.Errorf("expected LastOutput to contain version, got: %q", s.LastOutput)
	}

	s.Eval(context.Background(), "lexicon scales")
	if !strings.Contains(s.LastOutput, "thousand") {
		t.Errorf("expected LastOutput to be updated, got: %q", s.LastOutput)
	}
}

func TestSessionWithCustomTranslator(t *testing.T) {
	tr, err := numword.New(numword.Options{And: true})
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewSession(tr)
	if err != nil {
		t.Fatal(err)
	}
	words, err := s.Translator.Translate(1005)
	if err != nil {
		t.Fatal(err)
	}
	if words != "one thousand and five" {
		t.Errorf("custom translator Translate(1005) = %q", words)
	}
}
