// Package shell provides the interactive numsay REPL.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/klytics/numsay/internal/history"
	"github.com/klytics/numsay/numword"
)

// CommandRunner executes a numsay command and returns its output.
// This is set by the cmd/shell package to avoid import cycles.
type CommandRunner func(ctx context.Context, args []string, stdout, stderr io.Writer) error

// DefaultRunner is the command runner used by the shell session.
var DefaultRunner CommandRunner

// Session manages an interactive numsay shell session. Lines that start
// with a digit or a sign are translated directly; everything else is
// dispatched as a numsay command.
type Session struct {
	Translator     *numword.Translator
	LastWords      string
	LastOutput     string
	CommandHistory []string
	HistoryFile    string
	StartTime      time.Time
	Store          *history.Store

	// KnownCommands is the list of top-level commands for completion.
	KnownCommands []string
}

// NewSession creates a new interactive session using the given translator.
func NewSession(tr *numword.Translator) (*Session, error) {
	home, _ := os.UserHomeDir()
	histFile := filepath.Join(home, ".numsay", "shell_history")

	// Ensure parent dir exists
	os.MkdirAll(filepath.Dir(histFile), 0755)

	if tr == nil {
		tr = numword.Default()
	}

	return &Session{
		Translator:  tr,
		HistoryFile: histFile,
		StartTime:   time.Now(),
		KnownCommands: []string{
			"say", "batch", "excel", "lexicon", "watch",
			"history", "config", "update", "doctor", "version",
			"help", "exit", "quit", "set",
		},
	}, nil
}

// Run starts the REPL loop. Blocks until 'exit' or Ctrl+D.
func (s *Session) Run(ctx context.Context) error {
	if DefaultRunner == nil {
		return fmt.Errorf("shell runner not configured")
	}

	completer := readline.NewPrefixCompleter(s.buildCompleter()...)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "numsay> ",
		HistoryFile:     s.HistoryFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Printf("Numsay — Interactive Shell\n")
	fmt.Println("Type a number to hear it in words, 'help' for commands, 'exit' to quit.")
	fmt.Println()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		s.CommandHistory = append(s.CommandHistory, line)

		switch {
		case line == "exit" || line == "quit":
			elapsed := time.Since(s.StartTime)
			fmt.Printf("\nSession ended. %d lines in %s.\n",
				len(s.CommandHistory)-1, formatDuration(elapsed))
			return nil
		case line == "help":
			s.printHelp()
		case line == "history":
			for i, cmd := range s.CommandHistory {
				fmt.Printf("  %d  %s\n", i+1, cmd)
			}
		case line == "set and on" || line == "set and off":
			if err := s.setAnd(strings.HasSuffix(line, "on")); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			}
		case LooksNumeric(line):
			words, err := s.translate(line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			} else {
				fmt.Println(words)
			}
		default:
			output, err := s.Eval(ctx, line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			} else if output != "" {
				fmt.Print(output)
				if !strings.HasSuffix(output, "\n") {
					fmt.Println()
				}
			}
		}
	}

	return nil
}

// LooksNumeric reports whether a line should be translated directly rather
// than dispatched as a command.
func LooksNumeric(line string) bool {
	if line == "" {
		return false
	}
	c := line[0]
	return (c >= '0' && c <= '9') || c == '-' || c == '+'
}

// translate renders one number line and records it.
func (s *Session) translate(line string) (string, error) {
	start := time.Now()
	words, err := s.Translator.TranslateString(line)
	if s.Store != nil {
		s.Store.Record(history.NewEntry("shell", line, words, time.Since(start), err))
	}
	if err != nil {
		return "", err
	}
	s.LastWords = words
	return words, nil
}

// setAnd switches the session between American and British phrasing.
func (s *Session) setAnd(on bool) error {
	tr, err := numword.New(numword.Options{Lexicon: s.Translator.Lexicon(), And: on})
	if err != nil {
		return err
	}
	s.Translator = tr
	if on {
		fmt.Println("British phrasing: one hundred and one")
	} else {
		fmt.Println("American phrasing: one hundred one")
	}
	return nil
}

// Eval runs a single line the way the REPL would and returns its output:
// numeric lines are translated, anything else runs as a numsay command.
func (s *Session) Eval(ctx context.Context, command string) (string, error) {
	command = strings.TrimSpace(command)
	if LooksNumeric(command) {
		words, err := s.translate(command)
		if err != nil {
			return "", err
		}
		s.LastOutput = words + "\n"
		return s.LastOutput, nil
	}

	if DefaultRunner == nil {
		return "", fmt.Errorf("shell runner not configured")
	}

	args := strings.Fields(command)
	if len(args) == 0 {
		return "", nil
	}

	var stdout, stderr bytes.Buffer
	err := DefaultRunner(ctx, args, &stdout, &stderr)

	output := stdout.String()
	s.LastOutput = output

	if errOut := stderr.String(); errOut != "" && err != nil {
		return output, fmt.Errorf("%s", strings.TrimSpace(errOut))
	}

	return output, err
}

// Complete returns tab-completion candidates for the given input.
func (s *Session) Complete(input string) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return s.KnownCommands
	}

	parts := strings.Fields(input)
	if len(parts) == 0 {
		return s.KnownCommands
	}

	// Complete top-level command
	if len(parts) == 1 && !strings.HasSuffix(input, " ") {
		prefix := parts[0]
		var matches []string
		for _, cmd := range s.KnownCommands {
			if strings.HasPrefix(cmd, prefix) {
				matches = append(matches, cmd)
			}
		}
		sort.Strings(matches)
		return matches
	}

	// For subcommands, return common subcommands based on parent
	parent := parts[0]
	subcommands := s.subcommandsFor(parent)
	if len(parts) == 2 && !strings.HasSuffix(input, " ") {
		prefix := parts[1]
		var matches []string
		for _, sub := range subcommands {
			if strings.HasPrefix(sub, prefix) {
				matches = append(matches, sub)
			}
		}
		return matches
	}

	// For flags
	if strings.HasSuffix(input, " -") || (len(parts) > 0 && strings.HasPrefix(parts[len(parts)-1], "-")) {
		return []string{"--json", "--and", "--template", "--help"}
	}

	return nil
}

func (s *Session) subcommandsFor(parent string) []string {
	subs := map[string][]string{
		"excel":   {"read", "annotate"},
		"lexicon": {"show", "scales", "export", "check"},
		"watch":   {"start", "stop", "status", "config"},
		"history": {"show", "stats", "clear"},
		"config":  {"init", "show", "set", "get", "path", "validate", "env", "reset"},
		"update":  {"check", "install"},
	}
	return subs[parent]
}

func (s *Session) printHelp() {
	fmt.Println("Available commands:")
	fmt.Println()
	fmt.Println("  Numbers:    just type one — 55, -1024, 1,000,000")
	fmt.Println("  Files:      batch, excel read, excel annotate, watch")
	fmt.Println("  Lexicon:    lexicon show/scales/export/check")
	fmt.Println("  System:     config, history, doctor, version")
	fmt.Println()
	fmt.Println("Shell commands:")
	fmt.Println("  help         — show this help")
	fmt.Println("  history      — show session history")
	fmt.Println("  set and on   — British phrasing (one hundred and one)")
	fmt.Println("  set and off  — American phrasing")
	fmt.Println("  exit         — exit the shell")
}

func (s *Session) buildCompleter() []readline.PrefixCompleterInterface {
	var items []readline.PrefixCompleterInterface
	for _, cmd := range s.KnownCommands {
		subs := s.subcommandsFor(cmd)
		if len(subs) > 0 {
			var subItems []readline.PrefixCompleterInterface
			for _, sub := range subs {
				subItems = append(subItems, readline.PcItem(sub))
			}
			items = append(items, readline.PcItem(cmd, subItems...))
		} else {
			items = append(items, readline.PcItem(cmd))
		}
	}
	return items
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %ds", m, s)
}
