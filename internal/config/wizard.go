package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/klytics/numsay/numword"
)

// ConfigIssue represents a validation finding.
type ConfigIssue struct {
	Key      string `json:"key"`
	Severity string `json:"severity"` // "error", "warning", "info"
	Message  string `json:"message"`
	Fix      string `json:"fix"`
}

// Wizard runs the interactive setup wizard.
// If reader is nil, reads from os.Stdin.
func Wizard(reader io.Reader) error {
	if reader == nil {
		reader = os.Stdin
	}
	scanner := bufio.NewScanner(reader)

	fmt.Println("Numsay Setup Wizard")
	fmt.Println()
	fmt.Println("Let's get you set up in about 30 seconds.")
	fmt.Println()
	fmt.Println(strings.Repeat("-", 48))
	fmt.Println()

	// Step 1: Phrasing
	fmt.Println("Step 1/3: Phrasing")
	fmt.Println("  How should numbers over one hundred read?")
	fmt.Println("  [1] American: one hundred one (recommended)")
	fmt.Println("  [2] British:  one hundred and one")
	fmt.Print("  Choice: ")

	scanner.Scan()
	choice := strings.TrimSpace(scanner.Text())

	switch choice {
	case "2":
		viper.Set("say.and", true)
		fmt.Println("  British phrasing enabled")
	default:
		viper.Set("say.and", false)
		fmt.Println("  American phrasing enabled")
	}
	fmt.Println()

	// Step 2: History
	fmt.Println("Step 2/3: History (optional)")
	fmt.Print("  Keep a local log of translations? [Y/n]: ")
	scanner.Scan()
	histChoice := strings.TrimSpace(strings.ToLower(scanner.Text()))
	if histChoice == "" || histChoice == "y" || histChoice == "yes" {
		viper.Set("history.enabled", true)
		fmt.Println("  History enabled")
	} else {
		viper.Set("history.enabled", false)
		fmt.Println("  Skipped")
	}
	fmt.Println()

	// Step 3: Lexicon pack
	fmt.Println("Step 3/3: Lexicon pack (optional)")
	fmt.Print("  Path to a YAML lexicon pack, or empty for built-in English: ")
	scanner.Scan()
	pack := strings.TrimSpace(scanner.Text())
	if pack != "" {
		if _, err := numword.LoadLexicon(pack); err != nil {
			fmt.Printf("  Pack not usable (%v), skipping\n", err)
		} else {
			viper.Set("lexicon.pack", pack)
			fmt.Println("  Lexicon pack saved")
		}
	} else {
		fmt.Println("  Using built-in English")
	}
	fmt.Println()

	// Save config
	if err := SaveConfig(); err != nil {
		return fmt.Errorf("could not save config: %w", err)
	}

	fmt.Println(strings.Repeat("-", 48))
	fmt.Println()
	fmt.Println("Numsay is ready!")
	fmt.Println()
	fmt.Println("Quick start:")
	fmt.Println("  numsay say 55                   (one number)")
	fmt.Println("  numsay batch numbers.txt        (a file of numbers)")
	fmt.Println("  numsay shell                    (interactive)")
	fmt.Println("  numsay excel read book.xlsx     (spreadsheet cells)")
	fmt.Println()
	fmt.Printf("Config file: %s\n", ConfigPath())
	fmt.Println("Type 'numsay config show' to see all settings.")

	return nil
}

// WizardNonInteractive sets up config with defaults only (no user input).
func WizardNonInteractive() error {
	viper.Set("language", "en")
	viper.Set("say.and", false)
	viper.Set("output.color", true)
	viper.Set("output.format", "text")
	viper.Set("history.enabled", true)
	return SaveConfig()
}

// Validate checks config values and returns a list of issues.
func Validate() []ConfigIssue {
	var issues []ConfigIssue

	// Check lexicon: a configured pack wins over the language setting.
	pack := os.Getenv("NUMSAY_LEXICON_PACK")
	if pack == "" {
		pack = viper.GetString("lexicon.pack")
	}
	if pack != "" {
		lex, err := numword.LoadLexicon(pack)
		if err != nil {
			issues = append(issues, ConfigIssue{
				Key:      "lexicon.pack",
				Severity: "error",
				Message:  fmt.Sprintf("lexicon pack is not usable: %v", err),
				Fix:      fmt.Sprintf("numsay lexicon check %s\nOr: numsay config set lexicon.pack \"\"", pack),
			})
		} else {
			issues = append(issues, ConfigIssue{
				Key:      "lexicon.pack",
				Severity: "info",
				Message:  fmt.Sprintf("lexicon pack loaded (%d scale words, up to 10^%d)", len(lex.Scales()), len(lex.Scales())*3),
			})
		}
	} else {
		lang := viper.GetString("language")
		tag, err := language.Parse(lang)
		if err != nil {
			issues = append(issues, ConfigIssue{
				Key:      "language",
				Severity: "error",
				Message:  fmt.Sprintf("language %q is not a valid BCP-47 tag", lang),
				Fix:      "numsay config set language en",
			})
		} else if _, err := numword.ForLanguage(tag); err != nil {
			issues = append(issues, ConfigIssue{
				Key:      "language",
				Severity: "error",
				Message:  fmt.Sprintf("language is %q but only English is built in", lang),
				Fix:      "numsay config set language en\nOr: numsay config set lexicon.pack path/to/pack.yaml",
			})
		} else {
			issues = append(issues, ConfigIssue{
				Key:      "language",
				Severity: "info",
				Message:  "built-in English lexicon active",
			})
		}
	}

	// Check output format
	format := viper.GetString("output.format")
	if format != "" && format != "text" && format != "json" {
		issues = append(issues, ConfigIssue{
			Key:      "output.format",
			Severity: "warning",
			Message:  fmt.Sprintf("output.format is %q, expected \"text\" or \"json\"", format),
			Fix:      "numsay config set output.format text",
		})
	}

	// Check history storage
	if viper.GetBool("history.enabled") {
		if err := os.MkdirAll(configDir(), 0700); err != nil {
			issues = append(issues, ConfigIssue{
				Key:      "history.enabled",
				Severity: "warning",
				Message:  fmt.Sprintf("history is enabled but %s is not writable: %v", configDir(), err),
				Fix:      "numsay config set history.enabled false",
			})
		} else {
			issues = append(issues, ConfigIssue{
				Key:      "history.enabled",
				Severity: "info",
				Message:  "translation history enabled",
			})
		}
	}

	if viper.GetBool("say.and") {
		issues = append(issues, ConfigIssue{
			Key:      "say.and",
			Severity: "info",
			Message:  "British phrasing (\"one hundred and one\") enabled",
		})
	}

	return issues
}

// ToEnv returns all config values as a map of env var name -> value.
func ToEnv() map[string]string {
	env := make(map[string]string)

	if l := viper.GetString("language"); l != "" {
		env["NUMSAY_LANGUAGE"] = l
	}
	if a := viper.GetString("say.and"); a != "" {
		env["NUMSAY_SAY_AND"] = a
	}
	if p := viper.GetString("lexicon.pack"); p != "" {
		env["NUMSAY_LEXICON_PACK"] = p
	}
	if f := viper.GetString("output.format"); f != "" {
		env["NUMSAY_OUTPUT_FORMAT"] = f
	}
	if c := viper.GetString("output.color"); c != "" {
		env["NUMSAY_OUTPUT_COLOR"] = c
	}
	if h := viper.GetString("history.enabled"); h != "" {
		env["NUMSAY_HISTORY_ENABLED"] = h
	}

	return env
}

// Set sets a config value and saves to disk.
func Set(key, value string) error {
	viper.Set(key, value)
	return SaveConfig()
}

// Get retrieves a config value.
func Get(key string) string {
	return viper.GetString(key)
}

// ResetConfig resets all config to defaults.
func ResetConfig() error {
	path := ConfigPath()
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not delete config: %w", err)
	}
	// Reset viper defaults
	viper.Set("language", "en")
	viper.Set("say.and", false)
	viper.Set("lexicon.pack", "")
	viper.Set("output.color", true)
	viper.Set("output.format", "text")
	viper.Set("history.enabled", true)
	return nil
}

// SaveConfig writes the current config to ~/.numsay/config.yaml.
func SaveConfig() error {
	dir := configDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}

	path := filepath.Join(dir, "config.yaml")
	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("could not write config: %w", err)
	}

	// Set secure permissions
	os.Chmod(path, 0600)
	return nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// ShowConfig returns a formatted string of the current configuration.
func ShowConfig() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Config: %s\n\n", ConfigPath()))

	sb.WriteString("Speech\n")
	sb.WriteString(fmt.Sprintf("  language:  %s\n", viper.GetString("language")))
	if viper.GetBool("say.and") {
		sb.WriteString("  phrasing:  British (one hundred and one)\n")
	} else {
		sb.WriteString("  phrasing:  American (one hundred one)\n")
	}
	if p := viper.GetString("lexicon.pack"); p != "" {
		sb.WriteString(fmt.Sprintf("  pack:      %s\n", p))
	}
	sb.WriteString("\n")

	sb.WriteString("Output\n")
	sb.WriteString(fmt.Sprintf("  format:    %s\n", viper.GetString("output.format")))
	sb.WriteString(fmt.Sprintf("  color:     %t\n", viper.GetBool("output.color")))
	sb.WriteString("\n")

	sb.WriteString("History\n")
	sb.WriteString(fmt.Sprintf("  enabled:   %t\n", viper.GetBool("history.enabled")))

	return sb.String()
}
