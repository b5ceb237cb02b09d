// Package config manages application configuration from files and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/klytics/numsay/numword"
)

// Config holds the application configuration.
type Config struct {
	Language string `mapstructure:"language"`
	Say      struct {
		And bool `mapstructure:"and"`
	} `mapstructure:"say"`
	Lexicon struct {
		Pack string `mapstructure:"pack"`
	} `mapstructure:"lexicon"`
	Output struct {
		Format string `mapstructure:"format"`
		Color  bool   `mapstructure:"color"`
	} `mapstructure:"output"`
	History struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"history"`
}

// Load reads the configuration from ~/.numsay/config.yaml and environment variables.
func Load() (*Config, error) {
	configDir := configDir()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)

	// Defaults
	viper.SetDefault("language", "en")
	viper.SetDefault("output.color", true)
	viper.SetDefault("output.format", "text")
	viper.SetDefault("history.enabled", true)

	// Environment variable overrides, e.g. NUMSAY_OUTPUT_FORMAT=json
	viper.SetEnvPrefix("NUMSAY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file (non-fatal if missing)
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// TranslatorOptions assembles numword options from the active configuration.
// A configured lexicon pack wins over the language setting.
func TranslatorOptions() (numword.Options, error) {
	opts := numword.Options{And: viper.GetBool("say.and")}

	if pack := viper.GetString("lexicon.pack"); pack != "" {
		lex, err := numword.LoadLexicon(pack)
		if err != nil {
			return opts, fmt.Errorf("%w — run 'numsay lexicon check %s'", err, pack)
		}
		opts.Lexicon = lex
		return opts, nil
	}

	if lang := viper.GetString("language"); lang != "" {
		tag, err := language.Parse(lang)
		if err != nil {
			return opts, fmt.Errorf("invalid language %q in config: %w", lang, err)
		}
		opts.Language = tag
	}
	return opts, nil
}

// Translator builds a translator from the active configuration.
func Translator() (*numword.Translator, error) {
	opts, err := TranslatorOptions()
	if err != nil {
		return nil, err
	}
	return numword.New(opts)
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".numsay"
	}
	return filepath.Join(home, ".numsay")
}
