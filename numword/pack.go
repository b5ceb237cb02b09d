package numword

import (
	"fmt"
	"os"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Pack is the YAML form of a lexicon. Packs let users rename words or extend
// the scale table without recompiling:
//
//	language: en
//	words:
//	  ones: [zero, one, ..., nineteen]   # exactly 20 entries
//	  tens: [twenty, ..., ninety]        # exactly 8 entries
//	  hundred: hundred
//	  negative: negative
//	  conjunction: and
//	scales:
//	  - {power: 3, word: thousand}
//	  - {power: 6, word: million}
type Pack struct {
	Language string      `yaml:"language"`
	Words    PackWords   `yaml:"words"`
	Scales   []PackScale `yaml:"scales"`
}

// PackWords holds the small-number tables of a pack.
type PackWords struct {
	Ones        []string `yaml:"ones"`
	Tens        []string `yaml:"tens"`
	Hundred     string   `yaml:"hundred"`
	Negative    string   `yaml:"negative"`
	Conjunction string   `yaml:"conjunction,omitempty"`
}

// PackScale names one power of ten. Powers must be contiguous multiples of
// three starting at 3, so the grouping algorithm can index them directly.
type PackScale struct {
	Power int    `yaml:"power"`
	Word  string `yaml:"word"`
}

// LoadLexicon reads and parses a lexicon pack from a YAML file.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read lexicon pack: %w", err)
	}
	lex, err := ParseLexicon(data)
	if err != nil {
		return nil, fmt.Errorf("lexicon pack %s: %w", path, err)
	}
	return lex, nil
}

// ParseLexicon parses a lexicon pack from YAML bytes and validates it.
func ParseLexicon(data []byte) (*Lexicon, error) {
	var p Pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid lexicon YAML: %w", err)
	}
	return p.Lexicon()
}

// Lexicon validates the pack and builds an immutable Lexicon from it.
func (p *Pack) Lexicon() (*Lexicon, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	tag, _ := language.Parse(p.Language)
	lex := &Lexicon{
		tag:         tag,
		hundred:     p.Words.Hundred,
		negative:    p.Words.Negative,
		conjunction: p.Words.Conjunction,
		scales:      make([]string, len(p.Scales)),
	}
	copy(lex.ones[:], p.Words.Ones)
	copy(lex.tens[:], p.Words.Tens)
	for i, s := range p.Scales {
		lex.scales[i] = s.Word
	}
	return lex, nil
}

func (p *Pack) validate() error {
	if p.Language == "" {
		return fmt.Errorf("pack needs a language tag (for example \"en\")")
	}
	if _, err := language.Parse(p.Language); err != nil {
		return fmt.Errorf("invalid language tag %q: %w", p.Language, err)
	}
	if got := len(p.Words.Ones); got != 20 {
		return fmt.Errorf("words.ones must list exactly 20 entries (zero through nineteen), got %d", got)
	}
	if got := len(p.Words.Tens); got != 8 {
		return fmt.Errorf("words.tens must list exactly 8 entries (twenty through ninety), got %d", got)
	}
	for i, w := range p.Words.Ones {
		if w == "" {
			return fmt.Errorf("words.ones[%d] is empty", i)
		}
	}
	for i, w := range p.Words.Tens {
		if w == "" {
			return fmt.Errorf("words.tens[%d] is empty", i)
		}
	}
	if p.Words.Hundred == "" {
		return fmt.Errorf("words.hundred is required")
	}
	if p.Words.Negative == "" {
		return fmt.Errorf("words.negative is required")
	}
	if len(p.Scales) == 0 {
		return fmt.Errorf("at least one scale word is required")
	}
	for i, s := range p.Scales {
		want := (i + 1) * 3
		if s.Power != want {
			return fmt.Errorf("scales[%d]: power must be %d (contiguous multiples of three), got %d", i, want, s.Power)
		}
		if s.Word == "" {
			return fmt.Errorf("scales[%d]: word is empty", i)
		}
	}
	return nil
}

// Pack exports the lexicon in its YAML form, for editing and reloading.
func (l *Lexicon) Pack() *Pack {
	p := &Pack{
		Language: l.tag.String(),
		Words: PackWords{
			Ones:        make([]string, len(l.ones)),
			Tens:        make([]string, len(l.tens)),
			Hundred:     l.hundred,
			Negative:    l.negative,
			Conjunction: l.conjunction,
		},
		Scales: make([]PackScale, len(l.scales)),
	}
	copy(p.Words.Ones, l.ones[:])
	copy(p.Words.Tens, l.tens[:])
	for i, w := range l.scales {
		p.Scales[i] = PackScale{Power: (i + 1) * 3, Word: w}
	}
	return p
}

// Marshal renders the pack as YAML.
func (p *Pack) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal lexicon pack: %w", err)
	}
	return data, nil
}
