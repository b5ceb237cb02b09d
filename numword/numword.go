// Package numword converts integers into their spoken English form:
// 55 becomes "fifty-five", -1024 becomes "negative one thousand twenty-four".
//
// The package-level functions use the built-in English lexicon:
//
//	words, err := numword.Translate(90210)
//	// "ninety thousand two hundred ten"
//
// A Translator built with New can carry a different lexicon (loaded from a
// YAML pack) or British-style "and" phrasing. Translators are immutable and
// safe for concurrent use.
package numword

import (
	"math/big"
	"strings"

	"golang.org/x/text/language"
)

// Options configures a Translator. The zero value selects the built-in
// English lexicon with American phrasing (no "and").
type Options struct {
	// Language selects a built-in lexicon by BCP-47 tag. Ignored when
	// Lexicon is set.
	Language language.Tag

	// Lexicon overrides the word tables, typically one loaded with
	// LoadLexicon.
	Lexicon *Lexicon

	// And inserts the lexicon's conjunction in British style:
	// "one hundred and five", "two thousand and one".
	And bool
}

// Translator renders integers as words using a fixed lexicon and phrasing.
type Translator struct {
	lex *Lexicon
	and bool
}

var defaultTranslator = &Translator{lex: english}

// Default returns the shared English translator.
func Default() *Translator {
	return defaultTranslator
}

// New builds a Translator from opts. It fails only when opts.Language names
// a language with no built-in lexicon.
func New(opts Options) (*Translator, error) {
	lex := opts.Lexicon
	if lex == nil {
		if opts.Language.IsRoot() {
			lex = english
		} else {
			var err error
			lex, err = ForLanguage(opts.Language)
			if err != nil {
				return nil, err
			}
		}
	}
	return &Translator{lex: lex, and: opts.And}, nil
}

// Lexicon returns the word tables this translator renders with.
func (t *Translator) Lexicon() *Lexicon {
	return t.lex
}

// Translate renders n as words. With the built-in English lexicon every
// int64 is representable; a custom lexicon with a shorter scale table can
// fail with *UnsupportedMagnitudeError.
func (t *Translator) Translate(n int64) (string, error) {
	if n == 0 {
		return t.lex.ones[0], nil
	}
	neg := n < 0
	var mag uint64
	if neg {
		mag = uint64(-(n + 1)) + 1 // two-step negation survives math.MinInt64
	} else {
		mag = uint64(n)
	}
	var groups []int
	for mag > 0 {
		groups = append(groups, int(mag%1000))
		mag /= 1000
	}
	return t.render(neg, groups)
}

// TranslateBig renders an arbitrary-precision integer as words. The limit is
// the lexicon's scale table, not the machine word: the built-in English
// lexicon reaches 10^21 - 1 and reports anything larger with
// *UnsupportedMagnitudeError.
func (t *Translator) TranslateBig(n *big.Int) (string, error) {
	if n == nil {
		return "", &InvalidInputError{Input: "<nil>", Reason: "no integer value"}
	}
	if n.Sign() == 0 {
		return t.lex.ones[0], nil
	}
	neg := n.Sign() < 0
	abs := new(big.Int).Abs(n)
	thousand := big.NewInt(1000)
	rem := new(big.Int)
	var groups []int
	for abs.Sign() > 0 {
		abs.QuoRem(abs, thousand, rem)
		groups = append(groups, int(rem.Int64()))
	}
	return t.render(neg, groups)
}

// TranslateString parses s as a base-10 integer and renders it as words.
// Leading/trailing whitespace and the digit separators "," and "_" are
// accepted ("1,000,000" and "1_000_000 " both read as one million).
// Non-numeric or fractional input fails with *InvalidInputError.
func (t *Translator) TranslateString(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", &InvalidInputError{Input: s, Reason: "empty input"}
	}
	cleaned := strings.Map(func(r rune) rune {
		if r == ',' || r == '_' {
			return -1
		}
		return r
	}, trimmed)
	n, ok := new(big.Int).SetString(cleaned, 10)
	if !ok {
		if _, isFloat := new(big.Float).SetString(cleaned); isFloat {
			return "", &InvalidInputError{Input: trimmed, Reason: "not a whole number"}
		}
		return "", &InvalidInputError{Input: trimmed, Reason: "not a base-10 integer"}
	}
	return t.TranslateBig(n)
}

// render joins the words for the thousand-groups of a magnitude, least
// significant group first in groups, highest spoken first.
func (t *Translator) render(neg bool, groups []int) (string, error) {
	var parts []string
	for i := len(groups) - 1; i >= 0; i-- {
		g := groups[i]
		if g == 0 {
			continue
		}
		scale, err := t.lex.ScaleWord(i)
		if err != nil {
			return "", err
		}
		words := t.groupWords(g)
		if t.and && i == 0 && g < 100 && len(parts) > 0 && t.lex.conjunction != "" {
			words = t.lex.conjunction + " " + words
		}
		if scale != "" {
			words += " " + scale
		}
		parts = append(parts, words)
	}
	out := strings.Join(parts, " ")
	if neg {
		out = t.lex.negative + " " + out
	}
	return out, nil
}

// groupWords renders a single group in [1,999].
func (t *Translator) groupWords(g int) string {
	var b strings.Builder
	h, r := g/100, g%100
	if h > 0 {
		b.WriteString(t.lex.ones[h])
		b.WriteByte(' ')
		b.WriteString(t.lex.hundred)
	}
	if r > 0 {
		if h > 0 {
			b.WriteByte(' ')
			if t.and && t.lex.conjunction != "" {
				b.WriteString(t.lex.conjunction)
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.tensWords(r))
	}
	return b.String()
}

// tensWords renders r in [1,99], hyphenating compounds: "fifty-five".
func (t *Translator) tensWords(r int) string {
	if r < 20 {
		return t.lex.ones[r]
	}
	w := t.lex.tens[r/10-2]
	if d := r % 10; d > 0 {
		return w + "-" + t.lex.ones[d]
	}
	return w
}

// Translate renders n in English words using the default translator.
func Translate(n int64) (string, error) {
	return defaultTranslator.Translate(n)
}

// TranslateBig renders an arbitrary-precision integer in English words.
func TranslateBig(n *big.Int) (string, error) {
	return defaultTranslator.TranslateBig(n)
}

// TranslateString parses s as an integer and renders it in English words.
func TranslateString(s string) (string, error) {
	return defaultTranslator.TranslateString(s)
}
