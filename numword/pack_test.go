package numword

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const slangPack = `language: en
words:
  ones: [zero, one, two, three, four, five, six, seven, eight, nine, ten, eleven, twelve, thirteen, fourteen, fifteen, sixteen, seventeen, eighteen, nineteen]
  tens: [twenty, thirty, forty, fifty, sixty, seventy, eighty, ninety]
  hundred: hundred
  negative: minus
  conjunction: and
scales:
  - {power: 3, word: grand}
`

func TestParseLexicon(t *testing.T) {
	lex, err := ParseLexicon([]byte(slangPack))
	if err != nil {
		t.Fatalf("ParseLexicon returned error: %v", err)
	}
	tr, err := New(Options{Lexicon: lex})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	tests := []struct {
		n    int64
		want string
	}{
		{-5, "minus five"},
		{1500, "one grand five hundred"},
		{999999, "nine hundred ninety-nine grand nine hundred ninety-nine"},
	}
	for _, tt := range tests {
		got, err := tr.Translate(tt.n)
		if err != nil {
			t.Errorf("Translate(%d) returned error: %v", tt.n, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Translate(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}

	// One scale word means one million is out of reach.
	_, err = tr.Translate(1000000)
	var magErr *UnsupportedMagnitudeError
	if !errors.As(err, &magErr) {
		t.Fatalf("Translate(1000000) error = %v, want *UnsupportedMagnitudeError", err)
	}
}

func TestParseLexiconBadYAML(t *testing.T) {
	_, err := ParseLexicon([]byte("words: [not: valid"))
	if err == nil || !strings.Contains(err.Error(), "invalid lexicon YAML") {
		t.Errorf("ParseLexicon error = %v, want YAML parse failure", err)
	}
}

func TestPackValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Pack)
		wantErr string
	}{
		{
			name:    "missing language",
			mutate:  func(p *Pack) { p.Language = "" },
			wantErr: "needs a language tag",
		},
		{
			name:    "bad language tag",
			mutate:  func(p *Pack) { p.Language = "not a tag!" },
			wantErr: "invalid language tag",
		},
		{
			name:    "short ones table",
			mutate:  func(p *Pack) { p.Words.Ones = p.Words.Ones[:19] },
			wantErr: "exactly 20 entries",
		},
		{
			name:    "short tens table",
			mutate:  func(p *Pack) { p.Words.Tens = p.Words.Tens[:7] },
			wantErr: "exactly 8 entries",
		},
		{
			name:    "blank ones entry",
			mutate:  func(p *Pack) { p.Words.Ones[4] = "" },
			wantErr: "words.ones[4] is empty",
		},
		{
			name:    "missing hundred",
			mutate:  func(p *Pack) { p.Words.Hundred = "" },
			wantErr: "words.hundred is required",
		},
		{
			name:    "missing negative",
			mutate:  func(p *Pack) { p.Words.Negative = "" },
			wantErr: "words.negative is required",
		},
		{
			name:    "no scales",
			mutate:  func(p *Pack) { p.Scales = nil },
			wantErr: "at least one scale word",
		},
		{
			name:    "gap in scale powers",
			mutate:  func(p *Pack) { p.Scales[1].Power = 9 },
			wantErr: "power must be 6",
		},
		{
			name:    "blank scale word",
			mutate:  func(p *Pack) { p.Scales[2].Word = "" },
			wantErr: "scales[2]: word is empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := English().Pack()
			tt.mutate(p)
			_, err := p.Lexicon()
			if err == nil {
				t.Fatal("Lexicon() should have failed validation")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadLexicon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slang.yaml")
	if err := os.WriteFile(path, []byte(slangPack), 0o644); err != nil {
		t.Fatal(err)
	}

	lex, err := LoadLexicon(path)
	if err != nil {
		t.Fatalf("LoadLexicon returned error: %v", err)
	}
	if got := lex.Tag().String(); got != "en" {
		t.Errorf("Tag() = %q, want \"en\"", got)
	}

	if _, err := LoadLexicon(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadLexicon should fail for a missing file")
	}
}

func TestPackRoundtrip(t *testing.T) {
	data, err := English().Pack().Marshal()
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	lex, err := ParseLexicon(data)
	if err != nil {
		t.Fatalf("ParseLexicon returned error: %v", err)
	}
	tr, err := New(Options{Lexicon: lex})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	for _, n := range []int64{0, 55, -90210, 1000000000000000000} {
		want, err := Translate(n)
		if err != nil {
			t.Fatalf("Translate(%d) returned error: %v", n, err)
		}
		got, err := tr.Translate(n)
		if err != nil {
			t.Fatalf("round-tripped Translate(%d) returned error: %v", n, err)
		}
		if got != want {
			t.Errorf("round-tripped lexicon: Translate(%d) = %q, want %q", n, got, want)
		}
	}
}
