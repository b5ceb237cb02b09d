package numword

import (
	"fmt"

	"golang.org/x/text/language"
)

// Lexicon holds the word tables a Translator draws from: the ones words
// (0–19), the tens words (20–90), and an ordered run of scale words for the
// powers of one thousand. A Lexicon is immutable after construction and safe
// for unsynchronized concurrent reads.
type Lexicon struct {
	tag         language.Tag
	ones        [20]string // 0..19
	tens        [8]string  // index 0 = twenty .. index 7 = ninety
	hundred     string
	negative    string
	conjunction string   // joining word for British-style phrasing ("and")
	scales      []string // index 0 = thousand, 1 = million, ...
}

// english is the built-in lexicon. Its scale table reaches quintillion
// (10^18), which covers the full int64 range; lexicon packs can extend it.
var english = &Lexicon{
	tag: language.English,
	ones: [20]string{
		"zero", "one", "two", "three", "four",
		"five", "six", "seven", "eight", "nine",
		"ten", "eleven", "twelve", "thirteen", "fourteen",
		"fifteen", "sixteen", "seventeen", "eighteen", "nineteen",
	},
	tens: [8]string{
		"twenty", "thirty", "forty", "fifty",
		"sixty", "seventy", "eighty", "ninety",
	},
	hundred:     "hundred",
	negative:    "negative",
	conjunction: "and",
	scales: []string{
		"thousand", "million", "billion",
		"trillion", "quadrillion", "quintillion",
	},
}

// matcher resolves requested language tags against the built-in lexicons.
var matcher = language.NewMatcher([]language.Tag{language.English})

// builtins is ordered to match the matcher's tag list.
var builtins = []*Lexicon{english}

// English returns the built-in English lexicon.
func English() *Lexicon {
	return english
}

// ForLanguage returns the built-in lexicon for the given language tag.
// English (and its regional variants) is the only language shipped; anything
// else returns an error naming the unsupported tag.
func ForLanguage(tag language.Tag) (*Lexicon, error) {
	_, idx, conf := matcher.Match(tag)
	if conf < language.High {
		return nil, fmt.Errorf("no lexicon for language %q — only English is built in (load a lexicon pack for other languages)", tag)
	}
	return builtins[idx], nil
}

// Tag returns the language this lexicon renders.
func (l *Lexicon) Tag() language.Tag {
	return l.tag
}

// WordForSmall returns the word for n in [0,19].
func (l *Lexicon) WordForSmall(n int) (string, error) {
	if n < 0 || n > 19 {
		return "", &OutOfRangeError{Table: "ones", Value: n}
	}
	return l.ones[n], nil
}

// WordForTens returns the word for a multiple of ten in [20,90].
func (l *Lexicon) WordForTens(n int) (string, error) {
	if n < 20 || n > 90 || n%10 != 0 {
		return "", &OutOfRangeError{Table: "tens", Value: n}
	}
	return l.tens[n/10-2], nil
}

// ScaleWord returns the scale word for the given thousand-group: "" for
// group 0 (units), "thousand" for group 1, and so on. Groups past the
// configured table fail with *UnsupportedMagnitudeError; adding a scale
// word to the table raises the supported range with no algorithm change.
func (l *Lexicon) ScaleWord(group int) (string, error) {
	switch {
	case group == 0:
		return "", nil
	case group < 0 || group > len(l.scales):
		return "", &UnsupportedMagnitudeError{GroupIndex: group, MaxGroup: len(l.scales)}
	default:
		return l.scales[group-1], nil
	}
}

// MaxGroups returns the number of thousand-groups this lexicon can name,
// counting the units group. The largest representable value is
// 10^(3*MaxGroups) - 1.
func (l *Lexicon) MaxGroups() int {
	return len(l.scales) + 1
}

// Scales returns a copy of the scale-word table, least significant first.
func (l *Lexicon) Scales() []string {
	out := make([]string, len(l.scales))
	copy(out, l.scales)
	return out
}

// Words returns copies of the ones and tens tables for display purposes.
func (l *Lexicon) Words() (ones []string, tens []string) {
	ones = make([]string, len(l.ones))
	copy(ones, l.ones[:])
	tens = make([]string, len(l.tens))
	copy(tens, l.tens[:])
	return ones, tens
}
