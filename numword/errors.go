package numword

import "fmt"

// OutOfRangeError reports a lexicon lookup outside the domain of its table.
// WordForSmall and WordForTens return it when asked for a value their table
// does not hold; detect it with errors.As.
type OutOfRangeError struct {
	Table string // "ones" or "tens"
	Value int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("lexicon %s table has no entry for %d", e.Table, e.Value)
}

// UnsupportedMagnitudeError reports an integer whose magnitude exceeds the
// configured scale vocabulary. Callers can recover by extending the lexicon
// with more scale words (see LoadLexicon) or by reporting "number too large".
type UnsupportedMagnitudeError struct {
	GroupIndex int // thousand-group that has no scale word (1 = thousands)
	MaxGroup   int // highest group the lexicon supports
}

func (e *UnsupportedMagnitudeError) Error() string {
	return fmt.Sprintf("number too large: needs a scale word for 10^%d but the lexicon stops at 10^%d",
		e.GroupIndex*3, e.MaxGroup*3)
}

// InvalidInputError reports input that does not denote an integer, such as
// non-numeric text, a fractional value, or a nil big.Int.
type InvalidInputError struct {
	Input  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Input, e.Reason)
}
