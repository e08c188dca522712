package groupby

import (
	"fmt"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
	"github.com/spf13/cast"
)

// DefaultPattern is used when no format pattern is given: 4-digit year,
// abbreviated month name, 2-digit day ("2021-Jan-05").
const DefaultPattern = "%Y-%b-%d"

// directives lists the strftime conversions a pattern may use.
const directives = "aAbBcCdDefFgGhHIjklLmMnNpPQrRsStTuUvVwWxXyYzZ+%"

// Conversions allowed after the E and O modifiers, as in "%Ey" or "%OH".
const (
	eModified = "cCxXyY"
	oModified = "deHImMSuUVwWy"
)

// Keyer computes the group key of a value.
type Keyer interface {
	Key(Value) (string, error)
}

// KeyFunc adapts a plain function to [Keyer].
type KeyFunc func(Value) (string, error)

// Key calls f(v).
func (f KeyFunc) Key(v Value) (string, error) { return f(v) }

// DefaultKey formats date values with [DefaultPattern].
type DefaultKey struct{}

// Key formats v with [DefaultPattern].
func (DefaultKey) Key(v Value) (string, error) { return formatDate(v, DefaultPattern) }

// PatternKey formats date values with a validated custom pattern.
type PatternKey struct {
	pattern string
}

// NewPatternKey validates pattern and returns a keyer for it.
func NewPatternKey(pattern string) (PatternKey, error) {
	if err := ValidatePattern(pattern); err != nil {
		return PatternKey{}, err
	}
	return PatternKey{pattern: pattern}, nil
}

// Pattern returns the strftime pattern.
func (k PatternKey) Pattern() string { return k.pattern }

// Key formats v with the keyer's pattern.
func (k PatternKey) Key(v Value) (string, error) { return formatDate(v, k.pattern) }

// DateKey selects the keyer for an optional pattern. An empty pattern picks
// [DefaultKey].
func DateKey(pattern string) (Keyer, error) {
	if pattern == "" {
		return DefaultKey{}, nil
	}
	k, err := NewPatternKey(pattern)
	if err != nil {
		return nil, err
	}
	return k, nil
}

// FormatDate formats v as a date using pattern, or [DefaultPattern] when
// pattern is empty.
func FormatDate(v Value, pattern string) (string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if err := ValidatePattern(pattern); err != nil {
		return "", err
	}
	return formatDate(v, pattern)
}

// ValidatePattern reports an [ErrFormat] error if pattern uses a directive
// that is not supported or ends in an incomplete one. A directive may carry
// a '-' (no padding) or ':' flag and an E or O modifier.
func ValidatePattern(pattern string) error {
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' {
			continue
		}
		start := i
		i++
		if i < len(pattern) && (pattern[i] == '-' || pattern[i] == ':') {
			i++
		}
		allowed := directives
		if i < len(pattern) && (pattern[i] == 'E' || pattern[i] == 'O') {
			allowed = eModified
			if pattern[i] == 'O' {
				allowed = oModified
			}
			i++
		}
		if i == len(pattern) {
			return labeled(ErrFormat, "Invalid date format",
				fmt.Sprintf("pattern %q ends with an incomplete directive", pattern), Unknown)
		}
		if !strings.ContainsRune(allowed, rune(pattern[i])) {
			return labeled(ErrFormat, "Invalid date format",
				fmt.Sprintf("unsupported directive %s in pattern %q", pattern[start:i+1], pattern), Unknown)
		}
	}
	return nil
}

func formatDate(v Value, pattern string) (string, error) {
	t, err := toTime(v, pattern)
	if err != nil {
		return "", err
	}
	return strftime.Format(pattern, t), nil
}

func toTime(v Value, pattern string) (time.Time, error) {
	switch v.Kind() {
	case KindDate:
		t, _ := v.AsDate()
		return t, nil
	case KindString:
		s, _ := v.AsString()
		t, err := cast.ToTimeE(s)
		if err != nil {
			return time.Time{}, labeled(ErrFormat, "Expected a date",
				fmt.Sprintf("cannot read %q as a date for pattern %q", s, pattern), v.Span())
		}
		return t, nil
	case KindNothing, KindBool, KindInt, KindFloat:
		return time.Time{}, labeled(ErrFormat, "Expected a date",
			fmt.Sprintf("found %s %q, cannot apply pattern %q", v.Kind(), v.String(), pattern), v.Span())
	case KindRow, KindTable:
		return time.Time{}, labeled(ErrFormat, "Expected a date",
			fmt.Sprintf("found %s, cannot apply pattern %q", v.String(), pattern), v.Span())
	default:
		return time.Time{}, labeled(ErrFormat, "Expected a date",
			fmt.Sprintf("found %s, cannot apply pattern %q", v.Kind(), pattern), v.Span())
	}
}
