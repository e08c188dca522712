package groupby

import (
	"fmt"
	"strconv"
	"time"
)

// Kind identifies the variant held by a [Value].
type Kind int

const (
	KindNothing Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindDate
	KindRow
	KindTable
)

var kindNames = [...]string{
	KindNothing: "nothing",
	KindBool:    "bool",
	KindInt:     "int",
	KindFloat:   "float",
	KindString:  "string",
	KindDate:    "date",
	KindRow:     "row",
	KindTable:   "table",
}

// String returns the kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Span records where a value came from. It is used for error reporting only.
type Span struct {
	Source string
	Line   int
	Column int
}

// Unknown is the zero span.
var Unknown = Span{}

// Tag returns a span naming a source without a position, e.g. a command name.
func Tag(source string) Span { return Span{Source: source} }

// IsZero reports whether the span carries no information.
func (s Span) IsZero() bool { return s == Span{} }

// String formats the span as source:line:column, omitting missing parts.
func (s Span) String() string {
	switch {
	case s.IsZero():
		return "unknown"
	case s.Line == 0:
		return s.Source
	case s.Source == "":
		return fmt.Sprintf("%d:%d", s.Line, s.Column)
	default:
		return fmt.Sprintf("%s:%d:%d", s.Source, s.Line, s.Column)
	}
}

// Value is the tagged union flowing through a pipeline. The zero Value is
// Nothing with an unknown span.
type Value struct {
	kind  Kind
	b     bool
	i     int64
	f     float64
	s     string
	t     time.Time
	row   *Row
	table []Value
	span  Span
}

// Nothing returns the empty value.
func Nothing(span Span) Value { return Value{kind: KindNothing, span: span} }

// Bool returns a boolean value.
func Bool(b bool, span Span) Value { return Value{kind: KindBool, b: b, span: span} }

// Int returns an integer value.
func Int(i int64, span Span) Value { return Value{kind: KindInt, i: i, span: span} }

// Float returns a floating-point value.
func Float(f float64, span Span) Value { return Value{kind: KindFloat, f: f, span: span} }

// String returns a string value.
func String(s string, span Span) Value { return Value{kind: KindString, s: s, span: span} }

// Date returns a date value. The time keeps its location.
func Date(t time.Time, span Span) Value { return Value{kind: KindDate, t: t, span: span} }

// RowValue wraps r. A nil row is treated as an empty one.
func RowValue(r *Row, span Span) Value {
	if r == nil {
		r = NewRow()
	}
	return Value{kind: KindRow, row: r, span: span}
}

// TableValue wraps rows. The slice is not copied.
func TableValue(rows []Value, span Span) Value {
	return Value{kind: KindTable, table: rows, span: span}
}

// Kind returns the variant.
func (v Value) Kind() Kind { return v.kind }

// Span returns the provenance of v.
func (v Value) Span() Span { return v.span }

// WithSpan returns a copy of v carrying span.
func (v Value) WithSpan(span Span) Value {
	v.span = span
	return v
}

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsInt returns the integer held by v.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsFloat returns the float held by v.
func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsDate returns the time held by v.
func (v Value) AsDate() (time.Time, bool) { return v.t, v.kind == KindDate }

// AsRow returns the row held by v.
func (v Value) AsRow() (*Row, bool) {
	if v.kind != KindRow {
		return nil, false
	}
	return v.row, true
}

// AsTable returns the elements held by v.
func (v Value) AsTable() ([]Value, bool) {
	if v.kind != KindTable {
		return nil, false
	}
	return v.table, true
}

// Equal reports whether v and o hold the same data. Spans are ignored.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNothing:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindString:
		return v.s == o.s
	case KindDate:
		return v.t.Equal(o.t)
	case KindRow:
		return v.row.Equal(o.row)
	case KindTable:
		if len(v.table) != len(o.table) {
			return false
		}
		for i := range v.table {
			if !v.table[i].Equal(o.table[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders scalars as text and containers as a short summary.
func (v Value) String() string {
	switch v.kind {
	case KindNothing:
		return ""
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	case KindDate:
		return v.t.Format(time.RFC3339)
	case KindRow:
		return fmt.Sprintf("[row %d columns]", v.row.Len())
	case KindTable:
		return fmt.Sprintf("[table %d rows]", len(v.table))
	default:
		return ""
	}
}
