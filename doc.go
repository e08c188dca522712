// Package groupby groups table rows into sub-tables keyed by a date string.
//
// The central entry point is [GroupByDate], which takes an optional column
// name, an optional strftime pattern and the rows of a table:
//
//	out, err := groupby.GroupByDate("date", "", rows, groupby.Tag("group-by date"))
//
// The result is a single row whose columns are the distinct date keys in the
// order they were first seen, each holding a table of the rows that produced
// that key, in input order.
//
// # Values
//
// [Value] is a closed tagged union. Scalars ([Nothing], [Bool], [Int],
// [Float], [String], [Date]) are atomic. A [Row] is an ordered mapping of
// column names to values and a table is an ordered sequence of values. Every
// value carries a [Span] pointing at where it came from; spans are used for
// error messages only and are ignored by [Value.Equal].
//
// # Keys
//
// Keys are computed by a [Keyer]. [DateKey] picks [DefaultKey] (pattern
// [DefaultPattern], "%Y-%b-%d") or a [PatternKey] for a custom pattern.
// String values are read as dates when they parse as one. Use [Group] with
// any [Keyer], including a [KeyFunc], to group by something else.
//
// # Documents
//
// [Decode] reads JSON, YAML or CSV into a table, keeping source positions.
// [Write] and [Marshal] encode a value as JSON, YAML or a terminal table.
// Use [ParseFormat] to convert a flag string into a [Format].
//
// # Errors
//
// Errors wrap one of the sentinel errors, so callers can use [errors.Is].
// Errors that point into the input are a [*LabeledError]:
//
//   - [ErrEmptyInput] — no rows to group
//   - [ErrColumnNotFound] — a row lacks the requested column or is not a row
//   - [ErrFormat] — a value is not a date or the pattern is invalid
//   - [ErrDecode] — the input document is malformed
//   - [ErrUnsupportedFormat] — unknown format name
package groupby
