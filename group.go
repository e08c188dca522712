package groupby

import (
	"errors"
	"fmt"
)

// groupMap is an insertion ordered multimap from key to rows.
type groupMap struct {
	keys   []string
	index  map[string]int
	groups [][]Value
}

func newGroupMap() *groupMap {
	return &groupMap{index: make(map[string]int)}
}

func (g *groupMap) add(key string, row Value) {
	i, ok := g.index[key]
	if !ok {
		i = len(g.keys)
		g.index[key] = i
		g.keys = append(g.keys, key)
		g.groups = append(g.groups, nil)
	}
	g.groups[i] = append(g.groups[i], row)
}

func (g *groupMap) value(span Span) Value {
	out := NewRow()
	for i, key := range g.keys {
		out.Set(key, TableValue(g.groups[i], span))
	}
	return RowValue(out, span)
}

// Group partitions rows by the key keyer computes for each of them. When
// column is non-empty the key is computed from that column of each row,
// otherwise from the row itself. The result is a row whose columns are the
// keys in first-seen order, each holding a table of the original rows in
// input order. Any failing row aborts the whole call. A nil keyer is
// reported as an [ErrFormat] error at tag.
func Group(column string, rows []Value, keyer Keyer, tag Span) (Value, error) {
	if len(rows) == 0 {
		return Value{}, labeled(ErrEmptyInput, "Expected table from pipeline", "requires a table input", tag)
	}
	if keyer == nil {
		return Value{}, labeled(ErrFormat, "Missing key function", "no keyer was given", tag)
	}
	groups := newGroupMap()
	for _, row := range rows {
		v := row
		if column != "" {
			var err error
			if v, err = columnOf(row, column); err != nil {
				return Value{}, err
			}
		}
		key, err := keyer.Key(v)
		if err != nil {
			return Value{}, err
		}
		groups.add(key, row)
	}
	return groups.value(tag), nil
}

// GroupByDate groups rows by their date formatted with pattern, or with
// [DefaultPattern] when pattern is empty.
func GroupByDate(column, pattern string, rows []Value, tag Span) (Value, error) {
	if len(rows) == 0 {
		return Value{}, labeled(ErrEmptyInput, "Expected table from pipeline", "requires a table input", tag)
	}
	keyer, err := DateKey(pattern)
	if err != nil {
		var le *LabeledError
		if errors.As(err, &le) && le.Span.IsZero() {
			le.Span = tag
		}
		return Value{}, err
	}
	return Group(column, rows, keyer, tag)
}

func columnOf(row Value, column string) (Value, error) {
	r, ok := row.AsRow()
	if !ok {
		return Value{}, labeled(ErrColumnNotFound, "Unknown column",
			fmt.Sprintf("cannot find column %q in a %s value", column, row.Kind()), row.Span())
	}
	v, ok := r.Get(column)
	if !ok {
		return Value{}, labeled(ErrColumnNotFound, "Unknown column",
			fmt.Sprintf("cannot find column %q", column), row.Span())
	}
	return v, nil
}
