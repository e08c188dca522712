package groupby_test

import (
	"strings"
	"testing"
	"time"

	"github.com/bjaus/groupby"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, f groupby.Format, doc string) []groupby.Value {
	t.Helper()
	v, err := groupby.Decode(strings.NewReader(doc), f, "stdin")
	require.NoError(t, err)
	elems, ok := v.AsTable()
	require.True(t, ok)
	return elems
}

func column(t *testing.T, v groupby.Value, name string) groupby.Value {
	t.Helper()
	r, ok := v.AsRow()
	require.True(t, ok, "expected a row, got %s", v.Kind())
	c, ok := r.Get(name)
	require.True(t, ok, "missing column %q", name)
	return c
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()
	rows := decode(t, groupby.JSON, `[
  {"date": "2021-01-05", "n": 1, "ok": true, "score": 2.5, "note": null},
  {"date": "2021-01-06", "n": 2, "ok": false, "score": 1e3, "note": "x"}
]`)
	require.Len(t, rows, 2)

	r, _ := rows[0].AsRow()
	assert.Equal(t, []string{"date", "n", "ok", "score", "note"}, r.Names())
	assert.Equal(t, groupby.KindString, column(t, rows[0], "date").Kind())
	assert.True(t, column(t, rows[0], "n").Equal(groupby.Int(1, groupby.Unknown)))
	assert.True(t, column(t, rows[0], "ok").Equal(groupby.Bool(true, groupby.Unknown)))
	assert.True(t, column(t, rows[0], "score").Equal(groupby.Float(2.5, groupby.Unknown)))
	assert.Equal(t, groupby.KindNothing, column(t, rows[0], "note").Kind())
	assert.True(t, column(t, rows[1], "score").Equal(groupby.Float(1000, groupby.Unknown)))

	assert.Equal(t, groupby.Span{Source: "stdin", Line: 3, Column: 3}, rows[1].Span())
	assert.Equal(t, groupby.Span{Source: "stdin", Line: 3, Column: 12}, column(t, rows[1], "date").Span())
}

func TestDecodeYAML(t *testing.T) {
	t.Parallel()
	rows := decode(t, groupby.YAML, `
- date: 2021-01-05
  tags: [a, b]
  meta:
    by: me
- date: "2021-01-06"
`)
	require.Len(t, rows, 2)

	d, ok := column(t, rows[0], "date").AsDate()
	require.True(t, ok)
	assert.True(t, d.Equal(time.Date(2021, time.January, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, groupby.KindTable, column(t, rows[0], "tags").Kind())
	assert.Equal(t, groupby.KindRow, column(t, rows[0], "meta").Kind())
	assert.Equal(t, groupby.KindString, column(t, rows[1], "date").Kind())
}

func TestDecodeYAMLDocuments(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		doc  string
		want int
	}{
		"empty":            {doc: "", want: 0},
		"whitespace":       {doc: "  \n\n", want: 0},
		"single mapping":   {doc: "date: 2021-01-05\n", want: 1},
		"single scalar":    {doc: "2021-01-05\n", want: 1},
		"multi document":   {doc: "date: 2021-01-05\n---\ndate: 2021-01-06\n", want: 2},
		"mixed documents":  {doc: "- a: 1\n- a: 2\n---\na: 3\n", want: 3},
		"empty json array": {doc: "[]", want: 0},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Len(t, decode(t, groupby.YAML, tc.doc), tc.want)
		})
	}
}

func TestDecodeYAMLAlias(t *testing.T) {
	t.Parallel()
	rows := decode(t, groupby.YAML, "- &d {date: 2021-01-05}\n- *d\n")
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Equal(rows[1]))
	assert.Equal(t, 2, rows[1].Span().Line)
}

func TestDecodeMalformed(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format groupby.Format
		doc    string
	}{
		"unterminated json": {format: groupby.JSON, doc: `[{"date": "2021-01-05"`},
		"unterminated flow": {format: groupby.YAML, doc: "key: [1, 2\n"},
		"complex key":       {format: groupby.YAML, doc: "? [a, b]\n: 1\n"},
		"ragged csv":        {format: groupby.CSV, doc: "date,n\n2021-01-05,1\n2021-01-06\n"},
		"bad csv quote":     {format: groupby.CSV, doc: "date\n\"2021-01-05\n"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := groupby.Decode(strings.NewReader(tc.doc), tc.format, "stdin")
			require.ErrorIs(t, err, groupby.ErrDecode)

			var le *groupby.LabeledError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, "stdin", le.Span.Source)
		})
	}
}

func TestDecodeCSV(t *testing.T) {
	t.Parallel()
	rows := decode(t, groupby.CSV, "date,n\n2021-01-05,1\n2021-01-06,2\n")
	require.Len(t, rows, 2)

	r, _ := rows[1].AsRow()
	assert.Equal(t, []string{"date", "n"}, r.Names())
	assert.True(t, column(t, rows[1], "n").Equal(groupby.String("2", groupby.Unknown)))
	assert.Equal(t, groupby.Span{Source: "stdin", Line: 3, Column: 1}, rows[1].Span())
	assert.Equal(t, groupby.Span{Source: "stdin", Line: 3, Column: 12}, column(t, rows[1], "n").Span())
}

func TestDecodeCSVRaggedLine(t *testing.T) {
	t.Parallel()
	_, err := groupby.Decode(strings.NewReader("date,n\n2021-01-05,1\n2021-01-06\n"), groupby.CSV, "in.csv")
	var le *groupby.LabeledError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 3, le.Span.Line)
}

func TestDecodeCSVEmpty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, decode(t, groupby.CSV, ""))
	assert.Empty(t, decode(t, groupby.CSV, "date,n\n"))
}

func TestDecodeUnsupportedFormat(t *testing.T) {
	t.Parallel()
	_, err := groupby.Decode(strings.NewReader("x"), groupby.Table, "stdin")
	require.ErrorIs(t, err, groupby.ErrUnsupportedFormat)
}

func TestDecodeThenGroup(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format groupby.Format
		doc    string
	}{
		"json": {format: groupby.JSON, doc: `[{"date":"2021-01-05"},{"date":"2021-01-06"},{"date":"2021-02-01"}]`},
		"yaml": {format: groupby.YAML, doc: "- date: 2021-01-05\n- date: 2021-01-06\n- date: 2021-02-01\n"},
		"csv":  {format: groupby.CSV, doc: "date\n2021-01-05\n2021-01-06\n2021-02-01\n"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			rows := decode(t, tc.format, tc.doc)
			out, err := groupby.GroupByDate("date", "", rows, cmdTag)
			require.NoError(t, err)
			r, _ := out.AsRow()
			assert.Equal(t, []string{"2021-Jan-05", "2021-Jan-06", "2021-Feb-01"}, r.Names())
		})
	}
}

func TestDecodeErrorPointsAtRow(t *testing.T) {
	t.Parallel()
	rows := decode(t, groupby.YAML, "- date: 2021-01-05\n- when: 2021-01-06\n")
	_, err := groupby.GroupByDate("date", "", rows, cmdTag)

	var le *groupby.LabeledError
	require.ErrorAs(t, err, &le)
	assert.ErrorIs(t, err, groupby.ErrColumnNotFound)
	assert.Equal(t, groupby.Span{Source: "stdin", Line: 2, Column: 3}, le.Span)
}
