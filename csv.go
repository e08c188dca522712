package groupby

import (
	"encoding/csv"
	"errors"
	"io"
)

// decodeCSV reads a header record followed by data records. Every cell is a
// string value.
func decodeCSV(r io.Reader, source string) (Value, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return TableValue(nil, Tag(source)), nil
	}
	if err != nil {
		return Value{}, csvError(err, source)
	}
	var rows []Value
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Value{}, csvError(err, source)
		}
		line, _ := cr.FieldPos(0)
		row := NewRow()
		for i, name := range header {
			l, c := cr.FieldPos(i)
			row.Set(name, String(rec[i], Span{Source: source, Line: l, Column: c}))
		}
		rows = append(rows, RowValue(row, Span{Source: source, Line: line, Column: 1}))
	}
	return TableValue(rows, Tag(source)), nil
}

func csvError(err error, source string) error {
	span := Tag(source)
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		span.Line = pe.Line
		span.Column = pe.Column
	}
	return labeled(ErrDecode, "Malformed input", err.Error(), span)
}
