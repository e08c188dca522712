package groupby

import (
	"bytes"
	"encoding/json"
	"io"
)

func writeJSON(w io.Writer, v Value) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// MarshalJSON encodes rows as objects with their column order kept, tables as
// arrays and dates as RFC 3339 strings.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := appendJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func appendJSON(buf *bytes.Buffer, v Value) error {
	var scalar any
	switch v.kind {
	case KindNothing:
		buf.WriteString("null")
		return nil
	case KindRow:
		buf.WriteByte('{')
		for i, c := range v.row.cols {
			if i > 0 {
				buf.WriteByte(',')
			}
			name, err := json.Marshal(c.Name)
			if err != nil {
				return err
			}
			buf.Write(name)
			buf.WriteByte(':')
			if err := appendJSON(buf, c.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case KindTable:
		buf.WriteByte('[')
		for i, elem := range v.table {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendJSON(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case KindBool:
		scalar = v.b
	case KindInt:
		scalar = v.i
	case KindFloat:
		scalar = v.f
	case KindString:
		scalar = v.s
	case KindDate:
		scalar = v.t
	}
	data, err := json.Marshal(scalar)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}
