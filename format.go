package groupby

import (
	"bytes"
	"fmt"
	"io"
)

// Format names a document encoding.
type Format string

const (
	JSON  Format = "json"
	YAML  Format = "yaml"
	CSV   Format = "csv"
	Table Format = "table"
)

var formats = []Format{JSON, YAML, CSV, Table}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format string.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// CanDecode reports whether [Decode] accepts f.
func CanDecode(f Format) bool {
	switch f {
	case JSON, YAML, CSV:
		return true
	default:
		return false
	}
}

// CanEncode reports whether [Write] accepts f.
func CanEncode(f Format) bool {
	switch f {
	case JSON, YAML, Table:
		return true
	default:
		return false
	}
}

// Write encodes v in format f and writes it to w.
func Write(w io.Writer, f Format, v Value) error {
	switch f {
	case JSON:
		return writeJSON(w, v)
	case YAML:
		return writeYAML(w, v)
	case Table:
		return writeTable(w, v)
	default:
		return fmt.Errorf("%w: cannot encode %q", ErrUnsupportedFormat, f)
	}
}

// Marshal encodes v in format f and returns the bytes.
func Marshal(f Format, v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a whole document in format f from r and returns it as a table.
// source names the document in spans. An empty document decodes to an empty
// table.
func Decode(r io.Reader, f Format, source string) (Value, error) {
	switch f {
	case JSON, YAML:
		return decodeYAML(r, source)
	case CSV:
		return decodeCSV(r, source)
	default:
		return Value{}, fmt.Errorf("%w: cannot decode %q", ErrUnsupportedFormat, f)
	}
}
