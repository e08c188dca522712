package groupby

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

func writeYAML(w io.Writer, v Value) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// MarshalYAML encodes rows as mappings with their column order kept.
func (v Value) MarshalYAML() (any, error) {
	return yamlNode(v), nil
}

func yamlNode(v Value) *yaml.Node {
	switch v.kind {
	case KindRow:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, c := range v.row.cols {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.Name},
				yamlNode(c.Value))
		}
		return n
	case KindTable:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, elem := range v.table {
			n.Content = append(n.Content, yamlNode(elem))
		}
		return n
	case KindBool:
		return scalarNode("!!bool", strconv.FormatBool(v.b))
	case KindInt:
		return scalarNode("!!int", strconv.FormatInt(v.i, 10))
	case KindFloat:
		return scalarNode("!!float", yamlFloat(v.f))
	case KindString:
		return scalarNode("!!str", v.s)
	case KindDate:
		return scalarNode("!!timestamp", v.t.Format(time.RFC3339Nano))
	default:
		return scalarNode("!!null", "null")
	}
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func yamlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

// decodeYAML reads every document in r. Sequences contribute their elements
// and any other document contributes itself.
func decodeYAML(r io.Reader, source string) (Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Value{}, labeled(ErrDecode, "Unreadable input", err.Error(), Tag(source))
	}
	var rows []Value
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var doc yaml.Node
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Value{}, labeled(ErrDecode, "Malformed input", err.Error(), Tag(source))
		}
		if len(doc.Content) == 0 {
			continue
		}
		root := doc.Content[0]
		v, err := nodeValue(root, source)
		if err != nil {
			return Value{}, err
		}
		if elems, ok := v.AsTable(); ok {
			rows = append(rows, elems...)
			continue
		}
		rows = append(rows, v)
	}
	return TableValue(rows, Tag(source)), nil
}

func nodeValue(n *yaml.Node, source string) (Value, error) {
	span := Span{Source: source, Line: n.Line, Column: n.Column}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Nothing(span), nil
		}
		return nodeValue(n.Content[0], source)
	case yaml.AliasNode:
		v, err := nodeValue(n.Alias, source)
		if err != nil {
			return Value{}, err
		}
		return v.WithSpan(span), nil
	case yaml.SequenceNode:
		elems := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c, source)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, v)
		}
		return TableValue(elems, span), nil
	case yaml.MappingNode:
		row := NewRow()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return Value{}, labeled(ErrDecode, "Malformed input", "column names must be scalars",
					Span{Source: source, Line: key.Line, Column: key.Column})
			}
			v, err := nodeValue(val, source)
			if err != nil {
				return Value{}, err
			}
			row.Set(key.Value, v)
		}
		return RowValue(row, span), nil
	case yaml.ScalarNode:
		return scalarValue(n, span)
	default:
		return Value{}, labeled(ErrDecode, "Malformed input", fmt.Sprintf("unexpected node kind %d", n.Kind), span)
	}
}

func scalarValue(n *yaml.Node, span Span) (Value, error) {
	var err error
	switch n.ShortTag() {
	case "!!null":
		return Nothing(span), nil
	case "!!bool":
		var b bool
		if err = n.Decode(&b); err == nil {
			return Bool(b, span), nil
		}
	case "!!int":
		var i int64
		if err = n.Decode(&i); err == nil {
			return Int(i, span), nil
		}
	case "!!float":
		var f float64
		if err = n.Decode(&f); err == nil {
			return Float(f, span), nil
		}
	case "!!timestamp":
		var t time.Time
		if err = n.Decode(&t); err == nil {
			return Date(t, span), nil
		}
	default:
		return String(n.Value, span), nil
	}
	return Value{}, labeled(ErrDecode, "Malformed input", err.Error(), span)
}
