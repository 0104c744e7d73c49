package data

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json/jsontext"
	"gopkg.in/yaml.v3"
)

// --- JSON ---

// MarshalJSON encodes the row as a JSON object in field order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := jsontext.NewEncoder(&buf)
	if err := encodeRow(enc, r); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalJSON encodes the value as JSON.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := jsontext.NewEncoder(&buf)
	if err := encodeValue(enc, v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func encodeRow(enc *jsontext.Encoder, r Row) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}
	for k, v := range r.All() {
		if err := enc.WriteToken(jsontext.String(k)); err != nil {
			return err
		}
		if err := encodeValue(enc, v); err != nil {
			return err
		}
	}
	return enc.WriteToken(jsontext.EndObject)
}

func encodeValue(enc *jsontext.Encoder, v Value) error {
	switch v.kind {
	case KindNull:
		return enc.WriteToken(jsontext.Null)
	case KindBool:
		return enc.WriteToken(jsontext.Bool(v.b))
	case KindInt:
		return enc.WriteToken(jsontext.Int(v.i))
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return fmt.Errorf("cannot encode %v as JSON", v.f)
		}
		return enc.WriteToken(jsontext.Float(v.f))
	case KindString:
		return enc.WriteToken(jsontext.String(v.s))
	case KindMap:
		return encodeRow(enc, v.m)
	case KindList:
		if err := enc.WriteToken(jsontext.BeginArray); err != nil {
			return err
		}
		for _, item := range v.l {
			if err := encodeValue(enc, item); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.EndArray)
	}
	return fmt.Errorf("unknown value kind %s", v.kind)
}

// DecodeJSON reads one JSON value from dec, keeping object key order.
func DecodeJSON(dec *jsontext.Decoder) (Value, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		return Value{}, err
	}
	switch tok.Kind() {
	case 'n':
		return Null(), nil
	case 't':
		return Bool(true), nil
	case 'f':
		return Bool(false), nil
	case '"':
		return String(tok.String()), nil
	case '0':
		return parseNumber(tok.String())
	case '{':
		r := Row{}
		for dec.PeekKind() != '}' {
			keyTok, err := dec.ReadToken()
			if err != nil {
				return Value{}, err
			}
			v, err := DecodeJSON(dec)
			if err != nil {
				return Value{}, err
			}
			r = r.Set(keyTok.String(), v)
		}
		if _, err := dec.ReadToken(); err != nil {
			return Value{}, err
		}
		return Map(r), nil
	case '[':
		var items []Value
		for dec.PeekKind() != ']' {
			v, err := DecodeJSON(dec)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		if _, err := dec.ReadToken(); err != nil {
			return Value{}, err
		}
		return Value{kind: KindList, l: items}, nil
	}
	return Value{}, fmt.Errorf("unexpected JSON token %s", tok.Kind())
}

func parseNumber(raw string) (Value, error) {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return Int(i), nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid number %q: %w", raw, err)
	}
	return Float(f), nil
}

// --- YAML ---

// MarshalYAML encodes the row as an ordered YAML mapping.
func (r Row) MarshalYAML() (interface{}, error) {
	return rowNode(r), nil
}

// MarshalYAML encodes the value as a YAML node.
func (v Value) MarshalYAML() (interface{}, error) {
	return valueNode(v), nil
}

// UnmarshalYAML decodes a YAML mapping into the row, keeping key order.
func (r *Row) UnmarshalYAML(node *yaml.Node) error {
	v, err := FromYAMLNode(node)
	if err != nil {
		return err
	}
	m, ok := v.AsMap()
	if !ok && !v.IsNull() {
		return fmt.Errorf("line %d: expected a mapping, got %s", node.Line, v.Kind())
	}
	*r = m
	return nil
}

// UnmarshalYAML decodes any YAML node into the value.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	val, err := FromYAMLNode(node)
	if err != nil {
		return err
	}
	*v = val
	return nil
}

func rowNode(r Row) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for k, v := range r.All() {
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			valueNode(v),
		)
	}
	return n
}

func valueNode(v Value) *yaml.Node {
	switch v.kind {
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.b)}
	case KindInt:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v.i, 10)}
	case KindFloat:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatYAMLFloat(v.f)}
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.s}
	case KindMap:
		return rowNode(v.m)
	case KindList:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.l {
			n.Content = append(n.Content, valueNode(item))
		}
		return n
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func formatYAMLFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// FromYAMLNode converts a decoded YAML node into a Value. Mapping key order
// is preserved and aliases are followed.
func FromYAMLNode(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}
		return FromYAMLNode(node.Content[0])
	case yaml.AliasNode:
		return FromYAMLNode(node.Alias)
	case yaml.MappingNode:
		r := Row{}
		for i := 0; i+1 < len(node.Content); i += 2 {
			v, err := FromYAMLNode(node.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			r = r.Set(node.Content[i].Value, v)
		}
		return Map(r), nil
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, c := range node.Content {
			v, err := FromYAMLNode(c)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return Value{kind: KindList, l: items}, nil
	case yaml.ScalarNode:
		return scalarFromYAML(node)
	}
	return Value{}, fmt.Errorf("line %d: unsupported YAML node kind %d", node.Line, node.Kind)
}

func scalarFromYAML(node *yaml.Node) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			return Value{}, err
		}
		return Int(i), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return Value{}, err
		}
		return Float(f), nil
	}
	return String(node.Value), nil
}
