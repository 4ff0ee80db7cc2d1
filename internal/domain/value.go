package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValueKind discriminates the variants of a Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindMapping
	KindSequence
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// Member is one key/value pair of a mapping, in document order.
type Member struct {
	Key   string
	Value Value
}

// Value is a tagged representation of an arbitrary JSON/YAML body tree.
// Mappings keep their members in document order, so rendering a decoded
// body reproduces the key order the server (or the case file) used.
// Numbers keep the source literal to avoid reformatting on round trips.
type Value struct {
	kind    ValueKind
	boolean bool
	number  string // source literal, e.g. "42" or "2.5"
	str     string
	members []Member
	items   []Value
}

func Null() Value { return Value{kind: KindNull} }

func BoolValue(b bool) Value { return Value{kind: KindBool, boolean: b} }

func StringValue(s string) Value { return Value{kind: KindString, str: s} }

func NumberValue(lit string) Value {
	return Value{kind: KindNumber, number: lit}
}

func IntValue(n int64) Value {
	return Value{kind: KindNumber, number: strconv.FormatInt(n, 10)}
}

func FloatValue(f float64) Value {
	return Value{kind: KindNumber, number: strconv.FormatFloat(f, 'g', -1, 64)}
}

func MappingValue(members ...Member) Value {
	return Value{kind: KindMapping, members: members}
}

func SequenceValue(items ...Value) Value {
	return Value{kind: KindSequence, items: items}
}

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) Bool() bool { return v.boolean }

func (v Value) Str() string { return v.str }

// NumberLit returns the numeric source literal.
func (v Value) NumberLit() string { return v.number }

// Float parses the numeric literal. Only meaningful for KindNumber.
func (v Value) Float() (float64, error) {
	return strconv.ParseFloat(v.number, 64)
}

func (v Value) Members() []Member { return v.members }

func (v Value) Items() []Value { return v.items }

// IsScalar reports whether the value is a leaf (not mapping or sequence).
func (v Value) IsScalar() bool {
	return v.kind != KindMapping && v.kind != KindSequence
}

// Clone returns a deep copy.
func (v Value) Clone() Value {
	out := v
	if len(v.members) > 0 {
		out.members = make([]Member, len(v.members))
		for i, m := range v.members {
			out.members[i] = Member{Key: m.Key, Value: m.Value.Clone()}
		}
	}
	if len(v.items) > 0 {
		out.items = make([]Value, len(v.items))
		for i, it := range v.items {
			out.items[i] = it.Clone()
		}
	}
	return out
}

// String renders the value as compact JSON, preserving mapping order.
func (v Value) String() string {
	var sb strings.Builder
	v.appendJSON(&sb)
	return sb.String()
}

func (v Value) appendJSON(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.boolean))
	case KindNumber:
		sb.WriteString(v.number)
	case KindString:
		b, _ := json.Marshal(v.str)
		sb.Write(b)
	case KindMapping:
		sb.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				sb.WriteByte(',')
			}
			b, _ := json.Marshal(m.Key)
			sb.Write(b)
			sb.WriteByte(':')
			m.Value.appendJSON(sb)
		}
		sb.WriteByte('}')
	case KindSequence:
		sb.WriteByte('[')
		for i, it := range v.items {
			if i > 0 {
				sb.WriteByte(',')
			}
			it.appendJSON(sb)
		}
		sb.WriteByte(']')
	}
}

// MarshalJSON renders the same compact form String produces.
func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalJSON decodes via the token stream so mapping order survives.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	out, err := decodeJSONValue(dec)
	if err != nil {
		return err
	}
	if tok, terr := dec.Token(); terr != io.EOF {
		return fmt.Errorf("trailing data after value: %v", tok)
	}
	*v = out
	return nil
}

// ParseJSONValue decodes a full JSON document into a Value.
func ParseJSONValue(data []byte) (Value, error) {
	var v Value
	if err := v.UnmarshalJSON(data); err != nil {
		return Value{}, err
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var members []Member
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return Value{}, err
				}
				members = append(members, Member{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return Value{}, err
			}
			return MappingValue(members...), nil
		case '[':
			var items []Value
			for dec.More() {
				it, err := decodeJSONValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, it)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return Value{}, err
			}
			return SequenceValue(items...), nil
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", t)
		}
	case nil:
		return Null(), nil
	case bool:
		return BoolValue(t), nil
	case string:
		return StringValue(t), nil
	case json.Number:
		return NumberValue(t.String()), nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

// UnmarshalYAML builds a Value from a yaml.v3 node tree, which preserves
// mapping order natively.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	out, err := valueFromYAMLNode(node)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

func valueFromYAMLNode(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return valueFromYAMLNode(node.Alias)
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!null":
			return Null(), nil
		case "!!bool":
			b, err := strconv.ParseBool(strings.ToLower(node.Value))
			if err != nil {
				return Value{}, fmt.Errorf("line %d: invalid bool %q", node.Line, node.Value)
			}
			return BoolValue(b), nil
		case "!!int", "!!float":
			if _, err := strconv.ParseFloat(node.Value, 64); err != nil {
				return Value{}, fmt.Errorf("line %d: invalid number %q", node.Line, node.Value)
			}
			return NumberValue(node.Value), nil
		default:
			return StringValue(node.Value), nil
		}
	case yaml.MappingNode:
		members := make([]Member, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			val, err := valueFromYAMLNode(node.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			members = append(members, Member{Key: node.Content[i].Value, Value: val})
		}
		return MappingValue(members...), nil
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, c := range node.Content {
			it, err := valueFromYAMLNode(c)
			if err != nil {
				return Value{}, err
			}
			items = append(items, it)
		}
		return SequenceValue(items...), nil
	default:
		return Value{}, fmt.Errorf("line %d: unsupported yaml node kind %d", node.Line, node.Kind)
	}
}

// Interface converts the value to plain Go types (map[string]any, []any,
// float64, string, bool, nil). Mapping order is lost; intended for
// consumers such as JSONPath evaluation that need generic structures.
func (v Value) Interface() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.boolean
	case KindNumber:
		f, err := v.Float()
		if err != nil {
			return v.number
		}
		return f
	case KindString:
		return v.str
	case KindMapping:
		out := make(map[string]any, len(v.members))
		for _, m := range v.members {
			out[m.Key] = m.Value.Interface()
		}
		return out
	case KindSequence:
		out := make([]any, len(v.items))
		for i, it := range v.items {
			out[i] = it.Interface()
		}
		return out
	default:
		return nil
	}
}
