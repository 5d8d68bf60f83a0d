// Package model holds the in-process telemetry types: spans, logs, metrics,
// attributes, resources and the derived trace view. Types here are pure
// values with no I/O — they are produced by the converter package and
// persisted/read back by the storage package.
package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// AttributeKind tags the variant carried by an AttributeValue.
type AttributeKind uint8

const (
	AttributeKindString AttributeKind = iota
	AttributeKindInt
	AttributeKindDouble
	AttributeKindBool
	AttributeKindBytes
	AttributeKindArray
)

// AttributeValue is a closed sum over the OTLP AnyValue variants this
// system supports. Key-value-list values are explicitly unsupported and
// never constructed here — converters drop them before they reach this
// type (see internal/converter).
type AttributeValue struct {
	Kind   AttributeKind
	Str    string
	Int    int64
	Double float64
	Bool   bool
	Bytes  []byte
	Array  []AttributeValue
}

func StringValue(s string) AttributeValue  { return AttributeValue{Kind: AttributeKindString, Str: s} }
func IntValue(i int64) AttributeValue      { return AttributeValue{Kind: AttributeKindInt, Int: i} }
func DoubleValue(f float64) AttributeValue { return AttributeValue{Kind: AttributeKindDouble, Double: f} }
func BoolValue(b bool) AttributeValue      { return AttributeValue{Kind: AttributeKindBool, Bool: b} }
func BytesValue(b []byte) AttributeValue   { return AttributeValue{Kind: AttributeKindBytes, Bytes: b} }
func ArrayValue(vs []AttributeValue) AttributeValue {
	return AttributeValue{Kind: AttributeKindArray, Array: vs}
}

// Stringify renders any AttributeValue as a display string with the same
// rules the converter applies to log bodies: bool/int/double via canonical
// decimal, bytes via hex, arrays via a comma-joined bracketed list.
func (v AttributeValue) Stringify() string {
	switch v.Kind {
	case AttributeKindString:
		return v.Str
	case AttributeKindInt:
		return fmt.Sprintf("%d", v.Int)
	case AttributeKindDouble:
		return fmt.Sprintf("%g", v.Double)
	case AttributeKindBool:
		return fmt.Sprintf("%t", v.Bool)
	case AttributeKindBytes:
		return fmt.Sprintf("%x", v.Bytes)
	case AttributeKindArray:
		parts := make([]string, len(v.Array))
		for i, e := range v.Array {
			parts[i] = e.Stringify()
		}
		return "[" + strings.Join(parts, ",") + "]"
	default:
		return ""
	}
}

// jsonAttributeValue is the wire shape persisted in the opaque JSON text
// columns (spec §4.3: "attributes ... stored as opaque JSON text").
type jsonAttributeValue struct {
	Type   string                `json:"type"`
	Str    string                `json:"str,omitempty"`
	Int    int64                 `json:"int,omitempty"`
	Double float64               `json:"double,omitempty"`
	Bool   bool                  `json:"bool,omitempty"`
	Bytes  []byte                `json:"bytes,omitempty"`
	Array  []jsonAttributeValue  `json:"array,omitempty"`
}

func toJSONValue(v AttributeValue) jsonAttributeValue {
	out := jsonAttributeValue{}
	switch v.Kind {
	case AttributeKindString:
		out.Type = "string"
		out.Str = v.Str
	case AttributeKindInt:
		out.Type = "int"
		out.Int = v.Int
	case AttributeKindDouble:
		out.Type = "double"
		out.Double = v.Double
	case AttributeKindBool:
		out.Type = "bool"
		out.Bool = v.Bool
	case AttributeKindBytes:
		out.Type = "bytes"
		out.Bytes = v.Bytes
	case AttributeKindArray:
		out.Type = "array"
		out.Array = make([]jsonAttributeValue, len(v.Array))
		for i, e := range v.Array {
			out.Array[i] = toJSONValue(e)
		}
	}
	return out
}

func fromJSONValue(j jsonAttributeValue) AttributeValue {
	switch j.Type {
	case "string":
		return StringValue(j.Str)
	case "int":
		return IntValue(j.Int)
	case "double":
		return DoubleValue(j.Double)
	case "bool":
		return BoolValue(j.Bool)
	case "bytes":
		return BytesValue(j.Bytes)
	case "array":
		vs := make([]AttributeValue, len(j.Array))
		for i, e := range j.Array {
			vs[i] = fromJSONValue(e)
		}
		return ArrayValue(vs)
	default:
		return AttributeValue{}
	}
}

func (v AttributeValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSONValue(v))
}

func (v *AttributeValue) UnmarshalJSON(data []byte) error {
	var j jsonAttributeValue
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*v = fromJSONValue(j)
	return nil
}

// Attributes is a mapping from string key to AttributeValue. Keys are
// unique; last-writer-wins on duplicate Set calls.
type Attributes map[string]AttributeValue

// NewAttributes returns an empty, non-nil Attributes map.
func NewAttributes() Attributes {
	return make(Attributes)
}

// Set stores value under key, overwriting any prior value (last-writer-wins).
func (a Attributes) Set(key string, value AttributeValue) {
	a[key] = value
}

// GetString returns the string value at key, if present and string-typed.
func (a Attributes) GetString(key string) (string, bool) {
	v, ok := a[key]
	if !ok || v.Kind != AttributeKindString {
		return "", false
	}
	return v.Str, true
}

// GetInt returns the int64 value at key, if present and int-typed.
func (a Attributes) GetInt(key string) (int64, bool) {
	v, ok := a[key]
	if !ok || v.Kind != AttributeKindInt {
		return 0, false
	}
	return v.Int, true
}

// GetBool returns the bool value at key, if present and bool-typed.
func (a Attributes) GetBool(key string) (bool, bool) {
	v, ok := a[key]
	if !ok || v.Kind != AttributeKindBool {
		return false, false
	}
	return v.Bool, true
}

// GetDouble returns the float64 value at key, if present and double-typed.
func (a Attributes) GetDouble(key string) (float64, bool) {
	v, ok := a[key]
	if !ok || v.Kind != AttributeKindDouble {
		return 0, false
	}
	return v.Double, true
}

// Keys returns the attribute keys in sorted order, for stable display/tests.
func (a Attributes) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ToJSON encodes the attribute set as the opaque JSON text stored in the
// database's `attributes` columns.
func (a Attributes) ToJSON() (string, error) {
	if a == nil {
		a = NewAttributes()
	}
	b, err := json.Marshal(a)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// AttributesFromJSON decodes the opaque JSON text back into an Attributes
// set. An empty string decodes to an empty (non-nil) set.
func AttributesFromJSON(text string) (Attributes, error) {
	if text == "" {
		return NewAttributes(), nil
	}
	var a Attributes
	if err := json.Unmarshal([]byte(text), &a); err != nil {
		return nil, err
	}
	if a == nil {
		a = NewAttributes()
	}
	return a, nil
}
