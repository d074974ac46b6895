package song

import (
	"encoding/json"
	"strconv"
)

// ValueKind discriminates the type of an AttrValue.
type ValueKind int

// Value kinds for metadata and section attribute values.
const (
	ValueString ValueKind = iota
	ValueNumber
	ValueBool
)

// AttrValue is a metadata or section attribute value: string, number, or bool.
type AttrValue struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
}

// StringValue wraps a string as an AttrValue.
func StringValue(s string) AttrValue {
	return AttrValue{Kind: ValueString, Str: s}
}

// NumberValue wraps a number as an AttrValue.
func NumberValue(f float64) AttrValue {
	return AttrValue{Kind: ValueNumber, Num: f}
}

// BoolValue wraps a bool as an AttrValue.
func BoolValue(b bool) AttrValue {
	return AttrValue{Kind: ValueBool, Bool: b}
}

// String renders the value the way it would appear in source.
func (v AttrValue) String() string {
	switch v.Kind {
	case ValueNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case ValueBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}

// MarshalJSON renders the value as its natural JSON type.
func (v AttrValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueNumber:
		return json.Marshal(v.Num)
	case ValueBool:
		return json.Marshal(v.Bool)
	default:
		return json.Marshal(v.Str)
	}
}

// UnmarshalJSON accepts a string, number, or bool.
func (v *AttrValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case float64:
		*v = NumberValue(t)
	case bool:
		*v = BoolValue(t)
	case string:
		*v = StringValue(t)
	default:
		*v = StringValue(string(data))
	}
	return nil
}
