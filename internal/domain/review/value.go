package review

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the primitive types a cell value can hold.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
)

// Value is a tagged cell value. Extracted rows are free-form key/value
// maps, but corrections must round-trip the original type faithfully,
// so values carry their JSON kind instead of collapsing into strings.
// Numbers keep their original literal to survive re-encoding.
type Value struct {
	kind Kind
	str  string
	raw  string // original numeric literal
	num  float64
	b    bool
}

func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

func NumberValue(literal string) (Value, error) {
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid number literal %q: %w", literal, err)
	}
	return Value{kind: KindNumber, raw: literal, num: f}, nil
}

func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

func NullValue() Value {
	return Value{kind: KindNull}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// String returns the canonical stringified form used for display and
// for the "edited back to the original" comparison.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.raw
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Equal reports whether two values stringify identically.
func (v Value) Equal(other Value) bool {
	return v.String() == other.String()
}

// ParseValue interprets operator input, preferring the kind of the
// value being replaced so a numeric cell stays numeric after an edit.
func ParseValue(input string, hint Kind) Value {
	switch hint {
	case KindNumber:
		if nv, err := NumberValue(strings.TrimSpace(input)); err == nil {
			return nv
		}
	case KindBool:
		if b, err := strconv.ParseBool(strings.TrimSpace(input)); err == nil {
			return BoolValue(b)
		}
	case KindNull:
		if strings.TrimSpace(input) == "" {
			return NullValue()
		}
	}
	return StringValue(input)
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return []byte(v.raw), nil
	case KindBool:
		return json.Marshal(v.b)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	switch {
	case s == "null":
		*v = NullValue()
		return nil
	case s == "true" || s == "false":
		*v = BoolValue(s == "true")
		return nil
	case len(s) > 0 && s[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*v = StringValue(str)
		return nil
	default:
		nv, err := NumberValue(s)
		if err != nil {
			return fmt.Errorf("unsupported cell value %s", s)
		}
		*v = nv
		return nil
	}
}
