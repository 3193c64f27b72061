package plantree

import (
	"fmt"
	"strconv"

	"scenario-planner/internal/common"
)

// Value is a tagged union over the property kinds.
type Value struct {
	kind PropertyKind
	str  string
	b    bool
	i    int64
	obj  []Property
	list []Value
}

// Property is a named value.
type Property struct {
	Name  string
	Value Value
}

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer value.
func Int(n int) Value { return Value{kind: KindInt, i: int64(n)} }

// Object returns an object value with props in the given order.
func Object(props ...Property) Value {
	return Value{kind: KindObject, obj: append([]Property{}, props...)}
}

// List returns a list value.
func List(items ...Value) Value {
	return Value{kind: KindList, list: append([]Value{}, items...)}
}

// Prop is shorthand for a Property literal.
func Prop(name string, v Value) Property {
	return Property{Name: name, Value: v}
}

// StringMap returns an object of string values with keys in sorted order.
func StringMap(m map[string]string) Value {
	props := make([]Property, 0, len(m))
	for _, k := range common.SortedKeys(m) {
		props = append(props, Prop(k, String(m[k])))
	}

	return Object(props...)
}

// StringList returns a list of string values.
func StringList(items []string) Value {
	vals := make([]Value, 0, len(items))
	for _, s := range items {
		vals = append(vals, String(s))
	}

	return List(vals...)
}

// FromAny converts decoded YAML/JSON data into a Value. Maps become objects
// with sorted keys; numbers that are not integers and nulls are rendered as
// their text form.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return String("")
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case int:
		return Int(t)
	case int64:
		return Value{kind: KindInt, i: t}
	case uint64:
		return Value{kind: KindInt, i: int64(t)}
	case float64:
		if t == float64(int64(t)) {
			return Value{kind: KindInt, i: int64(t)}
		}

		return String(strconv.FormatFloat(t, 'f', -1, 64))
	case map[string]any:
		props := make([]Property, 0, len(t))
		for _, k := range common.SortedKeys(t) {
			props = append(props, Prop(k, FromAny(t[k])))
		}

		return Object(props...)
	case map[string]string:
		return StringMap(t)
	case []any:
		vals := make([]Value, 0, len(t))
		for _, item := range t {
			vals = append(vals, FromAny(item))
		}

		return List(vals...)
	case []string:
		return StringList(t)
	default:
		return String(fmt.Sprint(t))
	}
}

// Kind returns the kind of value held.
func (v Value) Kind() PropertyKind { return v.kind }

// AsString returns the string held, if any.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsBool returns the boolean held, if any.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsInt returns the integer held, if any.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsObject returns the object properties held, if any.
func (v Value) AsObject() ([]Property, bool) { return v.obj, v.kind == KindObject }

// AsList returns the list items held, if any.
func (v Value) AsList() ([]Value, bool) { return v.list, v.kind == KindList }

// Text renders scalar values as text. Objects and lists render as "".
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	default:
		return ""
	}
}

// Field returns the named property of an object value.
func (v Value) Field(name string) (Value, bool) {
	for _, p := range v.obj {
		if p.Name == name {
			return p.Value, true
		}
	}

	return Value{}, false
}

// Equal reports deep equality.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindObject:
		if len(v.obj) != len(o.obj) {
			return false
		}

		for i := range v.obj {
			if v.obj[i].Name != o.obj[i].Name || !v.obj[i].Value.Equal(o.obj[i].Value) {
				return false
			}
		}

		return true
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}

		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}

		return true
	default:
		return false
	}
}
