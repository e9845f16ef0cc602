package value

import "fmt"

// Kind discriminates the active case of a Value.
type Kind uint8

// Value kinds. The zero Kind is KindNull.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "bool",
	KindNumber: "number",
	KindString: "string",
	KindArray:  "array",
	KindObject: "object",
}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// IsContainer reports whether the kind holds child values.
func (k Kind) IsContainer() bool {
	return k == KindArray || k == KindObject
}

// Field is one key/value member of an object.
type Field struct {
	Key   string
	Value Value
}

// Value is an immutable JSON-shaped value. The zero Value is null.
type Value struct {
	kind   Kind
	b      bool
	n      float64
	s      string
	items  []Value
	fields []Field
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array returns an array holding a copy of items, in order.
func Array(items ...Value) Value {
	return Value{kind: KindArray, items: append([]Value(nil), items...)}
}

// Object returns an object holding fields in the given order.
//
// Keys are unique within an object: when a key repeats, it keeps the position
// of its first occurrence and takes the value of its last.
func Object(fields ...Field) Value {
	out := make([]Field, 0, len(fields))
	seen := make(map[string]int, len(fields))
	for _, f := range fields {
		if i, ok := seen[f.Key]; ok {
			out[i].Value = f.Value
			continue
		}
		seen[f.Key] = len(out)
		out = append(out, f)
	}
	return Value{kind: KindObject, fields: out}
}

// Kind returns the active case.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload; false for other kinds.
func (v Value) AsBool() bool { return v.b }

// AsNumber returns the numeric payload; 0 for other kinds.
func (v Value) AsNumber() float64 { return v.n }

// AsString returns the string payload; "" for other kinds.
func (v Value) AsString() string { return v.s }

// Len returns the number of array elements or object fields, 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.fields)
	}
	return 0
}

// Items returns a copy of the array elements, nil for other kinds.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return append([]Value(nil), v.items...)
}

// Fields returns a copy of the object fields in insertion order, nil for other kinds.
func (v Value) Fields() []Field {
	if v.kind != KindObject {
		return nil
	}
	return append([]Field(nil), v.fields...)
}

// Keys returns the object keys in insertion order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, len(v.fields))
	for i, f := range v.fields {
		keys[i] = f.Key
	}
	return keys
}

// Get returns the field named key.
func (v Value) Get(key string) (Value, bool) {
	for _, f := range v.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// At returns the array element at index i.
func (v Value) At(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.items) {
		return Value{}, false
	}
	return v.items[i], true
}

// Equal reports whether v and w are structurally identical, including object
// key order. Numbers compare with ==, so NaN never equals itself.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == w.b
	case KindNumber:
		return v.n == w.n
	case KindString:
		return v.s == w.s
	case KindArray:
		if len(v.items) != len(w.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(w.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.fields) != len(w.fields) {
			return false
		}
		for i := range v.fields {
			if v.fields[i].Key != w.fields[i].Key || !v.fields[i].Value.Equal(w.fields[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// Count returns the total number of nodes in v, including v itself.
func Count(v Value) int {
	n := 1
	for _, item := range v.items {
		n += Count(item)
	}
	for _, f := range v.fields {
		n += Count(f.Value)
	}
	return n
}
