package value

import (
	"bytes"

	"github.com/tidwall/gjson"

	errs "github.com/matzehuels/apiscope/pkg/errors"
)

// Parse decodes a JSON document into a Value.
//
// Object members keep document order. A key that appears twice in one object
// keeps its first position and its last value.
func Parse(data []byte) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Value{}, errs.New(errs.ErrCodeInvalidFormat, "empty JSON document")
	}
	if !gjson.ValidBytes(data) {
		return Value{}, errs.New(errs.ErrCodeInvalidFormat, "invalid JSON document")
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

// MustParse is like Parse but panics on error. It is intended for tests and
// package-level fixtures.
func MustParse(s string) Value {
	v, err := Parse([]byte(s))
	if err != nil {
		panic(err)
	}
	return v
}

func fromResult(r gjson.Result) Value {
	switch r.Type {
	case gjson.Null:
		return Null()
	case gjson.False:
		return Bool(false)
	case gjson.True:
		return Bool(true)
	case gjson.Number:
		return Number(r.Num)
	case gjson.String:
		return String(r.Str)
	}

	if r.IsArray() {
		var items []Value
		r.ForEach(func(_, item gjson.Result) bool {
			items = append(items, fromResult(item))
			return true
		})
		return Value{kind: KindArray, items: items}
	}

	var fields []Field
	r.ForEach(func(key, member gjson.Result) bool {
		fields = append(fields, Field{Key: key.Str, Value: fromResult(member)})
		return true
	})
	return Object(fields...)
}
