package value

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/tidwall/pretty"
)

// AppendJSON appends the compact JSON encoding of v to dst. Object members
// are written in insertion order. Non-finite numbers, which JSON cannot
// represent, are written as null.
func AppendJSON(dst []byte, v Value) []byte {
	switch v.kind {
	case KindNull:
		return append(dst, "null"...)
	case KindBool:
		if v.b {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case KindNumber:
		if math.IsNaN(v.n) || math.IsInf(v.n, 0) {
			return append(dst, "null"...)
		}
		return append(dst, FormatNumber(v.n)...)
	case KindString:
		return appendString(dst, v.s)
	case KindArray:
		dst = append(dst, '[')
		for i, item := range v.items {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = AppendJSON(dst, item)
		}
		return append(dst, ']')
	}
	dst = append(dst, '{')
	for i, f := range v.fields {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendString(dst, f.Key)
		dst = append(dst, ':')
		dst = AppendJSON(dst, f.Value)
	}
	return append(dst, '}')
}

func appendString(dst []byte, s string) []byte {
	b, _ := json.Marshal(s)
	return append(dst, b...)
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return AppendJSON(nil, v), nil
}

// Indent returns the JSON encoding of v indented with indent spaces per level.
func Indent(v Value, indent int) []byte {
	if indent < 1 {
		indent = 2
	}
	opts := *pretty.DefaultOptions
	opts.Indent = strings.Repeat(" ", indent)
	opts.SortKeys = false
	return pretty.PrettyOptions(AppendJSON(nil, v), &opts)
}
