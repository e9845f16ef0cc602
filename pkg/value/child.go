package value

import (
	errs "github.com/matzehuels/apiscope/pkg/errors"
)

// ChildAt returns the child of v addressed by seg.
//
// It fails with TYPE_MISMATCH when v is a scalar or when the segment kind does
// not match the container (a key into an array, an index into an object), with
// MISSING_FIELD when an object has no such key, and with OUT_OF_RANGE when an
// index is not below the array length.
func ChildAt(v Value, seg Segment) (Value, error) {
	switch v.kind {
	case KindArray:
		if !seg.isIndex {
			return Value{}, errs.New(errs.ErrCodeTypeMismatch, "cannot select field %q of an array", seg.key)
		}
		if seg.index >= len(v.items) {
			return Value{}, errs.New(errs.ErrCodeOutOfRange, "index %d out of range for array of length %d", seg.index, len(v.items))
		}
		return v.items[seg.index], nil
	case KindObject:
		if seg.isIndex {
			return Value{}, errs.New(errs.ErrCodeTypeMismatch, "cannot select index %d of an object", seg.index)
		}
		if child, ok := v.Get(seg.key); ok {
			return child, nil
		}
		return Value{}, errs.New(errs.ErrCodeMissingField, "no field %q", seg.key)
	default:
		return Value{}, errs.New(errs.ErrCodeTypeMismatch, "cannot descend into %s with %s", v.kind, seg)
	}
}

// Lookup follows p from v. The returned error keeps the code of the failing
// ChildAt call and names the deepest prefix that resolved.
func Lookup(v Value, p Path) (Value, error) {
	cur := v
	for i, seg := range p.segs {
		child, err := ChildAt(cur, seg)
		if err != nil {
			at := Path{segs: p.segs[:i]}
			return Value{}, errs.Wrap(errs.GetCode(err), err, "lookup %s at %s", p, at)
		}
		cur = child
	}
	return cur, nil
}
