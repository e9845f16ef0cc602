// Package value models arbitrary JSON-shaped payloads as a closed tagged union.
//
// # Overview
//
// A [Value] holds exactly one of six kinds: null, boolean, number, string,
// array or object. Objects keep their fields in insertion order, which is the
// order a payload's author wrote them and the order they are displayed in.
// Values are immutable once constructed, so every Value is a finite acyclic
// tree and can be shared freely between goroutines.
//
// # Paths
//
// A [Path] addresses one node inside a Value. It starts at the fixed root
// sentinel and descends through [Segment]s, each either an object key or an
// array index:
//
//	p := value.Root().Key("users").Index(0).Key("name")
//	p.Encode() // root.users[0].name
//
// The encoded form is injective: keys containing ".", "[" or "\" are escaped, so
// distinct segment sequences never share an encoding. [ParsePath] is the exact
// inverse of [Path.Encode].
//
// # Navigation
//
// [ChildAt] descends one segment and [Lookup] follows a whole path. Both fail
// with coded errors from pkg/errors:
//
//   - TYPE_MISMATCH: the node is a scalar, or the segment kind does not fit
//   - MISSING_FIELD: the object has no such key
//   - OUT_OF_RANGE:  the index is past the end of the array
//
// # Decoding
//
// [Parse] decodes JSON with github.com/tidwall/gjson, walking object members in
// document order so that key order survives decoding.
package value
