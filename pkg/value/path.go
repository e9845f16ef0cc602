package value

import (
	"strconv"
	"strings"

	errs "github.com/matzehuels/apiscope/pkg/errors"
)

// RootName is the sentinel every encoded path starts with.
const RootName = "root"

// Segment is one step of a Path: an object key or an array index.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

// KeySegment returns a segment that descends into the object field key.
func KeySegment(key string) Segment { return Segment{key: key} }

// IndexSegment returns a segment that descends into array element i.
// It panics if i is negative.
func IndexSegment(i int) Segment {
	if i < 0 {
		panic("value: negative index segment")
	}
	return Segment{index: i, isIndex: true}
}

// IsIndex reports whether s addresses an array element.
func (s Segment) IsIndex() bool { return s.isIndex }

// Key returns the field name of a key segment.
func (s Segment) Key() string { return s.key }

// Index returns the element index of an index segment.
func (s Segment) Index() int { return s.index }

// Label returns the prefix used when the segment's node is displayed under its
// parent: "[i]: " for indices and "key: " for fields.
func (s Segment) Label() string {
	if s.isIndex {
		return "[" + strconv.Itoa(s.index) + "]: "
	}
	return s.key + ": "
}

// String returns the encoded form of the segment alone.
func (s Segment) String() string {
	var b strings.Builder
	s.encode(&b)
	return b.String()
}

func (s Segment) encode(b *strings.Builder) {
	if s.isIndex {
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(s.index))
		b.WriteByte(']')
		return
	}
	b.WriteByte('.')
	for i := 0; i < len(s.key); i++ {
		switch c := s.key[i]; c {
		case '\\', '.', '[':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
}

// Path addresses a node inside a Value, starting at the root sentinel.
// The zero Path is the root. Paths are immutable.
type Path struct {
	segs []Segment
}

// Root returns the path of the top-level node.
func Root() Path { return Path{} }

// PathOf builds a path from segments.
func PathOf(segs ...Segment) Path {
	return Path{segs: append([]Segment(nil), segs...)}
}

// Extend returns a new path one segment longer. p is left unchanged.
func (p Path) Extend(seg Segment) Path {
	segs := make([]Segment, len(p.segs)+1)
	copy(segs, p.segs)
	segs[len(p.segs)] = seg
	return Path{segs: segs}
}

// Key is shorthand for p.Extend(KeySegment(key)).
func (p Path) Key(key string) Path { return p.Extend(KeySegment(key)) }

// Index is shorthand for p.Extend(IndexSegment(i)).
func (p Path) Index(i int) Path { return p.Extend(IndexSegment(i)) }

// Len returns the number of segments below the root.
func (p Path) Len() int { return len(p.segs) }

// IsRoot reports whether p has no segments.
func (p Path) IsRoot() bool { return len(p.segs) == 0 }

// Segments returns a copy of the segments.
func (p Path) Segments() []Segment { return append([]Segment(nil), p.segs...) }

// Last returns the final segment; ok is false for the root.
func (p Path) Last() (Segment, bool) {
	if len(p.segs) == 0 {
		return Segment{}, false
	}
	return p.segs[len(p.segs)-1], true
}

// Parent returns p without its final segment. The parent of the root is the root.
func (p Path) Parent() Path {
	if len(p.segs) == 0 {
		return p
	}
	return Path{segs: append([]Segment(nil), p.segs[:len(p.segs)-1]...)}
}

// Equal reports whether both paths have the same segment sequence.
func (p Path) Equal(q Path) bool {
	if len(p.segs) != len(q.segs) {
		return false
	}
	for i := range p.segs {
		if p.segs[i] != q.segs[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether q is p or an ancestor of p.
func (p Path) HasPrefix(q Path) bool {
	if len(q.segs) > len(p.segs) {
		return false
	}
	for i := range q.segs {
		if p.segs[i] != q.segs[i] {
			return false
		}
	}
	return true
}

// Encode returns the injective string form of p, e.g. root.users[0].name.
func (p Path) Encode() string {
	var b strings.Builder
	b.WriteString(RootName)
	for _, s := range p.segs {
		s.encode(&b)
	}
	return b.String()
}

// String implements fmt.Stringer and returns p.Encode().
func (p Path) String() string { return p.Encode() }

// ParsePath decodes a string produced by Path.Encode.
// Strings that no path encodes to are rejected with INVALID_PATH.
func ParsePath(s string) (Path, error) {
	if !strings.HasPrefix(s, RootName) {
		return Path{}, errs.New(errs.ErrCodeInvalidPath, "path %q must start with %q", s, RootName)
	}
	var segs []Segment
	i := len(RootName)
	for i < len(s) {
		switch s[i] {
		case '.':
			var key strings.Builder
			i++
			for i < len(s) && s[i] != '.' && s[i] != '[' {
				if s[i] == '\\' {
					if i+1 >= len(s) {
						return Path{}, errs.New(errs.ErrCodeInvalidPath, "path %q ends with a dangling escape", s)
					}
					switch s[i+1] {
					case '\\', '.', '[':
					default:
						return Path{}, errs.New(errs.ErrCodeInvalidPath, "path %q has invalid escape %q at offset %d", s, s[i:i+2], i)
					}
					i++
				}
				key.WriteByte(s[i])
				i++
			}
			segs = append(segs, KeySegment(key.String()))
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return Path{}, errs.New(errs.ErrCodeInvalidPath, "path %q has an unterminated index at offset %d", s, i)
			}
			digits := s[i+1 : i+end]
			n, err := parseIndex(digits)
			if err != nil {
				return Path{}, errs.Wrap(errs.ErrCodeInvalidPath, err, "path %q has invalid index %q", s, digits)
			}
			segs = append(segs, IndexSegment(n))
			i += end + 1
		default:
			return Path{}, errs.New(errs.ErrCodeInvalidPath, "path %q has unexpected %q at offset %d", s, s[i], i)
		}
	}
	return Path{segs: segs}, nil
}

// parseIndex accepts only the canonical decimal form Encode produces.
func parseIndex(digits string) (int, error) {
	if digits == "" {
		return 0, errs.New(errs.ErrCodeInvalidPath, "empty index")
	}
	if len(digits) > 1 && digits[0] == '0' {
		return 0, errs.New(errs.ErrCodeInvalidPath, "leading zero")
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, errs.New(errs.ErrCodeInvalidPath, "not a decimal number")
		}
	}
	return strconv.Atoi(digits)
}
