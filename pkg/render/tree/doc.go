// Package tree renders a value.Value as a collapsible tree of display lines.
//
// # Overview
//
// [Render] walks a value and emits one [Line] per visible node. Whether a
// container's children are visible is decided by an [expansion.State]: a
// non-empty array or object whose path is open shows a ▼ header followed by its
// children one level deeper; otherwise it shows a single ▶ header line.
//
//	v := value.MustParse(`[1, "a"]`)
//	lines := tree.Render(v, value.Root(), expansion.Of(value.Root()))
//	fmt.Print(tree.Format(lines, 2))
//	// ▼ Array[2]
//	//   [0]: 1
//	//   [1]: "a"
//
// # Line Bodies
//
//   - null, true, false
//   - numbers in canonical decimal form (see [value.FormatNumber])
//   - strings wrapped in double quotes, contents verbatim
//   - [] and {} for empty containers
//   - "▶ Array[n]" / "▼ Array[n]" and "▶ Object" / "▼ Object" for the rest
//
// Objects show no field count in their header. Child lines carry a "[i]: "
// or "key: " label in front of the child's own body.
//
// Rendering is pure: the same inputs always produce the same lines, and a
// collapsed subtree contributes exactly one line however large it is.
//
// [expansion.State]: github.com/matzehuels/apiscope/pkg/expansion
package tree
