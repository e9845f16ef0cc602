package tree_test

import (
	"fmt"

	"github.com/matzehuels/apiscope/pkg/expansion"
	"github.com/matzehuels/apiscope/pkg/render/tree"
	"github.com/matzehuels/apiscope/pkg/value"
)

func Example() {
	v := value.MustParse(`{"status":"ok","items":[1,{"id":7}],"meta":{}}`)
	root := value.Root()

	// Nothing open yet: a single header line.
	fmt.Print(tree.Format(tree.Render(v, root, expansion.Empty()), 2))

	// Open the root and the items array.
	s := expansion.Empty().Toggle(root).Toggle(root.Key("items"))
	fmt.Print(tree.Format(tree.Render(v, root, s), 2))
	// Output:
	// ▶ Object
	// ▼ Object
	//   status: "ok"
	//   items: ▼ Array[2]
	//     [0]: 1
	//     [1]: ▶ Object
	//   meta: {}
}
