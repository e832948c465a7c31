package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/panbanda/heir/pkg/models"
)

// RenderTree writes an ASCII tree view: the root is the analysis target
// and each branch climbs to a parent class, mirroring the search paths.
func RenderTree(w io.Writer, root *models.TreeNode, colored bool) {
	if colored {
		color.New(color.Bold).Fprintln(w, root.Name)
	} else {
		fmt.Fprintln(w, root.Name)
	}
	renderBranches(w, root.Children, "")
}

func renderBranches(w io.Writer, children []*models.TreeNode, prefix string) {
	for i, child := range children {
		connector, childPrefix := "├── ", prefix+"│   "
		if i == len(children)-1 {
			connector, childPrefix = "└── ", prefix+"    "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, connector, child.Name)
		renderBranches(w, child.Children, childPrefix)
	}
}
