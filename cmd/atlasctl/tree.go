package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mbrennan/atlaskit/atlas"
	"github.com/mbrennan/atlaskit/atlas/snapshot"
)

func init() {
	rootCmd.AddCommand(newTreeCmd())
}

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <snapshot>",
		Short: "Print the guillotine tree",
		Long: `The tree command renders the allocator's internal partition tree,
showing every container cut and each free or allocated rectangle.

Example:
  atlasctl tree atlas.yaml`,
		Args: exactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runTree(args)
		},
	}
}

func runTree(args []string) error {
	a, err := snapshot.LoadFile(args[0])
	if err != nil {
		return err
	}

	st := a.ExportState()
	byIndex := make(map[int64]atlas.NodeState, len(st.Nodes))
	for _, n := range st.Nodes {
		byIndex[int64(n.Index)] = n
	}

	root := buildTreeNode(byIndex, int64(st.Root))
	return pterm.DefaultTree.WithRoot(root).Render()
}

func buildTreeNode(byIndex map[int64]atlas.NodeState, idx int64) pterm.TreeNode {
	n := byIndex[idx]
	node := pterm.TreeNode{Text: describeNode(n)}
	if n.Kind == atlas.KindContainer {
		node.Children = []pterm.TreeNode{
			buildTreeNode(byIndex, n.First),
			buildTreeNode(byIndex, n.Second),
		}
	}
	return node
}

func describeNode(n atlas.NodeState) string {
	r := n.Rect
	switch n.Kind {
	case atlas.KindContainer:
		return fmt.Sprintf("container %s cut, %dx%d at (%d,%d)",
			n.Split, r.Width(), r.Height(), r.Min.X, r.Min.Y)
	case atlas.KindAllocated:
		return fmt.Sprintf("allocated %s, %dx%d at (%d,%d)",
			n.AllocID(), r.Width(), r.Height(), r.Min.X, r.Min.Y)
	default:
		return fmt.Sprintf("free %dx%d at (%d,%d)",
			r.Width(), r.Height(), r.Min.X, r.Min.Y)
	}
}
