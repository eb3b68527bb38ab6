package main

import (
	"github.com/spf13/cobra"

	"github.com/mbrennan/atlaskit/atlas/snapshot"
)

func init() {
	rootCmd.AddCommand(newGetCmd())
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <snapshot> <id>",
		Short: "Print the rectangle of an allocation",
		Long: `The get command looks up an allocation id and prints its rectangle.

Example:
  atlasctl get atlas.yaml 0x100000002
  atlasctl get atlas.yaml 0x100000002 --json`,
		Args: exactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runGetAlloc(args)
		},
	}
}

func runGetAlloc(args []string) error {
	id, err := parseID(args[1])
	if err != nil {
		return err
	}
	a, err := snapshot.LoadFile(args[0])
	if err != nil {
		return err
	}

	rect, err := a.Get(id)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(struct {
			ID   string   `json:"id"`
			Rect [4]int32 `json:"rect"`
		}{
			ID:   id.String(),
			Rect: [4]int32{rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y},
		})
	}
	printInfo("%s at (%d,%d) size %dx%d\n",
		id, rect.Min.X, rect.Min.Y, rect.Width(), rect.Height())
	return nil
}
