package main

import (
	"github.com/spf13/cobra"

	"github.com/mbrennan/atlaskit/atlas/snapshot"
)

func init() {
	rootCmd.AddCommand(newAllocCmd())
}

func newAllocCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alloc <snapshot> <WxH>",
		Short: "Allocate a rectangle",
		Long: `The alloc command claims a rectangle of the given size, prints its
id and position, and updates the snapshot.

Example:
  atlasctl alloc atlas.yaml 64x48
  atlasctl alloc atlas.yaml 256x256 --json`,
		Args: exactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runAlloc(args)
		},
	}
}

func runAlloc(args []string) error {
	size, err := parseSize(args[1])
	if err != nil {
		return err
	}
	a, err := snapshot.LoadFile(args[0])
	if err != nil {
		return err
	}

	alloc, err := a.Allocate(size)
	if err != nil {
		return err
	}
	if err := snapshot.SaveFile(args[0], a); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(struct {
			ID   string   `json:"id"`
			Rect [4]int32 `json:"rect"`
		}{
			ID:   alloc.ID.String(),
			Rect: [4]int32{alloc.Rect.Min.X, alloc.Rect.Min.Y, alloc.Rect.Max.X, alloc.Rect.Max.Y},
		})
	}
	printInfo("%s at (%d,%d) size %dx%d\n",
		alloc.ID, alloc.Rect.Min.X, alloc.Rect.Min.Y, alloc.Rect.Width(), alloc.Rect.Height())
	return nil
}
