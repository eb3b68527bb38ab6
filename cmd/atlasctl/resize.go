package main

import (
	"github.com/spf13/cobra"

	"github.com/mbrennan/atlaskit/atlas"
	"github.com/mbrennan/atlaskit/atlas/geom"
	"github.com/mbrennan/atlaskit/atlas/snapshot"
)

func init() {
	rootCmd.AddCommand(newGrowCmd())
	rootCmd.AddCommand(newShrinkCmd())
}

func newGrowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grow <snapshot> <WxH>",
		Short: "Enlarge the atlas, keeping all allocations in place",
		Long: `The grow command enlarges the atlas to the given size. The new size
must be at least the current size on both axes; all allocation ids stay
valid.

Example:
  atlasctl grow atlas.yaml 2048x2048`,
		Args: exactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runResize(args, (*atlas.Atlas).Grow)
		},
	}
}

func newShrinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shrink <snapshot> <WxH>",
		Short: "Reduce the atlas, discarding free space outside the bounds",
		Long: `The shrink command reduces the atlas to the given size. It fails if
any allocation extends beyond the new bounds.

Example:
  atlasctl shrink atlas.yaml 512x512`,
		Args: exactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runResize(args, (*atlas.Atlas).Shrink)
		},
	}
}

func runResize(args []string, op func(*atlas.Atlas, geom.Size) error) error {
	size, err := parseSize(args[1])
	if err != nil {
		return err
	}
	a, err := snapshot.LoadFile(args[0])
	if err != nil {
		return err
	}

	if err := op(a, size); err != nil {
		return err
	}
	if err := snapshot.SaveFile(args[0], a); err != nil {
		return err
	}
	printVerbose("atlas is now %dx%d\n", size.Width, size.Height)
	return nil
}
