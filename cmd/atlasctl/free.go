package main

import (
	"github.com/spf13/cobra"

	"github.com/mbrennan/atlaskit/atlas/snapshot"
)

func init() {
	rootCmd.AddCommand(newFreeCmd())
}

func newFreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "free <snapshot> <id>",
		Short: "Deallocate a rectangle",
		Long: `The free command releases a previously allocated rectangle and
coalesces the freed space, then updates the snapshot.

Example:
  atlasctl free atlas.yaml 0x100000002`,
		Args: exactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runFree(args)
		},
	}
}

func runFree(args []string) error {
	id, err := parseID(args[1])
	if err != nil {
		return err
	}
	a, err := snapshot.LoadFile(args[0])
	if err != nil {
		return err
	}

	if err := a.Deallocate(id); err != nil {
		return err
	}
	if err := snapshot.SaveFile(args[0], a); err != nil {
		return err
	}
	printVerbose("freed %s\n", id)
	return nil
}
