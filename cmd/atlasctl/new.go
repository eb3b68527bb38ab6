package main

import (
	"github.com/spf13/cobra"

	"github.com/mbrennan/atlaskit/atlas"
	"github.com/mbrennan/atlaskit/atlas/geom"
	"github.com/mbrennan/atlaskit/atlas/snapshot"
)

var (
	newAlignment = sizeValue{Width: 1, Height: 1}
	newSmall     int32
	newLarge     int32
)

func init() {
	cmd := newNewCmd()
	cmd.Flags().Var(&newAlignment, "alignment", "Round requested sizes up to multiples of AXxAY")
	cmd.Flags().Int32Var(&newSmall, "small", atlas.DefaultOptions.SmallSizeThreshold,
		"Upper bound of the small free-list bucket")
	cmd.Flags().Int32Var(&newLarge, "large", atlas.DefaultOptions.LargeSizeThreshold,
		"Upper bound of the medium free-list bucket")
	rootCmd.AddCommand(cmd)
}

func newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <snapshot> <WxH>",
		Short: "Create an empty atlas snapshot",
		Long: `The new command creates an atlas allocator of the given size and
writes its initial snapshot.

Example:
  atlasctl new atlas.yaml 1024x1024
  atlasctl new atlas.yaml 2048x1024 --alignment 4x4 --small 16 --large 128`,
		Args: exactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runNew(args)
		},
	}
}

func runNew(args []string) error {
	size, err := parseSize(args[1])
	if err != nil {
		return err
	}

	opts := atlas.Options{
		Alignment:          geom.Size(newAlignment),
		SmallSizeThreshold: newSmall,
		LargeSizeThreshold: newLarge,
	}
	a, err := atlas.New(size, &opts)
	if err != nil {
		return err
	}
	if err := snapshot.SaveFile(args[0], a); err != nil {
		return err
	}
	printInfo("created %dx%d atlas in %s\n", size.Width, size.Height, args[0])
	return nil
}
