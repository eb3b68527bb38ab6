package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mbrennan/atlaskit/atlas/snapshot"
	"github.com/mbrennan/atlaskit/atlas/svgdump"
)

var svgOutput string

func init() {
	cmd := newSVGCmd()
	cmd.Flags().StringVarP(&svgOutput, "output", "o", "", "Write the SVG to a file instead of stdout")
	rootCmd.AddCommand(cmd)
}

func newSVGCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "svg <snapshot>",
		Short: "Render the atlas layout as SVG",
		Long: `The svg command renders the current layout, free rectangles in green
and allocated rectangles in blue.

Example:
  atlasctl svg atlas.yaml -o atlas.svg`,
		Args: exactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSVG(args)
		},
	}
}

func runSVG(args []string) error {
	a, err := snapshot.LoadFile(args[0])
	if err != nil {
		return err
	}

	out := os.Stdout
	if svgOutput != "" {
		f, err := os.Create(svgOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return svgdump.Dump(out, a)
}
