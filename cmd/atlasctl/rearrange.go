package main

import (
	"github.com/spf13/cobra"

	"github.com/mbrennan/atlaskit/atlas"
	"github.com/mbrennan/atlaskit/atlas/geom"
	"github.com/mbrennan/atlaskit/atlas/snapshot"
)

var rearrangeSize sizeValue

func init() {
	cmd := newRearrangeCmd()
	cmd.Flags().Var(&rearrangeSize, "size", "Also resize the atlas to WxH")
	rootCmd.AddCommand(cmd)
}

func newRearrangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rearrange <snapshot>",
		Short: "Repack all allocations from scratch",
		Long: `The rearrange command repacks every allocation to reduce
fragmentation and prints the id remapping. All previous ids are replaced;
allocations that no longer fit are listed as failures.

Example:
  atlasctl rearrange atlas.yaml
  atlasctl rearrange atlas.yaml --size 2048x2048`,
		Args: exactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runRearrange(args)
		},
	}
}

func runRearrange(args []string) error {
	a, err := snapshot.LoadFile(args[0])
	if err != nil {
		return err
	}

	var cl atlas.ChangeList
	if rearrangeSize.Width != 0 || rearrangeSize.Height != 0 {
		cl, err = a.ResizeAndRearrange(geom.Size(rearrangeSize))
		if err != nil {
			return err
		}
	} else {
		cl = a.Rearrange()
	}
	if err := snapshot.SaveFile(args[0], a); err != nil {
		return err
	}

	if jsonOut {
		type mapping struct {
			OldID string   `json:"old_id"`
			NewID string   `json:"new_id"`
			Rect  [4]int32 `json:"rect"`
		}
		out := struct {
			Changes  []mapping `json:"changes"`
			Failures []string  `json:"failures,omitempty"`
		}{}
		for _, ch := range cl.Changes {
			out.Changes = append(out.Changes, mapping{
				OldID: ch.Old.ID.String(),
				NewID: ch.New.ID.String(),
				Rect:  [4]int32{ch.New.Rect.Min.X, ch.New.Rect.Min.Y, ch.New.Rect.Max.X, ch.New.Rect.Max.Y},
			})
		}
		for _, f := range cl.Failures {
			out.Failures = append(out.Failures, f.ID.String())
		}
		return printJSON(out)
	}

	for _, ch := range cl.Changes {
		printInfo("%s -> %s at (%d,%d)\n",
			ch.Old.ID, ch.New.ID, ch.New.Rect.Min.X, ch.New.Rect.Min.Y)
	}
	for _, f := range cl.Failures {
		printInfo("%s no longer fits\n", f.ID)
	}
	return nil
}
