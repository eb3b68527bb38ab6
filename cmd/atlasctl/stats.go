package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mbrennan/atlaskit/atlas/snapshot"
)

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <snapshot>",
		Short: "Show occupancy statistics",
		Long: `The stats command summarizes the atlas: dimensions, allocation and
free rectangle counts, areas, and the largest free rectangle.

Example:
  atlasctl stats atlas.yaml
  atlasctl stats atlas.yaml --json`,
		Args: exactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runAtlasStats(args)
		},
	}
}

func runAtlasStats(args []string) error {
	a, err := snapshot.LoadFile(args[0])
	if err != nil {
		return err
	}

	size := a.Size()
	st := a.Stats()
	total := size.Area()
	occupancy := 0.0
	if total > 0 {
		occupancy = float64(st.AllocatedArea) / float64(total) * 100
	}

	if jsonOut {
		return printJSON(struct {
			Width         int32   `json:"width"`
			Height        int32   `json:"height"`
			Allocated     int     `json:"allocated"`
			FreeRects     int     `json:"free_rects"`
			AllocatedArea int64   `json:"allocated_area"`
			FreeArea      int64   `json:"free_area"`
			LargestFreeW  int32   `json:"largest_free_width"`
			LargestFreeH  int32   `json:"largest_free_height"`
			Occupancy     float64 `json:"occupancy_percent"`
		}{
			Width:         size.Width,
			Height:        size.Height,
			Allocated:     st.Allocated,
			FreeRects:     st.FreeRects,
			AllocatedArea: st.AllocatedArea,
			FreeArea:      st.FreeArea,
			LargestFreeW:  st.LargestFree.Width,
			LargestFreeH:  st.LargestFree.Height,
			Occupancy:     occupancy,
		})
	}

	p := message.NewPrinter(language.English)
	td := pterm.TableData{
		{"Metric", "Value"},
		{"Size", p.Sprintf("%d x %d", size.Width, size.Height)},
		{"Allocated rects", p.Sprintf("%d", st.Allocated)},
		{"Free rects", p.Sprintf("%d", st.FreeRects)},
		{"Allocated area", p.Sprintf("%d px²", st.AllocatedArea)},
		{"Free area", p.Sprintf("%d px²", st.FreeArea)},
		{"Largest free rect", p.Sprintf("%d x %d", st.LargestFree.Width, st.LargestFree.Height)},
		{"Occupancy", p.Sprintf("%.1f%%", occupancy)},
	}
	return pterm.DefaultTable.WithHasHeader().WithData(td).Render()
}
