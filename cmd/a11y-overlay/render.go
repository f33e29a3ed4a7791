package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/billymcdowell/accessibilty-scanner/internal/imaging"
	"github.com/billymcdowell/accessibilty-scanner/internal/layout"
	"github.com/billymcdowell/accessibilty-scanner/internal/logging"
)

func newRenderCmd(flags *rootFlags) *cobra.Command {
	lf := &layoutFlags{}
	var (
		zoom      int
		grid      int
		highlight []string
		selected  string
	)

	cmd := &cobra.Command{
		Use:   "render <report.json> <screenshot> <out>",
		Short: "Draw the overlay onto a page screenshot",
		Long: `Lay out a page report and draw it onto its screenshot: one level-colored box
per group with an issue count badge on its top-right corner. The output
format follows the extension of <out> (.png, .jpg, .gif).`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, res, err := computeLayout(flags, lf, args[0])
			if err != nil {
				return err
			}

			img, err := imaging.NewImageCache().Load(args[1])
			if err != nil {
				return err
			}

			hovered := make(map[string]bool, len(highlight))
			for _, key := range highlight {
				if _, ok := res.Group(key); !ok {
					return fmt.Errorf("no group with key %q", key)
				}
				hovered[key] = true
			}
			if selected != "" {
				if _, ok := res.Group(selected); !ok {
					return fmt.Errorf("no group with key %q", selected)
				}
			}

			placements := layout.Stack(res.Groups, layout.StackOptions{
				RenderBase: cfg.Render.RenderBase,
				Hovered:    hovered,
				Selected:   selected,
				Geometry:   res.Options.Geometry,
			})

			if zoom == 0 {
				zoom = cfg.Render.Zoom
			}
			if grid < 0 {
				return fmt.Errorf("--grid must not be negative, got %d", grid)
			}
			if err := imaging.SaveOverlay(args[2], img, placements, imaging.RenderOptions{Zoom: zoom, GridSpacing: grid}); err != nil {
				return err
			}

			logging.Logger.Debugw("Overlay written", "out", args[2], "groups", len(res.Groups), "drawn", len(layout.PaintOrder(placements)))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d groups (%d drawn) from %d findings\n",
				args[2], res.Tally.Groups, len(layout.PaintOrder(placements)), res.Tally.WithBounds)
			return err
		},
	}
	lf.register(cmd)
	cmd.Flags().IntVar(&zoom, "zoom", 0, "Output scale in percent, 25 to 300 (default from config)")
	cmd.Flags().IntVar(&grid, "grid", 0, "Draw a labelled coordinate grid every N pixels")
	cmd.Flags().StringSliceVar(&highlight, "highlight", nil, "Group keys to draw as hovered (repeatable)")
	cmd.Flags().StringVar(&selected, "selected", "", "Group key to draw as selected")
	return cmd
}
