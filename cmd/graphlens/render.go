package main

import (
	"fmt"
	"log"

	"github.com/fogleman/gg"
	"github.com/spf13/cobra"

	"github.com/recera/graphlens/pkg/engine"
	"github.com/recera/graphlens/pkg/render"
	"github.com/recera/graphlens/pkg/render/canvas2d"
	"github.com/recera/graphlens/pkg/render/scene3d"
	"github.com/recera/graphlens/pkg/scene"
)

// maxSettleSteps bounds the headless settle loop; default parameters
// quiesce well before this.
const maxSettleSteps = 600

func newRenderCommand() *cobra.Command {
	var (
		output     string
		width      int
		height     int
		use3D      bool
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "render <graph.json>",
		Short: "Settle the layout headlessly and write a PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := loadParams(configPath)
			if err != nil {
				return err
			}
			snap, err := loadSnapshot(args[0])
			if err != nil {
				return err
			}
			if use3D {
				params.Dimensions = 3
			}

			eng := engine.New(params, engine.Events{})
			eng.SetSnapshot(snap)

			steps := 0
			for eng.Step(1.0/60.0) && steps < maxSettleSteps {
				steps++
			}
			log.Printf("[render] layout settled after %d steps", steps)

			eng.Camera().Apply(scene.FitToNodes(snap.Nodes, float64(width), float64(height), 60))

			var r render.Renderer
			if use3D {
				r, err = scene3d.New()
			} else {
				r, err = canvas2d.New()
			}
			if err != nil {
				return err
			}
			img, err := r.Render(eng, width, height)
			if err != nil {
				return fmt.Errorf("failed to render: %w", err)
			}
			if err := gg.SavePNG(output, img); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			log.Printf("[render] wrote %s (%dx%d)", output, width, height)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "graph.png", "output PNG path")
	cmd.Flags().IntVar(&width, "width", 1600, "image width")
	cmd.Flags().IntVar(&height, "height", 1000, "image height")
	cmd.Flags().BoolVar(&use3D, "3d", false, "use the 3D scene renderer")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "layout parameter config file")
	return cmd
}
