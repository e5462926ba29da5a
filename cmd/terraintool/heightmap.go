package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/threegp/internal/engine/terrain"
	"github.com/Faultbox/threegp/internal/logger"
)

func newHeightmapCmd(t *tool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heightmap",
		Short: "Render the built terrain heights as a grayscale PNG",
		Long: `Writes one pixel per terrain vertex. Columns follow X and rows follow
Z, and heights are scaled so the lowest vertex is black and the highest
is white.`,
		Args: cobra.NoArgs,
		RunE: t.runHeightmap,
	}
	cmd.Flags().StringP("output", "o", "heights.png", "Output PNG path")
	return cmd
}

func (t *tool) runHeightmap(cmd *cobra.Command, _ []string) error {
	out, _ := cmd.Flags().GetString("output")

	mesh, err := t.buildTerrain()
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	defer f.Close()

	if err := png.Encode(f, heightImage(mesh)); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("height image written", zap.String("path", out))
	return nil
}

// heightImage maps vertex (x, z) to pixel (x, z).
func heightImage(mesh *terrain.Mesh) *image.Gray {
	numX, numZ := mesh.CellsX+1, mesh.CellsZ+1
	img := image.NewGray(image.Rect(0, 0, numX, numZ))

	lo, hi := mesh.Bounds.Min.Y(), mesh.Bounds.Max.Y()
	span := hi - lo
	for x := 0; x < numX; x++ {
		for z := 0; z < numZ; z++ {
			var v uint8
			if span > 0 {
				y := mesh.Vertices[x*numZ+z].Position.Y()
				v = uint8((y-lo)/span*255 + 0.5)
			}
			img.SetGray(x, z, color.Gray{Y: v})
		}
	}
	return img
}
