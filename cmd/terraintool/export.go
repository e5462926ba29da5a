package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/threegp/internal/engine/terrain"
	"github.com/Faultbox/threegp/internal/logger"
	"github.com/Faultbox/threegp/pkg/formats"
)

func newExportCmd(t *tool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the terrain mesh as Wavefront OBJ",
		Args:  cobra.NoArgs,
		RunE:  t.runExport,
	}
	cmd.Flags().StringP("output", "o", "terrain.obj", "Output OBJ path")
	return cmd
}

func (t *tool) runExport(cmd *cobra.Command, _ []string) error {
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

	if err := formats.WriteOBJ(f, meshToOBJ(mesh)); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Info("terrain exported",
		zap.String("path", out),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", mesh.TriangleCount()))
	return nil
}

// meshToOBJ converts the terrain to a single OBJ object. Every vertex
// carries its own position, UV and normal, so all three attribute arrays
// share one index.
func meshToOBJ(mesh *terrain.Mesh) *formats.OBJ {
	n := len(mesh.Vertices)
	obj := &formats.OBJ{
		Positions: make([][3]float32, n),
		TexCoords: make([][2]float32, n),
		Normals:   make([][3]float32, n),
	}
	for i, v := range mesh.Vertices {
		obj.Positions[i] = v.Position
		obj.TexCoords[i] = v.TexCoord
		obj.Normals[i] = v.Normal
	}

	faces := make([]formats.OBJFace, mesh.TriangleCount())
	for i := range faces {
		tri := mesh.Triangle(i)
		corners := make([]formats.OBJIndex, 3)
		for k, idx := range tri {
			corners[k] = formats.OBJIndex{Position: int(idx), TexCoord: int(idx), Normal: int(idx)}
		}
		faces[i] = formats.OBJFace{Corners: corners}
	}
	obj.Objects = []formats.OBJObject{{Name: "terrain", Faces: faces}}
	return obj
}
