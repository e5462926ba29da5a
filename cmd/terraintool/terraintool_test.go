package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/threegp/internal/engine/terrain"
	"github.com/Faultbox/threegp/pkg/formats"
)

func flatMesh(t *testing.T, cx, cz int) *terrain.Mesh {
	t.Helper()
	mesh, err := terrain.Build(nil, terrain.Options{CellsX: cx, CellsZ: cz})
	require.NoError(t, err)
	return mesh
}

func TestMeshToOBJ(t *testing.T) {
	mesh := flatMesh(t, 2, 3)
	obj := meshToOBJ(mesh)

	assert.Len(t, obj.Positions, 12)
	assert.Len(t, obj.TexCoords, 12)
	assert.Len(t, obj.Normals, 12)
	require.Len(t, obj.Objects, 1)
	assert.Equal(t, "terrain", obj.Objects[0].Name)
	assert.Equal(t, mesh.TriangleCount(), obj.Objects[0].TriangleCount())

	first := obj.Objects[0].Faces[0].Corners
	tri := mesh.Triangle(0)
	for k, c := range first {
		assert.Equal(t, int(tri[k]), c.Position)
		assert.Equal(t, c.Position, c.TexCoord)
		assert.Equal(t, c.Position, c.Normal)
	}
}

func TestMeshToOBJRoundTrip(t *testing.T) {
	mesh := flatMesh(t, 4, 4)

	var buf bytes.Buffer
	require.NoError(t, formats.WriteOBJ(&buf, meshToOBJ(mesh)))
	assert.True(t, strings.HasPrefix(buf.String(), "v "))
	assert.Contains(t, buf.String(), "\no terrain\n")

	parsed, err := formats.ParseOBJ(buf.Bytes())
	require.NoError(t, err)
	assert.Len(t, parsed.Positions, len(mesh.Vertices))
	require.Len(t, parsed.Objects, 1)
	assert.Equal(t, mesh.TriangleCount(), parsed.Objects[0].TriangleCount())
}

func TestHeightImage(t *testing.T) {
	mesh := flatMesh(t, 2, 2)
	// Raise vertex (x=2, z=1) above the rest.
	numZ := mesh.CellsZ + 1
	mesh.Vertices[2*numZ+1].Position[1] = 10
	mesh.Bounds.Max[1] = 10

	img := heightImage(mesh)
	assert.Equal(t, image.Rect(0, 0, 3, 3), img.Bounds())
	assert.Equal(t, color.Gray{Y: 255}, img.GrayAt(2, 1))
	assert.Equal(t, color.Gray{Y: 0}, img.GrayAt(0, 0))
	assert.Equal(t, color.Gray{Y: 0}, img.GrayAt(1, 2))
}

func TestHeightImageFlat(t *testing.T) {
	img := heightImage(flatMesh(t, 1, 1))
	for _, px := range img.Pix {
		assert.Zero(t, px)
	}
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, flatMesh(t, 2, 2), 1500*time.Microsecond)

	out := buf.String()
	assert.Contains(t, out, "Grid:      2 x 2 cells")
	assert.Contains(t, out, "Vertices:  9")
	assert.Contains(t, out, "Indices:   24")
	assert.Contains(t, out, "Triangles: 8")
	assert.Contains(t, out, "(0.00, 0.00, 0.00) - (16.00, 0.00, 16.00)")
	assert.Contains(t, out, "Built in:  1.5ms")
}

func writeHeightMap(t *testing.T, dir string) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 100
	}
	f, err := os.Create(filepath.Join(dir, "hm.png"))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

// writeConfig writes a config with one asset root holding a flat height
// map of value 100 and returns its path.
func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeHeightMap(t, dir)
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
assets:
  roots: ["`+filepath.ToSlash(dir)+`"]
  heightmap: hm.png
terrain:
  cells_x: 3
  cells_z: 3
  noise: false
`), 0o644))
	return cfgPath
}

func runTool(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBuildCommand(t *testing.T) {
	out, err := runTool(t, "build", "--config", writeConfig(t))
	require.NoError(t, err)

	assert.Contains(t, out, "Vertices:  16")
	assert.Contains(t, out, "Triangles: 18")
	assert.Contains(t, out, "(0.00, 100.00, 0.00) - (24.00, 100.00, 24.00)")
}

func TestBuildCommandCellsOverride(t *testing.T) {
	out, err := runTool(t, "build", "--config", writeConfig(t), "--cells", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Grid:      2 x 2 cells")
}

func TestHeightCommand(t *testing.T) {
	out, err := runTool(t, "height", "--config", writeConfig(t), "10", "4")
	require.NoError(t, err)
	assert.Equal(t, "height: 100.000\n", out)

	_, err = runTool(t, "height", "--config", writeConfig(t), "x", "4")
	assert.Error(t, err)
}

func TestNoiseCommand(t *testing.T) {
	out, err := runTool(t, "noise", "0", "0")
	require.NoError(t, err)

	assert.Contains(t, out, "source: hash")
	assert.Contains(t, out, "noise:  -0.281791")
}

func TestNoiseCommandBadArgs(t *testing.T) {
	_, err := runTool(t, "noise", "x", "0")
	assert.Error(t, err)
}

func TestFlagsDoNotCarryOverBetweenRuns(t *testing.T) {
	cfgPath := writeConfig(t)
	_, err := runTool(t, "build", "--config", cfgPath)
	require.NoError(t, err)
	require.NoError(t, os.Remove(cfgPath))

	// A second run without --config must not reopen the removed file.
	out, err := runTool(t, "noise", "0", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "source: hash")
}
