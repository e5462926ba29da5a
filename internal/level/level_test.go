package level

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/threegp/internal/assets"
	"github.com/Faultbox/threegp/internal/config"
	"github.com/Faultbox/threegp/internal/engine/terrain"
)

const jeepOBJ = `o jeep
v 0 0 0
v 1 0 0
v 0 0 1
vt 0 0
vt 1 0
vt 0 1
f 1/1 3/3 2/2
`

func pngBytes(t *testing.T, w, h int, fill func(x, y int) color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, fill(x, y))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func solid(c color.RGBA) func(x, y int) color.RGBA {
	return func(int, int) color.RGBA { return c }
}

// testAssets returns a complete asset tree and a config pointing at it.
func testAssets(t *testing.T) (fstest.MapFS, *config.Config) {
	t.Helper()
	cfg := config.Default()
	cfg.Terrain.CellsX = 4
	cfg.Terrain.CellsZ = 4
	cfg.Terrain.Noise = false
	cfg.Assets.Heightmap = "hm.png"
	cfg.Assets.TerrainTexture = "ground.png"
	cfg.Assets.VehicleMesh = "jeep.obj"
	cfg.Assets.VehicleTexture = "jeep.png"
	cfg.Assets.Skybox = config.SkyboxConfig{
		Right: "sky/r.png", Left: "sky/l.png", Up: "sky/u.png",
		Down: "sky/d.png", Front: "sky/f.png", Back: "sky/b.png",
	}

	// Top row bright, bottom row dark.
	hm := pngBytes(t, 2, 2, func(_, y int) color.RGBA {
		if y == 0 {
			return color.RGBA{200, 200, 200, 255}
		}
		return color.RGBA{10, 10, 10, 255}
	})
	tile := pngBytes(t, 2, 2, solid(color.RGBA{255, 0, 0, 255}))

	fsys := fstest.MapFS{
		"hm.png":     {Data: hm},
		"ground.png": {Data: tile},
		"jeep.obj":   {Data: []byte(jeepOBJ)},
		"jeep.png":   {Data: tile},
	}
	for _, face := range cfg.Assets.Skybox.Faces() {
		fsys[face] = &fstest.MapFile{Data: tile}
	}
	return fsys, cfg
}

func manager(fsys fstest.MapFS) *assets.Manager {
	mgr := assets.NewManager()
	mgr.AddRoot("test", fsys)
	return mgr
}

func requireKind(t *testing.T, err error, kind Kind) *Error {
	t.Helper()
	var lerr *Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, kind, lerr.Kind, "error: %v", err)
	return lerr
}

func TestLoad(t *testing.T) {
	fsys, cfg := testAssets(t)

	lvl, err := Load(context.Background(), manager(fsys), cfg)
	require.NoError(t, err)

	assert.Len(t, lvl.Shaders, 4)
	for name, src := range lvl.Shaders {
		assert.Contains(t, src.Vertex, "#version", name)
		assert.Contains(t, src.Fragment, "#version", name)
	}

	require.NotNil(t, lvl.HeightMap)
	assert.Empty(t, lvl.Warnings)
	assert.Len(t, lvl.Terrain.Vertices, 25)
	assert.Len(t, lvl.Terrain.Indices, 4*4*6)

	require.Len(t, lvl.Vehicle, 1)
	assert.Equal(t, "jeep", lvl.Vehicle[0].Name)
	assert.NotNil(t, lvl.VehicleTexture)
	assert.NotNil(t, lvl.TerrainTexture)
	for i, face := range lvl.Skybox {
		assert.NotNil(t, face, "face %d", i)
	}
}

func TestLoadVehicleOptions(t *testing.T) {
	fsys, cfg := testAssets(t)
	cfg.Assets.VehicleCenter = true
	cfg.Assets.VehicleReverseWinding = true

	lvl, err := Load(context.Background(), manager(fsys), cfg)
	require.NoError(t, err)
	require.Len(t, lvl.Vehicle, 1)

	jeep := lvl.Vehicle[0]
	assert.Equal(t, float32(-0.5), jeep.Bounds.Min.X())
	assert.Equal(t, float32(0.5), jeep.Bounds.Max.Z())
	// The file winds the triangle upward; reversed it faces down.
	for _, v := range jeep.Vertices {
		assert.InDelta(t, -1, v.Normal.Y(), 1e-6)
	}
}

func TestLoadHeightMapBottomRowFirst(t *testing.T) {
	fsys, cfg := testAssets(t)

	lvl, err := Load(context.Background(), manager(fsys), cfg)
	require.NoError(t, err)

	bottom, err := lvl.HeightMap.At(0, 0)
	require.NoError(t, err)
	top, err := lvl.HeightMap.At(0, 1)
	require.NoError(t, err)
	assert.Equal(t, byte(10), bottom)
	assert.Equal(t, byte(200), top)

	// z = 0 samples the first row.
	assert.Equal(t, float32(10), lvl.Terrain.Vertices[0].Position.Y())
}

func TestLoadShaderOverride(t *testing.T) {
	fsys, cfg := testAssets(t)
	fsys["Shaders/terrain.vert"] = &fstest.MapFile{Data: []byte("#version 410 core\n// custom\n")}

	lvl, err := Load(context.Background(), manager(fsys), cfg)
	require.NoError(t, err)
	assert.Contains(t, lvl.Shaders["terrain"].Vertex, "// custom")
	assert.NotContains(t, lvl.Shaders["cube"].Vertex, "// custom")
}

func TestLoadMissingHeightMapIsWarning(t *testing.T) {
	fsys, cfg := testAssets(t)
	delete(fsys, "hm.png")

	lvl, err := Load(context.Background(), manager(fsys), cfg)
	require.NoError(t, err)

	assert.Nil(t, lvl.HeightMap)
	require.Len(t, lvl.Warnings, 1)
	requireKind(t, lvl.Warnings[0], AssetMissing)

	for _, v := range lvl.Terrain.Vertices {
		assert.Zero(t, v.Position.Y())
	}
}

func TestLoadInvalidHeightMapIsWarning(t *testing.T) {
	fsys, cfg := testAssets(t)
	fsys["hm.png"] = &fstest.MapFile{Data: []byte("not a png")}

	lvl, err := Load(context.Background(), manager(fsys), cfg)
	require.NoError(t, err)
	assert.Nil(t, lvl.HeightMap)
	require.Len(t, lvl.Warnings, 1)
	requireKind(t, lvl.Warnings[0], AssetInvalid)
}

func TestLoadMissingTexture(t *testing.T) {
	fsys, cfg := testAssets(t)
	delete(fsys, "ground.png")

	_, err := Load(context.Background(), manager(fsys), cfg)
	lerr := requireKind(t, err, AssetMissing)
	assert.Equal(t, "ground.png", lerr.Path)
	assert.ErrorIs(t, err, assets.ErrNotFound)
}

func TestLoadMissingSkyboxFace(t *testing.T) {
	fsys, cfg := testAssets(t)
	delete(fsys, "sky/u.png")

	_, err := Load(context.Background(), manager(fsys), cfg)
	lerr := requireKind(t, err, AssetMissing)
	assert.Equal(t, "sky/u.png", lerr.Path)
}

func TestLoadInvalidImage(t *testing.T) {
	fsys, cfg := testAssets(t)
	fsys["jeep.png"] = &fstest.MapFile{Data: []byte{1, 2, 3}}

	_, err := Load(context.Background(), manager(fsys), cfg)
	lerr := requireKind(t, err, AssetInvalid)
	assert.Equal(t, "jeep.png", lerr.Path)
}

func TestLoadInvalidMesh(t *testing.T) {
	fsys, cfg := testAssets(t)
	fsys["jeep.obj"] = &fstest.MapFile{Data: []byte("v 0 0 0\nf 1 2 3\n")}

	_, err := Load(context.Background(), manager(fsys), cfg)
	lerr := requireKind(t, err, AssetInvalid)
	assert.Equal(t, "jeep.obj", lerr.Path)
}

func TestLoadInvalidGrid(t *testing.T) {
	fsys, cfg := testAssets(t)
	cfg.Terrain.CellsX = 0

	_, err := Load(context.Background(), manager(fsys), cfg)
	requireKind(t, err, TerrainBuild)
	assert.ErrorIs(t, err, terrain.ErrInvalidGrid)
}

func TestLoadCancelled(t *testing.T) {
	fsys, cfg := testAssets(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, manager(fsys), cfg)
	assert.ErrorIs(t, err, context.Canceled)

	var lerr *Error
	assert.False(t, errors.As(err, &lerr))
}

func TestRebuild(t *testing.T) {
	fsys, cfg := testAssets(t)
	lvl, err := Load(context.Background(), manager(fsys), cfg)
	require.NoError(t, err)

	flatY := lvl.Terrain.Vertices[7].Position.Y()

	opts := lvl.TerrainOptions
	opts.Noise = true
	require.NoError(t, lvl.Rebuild(opts))
	assert.True(t, lvl.TerrainOptions.Noise)

	want := flatY + terrain.Offset(terrain.Noise(1, 2), false)
	assert.InDelta(t, want, lvl.Terrain.Vertices[7].Position.Y(), 1e-5)

	previous := lvl.Terrain
	opts.CellsZ = -1
	requireKind(t, lvl.Rebuild(opts), TerrainBuild)
	assert.Same(t, previous, lvl.Terrain)
}

func TestErrorString(t *testing.T) {
	err := &Error{Kind: AssetMissing, Path: "a.png", Err: assets.ErrNotFound}
	assert.Contains(t, err.Error(), "asset missing a.png")
	assert.Equal(t, "terrain build", TerrainBuild.String())
}
