// Package level resolves every asset the scene needs and builds the terrain
// on the CPU. A Level holds no GPU handles; the scene uploads it.
package level

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/threegp/internal/assets"
	"github.com/Faultbox/threegp/internal/config"
	"github.com/Faultbox/threegp/internal/engine/model"
	"github.com/Faultbox/threegp/internal/engine/scene/shaders"
	"github.com/Faultbox/threegp/internal/engine/terrain"
	"github.com/Faultbox/threegp/internal/engine/texture"
	"github.com/Faultbox/threegp/internal/logger"
	"github.com/Faultbox/threegp/pkg/formats"
)

// ShaderSource is the GLSL text of one program.
type ShaderSource struct {
	Vertex   string
	Fragment string
}

// Level is the decoded, CPU-side content of the scene.
type Level struct {
	Shaders map[string]ShaderSource

	TerrainTexture *image.RGBA
	HeightMap      *terrain.HeightMap // nil when the height map was unusable
	Terrain        *terrain.Mesh
	TerrainOptions terrain.Options

	Vehicle        []*model.Mesh
	VehicleTexture *image.RGBA

	// Skybox faces in cube map target order (see config.SkyboxConfig.Faces).
	Skybox [6]*image.RGBA

	// Warnings collects non-fatal problems, such as a missing height map.
	Warnings []error
}

// TerrainOptions converts the terrain config section to builder options.
func TerrainOptions(c config.TerrainConfig) terrain.Options {
	return terrain.Options{
		CellsX:      c.CellsX,
		CellsZ:      c.CellsZ,
		Noise:       c.Noise,
		ExtraNoise:  c.ExtraNoise,
		NoiseSource: c.NoiseSource,
		PerlinSeed:  c.PerlinSeed,
	}
}

// Load resolves and decodes all assets named by cfg and builds the terrain.
// It is all-or-nothing: any fatal failure returns a *Error and no Level.
// The height map is optional; problems with it are recorded in Warnings
// and the terrain is built flat.
func Load(ctx context.Context, mgr *assets.Manager, cfg *config.Config) (*Level, error) {
	log := logger.Named("level")
	start := time.Now()
	lvl := &Level{Shaders: make(map[string]ShaderSource, len(shaders.Programs))}

	steps := []struct {
		name string
		run  func() error
	}{
		{"shaders", func() error { return lvl.loadShaders(mgr, cfg.Assets.ShaderDir) }},
		{"terrain texture", func() error {
			img, err := loadImage(mgr, cfg.Assets.TerrainTexture)
			lvl.TerrainTexture = img
			return err
		}},
		{"height map", func() error {
			lvl.loadHeightMap(mgr, cfg.Assets.Heightmap, cfg.Terrain.HeightmapBlur)
			return nil
		}},
		{"vehicle", func() error { return lvl.loadVehicle(mgr, cfg.Assets) }},
		{"skybox", func() error { return lvl.loadSkybox(mgr, cfg.Assets.Skybox) }},
		{"terrain", func() error { return lvl.Rebuild(TerrainOptions(cfg.Terrain)) }},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("loading level: %w", err)
		}
		stepStart := time.Now()
		if err := step.run(); err != nil {
			return nil, err
		}
		log.Debug("loaded", zap.String("step", step.name), zap.Duration("took", time.Since(stepStart)))
	}

	for _, w := range lvl.Warnings {
		log.Warn("level warning", zap.Error(w))
	}
	log.Info("level loaded",
		zap.Int("vertices", len(lvl.Terrain.Vertices)),
		zap.Int("triangles", lvl.Terrain.TriangleCount()),
		zap.Int("vehicleMeshes", len(lvl.Vehicle)),
		zap.Bool("heightmap", lvl.HeightMap != nil),
		zap.Duration("took", time.Since(start)))

	return lvl, nil
}

// Rebuild regenerates the terrain mesh from the loaded height map. The
// previous mesh is kept when the build fails.
func (l *Level) Rebuild(opts terrain.Options) error {
	mesh, err := terrain.Build(l.HeightMap, opts)
	if err != nil {
		return &Error{Kind: TerrainBuild, Err: err}
	}
	l.Terrain = mesh
	l.TerrainOptions = opts
	return nil
}

func (l *Level) loadShaders(mgr *assets.Manager, dir string) error {
	for _, name := range shaders.Programs {
		vs, err := loadShader(mgr, dir, name+".vert")
		if err != nil {
			return err
		}
		fs, err := loadShader(mgr, dir, name+".frag")
		if err != nil {
			return err
		}
		l.Shaders[name] = ShaderSource{Vertex: vs, Fragment: fs}
	}
	return nil
}

// loadShader prefers a file from the asset roots and falls back to the
// embedded copy.
func loadShader(mgr *assets.Manager, dir, file string) (string, error) {
	p := path.Join(dir, file)
	data, err := mgr.Load(p)
	if err == nil {
		return string(data), nil
	}
	if !errors.Is(err, assets.ErrNotFound) {
		return "", &Error{Kind: AssetInvalid, Path: p, Err: err}
	}

	src, embedErr := shaders.Source(file)
	if embedErr != nil {
		return "", &Error{Kind: AssetMissing, Path: p, Err: err}
	}
	return src, nil
}

func (l *Level) loadHeightMap(mgr *assets.Manager, name string, blur float32) {
	if name == "" {
		return
	}
	hm, err := LoadHeightMap(mgr, name, blur)
	if err != nil {
		l.Warnings = append(l.Warnings, err)
		return
	}
	l.HeightMap = hm
}

// LoadHeightMap decodes the named image as a height map, bottom row first,
// and applies a Gaussian blur of the given sigma when blur > 0.
func LoadHeightMap(mgr *assets.Manager, name string, blur float32) (*terrain.HeightMap, error) {
	img, err := loadImage(mgr, name)
	if err != nil {
		return nil, err
	}
	hm, err := terrain.NewHeightMap(img)
	if err != nil {
		return nil, &Error{Kind: AssetInvalid, Path: name, Err: err}
	}
	if blur > 0 {
		hm = hm.Smooth(blur)
	}
	return hm, nil
}

func (l *Level) loadVehicle(mgr *assets.Manager, cfg config.AssetsConfig) error {
	data, err := load(mgr, cfg.VehicleMesh)
	if err != nil {
		return err
	}
	obj, err := formats.ParseOBJ(data)
	if err != nil {
		return &Error{Kind: AssetInvalid, Path: cfg.VehicleMesh, Err: err}
	}
	meshes, err := model.FromOBJ(obj, model.BuildOptions{
		ReverseWinding: cfg.VehicleReverseWinding,
		SmoothNormals:  cfg.VehicleSmoothNormals,
	})
	if err != nil {
		return &Error{Kind: AssetInvalid, Path: cfg.VehicleMesh, Err: err}
	}
	if cfg.VehicleCenter {
		cx, cz := model.CenterXZ(meshes)
		logger.Named("level").Debug("vehicle centered", zap.Float32("x", cx), zap.Float32("z", cz))
	}
	l.Vehicle = meshes

	l.VehicleTexture, err = loadImage(mgr, cfg.VehicleTexture)
	return err
}

func (l *Level) loadSkybox(mgr *assets.Manager, cfg config.SkyboxConfig) error {
	for i, name := range cfg.Faces() {
		img, err := loadImage(mgr, name)
		if err != nil {
			return err
		}
		l.Skybox[i] = img
	}
	return nil
}

// loadImage reads and decodes an image in GL row order (bottom row first).
func loadImage(mgr *assets.Manager, name string) (*image.RGBA, error) {
	data, err := load(mgr, name)
	if err != nil {
		return nil, err
	}
	img, err := texture.DecodeForGL(name, data)
	if err != nil {
		return nil, &Error{Kind: AssetInvalid, Path: name, Err: err}
	}
	return img, nil
}

func load(mgr *assets.Manager, name string) ([]byte, error) {
	data, err := mgr.Load(name)
	if err == nil {
		return data, nil
	}
	if errors.Is(err, assets.ErrNotFound) {
		return nil, &Error{Kind: AssetMissing, Path: name, Err: err}
	}
	return nil, &Error{Kind: AssetInvalid, Path: name, Err: err}
}
