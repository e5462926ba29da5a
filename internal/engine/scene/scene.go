// Package scene draws the terrain viewer's scene: skybox, vehicle, terrain
// and the spinning cube, in that order, into an offscreen framebuffer.
package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/threegp/internal/engine/camera"
	"github.com/Faultbox/threegp/internal/engine/framebuffer"
	"github.com/Faultbox/threegp/internal/engine/scene/shaders"
	"github.com/Faultbox/threegp/internal/engine/terrain"
	"github.com/Faultbox/threegp/internal/level"
	"github.com/Faultbox/threegp/internal/logger"
)

// Config contains scene configuration options.
type Config struct {
	Width  int32
	Height int32

	ShowNormals bool

	CubePosition mgl32.Vec3
	CubeScale    float32
	CubeSpinRate float32 // Radians per second
}

// Scene owns every renderer and the offscreen target.
type Scene struct {
	config Config

	framebuffer *framebuffer.Framebuffer

	skybox  *SkyboxRenderer
	vehicle *ModelRenderer
	terrain *TerrainRenderer
	cube    *CubeRenderer
}

// New compiles all programs and uploads the level. Any failure is fatal and
// releases what was already created.
func New(cfg Config, lvl *level.Level) (*Scene, error) {
	s := &Scene{config: cfg}
	if err := s.init(lvl); err != nil {
		s.Destroy()
		return nil, err
	}

	logger.Info("scene ready",
		zap.Int("vehicleMeshes", len(s.vehicle.meshes)),
		zap.Int32("terrainIndices", s.terrain.mesh.count))
	return s, nil
}

func (s *Scene) init(lvl *level.Level) error {
	var err error
	if s.framebuffer, err = framebuffer.New(s.config.Width, s.config.Height); err != nil {
		return err
	}

	if s.skybox, err = NewSkyboxRenderer(lvl.Shaders[shaders.Skybox]); err != nil {
		return err
	}
	s.skybox.Load(lvl.Skybox)

	if s.vehicle, err = NewModelRenderer(lvl.Shaders[shaders.Vehicle]); err != nil {
		return err
	}
	if err = s.vehicle.Load(lvl.Vehicle, lvl.VehicleTexture); err != nil {
		return err
	}

	if s.terrain, err = NewTerrainRenderer(lvl.Shaders[shaders.Terrain]); err != nil {
		return err
	}
	s.terrain.ShowNormals = s.config.ShowNormals
	if err = s.terrain.Load(lvl.Terrain, lvl.TerrainTexture); err != nil {
		return err
	}

	s.cube, err = NewCubeRenderer(lvl.Shaders[shaders.Cube], s.config.CubePosition, s.config.CubeScale, s.config.CubeSpinRate)
	return err
}

// Update advances animations by dt seconds.
func (s *Scene) Update(dt float32) {
	s.cube.Update(dt)
}

// SetTerrain replaces the terrain geometry.
func (s *Scene) SetTerrain(mesh *terrain.Mesh) error {
	if err := s.terrain.SetMesh(mesh); err != nil {
		return fmt.Errorf("updating terrain: %w", err)
	}
	return nil
}

// SetShowNormals toggles the terrain normal view.
func (s *Scene) SetShowNormals(on bool) {
	s.terrain.ShowNormals = on
}

// ShowNormals reports whether the terrain normal view is on.
func (s *Scene) ShowNormals() bool {
	return s.terrain.ShowNormals
}

// Render draws one frame into the framebuffer.
func (s *Scene) Render(cam *camera.FlyCamera) {
	s.framebuffer.Bind()
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	aspect := float32(s.config.Width) / float32(s.config.Height)
	projection := cam.ProjectionMatrix(aspect)
	view := cam.ViewMatrix()
	viewProj := projection.Mul4(view)

	s.skybox.Render(view, projection)
	s.vehicle.Render(viewProj)
	s.terrain.Render(viewProj)
	s.cube.Render(viewProj)

	s.framebuffer.Unbind()
}

// Present copies the last frame to the window.
func (s *Scene) Present(width, height int32) {
	s.framebuffer.BlitToScreen(width, height)
}

// Resize resizes the offscreen target.
func (s *Scene) Resize(width, height int32) {
	s.framebuffer.Resize(width, height)
	s.config.Width, s.config.Height = s.framebuffer.Size()
}

// CaptureImage reads back the last frame as RGBA, bottom row first.
func (s *Scene) CaptureImage() ([]byte, int32, int32) {
	w, h := s.framebuffer.Size()
	return s.framebuffer.ReadPixels(), w, h
}

// Destroy releases all GPU resources.
func (s *Scene) Destroy() {
	if s.cube != nil {
		s.cube.Destroy()
	}
	if s.terrain != nil {
		s.terrain.Destroy()
	}
	if s.vehicle != nil {
		s.vehicle.Destroy()
	}
	if s.skybox != nil {
		s.skybox.Destroy()
	}
	if s.framebuffer != nil {
		s.framebuffer.Destroy()
	}
}
