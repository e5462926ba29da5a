// Package app implements the viewer's main loop.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/threegp/internal/assets"
	"github.com/Faultbox/threegp/internal/config"
	"github.com/Faultbox/threegp/internal/engine/camera"
	"github.com/Faultbox/threegp/internal/engine/debug"
	"github.com/Faultbox/threegp/internal/engine/input"
	"github.com/Faultbox/threegp/internal/engine/renderer"
	"github.com/Faultbox/threegp/internal/engine/scene"
	"github.com/Faultbox/threegp/internal/engine/terrain"
	"github.com/Faultbox/threegp/internal/engine/window"
	"github.com/Faultbox/threegp/internal/level"
	"github.com/Faultbox/threegp/internal/logger"
)

// maxFrameTime caps dt so a stall (window drag, breakpoint) does not
// teleport the camera.
const maxFrameTime = 250 * time.Millisecond

// App is the viewer instance.
type App struct {
	config  *config.Config
	running bool

	assets *assets.Manager
	level  *level.Level

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	scene    *scene.Scene
	camera   *camera.FlyCamera

	screenshots *debug.ScreenshotCapture
	stats       *debug.FrameStats
}

// New loads the level, then opens the window and uploads the scene.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	a := &App{
		config:      cfg,
		assets:      assets.NewManager(),
		input:       input.New(),
		screenshots: debug.NewScreenshotCapture(cfg.Scene.ScreenshotDir, "threegp"),
		stats:       debug.NewFrameStats(time.Second),
	}

	for _, dir := range cfg.Assets.Roots {
		if err := a.assets.AddDir(dir); err != nil {
			return nil, err
		}
	}
	logger.Debug("asset roots", zap.Strings("search", a.assets.Roots()))

	var err error
	a.level, err = level.Load(ctx, a.assets, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	// Window first: the renderer needs a current GL context.
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("creating window: %w", err)
	}

	width, height := a.window.GetSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:     width,
		Height:    height,
		Wireframe: cfg.Scene.Wireframe,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	a.scene, err = scene.New(scene.Config{
		Width:        int32(width),
		Height:       int32(height),
		ShowNormals:  cfg.Scene.ShowNormals,
		CubePosition: mgl32.Vec3(cfg.Scene.CubePosition),
		CubeScale:    cfg.Scene.CubeScale,
		CubeSpinRate: cfg.Scene.CubeSpinRate,
	}, a.level)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("creating scene: %w", err)
	}

	bounds := a.level.Terrain.Bounds
	a.camera = camera.NewForBounds(mgl32.Vec3(cfg.Scene.CameraPosition), cfg.Scene.CameraFit, bounds.Min, bounds.Max)
	a.camera.FOV = cfg.Scene.FOV
	a.camera.Near = cfg.Scene.Near
	a.camera.Far = cfg.Scene.Far
	a.camera.Speed = cfg.Scene.CameraSpeed
	a.camera.Sensitivity = cfg.Scene.MouseSensitivity

	logger.Info("viewer initialized")
	return a, nil
}

// Run starts the main loop and returns when the window closes or ctx is
// cancelled.
func (a *App) Run(ctx context.Context) error {
	a.running = true
	lastTime := time.Now()

	logger.Info("starting main loop")

	for a.running {
		if ctx.Err() != nil {
			break
		}

		now := time.Now()
		frame := now.Sub(lastTime)
		lastTime = now
		dt := float32(min(frame, maxFrameTime).Seconds())

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()
		a.update(dt)

		a.render()
		a.window.SwapBuffers()

		if a.stats.Tick(frame) {
			a.window.SetTitle(a.stats.Title(a.config.Window.Title))
			logger.Debug("frame stats",
				zap.Float64("fps", a.stats.FPS),
				zap.Duration("frameTime", a.stats.FrameTime))
		}
	}

	return nil
}

// Close cleans up all resources.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.scene != nil {
		a.scene.Destroy()
	}
	if a.window != nil {
		a.window.Close()
	}
	a.assets.Close()
}

func (a *App) handleEvents() {
	for _, event := range a.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			width, height := a.window.GetSize()
			a.renderer.Resize(width, height)
			a.scene.Resize(int32(width), int32(height))
		case input.EventMouseDown:
			if event.Button == sdl.BUTTON_RIGHT {
				a.window.SetRelativeMouse(true)
			}
		case input.EventMouseUp:
			if event.Button == sdl.BUTTON_RIGHT {
				a.window.SetRelativeMouse(false)
			}
		case input.EventKeyDown:
			if !event.Repeat {
				a.handleKey(event.Key)
			}
		}
	}
}

func (a *App) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false
	case sdl.SCANCODE_F1:
		a.renderer.SetWireframe(!a.renderer.Wireframe())
		logger.Debug("wireframe", zap.Bool("on", a.renderer.Wireframe()))
	case sdl.SCANCODE_F2:
		a.scene.SetShowNormals(!a.scene.ShowNormals())
	case sdl.SCANCODE_N:
		opts := a.level.TerrainOptions
		opts.Noise = !opts.Noise
		a.rebuildTerrain(opts)
	case sdl.SCANCODE_M:
		opts := a.level.TerrainOptions
		opts.ExtraNoise = !opts.ExtraNoise
		a.rebuildTerrain(opts)
	case sdl.SCANCODE_F12:
		a.screenshot()
	}
}

func (a *App) rebuildTerrain(opts terrain.Options) {
	start := time.Now()
	if err := a.level.Rebuild(opts); err != nil {
		logger.Error("terrain rebuild failed", zap.Error(err))
		return
	}
	if err := a.scene.SetTerrain(a.level.Terrain); err != nil {
		logger.Error("terrain upload failed", zap.Error(err))
		return
	}
	logger.Info("terrain rebuilt",
		zap.Bool("noise", opts.Noise),
		zap.Bool("extraNoise", opts.ExtraNoise),
		zap.Duration("took", time.Since(start)))
}

func (a *App) screenshot() {
	pixels, w, h := a.scene.CaptureImage()
	name, err := a.screenshots.CaptureFromPixels(pixels, int(w), int(h))
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", name))
}

func (a *App) update(dt float32) {
	var forward, right, up float32
	if a.input.IsKeyHeld(sdl.SCANCODE_W) {
		forward++
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_S) {
		forward--
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_D) {
		right++
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_A) {
		right--
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_E) {
		up++
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_Q) {
		up--
	}
	a.camera.HandleMovement(forward, right, up, dt)

	if a.input.IsButtonHeld(sdl.BUTTON_RIGHT) {
		dx, dy := a.input.MouseDelta()
		a.camera.HandleMouse(float32(dx), float32(dy))
	}

	a.scene.Update(dt)
}

func (a *App) render() {
	a.scene.Render(a.camera)
	width, height := a.window.GetSize()
	a.scene.Present(int32(width), int32(height))
	if err := a.renderer.End(); err != nil {
		logger.Warn("frame finished with GL error", zap.Error(err))
	}
}
