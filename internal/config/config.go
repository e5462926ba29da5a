// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Terrain TerrainConfig `yaml:"terrain"`
	Assets  AssetsConfig  `yaml:"assets"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`

	// ErrorDialog shows fatal startup errors in a native message box.
	ErrorDialog bool `yaml:"error_dialog"`
}

// TerrainConfig holds terrain generation settings.
type TerrainConfig struct {
	CellsX      int    `yaml:"cells_x"`
	CellsZ      int    `yaml:"cells_z"`
	Noise       bool   `yaml:"noise"`
	ExtraNoise  bool   `yaml:"extra_noise"`
	NoiseSource string `yaml:"noise_source"` // "hash" or "perlin"
	PerlinSeed  int64  `yaml:"perlin_seed"`

	// HeightmapBlur is the Gaussian sigma applied to the heightmap before
	// sampling. Zero disables it.
	HeightmapBlur float32 `yaml:"heightmap_blur"`
}

// SkyboxConfig holds the six cube map face images.
type SkyboxConfig struct {
	Right string `yaml:"right"`
	Left  string `yaml:"left"`
	Up    string `yaml:"up"`
	Down  string `yaml:"down"`
	Front string `yaml:"front"`
	Back  string `yaml:"back"`
}

// Faces returns the face paths in cube map target order: +X, -X, -Y, +Y,
// -Z, +Z. Up maps to -Y and Down to +Y.
func (s SkyboxConfig) Faces() [6]string {
	return [6]string{s.Right, s.Left, s.Up, s.Down, s.Front, s.Back}
}

// AssetsConfig holds asset roots and the paths of every file the scene
// loads, relative to the roots.
type AssetsConfig struct {
	Roots          []string     `yaml:"roots"` // Later roots take priority
	Heightmap      string       `yaml:"heightmap"`
	TerrainTexture string       `yaml:"terrain_texture"`
	VehicleMesh    string       `yaml:"vehicle_mesh"`
	VehicleTexture string       `yaml:"vehicle_texture"`
	ShaderDir      string       `yaml:"shader_dir"`
	Skybox         SkyboxConfig `yaml:"skybox"`

	// Vehicle mesh build options.
	VehicleReverseWinding bool `yaml:"vehicle_reverse_winding"` // For mirrored exports
	VehicleSmoothNormals  bool `yaml:"vehicle_smooth_normals"`
	VehicleCenter         bool `yaml:"vehicle_center"` // Center the model on X/Z
}

// SceneConfig holds rendering and camera settings.
type SceneConfig struct {
	Wireframe   bool    `yaml:"wireframe"`
	ShowNormals bool    `yaml:"show_normals"`
	FOV         float32 `yaml:"fov"` // Vertical field of view in degrees
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`

	CubePosition [3]float32 `yaml:"cube_position"`
	CubeScale    float32    `yaml:"cube_scale"`
	CubeSpinRate float32    `yaml:"cube_spin_rate"` // Radians per second

	CameraFit        bool       `yaml:"camera_fit"` // Frame the terrain instead of using CameraPosition
	CameraPosition   [3]float32 `yaml:"camera_position"`
	CameraSpeed      float32    `yaml:"camera_speed"` // World units per second
	MouseSensitivity float32    `yaml:"mouse_sensitivity"`

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:       "3GP",
			Width:       1280,
			Height:      720,
			Fullscreen:  false,
			VSync:       true,
			ErrorDialog: true,
		},
		Terrain: TerrainConfig{
			CellsX:      500,
			CellsZ:      500,
			Noise:       true,
			ExtraNoise:  false,
			NoiseSource: "hash",
		},
		Assets: AssetsConfig{
			Roots:          []string{"Data"},
			Heightmap:      "Heightmaps/sf1.gif",
			TerrainTexture: "Textures/redblue.jpg",
			VehicleMesh:    "Models/Jeep/jeep.obj",
			VehicleTexture: "Models/Jeep/jeep_rood.jpg",
			ShaderDir:      "Shaders",
			Skybox: SkyboxConfig{
				Right: "Models/Sky/Mars/Mar_R.dds",
				Left:  "Models/Sky/Mars/Mar_L.dds",
				Up:    "Models/Sky/Mars/Mar_U.dds",
				Down:  "Models/Sky/Mars/Mar_D.dds",
				Front: "Models/Sky/Mars/Mar_F.dds",
				Back:  "Models/Sky/Mars/Mar_B.dds",
			},
		},
		Scene: SceneConfig{
			FOV:              45,
			Near:             1,
			Far:              7500,
			CubePosition:     [3]float32{1000, 500, 500},
			CubeScale:        10,
			CubeSpinRate:     0.06,
			CameraFit:        true,
			CameraPosition:   [3]float32{0, 400, -200},
			CameraSpeed:      400,
			MouseSensitivity: 0.15,
			ScreenshotDir:    "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
