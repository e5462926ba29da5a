package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile    = flag.String("log-file", "", "Write logs to this file as well")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagCells      = flag.Int("cells", 0, "Terrain cells along both axes")
	flagNoNoise    = flag.Bool("no-noise", false, "Disable terrain noise")
	flagExtraNoise = flag.Bool("extra-noise", false, "Use the attenuated noise amplitude")
	flagWireframe  = flag.Bool("wireframe", false, "Start in wireframe mode")
	flagAssets     = flag.String("assets", "", "Extra asset root, searched before the configured ones")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagCells > 0 {
		cfg.Terrain.CellsX = *flagCells
		cfg.Terrain.CellsZ = *flagCells
	}
	if *flagNoNoise {
		cfg.Terrain.Noise = false
	}
	if *flagExtraNoise {
		cfg.Terrain.ExtraNoise = true
	}
	if *flagWireframe {
		cfg.Scene.Wireframe = true
	}
	if *flagAssets != "" {
		cfg.Assets.Roots = append(cfg.Assets.Roots, *flagAssets)
	}
}
