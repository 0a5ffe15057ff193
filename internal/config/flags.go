package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging and overlay output")
	flagTarget      = flag.String("target", "", "Dataset target path")
	flagSplit       = flag.String("split", "", "Dataset split name")
	flagBackgrounds = flag.String("backgrounds", "", "Background images directory")
	flagResume      = flag.Bool("resume", false, "Skip frames already present in the metadata file")
	flagWidth       = flag.Int("width", 0, "Render width")
	flagHeight      = flag.Int("height", 0, "Render height")
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
		cfg.Render.Debug = true
	}
	if *flagTarget != "" {
		cfg.Render.TargetPath = *flagTarget
	}
	if *flagSplit != "" {
		cfg.Render.Split = *flagSplit
	}
	if *flagBackgrounds != "" {
		cfg.Scene.BackgroundDir = *flagBackgrounds
	}
	if *flagResume {
		cfg.Render.Resume = true
	}
	if *flagWidth > 0 {
		cfg.Render.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Render.Height = *flagHeight
	}
}
