// Package config handles dataset generation configuration loading and management.
package config

// Config holds all generator settings.
type Config struct {
	Scene   SceneConfig   `yaml:"scene"`
	Sweep   SweepConfig   `yaml:"sweep"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

// SceneConfig describes the scene and the named roles within it.
type SceneConfig struct {
	Name         string   `yaml:"name"`
	Path         string   `yaml:"path"`
	CameraNames  []string `yaml:"camera_names"`
	AxisNames    []string `yaml:"axis_names"`
	LightNames   []string `yaml:"light_names"`
	ElementNames []string `yaml:"element_names"`

	// Categories optionally maps element names to stable category ids.
	// Elements not listed fall back to their position in ElementNames.
	Categories map[string]int `yaml:"categories"`

	BackgroundDir        string     `yaml:"background_dir"`
	BackgroundExtensions []string   `yaml:"background_extensions"`
	SolidColor           [3]float64 `yaml:"solid_color"`
}

// Range describes an inclusive sampled value range.
type Range struct {
	From float64 `yaml:"from"`
	To   float64 `yaml:"to"`
	Step float64 `yaml:"step"`
}

// SweepConfig describes the pose sweep over the scene.
type SweepConfig struct {
	Yaw          Range `yaml:"yaw"`
	Roll         Range `yaml:"roll"`
	CameraHeight Range `yaml:"camera_height"`
	LightEnergy  Range `yaml:"light_energy"`
}

// RenderConfig holds output settings.
type RenderConfig struct {
	TargetPath string `yaml:"target_path"`
	Split      string `yaml:"split"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Labels     bool   `yaml:"labels"`
	Debug      bool   `yaml:"debug"`
	Resume     bool   `yaml:"resume"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Scene: SceneConfig{
			Name:                 "Scene",
			CameraNames:          []string{"Camera"},
			AxisNames:            []string{"Axis"},
			LightNames:           []string{"Light"},
			BackgroundExtensions: []string{"png", "jpg", "jpeg", "tiff", "bmp"},
			SolidColor:           [3]float64{0.05, 0.05, 0.05},
		},
		Sweep: SweepConfig{
			Yaw:          Range{From: 0, To: 6.28, Step: 0.785},
			Roll:         Range{From: 0, To: 0, Step: 1},
			CameraHeight: Range{From: 2, To: 2, Step: 1},
			LightEnergy:  Range{From: 1000, To: 1000, Step: 1},
		},
		Render: RenderConfig{
			TargetPath: "dataset",
			Split:      "train",
			Width:      1024,
			Height:     768,
			Labels:     true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
