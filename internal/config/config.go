package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// DefaultInputFile selects the built-in landmark layout.
const DefaultInputFile = "default"

// Config holds the run options. It is not modified after Load.
type Config struct {
	// Run
	Iterations   int    `yaml:"iterations"`
	SaveImage    bool   `yaml:"save_image"`
	SaveData     bool   `yaml:"save_data"`
	ShiftCamera  bool   `yaml:"shift"`
	RotateCamera bool   `yaml:"rotate"`
	ScaleFace    bool   `yaml:"scale"`
	Seed         uint64 `yaml:"seed"`

	// Paths
	InputFile     string `yaml:"input_file"`
	OutputFolder  string `yaml:"output_folder"`
	BackgroundDir string `yaml:"backgrounds"`
	ConfigFile    string `yaml:"-"`

	Timing  Timing  `yaml:"timing"`
	Capture Capture `yaml:"capture"`
}

// Timing holds the simulation constants. Only settable from a config file.
type Timing struct {
	FixedTimestep  float64 `yaml:"fixed_timestep"`  // seconds per tick
	Speed          float64 `yaml:"speed"`           // face sweep, degrees per second
	FinalFaceAngle float64 `yaml:"final_face_angle"` // degrees
	ShakeMagnitude float64 `yaml:"shake_magnitude"` // degrees per tick, per axis
	CamSpeed       float64 `yaml:"cam_speed"`       // rig units per second
}

// Capture holds the per-frame capture parameters.
type Capture struct {
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	Quality int `yaml:"quality"`
}

// Default returns the documented defaults.
func Default() Config {
	return Config{
		Iterations:   20,
		SaveImage:    false,
		SaveData:     true,
		ShiftCamera:  true,
		RotateCamera: true,
		ScaleFace:    false,
		InputFile:    DefaultInputFile,
		OutputFolder: "captures",
		Timing:       DefaultTiming(),
		Capture:      DefaultCapture(),
	}
}

func DefaultTiming() Timing {
	return Timing{
		FixedTimestep:  0.02,
		Speed:          400,
		FinalFaceAngle: 80,
		ShakeMagnitude: 3,
		CamSpeed:       5,
	}
}

func DefaultCapture() Capture {
	return Capture{Width: 960, Height: 540, Quality: 1}
}

// Load resolves the configuration from command-line arguments (without the
// program name). When -config names a YAML file its values replace the
// defaults, and the remaining flags override the file.
func Load(args []string) (Config, error) {
	base := Default()
	if path, ok := GetArg(args, "-config"); ok && path != "" {
		fileCfg, err := LoadFile(path, base)
		if err != nil {
			return Config{}, err
		}
		base = fileCfg
		base.ConfigFile = path
	}
	return Parse(args, base), nil
}

// LoadFile reads a YAML config file over base.
// Fields not set in the file keep the base values.
func LoadFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.Iterations < 0 {
		cfg.Iterations = base.Iterations
	}
	cfg.Resolve()
	return cfg, nil
}

// Parse scans args for the known flags, each followed by its value.
// A flag that is absent, has no value, or has a value that does not parse
// keeps its value from base. Parse never fails.
func Parse(args []string, base Config) Config {
	cfg := base

	if v, ok := GetArg(args, "-iterations"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n >= 0 {
			cfg.Iterations = n
		}
	}
	parseBoolArg(args, "-save_image", &cfg.SaveImage)
	parseBoolArg(args, "-save_data", &cfg.SaveData)
	parseBoolArg(args, "-shift", &cfg.ShiftCamera)
	parseBoolArg(args, "-rotate", &cfg.RotateCamera)
	parseBoolArg(args, "-scale", &cfg.ScaleFace)
	if v, ok := GetArg(args, "-seed"); ok {
		if n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64); err == nil {
			cfg.Seed = n
		}
	}
	parseStringArg(args, "-input_file", &cfg.InputFile)
	parseStringArg(args, "-output_folder", &cfg.OutputFolder)
	parseStringArg(args, "-backgrounds", &cfg.BackgroundDir)

	cfg.Resolve()
	return cfg
}

// Resolve fills any non-positive timing or capture constant with its default.
func (c *Config) Resolve() {
	dt, dc := DefaultTiming(), DefaultCapture()
	if c.Timing.FixedTimestep <= 0 {
		c.Timing.FixedTimestep = dt.FixedTimestep
	}
	if c.Timing.Speed <= 0 {
		c.Timing.Speed = dt.Speed
	}
	if c.Timing.FinalFaceAngle <= 0 {
		c.Timing.FinalFaceAngle = dt.FinalFaceAngle
	}
	if c.Timing.ShakeMagnitude < 0 {
		c.Timing.ShakeMagnitude = dt.ShakeMagnitude
	}
	if c.Timing.CamSpeed <= 0 {
		c.Timing.CamSpeed = dt.CamSpeed
	}
	if c.Capture.Width <= 0 {
		c.Capture.Width = dc.Width
	}
	if c.Capture.Height <= 0 {
		c.Capture.Height = dc.Height
	}
	if c.Capture.Quality <= 0 {
		c.Capture.Quality = dc.Quality
	}
	if c.InputFile == "" {
		c.InputFile = DefaultInputFile
	}
}

// GetArg returns the value following the first occurrence of name.
func GetArg(args []string, name string) (string, bool) {
	for i := 0; i < len(args); i++ {
		if args[i] == name && len(args) > i+1 {
			return args[i+1], true
		}
	}
	return "", false
}

func parseBoolArg(args []string, name string, dst *bool) {
	v, ok := GetArg(args, name)
	if !ok {
		return
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true":
		*dst = true
	case "false":
		*dst = false
	}
}

func parseStringArg(args []string, name string, dst *string) {
	if v, ok := GetArg(args, name); ok && v != "" {
		*dst = v
	}
}

// Log reports the resolved values.
func (c Config) Log(logger zerolog.Logger) {
	logger.Info().Msg("Parsing command line options")
	if c.ConfigFile != "" {
		logger.Info().Str("path", c.ConfigFile).Msg("Config file loaded")
	}
	logger.Info().Int("iterations", c.Iterations).Msgf("Running %d iterations", c.Iterations)
	logger.Info().Bool("save_image", c.SaveImage).Msg("Saving image to disk")
	logger.Info().Bool("save_data", c.SaveData).Msg("Saving data to disk")
	logger.Info().Bool("shift", c.ShiftCamera).Msg("Camera shift enabled")
	logger.Info().Bool("rotate", c.RotateCamera).Msg("Camera rotation enabled")
	logger.Info().Bool("scale", c.ScaleFace).Msg("Scaling face enabled")
	logger.Info().Str("input_file", c.InputFile).Msg("Input file")
	logger.Info().Str("output_folder", c.OutputFolder).Msg("Output folder")
	if c.BackgroundDir != "" {
		logger.Info().Str("backgrounds", c.BackgroundDir).Msg("Background plates")
	}
	logger.Debug().
		Float64("fixed_timestep", c.Timing.FixedTimestep).
		Float64("speed", c.Timing.Speed).
		Float64("final_face_angle", c.Timing.FinalFaceAngle).
		Float64("shake_magnitude", c.Timing.ShakeMagnitude).
		Float64("cam_speed", c.Timing.CamSpeed).
		Int("width", c.Capture.Width).
		Int("height", c.Capture.Height).
		Int("quality", c.Capture.Quality).
		Msg("Timing and capture constants")
}
