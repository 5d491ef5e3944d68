package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/menta2k/crop-engine/pkg/restrictions"
)

// Config holds the application configuration
type Config struct {
	Cropper CropperConfig `json:"cropper"`
	Gesture GestureConfig `json:"gesture"`
	Output  OutputConfig  `json:"output"`
}

// CropperConfig holds configuration for the geometry engine
type CropperConfig struct {
	Mode          string  `json:"mode"`
	MinWidth      float64 `json:"min_width"`
	MinHeight     float64 `json:"min_height"`
	MaxWidth      float64 `json:"max_width"`
	MaxHeight     float64 `json:"max_height"`
	LimitUnit     string  `json:"limit_unit"`
	AspectMin     float64 `json:"aspect_min"`
	AspectMax     float64 `json:"aspect_max"`
	DefaultSize   float64 `json:"default_size"`
	AdjustStencil bool    `json:"adjust_stencil"`
	FitContainer  bool    `json:"fit_container"`
}

// GestureConfig holds configuration for input normalization
type GestureConfig struct {
	WheelSpeed      float64 `json:"wheel_speed"`
	MinResizeExtent float64 `json:"min_resize_extent"`
}

// OutputConfig holds configuration for output generation
type OutputConfig struct {
	DefaultFormat string `json:"default_format"`
	OutputDir     string `json:"output_dir"`
	Prefix        string `json:"prefix"`
	Suffix        string `json:"suffix"`
	Quality       int    `json:"quality"`
	Lossless      bool   `json:"lossless"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Cropper: CropperConfig{
			Mode:          string(restrictions.ModeArea),
			LimitUnit:     string(restrictions.UnitPercent),
			DefaultSize:   0.8,
			AdjustStencil: true,
		},
		Gesture: GestureConfig{
			WheelSpeed:      0.1,
			MinResizeExtent: 0,
		},
		Output: OutputConfig{
			DefaultFormat: "jpg",
			OutputDir:     "./output",
			Prefix:        "",
			Suffix:        "_cropped",
			Quality:       90,
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if !restrictions.Mode(c.Cropper.Mode).Valid() {
		return fmt.Errorf("cropper.mode must be one of none, stencil, area")
	}

	unit := restrictions.Unit(c.Cropper.LimitUnit)
	if unit != restrictions.UnitPercent && unit != restrictions.UnitPixels {
		return fmt.Errorf("cropper.limit_unit must be percent or pixels")
	}

	if c.Cropper.MinWidth < 0 || c.Cropper.MinHeight < 0 {
		return fmt.Errorf("cropper minimum dimensions cannot be negative")
	}

	if c.Cropper.MaxWidth < 0 || c.Cropper.MaxHeight < 0 {
		return fmt.Errorf("cropper maximum dimensions cannot be negative")
	}

	if c.Cropper.AspectMin < 0 || c.Cropper.AspectMax < 0 {
		return fmt.Errorf("cropper aspect ratio bounds cannot be negative")
	}

	if c.Cropper.AspectMin != 0 && c.Cropper.AspectMax != 0 && c.Cropper.AspectMin > c.Cropper.AspectMax {
		return fmt.Errorf("cropper.aspect_min cannot exceed cropper.aspect_max")
	}

	if c.Cropper.DefaultSize <= 0 || c.Cropper.DefaultSize > 1 {
		return fmt.Errorf("cropper.default_size must be between 0 and 1")
	}

	if c.Gesture.WheelSpeed <= 0 || c.Gesture.WheelSpeed > 1 {
		return fmt.Errorf("gesture.wheel_speed must be between 0 and 1")
	}

	if c.Gesture.MinResizeExtent < 0 {
		return fmt.Errorf("gesture.min_resize_extent cannot be negative")
	}

	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		return fmt.Errorf("output.quality must be between 1 and 100")
	}

	return nil
}

// Limits converts the configured size bounds into engine limits
func (c *Config) Limits() restrictions.Limits {
	unit := restrictions.Unit(c.Cropper.LimitUnit)
	return restrictions.Limits{
		MinWidth:  restrictions.Limit{Value: c.Cropper.MinWidth, Unit: unit},
		MinHeight: restrictions.Limit{Value: c.Cropper.MinHeight, Unit: unit},
		MaxWidth:  restrictions.Limit{Value: c.Cropper.MaxWidth, Unit: unit},
		MaxHeight: restrictions.Limit{Value: c.Cropper.MaxHeight, Unit: unit},
	}
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "crop-engine", "config.json")
}
