package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/blobstats/internal/vision/l1math"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig holds the tuning parameters of the vision pipeline and the
// synthetic scene used by the developer tools. Fields are pointers so a
// partial JSON file only overrides what it names.
type TuningConfig struct {
	// Grid and mask params
	ReductionFactor   *float64 `json:"reduction_factor,omitempty"`
	BinarizeThreshold *int     `json:"binarize_threshold,omitempty"`

	// Colour comparison params
	HSVDiscriminance  *string  `json:"hsv_discriminance,omitempty"` // "high" or "low"
	SameColorDistance *float64 `json:"same_color_distance,omitempty"`

	// Body filtering
	MinBodyMass *int `json:"min_body_mass,omitempty"`

	// Synthetic scene params
	CanvasWidth      *int `json:"canvas_width,omitempty"`
	CanvasHeight     *int `json:"canvas_height,omitempty"`
	BlockGranularity *int `json:"block_granularity,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from the defaults file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// DefaultTuningConfig returns a TuningConfig with every field set to the
// value its getter falls back to.
func DefaultTuningConfig() *TuningConfig {
	return &TuningConfig{
		ReductionFactor:   ptrFloat64(defaultReductionFactor),
		BinarizeThreshold: ptrInt(defaultBinarizeThreshold),
		HSVDiscriminance:  ptrString(defaultHSVDiscriminance),
		SameColorDistance: ptrFloat64(l1math.DefaultSameColorDistance),
		MinBodyMass:       ptrInt(defaultMinBodyMass),
		CanvasWidth:       ptrInt(defaultCanvasWidth),
		CanvasHeight:      ptrInt(defaultCanvasHeight),
		BlockGranularity:  ptrInt(defaultBlockGranularity),
	}
}

const (
	defaultReductionFactor   = 0.1
	defaultBinarizeThreshold = 127
	defaultHSVDiscriminance  = "high"
	defaultMinBodyMass       = 1
	defaultCanvasWidth       = 200
	defaultCanvasHeight      = 100
	defaultBlockGranularity  = 3
)

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// The Get* methods provide fallback defaults for any fields not
	// specified in the JSON.
	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from DefaultConfigPath.
// It searches for the file in the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,       // from internal/config/
		"../../../" + DefaultConfigPath,    // from internal/vision/l5blobs/
		"../../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	if c.ReductionFactor != nil {
		if rf := *c.ReductionFactor; !(rf > 0 && rf < 1) {
			return fmt.Errorf("reduction_factor must be in (0, 1), got %f", rf)
		}
	}

	if c.BinarizeThreshold != nil {
		if v := *c.BinarizeThreshold; v < 0 || v > 255 {
			return fmt.Errorf("binarize_threshold must be between 0 and 255, got %d", v)
		}
	}

	if c.HSVDiscriminance != nil {
		if _, ok := l1math.ParseDiscriminance(*c.HSVDiscriminance); !ok {
			return fmt.Errorf("hsv_discriminance must be \"high\" or \"low\", got %q", *c.HSVDiscriminance)
		}
	}

	if c.SameColorDistance != nil && *c.SameColorDistance <= 0 {
		return fmt.Errorf("same_color_distance must be positive, got %f", *c.SameColorDistance)
	}

	if c.MinBodyMass != nil && *c.MinBodyMass < 0 {
		return fmt.Errorf("min_body_mass must be non-negative, got %d", *c.MinBodyMass)
	}

	if c.CanvasWidth != nil && *c.CanvasWidth <= 0 {
		return fmt.Errorf("canvas_width must be positive, got %d", *c.CanvasWidth)
	}
	if c.CanvasHeight != nil && *c.CanvasHeight <= 0 {
		return fmt.Errorf("canvas_height must be positive, got %d", *c.CanvasHeight)
	}

	if c.BlockGranularity != nil && *c.BlockGranularity < 1 {
		return fmt.Errorf("block_granularity must be at least 1, got %d", *c.BlockGranularity)
	}

	return nil
}

// GetReductionFactor returns the reduction_factor value or the default.
func (c *TuningConfig) GetReductionFactor() float64 {
	if c.ReductionFactor == nil {
		return defaultReductionFactor
	}
	return *c.ReductionFactor
}

// GetBinarizeThreshold returns the binarize_threshold value or the default.
func (c *TuningConfig) GetBinarizeThreshold() uint8 {
	if c.BinarizeThreshold == nil {
		return defaultBinarizeThreshold
	}
	return uint8(max(0, min(255, *c.BinarizeThreshold)))
}

// GetHSVDiscriminance returns the parsed hsv_discriminance value or the
// default.
func (c *TuningConfig) GetHSVDiscriminance() l1math.Discriminance {
	if c.HSVDiscriminance == nil {
		return l1math.DiscriminanceHigh
	}
	d, _ := l1math.ParseDiscriminance(*c.HSVDiscriminance)
	return d
}

// GetSameColorDistance returns the same_color_distance value or the default.
func (c *TuningConfig) GetSameColorDistance() float64 {
	if c.SameColorDistance == nil {
		return l1math.DefaultSameColorDistance
	}
	return *c.SameColorDistance
}

// GetMinBodyMass returns the min_body_mass value or the default.
func (c *TuningConfig) GetMinBodyMass() int {
	if c.MinBodyMass == nil {
		return defaultMinBodyMass
	}
	return *c.MinBodyMass
}

// GetCanvasWidth returns the canvas_width value or the default.
func (c *TuningConfig) GetCanvasWidth() int {
	if c.CanvasWidth == nil {
		return defaultCanvasWidth
	}
	return *c.CanvasWidth
}

// GetCanvasHeight returns the canvas_height value or the default.
func (c *TuningConfig) GetCanvasHeight() int {
	if c.CanvasHeight == nil {
		return defaultCanvasHeight
	}
	return *c.CanvasHeight
}

// GetBlockGranularity returns the block_granularity value or the default.
func (c *TuningConfig) GetBlockGranularity() int {
	if c.BlockGranularity == nil {
		return defaultBlockGranularity
	}
	return *c.BlockGranularity
}
