// Package config loads and validates stabilization tuning parameters.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/framewright/stabilize/internal/stabilize"
	"github.com/framewright/stabilize/internal/track"
	"github.com/framewright/stabilize/internal/units"
)

// TuningConfig is the JSON schema for stabilization tuning. All fields
// are optional pointers so a partial file overrides only what it names;
// the Get* methods provide fallback defaults for everything else.
type TuningConfig struct {
	// Pipeline params
	Method      *string  `json:"method,omitempty"`
	Smoothness  *float64 `json:"smoothness,omitempty"`
	CropRatio   *float64 `json:"crop_ratio,omitempty"`
	GridSpacing *int     `json:"grid_spacing,omitempty"`
	Workers     *int     `json:"workers,omitempty"`

	// Point-tracker solve params
	WindowSize     *int     `json:"window_size,omitempty"`
	PyramidLevels  *int     `json:"pyramid_levels,omitempty"`
	MaxIterations  *int     `json:"max_iterations,omitempty"`
	Epsilon        *float64 `json:"epsilon,omitempty"`
	MinDeterminant *float64 `json:"min_determinant,omitempty"`
	MaxResidual    *float64 `json:"max_residual,omitempty"`
	SearchRadius   *float64 `json:"search_radius,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields unset, which
// resolves to defaults everywhere.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. Fields omitted
// from the file retain their defaults, so partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that any set fields carry values the pipeline can run
// with. Unset fields are always valid.
func (c *TuningConfig) Validate() error {
	if c.Method != nil && !units.IsValidMethod(*c.Method) {
		return fmt.Errorf("method must be one of %s, got %q", units.ValidMethodsString(), *c.Method)
	}
	if c.Smoothness != nil && *c.Smoothness < 0 {
		return fmt.Errorf("smoothness must be non-negative, got %f", *c.Smoothness)
	}
	if c.CropRatio != nil && (*c.CropRatio <= 0 || *c.CropRatio > 1) {
		return fmt.Errorf("crop_ratio must be in (0, 1], got %f", *c.CropRatio)
	}
	if c.GridSpacing != nil && *c.GridSpacing < 1 {
		return fmt.Errorf("grid_spacing must be >= 1, got %d", *c.GridSpacing)
	}
	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", *c.Workers)
	}
	if c.WindowSize != nil && *c.WindowSize < 3 {
		return fmt.Errorf("window_size must be >= 3, got %d", *c.WindowSize)
	}
	if c.PyramidLevels != nil && *c.PyramidLevels < 1 {
		return fmt.Errorf("pyramid_levels must be >= 1, got %d", *c.PyramidLevels)
	}
	if c.MaxIterations != nil && *c.MaxIterations < 1 {
		return fmt.Errorf("max_iterations must be >= 1, got %d", *c.MaxIterations)
	}
	if c.Epsilon != nil && *c.Epsilon <= 0 {
		return fmt.Errorf("epsilon must be positive, got %f", *c.Epsilon)
	}
	if c.MinDeterminant != nil && *c.MinDeterminant <= 0 {
		return fmt.Errorf("min_determinant must be positive, got %f", *c.MinDeterminant)
	}
	if c.MaxResidual != nil && *c.MaxResidual <= 0 {
		return fmt.Errorf("max_residual must be positive, got %f", *c.MaxResidual)
	}
	if c.SearchRadius != nil && *c.SearchRadius <= 0 {
		return fmt.Errorf("search_radius must be positive, got %f", *c.SearchRadius)
	}
	return nil
}

// Params resolves the config into pipeline parameters, applying defaults
// for every unset field.
func (c *TuningConfig) Params() stabilize.Params {
	p := stabilize.DefaultParams()
	if c.Method != nil {
		p.Method = *c.Method
	}
	if c.Smoothness != nil {
		p.Smoothness = float32(*c.Smoothness)
	}
	if c.CropRatio != nil {
		p.CropRatio = float32(*c.CropRatio)
	}
	if c.GridSpacing != nil {
		p.GridSpacing = *c.GridSpacing
	}
	if c.Workers != nil {
		p.Workers = *c.Workers
	}
	p.KLT = c.kltConfig(p.KLT)
	return p
}

// kltConfig overlays any set solver fields onto base.
func (c *TuningConfig) kltConfig(base track.KLTConfig) track.KLTConfig {
	if c.WindowSize != nil {
		base.WindowSize = *c.WindowSize
	}
	if c.PyramidLevels != nil {
		base.PyramidLevels = *c.PyramidLevels
	}
	if c.MaxIterations != nil {
		base.MaxIterations = *c.MaxIterations
	}
	if c.Epsilon != nil {
		base.Epsilon = float32(*c.Epsilon)
	}
	if c.MinDeterminant != nil {
		base.MinDeterminant = float32(*c.MinDeterminant)
	}
	if c.MaxResidual != nil {
		base.MaxResidual = float32(*c.MaxResidual)
	}
	if c.SearchRadius != nil {
		base.SearchRadius = float32(*c.SearchRadius)
	}
	return base
}
