package stabilize

import (
	"fmt"

	"github.com/framewright/stabilize/internal/track"
	"github.com/framewright/stabilize/internal/units"
)

// Params configures a stabilization pass. All solver thresholds are
// explicit here so a pass can be reproduced from a recorded config.
type Params struct {
	// Method selects the warp model: units.Translation, units.Rotation,
	// or units.Perspective. Translation leaves the rotation channel at
	// zero.
	Method string `json:"method"`

	// Smoothness is the Gaussian sigma applied to the integrated camera
	// path, in frame-pair units. Below 0.5 smoothing is a no-op.
	Smoothness float32 `json:"smoothness"`

	// CropRatio is the fraction of the frame kept after correction;
	// the sacrificed border hides correction-induced edge exposure.
	// Must be in (0, 1].
	CropRatio float32 `json:"crop_ratio"`

	// GridSpacing is the feature-seeding grid pitch in pixels; the grid
	// is inset from the frame border by the same amount.
	GridSpacing int `json:"grid_spacing"`

	// KLT holds the point-tracker solve tunables used per frame pair.
	KLT track.KLTConfig `json:"klt"`

	// Workers bounds the motion-analysis worker pool; 0 means one
	// worker per CPU.
	Workers int `json:"workers,omitempty"`
}

// DefaultParams returns the production-default stabilization parameters.
func DefaultParams() Params {
	klt := track.DefaultKLTConfig()
	// Whole-clip analysis sees small inter-frame motion; two pyramid
	// levels keep the per-pair cost down.
	klt.PyramidLevels = 2
	return Params{
		Method:      units.Translation,
		Smoothness:  30.0,
		CropRatio:   0.9,
		GridSpacing: 40,
		KLT:         klt,
	}
}

// Validate checks the parameters for values the pipeline cannot run with.
func (p Params) Validate() error {
	if !units.IsValidMethod(p.Method) {
		return fmt.Errorf("invalid method %q (valid: %s)", p.Method, units.ValidMethodsString())
	}
	if p.Smoothness < 0 {
		return fmt.Errorf("smoothness must be >= 0, got %v", p.Smoothness)
	}
	if p.CropRatio <= 0 || p.CropRatio > 1 {
		return fmt.Errorf("crop ratio must be in (0, 1], got %v", p.CropRatio)
	}
	if p.GridSpacing < 1 {
		return fmt.Errorf("grid spacing must be >= 1, got %d", p.GridSpacing)
	}
	if p.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", p.Workers)
	}
	if p.KLT.PyramidLevels < 1 {
		return fmt.Errorf("pyramid levels must be >= 1, got %d", p.KLT.PyramidLevels)
	}
	if p.KLT.WindowSize < 3 {
		return fmt.Errorf("window size must be >= 3, got %d", p.KLT.WindowSize)
	}
	return nil
}
