package stabilize

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/framewright/stabilize/internal/units"
)

// Report holds aggregate quality metrics for a stabilization pass.
// Purely informational: nothing downstream branches on it.
type Report struct {
	FramePairs int `json:"frame_pairs"`

	// Per-channel variance of the raw and smoothed motion. For any
	// non-constant raw signal and smoothness above the no-op threshold
	// the smoothed variance is strictly lower.
	RawVarianceDX       float64 `json:"raw_variance_dx"`
	RawVarianceDY       float64 `json:"raw_variance_dy"`
	RawVarianceRot      float64 `json:"raw_variance_rot"`
	SmoothedVarianceDX  float64 `json:"smoothed_variance_dx"`
	SmoothedVarianceDY  float64 `json:"smoothed_variance_dy"`
	SmoothedVarianceRot float64 `json:"smoothed_variance_rot"`

	// VarianceReduction is 1 - smoothed/raw over the translation
	// channels combined; 0 when the raw signal is constant.
	VarianceReduction float64 `json:"variance_reduction"`

	// Correction magnitudes.
	MaxCorrectionPx  float64 `json:"max_correction_px"`
	MaxCorrectionDeg float64 `json:"max_correction_deg"`

	// Crop accounting: the border budget (pixels per side) implied by
	// the crop ratio and frame size, and how many corrections exceed it
	// (visible edge exposure the renderer cannot hide).
	CropBudgetPx      float64 `json:"crop_budget_px"`
	CropExceededCount int     `json:"crop_exceeded_count"`
}

// ComputeReport builds quality metrics from a completed pass.
// frameWidth/frameHeight size the crop budget; zero dimensions skip the
// crop accounting.
func ComputeReport(raw, smoothed MotionData, corrections []Correction, params Params, frameWidth, frameHeight int) *Report {
	r := &Report{FramePairs: raw.Len()}
	if raw.Len() == 0 {
		return r
	}

	r.RawVarianceDX = variance32(raw.DX)
	r.RawVarianceDY = variance32(raw.DY)
	r.RawVarianceRot = variance32(raw.Rotation)
	r.SmoothedVarianceDX = variance32(smoothed.DX)
	r.SmoothedVarianceDY = variance32(smoothed.DY)
	r.SmoothedVarianceRot = variance32(smoothed.Rotation)

	rawVar := r.RawVarianceDX + r.RawVarianceDY
	smoothVar := r.SmoothedVarianceDX + r.SmoothedVarianceDY
	if rawVar > 0 {
		r.VarianceReduction = 1.0 - smoothVar/rawVar
	}

	minDim := frameWidth
	if frameHeight < minDim {
		minDim = frameHeight
	}
	if minDim > 0 {
		r.CropBudgetPx = float64(minDim) * float64(1-params.CropRatio) / 2.0
	}

	for _, c := range corrections {
		mag := math.Hypot(float64(c.DX), float64(c.DY))
		if mag > r.MaxCorrectionPx {
			r.MaxCorrectionPx = mag
		}
		deg := math.Abs(units.RadToDeg(float64(c.Rotation)))
		if deg > r.MaxCorrectionDeg {
			r.MaxCorrectionDeg = deg
		}
		if minDim > 0 && mag > r.CropBudgetPx {
			r.CropExceededCount++
		}
	}
	return r
}

func variance32(data []float32) float64 {
	if len(data) < 2 {
		return 0
	}
	f64 := make([]float64, len(data))
	for i, v := range data {
		f64[i] = float64(v)
	}
	return stat.Variance(f64, nil)
}
