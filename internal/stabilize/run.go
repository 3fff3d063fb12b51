package stabilize

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/framewright/stabilize/internal/imaging"
	"github.com/framewright/stabilize/internal/monitoring"
	"github.com/framewright/stabilize/internal/timeutil"
)

// AnalysisRun records one complete stabilization pass with the
// parameters that produced it, for reproducibility when callers persist
// results externally.
type AnalysisRun struct {
	RunID      string        `json:"run_id"`
	Params     Params        `json:"params"`
	FrameCount int           `json:"frame_count"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration_ns"`
	Report     *Report       `json:"report"`
}

// Result bundles everything the external rendering stage needs from a
// pass: the raw and smoothed motion (indexed identically to the input
// frame-pair ordering), the per-pair corrections, and the run record.
type Result struct {
	Raw         MotionData   `json:"raw"`
	Smoothed    MotionData   `json:"smoothed"`
	Corrections []Correction `json:"corrections"`
	Run         AnalysisRun  `json:"run"`
}

// Engine runs stabilization passes. The zero value is not usable; use
// NewEngine, which wires the real clock.
type Engine struct {
	Clock timeutil.Clock
}

// NewEngine returns an Engine backed by the system clock.
func NewEngine() *Engine {
	return &Engine{Clock: timeutil.RealClock{}}
}

// Stabilize runs the full pipeline over a clip: analyze raw motion,
// smooth the camera path, and derive per-pair corrections. Degenerate
// clips (zero or one frame) produce a valid empty result. The only
// error is a context cancellation surfaced from the analysis stage.
func (e *Engine) Stabilize(ctx context.Context, frames []*imaging.GrayImage, params Params) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	started := e.Clock.Now()
	raw, err := AnalyzeMotion(ctx, frames, params)
	if err != nil {
		return nil, err
	}
	smoothed := SmoothMotion(raw, params)
	corrections := ComputeCorrection(raw, smoothed)

	var w, h int
	if len(frames) > 0 {
		w, h = frames[0].Width, frames[0].Height
	}
	report := ComputeReport(raw, smoothed, corrections, params, w, h)

	run := AnalysisRun{
		RunID:      uuid.NewString(),
		Params:     params,
		FrameCount: len(frames),
		StartedAt:  started,
		Duration:   e.Clock.Since(started),
		Report:     report,
	}
	monitoring.Logf("stabilize: run %s method=%s frames=%d pairs=%d variance_reduction=%.3f duration=%s",
		run.RunID, params.Method, len(frames), raw.Len(), report.VarianceReduction, run.Duration)

	return &Result{
		Raw:         raw,
		Smoothed:    smoothed,
		Corrections: corrections,
		Run:         run,
	}, nil
}

// Stabilize runs a pass with a default Engine. Convenience for callers
// that do not need clock injection.
func Stabilize(ctx context.Context, frames []*imaging.GrayImage, params Params) (*Result, error) {
	return NewEngine().Stabilize(ctx, frames, params)
}
