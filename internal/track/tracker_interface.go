package track

import "github.com/framewright/stabilize/internal/imaging"

// TrackResult is the per-feature outcome of an Advance call.
type TrackResult struct {
	X, Y         float32 // Current position
	OrigX, OrigY float32 // Position at seeding time
	Confidence   float32 // [0,1]; 0 once lost
	Lost         bool
}

// Displacement returns the tracked motion since seeding.
func (r TrackResult) Displacement() (dx, dy float32) {
	return r.X - r.OrigX, r.Y - r.OrigY
}

// FeatureTracker abstracts the tracking backend behind one capability
// interface. The set of backends is closed and known at compile time:
// PointTracker (sparse KLT) and PlanarTracker (homography warp model).
type FeatureTracker interface {
	// AddFeature seeds a feature at floating-point image coordinates.
	AddFeature(x, y float32)

	// Advance moves every active feature from prev to curr. Individual
	// feature loss is the only failure mode; Advance never errors.
	Advance(prev, curr *imaging.GrayImage)

	// Results returns the per-feature state after the last Advance.
	Results() []TrackResult
}

// Compile-time checks that both backends satisfy the interface.
var (
	_ FeatureTracker = (*PointTracker)(nil)
	_ FeatureTracker = (*PlanarTracker)(nil)
)

// AddFeature implements FeatureTracker.
func (t *PointTracker) AddFeature(x, y float32) { t.AddPoint(x, y) }

// Advance implements FeatureTracker.
func (t *PointTracker) Advance(prev, curr *imaging.GrayImage) { t.TrackFrame(prev, curr) }

// Results implements FeatureTracker.
func (t *PointTracker) Results() []TrackResult {
	out := make([]TrackResult, t.Len())
	for i := range out {
		out[i] = TrackResult{
			X:          t.PosX[i],
			Y:          t.PosY[i],
			OrigX:      t.OrigX[i],
			OrigY:      t.OrigY[i],
			Confidence: t.Confidence[i],
			Lost:       t.Lost[i],
		}
	}
	return out
}
