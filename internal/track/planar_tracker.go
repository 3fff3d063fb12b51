package track

import "github.com/framewright/stabilize/internal/imaging"

// PlanarConfig holds the tunables of the planar tracker's robust fit.
type PlanarConfig struct {
	KLT              KLTConfig
	GridSize         int     // Features seeded per region axis (GridSize^2 total)
	RANSACIterations int     // Candidate fits per Advance
	RANSACThreshold  float32 // Inlier reprojection distance (pixels)
	Seed             int64   // RANSAC sampler seed; fixed for reproducible passes
}

// DefaultPlanarConfig returns the production-default planar parameters.
func DefaultPlanarConfig() PlanarConfig {
	return PlanarConfig{
		KLT:              DefaultKLTConfig(),
		GridSize:         8,
		RANSACIterations: 1000,
		RANSACThreshold:  3.0,
		Seed:             12345,
	}
}

// PlanarRegion is a quadrilateral defined by four corners in clockwise
// order from top-left.
type PlanarRegion struct {
	Corners [4][2]float32
}

// PlanarTracker tracks a planar region under a perspective warp model.
// It seeds a regular grid of KLT features inside the region; each
// Advance tracks the grid, robustly fits a homography to the surviving
// matches, and moves the region corners through it. Same point-tracking
// contract as PointTracker, different warp model.
type PlanarTracker struct {
	Region PlanarRegion
	Config PlanarConfig

	points  *PointTracker
	initial [][2]float32
}

// NewPlanarTracker creates a tracker for the given region, seeding a
// GridSize x GridSize lattice of interior features by bilinear
// interpolation between the corners.
func NewPlanarTracker(region PlanarRegion, cfg PlanarConfig) *PlanarTracker {
	pt := &PlanarTracker{
		Region: region,
		Config: cfg,
		points: NewPointTracker(cfg.KLT),
	}
	gs := cfg.GridSize
	for gy := 0; gy < gs; gy++ {
		for gx := 0; gx < gs; gx++ {
			u := (float32(gx) + 0.5) / float32(gs)
			v := (float32(gy) + 0.5) / float32(gs)
			c := region.Corners
			topX := c[0][0] + (c[1][0]-c[0][0])*u
			topY := c[0][1] + (c[1][1]-c[0][1])*u
			botX := c[3][0] + (c[2][0]-c[3][0])*u
			botY := c[3][1] + (c[2][1]-c[3][1])*u
			px := topX + (botX-topX)*v
			py := topY + (botY-topY)*v
			pt.points.AddPoint(px, py)
			pt.initial = append(pt.initial, [2]float32{px, py})
		}
	}
	return pt
}

// AddFeature implements FeatureTracker. Extra features participate in
// the homography fit alongside the seeded grid.
func (p *PlanarTracker) AddFeature(x, y float32) {
	p.points.AddPoint(x, y)
	p.initial = append(p.initial, [2]float32{x, y})
}

// Advance implements FeatureTracker: tracks the feature grid and, when
// at least four features survive, advances the region corners through
// the RANSAC homography. Fewer than four survivors leave the region
// where it was; the next Advance may still recover.
func (p *PlanarTracker) Advance(prev, curr *imaging.GrayImage) {
	p.points.TrackFrame(prev, curr)
	src, dst := p.matches()
	if len(src) < 4 {
		return
	}
	h, ok := RANSACHomography(src, dst, p.Config.RANSACIterations, p.Config.RANSACThreshold, p.Config.Seed)
	if !ok {
		return
	}
	for i := range p.Region.Corners {
		x, y := p.Region.Corners[i][0], p.Region.Corners[i][1]
		if px, py, ok := h.Apply(x, y); ok {
			p.Region.Corners[i] = [2]float32{px, py}
		}
	}
}

// Results implements FeatureTracker.
func (p *PlanarTracker) Results() []TrackResult { return p.points.Results() }

// Homography returns the least-squares transform fitted from all
// surviving matches, or the identity when fewer than four survive.
func (p *PlanarTracker) Homography() Homography {
	src, dst := p.matches()
	if len(src) < 4 {
		return IdentityHomography()
	}
	h, ok := ComputeHomography(src, dst)
	if !ok {
		return IdentityHomography()
	}
	return h
}

// matches pairs initial positions with current positions for features
// that are still active.
func (p *PlanarTracker) matches() (src, dst [][2]float32) {
	for i := 0; i < p.points.Len(); i++ {
		if p.points.Lost[i] {
			continue
		}
		src = append(src, p.initial[i])
		dst = append(dst, [2]float32{p.points.PosX[i], p.points.PosY[i]})
	}
	return src, dst
}
