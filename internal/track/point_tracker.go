package track

import (
	"math"

	"github.com/framewright/stabilize/internal/imaging"
)

// KLTConfig holds the tunable parameters of the pyramidal Lucas-Kanade
// solve. All thresholds are explicit configuration rather than buried
// constants so analysis passes can be reproduced from a recorded config.
type KLTConfig struct {
	WindowSize     int     // Side length of the square matching window (pixels, full resolution)
	PyramidLevels  int     // Coarse-to-fine levels searched per frame pair
	MaxIterations  int     // Iteration cap per pyramid level
	Epsilon        float32 // Convergence threshold on the per-iteration step (pixels)
	MinDeterminant float32 // Below this the gradient matrix counts as singular (textureless)
	MaxResidual    float32 // Mean absolute intensity residual above which a point is lost
	SearchRadius   float32 // Maximum plausible displacement per frame pair (pixels)
}

// DefaultKLTConfig returns the production-default solve parameters.
func DefaultKLTConfig() KLTConfig {
	return KLTConfig{
		WindowSize:     21,
		PyramidLevels:  3,
		MaxIterations:  30,
		Epsilon:        0.01,
		MinDeterminant: 1e-6,
		MaxResidual:    0.25,
		SearchRadius:   21.0,
	}
}

// PointTracker tracks a batch of feature points between adjacent frames.
//
// Point state is laid out as parallel slices (structure-of-arrays) rather
// than one object per point: points are created in batches and iterated
// in bulk every frame pair, so the bulk update walks flat arrays. A
// tracker instance corresponds to one analysis pass over one frame pair;
// it is not shared across goroutines.
type PointTracker struct {
	PosX, PosY   []float32 // Current refined positions
	OrigX, OrigY []float32 // Positions at seeding time
	Confidence   []float32 // [0,1]; 0 once lost
	Lost         []bool    // Terminal within a pass

	Config KLTConfig
}

// NewPointTracker creates an empty tracker with the given configuration.
func NewPointTracker(cfg KLTConfig) *PointTracker {
	return &PointTracker{Config: cfg}
}

// AddPoint seeds a new active point at floating-point image coordinates.
func (t *PointTracker) AddPoint(x, y float32) {
	t.PosX = append(t.PosX, x)
	t.PosY = append(t.PosY, y)
	t.OrigX = append(t.OrigX, x)
	t.OrigY = append(t.OrigY, y)
	t.Confidence = append(t.Confidence, 1.0)
	t.Lost = append(t.Lost, false)
}

// Len returns the total number of seeded points.
func (t *PointTracker) Len() int { return len(t.PosX) }

// ActiveCount returns the number of points not yet lost.
func (t *PointTracker) ActiveCount() int {
	n := 0
	for _, lost := range t.Lost {
		if !lost {
			n++
		}
	}
	return n
}

// TrackFrame advances every active point from prev to curr using the
// pyramidal refinement. Individual point loss is the only failure mode;
// the call itself never fails and never reads outside image bounds (all
// sampling goes through the clamped accessor).
func (t *PointTracker) TrackFrame(prev, curr *imaging.GrayImage) {
	prevPyr := imaging.BuildPyramid(prev, t.Config.PyramidLevels)
	currPyr := imaging.BuildPyramid(curr, t.Config.PyramidLevels)

	for i := range t.PosX {
		if t.Lost[i] {
			continue
		}
		nx, ny, residual, ok := t.refine(prevPyr, currPyr, t.PosX[i], t.PosY[i])
		if !ok {
			t.markLost(i)
			continue
		}
		dx := nx - t.PosX[i]
		dy := ny - t.PosY[i]
		dist := float32(math.Hypot(float64(dx), float64(dy)))
		switch {
		case dist > t.Config.SearchRadius:
			t.markLost(i)
		case !curr.Contains(nx, ny):
			t.markLost(i)
		case residual > t.Config.MaxResidual:
			t.markLost(i)
		default:
			t.PosX[i] = nx
			t.PosY[i] = ny
			c := 1.0 - residual/t.Config.MaxResidual
			if c < 0 {
				c = 0
			}
			t.Confidence[i] = c
		}
	}
}

func (t *PointTracker) markLost(i int) {
	t.Lost[i] = true
	t.Confidence[i] = 0
}

// refine runs the coarse-to-fine normal-equations solve for one point.
// Returns the refined position and the finest-level mean absolute
// residual. ok is false when the gradient matrix is singular at the
// finest level (textureless region, no trustworthy solution).
func (t *PointTracker) refine(prevPyr, currPyr *imaging.Pyramid, x, y float32) (nx, ny, residual float32, ok bool) {
	levels := len(prevPyr.Levels)
	var gx, gy float32 // accumulated displacement, full-resolution units

	for level := levels - 1; level >= 0; level-- {
		scale := float32(1.0) / float32(int(1)<<level)
		px := x * scale
		py := y * scale
		prevImg := prevPyr.Levels[level]
		currImg := currPyr.Levels[level]
		hw := int(float32(t.Config.WindowSize) * scale * 0.5)

		// Spatial gradient matrix over the window. Constant across
		// iterations because it only samples the previous frame.
		var g11, g12, g22 float32
		for wy := -hw; wy <= hw; wy++ {
			for wx := -hw; wx <= hw; wx++ {
				ix := (prevImg.At(int(px)+wx+1, int(py)+wy) - prevImg.At(int(px)+wx-1, int(py)+wy)) * 0.5
				iy := (prevImg.At(int(px)+wx, int(py)+wy+1) - prevImg.At(int(px)+wx, int(py)+wy-1)) * 0.5
				g11 += ix * ix
				g12 += ix * iy
				g22 += iy * iy
			}
		}

		det := g11*g22 - g12*g12
		if absf(det) < t.Config.MinDeterminant {
			if level == 0 {
				return 0, 0, 0, false
			}
			// Coarse level without texture: carry the guess down.
			continue
		}
		invDet := 1.0 / det

		dx := gx * scale
		dy := gy * scale

		for iter := 0; iter < t.Config.MaxIterations; iter++ {
			var bx, by float32
			for wy := -hw; wy <= hw; wy++ {
				for wx := -hw; wx <= hw; wx++ {
					ix := (prevImg.At(int(px)+wx+1, int(py)+wy) - prevImg.At(int(px)+wx-1, int(py)+wy)) * 0.5
					iy := (prevImg.At(int(px)+wx, int(py)+wy+1) - prevImg.At(int(px)+wx, int(py)+wy-1)) * 0.5
					it := currImg.At(int(px+dx)+wx, int(py+dy)+wy) - prevImg.At(int(px)+wx, int(py)+wy)
					bx += ix * it
					by += iy * it
				}
			}
			ddx := invDet * (g22*bx - g12*by)
			ddy := invDet * (-g12*bx + g11*by)
			dx -= ddx
			dy -= ddy
			if ddx*ddx+ddy*ddy < t.Config.Epsilon*t.Config.Epsilon {
				break
			}
		}
		gx = dx / scale
		gy = dy / scale

		if level == 0 {
			residual = t.windowResidual(prevImg, currImg, px, py, dx, dy, hw)
		}
	}

	return x + gx, y + gy, residual, true
}

// windowResidual measures the mean absolute intensity mismatch between
// the reference window and the refined window in the current frame.
func (t *PointTracker) windowResidual(prevImg, currImg *imaging.GrayImage, px, py, dx, dy float32, hw int) float32 {
	var sum float32
	var count int
	for wy := -hw; wy <= hw; wy++ {
		for wx := -hw; wx <= hw; wx++ {
			d := currImg.At(int(px+dx)+wx, int(py+dy)+wy) - prevImg.At(int(px)+wx, int(py)+wy)
			sum += absf(d)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float32(count)
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
