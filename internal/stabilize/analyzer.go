package stabilize

import (
	"context"
	"math"
	"runtime"
	"sync"

	"github.com/framewright/stabilize/internal/imaging"
	"github.com/framewright/stabilize/internal/monitoring"
	"github.com/framewright/stabilize/internal/track"
	"github.com/framewright/stabilize/internal/units"
)

// AnalyzeMotion estimates raw camera motion for every adjacent frame
// pair. Each pair seeds a fresh point tracker on a regular grid (inset
// from the border by the grid spacing), tracks once, and averages the
// displacement of the points that survived. Lost points are excluded
// entirely; a pair where no point survives yields zero motion, which is
// degenerate but valid output, not an error.
//
// Pairs are independent and run on a worker pool. Cancellation is
// cooperative between pairs; ctx.Err() is the only error returned.
// Fewer than two frames yield empty MotionData.
func AnalyzeMotion(ctx context.Context, frames []*imaging.GrayImage, params Params) (MotionData, error) {
	if len(frames) < 2 {
		return NewMotionData(0), nil
	}
	n := len(frames) - 1
	motion := NewMotionData(n)

	workers := params.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				// Each index is written by exactly one worker.
				dx, dy, rot := analyzePair(frames[i], frames[i+1], params)
				motion.DX[i] = dx
				motion.DY[i] = dy
				motion.Rotation[i] = rot
				monitoring.Debugf("pair %d: dx=%.3f dy=%.3f rot=%.5f", i, dx, dy, rot)
			}
		}()
	}

feed:
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return NewMotionData(0), err
	}
	return motion, nil
}

// analyzePair runs one tracker pass over one frame pair and aggregates
// the surviving displacements into a single motion sample.
func analyzePair(prev, curr *imaging.GrayImage, params Params) (dx, dy, rot float32) {
	tracker := track.NewPointTracker(params.KLT)
	spacing := params.GridSpacing
	for y := spacing; y < prev.Height-spacing; y += spacing {
		for x := spacing; x < prev.Width-spacing; x += spacing {
			tracker.AddPoint(float32(x), float32(y))
		}
	}
	if tracker.Len() == 0 {
		return 0, 0, 0
	}
	tracker.TrackFrame(prev, curr)

	var sumDX, sumDY float32
	count := 0
	for i := 0; i < tracker.Len(); i++ {
		if tracker.Lost[i] {
			continue
		}
		sumDX += tracker.PosX[i] - tracker.OrigX[i]
		sumDY += tracker.PosY[i] - tracker.OrigY[i]
		count++
	}
	if count == 0 {
		return 0, 0, 0
	}
	dx = sumDX / float32(count)
	dy = sumDY / float32(count)

	if params.Method != units.Translation && count >= 2 {
		rot = estimateRotation(tracker)
	}
	return dx, dy, rot
}

// estimateRotation fits the least-squares rigid rotation of surviving
// points about their centroid (2D Procrustes): the angle whose tangent
// is the ratio of summed cross to summed dot products of the centered
// before/after positions.
func estimateRotation(t *track.PointTracker) float32 {
	var pcx, pcy, qcx, qcy float64
	count := 0
	for i := 0; i < t.Len(); i++ {
		if t.Lost[i] {
			continue
		}
		pcx += float64(t.OrigX[i])
		pcy += float64(t.OrigY[i])
		qcx += float64(t.PosX[i])
		qcy += float64(t.PosY[i])
		count++
	}
	if count < 2 {
		return 0
	}
	fc := float64(count)
	pcx /= fc
	pcy /= fc
	qcx /= fc
	qcy /= fc

	var dot, cross float64
	for i := 0; i < t.Len(); i++ {
		if t.Lost[i] {
			continue
		}
		px := float64(t.OrigX[i]) - pcx
		py := float64(t.OrigY[i]) - pcy
		qx := float64(t.PosX[i]) - qcx
		qy := float64(t.PosY[i]) - qcy
		dot += px*qx + py*qy
		cross += px*qy - py*qx
	}
	if dot == 0 && cross == 0 {
		return 0
	}
	return float32(math.Atan2(cross, dot))
}
