package track

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Homography is a 3x3 projective transform, row-major, normalized so the
// bottom-right element is 1.
type Homography [9]float32

// IdentityHomography returns the identity transform.
func IdentityHomography() Homography {
	return Homography{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Apply maps a point through the homography. ok is false when the point
// projects to infinity (vanishing denominator).
func (h Homography) Apply(x, y float32) (px, py float32, ok bool) {
	w := h[6]*x + h[7]*y + h[8]
	if absf(w) < 1e-8 {
		return 0, 0, false
	}
	return (h[0]*x + h[1]*y + h[2]) / w, (h[3]*x + h[4]*y + h[5]) / w, true
}

// ComputeHomography fits the transform mapping src[i] to dst[i] with the
// direct linear transform: each correspondence contributes two rows to
// A·h = b for the eight unknowns (the ninth is fixed at 1). Four pairs
// give an exact solve; more give the least-squares fit. ok is false for
// fewer than four pairs or a degenerate configuration.
func ComputeHomography(src, dst [][2]float32) (Homography, bool) {
	n := len(src)
	if n < 4 || n != len(dst) {
		return IdentityHomography(), false
	}

	a := mat.NewDense(2*n, 8, nil)
	b := mat.NewVecDense(2*n, nil)
	for i := 0; i < n; i++ {
		x, y := float64(src[i][0]), float64(src[i][1])
		xp, yp := float64(dst[i][0]), float64(dst[i][1])
		r := 2 * i
		a.SetRow(r, []float64{x, y, 1, 0, 0, 0, -x * xp, -y * xp})
		b.SetVec(r, xp)
		a.SetRow(r+1, []float64{0, 0, 0, x, y, 1, -x * yp, -y * yp})
		b.SetVec(r+1, yp)
	}

	var sol mat.VecDense
	if err := sol.SolveVec(a, b); err != nil {
		return IdentityHomography(), false
	}

	var h Homography
	for i := 0; i < 8; i++ {
		v := sol.AtVec(i)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return IdentityHomography(), false
		}
		h[i] = float32(v)
	}
	h[8] = 1
	return h, true
}

// RANSACHomography robustly estimates a homography from noisy
// correspondences: repeatedly fits a candidate from four random pairs and
// keeps the one with the most inliers under the reprojection threshold.
// The sampler is seeded explicitly so a pass is reproducible. ok is false
// when no candidate could be fitted at all.
func RANSACHomography(src, dst [][2]float32, iterations int, threshold float32, seed int64) (Homography, bool) {
	n := len(src)
	if n < 4 || n != len(dst) {
		return IdentityHomography(), false
	}

	rng := rand.New(rand.NewSource(seed))
	var best Homography
	bestInliers := -1

	sample := make([][2]float32, 4)
	sampleDst := make([][2]float32, 4)

	for iter := 0; iter < iterations; iter++ {
		for k := 0; k < 4; k++ {
			idx := rng.Intn(n)
			sample[k] = src[idx]
			sampleDst[k] = dst[idx]
		}
		h, ok := ComputeHomography(sample, sampleDst)
		if !ok {
			continue
		}
		inliers := countInliers(h, src, dst, threshold)
		if inliers > bestInliers {
			bestInliers = inliers
			best = h
		}
	}

	if bestInliers < 0 {
		return IdentityHomography(), false
	}
	return best, true
}

func countInliers(h Homography, src, dst [][2]float32, threshold float32) int {
	inliers := 0
	for i := range src {
		px, py, ok := h.Apply(src[i][0], src[i][1])
		if !ok {
			continue
		}
		dx := float64(px - dst[i][0])
		dy := float64(py - dst[i][1])
		if math.Hypot(dx, dy) < float64(threshold) {
			inliers++
		}
	}
	return inliers
}
