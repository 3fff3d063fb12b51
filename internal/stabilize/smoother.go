package stabilize

import "math"

// minSmoothness is the sigma below which smoothing is a no-op; a
// degenerate sub-pixel kernel would only add rounding noise.
const minSmoothness = 0.5

// SmoothMotion computes the intended camera path from raw per-pair
// deltas. The deltas are integrated into an absolute path (length N+1
// for N pairs), each channel is low-passed with a symmetric Gaussian
// (kernel radius 3 sigma, edge-clamped at the path boundaries), and the
// smoothed path is differentiated back into per-pair deltas.
//
// Smoothing the integrated path rather than the deltas damps cumulative
// drift and jitter while preserving a deliberate long-term move such as
// a pan. Smoothness below the no-op threshold returns the input
// unchanged (as a copy).
func SmoothMotion(raw MotionData, params Params) MotionData {
	n := raw.Len()
	if n == 0 {
		return NewMotionData(0)
	}
	if params.Smoothness < minSmoothness {
		return raw.Clone()
	}

	pathDX := integrate(raw.DX)
	pathDY := integrate(raw.DY)
	pathRot := integrate(raw.Rotation)

	smoothDX := gaussianSmooth1D(pathDX, params.Smoothness)
	smoothDY := gaussianSmooth1D(pathDY, params.Smoothness)
	smoothRot := gaussianSmooth1D(pathRot, params.Smoothness)

	out := NewMotionData(n)
	for i := 0; i < n; i++ {
		out.DX[i] = smoothDX[i+1] - smoothDX[i]
		out.DY[i] = smoothDY[i+1] - smoothDY[i]
		out.Rotation[i] = smoothRot[i+1] - smoothRot[i]
	}
	return out
}

// integrate turns per-pair deltas into an absolute path with a leading
// zero: path[i] is the cumulative motion at frame boundary i.
func integrate(deltas []float32) []float32 {
	path := make([]float32, len(deltas)+1)
	for i, d := range deltas {
		path[i+1] = path[i] + d
	}
	return path
}

// gaussianSmooth1D applies a normalized Gaussian kernel with radius
// ceil(3 sigma), clamping sample indices at the sequence boundaries so
// the ends are smoothed against themselves rather than zero.
func gaussianSmooth1D(data []float32, sigma float32) []float32 {
	n := len(data)
	radius := int(math.Ceil(float64(sigma) * 3.0))
	sigma2 := 2.0 * float64(sigma) * float64(sigma)

	out := make([]float32, n)
	for i := 0; i < n; i++ {
		var sum, weight float64
		for k := -radius; k <= radius; k++ {
			j := i + k
			if j < 0 {
				j = 0
			} else if j >= n {
				j = n - 1
			}
			w := math.Exp(-float64(k*k) / sigma2)
			sum += float64(data[j]) * w
			weight += w
		}
		if weight > 0 {
			out[i] = float32(sum / weight)
		} else {
			out[i] = data[i]
		}
	}
	return out
}
