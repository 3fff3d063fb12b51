package stabilize

// Correction is the per-frame-pair transform the external renderer must
// apply to move a frame's actual path onto the smoothed path.
type Correction struct {
	DX       float32 `json:"dx"`
	DY       float32 `json:"dy"`
	Rotation float32 `json:"rotation"` // radians
}

// ComputeCorrection returns the elementwise difference smooth minus raw
// per frame pair, truncated to the shorter of the two sequences.
func ComputeCorrection(raw, smooth MotionData) []Correction {
	n := raw.Len()
	if smooth.Len() < n {
		n = smooth.Len()
	}
	out := make([]Correction, n)
	for i := 0; i < n; i++ {
		out[i] = Correction{
			DX:       smooth.DX[i] - raw.DX[i],
			DY:       smooth.DY[i] - raw.DY[i],
			Rotation: smooth.Rotation[i] - raw.Rotation[i],
		}
	}
	return out
}
