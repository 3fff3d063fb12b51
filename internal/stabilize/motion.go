package stabilize

// MotionData holds one motion sample per adjacent frame pair: entry i is
// the estimated camera transform from frame i to frame i+1. The three
// channel slices always have identical length; length zero is valid and
// means "no motion estimate available" (for example a clip with fewer
// than two frames).
type MotionData struct {
	DX       []float32 `json:"dx"`
	DY       []float32 `json:"dy"`
	Rotation []float32 `json:"rotation"` // radians
}

// NewMotionData allocates zero motion for n frame pairs.
func NewMotionData(n int) MotionData {
	return MotionData{
		DX:       make([]float32, n),
		DY:       make([]float32, n),
		Rotation: make([]float32, n),
	}
}

// Len returns the number of frame pairs covered.
func (m MotionData) Len() int { return len(m.DX) }

// IsEmpty reports whether no motion estimate is available.
func (m MotionData) IsEmpty() bool { return len(m.DX) == 0 }

// Clone returns a deep copy.
func (m MotionData) Clone() MotionData {
	out := NewMotionData(m.Len())
	copy(out.DX, m.DX)
	copy(out.DY, m.DY)
	copy(out.Rotation, m.Rotation)
	return out
}
