package stabilize

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func sineMotion(n int) MotionData {
	m := NewMotionData(n)
	for i := 0; i < n; i++ {
		m.DX[i] = float32(math.Sin(float64(i)*0.5) * 10)
		m.DY[i] = float32(math.Cos(float64(i)*0.7) * 5)
		m.Rotation[i] = float32(math.Sin(float64(i)*0.3) * 0.1)
	}
	return m
}

func TestSmoothMotionReducesVariance(t *testing.T) {
	raw := sineMotion(100)
	params := DefaultParams()
	params.Smoothness = 10

	smoothed := SmoothMotion(raw, params)

	if smoothed.Len() != raw.Len() {
		t.Fatalf("smoothed length = %d, want %d", smoothed.Len(), raw.Len())
	}
	for name, pair := range map[string][2][]float32{
		"dx":       {raw.DX, smoothed.DX},
		"dy":       {raw.DY, smoothed.DY},
		"rotation": {raw.Rotation, smoothed.Rotation},
	} {
		rawVar := variance32(pair[0])
		smoothVar := variance32(pair[1])
		if smoothVar >= rawVar {
			t.Errorf("%s: smoothed variance %v not below raw %v", name, smoothVar, rawVar)
		}
	}
}

func TestSmoothMotionBelowThresholdIsNoOp(t *testing.T) {
	raw := sineMotion(20)
	params := DefaultParams()
	params.Smoothness = 0.4

	smoothed := SmoothMotion(raw, params)

	if diff := cmp.Diff(raw, smoothed); diff != "" {
		t.Errorf("sub-threshold smoothing changed motion (-raw +smoothed):\n%s", diff)
	}

	// The no-op must return a copy, not an alias.
	smoothed.DX[0] += 1
	if raw.DX[0] == smoothed.DX[0] {
		t.Error("no-op smoothing aliases the input buffers")
	}
}

func TestSmoothMotionIdempotentBelowThreshold(t *testing.T) {
	params := DefaultParams()
	params.Smoothness = 10
	once := SmoothMotion(sineMotion(50), params)

	params.Smoothness = 0.1
	again := SmoothMotion(once, params)

	if diff := cmp.Diff(once, again); diff != "" {
		t.Errorf("re-smoothing below threshold changed the path:\n%s", diff)
	}
}

func TestSmoothMotionPreservesConstantPan(t *testing.T) {
	// A deliberate constant pan is the intended motion: path smoothing
	// must leave it essentially untouched away from clip boundaries.
	raw := NewMotionData(200)
	for i := range raw.DX {
		raw.DX[i] = 2.0
	}
	params := DefaultParams()
	params.Smoothness = 5

	smoothed := SmoothMotion(raw, params)
	for i := 30; i < 170; i++ {
		if math.Abs(float64(smoothed.DX[i])-2.0) > 0.05 {
			t.Fatalf("pan delta at %d = %v, want ~2.0", i, smoothed.DX[i])
		}
	}
}

func TestSmoothMotionEmpty(t *testing.T) {
	smoothed := SmoothMotion(NewMotionData(0), DefaultParams())
	if !smoothed.IsEmpty() {
		t.Errorf("smoothing empty motion produced %d entries", smoothed.Len())
	}
}

func TestSmoothMotionPathEndpointsBounded(t *testing.T) {
	// Edge-clamped smoothing must keep the output within the raw
	// signal's range; a zero-padded filter would pull the ends toward
	// zero far harder.
	raw := NewMotionData(40)
	for i := range raw.DX {
		raw.DX[i] = 1.0
	}
	params := DefaultParams()
	params.Smoothness = 8

	smoothed := SmoothMotion(raw, params)
	approx := cmpopts.EquateApprox(0, 0.7)
	if !cmp.Equal(smoothed.DX[0], float32(1.0), approx) {
		t.Errorf("first delta = %v, drifted too far from 1.0", smoothed.DX[0])
	}
	for _, v := range smoothed.DX {
		if v < 0 || v > 1.01 {
			t.Fatalf("smoothed delta %v outside raw range [0, 1]", v)
		}
	}
}
