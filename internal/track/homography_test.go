package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeHomographyIdentity(t *testing.T) {
	pts := [][2]float32{{0, 0}, {100, 0}, {100, 100}, {0, 100}}
	h, ok := ComputeHomography(pts, pts)
	require.True(t, ok)
	assert.InDelta(t, 1.0, h[0], 0.01)
	assert.InDelta(t, 1.0, h[4], 0.01)
	assert.InDelta(t, 0.0, h[2], 0.01)
	assert.InDelta(t, 0.0, h[5], 0.01)
}

func TestComputeHomographyTranslation(t *testing.T) {
	src := [][2]float32{{0, 0}, {100, 0}, {100, 100}, {0, 100}}
	dst := [][2]float32{{10, 20}, {110, 20}, {110, 120}, {10, 120}}
	h, ok := ComputeHomography(src, dst)
	require.True(t, ok)
	assert.InDelta(t, 10.0, h[2], 0.5)
	assert.InDelta(t, 20.0, h[5], 0.5)

	px, py, ok := h.Apply(50, 50)
	require.True(t, ok)
	assert.InDelta(t, 60.0, px, 0.5)
	assert.InDelta(t, 70.0, py, 0.5)
}

func TestComputeHomographyOverdetermined(t *testing.T) {
	// Nine points under a pure scale: least-squares fit should recover it.
	var src, dst [][2]float32
	for gy := 0; gy < 3; gy++ {
		for gx := 0; gx < 3; gx++ {
			x := float32(gx * 50)
			y := float32(gy * 50)
			src = append(src, [2]float32{x, y})
			dst = append(dst, [2]float32{x * 2, y * 2})
		}
	}
	h, ok := ComputeHomography(src, dst)
	require.True(t, ok)
	assert.InDelta(t, 2.0, h[0], 0.05)
	assert.InDelta(t, 2.0, h[4], 0.05)
}

func TestComputeHomographyDegenerate(t *testing.T) {
	// Fewer than four pairs.
	_, ok := ComputeHomography([][2]float32{{0, 0}}, [][2]float32{{1, 1}})
	assert.False(t, ok)

	// Four collinear points do not determine a homography.
	src := [][2]float32{{0, 0}, {10, 0}, {20, 0}, {30, 0}}
	_, ok = ComputeHomography(src, src)
	assert.False(t, ok)
}

func TestRANSACHomographyRejectsOutliers(t *testing.T) {
	// A clean translation with two gross outliers mixed in.
	var src, dst [][2]float32
	for gy := 0; gy < 4; gy++ {
		for gx := 0; gx < 4; gx++ {
			x := float32(gx*30 + 5)
			y := float32(gy*30 + 5)
			src = append(src, [2]float32{x, y})
			dst = append(dst, [2]float32{x + 7, y - 4})
		}
	}
	src = append(src, [2]float32{50, 50}, [2]float32{70, 30})
	dst = append(dst, [2]float32{200, 10}, [2]float32{0, 300})

	h, ok := RANSACHomography(src, dst, 500, 2.0, 12345)
	require.True(t, ok)
	px, py, ok := h.Apply(35, 65)
	require.True(t, ok)
	assert.InDelta(t, 42.0, px, 1.0)
	assert.InDelta(t, 61.0, py, 1.0)
}

func TestRANSACHomographyDeterministic(t *testing.T) {
	src := [][2]float32{{0, 0}, {50, 0}, {50, 50}, {0, 50}, {25, 25}}
	dst := [][2]float32{{1, 2}, {51, 2}, {51, 52}, {1, 52}, {26, 27}}

	h1, ok1 := RANSACHomography(src, dst, 100, 3.0, 7)
	h2, ok2 := RANSACHomography(src, dst, 100, 3.0, 7)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, h1, h2)
}

func TestHomographyApplyVanishing(t *testing.T) {
	// A transform whose denominator vanishes along a line.
	h := Homography{1, 0, 0, 0, 1, 0, 1, 0, 0}
	_, _, ok := h.Apply(0, 5)
	assert.False(t, ok)
}
