// Package testutil provides shared test fixtures and helpers.
//
// This package centralises synthetic frame generators used across the
// imaging, track, and stabilize test suites so each suite does not grow
// its own copy.
package testutil

import (
	"math"
	"testing"

	"github.com/framewright/stabilize/internal/imaging"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// Checkerboard returns a frame of alternating cells. Strong gradients in
// both directions at every cell boundary make it a reliable tracking
// target.
func Checkerboard(w, h, cell int) *imaging.GrayImage {
	img := imaging.NewGrayImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if ((x/cell)+(y/cell))%2 == 0 {
				img.Set(x, y, 1.0)
			}
		}
	}
	return img
}

// Ramp returns a frame whose intensity increases monotonically with x.
func Ramp(w, h int) *imaging.GrayImage {
	img := imaging.NewGrayImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, float32(x)/float32(w-1))
		}
	}
	return img
}

// Texture returns a smooth band-limited frame with nonzero gradients
// nearly everywhere, suitable for sub-pixel tracking tests where a
// piecewise-constant pattern would under-constrain the solve.
func Texture(w, h int) *imaging.GrayImage {
	img := imaging.NewGrayImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := 0.5 + 0.25*math.Sin(float64(x)*0.35) + 0.25*math.Sin(float64(y)*0.27)
			img.Set(x, y, float32(v))
		}
	}
	return img
}

// Shifted returns a copy of src with its content translated by (dx, dy)
// whole pixels, border-replicated at the edges.
func Shifted(src *imaging.GrayImage, dx, dy int) *imaging.GrayImage {
	img := imaging.NewGrayImage(src.Width, src.Height)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			img.Set(x, y, src.At(x-dx, y-dy))
		}
	}
	return img
}

// FramesRGBA converts gray frames to interleaved RGBA buffers, the
// boundary format the conversion entry point accepts.
func FramesRGBA(frames []*imaging.GrayImage) [][]byte {
	out := make([][]byte, len(frames))
	for i, f := range frames {
		buf := make([]byte, f.Width*f.Height*4)
		for p := 0; p < f.Width*f.Height; p++ {
			v := byte(f.Pix[p] * 255)
			buf[p*4] = v
			buf[p*4+1] = v
			buf[p*4+2] = v
			buf[p*4+3] = 255
		}
		out[i] = buf
	}
	return out
}
