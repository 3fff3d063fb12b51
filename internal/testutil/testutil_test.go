package testutil

import (
	"testing"

	"github.com/framewright/stabilize/internal/imaging"
)

func TestCheckerboardAlternates(t *testing.T) {
	img := Checkerboard(8, 8, 4)
	if img.At(0, 0) != 1.0 {
		t.Errorf("first cell = %v, want 1.0", img.At(0, 0))
	}
	if img.At(4, 0) != 0.0 {
		t.Errorf("second cell = %v, want 0.0", img.At(4, 0))
	}
	if img.At(4, 4) != 1.0 {
		t.Errorf("diagonal cell = %v, want 1.0", img.At(4, 4))
	}
}

func TestShiftedMovesContent(t *testing.T) {
	src := Ramp(16, 16)
	dst := Shifted(src, 3, 0)
	if got, want := dst.At(10, 5), src.At(7, 5); got != want {
		t.Errorf("shifted content at (10,5) = %v, want %v", got, want)
	}
}

func TestFramesRGBAShape(t *testing.T) {
	bufs := FramesRGBA([]*imaging.GrayImage{Ramp(4, 4)})
	if len(bufs) != 1 || len(bufs[0]) != 4*4*4 {
		t.Fatalf("unexpected buffer shape: %d frames, %d bytes", len(bufs), len(bufs[0]))
	}
	if bufs[0][3] != 255 {
		t.Errorf("alpha = %d, want 255", bufs[0][3])
	}
}
