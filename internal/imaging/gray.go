package imaging

import "fmt"

// GrayImage is a single-channel raster of normalized luminance samples in
// [0, 1], stored row-major. It is the uniform working representation for
// all tracking math.
type GrayImage struct {
	Pix    []float32
	Width  int
	Height int
}

// NewGrayImage allocates a zero-filled image of the given dimensions.
func NewGrayImage(width, height int) *GrayImage {
	return &GrayImage{
		Pix:    make([]float32, width*height),
		Width:  width,
		Height: height,
	}
}

// NewGrayImageFrom wraps an existing luminance buffer. The buffer length
// must match the declared dimensions exactly; a mismatch is the one hard
// input-boundary error in this subsystem.
func NewGrayImageFrom(pix []float32, width, height int) (*GrayImage, error) {
	if len(pix) != width*height {
		return nil, fmt.Errorf("gray image buffer length %d does not match %dx%d", len(pix), width, height)
	}
	return &GrayImage{Pix: pix, Width: width, Height: height}, nil
}

// At returns the sample at (x, y) with border-replicate semantics:
// out-of-range coordinates clamp to the nearest edge pixel. At(-1,-1)
// reads (0,0) and At(Width,Height) reads (Width-1,Height-1).
func (g *GrayImage) At(x, y int) float32 {
	if x < 0 {
		x = 0
	} else if x >= g.Width {
		x = g.Width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= g.Height {
		y = g.Height - 1
	}
	return g.Pix[y*g.Width+x]
}

// Set writes the sample at (x, y). Out-of-range writes are dropped.
func (g *GrayImage) Set(x, y int, v float32) {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return
	}
	g.Pix[y*g.Width+x] = v
}

// Clone returns a deep copy.
func (g *GrayImage) Clone() *GrayImage {
	pix := make([]float32, len(g.Pix))
	copy(pix, g.Pix)
	return &GrayImage{Pix: pix, Width: g.Width, Height: g.Height}
}

// Contains reports whether the floating-point position lies inside the
// image bounds.
func (g *GrayImage) Contains(x, y float32) bool {
	return x >= 0 && y >= 0 && x < float32(g.Width) && y < float32(g.Height)
}

// BT.601 luma weights.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// FromRGBA converts an interleaved 8-bit RGBA buffer to a grayscale image
// with luminance normalized to [0, 1]. A buffer shorter than
// width*height*4 degrades gracefully: trailing pixels stay black. Partial
// frames must never panic.
func FromRGBA(rgba []byte, width, height int) *GrayImage {
	g := NewGrayImage(width, height)
	n := width * height
	for i := 0; i < n; i++ {
		idx := i * 4
		if idx+2 >= len(rgba) {
			break
		}
		g.Pix[i] = (lumaR*float32(rgba[idx]) +
			lumaG*float32(rgba[idx+1]) +
			lumaB*float32(rgba[idx+2])) / 255.0
	}
	return g
}
