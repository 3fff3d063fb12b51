package imaging

// Pyramid is an ordered coarse-to-fine stack of downsampled images.
// Levels[0] is full resolution; each subsequent level halves both
// dimensions (rounding up). The tracker searches the stack coarsest
// first so large displacements do not trap the solve in local minima.
type Pyramid struct {
	Levels []*GrayImage
}

// BuildPyramid constructs a pyramid with the requested number of levels.
// Level 0 is a copy of the input. Each subsequent level is a 2x2 box
// average of the previous one sampled through the clamped accessor, so
// odd dimensions need no special casing. Guarantee:
// Levels[k].Width == ceil(Levels[k-1].Width/2), symmetric for height.
func BuildPyramid(img *GrayImage, levels int) *Pyramid {
	p := &Pyramid{Levels: make([]*GrayImage, 0, levels)}
	p.Levels = append(p.Levels, img.Clone())
	for k := 1; k < levels; k++ {
		prev := p.Levels[k-1]
		nw := (prev.Width + 1) / 2
		nh := (prev.Height + 1) / 2
		level := NewGrayImage(nw, nh)
		for y := 0; y < nh; y++ {
			for x := 0; x < nw; x++ {
				sx := x * 2
				sy := y * 2
				avg := (prev.At(sx, sy) +
					prev.At(sx+1, sy) +
					prev.At(sx, sy+1) +
					prev.At(sx+1, sy+1)) * 0.25
				level.Set(x, y, avg)
			}
		}
		p.Levels = append(p.Levels, level)
	}
	return p
}
