package imaging

// Gradients computes central-difference spatial derivatives (Ix, Iy) for
// every interior pixel. The one-pixel border is left at zero: border
// gradients contribute no information to the tracker's normal-equations
// solve, which is acceptable because feature points are seeded away from
// frame edges.
func Gradients(img *GrayImage) (ix, iy []float32) {
	size := img.Width * img.Height
	ix = make([]float32, size)
	iy = make([]float32, size)
	for y := 1; y < img.Height-1; y++ {
		for x := 1; x < img.Width-1; x++ {
			idx := y*img.Width + x
			ix[idx] = (img.At(x+1, y) - img.At(x-1, y)) * 0.5
			iy[idx] = (img.At(x, y+1) - img.At(x, y-1)) * 0.5
		}
	}
	return ix, iy
}
