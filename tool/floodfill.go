package tool

import (
	"image"
	"image/color"
)

// FillTolerance is the per-channel distance within which a pixel counts as
// the seed color.
const FillTolerance = 10

// FloodFill replaces the 4-connected region around (x, y) whose pixels are
// within tolerance of the seed pixel on every channel, including alpha.
// It returns the number of pixels written. The visited set is one byte per
// pixel and the work list is a flat index stack.
func FloodFill(img *image.NRGBA, x, y int, c color.NRGBA, tolerance int) int {
	b := img.Bounds()
	if !(image.Point{x, y}).In(b) {
		return 0
	}
	w, h := b.Dx(), b.Dy()
	seed := img.NRGBAAt(x, y)
	visited := make([]byte, w*h)
	stack := []int{(y-b.Min.Y)*w + (x - b.Min.X)}
	n := 0

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[idx] != 0 {
			continue
		}
		visited[idx] = 1

		px, py := idx%w, idx/w
		i := img.PixOffset(b.Min.X+px, b.Min.Y+py)
		p := img.Pix[i : i+4 : i+4]
		if !near(p[0], seed.R, tolerance) || !near(p[1], seed.G, tolerance) ||
			!near(p[2], seed.B, tolerance) || !near(p[3], seed.A, tolerance) {
			continue
		}
		p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
		n++

		if px+1 < w {
			stack = append(stack, idx+1)
		}
		if px > 0 {
			stack = append(stack, idx-1)
		}
		if py+1 < h {
			stack = append(stack, idx+w)
		}
		if py > 0 {
			stack = append(stack, idx-w)
		}
	}
	return n
}

func near(a, b uint8, tol int) bool {
	d := int(a) - int(b)
	return d <= tol && d >= -tol
}
