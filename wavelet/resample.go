package wavelet

import "math"

// Plane is an interleaved RGB image of real valued samples.
type Plane struct {
	Width, Height int
	Data          []float64 // R,G,B per pixel, row-major.
}

// BlockFactor returns the down sampling block size used for a threshold:
// round((100-threshold)/10) clamped to [1,10].
func BlockFactor(threshold float64) int {
	f := int(math.Round((100 - threshold) / 10))
	return min(max(f, 1), 10)
}

// Downsample averages factor x factor blocks of p. The result has
// max(1, width/factor) x max(1, height/factor) pixels; block bounds are
// mapped proportionally so every source pixel belongs to exactly one block.
func Downsample(p Plane, factor int) Plane {
	factor = max(factor, 1)
	dw, dh := max(1, p.Width/factor), max(1, p.Height/factor)
	out := Plane{Width: dw, Height: dh, Data: make([]float64, dw*dh*3)}
	for by := 0; by < dh; by++ {
		y0, y1 := by*p.Height/dh, (by+1)*p.Height/dh
		for bx := 0; bx < dw; bx++ {
			x0, x1 := bx*p.Width/dw, (bx+1)*p.Width/dw
			var sum [3]float64
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					i := (y*p.Width + x) * 3
					sum[0] += p.Data[i]
					sum[1] += p.Data[i+1]
					sum[2] += p.Data[i+2]
				}
			}
			n := float64((y1 - y0) * (x1 - x0))
			o := (by*dw + bx) * 3
			out.Data[o] = sum[0] / n
			out.Data[o+1] = sum[1] / n
			out.Data[o+2] = sum[2] / n
		}
	}
	return out
}

// Upsample stretches p to width x height by nearest neighbor proportional mapping.
func Upsample(p Plane, width, height int) Plane {
	out := Plane{Width: width, Height: height, Data: make([]float64, width*height*3)}
	for y := 0; y < height; y++ {
		sy := min(y*p.Height/height, p.Height-1)
		for x := 0; x < width; x++ {
			sx := min(x*p.Width/width, p.Width-1)
			copy(out.Data[(y*width+x)*3:], p.Data[(sy*p.Width+sx)*3:(sy*p.Width+sx)*3+3])
		}
	}
	return out
}
