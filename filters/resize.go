package filters

import "github.com/soypat/raster"

// Downscale resamples src to width x height. Each output pixel is the unweighted mean
// of the four source pixels around its proportionally mapped position, clamped to the
// image bounds. Sizes larger than the source are allowed.
func Downscale(src *raster.Buffer, width, height int) (*raster.Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, raster.InvalidArgument("resize dimensions must be positive, got %dx%d", width, height)
	}
	if err := raster.RequireImage("downscale", src); err != nil {
		return nil, err
	}
	sw, sh := src.Width(), src.Height()
	out := raster.NewBuffer(width, height)
	for y := 0; y < height; y++ {
		fy := float64(y) * float64(sh) / float64(height)
		y0 := min(int(fy), sh-1)
		y1 := min(y0+1, sh-1)
		for x := 0; x < width; x++ {
			fx := float64(x) * float64(sw) / float64(width)
			x0 := min(int(fx), sw-1)
			x1 := min(x0+1, sw-1)
			p00, p10 := src.Pixel(x0, y0), src.Pixel(x1, y0)
			p01, p11 := src.Pixel(x0, y1), src.Pixel(x1, y1)
			out.SetPixel(x, y, raster.Pixel{
				R: uint8((int(p00.R) + int(p10.R) + int(p01.R) + int(p11.R)) / 4),
				G: uint8((int(p00.G) + int(p10.G) + int(p01.G) + int(p11.G)) / 4),
				B: uint8((int(p00.B) + int(p10.B) + int(p01.B) + int(p11.B)) / 4),
			})
		}
	}
	return out, nil
}
