package filters

import "github.com/soypat/raster"

// Floyd–Steinberg error weights in sixteenths.
const (
	ditherRight      = 7
	ditherBelowLeft  = 3
	ditherBelow      = 5
	ditherBelowRight = 1
)

// Dither reduces an image to black and white by Floyd–Steinberg error diffusion
// of its intensity. The whole image is diffused before the region is applied so
// that error propagation never sees divider or kept pixels.
type Dither struct{}

var _ raster.Filter = Dither{}

func NewDither() Dither { return Dither{} }

// Controls implements [raster.Filter].
func (Dither) Controls() []raster.Control { return nil }

// Process implements [raster.Filter].
func (Dither) Process(src *raster.Buffer, region raster.Region) (*raster.Buffer, error) {
	if err := raster.RequireImage("dither", src); err != nil {
		return nil, err
	}
	sel, err := region.Bind(src)
	if err != nil {
		return nil, err
	}
	return sel.Compose(src, diffuse(src)), nil
}

func diffuse(src *raster.Buffer) *raster.Buffer {
	w, h := src.Width(), src.Height()
	plane := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		row := src.Row(y)
		for x := 0; x < w; x++ {
			plane[y*w+x] = intensity(row[x*3], row[x*3+1], row[x*3+2])
		}
	}
	spread := func(x, y, e, weight int) {
		if x < 0 || x >= w || y >= h {
			return
		}
		i := y*w + x
		plane[i] = raster.Clamp(int(plane[i]) + e*weight/16)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			old := int(plane[y*w+x])
			nu := 0
			if old >= 128 {
				nu = 255
			}
			plane[y*w+x] = uint8(nu)
			e := old - nu
			spread(x+1, y, e, ditherRight)
			spread(x-1, y+1, e, ditherBelowLeft)
			spread(x, y+1, e, ditherBelow)
			spread(x+1, y+1, e, ditherBelowRight)
		}
	}
	out := raster.NewBuffer(w, h)
	for y := 0; y < h; y++ {
		row := out.Row(y)
		for x := 0; x < w; x++ {
			v := plane[y*w+x]
			row[x*3], row[x*3+1], row[x*3+2] = v, v, v
		}
	}
	return out
}

// Dithered returns the dithered version of the whole of src.
func Dithered(src *raster.Buffer) (*raster.Buffer, error) { return apply(NewDither(), src) }
