package wavelet

import (
	"math"

	"github.com/soypat/raster"
)

// Flatten returns the samples of src as a [Plane].
func Flatten(src *raster.Buffer) Plane {
	pix := src.Buffer()
	p := Plane{Width: src.Width(), Height: src.Height(), Data: make([]float64, len(pix))}
	for i, v := range pix {
		p.Data[i] = float64(v)
	}
	return p
}

// Image rounds and clamps the samples of p into a new buffer.
func (p Plane) Image() *raster.Buffer {
	out := raster.NewBuffer(p.Width, p.Height)
	pix := out.Buffer()
	for i, v := range p.Data {
		pix[i] = raster.Clamp(int(math.Round(v)))
	}
	return out
}

// Result holds the intermediate figures of a compression.
type Result struct {
	Image  *raster.Buffer
	Zeroed int // Coefficients discarded by the threshold.
	Factor int // Block size of the resampling stage.
}

// Compress runs the lossy pipeline over src. threshold must be within [0,100];
// coefficients with a magnitude below it are discarded and it selects the
// resampling block size, see [BlockFactor].
// A threshold of 0 keeps every coefficient but still resamples the image.
func Compress(src *raster.Buffer, threshold float64) (*raster.Buffer, error) {
	res, err := CompressResult(src, threshold)
	if err != nil {
		return nil, err
	}
	return res.Image, nil
}

// CompressResult is like [Compress] and also reports pipeline statistics.
func CompressResult(src *raster.Buffer, threshold float64) (Result, error) {
	if err := validThreshold(threshold); err != nil {
		return Result{}, err
	}
	if err := raster.RequireImage("compress", src); err != nil {
		return Result{}, err
	}
	p := Flatten(src)
	Transform(p.Data)
	zeroed := Threshold(p.Data, threshold)
	Invert(p.Data)
	factor := BlockFactor(threshold)
	small := Downsample(p, factor)
	p = Upsample(small, src.Width(), src.Height())
	return Result{Image: p.Image(), Zeroed: zeroed, Factor: factor}, nil
}

func validThreshold(t float64) error {
	if !(t >= 0 && t <= 100) {
		return raster.InvalidArgument("threshold must be between 0 and 100, got %v", t)
	}
	return nil
}

// Compressor is a [raster.Filter] running [Compress]. Under split views and masks
// the whole image is compressed and the region picks which pixels show it.
type Compressor struct {
	threshold float64
	ctrls     []raster.Control
}

var _ raster.Filter = (*Compressor)(nil)

// NewCompressor creates a compression filter. threshold must be within [0,100].
func NewCompressor(threshold float64) (*Compressor, error) {
	if err := validThreshold(threshold); err != nil {
		return nil, err
	}
	c := &Compressor{threshold: threshold}
	c.ctrls = []raster.Control{
		&raster.ControlOrdered[float64]{
			Name:        "Threshold",
			Description: "Coefficient magnitude below which detail is discarded",
			Value:       threshold,
			Min:         0,
			Max:         100,
			Step:        1,
			OnChange: func(t float64) error {
				c.threshold = t
				return nil
			},
		},
	}
	return c, nil
}

func (c *Compressor) Threshold() float64 { return c.threshold }

// Controls implements [raster.Filter].
func (c *Compressor) Controls() []raster.Control { return c.ctrls }

// Process implements [raster.Filter].
func (c *Compressor) Process(src *raster.Buffer, region raster.Region) (*raster.Buffer, error) {
	if err := raster.RequireImage("compress", src); err != nil {
		return nil, err
	}
	sel, err := region.Bind(src)
	if err != nil {
		return nil, err
	}
	out, err := Compress(src, c.threshold)
	if err != nil {
		return nil, err
	}
	return sel.Compose(src, out), nil
}
