package filters

import (
	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
	"github.com/soypat/raster"
)

// Kernel is an immutable square convolution matrix with odd side length.
type Kernel struct {
	side    int
	weights []float64 // row-major
}

// NewKernel copies rows into a Kernel. rows must be square with an odd side.
func NewKernel(rows [][]float64) (Kernel, error) {
	side := len(rows)
	if side == 0 || side%2 == 0 {
		return Kernel{}, raster.InvalidArgument("kernel side must be odd, got %d", side)
	}
	w := make([]float64, 0, side*side)
	for i, row := range rows {
		if len(row) != side {
			return Kernel{}, raster.InvalidArgument("kernel row %d has %d weights, want %d", i, len(row), side)
		}
		w = append(w, row...)
	}
	return Kernel{side: side, weights: w}, nil
}

func mustKernel(rows [][]float64) Kernel {
	k, err := NewKernel(rows)
	if err != nil {
		panic(err)
	}
	return k
}

// Side returns the number of rows (and columns) of the kernel.
func (k Kernel) Side() int { return k.side }

// Radius returns (side-1)/2.
func (k Kernel) Radius() int { return (k.side - 1) / 2 }

// At returns the weight at kernel row i, column j.
func (k Kernel) At(i, j int) float64 { return k.weights[i*k.side+j] }

// BlurKernel returns the 3x3 Gaussian blur kernel.
func BlurKernel() Kernel {
	return mustKernel([][]float64{
		{1.0 / 16, 1.0 / 8, 1.0 / 16},
		{1.0 / 8, 1.0 / 4, 1.0 / 8},
		{1.0 / 16, 1.0 / 8, 1.0 / 16},
	})
}

// SharpenKernel returns the 5x5 sharpen kernel: center 1, inner ring 1/4, outer ring -1/8.
func SharpenKernel() Kernel {
	const o, n = -1.0 / 8, 1.0 / 4
	return mustKernel([][]float64{
		{o, o, o, o, o},
		{o, n, n, n, o},
		{o, n, 1, n, o},
		{o, n, n, n, o},
		{o, o, o, o, o},
	})
}

// Convolution filters an image with a [Kernel]. Samples outside the image
// replicate the nearest edge pixel.
type Convolution struct {
	Op     string
	Kernel Kernel
	// Pool distributes rows across workers when not nil.
	// Results are identical to the sequential ones.
	Pool *workerpool.Pool
}

var _ raster.Filter = (*Convolution)(nil)

// NewConvolution creates a convolution filter with kernel k.
func NewConvolution(k Kernel) *Convolution {
	return &Convolution{Op: "convolve", Kernel: k}
}

// NewBlur creates a 3x3 Gaussian blur filter.
func NewBlur() *Convolution {
	return &Convolution{Op: "blur", Kernel: BlurKernel()}
}

// NewSharpen creates a 5x5 sharpen filter.
func NewSharpen() *Convolution {
	return &Convolution{Op: "sharpen", Kernel: SharpenKernel()}
}

// Controls implements [raster.Filter]. Kernels are fixed.
func (c *Convolution) Controls() []raster.Control { return nil }

// Process implements [raster.Filter].
func (c *Convolution) Process(src *raster.Buffer, region raster.Region) (*raster.Buffer, error) {
	if err := raster.RequireImage(c.Op, src); err != nil {
		return nil, err
	}
	if c.Kernel.side == 0 {
		return nil, raster.InvalidArgument("%s: empty kernel", c.Op)
	}
	sel, err := region.Bind(src)
	if err != nil {
		return nil, err
	}
	var run raster.RowRunner
	if c.Pool != nil {
		run = c.Pool
	}
	k := c.Kernel
	return sel.Map(src, run, func(x, y int) raster.Pixel {
		return convolveAt(src, k, x, y)
	}), nil
}

// convolveAt computes the kernel response at column x, row y. The window is
// accumulated row-major so every call sums in the same order; products are
// rounded before accumulation so results do not depend on fused multiply-add.
func convolveAt(src *raster.Buffer, k Kernel, x, y int) raster.Pixel {
	w, h := src.Width(), src.Height()
	r := k.Radius()
	var sumR, sumG, sumB float64
	for ky := 0; ky < k.side; ky++ {
		sy := clampInt(y+ky-r, 0, h-1)
		row := src.Row(sy)
		for kx := 0; kx < k.side; kx++ {
			sx := clampInt(x+kx-r, 0, w-1)
			wt := k.weights[ky*k.side+kx]
			i := sx * 3
			sumR += float64(float64(row[i]) * wt)
			sumG += float64(float64(row[i+1]) * wt)
			sumB += float64(float64(row[i+2]) * wt)
		}
	}
	return raster.Pixel{
		R: raster.ClampTrunc(sumR),
		G: raster.ClampTrunc(sumG),
		B: raster.ClampTrunc(sumB),
	}
}

// Convolve filters src with k over region.
func Convolve(src *raster.Buffer, k Kernel, region raster.Region) (*raster.Buffer, error) {
	return NewConvolution(k).Process(src, region)
}

// Blur applies the 3x3 Gaussian blur to the whole of src.
func Blur(src *raster.Buffer) (*raster.Buffer, error) { return apply(NewBlur(), src) }

// Sharpen applies the 5x5 sharpen kernel to the whole of src.
func Sharpen(src *raster.Buffer) (*raster.Buffer, error) { return apply(NewSharpen(), src) }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	} else if v > hi {
		return hi
	}
	return v
}
