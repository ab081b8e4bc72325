package filters

import (
	"github.com/soypat/raster"
)

// PointFunc processes a contiguous row of RGB888 pixels.
// dst and src contain rowWidth pixels worth of bytes.
// The function should iterate through pixels: for i := 0; i < len(src); i += 3 { ... }
type PointFunc func(dst, src []byte)

// PointFilter applies a per-pixel transformation using a callback function.
// It handles the iteration, buffering, and region logic common to all per-pixel filters.
// The callback is invoked once per row with contiguous pixel data.
type PointFilter struct {
	Op    string // Operation name used in errors.
	Fn    PointFunc
	Ctrls []raster.Control // User-defined controls for this filter.
}

var _ raster.Filter = (*PointFilter)(nil)

// Controls implements [raster.Filter].
func (f *PointFilter) Controls() []raster.Control {
	return f.Ctrls
}

// Process implements [raster.Filter].
func (f *PointFilter) Process(src *raster.Buffer, region raster.Region) (*raster.Buffer, error) {
	if f.Fn == nil {
		return nil, errNilPixelFunc
	}
	if err := raster.RequireImage(f.Op, src); err != nil {
		return nil, err
	}
	sel, err := region.Bind(src)
	if err != nil {
		return nil, err
	}
	return processRows(src, sel, f.Fn), nil
}

func processRows(src *raster.Buffer, sel raster.Selector, fn PointFunc) *raster.Buffer {
	dst := raster.NewBuffer(src.Width(), src.Height())
	// Row scratch so dividers and kept pixels never see transformed values.
	fx := make([]byte, 3*src.Width())
	for y := 0; y < src.Height(); y++ {
		srcRow := src.Row(y)
		fn(fx, srcRow)
		sel.ComposeRow(dst.Row(y), srcRow, fx, y)
	}
	return dst
}

// apply runs f over the whole of src.
func apply(f raster.Filter, src *raster.Buffer) (*raster.Buffer, error) {
	return f.Process(src, raster.Whole())
}

var errNilPixelFunc = errorString("nil PixelFunc")

type errorString string

func (e errorString) Error() string { return string(e) }
