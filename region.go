package raster

// Action is what a filter does to a single pixel.
type Action uint8

const (
	// Keep copies the source pixel unchanged.
	Keep Action = iota
	// Transform replaces the pixel with the filter output.
	Transform
	// Divider paints the pixel black. Only produced by split views.
	Divider
)

type regionKind uint8

const (
	regionWhole regionKind = iota
	regionSplit
	regionMask
)

// Region selects the pixels a [Filter] transforms. The zero value is [Whole].
type Region struct {
	kind    regionKind
	percent int
	mask    *Buffer
}

// Whole selects every pixel.
func Whole() Region { return Region{kind: regionWhole} }

// SplitView selects the columns left of floor(width*percent/100). The column at that
// index is painted black as a divider and the columns right of it are kept.
// percent must be within [0,100].
func SplitView(percent int) (Region, error) {
	if percent < 0 || percent > 100 {
		return Region{}, InvalidArgument(PercentRangeMessage)
	}
	return Region{kind: regionSplit, percent: percent}, nil
}

// Masked selects the pixels where mask is pure black. The mask must have the
// dimensions of the image the region is bound to.
func Masked(mask *Buffer) Region { return Region{kind: regionMask, mask: mask} }

// Percent returns the split percentage: 100 for whole and masked regions.
func (r Region) Percent() int {
	if r.kind != regionSplit {
		return 100
	}
	return r.percent
}

// IsMasked reports whether r selects pixels by mask.
func (r Region) IsMasked() bool { return r.kind == regionMask }

// SplitPoint returns floor(width*percent/100), the divider column for a split view.
// Whole regions return width so no column is painted as divider.
func SplitPoint(width, percent int) int {
	return width * percent / 100
}

// Bind resolves r against src. Masks with dimensions different to src return
// an error matching [ErrDimensionMismatch].
func (r Region) Bind(src *Buffer) (Selector, error) {
	switch r.kind {
	case regionMask:
		if r.mask.Empty() || !r.mask.Dims().SameSize(src.Dims()) {
			return Selector{}, DimensionMismatch(src.Dims(), r.mask.Dims())
		}
		return Selector{mask: r.mask, limit: -1}, nil
	case regionSplit:
		return Selector{limit: SplitPoint(src.Width(), r.percent)}, nil
	default:
		return Selector{limit: src.Width()}, nil
	}
}

// Selector answers per pixel which [Action] a filter takes. Obtain one with [Region.Bind].
type Selector struct {
	mask  *Buffer
	limit int
}

// At returns the action for the pixel at column x, row y.
func (s Selector) At(x, y int) Action {
	if s.mask != nil {
		if s.mask.Pixel(x, y) == Black {
			return Transform
		}
		return Keep
	}
	switch {
	case x < s.limit:
		return Transform
	case x == s.limit:
		return Divider
	}
	return Keep
}

// ColumnLimit returns the split point of a column selector or -1 for masks.
func (s Selector) ColumnLimit() int {
	if s.mask != nil {
		return -1
	}
	return s.limit
}

// Compose builds the output image for a selector given the source and a fully transformed image
// of the same size.
func (s Selector) Compose(src, transformed *Buffer) *Buffer {
	out := NewBuffer(src.Width(), src.Height())
	for y := 0; y < src.Height(); y++ {
		s.ComposeRow(out.Row(y), src.Row(y), transformed.Row(y), y)
	}
	return out
}

// ComposeRow writes row y of a filter output into dst. fx holds the transformed row;
// it is only read for pixels the selector transforms.
func (s Selector) ComposeRow(dst, src, fx []byte, y int) {
	width := len(src) / 3
	if s.mask == nil && s.limit >= width {
		copy(dst, fx)
		return
	}
	for x := 0; x < width; x++ {
		i := x * 3
		switch s.At(x, y) {
		case Transform:
			copy(dst[i:i+3], fx[i:i+3])
		case Divider:
			dst[i], dst[i+1], dst[i+2] = 0, 0, 0
		default:
			copy(dst[i:i+3], src[i:i+3])
		}
	}
}

// Map builds a new image the size of src. Pixels selected for transformation
// are computed by fn, dividers are black and the rest are copied from src.
// Rows are handed to run in [start, end) chunks; a nil run processes all rows in order.
func (s Selector) Map(src *Buffer, run RowRunner, fn func(x, y int) Pixel) *Buffer {
	out := NewBuffer(src.Width(), src.Height())
	rows := func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < src.width; x++ {
				switch s.At(x, y) {
				case Transform:
					out.SetPixel(x, y, fn(x, y))
				case Divider:
					out.SetPixel(x, y, Black)
				default:
					out.SetPixel(x, y, src.Pixel(x, y))
				}
			}
		}
	}
	if run == nil {
		rows(0, src.Height())
	} else {
		run.ParallelFor(src.Height(), rows)
	}
	return out
}

// RowRunner distributes row ranges across workers, such as a
// go-highway workerpool.Pool. It must return once every range is processed.
type RowRunner interface {
	ParallelFor(n int, fn func(start, end int))
}
