package filters

import "github.com/soypat/raster"

// NewSepia creates a sepia tone filter.
func NewSepia() *PointFilter {
	return &PointFilter{
		Op: "sepia",
		Fn: func(dst, src []byte) {
			for i := 0; i < len(src); i += 3 {
				r, g, b := float64(src[i]), float64(src[i+1]), float64(src[i+2])
				dst[i] = raster.ClampTrunc(dot3(0.393, 0.769, 0.189, r, g, b))
				dst[i+1] = raster.ClampTrunc(dot3(0.349, 0.686, 0.168, r, g, b))
				dst[i+2] = raster.ClampTrunc(dot3(0.272, 0.534, 0.131, r, g, b))
			}
		},
	}
}

// dot3 evaluates wr*r + wg*g + wb*b left to right without fused multiply-adds.
func dot3(wr, wg, wb, r, g, b float64) float64 {
	return float64(wr*r) + float64(wg*g) + float64(wb*b)
}

// Sepia applies the sepia tone to the whole of src.
func Sepia(src *raster.Buffer) (*raster.Buffer, error) { return apply(NewSepia(), src) }

// Peak search bounds for color correction.
const (
	peakLow  = 10
	peakHigh = 245
)

// Histogram counts channel values over an image.
type Histogram [3][256]int

// NewHistogram counts every pixel of src.
func NewHistogram(src *raster.Buffer) *Histogram {
	var h Histogram
	pix := src.Buffer()
	for i := 0; i+2 < len(pix); i += 3 {
		h[0][pix[i]]++
		h[1][pix[i+1]]++
		h[2][pix[i+2]]++
	}
	return &h
}

// Peak returns the most frequent value of channel ch within [lo,hi].
// Ties resolve to the lowest value.
func (h *Histogram) Peak(ch raster.Channel, lo, hi int) int {
	bins := &h[ch]
	peak := lo
	for v := lo; v <= hi; v++ {
		if bins[v] > bins[peak] {
			peak = v
		}
	}
	return peak
}

// ColorCorrect aligns the histogram peaks of the three channels to their average.
// Statistics always cover the whole source image, also for split views and masks.
type ColorCorrect struct{}

var _ raster.Filter = ColorCorrect{}

func NewColorCorrect() ColorCorrect { return ColorCorrect{} }

// Controls implements [raster.Filter].
func (ColorCorrect) Controls() []raster.Control { return nil }

// Offsets returns the per channel value added by color correction of src.
func (ColorCorrect) Offsets(src *raster.Buffer) (dr, dg, db int) {
	h := NewHistogram(src)
	pr := h.Peak(raster.Red, peakLow, peakHigh)
	pg := h.Peak(raster.Green, peakLow, peakHigh)
	pb := h.Peak(raster.Blue, peakLow, peakHigh)
	avg := (pr + pg + pb) / 3
	return avg - pr, avg - pg, avg - pb
}

// Process implements [raster.Filter].
func (cc ColorCorrect) Process(src *raster.Buffer, region raster.Region) (*raster.Buffer, error) {
	if err := raster.RequireImage("color correct", src); err != nil {
		return nil, err
	}
	sel, err := region.Bind(src)
	if err != nil {
		return nil, err
	}
	dr, dg, db := cc.Offsets(src)
	return processRows(src, sel, func(dst, src []byte) {
		for i := 0; i < len(src); i += 3 {
			dst[i] = raster.Clamp(int(src[i]) + dr)
			dst[i+1] = raster.Clamp(int(src[i+1]) + dg)
			dst[i+2] = raster.Clamp(int(src[i+2]) + db)
		}
	}), nil
}
