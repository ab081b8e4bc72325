package filters

import "github.com/soypat/raster"

// NewIsolate creates a filter that replicates a single channel to all three channels.
func NewIsolate(ch raster.Channel) *PointFilter {
	channel := ch
	return &PointFilter{
		Op: "isolate " + ch.String(),
		Fn: func(dst, src []byte) {
			off := int(channel)
			for i := 0; i < len(src); i += 3 {
				v := src[i+off]
				dst[i], dst[i+1], dst[i+2] = v, v, v
			}
		},
		Ctrls: []raster.Control{
			&raster.ControlEnum[raster.Channel]{
				Name:        "Channel",
				Description: "Color component shown as grayscale",
				Value:       channel,
				ValidValues: []raster.Channel{raster.Red, raster.Green, raster.Blue},
				OnChange: func(c raster.Channel) error {
					channel = c
					return nil
				},
			},
		},
	}
}

// IsolateChannel returns a grayscale image of channel ch of src.
func IsolateChannel(src *raster.Buffer, ch raster.Channel) (*raster.Buffer, error) {
	if ch < raster.Red || ch > raster.Blue {
		return nil, raster.InvalidArgument("invalid channel %d", ch)
	}
	return apply(NewIsolate(ch), src)
}

// NewBrighten creates a filter adding amount to every channel, clamped to [0,255].
// Negative amounts darken.
func NewBrighten(amount int) *PointFilter {
	delta := amount
	return &PointFilter{
		Op: "brighten",
		Fn: func(dst, src []byte) {
			for i, v := range src {
				dst[i] = raster.Clamp(int(v) + delta)
			}
		},
		Ctrls: []raster.Control{
			&raster.ControlOrdered[int]{
				Name:        "Amount",
				Description: "Value added to each channel",
				Value:       delta,
				Min:         -255,
				Max:         255,
				Step:        1,
				OnChange: func(v int) error {
					delta = v
					return nil
				},
			},
		},
	}
}

// Brighten adds amount to every channel of src.
func Brighten(src *raster.Buffer, amount int) (*raster.Buffer, error) {
	return apply(NewBrighten(amount), src)
}

// Darken subtracts amount from every channel of src.
func Darken(src *raster.Buffer, amount int) (*raster.Buffer, error) {
	return Brighten(src, -amount)
}

// NewInvert creates a filter that inverts RGB values.
func NewInvert() *PointFilter {
	return &PointFilter{
		Op: "invert",
		Fn: func(dst, src []byte) {
			for i := 0; i < len(src); i++ {
				dst[i] = 255 - src[i]
			}
		},
	}
}

// FlipHorizontal returns src with its column order reversed.
func FlipHorizontal(src *raster.Buffer) (*raster.Buffer, error) {
	if err := raster.RequireImage("flip horizontal", src); err != nil {
		return nil, err
	}
	w := src.Width()
	out := raster.NewBuffer(w, src.Height())
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < w; x++ {
			out.SetPixel(w-1-x, y, src.Pixel(x, y))
		}
	}
	return out, nil
}

// FlipVertical returns src with its row order reversed.
func FlipVertical(src *raster.Buffer) (*raster.Buffer, error) {
	if err := raster.RequireImage("flip vertical", src); err != nil {
		return nil, err
	}
	h := src.Height()
	out := raster.NewBuffer(src.Width(), h)
	for y := 0; y < h; y++ {
		copy(out.Row(h-1-y), src.Row(y))
	}
	return out, nil
}

// SplitChannels returns one grayscale image per channel of src.
func SplitChannels(src *raster.Buffer) (red, green, blue *raster.Buffer, err error) {
	if err = raster.RequireImage("split", src); err != nil {
		return nil, nil, nil, err
	}
	red, _ = IsolateChannel(src, raster.Red)
	green, _ = IsolateChannel(src, raster.Green)
	blue, _ = IsolateChannel(src, raster.Blue)
	return red, green, blue, nil
}

// CombineChannels builds an image taking red from red, green from green and blue from blue.
// All three inputs must share dimensions.
func CombineChannels(red, green, blue *raster.Buffer) (*raster.Buffer, error) {
	for _, img := range []*raster.Buffer{red, green, blue} {
		if err := raster.RequireImage("combine", img); err != nil {
			return nil, err
		}
	}
	d := red.Dims()
	if !d.SameSize(green.Dims()) {
		return nil, raster.DimensionMismatch(d, green.Dims())
	} else if !d.SameSize(blue.Dims()) {
		return nil, raster.DimensionMismatch(d, blue.Dims())
	}
	out := raster.NewBuffer(d.Width, d.Height)
	for y := 0; y < d.Height; y++ {
		dst, r, g, b := out.Row(y), red.Row(y), green.Row(y), blue.Row(y)
		for i := 0; i < len(dst); i += 3 {
			dst[i], dst[i+1], dst[i+2] = r[i], g[i+1], b[i+2]
		}
	}
	return out, nil
}
