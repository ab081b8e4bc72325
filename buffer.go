package raster

import (
	"image"
	"image/color"
	"io"
)

// Pixel is a single RGB sample. Channels are always within [0,255].
type Pixel struct {
	R, G, B uint8
}

// Black is the split view divider color.
var Black = Pixel{}

// RGB returns a pixel with each channel clamped to [0,255].
func RGB(r, g, b int) Pixel {
	return Pixel{R: Clamp(r), G: Clamp(g), B: Clamp(b)}
}

// Packed returns the pixel as 0xRRGGBB.
func (p Pixel) Packed() int {
	return int(p.R)<<16 | int(p.G)<<8 | int(p.B)
}

// Channel returns the value of channel ch.
func (p Pixel) Channel(ch Channel) uint8 {
	switch ch {
	case Green:
		return p.G
	case Blue:
		return p.B
	default:
		return p.R
	}
}

// Gray returns a pixel with all channels set to v.
func Gray(v uint8) Pixel { return Pixel{R: v, G: v, B: v} }

// Clamp limits v to [0,255].
func Clamp(v int) uint8 {
	if v < 0 {
		return 0
	} else if v > 255 {
		return 255
	}
	return uint8(v)
}

// ClampTrunc truncates v toward zero and limits it to [0,255].
func ClampTrunc(v float64) uint8 {
	if v != v || v <= -1 {
		return 0
	} else if v >= 255 {
		return 255
	}
	return uint8(int(v))
}

// Channel identifies one of the three color components.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

func (ch Channel) String() string {
	switch ch {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return "unknown"
	}
}

// Buffer is a fixed size grid of RGB888 pixels stored row-major without padding.
// The zero value and a nil *Buffer are the empty image.
type Buffer struct {
	pix    []byte
	width  int
	height int
}

var (
	_ ImageBuffered = (*Buffer)(nil)
	_ image.Image   = (*Buffer)(nil)
)

// NewBuffer returns a black image of the given size. Non-positive sizes return the empty image.
func NewBuffer(width, height int) *Buffer {
	if width <= 0 || height <= 0 {
		return &Buffer{}
	}
	return &Buffer{
		pix:    make([]byte, width*height*3),
		width:  width,
		height: height,
	}
}

// FromPixels builds a buffer from rows of pixels. All rows must have equal length.
func FromPixels(rows [][]Pixel) (*Buffer, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return &Buffer{}, nil
	}
	b := NewBuffer(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != b.width {
			return nil, InvalidArgument("row %d has %d pixels, want %d", y, len(row), b.width)
		}
		for x, p := range row {
			b.SetPixel(x, y, p)
		}
	}
	return b, nil
}

// FromImage converts any [image.Image] into a Buffer. Alpha is discarded.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	b := NewBuffer(bounds.Dx(), bounds.Dy())
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			b.SetPixel(x, y, Pixel{R: c.R, G: c.G, B: c.B})
		}
	}
	return b
}

func (b *Buffer) Width() int {
	if b == nil {
		return 0
	}
	return b.width
}

func (b *Buffer) Height() int {
	if b == nil {
		return 0
	}
	return b.height
}

// Empty reports whether b holds no pixels.
func (b *Buffer) Empty() bool {
	return b == nil || b.width == 0 || b.height == 0
}

// Dims implements [Image].
func (b *Buffer) Dims() Dims {
	return Dims{Width: b.Width(), Height: b.Height(), Stride: 3 * b.Width(), Shape: ShapeRGB888}
}

// ReadAt implements [io.ReaderAt] over the raw RGB888 bytes.
func (b *Buffer) ReadAt(p []byte, off int64) (int, error) {
	if b == nil || off >= int64(len(b.pix)) {
		return 0, io.EOF
	} else if off < 0 {
		return 0, InvalidArgument("negative offset %d", off)
	}
	n := copy(p, b.pix[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Buffer implements [ImageBuffered].
func (b *Buffer) Buffer() []byte {
	if b == nil {
		return nil
	}
	return b.pix
}

// Row returns the raw bytes of row y. Writes to the slice modify the image.
func (b *Buffer) Row(y int) []byte {
	stride := 3 * b.width
	return b.pix[y*stride : (y+1)*stride : (y+1)*stride]
}

// Pixel returns the pixel at column x, row y.
func (b *Buffer) Pixel(x, y int) Pixel {
	i := (y*b.width + x) * 3
	return Pixel{R: b.pix[i], G: b.pix[i+1], B: b.pix[i+2]}
}

// SetPixel stores p at column x, row y.
func (b *Buffer) SetPixel(x, y int, p Pixel) {
	i := (y*b.width + x) * 3
	b.pix[i], b.pix[i+1], b.pix[i+2] = p.R, p.G, p.B
}

// SetRGB stores the channel values at column x, row y, clamping each to [0,255].
func (b *Buffer) SetRGB(x, y int, r, g, bl int) {
	b.SetPixel(x, y, RGB(r, g, bl))
}

// Clone returns a deep copy of b.
func (b *Buffer) Clone() *Buffer {
	if b.Empty() {
		return &Buffer{}
	}
	return &Buffer{
		pix:    append([]byte(nil), b.pix...),
		width:  b.width,
		height: b.height,
	}
}

// Equal reports whether both images have the same size and pixels.
func (b *Buffer) Equal(other *Buffer) bool {
	if b.Empty() || other.Empty() {
		return b.Empty() && other.Empty()
	}
	if b.width != other.width || b.height != other.height {
		return false
	}
	return string(b.pix) == string(other.pix)
}

// Pixels returns a copy of the image as rows of pixels.
func (b *Buffer) Pixels() [][]Pixel {
	rows := make([][]Pixel, b.Height())
	for y := range rows {
		rows[y] = make([]Pixel, b.width)
		for x := range rows[y] {
			rows[y][x] = b.Pixel(x, y)
		}
	}
	return rows
}

// ColorModel implements [image.Image].
func (b *Buffer) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements [image.Image].
func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.Width(), b.Height()) }

// At implements [image.Image].
func (b *Buffer) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= b.Width() || y >= b.Height() {
		return color.RGBA{}
	}
	p := b.Pixel(x, y)
	return color.RGBA{R: p.R, G: p.G, B: p.B, A: 255}
}

// RGBA returns an opaque [image.RGBA] copy of b.
func (b *Buffer) RGBA() *image.RGBA {
	img := image.NewRGBA(b.Bounds())
	for y := 0; y < b.Height(); y++ {
		row := b.Row(y)
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < b.width; x++ {
			dst[x*4], dst[x*4+1], dst[x*4+2], dst[x*4+3] = row[x*3], row[x*3+1], row[x*3+2], 255
		}
	}
	return img
}

// RequireImage returns an error matching [ErrInvalidState] when b is empty.
func RequireImage(op string, b *Buffer) error {
	if b.Empty() {
		return InvalidState(op)
	}
	return nil
}
