package raster

import (
	"io"

	"github.com/pkg/errors"
)

// Image is a low-level, whole-buffer image access abstraction of raw memory.
// As made implicit by Dims signature, row spacing must be homogenous in images.
type Image interface {
	// Dims returns information on in-memory image structure.
	// Row spacing must be homogenous in entire image separated by stride bytes.
	Dims() Dims
	// ReadAt reads from the image buffer of pixels, which may be in-memory or elsewhere.
	//
	// Users should always try casting [Image] to [ImageBuffered]
	// to see if they can work with the image in-memory which is more efficient.
	io.ReaderAt
}

type ImageBuffered interface {
	Image
	// Buffer returns the raw underlying buffer for images stored in memory
	// or nil to signal buffer is currently not in memory.
	Buffer() []byte
}

// Filter transforms a source [Buffer] into a freshly allocated one.
// The source is never modified. Which pixels are transformed is decided by region,
// see [Whole], [SplitView] and [Masked].
type Filter interface {
	// Process applies the filter to src and returns the result.
	// An empty src returns an error matching [ErrInvalidState].
	Process(src *Buffer, region Region) (*Buffer, error)
	// Controls returns the actual controls of the filter.
	// Controls should remain valid even after calling [Control.ChangeValue]
	// and their [Control.ActualValue] return the updated value.
	Controls() []Control
}

type Shape int

const (
	shapeUndefined Shape = iota // undefined
	ShapeRGB888                 // rgb888
	ShapeRGBA8888               // rgba8888
)

func (sh Shape) BitsPerPixel() (bits int) {
	switch sh {
	default:
		bits = -1
	case ShapeRGBA8888:
		bits = 32
	case ShapeRGB888:
		bits = 24
	}
	return bits
}

type Dims struct {
	Width  int
	Height int
	Stride int
	Shape  Shape
}

// Validate checks the structure of an image. An empty image is reported as [ErrInvalidState].
func (d Dims) Validate() error {
	pixbits := d.Shape.BitsPerPixel()
	if d.Height <= 0 || d.Width <= 0 {
		return ErrInvalidState
	} else if pixbits < 1 {
		return errors.New("bad pixel shape")
	} else if (d.Width*pixbits+7)/8 > d.Stride {
		return errors.New("stride smaller than pixel row size")
	}
	return nil
}

// SameSize reports whether both dimensions describe the same pixel grid size.
func (d Dims) SameSize(other Dims) bool {
	return d.Width == other.Width && d.Height == other.Height
}

func (d Dims) NumPixels() int64 {
	return int64(d.Height) * int64(d.Width)
}

// Size returns the readable section size of raw image in bytes.
func (d Dims) Size() int64 {
	if d.Height == 0 || d.Width == 0 {
		return 0
	}
	return int64(d.Height-1)*int64(d.Stride) + int64(d.SizeRow())
}

func (d Dims) SizeRow() int {
	return (d.Width*d.Shape.BitsPerPixel() + 7) / 8
}

// ImageRow returns the bytes of a single row of img. dst is used
// when img is not buffered in memory.
func ImageRow(dst []byte, img Image, row int) (resultSized []byte, err error) {
	d := img.Dims()
	err = d.Validate()
	if err != nil {
		return nil, err
	}
	rowLenBytes := d.SizeRow()
	if len(dst) < rowLenBytes {
		return nil, io.ErrShortBuffer
	} else if row < 0 || row >= d.Height {
		return nil, errors.New("row out of bounds")
	}
	off := int64(row) * int64(d.Stride)
	if buffered, ok := img.(ImageBuffered); ok {
		buf := buffered.Buffer()
		if buf != nil {
			return buf[off : off+int64(rowLenBytes)], nil
		}
	}
	resultSized = dst[:rowLenBytes]
	n, err := img.ReadAt(resultSized, off)
	if n != rowLenBytes {
		return nil, io.ErrShortWrite
	}
	return resultSized, nil
}

// ReadImage copies any RGB888 or RGBA8888 [Image] into a new [Buffer].
// Alpha is discarded.
func ReadImage(img Image) (*Buffer, error) {
	d := img.Dims()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	bpp := d.Shape.BitsPerPixel() / 8
	if d.Shape != ShapeRGB888 && d.Shape != ShapeRGBA8888 {
		return nil, InvalidArgument("unsupported pixel shape %d", d.Shape)
	}
	out := NewBuffer(d.Width, d.Height)
	rowBuf := make([]byte, d.SizeRow())
	for y := 0; y < d.Height; y++ {
		row, err := ImageRow(rowBuf, img, y)
		if err != nil {
			return nil, err
		}
		dst := out.Row(y)
		for x := 0; x < d.Width; x++ {
			copy(dst[x*3:x*3+3], row[x*bpp:x*bpp+3])
		}
	}
	return out, nil
}
