package wavelet

import (
	"bytes"

	"github.com/klauspost/compress/zstd"
	"github.com/octu0/runlength"
	"github.com/pkg/errors"
	"github.com/soypat/raster"
)

// Stats describes how well an image lends itself to entropy coding.
type Stats struct {
	Pixels       int
	UniqueColors int
	RawBytes     int
	ZstdBytes    int // Size of the raw RGB888 samples after zstd.
	RunBytes     int // Size of the raw RGB888 samples after run-length coding.
}

// Ratio returns ZstdBytes / RawBytes.
func (s Stats) Ratio() float64 {
	if s.RawBytes == 0 {
		return 0
	}
	return float64(s.ZstdBytes) / float64(s.RawBytes)
}

// Measure computes [Stats] for img.
func Measure(img *raster.Buffer) (Stats, error) {
	if err := raster.RequireImage("measure", img); err != nil {
		return Stats{}, err
	}
	pix := img.Buffer()
	colors := make(map[int]struct{})
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			colors[img.Pixel(x, y).Packed()] = struct{}{}
		}
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return Stats{}, errors.WithStack(err)
	}
	compressed := enc.EncodeAll(pix, nil)
	if err := enc.Close(); err != nil {
		return Stats{}, errors.WithStack(err)
	}

	rle := bytes.NewBuffer(nil)
	if err := runlength.NewEncoder(rle).Encode(pix); err != nil {
		return Stats{}, errors.WithStack(err)
	}
	return Stats{
		Pixels:       img.Width() * img.Height(),
		UniqueColors: len(colors),
		RawBytes:     len(pix),
		ZstdBytes:    len(compressed),
		RunBytes:     rle.Len(),
	}, nil
}
