// Command pixfx applies a single raster operation to an image file.
//
// Usage:
//
//	pixfx [-split percent] [-mask file] [-stats] [-workers n] <input> <output> <op> [args...]
//
// Inputs may be PNG, JPEG, GIF or QOI. The output format follows the output
// file extension (.png or .qoi).
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
	"github.com/pkg/errors"
	"github.com/soypat/raster"
	"github.com/soypat/raster/filters"
	"github.com/soypat/raster/wavelet"
	"github.com/xfmoulet/qoi"
)

var (
	split   = flag.Int("split", 100, "Percentage of columns, from the left, the operation is applied to")
	mask    = flag.String("mask", "", "Mask image; only pixels where the mask is black are transformed")
	stats   = flag.Bool("stats", false, "Print compressibility statistics of input and output")
	workers = flag.Int("workers", runtime.NumCPU(), "Workers used by convolution filters")
)

const usage = `pixfx [-split percent] [-mask file] [-stats] [-workers n] <input> <output> <op> [args...]

ops:
  red-component | green-component | blue-component
  value-component | intensity-component | luma-component
  brighten <amount> | darken <amount>
  horizontal-flip | vertical-flip
  blur | sharpen | sepia | greyscale | dither | invert
  color-correct | levels-adjust <shadow> <mid> <highlight>
  compress <threshold> | downscale <width> <height>
`

func main() {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage); flag.PrintDefaults() }
	flag.Parse()
	args := flag.Args()
	if len(args) < 3 {
		flag.Usage()
		os.Exit(1)
	}
	log.SetFlags(0)
	log.SetPrefix("pixfx: ")

	if err := run(args[0], args[1], args[2], args[3:]); err != nil {
		if errors.Is(err, raster.ErrInvalidArgument) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		log.Fatalf("%s: %v", args[2], err)
	}
}

func run(inPath, outPath, op string, opArgs []string) error {
	s := raster.NewSession()
	img, err := decode(inPath)
	if err != nil {
		return err
	}
	s.Load("src", img)

	region := raster.Whole()
	if *mask != "" {
		m, err := decode(*mask)
		if err != nil {
			return err
		}
		s.Load("mask", m)
		region = raster.Masked(m)
	} else if *split != 100 {
		region, err = raster.SplitView(*split)
		if err != nil {
			return err
		}
	}

	if err := dispatch(s, op, opArgs, region); err != nil {
		return err
	}
	out, err := s.Image("dst")
	if err != nil {
		return err
	}
	if *stats {
		for _, name := range []string{"src", "dst"} {
			b, _ := s.Image(name)
			st, err := wavelet.Measure(b)
			if err != nil {
				return err
			}
			log.Printf("%s %dx%d colors=%d zstd=%d rle=%d ratio=%.3f",
				name, b.Width(), b.Height(), st.UniqueColors, st.ZstdBytes, st.RunBytes, st.Ratio())
		}
	}
	return encode(outPath, out)
}

func dispatch(s *raster.Session, op string, args []string, region raster.Region) error {
	ints, err := parseInts(args)
	if err != nil {
		return err
	}
	need := func(n int) error {
		if len(ints) != n {
			return raster.InvalidArgument("%s expects %d arguments, got %d", op, n, len(ints))
		}
		return nil
	}
	var f raster.Filter
	switch op {
	case "red-component":
		f = filters.NewIsolate(raster.Red)
	case "green-component":
		f = filters.NewIsolate(raster.Green)
	case "blue-component":
		f = filters.NewIsolate(raster.Blue)
	case "value-component":
		f = filters.NewGrayscale(filters.GrayscaleValue)
	case "intensity-component":
		f = filters.NewGrayscale(filters.GrayscaleIntensity)
	case "luma-component", "greyscale":
		f = filters.NewGrayscale(filters.GrayscaleLuma)
	case "brighten", "darken":
		if err := need(1); err != nil {
			return err
		}
		amount := ints[0]
		if op == "darken" {
			amount = -amount
		}
		f = filters.NewBrighten(amount)
	case "blur", "sharpen":
		c := filters.NewBlur()
		if op == "sharpen" {
			c = filters.NewSharpen()
		}
		if *workers > 1 {
			c.Pool = workerpool.New(*workers)
			defer c.Pool.Close()
		}
		f = c
	case "sepia":
		f = filters.NewSepia()
	case "dither":
		f = filters.NewDither()
	case "invert":
		f = filters.NewInvert()
	case "color-correct":
		f = filters.NewColorCorrect()
	case "levels-adjust":
		if err := need(3); err != nil {
			return err
		}
		if f, err = filters.NewLevels(ints[0], ints[1], ints[2]); err != nil {
			return err
		}
	case "compress":
		if err := need(1); err != nil {
			return err
		}
		if f, err = wavelet.NewCompressor(float64(ints[0])); err != nil {
			return err
		}
	case "horizontal-flip":
		return s.Store("src", "dst", filters.FlipHorizontal)
	case "vertical-flip":
		return s.Store("src", "dst", filters.FlipVertical)
	case "downscale":
		if err := need(2); err != nil {
			return err
		}
		return s.Store("src", "dst", func(b *raster.Buffer) (*raster.Buffer, error) {
			return filters.Downscale(b, ints[0], ints[1])
		})
	default:
		return raster.InvalidArgument("unknown operation %q", op)
	}
	return s.Apply(f, "src", "dst", region)
}

func parseInts(args []string) ([]int, error) {
	ints := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, raster.InvalidArgument("argument %q is not an integer", a)
		}
		ints[i] = v
	}
	return ints, nil
}

func decode(path string) (*raster.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return raster.FromImage(img), nil
}

func encode(path string, img *raster.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".qoi":
		err = qoi.Encode(f, img.RGBA())
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		f.Close()
		return errors.Wrap(err, path)
	}
	return f.Close()
}
