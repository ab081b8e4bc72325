package raster

import (
	"testing"

	"github.com/pkg/errors"
)

// fillFilter paints selected pixels with a constant color.
type fillFilter struct{ p Pixel }

func (f fillFilter) Controls() []Control { return nil }
func (f fillFilter) Process(src *Buffer, region Region) (*Buffer, error) {
	if err := RequireImage("fill", src); err != nil {
		return nil, err
	}
	sel, err := region.Bind(src)
	if err != nil {
		return nil, err
	}
	return sel.Map(src, nil, func(x, y int) Pixel { return f.p }), nil
}

func TestSession(t *testing.T) {
	s := NewSession()
	if _, err := s.Image("missing"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("want ErrInvalidState, got %v", err)
	}
	src := NewBuffer(4, 1)
	s.Load("src", src)
	if err := s.Apply(fillFilter{Gray(9)}, "src", "dst", Whole()); err != nil {
		t.Fatal(err)
	}
	dst, err := s.Image("dst")
	if err != nil {
		t.Fatal(err)
	}
	if dst.Pixel(3, 0) != Gray(9) {
		t.Errorf("filter not applied: %v", dst.Pixels())
	}
	if src.Pixel(0, 0) != Black {
		t.Error("source modified")
	}

	mask, _ := FromPixels([][]Pixel{{{0, 0, 0}, {1, 1, 1}, {0, 0, 0}, {1, 1, 1}}})
	s.Load("mask", mask)
	if err := s.ApplyMasked(fillFilter{Gray(7)}, "src", "mask", "masked"); err != nil {
		t.Fatal(err)
	}
	masked, _ := s.Image("masked")
	want, _ := FromPixels([][]Pixel{{Gray(7), Black, Gray(7), Black}})
	if !masked.Equal(want) {
		t.Errorf("masked got %v", masked.Pixels())
	}

	s.Load("small", NewBuffer(2, 1))
	err = s.ApplyMasked(fillFilter{}, "small", "mask", "bad")
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("want ErrDimensionMismatch, got %v", err)
	}
	if _, err := s.Image("bad"); err == nil {
		t.Error("failed apply stored an image")
	}

	err = s.Store("src", "copy", func(b *Buffer) (*Buffer, error) { return b.Clone(), nil })
	if err != nil {
		t.Fatal(err)
	}
	names := s.Names()
	wantNames := []string{"copy", "dst", "mask", "masked", "small", "src"}
	if len(names) != len(wantNames) {
		t.Fatalf("names %v", names)
	}
	for i := range names {
		if names[i] != wantNames[i] {
			t.Errorf("names %v, want %v", names, wantNames)
			break
		}
	}
	s.Delete("copy")
	if _, err := s.Image("copy"); err == nil {
		t.Error("deleted image still present")
	}
	s.Reset()
	if len(s.Names()) != 0 {
		t.Error("reset kept images")
	}
}
