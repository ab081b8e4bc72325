package raster

import (
	"testing"

	"github.com/pkg/errors"
)

func TestSplitViewPercentRange(t *testing.T) {
	for _, p := range []int{-1, 101, 1000} {
		_, err := SplitView(p)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("SplitView(%d): want ErrInvalidArgument, got %v", p, err)
		}
		if err.Error() != "The percentage must be between 0 and 100" {
			t.Errorf("unexpected message %q", err.Error())
		}
	}
}

func TestSelectorActions(t *testing.T) {
	img := NewBuffer(10, 2)
	tests := []struct {
		percent  int
		divider  int // -1 for none
		limitCol int
	}{
		{percent: 100, divider: -1, limitCol: 10},
		{percent: 0, divider: 0, limitCol: 0},
		{percent: 50, divider: 5, limitCol: 5},
		{percent: 33, divider: 3, limitCol: 3},
		{percent: 99, divider: 9, limitCol: 9},
	}
	for _, tc := range tests {
		region, err := SplitView(tc.percent)
		if err != nil {
			t.Fatal(err)
		}
		sel, err := region.Bind(img)
		if err != nil {
			t.Fatal(err)
		}
		if sel.ColumnLimit() != tc.limitCol {
			t.Errorf("p=%d: limit %d, want %d", tc.percent, sel.ColumnLimit(), tc.limitCol)
		}
		for x := 0; x < img.Width(); x++ {
			want := Keep
			switch {
			case x == tc.divider:
				want = Divider
			case x < tc.limitCol:
				want = Transform
			}
			if got := sel.At(x, 1); got != want {
				t.Errorf("p=%d x=%d: got %d, want %d", tc.percent, x, got, want)
			}
		}
	}
}

func TestSelectorMask(t *testing.T) {
	img := NewBuffer(2, 2)
	mask, _ := FromPixels([][]Pixel{
		{{0, 0, 0}, {255, 255, 255}},
		{{0, 0, 1}, {0, 0, 0}},
	})
	sel, err := Masked(mask).Bind(img)
	if err != nil {
		t.Fatal(err)
	}
	want := [2][2]Action{{Transform, Keep}, {Keep, Transform}}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := sel.At(x, y); got != want[y][x] {
				t.Errorf("(%d,%d) got %d, want %d", x, y, got, want[y][x])
			}
		}
	}

	_, err = Masked(NewBuffer(3, 2)).Bind(img)
	if !errors.Is(err, ErrDimensionMismatch) || !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("want dimension mismatch, got %v", err)
	}
	_, err = Masked(nil).Bind(img)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("nil mask: want dimension mismatch, got %v", err)
	}
}

func TestSelectorCompose(t *testing.T) {
	src, _ := FromPixels([][]Pixel{{{1, 1, 1}, {2, 2, 2}, {3, 3, 3}, {4, 4, 4}}})
	fx, _ := FromPixels([][]Pixel{{{9, 9, 9}, {8, 8, 8}, {7, 7, 7}, {6, 6, 6}}})
	region, _ := SplitView(50)
	sel, _ := region.Bind(src)
	got := sel.Compose(src, fx)
	want, _ := FromPixels([][]Pixel{{{9, 9, 9}, {8, 8, 8}, {0, 0, 0}, {4, 4, 4}}})
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got.Pixels(), want.Pixels())
	}

	whole, _ := Whole().Bind(src)
	if got := whole.Compose(src, fx); !got.Equal(fx) {
		t.Errorf("whole compose got %v", got.Pixels())
	}

	mapped := sel.Map(src, nil, func(x, y int) Pixel { return Gray(100) })
	want, _ = FromPixels([][]Pixel{{{100, 100, 100}, {100, 100, 100}, {0, 0, 0}, {4, 4, 4}}})
	if !mapped.Equal(want) {
		t.Errorf("map got %v", mapped.Pixels())
	}
}
