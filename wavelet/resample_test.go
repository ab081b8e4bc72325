package wavelet

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBlockFactor(t *testing.T) {
	for threshold, want := range map[float64]int{
		0: 10, 5: 10, 14: 9, 45: 6, 50: 5, 94: 1, 95: 1, 99: 1, 100: 1,
	} {
		if got := BlockFactor(threshold); got != want {
			t.Errorf("BlockFactor(%v)=%d, want %d", threshold, got, want)
		}
	}
}

func grayPlane(w, h int, v func(x, y int) float64) Plane {
	p := Plane{Width: w, Height: h, Data: make([]float64, w*h*3)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 3
			p.Data[i], p.Data[i+1], p.Data[i+2] = v(x, y), v(x, y), v(x, y)
		}
	}
	return p
}

func TestDownsample(t *testing.T) {
	p := grayPlane(4, 2, func(x, y int) float64 { return float64(x + 4*y) })
	got := Downsample(p, 2)
	// Blocks {0,1,4,5} and {2,3,6,7}.
	want := grayPlane(2, 1, func(x, y int) float64 { return []float64{2.5, 4.5}[x] })
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	// 5 columns in 2 blocks: [0,2) and [2,5).
	p = grayPlane(5, 1, func(x, y int) float64 { return float64(x) })
	got = Downsample(p, 2)
	want = grayPlane(2, 1, func(x, y int) float64 { return []float64{0.5, 3}[x] })
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	// Factors larger than the image collapse to a single pixel.
	got = Downsample(grayPlane(3, 2, func(x, y int) float64 { return 6 }), 10)
	if got.Width != 1 || got.Height != 1 || got.Data[0] != 6 {
		t.Errorf("got %+v", got)
	}
}

func TestUpsample(t *testing.T) {
	p := grayPlane(2, 1, func(x, y int) float64 { return float64(10 * (x + 1)) })
	got := Upsample(p, 4, 2)
	want := grayPlane(4, 2, func(x, y int) float64 { return []float64{10, 10, 20, 20}[x] })
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	// Downsample then Upsample with factor 1 is the identity.
	p = grayPlane(3, 3, func(x, y int) float64 { return float64(x*y) + 0.25 })
	if diff := cmp.Diff(p, Upsample(Downsample(p, 1), 3, 3)); diff != "" {
		t.Errorf("factor 1 (-want +got):\n%s", diff)
	}
}
