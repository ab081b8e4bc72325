package wavelet

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestTransformKnown(t *testing.T) {
	tests := []struct {
		in, want []float64
	}{
		{[]float64{1, 1}, []float64{math.Sqrt2, 0}},
		{[]float64{4, 2, 5, 5}, []float64{8, -2, math.Sqrt2, 0}},
		{[]float64{7}, []float64{7}},
		{[]float64{}, []float64{}},
		// Odd length: the trailing sample is not paired.
		{[]float64{1, 3, 9}, []float64{4 / math.Sqrt2, -2 / math.Sqrt2, 9}},
	}
	for _, tc := range tests {
		got := append([]float64{}, tc.in...)
		Transform(got)
		if diff := cmp.Diff(tc.want, got, approx); diff != "" {
			t.Errorf("Transform(%v) (-want +got):\n%s", tc.in, diff)
		}
	}
}

func TestTransformRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{1, 2, 3, 5, 8, 12, 64, 99, 300} {
		data := make([]float64, n)
		for i := range data {
			data[i] = rng.Float64() * 255
		}
		got := append([]float64{}, data...)
		Transform(got)
		Invert(got)
		if diff := cmp.Diff(data, got, approx); diff != "" {
			t.Errorf("n=%d round trip (-want +got):\n%s", n, diff)
		}
	}

	f32 := []float32{10, 20, 30, 40, 50, 60}
	got := append([]float32{}, f32...)
	Transform(got)
	Invert(got)
	if diff := cmp.Diff(f32, got, cmpopts.EquateApprox(0, 1e-4)); diff != "" {
		t.Errorf("float32 round trip (-want +got):\n%s", diff)
	}
}

func TestTransformEnergy(t *testing.T) {
	// The transform is orthonormal: the sum of squares is preserved.
	rng := rand.New(rand.NewSource(2))
	data := make([]float64, 256)
	var before float64
	for i := range data {
		data[i] = rng.Float64()*2 - 1
		before += data[i] * data[i]
	}
	Transform(data)
	var after float64
	for _, v := range data {
		after += v * v
	}
	if math.Abs(before-after) > 1e-9 {
		t.Errorf("energy %g became %g", before, after)
	}
}

func TestThreshold(t *testing.T) {
	c := []float64{0.5, -0.5, 2, -3, 0, 1, -1}
	n := Threshold(c, 1)
	if n != 2 {
		t.Errorf("zeroed %d, want 2", n)
	}
	if diff := cmp.Diff([]float64{0, 0, 2, -3, 0, 1, -1}, c); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if n := Threshold(c, 0); n != 0 {
		t.Errorf("threshold 0 zeroed %d", n)
	}
}
