// Package wavelet implements a lossy Haar wavelet compressor for raster images.
//
// The compressor flattens an image into interleaved RGB samples, applies a
// multi-level 1D Haar decomposition, zeroes small coefficients, reconstructs the
// samples and finally averages blocks of pixels. The output has the original size
// but fewer distinct values, which downstream encoders compress better.
package wavelet

import "math"

type Float interface {
	~float32 | ~float64
}

// Transform applies the multi-level Haar decomposition to data in place.
// Each level replaces the pairs (a,b) of the leading l samples with averages
// (a+b)/√2 in the first half and differences (a-b)/√2 in the second half, then
// halves l. With an odd l the trailing sample stays where it is.
func Transform[T Float](data []T) {
	tmp := make([]T, len(data))
	for l := len(data); l > 1; l /= 2 {
		forwardLevel(data, tmp, l)
	}
}

// Invert reverses [Transform] in place.
func Invert[T Float](data []T) {
	tmp := make([]T, len(data))
	for _, l := range levels(len(data)) {
		inverseLevel(data, tmp, l)
	}
}

// levels returns the level lengths of a Transform over n samples in inverse order.
func levels(n int) []int {
	var ls []int
	for l := n; l > 1; l /= 2 {
		ls = append(ls, l)
	}
	for i, j := 0, len(ls)-1; i < j; i, j = i+1, j-1 {
		ls[i], ls[j] = ls[j], ls[i]
	}
	return ls
}

func forwardLevel[T Float](data, tmp []T, l int) {
	half := l / 2
	for i := 0; i < half; i++ {
		a, b := data[2*i], data[2*i+1]
		tmp[i] = (a + b) / math.Sqrt2
		tmp[half+i] = (a - b) / math.Sqrt2
	}
	copy(data[:2*half], tmp[:2*half])
}

func inverseLevel[T Float](data, tmp []T, l int) {
	half := l / 2
	for i := 0; i < half; i++ {
		avg, diff := data[i], data[half+i]
		tmp[2*i] = (avg + diff) / math.Sqrt2
		tmp[2*i+1] = (avg - diff) / math.Sqrt2
	}
	copy(data[:2*half], tmp[:2*half])
}

// Threshold zeroes every coefficient whose magnitude is below limit and
// returns how many were zeroed.
func Threshold[T Float](coeffs []T, limit T) (zeroed int) {
	for i, c := range coeffs {
		if c != 0 && c < limit && -c < limit {
			coeffs[i] = 0
			zeroed++
		}
	}
	return zeroed
}
