package filters

import "github.com/soypat/raster"

// GrayscaleMode determines the algorithm for RGB to grayscale conversion.
type GrayscaleMode int

const (
	// GrayscaleLuma uses Rec. 709 luma weights: 0.2126*R + 0.7152*G + 0.0722*B, truncated.
	GrayscaleLuma GrayscaleMode = iota
	// GrayscaleIntensity uses simple average: (R + G + B) / 3
	GrayscaleIntensity
	// GrayscaleValue uses the brightest channel: max(R,G,B)
	GrayscaleValue
)

func (m GrayscaleMode) String() string {
	switch m {
	case GrayscaleLuma:
		return "Luma"
	case GrayscaleIntensity:
		return "Intensity"
	case GrayscaleValue:
		return "Value"
	default:
		return "Unknown"
	}
}

// luma rounds every product before summing so no platform fuses the multiply-adds.
func luma(r, g, b uint8) uint8 {
	return raster.ClampTrunc(float64(0.2126*float64(r)) + float64(0.7152*float64(g)) + float64(0.0722*float64(b)))
}

func intensity(r, g, b uint8) uint8 {
	return uint8((uint32(r) + uint32(g) + uint32(b)) / 3)
}

func gray(mode GrayscaleMode, r, g, b uint8) uint8 {
	switch mode {
	case GrayscaleIntensity:
		return intensity(r, g, b)
	case GrayscaleValue:
		return max(r, g, b)
	default: // GrayscaleLuma
		return luma(r, g, b)
	}
}

// NewGrayscale creates a grayscale filter. Every output pixel replicates the
// gray value to all three channels.
func NewGrayscale(mode GrayscaleMode) *PointFilter {
	filterMode := mode
	return &PointFilter{
		Op: "grayscale",
		Fn: func(dst, src []byte) {
			for i := 0; i < len(src); i += 3 {
				v := gray(filterMode, src[i], src[i+1], src[i+2])
				dst[i], dst[i+1], dst[i+2] = v, v, v
			}
		},
		Ctrls: []raster.Control{
			&raster.ControlEnum[GrayscaleMode]{
				Name:        "Conversion Mode",
				Description: "Algorithm for RGB to grayscale conversion",
				Value:       filterMode,
				ValidValues: []GrayscaleMode{GrayscaleLuma, GrayscaleIntensity, GrayscaleValue},
				OnChange: func(m GrayscaleMode) error {
					filterMode = m // Closure will assign and Fn above pick up.
					return nil
				},
			},
		},
	}
}

// Luma returns the luma grayscale of src.
func Luma(src *raster.Buffer) (*raster.Buffer, error) {
	return apply(NewGrayscale(GrayscaleLuma), src)
}

// Intensity returns the channel average grayscale of src.
func Intensity(src *raster.Buffer) (*raster.Buffer, error) {
	return apply(NewGrayscale(GrayscaleIntensity), src)
}

// Value returns the max channel grayscale of src.
func Value(src *raster.Buffer) (*raster.Buffer, error) {
	return apply(NewGrayscale(GrayscaleValue), src)
}
