package filters

import (
	"github.com/soypat/raster"
)

// Curve is the quadratic through (shadow,0), (mid,128) and (highlight,255).
// It is evaluated with exact integer arithmetic: f(x) = (a*x*x + b*x + c) / d.
type Curve struct {
	Shadow, Mid, Highlight int

	a, b, c, d int64
}

// NewCurve fits the levels curve. Requires 0 <= shadow < mid < highlight <= 255.
func NewCurve(shadow, mid, highlight int) (Curve, error) {
	if shadow < 0 || highlight > 255 || shadow >= mid || mid >= highlight {
		return Curve{}, raster.InvalidArgument("levels must satisfy 0 <= shadow < mid < highlight <= 255, got %d, %d, %d", shadow, mid, highlight)
	}
	s, m, h := int64(shadow), int64(mid), int64(highlight)
	// Lagrange basis denominators for the mid and highlight points. The shadow
	// point maps to 0 and contributes nothing.
	d1 := (m - s) * (m - h)
	d2 := (h - s) * (h - m)
	return Curve{
		Shadow:    shadow,
		Mid:       mid,
		Highlight: highlight,
		a:         128*d2 + 255*d1,
		b:         -128*d2*(s+h) - 255*d1*(s+m),
		c:         128*d2*s*h + 255*d1*s*m,
		d:         d1 * d2,
	}, nil
}

// Coefficients returns a, b, c of f(x) = a*x² + b*x + c.
func (cv Curve) Coefficients() (a, b, c float64) {
	d := float64(cv.d)
	return float64(cv.a) / d, float64(cv.b) / d, float64(cv.c) / d
}

// Eval returns f(x) truncated toward zero and clamped to [0,255].
func (cv Curve) Eval(x uint8) uint8 {
	v := int64(x)
	n := cv.a*v*v + cv.b*v + cv.c
	return raster.Clamp(int(n / cv.d))
}

// Table returns the curve evaluated at every 8 bit value.
func (cv Curve) Table() (lut [256]uint8) {
	for i := range lut {
		lut[i] = cv.Eval(uint8(i))
	}
	return lut
}

// Levels applies a [Curve] to the three channels.
type Levels struct {
	curve Curve
	lut   [256]uint8
	ctrls []raster.Control
}

var _ raster.Filter = (*Levels)(nil)

// NewLevels creates a levels adjustment filter.
func NewLevels(shadow, mid, highlight int) (*Levels, error) {
	cv, err := NewCurve(shadow, mid, highlight)
	if err != nil {
		return nil, err
	}
	l := &Levels{curve: cv, lut: cv.Table()}
	l.ctrls = []raster.Control{
		&raster.ControlCurve{
			Name:        "Levels",
			Description: "Shadow, mid and highlight input levels mapped to 0, 128 and 255",
			Points:      l.points(),
			OnChange:    l.setPoints,
		},
	}
	return l, nil
}

// Curve returns the fitted curve.
func (l *Levels) Curve() Curve { return l.curve }

func (l *Levels) points() []raster.CurvePoint {
	return []raster.CurvePoint{
		raster.NormPoint(l.curve.Shadow, 0),
		raster.NormPoint(l.curve.Mid, 128),
		raster.NormPoint(l.curve.Highlight, 255),
	}
}

func (l *Levels) setPoints(pts []raster.CurvePoint) error {
	if len(pts) != 3 {
		return raster.InvalidArgument("levels curve needs 3 points, got %d", len(pts))
	}
	s, _ := raster.Levels(pts[0])
	m, _ := raster.Levels(pts[1])
	h, _ := raster.Levels(pts[2])
	cv, err := NewCurve(s, m, h)
	if err != nil {
		return err
	}
	l.curve, l.lut = cv, cv.Table()
	return nil
}

// Controls implements [raster.Filter].
func (l *Levels) Controls() []raster.Control { return l.ctrls }

// Process implements [raster.Filter].
func (l *Levels) Process(src *raster.Buffer, region raster.Region) (*raster.Buffer, error) {
	if err := raster.RequireImage("levels", src); err != nil {
		return nil, err
	}
	sel, err := region.Bind(src)
	if err != nil {
		return nil, err
	}
	lut := l.lut
	return processRows(src, sel, func(dst, src []byte) {
		for i, v := range src {
			dst[i] = lut[v]
		}
	}), nil
}

// LevelsAdjust applies the levels curve through shadow, mid and highlight to region of src.
func LevelsAdjust(src *raster.Buffer, shadow, mid, highlight int, region raster.Region) (*raster.Buffer, error) {
	l, err := NewLevels(shadow, mid, highlight)
	if err != nil {
		return nil, err
	}
	return l.Process(src, region)
}
