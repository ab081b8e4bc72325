package raster

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/soypat/geometry/ms2"
)

// Control represents an editable parameter of a filter.
// When Value is modified via OnChange, the filter uses it on the next Process call.
type Control interface {
	// Display/human readable name and description.
	Describe() (name, description string)
	// ActualValue returns the current value of the control.
	ActualValue() any
	// ChangeValue attempts to update the ActualValue to newValue.
	// Rejected values return an error matching [ErrInvalidArgument].
	ChangeValue(newValue any) error
}

type ControlOrdered[T cmp.Ordered] struct {
	Name        string
	Description string
	Value       T
	Min         T
	Max         T
	Step        T
	// RangeMessage replaces the default out of range error text when set.
	RangeMessage string
	OnChange     func(T) error
}

func (co *ControlOrdered[T]) Describe() (name, description string) {
	return co.Name, co.Description
}
func (co *ControlOrdered[T]) ActualValue() any { return co.Value }
func (co *ControlOrdered[T]) ChangeValue(newValue any) error {
	v, ok := newValue.(T)
	if !ok {
		return InvalidArgument("new value %T not of type %T", newValue, co.Value)
	}
	if v < co.Min || v > co.Max {
		if co.RangeMessage != "" {
			return InvalidArgument("%s", co.RangeMessage)
		}
		return InvalidArgument("new value %v exceeds limits %v..%v", v, co.Min, co.Max)
	}
	if co.OnChange != nil {
		if err := co.OnChange(v); err != nil {
			return err
		}
	}
	co.Value = v
	return nil
}

// PercentControl returns a split view percentage control in [0,100].
func PercentControl(value int, onChange func(int) error) *ControlOrdered[int] {
	return &ControlOrdered[int]{
		Name:         "Split",
		Description:  "Percentage of columns, from the left, the filter is applied to",
		Value:        value,
		Min:          0,
		Max:          100,
		Step:         1,
		RangeMessage: PercentRangeMessage,
		OnChange:     onChange,
	}
}

type integer interface {
	~int | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int8 | ~int16 | ~int32 | ~int64
}

// enum best generated with stringer commands.
type enum interface {
	integer
	fmt.Stringer
}

// ControlEnum maps to dropdown kind of list.
type ControlEnum[T enum] struct {
	Name        string
	Description string
	Value       T
	ValidValues []T
	OnChange    func(T) error
}

func (ce *ControlEnum[T]) Describe() (name, description string) {
	return ce.Name, ce.Description
}
func (ce *ControlEnum[T]) ActualValue() any {
	return ce.Value
}
func (ce *ControlEnum[T]) ChangeValue(newValue any) error {
	v, ok := newValue.(T)
	if !ok {
		return InvalidArgument("new value %T not of type %T", newValue, ce.Value)
	}
	if !slices.Contains(ce.ValidValues, v) {
		return InvalidArgument("value %v of %T not valid", v, v)
	}
	err := ce.OnChange(v)
	if err == nil {
		ce.Value = v
	}
	return err
}

// CurvePoint is a control point for curve-type controls.
// X represents input (0-1), Y represents output (0-1).
type CurvePoint = ms2.Vec

// NormPoint maps 8 bit input/output levels to a [CurvePoint].
func NormPoint(in, out int) CurvePoint {
	return CurvePoint{X: float32(in) / 255, Y: float32(out) / 255}
}

// Levels returns the 8 bit input and output levels of a [CurvePoint].
func Levels(p CurvePoint) (in, out int) {
	return int(float32(p.X)*255 + 0.5), int(float32(p.Y)*255 + 0.5)
}

// ControlCurve is a spline curve control with editable control points.
// Points are in normalized 0-1 range for both X (input) and Y (output).
type ControlCurve struct {
	Name        string
	Description string
	Points      []CurvePoint // Control points, X/Y in 0-1 range.
	OnChange    func([]CurvePoint) error
}

func (cc *ControlCurve) Describe() (name, description string) {
	return cc.Name, cc.Description
}

func (cc *ControlCurve) ActualValue() any {
	return cc.Points
}

func (cc *ControlCurve) ChangeValue(newValue any) error {
	pts, ok := newValue.([]CurvePoint)
	if !ok {
		return InvalidArgument("new value %T not of type []CurvePoint", newValue)
	}
	err := cc.OnChange(pts)
	if err == nil {
		cc.Points = pts
	}
	return err
}
