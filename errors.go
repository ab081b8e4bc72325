package raster

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds. Use [errors.Is] to classify an error returned by this module.
var (
	// ErrInvalidState is returned when an operation needs an image and none is loaded.
	ErrInvalidState = errors.New("no image loaded")
	// ErrInvalidArgument is returned for out of range parameters.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDimensionMismatch is returned when two images must share dimensions and do not.
	// It also matches ErrInvalidArgument.
	ErrDimensionMismatch = errors.WithMessage(ErrInvalidArgument, "dimension mismatch")
)

// PercentRangeMessage is the user visible text for an out of range split percentage.
const PercentRangeMessage = "The percentage must be between 0 and 100"

// kindError carries a human readable message and the sentinel it belongs to.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// InvalidArgument returns an error matching [ErrInvalidArgument] whose message is exactly the formatted text.
func InvalidArgument(format string, args ...any) error {
	return errors.WithStack(&kindError{kind: ErrInvalidArgument, msg: fmt.Sprintf(format, args...)})
}

// DimensionMismatch returns an error matching [ErrDimensionMismatch].
func DimensionMismatch(want, got Dims) error {
	return errors.WithStack(&kindError{
		kind: ErrDimensionMismatch,
		msg:  fmt.Sprintf("dimension mismatch: want %dx%d, got %dx%d", want.Width, want.Height, got.Width, got.Height),
	})
}

// InvalidState returns an error matching [ErrInvalidState] prefixed by op.
func InvalidState(op string) error {
	return errors.Wrap(ErrInvalidState, op)
}
