package slicer

import (
	"fmt"
	"math"

	"github.com/Faultbox/stlslice/pkg/mesh"
)

// DefaultRetryStep is the fraction of height (or pitch) by which a
// degenerate plane (or scan row) is moved on each retry.
const DefaultRetryStep = 0.01

// Params is the immutable configuration of one slice request.
type Params struct {
	Height    float64        // z step between layers
	Pitch     float64        // spacing between scanlines
	Direction mesh.Direction // axis remap applied before slicing
	Scale     float64        // uniform vertex multiplier
	Speed     float64        // scanning feed speed, carried to the output
	Fast      float64        // rapid traverse speed, carried to the output
	RetryStep float64        // retry nudge as a fraction of Height or Pitch
}

// DefaultParams returns the stock slicing parameters.
func DefaultParams() Params {
	return Params{
		Height:    0.4,
		Pitch:     0.38,
		Direction: mesh.PlusZ,
		Scale:     1,
		Speed:     10,
		Fast:      20,
		RetryStep: DefaultRetryStep,
	}
}

// Validate checks every parameter and returns an error wrapping
// ErrInvalidParameter for the first violation.
func (p Params) Validate() error {
	switch {
	case !(p.Height > 0):
		return fmt.Errorf("%w: height must be > 0, got %g", ErrInvalidParameter, p.Height)
	case !(p.Pitch > 0):
		return fmt.Errorf("%w: pitch must be > 0, got %g", ErrInvalidParameter, p.Pitch)
	case !(p.Scale > 0):
		return fmt.Errorf("%w: scale must be > 0, got %g", ErrInvalidParameter, p.Scale)
	case math.IsInf(p.Height, 0) || math.IsInf(p.Pitch, 0) || math.IsInf(p.Scale, 0):
		return fmt.Errorf("%w: height, pitch and scale must be finite", ErrInvalidParameter)
	case !p.Direction.Valid():
		return fmt.Errorf("%w: direction %q is not one of %v", ErrInvalidParameter, p.Direction, mesh.Directions)
	case p.Speed < 0 || p.Fast < 0:
		return fmt.Errorf("%w: speeds must be >= 0, got speed=%g fast=%g", ErrInvalidParameter, p.Speed, p.Fast)
	case !(p.RetryStep > 0 && p.RetryStep < 1):
		return fmt.Errorf("%w: retry step must be in (0, 1), got %g", ErrInvalidParameter, p.RetryStep)
	}
	return nil
}
