package slicer

import "errors"

// Slicing errors. Invalid parameters, a missing mesh and non-finite
// coordinates are fatal to a run; the remaining errors are recorded per layer in the Report.
var (
	ErrInvalidParameter       = errors.New("invalid slice parameter")
	ErrNoMesh                 = errors.New("no mesh loaded")
	ErrNonFiniteMesh          = errors.New("mesh coordinates are not finite")
	ErrDegenerateIntersection = errors.New("degenerate plane intersection")
	ErrUnclosedLoop           = errors.New("contour loop does not close")
	ErrOddParity              = errors.New("odd scanline crossing count")
)
