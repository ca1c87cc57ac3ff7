package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/stlslice/pkg/geom"
)

// ErrUnknownDirection is returned by ParseDirection for unsupported names.
var ErrUnknownDirection = errors.New("unknown slice direction")

// Direction names the model axis that is mapped onto the slicing z axis.
type Direction string

// Supported directions.
const (
	PlusX  Direction = "+X"
	MinusX Direction = "-X"
	PlusY  Direction = "+Y"
	MinusY Direction = "-Y"
	PlusZ  Direction = "+Z"
	MinusZ Direction = "-Z"
)

// Directions lists every supported direction.
var Directions = []Direction{PlusX, MinusX, PlusY, MinusY, PlusZ, MinusZ}

// ParseDirection validates a direction name.
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
	return d, nil
}

// Valid reports whether d is one of the six supported directions.
func (d Direction) Valid() bool {
	for _, v := range Directions {
		if d == v {
			return true
		}
	}
	return false
}

// String returns the direction name.
func (d Direction) String() string {
	return string(d)
}

// Apply remaps p so that slicing along z follows d.
func (d Direction) Apply(p geom.Point) geom.Point {
	switch d {
	case PlusX:
		p.X, p.Z = p.Z, p.X
	case MinusX:
		p.X, p.Z = p.Z, -p.X
	case PlusY:
		p.Y, p.Z = p.Z, p.Y
	case MinusY:
		p.Y, p.Z = p.Z, -p.Y
	case MinusZ:
		p.Z = -p.Z
	}
	return p
}
