package geom

import "math"

// Segment is an undirected line between two points. The stored order of
// P1 and P2 is kept for callers that need an orientation (loops, spans) but
// equality and keys ignore it.
type Segment struct {
	P1, P2 Point
}

// Eq reports whether s and o have the same endpoints in either order.
func (s Segment) Eq(o Segment) bool {
	return (s.P1.Eq(o.P1) && s.P2.Eq(o.P2)) || (s.P1.Eq(o.P2) && s.P2.Eq(o.P1))
}

// Canonical returns s with its endpoints sorted by Point.Less.
func (s Segment) Canonical() Segment {
	if s.P2.Less(s.P1) {
		return Segment{P1: s.P2, P2: s.P1}
	}
	return s
}

// Key returns an order-independent bucket key for s.
func (s Segment) Key() [2]Key {
	c := s.Canonical()
	return [2]Key{c.P1.Key(), c.P2.Key()}
}

// Reverse returns s with P1 and P2 swapped.
func (s Segment) Reverse() Segment {
	return Segment{P1: s.P2, P2: s.P1}
}

// Length returns the euclidean length.
func (s Segment) Length() float64 {
	return s.P2.Sub(s.P1).Length()
}

// Slope returns dy/dx in the XY plane. Vertical segments (dx within
// Epsilon of zero) report +Inf regardless of direction.
func (s Segment) Slope() float64 {
	dx := s.P2.X - s.P1.X
	dy := s.P2.Y - s.P1.Y
	if Equal(dx, 0) {
		return math.Inf(1)
	}
	return dy / dx
}

// SameSlope reports whether s and o have Equal slopes.
func (s Segment) SameSlope(o Segment) bool {
	k1, k2 := s.Slope(), o.Slope()
	if math.IsInf(k1, 1) || math.IsInf(k2, 1) {
		return math.IsInf(k1, 1) && math.IsInf(k2, 1)
	}
	return Equal(k1, k2)
}
