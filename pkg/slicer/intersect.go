package slicer

import (
	"github.com/Faultbox/stlslice/pkg/geom"
	"github.com/Faultbox/stlslice/pkg/mesh"
)

// Cut classifies the result of intersecting a triangle with a plane.
type Cut int

const (
	CutNone       Cut = iota // the plane misses or only touches the triangle
	CutSegment               // one segment of positive length
	CutDegenerate            // an edge or the face lies in the plane; re-plan z
)

// String returns a human-readable cut kind.
func (c Cut) String() string {
	switch c {
	case CutNone:
		return "None"
	case CutSegment:
		return "Segment"
	case CutDegenerate:
		return "Degenerate"
	default:
		return "Unknown"
	}
}

// Intersect cuts t with the horizontal plane at height z.
func Intersect(t mesh.Triangle, z float64) (geom.Segment, Cut) {
	var on, off []int
	above, below := 0, 0
	for i, p := range t.V {
		switch {
		case geom.Equal(p.Z, z):
			on = append(on, i)
		case p.Z > z:
			above++
			off = append(off, i)
		default:
			below++
			off = append(off, i)
		}
	}

	switch len(on) {
	case 0:
		if above == 3 || below == 3 {
			return geom.Segment{}, CutNone
		}
		var pts []geom.Point
		for i := 0; i < 3; i++ {
			a, b := t.V[i], t.V[(i+1)%3]
			if crosses(a, b, z) {
				pts = append(pts, lerpZ(a, b, z))
			}
		}
		if len(pts) != 2 {
			return geom.Segment{}, CutDegenerate
		}
		return segmentOrDegenerate(pts[0], pts[1], z)

	case 1:
		a, b := t.V[off[0]], t.V[off[1]]
		if !crosses(a, b, z) {
			// Both other vertices on one side: the plane grazes a vertex.
			return geom.Segment{}, CutNone
		}
		return segmentOrDegenerate(t.V[on[0]], lerpZ(a, b, z), z)

	default:
		return geom.Segment{}, CutDegenerate
	}
}

// crosses reports a strict sign change of z along a-b.
func crosses(a, b geom.Point, z float64) bool {
	return (a.Z-z)*(b.Z-z) < 0
}

// lerpZ returns the point on a-b at height z, interpolating x and y by the
// z fraction. The result carries z exactly.
func lerpZ(a, b geom.Point, z float64) geom.Point {
	f := (z - a.Z) / (b.Z - a.Z)
	return geom.Point{
		X: a.X + f*(b.X-a.X),
		Y: a.Y + f*(b.Y-a.Y),
		Z: z,
	}
}

// segmentOrDegenerate builds the cut at height z. An on-plane vertex is
// snapped to z; cuts collapsing to a point within tolerance mean the plane
// is nearly tangent.
func segmentOrDegenerate(p1, p2 geom.Point, z float64) (geom.Segment, Cut) {
	p1.Z, p2.Z = z, z
	if p1.Eq(p2) {
		return geom.Segment{}, CutDegenerate
	}
	return geom.Segment{P1: p1, P2: p2}, CutSegment
}
