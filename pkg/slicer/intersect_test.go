package slicer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/stlslice/pkg/geom"
	"github.com/Faultbox/stlslice/pkg/mesh"
)

func tri(a, b, c geom.Point) mesh.Triangle {
	t := mesh.Triangle{V: [3]geom.Point{a, b, c}}
	t.Normal = t.FaceNormal()
	return t
}

func pt(x, y, z float64) geom.Point {
	return geom.Point{X: x, Y: y, Z: z}
}

func TestIntersect(t *testing.T) {
	tests := []struct {
		name string
		t    mesh.Triangle
		z    float64
		want geom.Segment
		cut  Cut
	}{
		{
			name: "two edges crossed",
			t:    tri(pt(0, 0, 0), pt(2, 0, 0), pt(0, 0, 2)),
			z:    1,
			want: geom.Segment{P1: pt(1, 0, 1), P2: pt(0, 0, 1)},
			cut:  CutSegment,
		},
		{
			name: "all above",
			t:    tri(pt(0, 0, 1), pt(1, 0, 1), pt(0, 1, 2)),
			z:    0,
			cut:  CutNone,
		},
		{
			name: "all below",
			t:    tri(pt(0, 0, 1), pt(1, 0, 1), pt(0, 1, 2)),
			z:    3,
			cut:  CutNone,
		},
		{
			name: "vertex grazes plane",
			t:    tri(pt(0, 0, 0), pt(1, 0, 1), pt(0, 1, 1)),
			z:    0,
			cut:  CutNone,
		},
		{
			name: "vertex and opposite edge",
			t:    tri(pt(0, 0, 0), pt(1, 0, 1), pt(1, 0, -1)),
			z:    0,
			want: geom.Segment{P1: pt(0, 0, 0), P2: pt(1, 0, 0)},
			cut:  CutSegment,
		},
		{
			name: "edge in plane",
			t:    tri(pt(0, 0, 0), pt(1, 0, 0), pt(0, 1, 1)),
			z:    0,
			cut:  CutDegenerate,
		},
		{
			name: "face in plane",
			t:    tri(pt(0, 0, 2), pt(1, 0, 2), pt(0, 1, 2)),
			z:    2,
			cut:  CutDegenerate,
		},
		{
			name: "vertex within tolerance of plane",
			t:    tri(pt(0, 0, 1e-9), pt(1, 0, 1), pt(1, 0, -1)),
			z:    0,
			want: geom.Segment{P1: pt(0, 0, 0), P2: pt(1, 0, 0)},
			cut:  CutSegment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cut := Intersect(tt.t, tt.z)
			assert.Equal(t, tt.cut, cut)
			if tt.cut != CutSegment {
				return
			}
			assert.True(t, got.Eq(tt.want), "got %v, want %v", got, tt.want)
			assert.Equal(t, tt.z, got.P1.Z)
			assert.Equal(t, tt.z, got.P2.Z)
		})
	}
}

func TestIntersectOrderIndependent(t *testing.T) {
	a, b, c := pt(0, 0, 0), pt(2, 0, 0), pt(0, 0, 2)
	want, _ := Intersect(tri(a, b, c), 1)
	for _, v := range [][3]geom.Point{{b, c, a}, {c, a, b}, {a, c, b}} {
		got, cut := Intersect(tri(v[0], v[1], v[2]), 1)
		assert.Equal(t, CutSegment, cut)
		assert.True(t, got.Eq(want))
	}
}

func TestCutString(t *testing.T) {
	assert.Equal(t, "Segment", CutSegment.String())
	assert.Equal(t, "Degenerate", CutDegenerate.String())
	assert.Equal(t, "Unknown", Cut(9).String())
}
