// Package mesh holds triangle meshes and the transforms applied before slicing.
package mesh

import (
	"math"

	"github.com/Faultbox/stlslice/pkg/geom"
)

// Triangle is one facet: an outward normal and three vertices in the
// winding order of the source.
type Triangle struct {
	Normal geom.Point
	V      [3]geom.Point
}

// FaceNormal computes the unit normal from the vertex winding.
func (t Triangle) FaceNormal() geom.Point {
	e1 := t.V[1].Sub(t.V[0])
	e2 := t.V[2].Sub(t.V[0])
	return e1.Cross(e2).Normalize()
}

// Mesh is an ordered list of triangles. Transform methods return new
// meshes and never modify the receiver.
type Mesh struct {
	Name      string
	Triangles []Triangle
}

// Len returns the number of triangles.
func (m *Mesh) Len() int {
	return len(m.Triangles)
}

// IsEmpty returns true if the mesh has no triangles.
func (m *Mesh) IsEmpty() bool {
	return len(m.Triangles) == 0
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	tris := make([]Triangle, len(m.Triangles))
	copy(tris, m.Triangles)
	return &Mesh{Name: m.Name, Triangles: tris}
}

// Scale returns a copy with every vertex coordinate multiplied by k.
func (m *Mesh) Scale(k float64) *Mesh {
	out := m.Clone()
	for i := range out.Triangles {
		for j := range out.Triangles[i].V {
			out.Triangles[i].V[j] = out.Triangles[i].V[j].Scale(k)
		}
	}
	return out
}

// Remap returns a copy with the axis remap d applied to vertices and normals.
func (m *Mesh) Remap(d Direction) *Mesh {
	out := m.Clone()
	if d == PlusZ {
		return out
	}
	for i := range out.Triangles {
		t := &out.Triangles[i]
		t.Normal = d.Apply(t.Normal)
		for j := range t.V {
			t.V[j] = d.Apply(t.V[j])
		}
	}
	return out
}

// Bounds returns the axis-aligned bounding box of all vertices.
func (m *Mesh) Bounds() Bounds {
	if m.IsEmpty() {
		return Bounds{}
	}
	inf := math.Inf(1)
	b := Bounds{
		Min: geom.Point{X: inf, Y: inf, Z: inf},
		Max: geom.Point{X: -inf, Y: -inf, Z: -inf},
	}
	for _, t := range m.Triangles {
		for _, p := range t.V {
			b.Min.X = math.Min(b.Min.X, p.X)
			b.Min.Y = math.Min(b.Min.Y, p.Y)
			b.Min.Z = math.Min(b.Min.Z, p.Z)
			b.Max.X = math.Max(b.Max.X, p.X)
			b.Max.Y = math.Max(b.Max.Y, p.Y)
			b.Max.Z = math.Max(b.Max.Z, p.Z)
		}
	}
	return b
}

// Bounds is an axis-aligned box.
type Bounds struct {
	Min, Max geom.Point
}

// Finite reports whether every bound coordinate is a finite number.
func (b Bounds) Finite() bool {
	for _, v := range []float64{b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Size returns the extent along each axis.
func (b Bounds) Size() geom.Point {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() geom.Point {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Diameter returns the length of the box diagonal.
func (b Bounds) Diameter() float64 {
	return b.Size().Length()
}
