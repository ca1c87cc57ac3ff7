// Package solid generates test meshes from signed distance functions.
// Solids sit on the z=0 plane, centered on the z axis.
package solid

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/Faultbox/stlslice/pkg/geom"
	"github.com/Faultbox/stlslice/pkg/mesh"
)

// DefaultCells is the marching cubes resolution along the longest axis.
const DefaultCells = 64

// ErrInvalidSize is returned for non-positive dimensions.
var ErrInvalidSize = errors.New("invalid solid size")

// Box returns an exact 12-triangle box of size x*y*z.
func Box(x, y, z float64) (*mesh.Mesh, error) {
	if !(x > 0 && y > 0 && z > 0) {
		return nil, fmt.Errorf("%w: box %gx%gx%g", ErrInvalidSize, x, y, z)
	}
	m := mesh.Box(geom.Point{X: -x / 2, Y: -y / 2}, geom.Point{X: x / 2, Y: y / 2, Z: z})
	return m, nil
}

// Cylinder returns a cylinder of the given height and radius.
func Cylinder(height, radius float64, cells int) (*mesh.Mesh, error) {
	if !(height > 0 && radius > 0) {
		return nil, fmt.Errorf("%w: cylinder h=%g r=%g", ErrInvalidSize, height, radius)
	}
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("building cylinder: %w", err)
	}
	return toMesh("cylinder", lift(s, height/2), cells), nil
}

// Sphere returns a sphere of the given radius.
func Sphere(radius float64, cells int) (*mesh.Mesh, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("%w: sphere r=%g", ErrInvalidSize, radius)
	}
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("building sphere: %w", err)
	}
	return toMesh("sphere", lift(s, radius), cells), nil
}

// Tube returns a cylinder with a coaxial through hole. Its cross sections
// have two loops.
func Tube(height, outer, inner float64, cells int) (*mesh.Mesh, error) {
	if !(height > 0 && inner > 0 && outer > inner) {
		return nil, fmt.Errorf("%w: tube h=%g outer=%g inner=%g", ErrInvalidSize, height, outer, inner)
	}
	body, err := sdf.Cylinder3D(height, outer, 0)
	if err != nil {
		return nil, fmt.Errorf("building tube body: %w", err)
	}
	// The bore is taller so the difference leaves no skin at the caps.
	bore, err := sdf.Cylinder3D(height*1.5, inner, 0)
	if err != nil {
		return nil, fmt.Errorf("building tube bore: %w", err)
	}
	return toMesh("tube", lift(sdf.Difference3D(body, bore), height/2), cells), nil
}

func lift(s sdf.SDF3, dz float64) sdf.SDF3 {
	return sdf.Transform3D(s, sdf.Translate3d(v3.Vec{Z: dz}))
}

// toMesh tessellates s and drops zero-area triangles.
func toMesh(name string, s sdf.SDF3, cells int) *mesh.Mesh {
	if cells <= 0 {
		cells = DefaultCells
	}
	tris := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))

	m := &mesh.Mesh{Name: name, Triangles: make([]mesh.Triangle, 0, len(tris))}
	for _, tri := range tris {
		var t mesh.Triangle
		for j := 0; j < 3; j++ {
			t.V[j] = geom.Point{X: tri[j].X, Y: tri[j].Y, Z: tri[j].Z}
		}
		area := t.V[1].Sub(t.V[0]).Cross(t.V[2].Sub(t.V[0])).Length()
		if area <= geom.Epsilon {
			continue
		}
		n := tri.Normal()
		t.Normal = geom.Point{X: n.X, Y: n.Y, Z: n.Z}
		m.Triangles = append(m.Triangles, t)
	}
	return m
}
