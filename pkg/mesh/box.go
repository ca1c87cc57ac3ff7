package mesh

import "github.com/Faultbox/stlslice/pkg/geom"

// Box returns a 12-triangle axis-aligned box spanning min to max, with
// counter-clockwise winding seen from outside.
func Box(min, max geom.Point) *Mesh {
	c := [8]geom.Point{
		{X: min.X, Y: min.Y, Z: min.Z}, // 0
		{X: max.X, Y: min.Y, Z: min.Z}, // 1
		{X: max.X, Y: max.Y, Z: min.Z}, // 2
		{X: min.X, Y: max.Y, Z: min.Z}, // 3
		{X: min.X, Y: min.Y, Z: max.Z}, // 4
		{X: max.X, Y: min.Y, Z: max.Z}, // 5
		{X: max.X, Y: max.Y, Z: max.Z}, // 6
		{X: min.X, Y: max.Y, Z: max.Z}, // 7
	}
	faces := [12][3]int{
		{0, 2, 1}, {0, 3, 2}, // bottom
		{4, 5, 6}, {4, 6, 7}, // top
		{0, 1, 5}, {0, 5, 4}, // front
		{1, 2, 6}, {1, 6, 5}, // right
		{2, 3, 7}, {2, 7, 6}, // back
		{3, 0, 4}, {3, 4, 7}, // left
	}

	m := &Mesh{Name: "box", Triangles: make([]Triangle, 0, len(faces))}
	for _, f := range faces {
		t := Triangle{V: [3]geom.Point{c[f[0]], c[f[1]], c[f[2]]}}
		t.Normal = t.FaceNormal()
		m.Triangles = append(m.Triangles, t)
	}
	return m
}

// UnitCube returns Box((0,0,0), (1,1,1)).
func UnitCube() *Mesh {
	m := Box(geom.Point{}, geom.Point{X: 1, Y: 1, Z: 1})
	m.Name = "cube"
	return m
}
