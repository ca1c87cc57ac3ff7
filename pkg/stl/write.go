package stl

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/stlslice/pkg/mesh"
)

// Write encodes m using the ASCII grammar accepted by Parse.
func Write(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)

	name := m.Name
	if name == "" {
		name = "mesh"
	}
	fmt.Fprintf(bw, "solid %s\n", name)
	for _, t := range m.Triangles {
		fmt.Fprintf(bw, "  facet normal %e %e %e\n", t.Normal.X, t.Normal.Y, t.Normal.Z)
		fmt.Fprintln(bw, "    outer loop")
		for _, v := range t.V {
			fmt.Fprintf(bw, "      vertex %.17g %.17g %.17g\n", v.X, v.Y, v.Z)
		}
		fmt.Fprintln(bw, "    endloop")
		fmt.Fprintln(bw, "  endfacet")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)

	return bw.Flush()
}

// WriteFile writes m to path, replacing any existing file.
func WriteFile(path string, m *mesh.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating STL file: %w", err)
	}
	if err := Write(f, m); err != nil {
		f.Close()
		return fmt.Errorf("writing STL file: %w", err)
	}
	return f.Close()
}
