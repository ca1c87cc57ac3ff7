package stl

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/stlslice/pkg/geom"
	"github.com/Faultbox/stlslice/pkg/mesh"
)

// rectSTL is a unit square in the XY plane made of two facets.
const rectSTL = `solid rect
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 1 1 0
    endloop
  endfacet
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 1 0
      vertex 0 1 0
    endloop
  endfacet
endsolid rect
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.stl")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestParse_ValidFile(t *testing.T) {
	m, err := Parse(strings.NewReader(rectSTL))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if m.Name != "rect" {
		t.Errorf("expected name 'rect', got %q", m.Name)
	}
	if m.Len() != 2 {
		t.Fatalf("expected 2 facets, got %d", m.Len())
	}
	if m.Triangles[0].Normal != (geom.Point{X: 0, Y: 0, Z: 1}) {
		t.Errorf("unexpected normal %v", m.Triangles[0].Normal)
	}
	if m.Triangles[1].V[2] != (geom.Point{X: 0, Y: 1, Z: 0}) {
		t.Errorf("unexpected vertex %v", m.Triangles[1].V[2])
	}
}

func TestParseFile_ValidFile(t *testing.T) {
	m, err := ParseFile(writeTemp(t, rectSTL))
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if m.Len() != 2 {
		t.Errorf("expected 2 facets, got %d", m.Len())
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "xxx.stl"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestParse_WrongHeader(t *testing.T) {
	_, err := Parse(strings.NewReader("xxx\n"))
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
	if fe.Line != 1 || fe.Text != "xxx" {
		t.Errorf("unexpected fault location: line %d %q", fe.Line, fe.Text)
	}
}

func TestParse_BadFacetLine(t *testing.T) {
	_, err := ParseFile(writeTemp(t, "solid TEST\nfacet norma\n"))
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %T", err)
	}
	if fe.Line != 2 || fe.Text != "facet norma" {
		t.Errorf("fault should reference line 2 'facet norma', got line %d %q", fe.Line, fe.Text)
	}
}

func TestParse_EmptyFile(t *testing.T) {
	_, err := ParseFile(writeTemp(t, ""))
	if !errors.Is(err, ErrEndOfInput) {
		t.Errorf("expected ErrEndOfInput, got %v", err)
	}
}

func TestParse_Truncated(t *testing.T) {
	// Cut the input in the middle of the second facet.
	cut := rectSTL[:strings.LastIndex(rectSTL, "vertex 0 1 0")]
	_, err := Parse(strings.NewReader(cut))
	if !errors.Is(err, ErrEndOfInput) {
		t.Errorf("expected ErrEndOfInput, got %v", err)
	}
}

func TestParse_MissingEndsolid(t *testing.T) {
	in := strings.TrimSuffix(rectSTL, "endsolid rect\n")
	_, err := Parse(strings.NewReader(in))
	if !errors.Is(err, ErrEndOfInput) {
		t.Errorf("expected ErrEndOfInput, got %v", err)
	}
}

func TestParse_Faults(t *testing.T) {
	tests := []struct {
		name string
		in   string
		line int
	}{
		{"bad number", "solid a\nfacet normal 0 0 x\n", 2},
		{"missing outer loop", "solid a\nfacet normal 0 0 1\nloop\n", 3},
		{"short vertex", "solid a\nfacet normal 0 0 1\nouter loop\nvertex 0 0\n", 4},
		{"missing endloop", "solid a\nfacet normal 0 0 1\nouter loop\nvertex 0 0 0\nvertex 1 0 0\nvertex 0 1 0\nendfacet\n", 7},
		{"nan vertex", "solid a\nfacet normal 0 0 1\nouter loop\nvertex 0 0 0\nvertex 1 0 nan\n", 5},
		{"inf vertex", "solid a\nfacet normal 0 0 1\nouter loop\nvertex -Inf 0 0\n", 4},
		{"nan normal", "solid a\nfacet normal NaN 0 1\n", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.in))
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("expected FormatError, got %v", err)
			}
			if fe.Line != tt.line {
				t.Errorf("expected fault on line %d, got %d", tt.line, fe.Line)
			}
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	orig := mesh.Box(geom.Point{X: -0.5, Y: 0, Z: 1.25}, geom.Point{X: 2, Y: 3.1, Z: 4})

	var buf bytes.Buffer
	if err := Write(&buf, orig); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got.Len() != orig.Len() {
		t.Fatalf("expected %d facets, got %d", orig.Len(), got.Len())
	}
	for i := range orig.Triangles {
		for j := 0; j < 3; j++ {
			if got.Triangles[i].V[j] != orig.Triangles[i].V[j] {
				t.Errorf("facet %d vertex %d: %v != %v", i, j, got.Triangles[i].V[j], orig.Triangles[i].V[j])
			}
		}
	}
}
