// Package stl reads and writes ASCII STL meshes.
package stl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/stlslice/pkg/geom"
	"github.com/Faultbox/stlslice/pkg/mesh"
)

// STL format errors.
var (
	ErrFormat     = errors.New("malformed STL")
	ErrEndOfInput = errors.New("unexpected end of STL input")
)

// FormatError reports the first line that does not match the grammar.
type FormatError struct {
	Line int    // 1-based line number
	Text string // trimmed line content
	Want string // what the parser expected at this position
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: line %d: expected %s, got %q", ErrFormat, e.Line, e.Want, e.Text)
}

// Unwrap returns ErrFormat.
func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// lineReader yields trimmed, non-blank lines with their line numbers.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func newLineReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &lineReader{sc: sc}
}

// next returns the next non-blank line split into fields.
func (lr *lineReader) next() (string, []string, error) {
	for lr.sc.Scan() {
		lr.line++
		text := strings.TrimSpace(lr.sc.Text())
		if text == "" {
			continue
		}
		return text, strings.Fields(text), nil
	}
	if err := lr.sc.Err(); err != nil {
		return "", nil, fmt.Errorf("reading line %d: %w", lr.line+1, err)
	}
	return "", nil, fmt.Errorf("%w: after line %d", ErrEndOfInput, lr.line)
}

func (lr *lineReader) fault(text, want string) error {
	return &FormatError{Line: lr.line, Text: text, Want: want}
}

// Parse decodes an ASCII STL stream. No partial mesh is returned on error.
func Parse(r io.Reader) (*mesh.Mesh, error) {
	lr := newLineReader(r)

	text, fields, err := lr.next()
	if err != nil {
		return nil, err
	}
	if fields[0] != "solid" {
		return nil, lr.fault(text, "'solid <name>'")
	}
	m := &mesh.Mesh{Name: strings.Join(fields[1:], " ")}

	for {
		text, fields, err := lr.next()
		if err != nil {
			return nil, err
		}
		if fields[0] == "endsolid" {
			return m, nil
		}
		tri, err := parseFacet(lr, text, fields)
		if err != nil {
			return nil, err
		}
		m.Triangles = append(m.Triangles, tri)
	}
}

// parseFacet parses one facet record whose header line has already been read.
func parseFacet(lr *lineReader, text string, fields []string) (mesh.Triangle, error) {
	var tri mesh.Triangle

	if len(fields) != 5 || fields[0] != "facet" || fields[1] != "normal" {
		return tri, lr.fault(text, "'facet normal nx ny nz' or 'endsolid'")
	}
	n, ok := parseVec(fields[2:])
	if !ok {
		return tri, lr.fault(text, "finite numeric normal")
	}
	tri.Normal = n

	if err := expect(lr, "outer", "loop"); err != nil {
		return tri, err
	}
	for i := 0; i < 3; i++ {
		text, fields, err := lr.next()
		if err != nil {
			return tri, err
		}
		if len(fields) != 4 || fields[0] != "vertex" {
			return tri, lr.fault(text, "'vertex x y z'")
		}
		v, ok := parseVec(fields[1:])
		if !ok {
			return tri, lr.fault(text, "finite numeric vertex")
		}
		tri.V[i] = v
	}
	if err := expect(lr, "endloop"); err != nil {
		return tri, err
	}
	if err := expect(lr, "endfacet"); err != nil {
		return tri, err
	}
	return tri, nil
}

// expect reads one line and checks it consists of exactly the given tokens.
func expect(lr *lineReader, tokens ...string) error {
	text, fields, err := lr.next()
	if err != nil {
		return err
	}
	want := "'" + strings.Join(tokens, " ") + "'"
	if len(fields) != len(tokens) {
		return lr.fault(text, want)
	}
	for i, tok := range tokens {
		if fields[i] != tok {
			return lr.fault(text, want)
		}
	}
	return nil
}

func parseVec(fields []string) (geom.Point, bool) {
	var v [3]float64
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return geom.Point{}, false
		}
		v[i] = f
	}
	return geom.Point{X: v[0], Y: v[1], Z: v[2]}, true
}

// ParseFile parses an ASCII STL file from disk.
func ParseFile(path string) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening STL file: %w", err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}
