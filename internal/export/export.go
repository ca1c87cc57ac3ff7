// Package export dumps a sliced stack as nested XML or YAML for downstream
// path planning tools.
package export

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/stlslice/pkg/geom"
	"github.com/Faultbox/stlslice/pkg/slicer"
)

// ErrUnknownFormat is returned for an unsupported dump format.
var ErrUnknownFormat = errors.New("unknown export format")

// Format selects the dump encoding.
type Format string

// Supported formats.
const (
	XML  Format = "xml"
	YAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case XML, YAML:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Document is the root of a dump: slice > parameters, layers.
type Document struct {
	XMLName    xml.Name   `xml:"slice" yaml:"-"`
	RunID      string     `xml:"run,attr,omitempty" yaml:"run,omitempty"`
	Parameters Parameters `xml:"parameters" yaml:"parameters"`
	Layers     Layers     `xml:"layers" yaml:"layers"`
}

// Parameters echoes the slice request.
type Parameters struct {
	Height    float64 `xml:"height" yaml:"height"`
	Pitch     float64 `xml:"pitch" yaml:"pitch"`
	Speed     float64 `xml:"speed" yaml:"speed"`
	Fast      float64 `xml:"fast" yaml:"fast"`
	Direction string  `xml:"direction" yaml:"direction"`
	Scale     float64 `xml:"scale" yaml:"scale"`
}

// Layers holds every accepted layer in ascending z.
type Layers struct {
	Count int     `xml:"count,attr" yaml:"count"`
	Layer []Layer `xml:"layer" yaml:"layer"`
}

// Layer is one cross-section with its contours and raster chunks.
type Layer struct {
	ID     int     `xml:"id,attr" yaml:"id"`
	Z      float64 `xml:"z,attr" yaml:"z"`
	Loops  Loops   `xml:"loops" yaml:"loops"`
	Chunks Chunks  `xml:"chunks" yaml:"chunks"`
}

// Loops lists the closed contours of a layer.
type Loops struct {
	Count int    `xml:"count,attr" yaml:"count"`
	Loop  []Path `xml:"loop" yaml:"loop"`
}

// Chunks lists the raster runs of a layer.
type Chunks struct {
	Count int    `xml:"count,attr" yaml:"count"`
	Chunk []Path `xml:"chunk" yaml:"chunk"`
}

// Path is one loop or chunk: an ordered list of lines.
type Path struct {
	ID    int    `xml:"id,attr" yaml:"id"`
	Lines []Line `xml:"line" yaml:"line"`
}

// Line is a single segment.
type Line struct {
	P1 Point `xml:"p1" yaml:"p1"`
	P2 Point `xml:"p2" yaml:"p2"`
}

// Point is a position in model space.
type Point struct {
	X float64 `xml:"x,attr" yaml:"x"`
	Y float64 `xml:"y,attr" yaml:"y"`
	Z float64 `xml:"z,attr" yaml:"z"`
}

// NewDocument builds the dump of stack. rep supplies the run id and the
// parameters and may be nil.
func NewDocument(stack *slicer.Stack, rep *slicer.Report) *Document {
	doc := &Document{}
	if rep != nil {
		doc.RunID = rep.RunID
		doc.Parameters = Parameters{
			Height:    rep.Params.Height,
			Pitch:     rep.Params.Pitch,
			Speed:     rep.Params.Speed,
			Fast:      rep.Params.Fast,
			Direction: rep.Params.Direction.String(),
			Scale:     rep.Params.Scale,
		}
	}
	if stack == nil {
		return doc
	}

	doc.Layers.Count = stack.Len()
	for i, l := range stack.Layers() {
		layer := Layer{ID: i, Z: l.Z}
		for j, loop := range l.Loops {
			layer.Loops.Loop = append(layer.Loops.Loop, newPath(j, loop))
		}
		layer.Loops.Count = len(l.Loops)
		for j, chunk := range l.Chunks {
			layer.Chunks.Chunk = append(layer.Chunks.Chunk, newPath(j, chunk))
		}
		layer.Chunks.Count = len(l.Chunks)
		doc.Layers.Layer = append(doc.Layers.Layer, layer)
	}
	return doc
}

func newPath(id int, segs []geom.Segment) Path {
	p := Path{ID: id, Lines: make([]Line, len(segs))}
	for i, s := range segs {
		p.Lines[i] = Line{P1: newPoint(s.P1), P2: newPoint(s.P2)}
	}
	return p
}

func newPoint(p geom.Point) Point {
	return Point{X: p.X, Y: p.Y, Z: p.Z}
}

// Write encodes doc to w.
func Write(w io.Writer, doc *Document, f Format) error {
	switch f {
	case XML:
		if _, err := io.WriteString(w, xml.Header); err != nil {
			return err
		}
		enc := xml.NewEncoder(w)
		enc.Indent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding xml: %w", err)
		}
		_, err := io.WriteString(w, "\n")
		return err
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Read decodes a dump written by Write.
func Read(r io.Reader, f Format) (*Document, error) {
	doc := &Document{}
	switch f {
	case XML:
		if err := xml.NewDecoder(r).Decode(doc); err != nil {
			return nil, fmt.Errorf("decoding xml: %w", err)
		}
	case YAML:
		if err := yaml.NewDecoder(r).Decode(doc); err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	return doc, nil
}

// WriteFile writes doc to path, gzip-compressed when path ends in ".gz".
func WriteFile(path string, doc *Document, f Format) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if !strings.HasSuffix(path, ".gz") {
		return Write(file, doc, f)
	}
	zw := gzip.NewWriter(file)
	if err := Write(zw, doc, f); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// ReadFile reads a dump from path, decompressing ".gz" files.
func ReadFile(path string, f Format) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	if !strings.HasSuffix(path, ".gz") {
		return Read(file, f)
	}
	zr, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("reading gzip header: %w", err)
	}
	defer zr.Close()
	return Read(zr, f)
}
