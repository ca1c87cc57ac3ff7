package slicer

import "github.com/Faultbox/stlslice/pkg/geom"

// Layer is one accepted cross-section. It is built once and must be treated
// as read-only afterwards.
type Layer struct {
	Z         float64
	Pitch     float64
	Loops     []Loop
	Scanlines []Scanline
	Chunks    []Chunk
}

// BuildLayer turns the deduplicated cut segments of plane z into loops,
// scanlines and chunks. step is the scan row retry fraction of pitch.
func BuildLayer(z, pitch, step float64, set *geom.SegmentSet) (*Layer, error) {
	loops, err := BuildLoops(set)
	if err != nil {
		return nil, err
	}
	rows, err := Scan(loops, z, pitch, step)
	if err != nil {
		return nil, err
	}
	return &Layer{
		Z:         z,
		Pitch:     pitch,
		Loops:     loops,
		Scanlines: rows,
		Chunks:    AssembleChunks(rows, pitch),
	}, nil
}

// SpanCount returns the number of scanline spans in the layer.
func (l *Layer) SpanCount() int {
	n := 0
	for _, r := range l.Scanlines {
		n += len(r.Spans)
	}
	return n
}
