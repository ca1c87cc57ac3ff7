package slicer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/stlslice/pkg/geom"
)

func loopOf(z float64, xy ...[2]float64) []Loop {
	return []Loop{Loop(polygon(z, xy...))}
}

func spanXs(rows []Scanline) [][][2]float64 {
	out := make([][][2]float64, len(rows))
	for i, r := range rows {
		for _, s := range r.Spans {
			out[i] = append(out[i], [2]float64{s.P1.X, s.P2.X})
		}
	}
	return out
}

func TestScanSquare(t *testing.T) {
	loops := loopOf(2, [2]float64{0, 0}, [2]float64{1, 0}, [2]float64{1, 1}, [2]float64{0, 1})

	rows, err := Scan(loops, 2, 0.25, DefaultRetryStep)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	for i, r := range rows {
		assert.InDelta(t, 0.25*float64(i+1), r.Y, geom.Epsilon)
		require.Len(t, r.Spans, 1)
		s := r.Spans[0]
		assert.Equal(t, 0.0, s.P1.X)
		assert.Equal(t, 1.0, s.P2.X)
		assert.Equal(t, r.Y, s.P1.Y)
		assert.Equal(t, 2.0, s.P1.Z)
	}
}

func TestScanDegenerateRowMovesDown(t *testing.T) {
	// Horizontal edge from (2,0.5) to (1,0.5) lies on the second row.
	loops := loopOf(0,
		[2]float64{0, 0}, [2]float64{2, 0}, [2]float64{2, 0.5},
		[2]float64{1, 0.5}, [2]float64{1, 1}, [2]float64{0, 1})

	rows, err := Scan(loops, 0, 0.25, DefaultRetryStep)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.InDelta(t, 0.25, rows[0].Y, geom.Epsilon)
	assert.InDelta(t, 0.5-0.25*DefaultRetryStep, rows[1].Y, geom.Epsilon)
	assert.InDelta(t, 0.75, rows[2].Y, geom.Epsilon)

	assert.Equal(t, [][][2]float64{{{0, 2}}, {{0, 2}}, {{0, 1}}}, spanXs(rows))
}

func TestScanDegenerateRowSkipped(t *testing.T) {
	// Staircase with horizontal edges at y=0.5 and y=0.375. The row at 0.5
	// moves down onto the second edge, and one more step would reach the
	// row at 0.25, so it is dropped.
	loops := loopOf(0,
		[2]float64{0, 0}, [2]float64{3, 0}, [2]float64{3, 0.375},
		[2]float64{2, 0.375}, [2]float64{2, 0.5}, [2]float64{1, 0.5},
		[2]float64{1, 1}, [2]float64{0, 1})

	rows, err := Scan(loops, 0, 0.25, 0.5)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.InDelta(t, 0.25, rows[0].Y, geom.Epsilon)
	assert.InDelta(t, 0.75, rows[1].Y, geom.Epsilon)
	assert.Equal(t, [][][2]float64{{{0, 3}}, {{0, 1}}}, spanXs(rows))
}

func TestScanVertexCrossing(t *testing.T) {
	// Diamond with its side vertices on the row y=1.
	loops := loopOf(0, [2]float64{1, 0}, [2]float64{2, 1}, [2]float64{1, 2}, [2]float64{0, 1})

	rows, err := Scan(loops, 0, 1, DefaultRetryStep)
	require.NoError(t, err)
	assert.Equal(t, [][][2]float64{{{0, 2}}}, spanXs(rows))
}

func TestScanVertexValley(t *testing.T) {
	// The valley vertex (2,1) touches the row without crossing it.
	loops := loopOf(0,
		[2]float64{0, 0}, [2]float64{4, 0}, [2]float64{4, 2},
		[2]float64{2, 1}, [2]float64{0, 2})

	rows, err := Scan(loops, 0, 1, DefaultRetryStep)
	require.NoError(t, err)
	assert.Equal(t, [][][2]float64{{{0, 4}}}, spanXs(rows))
}

func TestScanHole(t *testing.T) {
	outer := polygon(0, [2]float64{0, 0}, [2]float64{4, 0}, [2]float64{4, 4}, [2]float64{0, 4})
	inner := polygon(0, [2]float64{1, 1.5}, [2]float64{3, 1.5}, [2]float64{3, 2.5}, [2]float64{1, 2.5})

	rows, err := Scan([]Loop{outer, inner}, 0, 1, DefaultRetryStep)
	require.NoError(t, err)
	assert.Equal(t, [][][2]float64{
		{{0, 4}},
		{{0, 1}, {3, 4}},
		{{0, 4}},
	}, spanXs(rows))
}

func TestScanOddParity(t *testing.T) {
	open := []Loop{{{P1: pt(0, 0, 0), P2: pt(0, 2, 0)}}}
	_, err := Scan(open, 0, 1, DefaultRetryStep)
	assert.ErrorIs(t, err, ErrOddParity)
}

func TestScanNoLoops(t *testing.T) {
	rows, err := Scan(nil, 0, 1, DefaultRetryStep)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
