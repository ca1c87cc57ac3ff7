package metrics

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/stlslice/pkg/mesh"
	"github.com/Faultbox/stlslice/pkg/slicer"
)

func gather(t *testing.T, c *Collector) map[string]*dto.MetricFamily {
	t.Helper()
	mfs, err := c.Registry().Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily, len(mfs))
	for _, mf := range mfs {
		out[mf.GetName()] = mf
	}
	return out
}

func levelCount(mf *dto.MetricFamily, state string) float64 {
	for _, m := range mf.GetMetric() {
		for _, l := range m.GetLabel() {
			if l.GetName() == "state" && l.GetValue() == state {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestCollectorObservesRun(t *testing.T) {
	c := New()
	p := slicer.DefaultParams()
	p.Height = 0.5

	d, err := slicer.NewDriver(p, slicer.WithObserver(c))
	require.NoError(t, err)
	_, rep, err := d.Run(context.Background(), mesh.UnitCube())
	require.NoError(t, err)
	c.RunDone(rep)

	mfs := gather(t, c)
	require.Contains(t, mfs, "stlslice_levels_total")
	assert.Equal(t, 2.0, levelCount(mfs["stlslice_levels_total"], "Accepted"))

	h := mfs["stlslice_level_attempts"].GetMetric()[0].GetHistogram()
	assert.Equal(t, uint64(2), h.GetSampleCount())
	assert.Equal(t, 3.0, h.GetSampleSum(), "top level needs one retry")

	assert.Equal(t, 2.0, mfs["stlslice_stack_layers"].GetMetric()[0].GetGauge().GetValue())
	assert.Positive(t, mfs["stlslice_segments_total"].GetMetric()[0].GetCounter().GetValue())
}

func TestCollectorsAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.LevelDone(slicer.LevelReport{State: slicer.Empty, Attempts: 1})

	assert.Equal(t, 1.0, levelCount(gather(t, a)["stlslice_levels_total"], "Empty"))
	_, ok := gather(t, b)["stlslice_levels_total"]
	assert.False(t, ok, "untouched counter vec exports no series")
}

func TestWriteTextfile(t *testing.T) {
	c := New()
	c.LevelDone(slicer.LevelReport{State: slicer.Abandoned, Attempts: 3})

	path := filepath.Join(t.TempDir(), "slice.prom")
	require.NoError(t, c.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `stlslice_levels_total{state="Abandoned"} 1`)
}
