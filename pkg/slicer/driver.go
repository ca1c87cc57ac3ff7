// Package slicer cuts a triangle mesh into horizontal layers of contour
// loops, infill scanlines and raster chunks.
package slicer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/stlslice/pkg/geom"
	"github.com/Faultbox/stlslice/pkg/mesh"
)

// Observer receives one notification per resolved z level, in ascending z.
type Observer interface {
	LevelDone(LevelReport)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(LevelReport)

// LevelDone calls f.
func (f ObserverFunc) LevelDone(r LevelReport) { f(r) }

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *zap.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.log = l
		}
	}
}

// WithObserver adds a progress observer.
func WithObserver(o Observer) Option {
	return func(d *Driver) {
		if o != nil {
			d.observers = append(d.observers, o)
		}
	}
}

// WithWorkers sets how many z levels are probed concurrently. Values
// below 2 probe sequentially.
func WithWorkers(n int) Option {
	return func(d *Driver) {
		d.workers = n
	}
}

// Driver runs the layer state machine for one set of parameters.
type Driver struct {
	p         Params
	log       *zap.Logger
	observers []Observer
	workers   int
}

// NewDriver validates p and returns a Driver.
func NewDriver(p Params, opts ...Option) (*Driver, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	d := &Driver{p: p, log: zap.NewNop(), workers: 1}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Params returns the driver parameters.
func (d *Driver) Params() Params {
	return d.p
}

// probe is the outcome of resolving one level.
type probe struct {
	report   LevelReport
	layer    *Layer
	floor    float64 // retry floor the level was probed with
	floorHit bool    // retries ran into floor
}

// Run slices m. m is never modified: scale and direction are applied to a
// working copy. Per-layer faults are recorded in the Report; the returned
// error is non-nil only for an empty mesh, non-finite coordinates or a
// cancelled context.
// Cancellation is observed between z levels.
func (d *Driver) Run(ctx context.Context, m *mesh.Mesh) (*Stack, *Report, error) {
	if m == nil || m.IsEmpty() {
		return nil, nil, ErrNoMesh
	}
	start := time.Now()

	work := m.Scale(d.p.Scale).Remap(d.p.Direction)
	b := work.Bounds()
	if !b.Finite() {
		return nil, nil, fmt.Errorf("%w: bounds %v to %v after scale %g",
			ErrNonFiniteMesh, b.Min, b.Max, d.p.Scale)
	}
	levels := planLevels(b.Min.Z, b.Max.Z, d.p.Height)

	rep := &Report{
		RunID:     uuid.NewString(),
		Params:    d.p,
		Triangles: work.Len(),
		Bounds:    b,
		Levels:    make([]LevelReport, 0, len(levels)),
	}
	log := d.log.With(zap.String("run", rep.RunID))
	log.Info("slicing started",
		zap.Int("triangles", work.Len()),
		zap.Int("levels", len(levels)),
		zap.Float64("min_z", b.Min.Z),
		zap.Float64("max_z", b.Max.Z),
		zap.Int("workers", d.workers))

	var pre []probe
	if d.workers > 1 {
		var err error
		if pre, err = d.probeAll(ctx, log, work, levels, b.Min.Z); err != nil {
			return nil, nil, err
		}
	}

	floor := b.Min.Z
	layers := make([]*Layer, 0, len(levels))
	for k, nominal := range levels {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		var pr probe
		if pre != nil && !(pre[k].floorHit && floor < pre[k].floor) {
			pr = pre[k]
		} else {
			pr = d.probe(log, work, k, nominal, floor)
		}
		if pr.layer != nil {
			layers = append(layers, pr.layer)
			floor = pr.report.Z
		}
		rep.Levels = append(rep.Levels, pr.report)
		for _, o := range d.observers {
			o.LevelDone(pr.report)
		}
	}

	rep.Duration = time.Since(start)
	log.Info("slicing finished",
		zap.Int("accepted", rep.Count(Accepted)),
		zap.Int("empty", rep.Count(Empty)),
		zap.Int("abandoned", rep.Count(Abandoned)),
		zap.Duration("took", rep.Duration))

	return NewStack(layers), rep, nil
}

// probeAll resolves every level concurrently. Each level uses the level
// below it as retry floor; Run re-probes in order any level that reached
// that floor while the true floor is lower.
func (d *Driver) probeAll(ctx context.Context, log *zap.Logger, m *mesh.Mesh, levels []float64, minZ float64) ([]probe, error) {
	out := make([]probe, len(levels))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)
	for k := range levels {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			floor := minZ
			if k > 0 {
				floor = levels[k-1]
			}
			out[k] = d.probe(log, m, k, levels[k], floor)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// probe runs the state machine for one level starting at nominal. A
// degenerate plane is lowered by RetryStep*Height until it resolves or
// reaches floor.
func (d *Driver) probe(log *zap.Logger, m *mesh.Mesh, k int, nominal, floor float64) probe {
	rep := LevelReport{Index: k, Nominal: nominal, Z: nominal, State: Probing}
	z := nominal
	for {
		rep.Attempts++
		set, degenerate := cutPlane(m, z)
		if degenerate {
			rep.State = DegenerateRetry
			rep.Z = z
			log.Debug("degenerate plane, retrying lower",
				zap.Int("level", k), zap.Float64("z", z), zap.Int("attempt", rep.Attempts))
			z -= d.p.RetryStep * d.p.Height
			if z <= floor {
				rep.State = Abandoned
				rep.Err = fmt.Errorf("%w: no clean plane in (%g, %g] after %d attempts",
					ErrDegenerateIntersection, floor, nominal, rep.Attempts)
				log.Warn("layer abandoned", zap.Int("level", k), zap.Error(rep.Err))
				return probe{report: rep, floor: floor, floorHit: true}
			}
			continue
		}

		rep.Z = z
		rep.Segments = set.Len()
		if set.Len() == 0 {
			rep.State = Empty
			return probe{report: rep, floor: floor}
		}

		layer, err := BuildLayer(z, d.p.Pitch, d.p.RetryStep, set)
		if err != nil {
			rep.State = Abandoned
			rep.Err = err
			log.Warn("layer abandoned",
				zap.Int("level", k), zap.Float64("z", z), zap.Error(err))
			return probe{report: rep, floor: floor}
		}
		rep.State = Accepted
		rep.Loops = len(layer.Loops)
		rep.Chunks = len(layer.Chunks)
		return probe{report: rep, layer: layer, floor: floor}
	}
}

// cutPlane intersects every triangle with plane z. It stops at the first
// degenerate triangle.
func cutPlane(m *mesh.Mesh, z float64) (*geom.SegmentSet, bool) {
	set := geom.NewSegmentSet()
	for _, t := range m.Triangles {
		seg, cut := Intersect(t, z)
		switch cut {
		case CutDegenerate:
			return nil, true
		case CutSegment:
			set.Add(seg)
		}
	}
	return set, false
}

// planLevels returns min+k*height for k >= 1 up to and including max.
func planLevels(min, max, height float64) []float64 {
	var levels []float64
	for k := 1; ; k++ {
		z := min + float64(k)*height
		if z > max {
			return levels
		}
		levels = append(levels, z)
	}
}
