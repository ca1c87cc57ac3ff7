package slicer

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/stlslice/pkg/mesh"
	"github.com/Faultbox/stlslice/pkg/stl"
)

// Session holds the loaded mesh and the most recent sliced stack. A failed
// Load or Slice leaves the previous state in place.
type Session struct {
	mu     sync.RWMutex
	log    *zap.Logger
	mesh   *mesh.Mesh
	path   string
	stack  *Stack
	report *Report
}

// NewSession returns an empty session. A nil logger discards output.
func NewSession(log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{log: log}
}

// Load parses the STL file at path and makes it the current mesh. The
// previous stack is discarded on success.
func (s *Session) Load(path string) error {
	m, err := stl.ParseFile(path)
	if err != nil {
		s.log.Error("load failed", zap.String("path", path), zap.Error(err))
		return err
	}
	s.LoadMesh(m)

	s.mu.Lock()
	s.path = path
	s.mu.Unlock()

	b := m.Bounds()
	s.log.Info("mesh loaded",
		zap.String("path", path),
		zap.String("name", m.Name),
		zap.Int("triangles", m.Len()),
		zap.Stringer("min", b.Min),
		zap.Stringer("max", b.Max))
	return nil
}

// LoadMesh makes m the current mesh and clears the stack.
func (s *Session) LoadMesh(m *mesh.Mesh) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mesh = m
	s.path = ""
	s.stack = nil
	s.report = nil
}

// Slice runs a new slice of the current mesh with p. On success the new
// stack replaces the old one with its cursor on the bottom layer.
func (s *Session) Slice(ctx context.Context, p Params, opts ...Option) (*Stack, *Report, error) {
	s.mu.RLock()
	m := s.mesh
	s.mu.RUnlock()
	if m == nil {
		return nil, nil, ErrNoMesh
	}

	d, err := NewDriver(p, append([]Option{WithLogger(s.log)}, opts...)...)
	if err != nil {
		return nil, nil, err
	}
	stack, rep, err := d.Run(ctx, m)
	if err != nil {
		return nil, nil, fmt.Errorf("slicing %q: %w", m.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another Load may have replaced the mesh while slicing ran.
	if s.mesh != m {
		return stack, rep, nil
	}
	s.stack = stack
	s.report = rep
	return stack, rep, nil
}

// Mesh returns the original, unscaled mesh, or nil.
func (s *Session) Mesh() *mesh.Mesh {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mesh
}

// Path returns the file the current mesh was loaded from, if any.
func (s *Session) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// Stack returns the current stack, or nil before the first slice.
func (s *Session) Stack() *Stack {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stack
}

// Report returns the report of the current stack, or nil.
func (s *Session) Report() *Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}
