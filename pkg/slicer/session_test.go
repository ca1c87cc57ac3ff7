package slicer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Faultbox/stlslice/pkg/mesh"
	"github.com/Faultbox/stlslice/pkg/stl"
)

func writeCube(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cube.stl")
	require.NoError(t, stl.WriteFile(path, mesh.UnitCube()))
	return path
}

func TestSessionSliceWithoutMesh(t *testing.T) {
	s := NewSession(nil)
	_, _, err := s.Slice(context.Background(), DefaultParams())
	assert.ErrorIs(t, err, ErrNoMesh)
	assert.Nil(t, s.Stack())
}

func TestSessionLoadAndSlice(t *testing.T) {
	path := writeCube(t)
	s := NewSession(zaptest.NewLogger(t))
	require.NoError(t, s.Load(path))
	assert.Equal(t, path, s.Path())
	assert.Equal(t, 12, s.Mesh().Len())

	stack, rep, err := s.Slice(context.Background(), DefaultParams())
	require.NoError(t, err)
	assert.Same(t, stack, s.Stack())
	assert.Same(t, rep, s.Report())
	assert.Equal(t, 2, stack.Len())
	assert.Equal(t, 0, stack.Index())
}

func TestSessionFailedLoadKeepsState(t *testing.T) {
	s := NewSession(zaptest.NewLogger(t))
	require.NoError(t, s.Load(writeCube(t)))
	stack, _, err := s.Slice(context.Background(), DefaultParams())
	require.NoError(t, err)
	m := s.Mesh()

	err = s.Load(filepath.Join(t.TempDir(), "missing.stl"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.stl")
	require.NoError(t, os.WriteFile(bad, []byte("xxx\n"), 0o644))
	assert.ErrorIs(t, s.Load(bad), stl.ErrFormat)

	assert.Same(t, m, s.Mesh())
	assert.Same(t, stack, s.Stack())
}

func TestSessionFailedSliceKeepsStack(t *testing.T) {
	s := NewSession(zaptest.NewLogger(t))
	s.LoadMesh(mesh.UnitCube())
	stack, _, err := s.Slice(context.Background(), DefaultParams())
	require.NoError(t, err)

	p := DefaultParams()
	p.Height = -1
	_, _, err = s.Slice(context.Background(), p)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = s.Slice(ctx, DefaultParams())
	assert.ErrorIs(t, err, context.Canceled)

	assert.Same(t, stack, s.Stack())
}

func TestSessionResliceResetsCursor(t *testing.T) {
	s := NewSession(nil)
	s.LoadMesh(mesh.UnitCube())
	first, _, err := s.Slice(context.Background(), DefaultParams())
	require.NoError(t, err)
	first.Next()

	p := DefaultParams()
	p.Height = 0.2
	second, _, err := s.Slice(context.Background(), p)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, 0, second.Index())
	assert.Equal(t, 5, second.Len())
}
