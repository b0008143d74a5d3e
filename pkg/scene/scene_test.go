package scene

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fusiondiag/go-los-tracer/pkg/geometry"
)

const sceneYAML = `
vessel:
  kind: toroidal
  vertices:
    - [1, -0.5]
    - [2, -0.5]
    - [2, 0.5]
    - [1, 0.5]
structures:
  - vertices:
      - [1.2, -0.3]
      - [1.6, -0.3]
      - [1.6, 0.3]
      - [1.2, 0.3]
    limits:
      - {min: -0.7853981633974483, max: 0.7853981633974483}
rays:
  origins:
    - [3, 0, 0]
  directions:
    - [-2, 0, 0]
config:
  forbid: false
  workers: 2
  tolerances:
    eps_uz: 1.0e-5
`

func writeScene(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScene(t *testing.T) {
	s, err := Load(writeScene(t, sceneYAML))
	require.NoError(t, err)

	assert.Equal(t, "toroidal", s.Vessel.Kind)
	assert.Len(t, s.Vessel.Vertices, 4)
	assert.Len(t, s.Structures, 1)
	assert.Len(t, s.Structures[0].Limits, 1)
	assert.Len(t, s.Rays.Origins, 1)
	require.NotNil(t, s.Config.Forbid)
	assert.False(t, *s.Config.Forbid)
}

func TestLoadSceneErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeScene(t, "vessel: ["))
	assert.Error(t, err)
}

func TestBuildVessel(t *testing.T) {
	s, err := Load(writeScene(t, sceneYAML))
	require.NoError(t, err)

	v, err := s.BuildVessel()
	require.NoError(t, err)
	assert.Equal(t, geometry.Toroidal, v.Kind)
	assert.True(t, v.Lim.IsFull())
	assert.Equal(t, 4, v.Poly.NumEdges())

	s.Vessel.Kind = "cartesian"
	_, err = s.BuildVessel()
	assert.ErrorContains(t, err, "vessel kind")

	s.Vessel.Kind = "linear"
	_, err = s.BuildVessel()
	assert.ErrorContains(t, err, "axial limit")
}

func TestBuildStructures(t *testing.T) {
	s, err := Load(writeScene(t, sceneYAML))
	require.NoError(t, err)

	structures, err := s.BuildStructures()
	require.NoError(t, err)
	require.Len(t, structures, 1)
	assert.Equal(t, 1, structures[0].NumInstances())
	assert.InDelta(t, -math.Pi/4, structures[0].Lims[0].Min, 1e-12)
	assert.InDelta(t, math.Pi/4, structures[0].Lims[0].Max, 1e-12)
}

func TestBuildRaysNormalizes(t *testing.T) {
	s, err := Load(writeScene(t, sceneYAML))
	require.NoError(t, err)

	origins, dirs := s.BuildRays()
	require.Len(t, origins, 1)
	require.Len(t, dirs, 1)
	assert.InDelta(t, 1, dirs[0].Length(), 1e-12)
	assert.InDelta(t, -1, dirs[0].X, 1e-12)
}

func TestBuildConfig(t *testing.T) {
	s, err := Load(writeScene(t, sceneYAML))
	require.NoError(t, err)

	cfg := s.BuildConfig()
	assert.False(t, cfg.Forbid)
	assert.True(t, cfg.Validate) // unset: default kept
	assert.Equal(t, 2, cfg.NumWorkers)
	assert.InDelta(t, 1e-5, cfg.Tolerances.EpsUz, 1e-18)
	assert.InDelta(t, 1e-9, cfg.Tolerances.EpsA, 1e-18) // untouched default
}

func TestBuildTracerEndToEnd(t *testing.T) {
	s, err := Load(writeScene(t, sceneYAML))
	require.NoError(t, err)

	tr, err := s.BuildTracer()
	require.NoError(t, err)

	origins, dirs := s.BuildRays()
	res, err := tr.TraceBatch(origins, dirs)
	require.NoError(t, err)
	require.Equal(t, 1, res.N())

	// The structure's outer wall at R=1.6 blocks the ray at k=1.4
	assert.True(t, res.Hit(0))
	assert.InDelta(t, 1, res.KIn[0], 1e-9)
	assert.InDelta(t, 1.4, res.KOut[0], 1e-9)
	assert.Equal(t, 1, res.Index[0].Struct)
}
