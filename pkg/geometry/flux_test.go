package geometry

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-event-injector/pkg/core"
)

// constSampler returns the same value for every draw
type constSampler struct{ v float64 }

func (c constSampler) Get1D() float64   { return c.v }
func (c constSampler) Get2D() core.Vec2 { return core.NewVec2(c.v, c.v) }
func (c constSampler) Get3D() core.Vec3 { return core.NewVec3(c.v, c.v, c.v) }

// ksDistance returns the Kolmogorov–Smirnov statistic of samples against cdf
func ksDistance(samples []float64, cdf func(float64) float64) float64 {
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)
	n := float64(len(sorted))
	d := 0.0
	for i, x := range sorted {
		f := cdf(x)
		d = math.Max(d, math.Max(f-float64(i)/n, float64(i+1)/n-f))
	}
	return d
}

// ksCritical is the large-sample critical value at α = 0.001
func ksCritical(n int) float64 {
	return 1.95 / math.Sqrt(float64(n))
}

func TestCylinderSurface_SampleFlux(t *testing.T) {
	sampler := core.NewSeededSampler(42)
	surf := mustCylinder(t, core.NewVec3(0, 0, 0), 10, 5).Surface()

	const n = 10000
	cosines := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		pos, dir, err := surf.SampleFlux(sampler, -1, 1)
		require.NoError(t, err)
		require.InDelta(t, 1.0, dir.Length(), 1e-9)
		require.True(t, onCylinderSurface(surf, pos, 1e-7), "impact %v not on surface", pos)

		// The impact point is where the ray enters the cylinder
		hit := surf.Intersect(pos, dir)
		require.True(t, hit.Hit())
		entry, _ := hit.Entry()
		require.InDelta(t, 0.0, entry, 1e-7)

		cosines = append(cosines, dir.Z)
	}

	total, err := surf.Acceptance(-1, 1)
	require.NoError(t, err)
	cdf := func(c float64) float64 {
		partial, err := surf.Acceptance(-1, c)
		require.NoError(t, err)
		return partial / total
	}
	assert.Less(t, ksDistance(cosines, cdf), ksCritical(n))
}

func TestCylinderSurface_SampleFlux_ImpactDistribution(t *testing.T) {
	sampler := core.NewSeededSampler(5)
	surf := mustCylinder(t, core.Vec3{}, 10, 5).Surface()

	// Vertical flux only hits the caps
	for i := 0; i < 500; i++ {
		pos, dir, err := surf.SampleFlux(sampler, -1, -1)
		require.NoError(t, err)
		require.Equal(t, -1.0, dir.Z)
		require.InDelta(t, 5.0, pos.Z, 1e-9, "downgoing rays enter through the top cap")
	}

	// Horizontal flux only hits the mantle
	for i := 0; i < 500; i++ {
		pos, dir, err := surf.SampleFlux(sampler, 0, 0)
		require.NoError(t, err)
		require.Zero(t, dir.Z)
		require.InDelta(t, 5.0, math.Hypot(pos.X, pos.Y), 1e-7)
		// Entering the mantle means moving inward
		require.Less(t, pos.X*dir.X+pos.Y*dir.Y, 1e-9)
	}
}

func TestCylinderSurface_SampleFlux_CosRange(t *testing.T) {
	sampler := core.NewSeededSampler(8)
	surf := mustCylinder(t, core.NewVec3(10, 0, -3), 4, 2).Surface()

	for i := 0; i < 2000; i++ {
		pos, dir, err := surf.SampleFlux(sampler, 0.2, 0.8)
		require.NoError(t, err)
		require.GreaterOrEqual(t, dir.Z, 0.2-1e-12)
		require.LessOrEqual(t, dir.Z, 0.8+1e-12)
		require.True(t, onCylinderSurface(surf, pos, 1e-7))
	}

	_, _, err := surf.SampleFlux(sampler, 0.8, 0.2)
	require.ErrorIs(t, err, ErrInvalidCosRange)
}

func TestCylinderSurface_SampleFlux_NotConverged(t *testing.T) {
	surf := mustCylinder(t, core.Vec3{}, 10, 5).Surface()

	// A sampler stuck near 1 always lands above the cap area at cosθ = 1
	_, _, err := surf.SampleFlux(constSampler{v: 0.999999}, 1, 1, WithMaxTries(50))
	require.ErrorIs(t, err, ErrRejectionNotConverged)
}

func TestSphereSurface_SampleFlux(t *testing.T) {
	sampler := core.NewSeededSampler(42)
	surf := SphereSurface{Center: core.NewVec3(1, 2, 3), Radius: 3}

	const n = 5000
	cosines := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		pos, dir, err := surf.SampleFlux(sampler, -1, 1)
		require.NoError(t, err)
		require.InDelta(t, 3.0, pos.Subtract(surf.Center).Length(), 1e-7)
		require.LessOrEqual(t, pos.Subtract(surf.Center).Dot(dir), 1e-9, "impact on the near hemisphere")
		cosines = append(cosines, dir.Z)
	}
	// Constant projected area leaves cosθ uniform
	assert.Less(t, ksDistance(cosines, func(c float64) float64 { return (c + 1) / 2 }), ksCritical(n))
}
