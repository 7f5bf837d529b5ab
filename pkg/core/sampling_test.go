package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomSampler_Deterministic(t *testing.T) {
	a := NewSeededSampler(42)
	b := NewRandomSampler(rand.New(rand.NewSource(42)))

	for i := 0; i < 10; i++ {
		require.Equal(t, a.Get1D(), b.Get1D())
		require.Equal(t, a.Get2D(), b.Get2D())
		require.Equal(t, a.Get3D(), b.Get3D())
	}
}

func TestSampleUniform(t *testing.T) {
	assert.Equal(t, -2.0, SampleUniform(-2, 4, 0))
	assert.Equal(t, 1.0, SampleUniform(-2, 4, 0.5))
}

func TestSampleOnUnitSphere(t *testing.T) {
	sampler := NewSeededSampler(42)
	var sum Vec3
	const n = 20000
	for i := 0; i < n; i++ {
		v := SampleOnUnitSphere(sampler.Get2D())
		require.InDelta(t, 1.0, v.Length(), 1e-9)
		sum = sum.Add(v)
	}
	// Isotropic directions average to the origin
	assert.Less(t, sum.Multiply(1.0/n).Length(), 0.03)
}

func TestSamplePointInUnitDisk(t *testing.T) {
	sampler := NewSeededSampler(7)
	inner := 0
	const n = 20000
	for i := 0; i < n; i++ {
		p := SamplePointInUnitDisk(sampler.Get2D())
		require.LessOrEqual(t, p.Length(), 1.0)
		require.Zero(t, p.Z)
		if p.Length() < 0.5 {
			inner++
		}
	}
	// Flat areal density: a quarter of the points fall inside r=0.5
	assert.InDelta(t, 0.25, float64(inner)/n, 0.015)
}

func TestSamplePointInUnitSphere(t *testing.T) {
	sampler := NewSeededSampler(11)
	inner := 0
	const n = 20000
	for i := 0; i < n; i++ {
		p := SamplePointInUnitSphere(sampler.Get3D())
		require.LessOrEqual(t, p.Length(), 1.0+1e-12)
		if p.Length() < 0.5 {
			inner++
		}
	}
	// Flat volumetric density: an eighth of the points fall inside r=0.5
	assert.InDelta(t, 0.125, float64(inner)/n, 0.01)

	origin := SamplePointInUnitSphere(NewVec3(0, 0.3, 0.6))
	assert.InDelta(t, 0.0, origin.Length(), 1e-12)
	assert.False(t, math.IsNaN(origin.X))
}
