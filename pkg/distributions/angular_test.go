package distributions

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-event-injector/pkg/core"
)

func TestUniformAngular(t *testing.T) {
	sampler := core.NewSeededSampler(42)
	var dist AngularDistribution = UniformAngular{}

	const n = 10000
	cosines := make([]float64, 0, n)
	azimuths := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		dir := dist.SampleDirection(sampler)
		require.InDelta(t, 1.0, dir.Length(), 1e-9)

		theta, phi := dir.Spherical()
		if phi < 0 {
			phi += 2 * math.Pi
		}
		cosines = append(cosines, math.Cos(theta))
		azimuths = append(azimuths, phi)
	}

	critical := 1.95 / math.Sqrt(n)
	assert.Less(t, ksUniform(cosines, -1, 1), critical, "cosθ uniform on [-1, 1]")
	assert.Less(t, ksUniform(azimuths, 0, 2*math.Pi), critical, "φ uniform on [0, 2π]")
}

func TestLowerHalfSphere(t *testing.T) {
	sampler := core.NewSeededSampler(42)
	var dist AngularDistribution = LowerHalfSphere{}

	const n = 10000
	cosines := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		dir := dist.SampleDirection(sampler)
		require.InDelta(t, 1.0, dir.Length(), 1e-9)
		require.LessOrEqual(t, dir.Z, 1e-12)
		require.GreaterOrEqual(t, dir.Z, -1.0)
		cosines = append(cosines, dir.Z)
	}
	assert.Less(t, ksUniform(cosines, -1, 0), 1.95/math.Sqrt(n))
}
