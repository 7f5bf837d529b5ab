package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-event-injector/pkg/core"
)

// Helper function for approximate equality
func approxEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) < tolerance
}

// onCylinderSurface reports whether p lies on the mantle or a cap within eps
func onCylinderSurface(c CylinderSurface, p core.Vec3, eps float64) bool {
	rel := p.Subtract(c.Center)
	rho := math.Hypot(rel.X, rel.Y)
	onMantle := approxEqual(rho, c.Radius, eps) && math.Abs(rel.Z) <= c.Height/2+eps
	onCap := approxEqual(math.Abs(rel.Z), c.Height/2, eps) && rho <= c.Radius+eps
	return onMantle || onCap
}

func mustCylinder(t *testing.T, center core.Vec3, height, radius float64) Cylinder {
	t.Helper()
	cyl, err := NewCylinder(center, height, radius)
	require.NoError(t, err)
	return cyl
}

func TestNewCylinder(t *testing.T) {
	cyl, err := NewCylinder(core.NewVec3(1, 2, 3), 10, 5)
	require.NoError(t, err)
	assert.Equal(t, Cylinder{Center: core.NewVec3(1, 2, 3), Height: 10, Radius: 5}, cyl)

	tests := []struct {
		name   string
		height float64
		radius float64
	}{
		{"zero height", 0, 1},
		{"negative radius", 1, -1},
		{"zero radius", 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCylinder(core.Vec3{}, tt.height, tt.radius)
			require.ErrorIs(t, err, ErrDegenerateShape)
		})
	}
}

func TestCylinder_SurfaceConversion(t *testing.T) {
	cyl := mustCylinder(t, core.NewVec3(0, 0, 1), 4, 2)
	surf := cyl.Surface()
	assert.Equal(t, cyl, surf.Solid())

	generic, err := SurfaceOf(cyl)
	require.NoError(t, err)
	assert.Equal(t, surf, generic)

	back, err := VolumeOf(surf)
	require.NoError(t, err)
	assert.Equal(t, Volume(cyl), back)
}

func TestCylinder_Contains(t *testing.T) {
	cyl := mustCylinder(t, core.NewVec3(0, 0, 0), 10, 5)

	tests := []struct {
		name  string
		point core.Vec3
		want  bool
	}{
		{"center", core.NewVec3(0, 0, 0), true},
		{"inside near top", core.NewVec3(1, 1, 4.9), true},
		{"on top cap", core.NewVec3(0, 0, 5), false},
		{"on mantle", core.NewVec3(5, 0, 0), false},
		{"outside radially", core.NewVec3(4, 4, 0), false},
		{"below", core.NewVec3(0, 0, -6), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cyl.Contains(tt.point))
		})
	}
}

func TestCylinder_SampleInside(t *testing.T) {
	sampler := core.NewSeededSampler(42)
	cyl := mustCylinder(t, core.NewVec3(3, -2, 7), 10, 5)

	for i := 0; i < 10000; i++ {
		p := cyl.Sample(sampler)
		require.True(t, cyl.Contains(p), "sample %v outside cylinder", p)
	}
}

func TestCylinder_SampleUniformRadius(t *testing.T) {
	sampler := core.NewSeededSampler(3)
	cyl := mustCylinder(t, core.Vec3{}, 2, 1)

	inner := 0
	const n = 20000
	for i := 0; i < n; i++ {
		p := cyl.Sample(sampler)
		if math.Hypot(p.X, p.Y) < 0.5 {
			inner++
		}
	}
	assert.InDelta(t, 0.25, float64(inner)/n, 0.015)
}

func TestCylinderSurface_Sample(t *testing.T) {
	sampler := core.NewSeededSampler(42)
	surf := mustCylinder(t, core.NewVec3(1, 1, 1), 10, 5).Surface()

	caps := 0
	const n = 20000
	for i := 0; i < n; i++ {
		p := surf.Sample(sampler)
		require.True(t, onCylinderSurface(surf, p, 1e-9), "sample %v not on surface", p)
		if approxEqual(math.Abs(p.Z-1), 5, 1e-9) {
			caps++
		}
	}
	// Caps are 2πr² out of 2πr² + 2πrh
	want := 50.0 / (50.0 + 100.0)
	assert.InDelta(t, want, float64(caps)/n, 0.015)
}

func TestCylinderSurface_Area(t *testing.T) {
	surf := mustCylinder(t, core.Vec3{}, 10, 5).Surface()
	assert.InDelta(t, 2*math.Pi*25+2*math.Pi*50, surf.Area(), 1e-9)
}

func TestCylinderSurface_ProjectedArea(t *testing.T) {
	surf := mustCylinder(t, core.Vec3{}, 10, 5).Surface()

	assert.InDelta(t, math.Pi*25, surf.ProjectedArea(1), 1e-9, "top view is the cap")
	assert.InDelta(t, math.Pi*25, surf.ProjectedArea(-1), 1e-9, "bottom view is the cap")
	assert.InDelta(t, 100.0, surf.ProjectedArea(0), 1e-9, "side view is the 2r×h rectangle")

	maxArea := surf.MaxProjectedArea()
	for c := -1.0; c <= 1.0; c += 0.001 {
		require.LessOrEqual(t, surf.ProjectedArea(c), maxArea+1e-9, "cos=%v", c)
	}
	thetaStar := math.Atan(2 * 10 / (math.Pi * 5))
	assert.InDelta(t, surf.ProjectedArea(math.Cos(thetaStar)), maxArea, 1e-12)
}

func TestCylinderSurface_Acceptance(t *testing.T) {
	surf := mustCylinder(t, core.Vec3{}, 10, 5).Surface()

	full, err := surf.Acceptance(-1, 1)
	require.NoError(t, err)
	// π times the surface area for any convex body
	assert.InDelta(t, math.Pi*surf.Area(), full, 1e-9)

	// Monte-Carlo: 4π times the mean projected area over isotropic directions
	sampler := core.NewSeededSampler(42)
	sum := 0.0
	const n = 200000
	for i := 0; i < n; i++ {
		sum += surf.ProjectedArea(2*sampler.Get1D() - 1)
	}
	assert.InEpsilon(t, full, 4*math.Pi*sum/n, 0.01)

	upper, err := surf.Acceptance(0, 1)
	require.NoError(t, err)
	assert.InDelta(t, full/2, upper, 1e-9, "acceptance is symmetric in cosθ")

	empty, err := surf.Acceptance(0.3, 0.3)
	require.NoError(t, err)
	assert.Zero(t, empty)

	for _, bad := range [][2]float64{{-1.5, 0}, {0, 1.1}, {0.5, -0.5}} {
		_, err := surf.Acceptance(bad[0], bad[1])
		assert.True(t, errors.Is(err, ErrInvalidCosRange), "range %v", bad)
	}
}

func TestVolumeFormulas_MonteCarlo(t *testing.T) {
	cyl := mustCylinder(t, core.NewVec3(1, 2, 3), 4, 1.5)
	box, err := NewCuboid(core.NewVec3(-1, 0, 2), 2, 3, 1)
	require.NoError(t, err)
	sphere, err := NewSphere(core.NewVec3(0, 0, -2), 2)
	require.NoError(t, err)

	tests := []struct {
		name   string
		volume Volume
		lo, hi core.Vec3
	}{
		{"cylinder", cyl, core.NewVec3(-0.5, 0.5, 1), core.NewVec3(2.5, 3.5, 5)},
		{"cuboid", box, core.NewVec3(-2.5, -2, 1), core.NewVec3(0.5, 2, 3)},
		{"sphere", sphere, core.NewVec3(-2, -2, -4), core.NewVec3(2, 2, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sampler := core.NewSeededSampler(99)
			span := tt.hi.Subtract(tt.lo)
			boxVolume := span.X * span.Y * span.Z

			const n = 200000
			inside := 0
			for i := 0; i < n; i++ {
				u := sampler.Get3D()
				p := tt.lo.Add(core.NewVec3(u.X*span.X, u.Y*span.Y, u.Z*span.Z))
				if tt.volume.Contains(p) {
					inside++
				}
			}
			estimate := boxVolume * float64(inside) / n
			assert.InEpsilon(t, tt.volume.Volume(), estimate, 0.02)
		})
	}
}
