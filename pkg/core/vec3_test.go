package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3_Rotate(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		rotation Vec3
		expected Vec3
	}{
		{
			name:     "No rotation",
			vector:   NewVec3(1, 0, 0),
			rotation: NewVec3(0, 0, 0),
			expected: NewVec3(1, 0, 0),
		},
		{
			name:     "90 degree rotation around Z axis",
			vector:   NewVec3(1, 0, 0),
			rotation: NewVec3(0, 0, math.Pi/2),
			expected: NewVec3(0, 1, 0),
		},
		{
			name:     "90 degree rotation around Y axis",
			vector:   NewVec3(1, 0, 0),
			rotation: NewVec3(0, math.Pi/2, 0),
			expected: NewVec3(0, 0, -1),
		},
		{
			name:     "90 degree rotation around X axis",
			vector:   NewVec3(0, 1, 0),
			rotation: NewVec3(math.Pi/2, 0, 0),
			expected: NewVec3(0, 0, 1),
		},
		{
			name:     "Combined rotations",
			vector:   NewVec3(1, 0, 0),
			rotation: NewVec3(0, math.Pi/2, math.Pi/2), // 90° Y then 90° Z
			expected: NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Rotate(tt.rotation)

			const tolerance = 1e-9
			if result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_RotateZAxisToDirection(t *testing.T) {
	// Polar rotation then azimuthal rotation carries ez onto the spherical direction
	for _, angles := range [][2]float64{{0.3, 1.2}, {2.5, -2.0}, {math.Pi / 2, 0}, {0, 0.7}} {
		theta, phi := angles[0], angles[1]
		got := NewVec3(0, 0, 1).RotateY(theta).RotateZ(phi)
		assert.True(t, got.Equals(FromSpherical(theta, phi)), "theta=%v phi=%v got %v", theta, phi, got)
	}
}

func TestVec3_SphericalRoundTrip(t *testing.T) {
	vectors := []Vec3{
		NewVec3(1, 0, 0),
		NewVec3(0, 0, -1),
		NewVec3(0.3, -0.4, 0.5).Normalize(),
		NewVec3(-2, -2, 1).Normalize(),
	}
	for _, v := range vectors {
		theta, phi := v.Spherical()
		assert.GreaterOrEqual(t, theta, 0.0)
		assert.LessOrEqual(t, theta, math.Pi)
		assert.True(t, FromSpherical(theta, phi).Equals(v), "round trip of %v", v)
		assert.True(t, FromCosTheta(math.Cos(theta), phi).Equals(v), "cos round trip of %v", v)
	}

	theta, phi := Vec3{}.Spherical()
	assert.Zero(t, theta)
	assert.Zero(t, phi)
}

func TestVec3_Basics(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(-1, 0.5, 2)

	assert.Equal(t, NewVec3(0, 2.5, 5), a.Add(b))
	assert.Equal(t, NewVec3(2, 1.5, 1), a.Subtract(b))
	assert.Equal(t, NewVec3(2, 4, 6), a.Multiply(2))
	assert.InDelta(t, 6.0, a.Dot(b), 1e-12)
	assert.InDelta(t, 14.0, a.LengthSquared(), 1e-12)
	assert.InDelta(t, 1.0, a.Normalize().Length(), 1e-12)
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
	assert.Equal(t, NewVec3(-1, -2, -3), a.Negate())
	assert.InDelta(t, 0.0, a.Cross(b).Dot(a), 1e-12)

	ray := NewRay(a, NewVec3(0, 0, 1))
	assert.Equal(t, NewVec3(1, 2, 5), ray.At(2))
}
