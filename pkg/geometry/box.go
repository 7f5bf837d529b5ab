package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-event-injector/pkg/core"
)

// Cuboid is an axis-aligned box given by its center and full edge lengths
type Cuboid struct {
	Center core.Vec3
	Lx     float64
	Ly     float64
	Lz     float64
}

// NewCuboid creates a new axis-aligned box
func NewCuboid(center core.Vec3, lx, ly, lz float64) (Cuboid, error) {
	if lx <= 0 || ly <= 0 || lz <= 0 {
		return Cuboid{}, fmt.Errorf("cuboid %gx%gx%g: %w", lx, ly, lz, ErrDegenerateShape)
	}
	return Cuboid{Center: center, Lx: lx, Ly: ly, Lz: lz}, nil
}

func (Cuboid) isVolume() {}

// Contains uses exclusive bounds on every axis
func (b Cuboid) Contains(p core.Vec3) bool {
	rel := p.Subtract(b.Center)
	return math.Abs(rel.X) < b.Lx/2 && math.Abs(rel.Y) < b.Ly/2 && math.Abs(rel.Z) < b.Lz/2
}

// Volume returns lx·ly·lz
func (b Cuboid) Volume() float64 {
	return b.Lx * b.Ly * b.Lz
}

// Sample returns a point uniformly distributed inside the box
func (b Cuboid) Sample(sampler core.Sampler) core.Vec3 {
	u := sampler.Get3D()
	return b.Center.Add(core.NewVec3(
		core.SampleUniform(-b.Lx/2, b.Lx/2, u.X),
		core.SampleUniform(-b.Ly/2, b.Ly/2, u.Y),
		core.SampleUniform(-b.Lz/2, b.Lz/2, u.Z),
	))
}

// FixedPoint is a degenerate volume holding a single position
type FixedPoint struct {
	Position core.Vec3
}

// NewFixedPoint creates a new fixed point
func NewFixedPoint(position core.Vec3) FixedPoint {
	return FixedPoint{Position: position}
}

func (FixedPoint) isVolume() {}

// Contains reports exact equality with the fixed position
func (f FixedPoint) Contains(p core.Vec3) bool {
	return p == f.Position
}

// Volume is zero
func (f FixedPoint) Volume() float64 {
	return 0
}

// Sample returns the fixed position without consuming randomness
func (f FixedPoint) Sample(core.Sampler) core.Vec3 {
	return f.Position
}
