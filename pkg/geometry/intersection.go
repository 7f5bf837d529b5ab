package geometry

// Intersection holds the entry and exit distances of a ray through a surface.
// Either both distances are present with entry <= exit, or neither is.
type Intersection struct {
	entry float64
	exit  float64
	hit   bool
}

// NewIntersection creates an intersection from two distances in any order
func NewIntersection(a, b float64) Intersection {
	if a > b {
		a, b = b, a
	}
	return Intersection{entry: a, exit: b, hit: true}
}

// NoIntersection returns the empty intersection
func NoIntersection() Intersection {
	return Intersection{}
}

// Hit reports whether the ray crosses the surface
func (i Intersection) Hit() bool {
	return i.hit
}

// Entry returns the distance at which the ray enters
func (i Intersection) Entry() (float64, bool) {
	return i.entry, i.hit
}

// Exit returns the distance at which the ray leaves
func (i Intersection) Exit() (float64, bool) {
	return i.exit, i.hit
}

// ChordLength returns the path length between entry and exit
func (i Intersection) ChordLength() (float64, bool) {
	if !i.hit {
		return 0, false
	}
	return i.exit - i.entry, true
}
