package injector

import "github.com/df07/go-event-injector/pkg/core"

// IndexPool hands out the indices 0..n-1 in uniformly random order without
// replacement. It is not safe for concurrent use.
type IndexPool struct {
	remaining []int
	size      int
}

// NewIndexPool creates a pool holding 0..n-1
func NewIndexPool(n int) *IndexPool {
	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}
	return &IndexPool{remaining: remaining, size: n}
}

// Size returns the number of indices the pool started with
func (p *IndexPool) Size() int {
	return p.size
}

// Len returns the number of indices not yet drawn
func (p *IndexPool) Len() int {
	return len(p.remaining)
}

// Draw removes and returns a uniformly chosen remaining index.
// It reports false once the pool is empty.
func (p *IndexPool) Draw(sampler core.Sampler) (int, bool) {
	n := len(p.remaining)
	if n == 0 {
		return 0, false
	}
	i := int(sampler.Get1D() * float64(n))
	if i >= n {
		i = n - 1
	}
	picked := p.remaining[i]
	p.remaining[i] = p.remaining[n-1]
	p.remaining = p.remaining[:n-1]
	return picked, true
}
