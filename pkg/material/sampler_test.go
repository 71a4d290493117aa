package material

import "github.com/df07/go-scanline-raytracer/pkg/core"

// fixedSampler returns the same values on every draw and counts draws
type fixedSampler struct {
	value1D float64
	value2D core.Vec2
	calls1D int
	calls2D int
}

func (f *fixedSampler) Get1D() float64 {
	f.calls1D++
	return f.value1D
}

func (f *fixedSampler) Get2D() core.Vec2 {
	f.calls2D++
	return f.value2D
}
