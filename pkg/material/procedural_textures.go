package material

import (
	"github.com/df07/go-scanline-raytracer/pkg/core"
)

// NewUVDebugTexture creates a texture showing UV coordinates as colors.
// U maps to red, V maps to green.
func NewUVDebugTexture(resolution int) *ImageTexture {
	resolution = max(resolution, 2)
	pixels := make([]core.Vec3, resolution*resolution)

	for y := 0; y < resolution; y++ {
		v := 1.0 - float64(y)/float64(resolution-1) // First row is the top, v = 1
		for x := 0; x < resolution; x++ {
			u := float64(x) / float64(resolution-1)
			pixels[y*resolution+x] = core.NewVec3(u, v, 0.0)
		}
	}

	return NewImageTexture(resolution, resolution, pixels)
}

// NewStripeTexture creates bands of latitude alternating between two colors.
// On a sphere the stripes run parallel to the equator.
func NewStripeTexture(stripes int, color1, color2 core.Vec3) *ImageTexture {
	stripes = max(stripes, 1)
	pixels := make([]core.Vec3, stripes)

	for y := range pixels {
		if y%2 == 0 {
			pixels[y] = color1
		} else {
			pixels[y] = color2
		}
	}

	return NewImageTexture(1, stripes, pixels)
}
