package renderer

import (
	"image/color"
	"math"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/integrator"
	"github.com/df07/go-scanline-raytracer/pkg/scene"
)

// BandRenderer renders the scanlines of a band using an integrator
type BandRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	seed       int64
}

// NewBandRenderer creates a band renderer with the given scene and integrator
func NewBandRenderer(s *scene.Scene, integratorInst integrator.Integrator, seed int64) *BandRenderer {
	return &BandRenderer{
		scene:      s,
		integrator: integratorInst,
		seed:       seed,
	}
}

// RenderBand renders every pixel of band into a fresh buffer, top row first.
// rowDone is called after each finished scanline and may be nil.
func (br *BandRenderer) RenderBand(band *Band, rowDone func()) ([]color.RGBA, RenderStats) {
	bounds := band.Bounds
	width := bounds.Dx()
	buffer := make([]color.RGBA, 0, width*bounds.Dy())

	stats := RenderStats{
		TotalPixels:     width * bounds.Dy(),
		SamplesPerPixel: br.scene.SamplingConfig.SamplesPerPixel,
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		sampler := core.NewSeededSampler(RowSeed(br.seed, y))
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var ps PixelStats
			br.samplePixel(x, y, &ps, sampler)
			stats.TotalSamples += ps.SampleCount
			buffer = append(buffer, vec3ToColor(ps.GetColor()))
		}
		if rowDone != nil {
			rowDone()
		}
	}

	return buffer, stats
}

// samplePixel accumulates SamplesPerPixel jittered samples for image pixel (x, y).
// Image row y counts down from the top; the camera row j counts up from the bottom.
func (br *BandRenderer) samplePixel(x, y int, ps *PixelStats, sampler core.Sampler) {
	cfg := br.scene.SamplingConfig
	camera := br.scene.Camera
	j := cfg.Height - 1 - y

	// A single column or row maps to the viewport origin instead of dividing by zero
	sDenom := float64(max(cfg.Width-1, 1))
	tDenom := float64(max(cfg.Height-1, 1))

	for sample := 0; sample < cfg.SamplesPerPixel; sample++ {
		s := (float64(x) + sampler.Get1D()) / sDenom
		t := (float64(j) + sampler.Get1D()) / tDenom

		ray := camera.GetRay(s, t, sampler)
		ps.AddSample(br.integrator.RayColor(ray, br.scene, sampler))
	}
}

// RowSeed derives the random seed of one scanline from the render seed.
// Seeding per row makes the image independent of how rows are split into bands.
func RowSeed(seed int64, row int) int64 {
	// splitmix64 finalizer over the combined value
	z := uint64(seed) + uint64(row+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return int64(z ^ (z >> 31))
}

// vec3ToColor converts an averaged linear color to 8-bit RGBA.
// Gamma 2 is applied, then each channel is clamped to [0, 0.999] and scaled by 255.999.
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	// Negative channels would turn into NaN under the square root
	colorVec = colorVec.Clamp(0.0, math.Inf(1))
	colorVec = colorVec.GammaCorrect(2.0)
	colorVec = colorVec.Clamp(0.0, 0.999)

	return color.RGBA{
		R: uint8(255.999 * colorVec.X),
		G: uint8(255.999 * colorVec.Y),
		B: uint8(255.999 * colorVec.Z),
		A: 255,
	}
}
