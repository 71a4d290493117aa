package renderer

import (
	"fmt"
	"image/color"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/integrator"
	"github.com/df07/go-scanline-raytracer/pkg/scene"
)

// RenderConfig contains configuration for a parallel render
type RenderConfig struct {
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base seed for every scanline's random stream
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		NumWorkers: 0, // Auto-detect CPU count
		Seed:       42,
	}
}

// ScanlineRaytracer renders a scene by splitting its scanlines into one band per worker
type ScanlineRaytracer struct {
	scene        *scene.Scene
	width        int
	height       int
	config       RenderConfig
	bands        []*Band
	bandRenderer *BandRenderer
	logger       core.Logger
}

// NewScanlineRaytracer creates a renderer for the scene's configured resolution.
// The worker count is clamped to [1, height]. A nil logger reports to stderr.
func NewScanlineRaytracer(s *scene.Scene, integratorInst integrator.Integrator, config RenderConfig, logger core.Logger) *ScanlineRaytracer {
	width, height := s.SamplingConfig.Width, s.SamplingConfig.Height

	numWorkers := config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	config.NumWorkers = max(1, min(numWorkers, height))

	if logger == nil {
		logger = NewDefaultLogger()
	}

	return &ScanlineRaytracer{
		scene:        s,
		width:        width,
		height:       height,
		config:       config,
		bands:        NewBandGrid(width, height, config.NumWorkers),
		bandRenderer: NewBandRenderer(s, integratorInst, config.Seed),
		logger:       logger,
	}
}

// GetNumWorkers returns the effective number of workers
func (sr *ScanlineRaytracer) GetNumWorkers() int {
	return sr.config.NumWorkers
}

// Render renders every band in parallel and joins the band buffers in top-to-bottom order.
// A panic inside a worker is returned as an error.
func (sr *ScanlineRaytracer) Render() (*Frame, RenderStats, error) {
	if sr.width <= 0 || sr.height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("invalid image size %dx%d", sr.width, sr.height)
	}
	if sr.scene.SamplingConfig.SamplesPerPixel <= 0 {
		return nil, RenderStats{}, fmt.Errorf("samples per pixel must be positive, got %d", sr.scene.SamplingConfig.SamplesPerPixel)
	}

	sr.logger.Printf("Rendering %dx%d at %d samples/pixel: %d bands with %d workers\n",
		sr.width, sr.height, sr.scene.SamplingConfig.SamplesPerPixel, len(sr.bands), sr.config.NumWorkers)

	startTime := time.Now()

	buffers := make([][]color.RGBA, len(sr.bands))
	bandStats := make([]RenderStats, len(sr.bands))

	var remaining atomic.Int64
	remaining.Store(int64(sr.height))
	reportEvery := int64(max(1, sr.height/10))
	rowDone := func() {
		left := remaining.Add(-1)
		if left%reportEvery == 0 {
			sr.logger.Printf("Scanlines remaining: %d\n", left)
		}
	}

	var g errgroup.Group
	for i, band := range sr.bands {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("band %d (rows %d-%d) panicked: %v", band.ID, band.Bounds.Min.Y, band.Bounds.Max.Y-1, r)
				}
			}()
			buffers[i], bandStats[i] = sr.bandRenderer.RenderBand(band, rowDone)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("render failed: %w", err)
	}

	frame := &Frame{
		Width:  sr.width,
		Height: sr.height,
		Pixels: make([]color.RGBA, 0, sr.width*sr.height),
	}
	stats := RenderStats{
		SamplesPerPixel: sr.scene.SamplingConfig.SamplesPerPixel,
		NumBands:        len(sr.bands),
	}
	for i := range sr.bands {
		frame.Pixels = append(frame.Pixels, buffers[i]...)
		stats.merge(bandStats[i])
	}
	stats.finalize()
	stats.Duration = time.Since(startTime)

	sr.logger.Printf("Render completed in %v (%d pixels, %d samples)\n",
		stats.Duration, stats.TotalPixels, stats.TotalSamples)

	return frame, stats, nil
}
