package scene

import (
	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/geometry"
)

// Scene contains all the elements needed for rendering.
// It is built once and read concurrently by every render worker.
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	World          *geometry.HittableList // Objects in the scene
	SamplingConfig SamplingConfig
	TopColor       core.Vec3 // Sky color straight up
	BottomColor    core.Vec3 // Sky color straight down
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

var (
	// White is the default bottom of the sky gradient
	White = core.NewVec3(1.0, 1.0, 1.0)
	// SkyBlue is the default top of the sky gradient
	SkyBlue = core.NewVec3(0.5, 0.7, 1.0)
)

// NewScene assembles a scene with the default white-to-sky-blue background.
// The camera aspect ratio is taken from the sampling config when unset.
func NewScene(cameraConfig geometry.CameraConfig, samplingConfig SamplingConfig, world *geometry.HittableList) *Scene {
	if cameraConfig.AspectRatio == 0 && samplingConfig.Height > 0 {
		cameraConfig.AspectRatio = float64(samplingConfig.Width) / float64(samplingConfig.Height)
	}
	if world == nil {
		world = geometry.NewHittableList()
	}

	return &Scene{
		Camera:         geometry.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		World:          world,
		SamplingConfig: samplingConfig,
		TopColor:       SkyBlue,
		BottomColor:    White,
	}
}

// ImageHeight derives the image height from a width and aspect ratio, never less than one row
func ImageHeight(width int, aspectRatio float64) int {
	return max(1, int(float64(width)/aspectRatio))
}

// GetBackgroundColors returns the sky gradient end points
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.TopColor, s.BottomColor
}

// Resize changes the output resolution, keeping the camera aspect ratio in sync
func (s *Scene) Resize(width int, aspectRatio float64) {
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = ImageHeight(width, aspectRatio)
	s.SetCameraConfig(geometry.MergeCameraConfig(s.CameraConfig, geometry.CameraConfig{AspectRatio: aspectRatio}))
}

// SetCameraConfig replaces the camera with one built from config
func (s *Scene) SetCameraConfig(config geometry.CameraConfig) {
	s.CameraConfig = config
	s.Camera = geometry.NewCamera(config)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}
