package scene

import (
	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/geometry"
	"github.com/df07/go-scanline-raytracer/pkg/material"
)

// NewTextureTestScene creates a row of spheres demonstrating each color source
func NewTextureTestScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := geometry.CameraConfig{
		LookFrom:    core.NewVec3(0, 2, 10),
		LookAt:      core.NewVec3(0, 1, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 16.0 / 9.0,
		VFov:        35.0,
		Aperture:    0.0, // No DOF for texture clarity
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	samplingConfig := SamplingConfig{
		Width:           800,
		Height:          ImageHeight(800, cameraConfig.AspectRatio),
		SamplesPerPixel: 100,
		MaxDepth:        10,
	}

	checker := material.NewCheckerTexture(0.25,
		core.NewVec3(0.9, 0.9, 0.9), // White
		core.NewVec3(0.2, 0.2, 0.8), // Blue
	)
	stripes := material.NewStripeTexture(12,
		core.NewVec3(1.0, 0.2, 0.2), // Red
		core.NewVec3(0.2, 1.0, 0.2), // Green
	)
	uvDebug := material.NewUVDebugTexture(256)
	groundChecker := material.NewCheckerTexture(1.0,
		core.NewVec3(0.7, 0.3, 0.1),  // Orange
		core.NewVec3(0.5, 0.2, 0.05), // Dark brown
	)

	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(groundChecker)),
		geometry.NewSphere(core.NewVec3(-3.3, 1, 0), 1.0, material.NewTexturedLambertian(checker)),
		geometry.NewSphere(core.NewVec3(-1.1, 1, 0), 1.0, material.NewTexturedLambertian(stripes)),
		geometry.NewSphere(core.NewVec3(1.1, 1, 0), 1.0, material.NewTexturedLambertian(uvDebug)),
		geometry.NewSphere(core.NewVec3(3.3, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.2))),
	)

	return NewScene(cameraConfig, samplingConfig, world)
}
