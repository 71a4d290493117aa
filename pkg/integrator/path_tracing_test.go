package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/geometry"
	"github.com/df07/go-scanline-raytracer/pkg/material"
	"github.com/df07/go-scanline-raytracer/pkg/scene"
)

// absorber never scatters
type absorber struct{}

func (absorber) Scatter(core.Ray, material.HitRecord, core.Sampler) (material.ScatterResult, bool) {
	return material.ScatterResult{}, false
}

func newTestScene(maxDepth int, shapes ...geometry.Shape) *scene.Scene {
	cameraConfig := geometry.CameraConfig{
		LookFrom: core.NewVec3(0, 0, 0),
		LookAt:   core.NewVec3(0, 0, -1),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     90,
	}
	samplingConfig := scene.SamplingConfig{Width: 4, Height: 2, SamplesPerPixel: 1, MaxDepth: maxDepth}
	return scene.NewScene(cameraConfig, samplingConfig, geometry.NewHittableList(shapes...))
}

func vecClose(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance && math.Abs(a.Y-b.Y) <= tolerance && math.Abs(a.Z-b.Z) <= tolerance
}

func TestRayColor_DepthExhausted(t *testing.T) {
	s := newTestScene(0)
	pt := NewPathTracingIntegrator(s.SamplingConfig)

	color := pt.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), s, core.NewSeededSampler(1))
	if !color.Equals(core.Vec3{}) {
		t.Errorf("Expected black at depth 0, got %v", color)
	}
}

func TestRayColor_Background(t *testing.T) {
	s := newTestScene(5)
	pt := NewPathTracingIntegrator(s.SamplingConfig)
	sampler := core.NewSeededSampler(1)

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up is sky blue", core.NewVec3(0, 1, 0), scene.SkyBlue},
		{"straight down is white", core.NewVec3(0, -1, 0), scene.White},
		{"horizon is halfway", core.NewVec3(0, 0, -1), core.NewVec3(0.75, 0.85, 1.0)},
		{"unnormalized direction", core.NewVec3(0, 10, 0), scene.SkyBlue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color := pt.RayColor(core.NewRay(core.Vec3{}, tt.direction), s, sampler)
			if !vecClose(color, tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, color)
			}
		})
	}
}

func TestRayColor_BackgroundIsConvexCombination(t *testing.T) {
	s := newTestScene(5)
	pt := NewPathTracingIntegrator(s.SamplingConfig)
	sampler := core.NewSeededSampler(3)

	for i := 0; i < 200; i++ {
		direction := core.RandomUnitVector(sampler)
		color := pt.RayColor(core.NewRay(core.Vec3{}, direction), s, sampler)

		// Every channel lies between the white and sky blue end points
		if color.X < 0.5-1e-12 || color.X > 1+1e-12 ||
			color.Y < 0.7-1e-12 || color.Y > 1+1e-12 ||
			math.Abs(color.Z-1) > 1e-12 {
			t.Fatalf("Direction %v produced %v outside the gradient", direction, color)
		}
	}
}

func TestRayColor_CustomBackground(t *testing.T) {
	s := newTestScene(5)
	s.TopColor = core.NewVec3(1, 0, 0)
	s.BottomColor = core.NewVec3(0, 0, 1)
	pt := NewPathTracingIntegrator(s.SamplingConfig)

	color := pt.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), s, core.NewSeededSampler(1))
	if !vecClose(color, s.TopColor, 1e-12) {
		t.Errorf("Expected custom top color, got %v", color)
	}
}

func TestRayColor_Absorbed(t *testing.T) {
	s := newTestScene(5, geometry.NewSphere(core.NewVec3(0, 0, -2), 1, absorber{}))
	pt := NewPathTracingIntegrator(s.SamplingConfig)

	color := pt.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), s, core.NewSeededSampler(1))
	if !color.Equals(core.Vec3{}) {
		t.Errorf("Expected black from absorbing sphere, got %v", color)
	}
}

func TestRayColor_MirrorReflectsBackground(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.6, 0.4)
	mirror := material.NewMetal(albedo, 0)
	// Camera looks down at a mirror below it; the reflection goes straight up
	s := newTestScene(5, geometry.NewSphere(core.NewVec3(0, -101, 0), 100, mirror))
	pt := NewPathTracingIntegrator(s.SamplingConfig)

	color := pt.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0)), s, core.NewSeededSampler(1))
	expected := albedo.MultiplyVec(scene.SkyBlue)
	if !vecClose(color, expected, 1e-9) {
		t.Errorf("Expected %v, got %v", expected, color)
	}
}

func TestRayColor_MirrorDepthLimit(t *testing.T) {
	mirror := material.NewMetal(core.NewVec3(1, 1, 1), 0)
	// With depth 1 the reflected ray has no budget left
	s := newTestScene(1, geometry.NewSphere(core.NewVec3(0, -101, 0), 100, mirror))
	pt := NewPathTracingIntegrator(s.SamplingConfig)

	color := pt.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0)), s, core.NewSeededSampler(1))
	if !color.Equals(core.Vec3{}) {
		t.Errorf("Expected black when the bounce budget runs out, got %v", color)
	}
}

func TestRayColor_IgnoresHitsBelowEpsilon(t *testing.T) {
	// Origin sits on the sphere surface; the t=0 root must be skipped
	s := newTestScene(5, geometry.NewSphere(core.NewVec3(0, -1, 0), 1, absorber{}))
	pt := NewPathTracingIntegrator(s.SamplingConfig)

	color := pt.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), s, core.NewSeededSampler(1))
	if !vecClose(color, scene.SkyBlue, 1e-12) {
		t.Errorf("Expected sky blue, got %v", color)
	}
}

func TestRayColor_Deterministic(t *testing.T) {
	s := scene.NewDefaultScene()
	pt := NewPathTracingIntegrator(s.SamplingConfig)
	ray := s.Camera.GetRay(0.5, 0.5, core.NewSeededSampler(9))

	first := pt.RayColor(ray, s, core.NewSeededSampler(42))
	second := pt.RayColor(ray, s, core.NewSeededSampler(42))
	if !first.Equals(second) {
		t.Errorf("Same seed produced %v and %v", first, second)
	}
}

func TestRayColor_NonNegative(t *testing.T) {
	s := scene.NewDefaultScene()
	pt := NewPathTracingIntegrator(s.SamplingConfig)
	sampler := core.NewSeededSampler(5)

	for i := 0; i < 500; i++ {
		ray := s.Camera.GetRay(sampler.Get1D(), sampler.Get1D(), sampler)
		color := pt.RayColor(ray, s, sampler)
		if color.X < 0 || color.Y < 0 || color.Z < 0 || math.IsNaN(color.X+color.Y+color.Z) {
			t.Fatalf("Invalid radiance %v", color)
		}
	}
}
