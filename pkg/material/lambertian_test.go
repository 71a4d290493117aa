package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-scanline-raytracer/pkg/core"
)

func TestLambertian_AlwaysScatters(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.7, 0.9)
	lambertian := NewLambertian(albedo)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	for i := 0; i < 1000; i++ {
		scatter, didScatter := lambertian.Scatter(ray, hit, sampler)
		if !didScatter {
			t.Fatal("Lambertian should always scatter")
		}
		if !scatter.Attenuation.Equals(albedo) {
			t.Fatalf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
		}
		if scatter.Attenuation.X <= 0 || scatter.Attenuation.Y <= 0 || scatter.Attenuation.Z <= 0 {
			t.Fatalf("Positive albedo produced non-positive attenuation %v", scatter.Attenuation)
		}
		if scatter.Scattered.Direction.NearZero() {
			t.Fatal("Scattered direction should never be degenerate")
		}
		// normal + unit vector never points below the surface
		if scatter.Scattered.Direction.Dot(hit.Normal) < 0 {
			t.Fatalf("Scattered direction %v below surface", scatter.Scattered.Direction)
		}
		if !scatter.Scattered.Origin.Equals(hit.Point) {
			t.Fatalf("Scattered ray should start at hit point, got %v", scatter.Scattered.Origin)
		}
	}
}

func TestLambertian_DegenerateDirectionFallsBackToNormal(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.8, 0.8, 0.8))

	// Get2D().X == 1 maps to the unit vector (0, 0, -1), cancelling the normal
	sampler := &fixedSampler{value2D: core.NewVec2(1, 0)}
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	scatter, didScatter := lambertian.Scatter(ray, hit, sampler)
	if !didScatter {
		t.Fatal("Lambertian should always scatter")
	}
	if !scatter.Scattered.Direction.Equals(hit.Normal) {
		t.Errorf("Expected fallback to normal %v, got %v", hit.Normal, scatter.Scattered.Direction)
	}
}

func TestLambertian_TexturedAlbedo(t *testing.T) {
	even := core.NewVec3(1, 0, 0)
	odd := core.NewVec3(0, 0, 1)
	lambertian := NewTexturedLambertian(NewCheckerTexture(1.0, even, odd))
	sampler := core.NewSeededSampler(1)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	tests := []struct {
		name     string
		point    core.Vec3
		expected core.Vec3
	}{
		{"even cell", core.NewVec3(0.5, 0.5, 0.5), even},
		{"odd cell", core.NewVec3(1.5, 0.5, 0.5), odd},
		{"negative odd cell", core.NewVec3(-0.5, 0.5, 0.5), odd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := HitRecord{Point: tt.point, Normal: core.NewVec3(0, 1, 0)}
			scatter, _ := lambertian.Scatter(ray, hit, sampler)
			if !scatter.Attenuation.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, scatter.Attenuation)
			}
		})
	}
}
