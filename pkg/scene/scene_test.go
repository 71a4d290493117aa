package scene

import (
	"math"
	"testing"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/geometry"
)

func TestImageHeight(t *testing.T) {
	tests := []struct {
		name        string
		width       int
		aspectRatio float64
		expected    int
	}{
		{"16:9", 400, 16.0 / 9.0, 225},
		{"3:2", 1200, 3.0 / 2.0, 800},
		{"square", 100, 1.0, 100},
		{"very wide clamps to one row", 10, 100.0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ImageHeight(tt.width, tt.aspectRatio); got != tt.expected {
				t.Errorf("ImageHeight(%d, %f) = %d, want %d", tt.width, tt.aspectRatio, got, tt.expected)
			}
		})
	}
}

func TestNewScene_Defaults(t *testing.T) {
	s := NewScene(geometry.CameraConfig{
		LookFrom: core.NewVec3(0, 0, 0),
		LookAt:   core.NewVec3(0, 0, -1),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     90,
	}, SamplingConfig{Width: 200, Height: 100, SamplesPerPixel: 1, MaxDepth: 1}, nil)

	if s.World == nil || s.World.Len() != 0 {
		t.Fatalf("Expected empty world, got %v", s.World)
	}
	if s.CameraConfig.AspectRatio != 2.0 {
		t.Errorf("Expected aspect ratio derived from sampling config, got %f", s.CameraConfig.AspectRatio)
	}

	top, bottom := s.GetBackgroundColors()
	if !top.Equals(SkyBlue) || !bottom.Equals(White) {
		t.Errorf("Expected sky blue over white, got top=%v bottom=%v", top, bottom)
	}
}

func TestScene_Resize(t *testing.T) {
	s := NewSimpleScene()
	s.Resize(100, 2.0)

	if s.SamplingConfig.Width != 100 || s.SamplingConfig.Height != 50 {
		t.Errorf("Expected 100x50, got %dx%d", s.SamplingConfig.Width, s.SamplingConfig.Height)
	}
	if s.Camera.GetConfig().AspectRatio != 2.0 {
		t.Errorf("Expected camera aspect ratio 2.0, got %f", s.Camera.GetConfig().AspectRatio)
	}
	if s.CameraConfig.VFov != 90.0 {
		t.Errorf("Resize should keep the field of view, got %f", s.CameraConfig.VFov)
	}
}

func TestBuiltinScenes(t *testing.T) {
	tests := []struct {
		name           string
		primitiveCount int // 0 = only require a non-empty world
	}{
		{"simple", 2},
		{"default", 5},
		{"random", 0},
		{"spheregrid", 401},
		{"textures", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewBuiltinScene(tt.name, 42)
			if err != nil {
				t.Fatalf("NewBuiltinScene(%q) failed: %v", tt.name, err)
			}
			if s.Camera == nil {
				t.Fatal("Expected a camera")
			}
			if tt.primitiveCount > 0 && s.GetPrimitiveCount() != tt.primitiveCount {
				t.Errorf("Expected %d primitives, got %d", tt.primitiveCount, s.GetPrimitiveCount())
			}
			if s.GetPrimitiveCount() == 0 {
				t.Error("Expected a non-empty world")
			}
			sc := s.SamplingConfig
			if sc.Width <= 0 || sc.Height <= 0 || sc.SamplesPerPixel <= 0 || sc.MaxDepth <= 0 {
				t.Errorf("Invalid sampling config %+v", sc)
			}
		})
	}
}

func TestNewBuiltinScene_Unknown(t *testing.T) {
	if _, err := NewBuiltinScene("cornell", 0); err == nil {
		t.Error("Expected error for unknown scene")
	}
}

func TestBuiltinSceneNames_Sorted(t *testing.T) {
	names := BuiltinSceneNames()
	expected := []string{"default", "random", "simple", "spheregrid", "textures"}
	if len(names) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], expected[i])
		}
	}
}

func TestNewRandomScene_Deterministic(t *testing.T) {
	a := NewRandomScene(7)
	b := NewRandomScene(7)
	c := NewRandomScene(8)

	if a.GetPrimitiveCount() != b.GetPrimitiveCount() {
		t.Fatalf("Same seed produced %d and %d primitives", a.GetPrimitiveCount(), b.GetPrimitiveCount())
	}
	for i := range a.World.Shapes {
		sa := a.World.Shapes[i].(*geometry.Sphere)
		sb := b.World.Shapes[i].(*geometry.Sphere)
		if !sa.Center.Equals(sb.Center) {
			t.Fatalf("Sphere %d differs: %v vs %v", i, sa.Center, sb.Center)
		}
	}

	same := a.GetPrimitiveCount() == c.GetPrimitiveCount()
	if same {
		for i := range a.World.Shapes {
			if !a.World.Shapes[i].(*geometry.Sphere).Center.Equals(c.World.Shapes[i].(*geometry.Sphere).Center) {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("Different seeds produced identical layouts")
	}
}

func TestNewRandomScene_KeepsClearOfFeatureSpheres(t *testing.T) {
	s := NewRandomScene(1)
	exclusion := core.NewVec3(4, 0.2, 0)
	for _, shape := range s.World.Shapes {
		sphere := shape.(*geometry.Sphere)
		if sphere.Radius != 0.2 {
			continue
		}
		if sphere.Center.Subtract(exclusion).Length() <= 0.9 {
			t.Errorf("Small sphere at %v is inside the exclusion zone", sphere.Center)
		}
	}
}

func TestSceneCameraOverrides(t *testing.T) {
	override := geometry.CameraConfig{VFov: 40, Aperture: 0.3}
	s := NewDefaultScene(override)

	cfg := s.Camera.GetConfig()
	if cfg.VFov != 40 {
		t.Errorf("Expected overridden vfov 40, got %f", cfg.VFov)
	}
	if cfg.Aperture != 0.3 {
		t.Errorf("Expected overridden aperture 0.3, got %f", cfg.Aperture)
	}
	if !cfg.LookFrom.Equals(core.NewVec3(3, 3, 2)) {
		t.Errorf("Expected default look-from to be kept, got %v", cfg.LookFrom)
	}
}

func TestOklchToRGB(t *testing.T) {
	// Zero chroma is achromatic: all channels equal l cubed
	gray := oklchToRGB(0.5, 0, 123)
	if math.Abs(gray.X-0.125) > 1e-6 || math.Abs(gray.Y-0.125) > 1e-6 || math.Abs(gray.Z-0.125) > 1e-6 {
		t.Errorf("Expected linear gray 0.125, got %v", gray)
	}

	// Saturated colors stay inside the unit cube
	for hue := 0.0; hue < 360; hue += 15 {
		c := oklchToRGB(0.7, 0.4, hue)
		if c.X < 0 || c.X > 1 || c.Y < 0 || c.Y > 1 || c.Z < 0 || c.Z > 1 {
			t.Errorf("hue %f: color %v outside [0,1]", hue, c)
		}
	}
}
