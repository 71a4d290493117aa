package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/geometry"
	"github.com/df07/go-scanline-raytracer/pkg/loaders"
	"github.com/df07/go-scanline-raytracer/pkg/material"
)

// FileConfig is the JSON description of a scene
type FileConfig struct {
	Name        string                        `json:"name,omitempty"`
	Description string                        `json:"description,omitempty"`
	Camera      CameraFileConfig              `json:"camera"`
	Image       ImageFileConfig               `json:"image"`
	Background  *BackgroundFileConfig         `json:"background,omitempty"`
	Materials   map[string]MaterialFileConfig `json:"materials"`
	Spheres     []SphereFileConfig            `json:"spheres"`
}

type CameraFileConfig struct {
	LookFrom      Vec3Value  `json:"lookFrom"`
	LookAt        Vec3Value  `json:"lookAt"`
	Up            *Vec3Value `json:"up,omitempty"` // defaults to +Y
	VFov          float64    `json:"vfov"`
	AspectRatio   float64    `json:"aspectRatio,omitempty"` // defaults to 16:9
	Aperture      float64    `json:"aperture,omitempty"`
	FocusDistance float64    `json:"focusDistance,omitempty"`
}

type ImageFileConfig struct {
	Width           int `json:"width"`
	SamplesPerPixel int `json:"samplesPerPixel"`
	MaxDepth        int `json:"maxDepth"`
}

type BackgroundFileConfig struct {
	Top    ColorValue `json:"top"`
	Bottom ColorValue `json:"bottom"`
}

// MaterialFileConfig describes one named material.
// Type is one of "lambertian", "metal" or "dielectric".
type MaterialFileConfig struct {
	Type    string             `json:"type"`
	Albedo  *ColorValue        `json:"albedo,omitempty"`
	Checker *CheckerFileConfig `json:"checker,omitempty"`
	Texture *TextureFileConfig `json:"texture,omitempty"`
	Fuzz    float64            `json:"fuzz,omitempty"`
	IOR     float64            `json:"ior,omitempty"`
}

type CheckerFileConfig struct {
	Scale float64    `json:"scale"`
	Even  ColorValue `json:"even"`
	Odd   ColorValue `json:"odd"`
}

// TextureFileConfig describes a UV-mapped texture.
// Type is one of "image", "uv" or "stripes".
type TextureFileConfig struct {
	Type    string        `json:"type"`
	Path    string        `json:"path,omitempty"`    // Image file, relative to the scene file
	Stripes int           `json:"stripes,omitempty"` // Number of latitude bands
	Colors  [2]ColorValue `json:"colors,omitempty"`
}

type SphereFileConfig struct {
	Center   Vec3Value `json:"center"`
	Radius   float64   `json:"radius"`
	Material string    `json:"material"`
}

// Vec3Value is a JSON [x, y, z] triple
type Vec3Value [3]float64

// Vec3 converts to a core vector
func (v Vec3Value) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// ColorValue is a linear RGB color written either as [r, g, b] or as a CSS color name
type ColorValue core.Vec3

// UnmarshalJSON accepts an RGB triple or a named color such as "crimson"
func (c *ColorValue) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		color, err := NamedColor(name)
		if err != nil {
			return err
		}
		*c = ColorValue(color)
		return nil
	}

	var triple Vec3Value
	if err := json.Unmarshal(data, &triple); err != nil {
		return fmt.Errorf("color must be [r,g,b] or a color name: %w", err)
	}
	*c = ColorValue(triple.Vec3())
	return nil
}

// Vec3 converts to a core vector
func (c ColorValue) Vec3() core.Vec3 {
	return core.Vec3(c)
}

// NamedColor looks up an SVG 1.1 color name and returns it as linear RGB.
// Names are sRGB-ish display values, so they are squared to undo the
// gamma-2 curve applied at output.
func NamedColor(name string) (core.Vec3, error) {
	rgba, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return core.Vec3{}, fmt.Errorf("unknown color name %q", name)
	}
	display := core.NewVec3(float64(rgba.R)/255, float64(rgba.G)/255, float64(rgba.B)/255)
	return display.MultiplyVec(display), nil
}

// LoadSceneFile reads and builds a scene from a JSON file
func LoadSceneFile(path string) (*Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := parseScene(file, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("scene file %s: %w", path, err)
	}
	return s, nil
}

// ParseScene decodes a JSON scene description and builds it.
// Relative texture paths are resolved against the working directory.
func ParseScene(r io.Reader) (*Scene, error) {
	return parseScene(r, ".")
}

func parseScene(r io.Reader, baseDir string) (*Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var cfg FileConfig
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	return cfg.Build(baseDir)
}

// Build validates the description and constructs the scene.
// Relative texture paths are resolved against baseDir.
func (cfg FileConfig) Build(baseDir string) (*Scene, error) {
	if cfg.Image.Width <= 0 {
		return nil, fmt.Errorf("image width must be positive, got %d", cfg.Image.Width)
	}
	if cfg.Image.SamplesPerPixel <= 0 {
		return nil, fmt.Errorf("samplesPerPixel must be positive, got %d", cfg.Image.SamplesPerPixel)
	}
	if cfg.Image.MaxDepth <= 0 {
		return nil, fmt.Errorf("maxDepth must be positive, got %d", cfg.Image.MaxDepth)
	}

	cameraConfig, err := cfg.Camera.build()
	if err != nil {
		return nil, err
	}

	materials := make(map[string]material.Material, len(cfg.Materials))
	for name, mc := range cfg.Materials {
		mat, err := mc.build(baseDir)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	world := geometry.NewHittableList()
	for i, sc := range cfg.Spheres {
		if sc.Radius == 0 {
			return nil, fmt.Errorf("sphere %d: radius must be non-zero", i)
		}
		mat, ok := materials[sc.Material]
		if !ok {
			return nil, fmt.Errorf("sphere %d: unknown material %q", i, sc.Material)
		}
		world.Add(geometry.NewSphere(sc.Center.Vec3(), sc.Radius, mat))
	}

	samplingConfig := SamplingConfig{
		Width:           cfg.Image.Width,
		Height:          ImageHeight(cfg.Image.Width, cameraConfig.AspectRatio),
		SamplesPerPixel: cfg.Image.SamplesPerPixel,
		MaxDepth:        cfg.Image.MaxDepth,
	}

	s := NewScene(cameraConfig, samplingConfig, world)
	if cfg.Background != nil {
		s.TopColor = cfg.Background.Top.Vec3()
		s.BottomColor = cfg.Background.Bottom.Vec3()
	}
	return s, nil
}

func (c CameraFileConfig) build() (geometry.CameraConfig, error) {
	config := geometry.CameraConfig{
		LookFrom:      c.LookFrom.Vec3(),
		LookAt:        c.LookAt.Vec3(),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          c.VFov,
		AspectRatio:   c.AspectRatio,
		Aperture:      c.Aperture,
		FocusDistance: c.FocusDistance,
	}
	if c.Up != nil {
		config.Up = c.Up.Vec3()
	}
	if config.AspectRatio == 0 {
		config.AspectRatio = 16.0 / 9.0
	}

	if config.VFov <= 0 || config.VFov >= 180 {
		return config, fmt.Errorf("camera vfov must be in (0, 180), got %g", config.VFov)
	}
	if config.AspectRatio < 0 {
		return config, fmt.Errorf("camera aspectRatio must be positive, got %g", config.AspectRatio)
	}
	if config.Aperture < 0 {
		return config, fmt.Errorf("camera aperture must not be negative, got %g", config.Aperture)
	}
	if config.LookFrom.Equals(config.LookAt) {
		return config, fmt.Errorf("camera lookFrom and lookAt must differ")
	}
	if config.Up.Cross(config.LookFrom.Subtract(config.LookAt)).NearZero() {
		return config, fmt.Errorf("camera up vector must not be parallel to the view direction")
	}
	return config, nil
}

func (m MaterialFileConfig) build(baseDir string) (material.Material, error) {
	switch strings.ToLower(m.Type) {
	case "lambertian", "diffuse":
		if m.Texture != nil {
			texture, err := m.Texture.build(baseDir)
			if err != nil {
				return nil, err
			}
			return material.NewTexturedLambertian(texture), nil
		}
		if m.Checker != nil {
			if m.Checker.Scale <= 0 {
				return nil, fmt.Errorf("checker scale must be positive, got %g", m.Checker.Scale)
			}
			checker := material.NewCheckerTexture(m.Checker.Scale, m.Checker.Even.Vec3(), m.Checker.Odd.Vec3())
			return material.NewTexturedLambertian(checker), nil
		}
		if m.Albedo == nil {
			return nil, fmt.Errorf("lambertian needs an albedo or a checker")
		}
		return material.NewLambertian(m.Albedo.Vec3()), nil
	case "metal":
		if m.Albedo == nil {
			return nil, fmt.Errorf("metal needs an albedo")
		}
		return material.NewMetal(m.Albedo.Vec3(), m.Fuzz), nil
	case "dielectric", "glass":
		if m.IOR <= 0 {
			return nil, fmt.Errorf("dielectric needs a positive ior, got %g", m.IOR)
		}
		return material.NewDielectric(m.IOR), nil
	default:
		return nil, fmt.Errorf("unknown material type %q", m.Type)
	}
}

func (t TextureFileConfig) build(baseDir string) (material.ColorSource, error) {
	switch strings.ToLower(t.Type) {
	case "image":
		if t.Path == "" {
			return nil, fmt.Errorf("image texture needs a path")
		}
		path := t.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		img, err := loaders.LoadImage(path)
		if err != nil {
			return nil, fmt.Errorf("image texture: %w", err)
		}
		return material.NewImageTexture(img.Width, img.Height, img.Pixels), nil
	case "uv":
		return material.NewUVDebugTexture(256), nil
	case "stripes":
		if t.Stripes <= 0 {
			return nil, fmt.Errorf("stripes texture needs a positive stripe count, got %d", t.Stripes)
		}
		return material.NewStripeTexture(t.Stripes, t.Colors[0].Vec3(), t.Colors[1].Vec3()), nil
	default:
		return nil, fmt.Errorf("unknown texture type %q", t.Type)
	}
}
