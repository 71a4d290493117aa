package scene

import (
	"fmt"
	"sort"
	"strings"
)

// Builder constructs a built-in scene. Seed only affects procedurally scattered scenes.
type Builder func(seed int64) *Scene

type builtinScene struct {
	description string
	build       Builder
}

var builtinScenes = map[string]builtinScene{
	"simple": {
		description: "Single diffuse sphere on a diffuse ground sphere",
		build:       func(int64) *Scene { return NewSimpleScene() },
	},
	"default": {
		description: "Diffuse, hollow glass and gold spheres with depth of field",
		build:       func(int64) *Scene { return NewDefaultScene() },
	},
	"random": {
		description: "Hundreds of small random spheres around three large ones",
		build:       func(seed int64) *Scene { return NewRandomScene(seed) },
	},
	"spheregrid": {
		description: "Grid of metal spheres colored across hue and chroma",
		build:       func(int64) *Scene { return NewSphereGridScene() },
	},
	"textures": {
		description: "Spheres showing checker, stripe, UV and solid albedo",
		build:       func(int64) *Scene { return NewTextureTestScene() },
	},
}

// BuiltinSceneNames lists the registered scene names in sorted order
func BuiltinSceneNames() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewBuiltinScene builds the named scene
func NewBuiltinScene(name string, seed int64) (*Scene, error) {
	builtin, ok := builtinScenes[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(BuiltinSceneNames(), ", "))
	}
	return builtin.build(seed), nil
}
