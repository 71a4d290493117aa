package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/integrator"
	"github.com/df07/go-scanline-raytracer/pkg/renderer"
	"github.com/df07/go-scanline-raytracer/pkg/scene"
)

const version = "0.1.0"

// scenesDir is searched for JSON scene files referenced by name
var scenesDir = "scenes"

type options struct {
	sceneName string
	sceneFile string
	output    string
	list      bool

	width   int
	aspect  float64
	spp     int
	depth   int
	workers int
	seed    int64

	lookFrom  string
	lookAt    string
	vfov      float64
	aperture  float64
	focusDist float64
}

func main() {
	if err := fang.Execute(context.Background(), newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "scanline-raytracer",
		Short: "Render sphere scenes with a parallel scanline path tracer",
		Long: `Renders a scene of spheres with diffuse, metal and glass materials.
The image is written as plain PPM (P3) to stdout unless --output names a file;
files ending in .png are written as PNG. Progress is reported on stderr.`,
		Example: `  scanline-raytracer --scene default > default.ppm
  scanline-raytracer --scene random --width 600 --spp 50 --output random.png
  scanline-raytracer --scene-file scenes/glass-marbles.json --workers 4 > marbles.ppm`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.sceneName, "scene", "default", "built-in scene ("+strings.Join(scene.BuiltinSceneNames(), ", ")+") or the name of a JSON file in "+scenesDir+"/")
	flags.StringVar(&opts.sceneFile, "scene-file", "", "path to a JSON scene file (overrides --scene)")
	flags.StringVarP(&opts.output, "output", "o", "-", "output file; - writes PPM to stdout, *.png writes PNG")
	flags.BoolVar(&opts.list, "list", false, "list available scenes and exit")

	flags.IntVar(&opts.width, "width", 0, "image width in pixels (default from scene)")
	flags.Float64Var(&opts.aspect, "aspect", 0, "aspect ratio width/height (default from scene)")
	flags.IntVar(&opts.spp, "spp", 0, "samples per pixel (default from scene)")
	flags.IntVar(&opts.depth, "depth", 0, "maximum ray bounce depth (default from scene)")
	flags.IntVar(&opts.workers, "workers", 0, "number of parallel workers (0 = number of CPUs)")
	flags.Int64Var(&opts.seed, "seed", renderer.DefaultRenderConfig().Seed, "random seed for sampling and the random scene")

	flags.StringVar(&opts.lookFrom, "lookfrom", "", "camera position as x,y,z")
	flags.StringVar(&opts.lookAt, "lookat", "", "camera target as x,y,z")
	flags.Float64Var(&opts.vfov, "vfov", 0, "vertical field of view in degrees")
	flags.Float64Var(&opts.aperture, "aperture", 0, "lens aperture, 0 for a pinhole camera")
	flags.Float64Var(&opts.focusDist, "focus-dist", 0, "focus distance, 0 = distance to the look-at point")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	if opts.list {
		return listScenes(cmd.OutOrStdout())
	}

	sceneRef := opts.sceneName
	if opts.sceneFile != "" {
		sceneRef = opts.sceneFile
	}
	s, err := createScene(sceneRef, opts.seed)
	if err != nil {
		return err
	}
	if err := applyOverrides(cmd, opts, s); err != nil {
		return err
	}

	logger := renderer.NewWriterLogger(cmd.ErrOrStderr())
	logger.Printf("Scene %q: %d primitives, %dx%d, %d samples/pixel, max depth %d\n",
		sceneRef, s.GetPrimitiveCount(), s.SamplingConfig.Width, s.SamplingConfig.Height,
		s.SamplingConfig.SamplesPerPixel, s.SamplingConfig.MaxDepth)

	pt := integrator.NewPathTracingIntegrator(s.SamplingConfig)
	raytracer := renderer.NewScanlineRaytracer(s, pt, renderer.RenderConfig{
		NumWorkers: opts.workers,
		Seed:       opts.seed,
	}, logger)

	frame, stats, err := raytracer.Render()
	if err != nil {
		return err
	}
	logger.Printf("Average samples per pixel: %.1f\n", stats.AverageSamples)

	return writeFrame(frame, opts.output, cmd.OutOrStdout(), logger)
}

// createScene resolves a scene reference: a JSON file path, the name of a
// JSON file in the scenes directory, or a built-in scene name
func createScene(sceneRef string, seed int64) (*scene.Scene, error) {
	if sceneRef == "" {
		return nil, fmt.Errorf("no scene given")
	}

	if strings.HasSuffix(strings.ToLower(sceneRef), ".json") {
		return scene.LoadSceneFile(sceneRef)
	}

	s, err := tryLoadSceneFile(sceneRef)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}

	return scene.NewBuiltinScene(sceneRef, seed)
}

// tryLoadSceneFile loads scenes/<name>.json. A missing file yields a nil
// scene and no error; a file that exists but does not load is an error.
func tryLoadSceneFile(name string) (*scene.Scene, error) {
	path := filepath.Join(scenesDir, name+".json")
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat scene file: %w", err)
	}
	return scene.LoadSceneFile(path)
}

// applyOverrides applies explicitly set flags on top of the scene's own configuration
func applyOverrides(cmd *cobra.Command, opts *options, s *scene.Scene) error {
	flags := cmd.Flags()

	if flags.Changed("width") || flags.Changed("aspect") {
		width, aspect := s.SamplingConfig.Width, s.CameraConfig.AspectRatio
		if flags.Changed("width") {
			if opts.width <= 0 {
				return fmt.Errorf("--width must be positive, got %d", opts.width)
			}
			width = opts.width
		}
		if flags.Changed("aspect") {
			if opts.aspect <= 0 {
				return fmt.Errorf("--aspect must be positive, got %g", opts.aspect)
			}
			aspect = opts.aspect
		}
		s.Resize(width, aspect)
	}

	if flags.Changed("spp") {
		if opts.spp <= 0 {
			return fmt.Errorf("--spp must be positive, got %d", opts.spp)
		}
		s.SamplingConfig.SamplesPerPixel = opts.spp
	}
	if flags.Changed("depth") {
		if opts.depth <= 0 {
			return fmt.Errorf("--depth must be positive, got %d", opts.depth)
		}
		s.SamplingConfig.MaxDepth = opts.depth
	}

	// Camera fields are set directly so that zero values such as --aperture 0 take effect
	cameraConfig := s.CameraConfig
	cameraChanged := false
	if flags.Changed("lookfrom") {
		v, err := parseVec3(opts.lookFrom)
		if err != nil {
			return fmt.Errorf("--lookfrom: %w", err)
		}
		cameraConfig.LookFrom = v
		cameraChanged = true
	}
	if flags.Changed("lookat") {
		v, err := parseVec3(opts.lookAt)
		if err != nil {
			return fmt.Errorf("--lookat: %w", err)
		}
		cameraConfig.LookAt = v
		cameraChanged = true
	}
	if flags.Changed("vfov") {
		if opts.vfov <= 0 || opts.vfov >= 180 {
			return fmt.Errorf("--vfov must be in (0, 180), got %g", opts.vfov)
		}
		cameraConfig.VFov = opts.vfov
		cameraChanged = true
	}
	if flags.Changed("aperture") {
		if opts.aperture < 0 {
			return fmt.Errorf("--aperture must not be negative, got %g", opts.aperture)
		}
		cameraConfig.Aperture = opts.aperture
		cameraChanged = true
	}
	if flags.Changed("focus-dist") {
		if opts.focusDist < 0 {
			return fmt.Errorf("--focus-dist must not be negative, got %g", opts.focusDist)
		}
		cameraConfig.FocusDistance = opts.focusDist
		cameraChanged = true
	}

	if cameraChanged {
		if cameraConfig.LookFrom.Equals(cameraConfig.LookAt) {
			return fmt.Errorf("camera position and target must differ")
		}
		s.SetCameraConfig(cameraConfig)
	}
	return nil
}

// parseVec3 parses "x,y,z"
func parseVec3(value string) (core.Vec3, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("expected x,y,z, got %q", value)
	}

	var xyz [3]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid component %q: %w", part, err)
		}
		xyz[i] = f
	}
	return core.NewVec3(xyz[0], xyz[1], xyz[2]), nil
}

// writeFrame writes PPM to stdout for "-", PNG for *.png paths and PPM otherwise
func writeFrame(frame *renderer.Frame, output string, stdout io.Writer, logger core.Logger) error {
	if output == "-" || output == "" {
		return frame.WritePPM(stdout)
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(output), ".png") {
		err = frame.WritePNG(file)
	} else {
		err = frame.WritePPM(file)
	}
	if err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	logger.Printf("Render saved as %s\n", output)
	return nil
}

// listScenes prints the built-in scenes and the JSON scenes found in the scenes directory
func listScenes(w io.Writer) error {
	scenes, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		return err
	}
	for _, info := range scenes {
		if _, err := fmt.Fprintf(w, "%-28s %-8s %s\n", info.ID, info.Type, info.Description); err != nil {
			return fmt.Errorf("failed to list scenes: %w", err)
		}
	}
	return nil
}
