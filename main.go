package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/output"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// Config holds the command line options
type Config struct {
	SceneType  string
	Width      int   // 0 = scene default
	Samples    int   // 0 = scene default
	MaxDepth   int   // -1 = scene default
	Seed       int64 // Sampler seed
	Workers    int   // 1 = single-threaded, 0 = one per CPU
	Passes     int   // Progressive passes
	TileSize   int
	Format     string // png or ppm
	OutputPath string // Empty = output/<scene>/render_<timestamp>.<format>
	Help       bool
}

// newFlagSet binds the command line flags to config
func newFlagSet(config *Config, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(out)

	fs.StringVar(&config.SceneType, "scene", "default", "Scene: built-in name, scenes/<name>.json or a path to a .json scene file")
	fs.IntVar(&config.Width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&config.Samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&config.MaxDepth, "depth", -1, "Maximum ray bounce depth (-1 = scene default)")
	fs.Int64Var(&config.Seed, "seed", renderer.DefaultSeed, "Random seed")
	fs.IntVar(&config.Workers, "workers", 1, "Number of parallel workers (1 = single-threaded, 0 = auto-detect CPU count)")
	fs.IntVar(&config.Passes, "passes", 1, "Number of progressive passes")
	fs.IntVar(&config.TileSize, "tile", renderer.DefaultProgressiveConfig().TileSize, "Tile size for parallel rendering")
	fs.StringVar(&config.Format, "format", "png", "Output format when -output is not set: 'png' or 'ppm'")
	fs.StringVar(&config.OutputPath, "output", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	fs.BoolVar(&config.Help, "help", false, "Show help information")
	return fs
}

// parseFlags parses command line arguments into a Config
func parseFlags(args []string, stderr io.Writer) (Config, error) {
	var config Config
	fs := newFlagSet(&config, stderr)

	if err := fs.Parse(args); err != nil {
		return config, err
	}

	config.Format = strings.ToLower(config.Format)
	if config.Format != "png" && config.Format != "ppm" {
		return config, fmt.Errorf("unsupported format %q (use png or ppm)", config.Format)
	}
	if config.Width < 0 || config.Samples < 0 || config.MaxDepth < -1 {
		return config, fmt.Errorf("width, samples and depth must not be negative")
	}
	if config.Workers < 0 || config.Passes < 1 {
		return config, fmt.Errorf("workers must not be negative and passes must be at least 1")
	}
	return config, nil
}

func main() {
	config, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if config.Help {
		showHelp()
		return
	}

	logger := renderer.NewDefaultLogger()
	if _, err := run(config, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// showHelp prints usage information
func showHelp() {
	fmt.Println("Sphere Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	newFlagSet(&Config{}, os.Stdout).PrintDefaults()
	fmt.Println()

	scenes, err := scene.ListScenes()
	if err != nil {
		fmt.Printf("Warning: failed to list scenes: %v\n", err)
	}
	fmt.Println("Available scenes:")
	for _, info := range scenes {
		fmt.Printf("  %-16s %s\n", info.Name, info.Description)
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.<format>")
}

// run renders the configured scene and saves it, returning the output path
func run(config Config, logger core.Logger) (string, error) {
	logger.Printf("Starting Sphere Raytracer...\n")

	s, err := createScene(config.SceneType)
	if err != nil {
		return "", err
	}
	applyOverrides(s, config)

	logger.Printf("Rendering scene %q at %dx%d, %d samples, depth %d\n",
		config.SceneType, s.Width, s.Height(), s.SamplingConfig.SamplesPerPixel, s.SamplingConfig.MaxDepth)

	startTime := time.Now()
	img, stats, err := renderScene(s, config, logger)
	if err != nil {
		return "", err
	}

	logger.Printf("Render completed in %v\n", time.Since(startTime))
	logger.Printf("Samples per pixel: %.1f (range %d - %d)\n",
		stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed)

	outputPath := config.OutputPath
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = filepath.Join(createOutputDir(config.SceneType), fmt.Sprintf("render_%s.%s", timestamp, config.Format))
	}

	if err := output.Save(outputPath, img); err != nil {
		return "", err
	}

	logger.Printf("Render saved as %s\n", outputPath)
	return outputPath, nil
}

// createScene builds a scene by built-in name or scene file
func createScene(sceneType string) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("scene name must not be empty")
	}
	return scene.Create(sceneType)
}

// applyOverrides replaces scene defaults with values given on the command line
func applyOverrides(s *scene.Scene, config Config) {
	if config.Width > 0 {
		s.Width = config.Width
	}
	if config.Samples > 0 {
		s.SamplingConfig.SamplesPerPixel = config.Samples
	}
	if config.MaxDepth >= 0 {
		s.SamplingConfig.MaxDepth = config.MaxDepth
	}
}

// renderScene renders on the calling goroutine for a single-worker single-pass render,
// otherwise on the progressive worker pool
func renderScene(s *scene.Scene, config Config, logger core.Logger) (image.Image, renderer.RenderStats, error) {
	width, height := s.Width, s.Height()

	if config.Workers == 1 && config.Passes == 1 {
		raytracer := renderer.NewRaytracer(s, width, height)
		raytracer.SetSamplingConfig(s.SamplingConfig)
		raytracer.SetSeed(config.Seed)

		img, stats := raytracer.RenderPass()
		return img, stats, nil
	}

	progressiveConfig := renderer.ProgressiveConfig{
		TileSize:           config.TileSize,
		InitialSamples:     1,
		MaxSamplesPerPixel: s.SamplingConfig.SamplesPerPixel,
		MaxPasses:          config.Passes,
		NumWorkers:         config.Workers,
		Seed:               config.Seed,
	}

	pr := renderer.NewProgressiveRaytracer(s, width, height, s.SamplingConfig, progressiveConfig, logger)
	img, stats, err := pr.Render(nil)
	if err != nil {
		return nil, renderer.RenderStats{}, fmt.Errorf("progressive render failed: %w", err)
	}
	return img, stats, nil
}

// createOutputDir returns the output directory for a scene, named after the scene
// or the scene file without its extension
func createOutputDir(sceneType string) string {
	base := filepath.Base(sceneType)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "scene"
	}
	return filepath.Join("output", base)
}
