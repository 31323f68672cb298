package renderer

import (
	"fmt"
	"image"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	TileSize           int   // Size of each tile (64x64 recommended)
	InitialSamples     int   // Samples for first pass (1 recommended)
	MaxSamplesPerPixel int   // Maximum total samples per pixel (0 = use sampling config)
	MaxPasses          int   // Maximum number of passes
	NumWorkers         int   // Number of parallel workers (0 = use CPU count)
	Seed               int64 // Base seed; tile N samples with Seed+N
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		TileSize:       64,
		InitialSamples: 1,
		MaxPasses:      5,
		NumWorkers:     0, // Auto-detect CPU count
		Seed:           DefaultSeed,
	}
}

// ProgressiveRaytracer renders in passes of increasing sample counts on a worker pool
type ProgressiveRaytracer struct {
	scene         Scene
	width, height int
	config        ProgressiveConfig
	tiles         []*Tile
	pixelStats    [][]PixelStats // Shared pixel statistics array (global image coordinates)
	workerPool    *WorkerPool
	started       bool
	logger        core.Logger
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	Image      *image.RGBA
	Stats      RenderStats
	IsLast     bool
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX      int // Tile coordinates (not pixel coordinates)
	TileY      int
	Bounds     image.Rectangle
	PassNumber int

	TileNumber  int // Current tile number in this pass (1-based)
	TotalTiles  int
	TotalPasses int
}

// NewProgressiveRaytracer creates a new progressive raytracer
func NewProgressiveRaytracer(scene Scene, width, height int, sampling SamplingConfig, config ProgressiveConfig, logger core.Logger) *ProgressiveRaytracer {
	if config.MaxSamplesPerPixel <= 0 {
		config.MaxSamplesPerPixel = sampling.SamplesPerPixel
	}
	config.MaxPasses = max(1, config.MaxPasses)
	config.InitialSamples = max(1, min(config.InitialSamples, config.MaxSamplesPerPixel))
	if config.TileSize <= 0 {
		config.TileSize = DefaultProgressiveConfig().TileSize
	}
	sampling.SamplesPerPixel = config.MaxSamplesPerPixel

	pixelStats := make([][]PixelStats, height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, width)
	}

	return &ProgressiveRaytracer{
		scene:      scene,
		width:      width,
		height:     height,
		config:     config,
		tiles:      NewTileGrid(width, height, config.TileSize, config.Seed),
		pixelStats: pixelStats,
		workerPool: NewWorkerPool(scene, width, height, config.TileSize, sampling, config.NumWorkers),
		logger:     logger,
	}
}

// getSamplesForPass calculates the target total samples for a given pass
func (pr *ProgressiveRaytracer) getSamplesForPass(passNumber int) int {
	if pr.config.MaxPasses == 1 {
		return pr.config.MaxSamplesPerPixel
	}

	// First pass is a quick preview
	if passNumber == 1 {
		return pr.config.InitialSamples
	}

	// Final pass always reaches the maximum
	if passNumber >= pr.config.MaxPasses {
		return pr.config.MaxSamplesPerPixel
	}

	// Divide remaining samples evenly across remaining passes
	remainingSamples := pr.config.MaxSamplesPerPixel - pr.config.InitialSamples
	remainingPasses := pr.config.MaxPasses - 1
	samplesPerPass := remainingSamples / remainingPasses

	return pr.config.InitialSamples + (passNumber-1)*samplesPerPass
}

// RenderPass renders a single progressive pass using parallel processing
func (pr *ProgressiveRaytracer) RenderPass(passNumber int, tileCallback func(TileCompletionResult)) (*image.RGBA, RenderStats, error) {
	targetSamples := pr.getSamplesForPass(passNumber)

	pr.logger.Printf("Pass %d: Target %d samples per pixel (using %d workers)...\n",
		passNumber, targetSamples, pr.workerPool.GetNumWorkers())

	if !pr.started {
		pr.workerPool.Start()
		pr.started = true
	}

	for taskID, tile := range pr.tiles {
		pr.workerPool.SubmitTask(TileTask{
			Tile:          tile,
			PassNumber:    passNumber,
			TargetSamples: targetSamples,
			TaskID:        taskID,
			PixelStats:    pr.pixelStats,
		})
	}

	// Collect every tile before failing so no worker is left writing to pixelStats
	var firstErr error
	for i := 0; i < len(pr.tiles); i++ {
		result, ok := pr.workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}

		tile := pr.tiles[result.TaskID]
		tile.PassesCompleted++

		if tileCallback != nil {
			tileCallback(TileCompletionResult{
				TileX:       tile.Bounds.Min.X / pr.config.TileSize,
				TileY:       tile.Bounds.Min.Y / pr.config.TileSize,
				Bounds:      tile.Bounds,
				PassNumber:  passNumber,
				TileNumber:  i + 1,
				TotalTiles:  len(pr.tiles),
				TotalPasses: pr.config.MaxPasses,
			})
		}
	}
	if firstErr != nil {
		return nil, RenderStats{}, fmt.Errorf("pass %d: %w", passNumber, firstErr)
	}

	img, stats := pr.assembleCurrentImage(targetSamples)
	return img, stats, nil
}

// Render runs every pass, reporting each one to passCallback, and returns the final image.
// The worker pool is shut down when Render returns, so a ProgressiveRaytracer renders once.
func (pr *ProgressiveRaytracer) Render(passCallback func(PassResult)) (*image.RGBA, RenderStats, error) {
	defer pr.workerPool.Stop()
	if !pr.started {
		pr.workerPool.Start()
		pr.started = true
	}

	pr.logger.Printf("Starting progressive rendering with %d passes...\n", pr.config.MaxPasses)

	var img *image.RGBA
	var stats RenderStats
	for pass := 1; pass <= pr.config.MaxPasses; pass++ {
		startTime := time.Now()

		var err error
		img, stats, err = pr.RenderPass(pass, nil)
		if err != nil {
			return nil, RenderStats{}, err
		}

		actualSamples := int(stats.AverageSamples)
		pr.logger.Printf("Pass %d completed in %v (actual: %d samples/pixel)\n",
			pass, time.Since(startTime), actualSamples)

		isLast := pass == pr.config.MaxPasses || actualSamples >= pr.config.MaxSamplesPerPixel
		if passCallback != nil {
			passCallback(PassResult{
				PassNumber: pass,
				Image:      img,
				Stats:      stats,
				IsLast:     isLast,
			})
		}

		if isLast {
			break
		}
	}

	return img, stats, nil
}

// assembleCurrentImage creates an image from the current state of the shared pixel stats
// and calculates render statistics in a single pass
func (pr *ProgressiveRaytracer) assembleCurrentImage(targetSamples int) (*image.RGBA, RenderStats) {
	img := image.NewRGBA(image.Rect(0, 0, pr.width, pr.height))
	stats := newRenderStats(pr.width*pr.height, targetSamples)
	stats.MinSamples = pr.config.MaxSamplesPerPixel

	for y := 0; y < pr.height; y++ {
		for x := 0; x < pr.width; x++ {
			pixel := &pr.pixelStats[y][x]
			img.SetRGBA(x, y, EncodeColor(pixel.GetColor(), 1))
			stats.update(pixel.SampleCount)
		}
	}

	stats.finalize()
	return img, stats
}
