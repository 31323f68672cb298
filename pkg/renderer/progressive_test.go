package renderer

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// testLogger collects log output for assertions
type testLogger struct {
	lines []string
}

func (tl *testLogger) Printf(format string, args ...interface{}) {
	tl.lines = append(tl.lines, fmt.Sprintf(format, args...))
}

func TestProgressiveSampleCalculation(t *testing.T) {
	config := DefaultProgressiveConfig()
	config.InitialSamples = 1
	config.MaxSamplesPerPixel = 50
	config.MaxPasses = 7

	pr := &ProgressiveRaytracer{config: config}

	// Pass 2-6: (50-1)/6 = 8 samples per pass, final pass gets all remaining
	expectedTotalSamples := []int{1, 9, 17, 25, 33, 41, 50}

	for pass := 1; pass <= 7; pass++ {
		totalSamples := pr.getSamplesForPass(pass)
		if totalSamples != expectedTotalSamples[pass-1] {
			t.Errorf("Pass %d: expected %d total samples, got %d",
				pass, expectedTotalSamples[pass-1], totalSamples)
		}
	}
}

func TestProgressiveSampleCalculation_SinglePass(t *testing.T) {
	pr := &ProgressiveRaytracer{config: ProgressiveConfig{InitialSamples: 1, MaxSamplesPerPixel: 12, MaxPasses: 1}}
	if got := pr.getSamplesForPass(1); got != 12 {
		t.Errorf("Single pass should take every sample, got %d", got)
	}
}

func TestProgressiveConfig(t *testing.T) {
	config := DefaultProgressiveConfig()

	if config.TileSize != 64 {
		t.Errorf("Expected default tile size 64, got %d", config.TileSize)
	}
	if config.InitialSamples != 1 {
		t.Errorf("Expected default initial samples 1, got %d", config.InitialSamples)
	}
	if config.MaxPasses != 5 {
		t.Errorf("Expected default max passes 5, got %d", config.MaxPasses)
	}
	if config.Seed != DefaultSeed {
		t.Errorf("Expected default seed %d, got %d", DefaultSeed, config.Seed)
	}
}

func TestNewProgressiveRaytracer_NormalizesConfig(t *testing.T) {
	sampling := SamplingConfig{SamplesPerPixel: 3, MaxDepth: 5, MinHitDistance: 0.001}
	pr := NewProgressiveRaytracer(newMockScene(), 4, 3, sampling,
		ProgressiveConfig{InitialSamples: 10, MaxPasses: 0}, &testLogger{})

	if pr.config.MaxSamplesPerPixel != 3 {
		t.Errorf("Expected max samples from sampling config, got %d", pr.config.MaxSamplesPerPixel)
	}
	if pr.config.InitialSamples != 3 {
		t.Errorf("Initial samples should be capped at the maximum, got %d", pr.config.InitialSamples)
	}
	if pr.config.MaxPasses != 1 {
		t.Errorf("Expected at least one pass, got %d", pr.config.MaxPasses)
	}
	if pr.config.TileSize != DefaultProgressiveConfig().TileSize {
		t.Errorf("Expected default tile size, got %d", pr.config.TileSize)
	}
}

func renderProgressive(t *testing.T, workers int) ([]byte, RenderStats, []PassResult) {
	t.Helper()

	sampling := SamplingConfig{SamplesPerPixel: 6, MaxDepth: 10, MinHitDistance: 0.001}
	config := ProgressiveConfig{
		TileSize:       4,
		InitialSamples: 1,
		MaxPasses:      3,
		NumWorkers:     workers,
		Seed:           11,
	}
	pr := NewProgressiveRaytracer(newTwoSphereScene(), 16, 9, sampling, config, &testLogger{})

	var passes []PassResult
	img, stats, err := pr.Render(func(result PassResult) {
		passes = append(passes, result)
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return img.Pix, stats, passes
}

func TestProgressiveRaytracer_DeterministicAcrossWorkerCounts(t *testing.T) {
	single, _, _ := renderProgressive(t, 1)
	parallel, _, _ := renderProgressive(t, 4)

	if !bytes.Equal(single, parallel) {
		t.Error("Image should not depend on the number of workers")
	}
}

func TestProgressiveRaytracer_PassesReachTarget(t *testing.T) {
	_, stats, passes := renderProgressive(t, 2)

	if len(passes) != 3 {
		t.Fatalf("Expected 3 passes, got %d", len(passes))
	}
	expected := []float64{1, 3, 6}
	for i, pass := range passes {
		if pass.PassNumber != i+1 {
			t.Errorf("Expected pass number %d, got %d", i+1, pass.PassNumber)
		}
		if pass.Stats.AverageSamples != expected[i] {
			t.Errorf("Pass %d: expected %v samples/pixel, got %v", i+1, expected[i], pass.Stats.AverageSamples)
		}
		if pass.IsLast != (i == len(passes)-1) {
			t.Errorf("Pass %d: unexpected IsLast %v", i+1, pass.IsLast)
		}
	}

	if stats.TotalPixels != 16*9 || stats.MinSamples != 6 || stats.MaxSamplesUsed != 6 {
		t.Errorf("Final stats should show every pixel at 6 samples, got %+v", stats)
	}
}

func TestProgressiveRaytracer_TileCallback(t *testing.T) {
	sampling := SamplingConfig{SamplesPerPixel: 2, MaxDepth: 3, MinHitDistance: 0.001}
	config := ProgressiveConfig{TileSize: 4, InitialSamples: 1, MaxPasses: 2, NumWorkers: 2, Seed: 1}
	logger := &testLogger{}
	pr := NewProgressiveRaytracer(newMockScene(), 10, 6, sampling, config, logger)
	defer pr.workerPool.Stop()

	var results []TileCompletionResult
	_, _, err := pr.RenderPass(1, func(result TileCompletionResult) {
		results = append(results, result)
	})
	if err != nil {
		t.Fatalf("RenderPass failed: %v", err)
	}

	// 10x6 with 4-pixel tiles is a 3x2 grid
	if len(results) != 6 {
		t.Fatalf("Expected 6 tile callbacks, got %d", len(results))
	}
	seen := make(map[[2]int]bool)
	for i, result := range results {
		if result.TileNumber != i+1 || result.TotalTiles != 6 || result.TotalPasses != 2 {
			t.Errorf("Unexpected progress fields %+v", result)
		}
		seen[[2]int{result.TileX, result.TileY}] = true
	}
	if len(seen) != 6 {
		t.Errorf("Expected 6 distinct tiles, got %d", len(seen))
	}

	if len(logger.lines) == 0 || !strings.Contains(logger.lines[0], "Pass 1") {
		t.Errorf("Expected pass progress in the log, got %q", logger.lines)
	}
}

func TestProgressiveRaytracer_WorkerPanicBecomesError(t *testing.T) {
	panicky := MockShape{
		hitFn: func(core.Ray, float64, float64) (*material.HitRecord, bool) {
			panic("broken shape")
		},
	}

	sampling := SamplingConfig{SamplesPerPixel: 1, MaxDepth: 3, MinHitDistance: 0.001}
	config := ProgressiveConfig{TileSize: 2, InitialSamples: 1, MaxPasses: 1, NumWorkers: 2}
	pr := NewProgressiveRaytracer(newMockScene(panicky), 4, 4, sampling, config, &testLogger{})

	_, _, err := pr.Render(nil)
	if err == nil {
		t.Fatal("Expected an error from a panicking shape")
	}
	if !strings.Contains(err.Error(), "broken shape") {
		t.Errorf("Expected panic value in error, got %v", err)
	}
}
