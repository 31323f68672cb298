package renderer

import (
	"image"
	"testing"
)

func newPixelStats(width, height int) [][]PixelStats {
	pixelStats := make([][]PixelStats, height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, width)
	}
	return pixelStats
}

func TestNewTileGrid_CoversImageOnce(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
		expectedTiles int
	}{
		{"exact fit", 64, 32, 32, 2},
		{"ragged edges", 100, 70, 32, 12},
		{"single tile", 10, 10, 64, 1},
		{"zero tile size", 10, 5, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize, 1)
			if len(tiles) != tt.expectedTiles {
				t.Fatalf("Expected %d tiles, got %d", tt.expectedTiles, len(tiles))
			}

			coverage := make([]int, tt.width*tt.height)
			for i, tile := range tiles {
				if tile.ID != i {
					t.Errorf("Expected tile %d to have ID %d, got %d", i, i, tile.ID)
				}
				for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
					for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
						coverage[y*tt.width+x]++
					}
				}
			}
			for i, count := range coverage {
				if count != 1 {
					t.Fatalf("Pixel %d covered %d times", i, count)
				}
			}
		})
	}
}

func TestNewTileGrid_SamplersAreSeededPerTile(t *testing.T) {
	first := NewTileGrid(64, 64, 32, 5)
	second := NewTileGrid(64, 64, 32, 5)

	for i := range first {
		a, b := first[i].Sampler.Get1D(), second[i].Sampler.Get1D()
		if a != b {
			t.Errorf("Tile %d: same seed should give the same sequence (%v vs %v)", i, a, b)
		}
	}

	if first[0].Sampler.Get1D() == first[1].Sampler.Get1D() {
		t.Error("Neighbouring tiles should draw different sequences")
	}
}

func TestTileRenderer_TopsUpToTarget(t *testing.T) {
	scene := newTwoSphereScene()
	raytracer := NewRaytracer(scene, 8, 6)
	raytracer.SetSamplingConfig(SamplingConfig{SamplesPerPixel: 4, MaxDepth: 5, MinHitDistance: 0.001})
	renderer := NewTileRenderer(raytracer)

	pixelStats := newPixelStats(8, 6)
	bounds := image.Rect(2, 1, 6, 4)
	tile := NewTile(0, bounds, 1)

	stats := renderer.RenderTileBounds(bounds, pixelStats, tile.Sampler, 3)
	if stats.TotalPixels != 12 || stats.TotalSamples != 36 {
		t.Errorf("Expected 12 pixels and 36 samples, got %+v", stats)
	}

	stats = renderer.RenderTileBounds(bounds, pixelStats, tile.Sampler, 3)
	if stats.TotalSamples != 0 {
		t.Errorf("Pixels already at target should take no samples, got %d", stats.TotalSamples)
	}

	stats = renderer.RenderTileBounds(bounds, pixelStats, tile.Sampler, 5)
	if stats.TotalSamples != 24 || stats.MinSamples != 2 {
		t.Errorf("Expected two more samples per pixel, got %+v", stats)
	}

	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			inside := image.Pt(x, y).In(bounds)
			count := pixelStats[y][x].SampleCount
			if inside && count != 5 {
				t.Errorf("Pixel (%d,%d) inside tile should have 5 samples, got %d", x, y, count)
			}
			if !inside && count != 0 {
				t.Errorf("Pixel (%d,%d) outside tile should be untouched, got %d", x, y, count)
			}
		}
	}
}
