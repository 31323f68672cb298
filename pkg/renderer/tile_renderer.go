package renderer

import (
	"image"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// TileRenderer renders individual tiles into a shared pixel statistics array
type TileRenderer struct {
	raytracer *Raytracer
}

// NewTileRenderer creates a tile renderer backed by the given raytracer
func NewTileRenderer(raytracer *Raytracer) *TileRenderer {
	return &TileRenderer{raytracer: raytracer}
}

// RenderTileBounds tops up every pixel within bounds to targetSamples.
// Pixels outside bounds are never touched, so tiles with disjoint bounds can render concurrently.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler, targetSamples int) RenderStats {
	stats := newRenderStats(bounds.Dx()*bounds.Dy(), targetSamples)

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			samplesUsed := tr.samplePixel(i, j, &pixelStats[j][i], sampler, targetSamples)
			stats.update(samplesUsed)
		}
	}

	stats.finalize()
	return stats
}

// samplePixel takes the samples still missing for this pass and returns how many it took
func (tr *TileRenderer) samplePixel(i, j int, ps *PixelStats, sampler core.Sampler, targetSamples int) int {
	needed := targetSamples - ps.SampleCount
	if needed <= 0 {
		return 0
	}

	colorSum := tr.raytracer.SamplePixel(i, j, needed, sampler)
	ps.AddSamples(colorSum, needed)
	return needed
}
