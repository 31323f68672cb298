package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// DefaultSeed seeds the sampler of a new raytracer so renders are reproducible
const DefaultSeed int64 = 42

// maxEncodedChannel keeps a channel of exactly 1.0 from overflowing into 256
const maxEncodedChannel = 0.999

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int     // Number of rays per pixel
	MaxDepth        int     // Maximum ray bounce depth
	MinHitDistance  float64 // Smallest accepted hit t, suppresses self-intersection acne
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        20,
		MinHitDistance:  0.001,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetBackgroundColors() (topColor, bottomColor core.Vec3)
	GetWorld() geometry.Shape
}

// Raytracer handles the rendering process
type Raytracer struct {
	scene   Scene
	width   int
	height  int
	config  SamplingConfig
	sampler core.Sampler
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, width, height int) *Raytracer {
	return &Raytracer{
		scene:   scene,
		width:   width,
		height:  height,
		config:  DefaultSamplingConfig(),
		sampler: core.NewSeededSampler(DefaultSeed),
	}
}

// SetSamplingConfig replaces the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
}

// MergeSamplingConfig updates only the non-zero fields of the sampling configuration
func (rt *Raytracer) MergeSamplingConfig(config SamplingConfig) {
	if config.SamplesPerPixel != 0 {
		rt.config.SamplesPerPixel = config.SamplesPerPixel
	}
	if config.MaxDepth != 0 {
		rt.config.MaxDepth = config.MaxDepth
	}
	if config.MinHitDistance != 0 {
		rt.config.MinHitDistance = config.MinHitDistance
	}
}

// GetSamplingConfig returns the current sampling configuration
func (rt *Raytracer) GetSamplingConfig() SamplingConfig {
	return rt.config
}

// SetSeed resets the sampler used by RenderPass
func (rt *Raytracer) SetSeed(seed int64) {
	rt.sampler = core.NewSeededSampler(seed)
}

// hitWorld finds the nearest intersection with the scene
func (rt *Raytracer) hitWorld(ray core.Ray) (*material.HitRecord, bool) {
	return rt.scene.GetWorld().Hit(ray, rt.config.MinHitDistance, math.Inf(1))
}

// backgroundGradient returns a gradient color based on ray direction
func (rt *Raytracer) backgroundGradient(r core.Ray) core.Vec3 {
	topColor, bottomColor := rt.scene.GetBackgroundColors()

	// Map the vertical direction component from [-1,1] to [0,1]
	unitDirection := r.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)

	return bottomColor.Multiply(1.0 - t).Add(topColor.Multiply(t))
}

// RayColor traces a ray through the scene and returns the gathered radiance
func (rt *Raytracer) RayColor(r core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := rt.hitWorld(r)
	if !isHit {
		return rt.backgroundGradient(r)
	}

	scatter, didScatter := hit.Material.Scatter(r, *hit, sampler)
	if !didScatter {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	return scatter.Attenuation.MultiplyVec(rt.RayColor(scatter.Scattered, depth-1, sampler))
}

// SamplePixel traces samples jittered rays through pixel (x, y) and returns their sum.
// Row y counts down from the top of the image.
func (rt *Raytracer) SamplePixel(x, y, samples int, sampler core.Sampler) core.Vec3 {
	camera := rt.scene.GetCamera()
	uScale := float64(max(rt.width-1, 1))
	vScale := float64(max(rt.height-1, 1))
	row := float64(rt.height - 1 - y)

	colorAccum := core.Vec3{X: 0, Y: 0, Z: 0}
	for sample := 0; sample < samples; sample++ {
		u := (float64(x) + sampler.Get1D()) / uScale
		v := (row + sampler.Get1D()) / vScale

		ray := camera.GetRay(u, v)
		colorAccum = colorAccum.Add(rt.RayColor(ray, rt.config.MaxDepth, sampler))
	}
	return colorAccum
}

// EncodeColor averages an accumulated color over its samples, applies gamma 2 correction
// and scales each channel to [0, 255]
func EncodeColor(colorSum core.Vec3, samples int) color.RGBA {
	colorVec := colorSum.Divide(float64(max(samples, 1))).Sqrt()
	return color.RGBA{
		R: encodeChannel(colorVec.X),
		G: encodeChannel(colorVec.Y),
		B: encodeChannel(colorVec.Z),
		A: 255,
	}
}

func encodeChannel(c float64) uint8 {
	if math.IsNaN(c) {
		return 0
	}
	return uint8(256 * max(0, min(maxEncodedChannel, c)))
}

// RenderPass renders the whole image on the calling goroutine, top row first
func (rt *Raytracer) RenderPass() (*image.RGBA, RenderStats) {
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
	stats := newRenderStats(rt.width*rt.height, rt.config.SamplesPerPixel)

	for y := 0; y < rt.height; y++ {
		for x := 0; x < rt.width; x++ {
			colorSum := rt.SamplePixel(x, y, rt.config.SamplesPerPixel, rt.sampler)
			img.SetRGBA(x, y, EncodeColor(colorSum, rt.config.SamplesPerPixel))
			stats.update(rt.config.SamplesPerPixel)
		}
	}

	stats.finalize()
	return img, stats
}
