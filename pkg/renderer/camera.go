package renderer

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// CameraConfig describes a fixed pinhole camera looking down -Z
type CameraConfig struct {
	Origin         core.Vec3 // Eye position
	AspectRatio    float64   // Viewport width / height
	ViewportHeight float64   // Height of the image plane in world units
	FocalLength    float64   // Distance from origin to image plane
}

// DefaultCameraConfig returns a 16:9 camera with a 2-unit tall viewport one unit away
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Origin:         core.NewVec3(0, 0, 0),
		AspectRatio:    16.0 / 9.0,
		ViewportHeight: 2.0,
		FocalLength:    1.0,
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied.
// Origin is only overridden when it is not the zero vector.
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if !override.Origin.Equals(core.Vec3{}) {
		result.Origin = override.Origin
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.ViewportHeight != 0 {
		result.ViewportHeight = override.ViewportHeight
	}
	if override.FocalLength != 0 {
		result.FocalLength = override.FocalLength
	}
	return result
}

// Camera generates rays for rendering
type Camera struct {
	config          CameraConfig
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera creates a camera, precomputing the image plane in world space
func NewCamera(config CameraConfig) *Camera {
	viewportWidth := config.AspectRatio * config.ViewportHeight

	origin := config.Origin
	horizontal := core.NewVec3(viewportWidth, 0, 0)
	vertical := core.NewVec3(0, config.ViewportHeight, 0)
	lowerLeftCorner := origin.Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(core.NewVec3(0, 0, config.FocalLength))

	return &Camera{
		config:          config,
		origin:          origin,
		horizontal:      horizontal,
		vertical:        vertical,
		lowerLeftCorner: lowerLeftCorner,
	}
}

// GetRay generates a ray for screen coordinates (u, v) where 0 <= u,v <= 1 and (0,0) is
// the lower-left corner. The direction is not normalized.
func (c *Camera) GetRay(u, v float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(u)).
		Add(c.vertical.Multiply(v)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// ImageHeight returns the pixel height matching the camera aspect ratio for a given width
func (c *Camera) ImageHeight(width int) int {
	return max(1, int(float64(width)/c.config.AspectRatio))
}
