package material

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// Material interface for objects that can scatter rays
type Material interface {
	// Scatter returns the attenuation and outgoing ray, or false when the ray is absorbed
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation, each channel in [0,1]
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Geometric outward normal, not flipped toward the ray
	T        float64   // Parameter t along the ray
	Material Material  // Material of the hit object
}

// IsFrontFace reports whether the ray approached from the side the normal points to
func (h *HitRecord) IsFrontFace(ray core.Ray) bool {
	return ray.Direction.Dot(h.Normal) < 0
}
