package core

import (
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing
type Sampler interface {
	// Get1D returns a uniform value in [0, 1)
	Get1D() float64
	// Range returns a uniform value in [minVal, maxVal)
	Range(minVal, maxVal float64) float64
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded for reproducible renders
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Range returns a random float64 in [minVal, maxVal)
func (r *RandomSampler) Range(minVal, maxVal float64) float64 {
	return minVal + (maxVal-minVal)*r.random.Float64()
}

// RandomVec returns a vector with independent uniform components in [minVal, maxVal)
func RandomVec(sampler Sampler, minVal, maxVal float64) Vec3 {
	return Vec3{
		X: sampler.Range(minVal, maxVal),
		Y: sampler.Range(minVal, maxVal),
		Z: sampler.Range(minVal, maxVal),
	}
}

// RandomInUnitSphere returns a random point strictly inside the unit sphere.
// Rejection sampling from the [-1,1]³ cube takes about 2 draws on average; the loop has no
// iteration cap, so a degenerate sampler that never lands inside would spin forever.
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		p := RandomVec(sampler, -1, 1)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// RandomUnitVector returns a random direction on the unit sphere
func RandomUnitVector(sampler Sampler) Vec3 {
	return RandomInUnitSphere(sampler).Unit()
}

// RandomInHemisphere returns a random point in the unit sphere on the same side as normal
func RandomInHemisphere(normal Vec3, sampler Sampler) Vec3 {
	p := RandomInUnitSphere(sampler)
	if p.Dot(normal) > 0 {
		return p
	}
	return p.Negate()
}
