package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// NewMaterialsScene creates the three-material showcase: a hollow glass sphere on the left,
// a diffuse sphere in the middle and fuzzed metal on the right
func NewMaterialsScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	return newMaterialsScene(material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3), cameraOverrides)
}

// NewStrictMetalScene is the materials scene with a metal that absorbs rays
// fuzzed below its surface instead of reflecting them
func NewStrictMetalScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	return newMaterialsScene(material.NewStrictMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3), cameraOverrides)
}

func newMaterialsScene(metal material.Material, cameraOverrides []renderer.CameraConfig) *Scene {
	s := newScene(renderer.DefaultCameraConfig(), renderer.DefaultSamplingConfig(), cameraOverrides)

	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	glass := material.NewDielectric(1.5)

	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, ground)
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, center)
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, glass)
	// Negative radius flips the normals, turning the glass sphere into a thin shell
	s.AddSphere(core.NewVec3(-1, 0, -1), -0.45, glass)
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, metal)

	return s
}
