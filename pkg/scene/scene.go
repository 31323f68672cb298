package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"golang.org/x/image/colornames"
)

// DefaultWidth is the image width used when a scene does not set one
const DefaultWidth = 400

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	World          *geometry.HittableList // Objects in the scene
	SamplingConfig renderer.SamplingConfig
	Width          int       // Image width; height follows from the camera aspect ratio
	TopColor       core.Vec3 // Sky color straight up
	BottomColor    core.Vec3 // Sky color straight down
}

// DefaultSkyColors returns the blue-to-white sky gradient
func DefaultSkyColors() (top, bottom core.Vec3) {
	return core.NewVec3(0.5, 0.7, 1.0), ColorFromRGBA(colornames.White)
}

// newScene creates an empty scene with the default sky, applying camera overrides to base
func newScene(base renderer.CameraConfig, sampling renderer.SamplingConfig, cameraOverrides []renderer.CameraConfig) *Scene {
	cameraConfig := base
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(base, cameraOverrides[0])
	}

	top, bottom := DefaultSkyColors()
	return &Scene{
		Camera:         renderer.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		World:          geometry.NewHittableList(),
		SamplingConfig: sampling,
		Width:          DefaultWidth,
		TopColor:       top,
		BottomColor:    bottom,
	}
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) {
	s.World.Add(geometry.NewSphere(center, radius, mat))
}

// Height returns the image height implied by the width and camera aspect ratio
func (s *Scene) Height() int {
	return s.Camera.ImageHeight(s.Width)
}

// GetCamera implements renderer.Scene
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetBackgroundColors implements renderer.Scene
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.TopColor, s.BottomColor
}

// GetWorld implements renderer.Scene
func (s *Scene) GetWorld() geometry.Shape {
	return s.World
}
