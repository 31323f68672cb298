package scene

import (
	"encoding/json"
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/sauerbraten/jsonfile"
	"golang.org/x/image/colornames"
)

// Color is a scene-file color: either an [r, g, b] triple in [0,1] or an SVG color name
type Color core.Vec3

// UnmarshalJSON accepts "name" or [r, g, b]
func (c *Color) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		rgba, ok := colornames.Map[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("unknown color name %q", name)
		}
		*c = Color(ColorFromRGBA(rgba))
		return nil
	}

	var components []float64
	if err := json.Unmarshal(data, &components); err != nil {
		return fmt.Errorf("color must be a name or [r, g, b]: %w", err)
	}
	if len(components) != 3 {
		return fmt.Errorf("color must have 3 components, got %d", len(components))
	}
	for _, v := range components {
		if v < 0 || v > 1 {
			return fmt.Errorf("color component %g outside [0, 1]", v)
		}
	}
	*c = Color(core.NewVec3(components[0], components[1], components[2]))
	return nil
}

// Vec3 returns the color as a linear RGB vector
func (c Color) Vec3() core.Vec3 {
	return core.Vec3(c)
}

// ColorFromRGBA converts an 8-bit color to a linear RGB vector in [0,1]
func ColorFromRGBA(c color.RGBA) core.Vec3 {
	return core.NewVec3(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
}

// sceneFile mirrors the JSON layout of a scene file
type sceneFile struct {
	Image struct {
		Width *int `json:"width"`
	} `json:"image"`
	Camera struct {
		AspectRatio    float64     `json:"aspect_ratio"`
		ViewportHeight float64     `json:"viewport_height"`
		FocalLength    float64     `json:"focal_length"`
		Origin         *[3]float64 `json:"origin"`
	} `json:"camera"`
	Sampling struct {
		SamplesPerPixel *int `json:"samples_per_pixel"`
		MaxDepth        *int `json:"max_depth"`
	} `json:"sampling"`
	Background struct {
		Top    *Color `json:"top"`
		Bottom *Color `json:"bottom"`
	} `json:"background"`
	Materials map[string]materialSpec `json:"materials"`
	Spheres   []sphereSpec            `json:"spheres"`
}

type materialSpec struct {
	Type               string   `json:"type"`
	Albedo             *Color   `json:"albedo"`
	Fuzz               float64  `json:"fuzz"`
	IR                 *float64 `json:"ir"`
	AbsorbBelowSurface bool     `json:"absorb_below_surface"`
}

type sphereSpec struct {
	Center   [3]float64 `json:"center"`
	Radius   float64    `json:"radius"`
	Material string     `json:"material"`
}

// LoadFile reads a JSON scene file. Lines starting with // are comments.
func LoadFile(path string) (*Scene, error) {
	var file sceneFile
	if err := jsonfile.ParseFile(path, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scene file %s: %w", path, err)
	}

	s, err := file.build()
	if err != nil {
		return nil, fmt.Errorf("invalid scene file %s: %w", path, err)
	}
	return s, nil
}

// build validates the parsed file and assembles the scene
func (f *sceneFile) build() (*Scene, error) {
	cameraOverride := renderer.CameraConfig{
		AspectRatio:    f.Camera.AspectRatio,
		ViewportHeight: f.Camera.ViewportHeight,
		FocalLength:    f.Camera.FocalLength,
	}
	if f.Camera.Origin != nil {
		cameraOverride.Origin = vecFromArray(*f.Camera.Origin)
	}
	if cameraOverride.AspectRatio < 0 || cameraOverride.ViewportHeight < 0 || cameraOverride.FocalLength < 0 {
		return nil, fmt.Errorf("camera dimensions must be positive")
	}

	s := newScene(renderer.DefaultCameraConfig(), renderer.DefaultSamplingConfig(), []renderer.CameraConfig{cameraOverride})

	if f.Image.Width != nil {
		if *f.Image.Width <= 0 {
			return nil, fmt.Errorf("image width must be positive, got %d", *f.Image.Width)
		}
		s.Width = *f.Image.Width
	}
	if f.Sampling.SamplesPerPixel != nil {
		if *f.Sampling.SamplesPerPixel <= 0 {
			return nil, fmt.Errorf("samples_per_pixel must be positive, got %d", *f.Sampling.SamplesPerPixel)
		}
		s.SamplingConfig.SamplesPerPixel = *f.Sampling.SamplesPerPixel
	}
	if f.Sampling.MaxDepth != nil {
		if *f.Sampling.MaxDepth < 0 {
			return nil, fmt.Errorf("max_depth must not be negative, got %d", *f.Sampling.MaxDepth)
		}
		s.SamplingConfig.MaxDepth = *f.Sampling.MaxDepth
	}

	if f.Background.Top != nil {
		s.TopColor = f.Background.Top.Vec3()
	}
	if f.Background.Bottom != nil {
		s.BottomColor = f.Background.Bottom.Vec3()
	}

	materials, err := f.buildMaterials()
	if err != nil {
		return nil, err
	}

	for i, sphere := range f.Spheres {
		if sphere.Radius == 0 {
			return nil, fmt.Errorf("sphere %d: radius must not be zero", i)
		}
		mat, ok := materials[sphere.Material]
		if !ok {
			return nil, fmt.Errorf("sphere %d: unknown material %q", i, sphere.Material)
		}
		s.AddSphere(vecFromArray(sphere.Center), sphere.Radius, mat)
	}

	return s, nil
}

// buildMaterials creates one shared instance per named material
func (f *sceneFile) buildMaterials() (map[string]material.Material, error) {
	names := make([]string, 0, len(f.Materials))
	for name := range f.Materials {
		names = append(names, name)
	}
	sort.Strings(names)

	materials := make(map[string]material.Material, len(names))
	for _, name := range names {
		mat, err := f.Materials[name].build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}
	return materials, nil
}

func (m materialSpec) build() (material.Material, error) {
	switch m.Type {
	case "lambertian":
		if m.Albedo == nil {
			return nil, fmt.Errorf("lambertian requires an albedo")
		}
		return material.NewLambertian(m.Albedo.Vec3()), nil
	case "metal":
		if m.Albedo == nil {
			return nil, fmt.Errorf("metal requires an albedo")
		}
		if m.AbsorbBelowSurface {
			return material.NewStrictMetal(m.Albedo.Vec3(), m.Fuzz), nil
		}
		return material.NewMetal(m.Albedo.Vec3(), m.Fuzz), nil
	case "dielectric":
		if m.IR == nil || *m.IR <= 0 {
			return nil, fmt.Errorf("dielectric requires a positive ir")
		}
		return material.NewDielectric(*m.IR), nil
	default:
		return nil, fmt.Errorf("unknown material type %q", m.Type)
	}
}

func vecFromArray(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
