package scene

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	Name        string // Name accepted by Create
	Description string // Optional description
	Type        string // "builtin" or "file"
	FilePath    string // Path to the scene file (file type only)
}

type builtInScene struct {
	create      func(cameraOverrides ...renderer.CameraConfig) *Scene
	description string
}

var builtInScenes = map[string]builtInScene{
	"default": {
		create:      NewDefaultScene,
		description: "Diffuse sphere on a large ground sphere",
	},
	"materials": {
		create:      NewMaterialsScene,
		description: "Hollow glass, diffuse and fuzzed metal spheres",
	},
	"metal-strict": {
		create:      NewStrictMetalScene,
		description: "Materials scene with metal that absorbs rays fuzzed below its surface",
	},
}

// scenesDirCandidates are searched in order for scene files
var scenesDirCandidates = []string{"scenes", "../scenes"}

// ListBuiltIn returns the names of the built-in scenes in sorted order
func ListBuiltIn() []string {
	names := make([]string, 0, len(builtInScenes))
	for name := range builtInScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create builds the scene with the given name. Names ending in .json are loaded as scene
// files, other names are looked up among the built-in scenes and then in the scenes directory.
func Create(name string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	if strings.HasSuffix(name, ".json") {
		return loadWithOverrides(name, cameraOverrides)
	}

	if builtIn, ok := builtInScenes[name]; ok {
		return builtIn.create(cameraOverrides...), nil
	}

	for _, dir := range scenesDirCandidates {
		path := filepath.Join(dir, name+".json")
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to check scene file %s: %w", path, err)
		}
		return loadWithOverrides(path, cameraOverrides)
	}

	return nil, fmt.Errorf("unknown scene %q (built-in scenes: %s)", name, strings.Join(ListBuiltIn(), ", "))
}

// loadWithOverrides loads a scene file and applies camera overrides on top of it
func loadWithOverrides(path string, cameraOverrides []renderer.CameraConfig) (*Scene, error) {
	s, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if len(cameraOverrides) > 0 {
		s.CameraConfig = renderer.MergeCameraConfig(s.CameraConfig, cameraOverrides[0])
		s.Camera = renderer.NewCamera(s.CameraConfig)
	}
	return s, nil
}

// ListScenes returns the built-in scenes followed by the scene files found in the scenes directory
func ListScenes() ([]SceneInfo, error) {
	var scenes []SceneInfo
	for _, name := range ListBuiltIn() {
		scenes = append(scenes, SceneInfo{
			Name:        name,
			Description: builtInScenes[name].description,
			Type:        "builtin",
		})
	}

	var scenesDir string
	for _, path := range scenesDirCandidates {
		if _, err := os.Stat(path); err == nil {
			scenesDir = path
			break
		}
	}
	if scenesDir == "" {
		return scenes, nil
	}

	files, err := filepath.Glob(filepath.Join(scenesDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}
	sort.Strings(files)

	for _, filePath := range files {
		info, err := ParseSceneFileMetadata(filePath)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, info)
	}

	return scenes, nil
}

// ParseSceneFileMetadata reads the description from the leading comment lines of a scene file,
// e.g. "// Description: three spheres"
func ParseSceneFileMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	info := SceneInfo{
		Name:     strings.TrimSuffix(filename, filepath.Ext(filename)),
		Type:     "file",
		FilePath: filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return info, fmt.Errorf("failed to open scene file %s: %w", filePath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Stop parsing at first non-comment line
		if !strings.HasPrefix(line, "//") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "//"))
		if strings.HasPrefix(content, "Description:") {
			info.Description = strings.TrimSpace(strings.TrimPrefix(content, "Description:"))
		}
	}

	return info, scanner.Err()
}
