package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownScene is returned by Load for names that are neither built in
// nor a scene file
var ErrUnknownScene = errors.New("unknown scene")

// builtin describes one built-in scene constructor
type builtin struct {
	info SceneInfo
	new  func() *Scene
}

var builtins = []builtin{
	{SceneInfo{ID: "default", Name: "Red Sphere", Description: "Single red sphere in front of a blue skybox"}, NewDefaultScene},
	{SceneInfo{ID: "mirrors", Name: "Mirrors", Description: "Reflective, refractive and patterned spheres on a checkerboard floor"}, NewMirrorsScene},
	{SceneInfo{ID: "cornell", Name: "Cornell Box", Description: "Triangle Cornell box with mirror and glass spheres"}, NewCornellScene},
	{SceneInfo{ID: "spheregrid", Name: "Sphere Grid", Description: "10x10 grid of colored spheres"}, NewSphereGridScene},
	{SceneInfo{ID: "empty", Name: "Empty", Description: "No geometry or lights, only the skybox"}, NewEmptyScene},
}

// builtInGroup is the group name of built-in scenes in listings
const builtInGroup = "Built-in Scenes"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, accepted by Load
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to JSON file (file type only)
	Variant     string `json:"variant"`     // Variant name (optional)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// Names returns the ids of the built-in scenes in listing order
func Names() []string {
	names := make([]string, len(builtins))
	for i, b := range builtins {
		names[i] = b.info.ID
	}
	return names
}

// Builtin creates a fresh copy of the named built-in scene
func Builtin(name string) (*Scene, bool) {
	for _, b := range builtins {
		if b.info.ID == name {
			return b.new(), true
		}
	}
	return nil, false
}

// Load returns a built-in scene by name, or loads a JSON scene file when
// nameOrPath ends in .json. The scene is validated but not preprocessed.
func Load(nameOrPath string) (*Scene, error) {
	if strings.EqualFold(filepath.Ext(nameOrPath), ".json") {
		return LoadFile(nameOrPath)
	}
	if s, ok := Builtin(nameOrPath); ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q (built-in scenes: %s)", ErrUnknownScene, nameOrPath, strings.Join(Names(), ", "))
}

// ListSceneFiles scans the scenes directory and returns discovered JSON scenes
func ListSceneFiles() ([]SceneInfo, error) {
	// Try different possible paths for scenes directory
	possiblePaths := []string{"scenes", "../scenes"}
	var scenesDir string

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			scenesDir = path
			break
		}
	}

	if scenesDir == "" {
		return []SceneInfo{}, nil
	}
	return listSceneDir(scenesDir)
}

func listSceneDir(dir string) ([]SceneInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		sceneInfo, err := ParseSceneMetadata(filePath)
		if err != nil {
			// Log warning but continue processing other files
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneMetadata reads the "meta" object of a JSON scene file, falling
// back to values derived from the file name
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:       filePath,
		Name:     titleCase(nameWithoutExt),
		Group:    "Scene Files",
		Type:     "file",
		FilePath: filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return sceneInfo, err
	}
	var header struct {
		Meta MetaCfg `json:"meta"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return sceneInfo, err
	}

	if header.Meta.Name != "" {
		sceneInfo.Name = header.Meta.Name
	}
	if header.Meta.Group != "" {
		sceneInfo.Group = header.Meta.Group
	}
	sceneInfo.Variant = header.Meta.Variant
	sceneInfo.Description = header.Meta.Description
	sceneInfo.DisplayName = displayName(sceneInfo.Name, sceneInfo.Variant)

	return sceneInfo, nil
}

func displayName(name, variant string) string {
	if variant != "" {
		return fmt.Sprintf("%s - %s", name, variant)
	}
	return name
}

// ListAllScenes returns both built-in and file scenes, grouped by category
func ListAllScenes() (ScenesResponse, error) {
	fileScenes, err := ListSceneFiles()
	if err != nil {
		return ScenesResponse{}, fmt.Errorf("failed to list scene files: %w", err)
	}
	return groupScenes(fileScenes), nil
}

func groupScenes(fileScenes []SceneInfo) ScenesResponse {
	var response ScenesResponse

	builtInScenes := make([]SceneInfo, len(builtins))
	for i, b := range builtins {
		info := b.info
		info.DisplayName = displayName(info.Name, info.Variant)
		info.Group = builtInGroup
		info.Type = "builtin"
		builtInScenes[i] = info
	}
	response.Groups = append(response.Groups, SceneGroup{Name: builtInGroup, Scenes: builtInScenes})

	groupMap := make(map[string][]SceneInfo)
	for _, s := range fileScenes {
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}

	// Other groups follow alphabetically
	var groupNames []string
	for groupName := range groupMap {
		groupNames = append(groupNames, groupName)
	}
	sort.Strings(groupNames)

	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
