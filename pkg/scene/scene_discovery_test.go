package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-empty", "Cornell Empty"},
		{"red_sphere", "Red Sphere"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestBuiltinScenesValidate(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, ok := Builtin(name)
			if !ok {
				t.Fatalf("Builtin(%q) not found", name)
			}
			if err := s.Preprocess(); err != nil {
				t.Fatalf("Preprocess() error: %v", err)
			}
			if s.Lanes == nil {
				t.Fatal("Preprocess() did not pack the scene")
			}
		})
	}
}

func TestBuiltinReturnsFreshScene(t *testing.T) {
	a, _ := Builtin("default")
	b, _ := Builtin("default")
	a.Spheres[0].Radius = 42
	if b.Spheres[0].Radius == 42 {
		t.Error("Builtin() returned shared scene data")
	}
}

func TestLoad(t *testing.T) {
	s, err := Load("cornell")
	if err != nil {
		t.Fatalf("Load(cornell) error: %v", err)
	}
	if len(s.Triangles) != 10 {
		t.Errorf("cornell triangles = %d, want 10", len(s.Triangles))
	}

	if _, err := Load("no-such-scene"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Load(no-such-scene) error = %v, want ErrUnknownScene", err)
	}

	path := filepath.Join(t.TempDir(), "tiny.json")
	if err := os.WriteFile(path, []byte(minimalSceneJSON), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	s, err = Load(path)
	if err != nil {
		t.Fatalf("Load(%s) error: %v", path, err)
	}
	if len(s.Spheres) != 1 {
		t.Errorf("spheres = %d, want 1", len(s.Spheres))
	}
}

func TestParseSceneMetadata(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name: "complete_metadata.json",
			content: `{"meta": {"name": "Cornell Box", "variant": "Empty Room",
				"description": "Cornell box with no objects", "group": "Cornell Variants"},
				"materials": [{"diffuse": [0, 0, 0]}]}`,
			expected: SceneInfo{
				Name:        "Cornell Box",
				DisplayName: "Cornell Box - Empty Room",
				Description: "Cornell box with no objects",
				Group:       "Cornell Variants",
				Type:        "file",
				Variant:     "Empty Room",
			},
		},
		{
			name:    "no_metadata.json",
			content: `{"materials": [{"diffuse": [0, 0, 0]}]}`,
			expected: SceneInfo{
				Name:        "No Metadata",
				DisplayName: "No Metadata",
				Group:       "Scene Files",
				Type:        "file",
			},
		},
	}

	dir := t.TempDir()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name)
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}

			result, err := ParseSceneMetadata(path)
			if err != nil {
				t.Fatalf("ParseSceneMetadata() error: %v", err)
			}

			tc.expected.ID = path
			tc.expected.FilePath = path
			if result != tc.expected {
				t.Errorf("ParseSceneMetadata() = %+v, want %+v", result, tc.expected)
			}
		})
	}
}

func TestListSceneDirSkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "good.json"), []byte(minimalSceneJSON), 0o644)
	os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o644)
	os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644)

	scenes, err := listSceneDir(dir)
	if err != nil {
		t.Fatalf("listSceneDir() error: %v", err)
	}
	if len(scenes) != 1 || scenes[0].Name != "Good" {
		t.Errorf("listSceneDir() = %+v, want only Good", scenes)
	}
}

func TestGroupScenes(t *testing.T) {
	response := groupScenes([]SceneInfo{
		{ID: "b.json", Name: "B", Group: "Zeta"},
		{ID: "a.json", Name: "A", Group: "Alpha"},
	})

	if len(response.Groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(response.Groups))
	}

	builtIn := response.Groups[0]
	if builtIn.Name != builtInGroup {
		t.Errorf("first group = %q, want %q", builtIn.Name, builtInGroup)
	}
	if len(builtIn.Scenes) != len(Names()) {
		t.Errorf("built-in scenes = %d, want %d", len(builtIn.Scenes), len(Names()))
	}
	for _, info := range builtIn.Scenes {
		if info.Type != "builtin" || info.DisplayName == "" {
			t.Errorf("built-in scene info incomplete: %+v", info)
		}
	}

	if response.Groups[1].Name != "Alpha" || response.Groups[2].Name != "Zeta" {
		t.Errorf("file groups not sorted: %q, %q", response.Groups[1].Name, response.Groups[2].Name)
	}
}

func TestExampleSceneFiles(t *testing.T) {
	scenes, err := listSceneDir(filepath.Join("..", "..", "scenes"))
	if err != nil {
		t.Fatalf("listSceneDir() error: %v", err)
	}
	if len(scenes) == 0 {
		t.Fatal("Expected example scene files")
	}

	for _, info := range scenes {
		t.Run(info.ID, func(t *testing.T) {
			if info.Group != "Example Scenes" {
				t.Errorf("Expected group Example Scenes, got %q", info.Group)
			}
			s, err := Load(info.FilePath)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if err := s.Preprocess(); err != nil {
				t.Errorf("Preprocess() error: %v", err)
			}
		})
	}
}
