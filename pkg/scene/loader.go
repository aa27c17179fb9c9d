package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chewxy/math32"
	"github.com/df07/go-lane-raytracer/pkg/core"
)

// vec3Cfg is a vector written as a JSON array [x, y, z]
type vec3Cfg [3]float32

func (v vec3Cfg) vec() core.Vec3 { return core.NewVec3(v[0], v[1], v[2]) }

// CameraCfg is the JSON form of a camera. Rotation is in degrees.
type CameraCfg struct {
	Position    vec3Cfg `json:"position"`
	RotationDeg float32 `json:"rotationDeg,omitempty"`
	FieldOfView float32 `json:"fieldOfView"`
}

// MaterialCfg is the JSON form of a material. Reflection and refraction are
// separate fields for readability but at most one may be non-zero.
type MaterialCfg struct {
	Pattern    string  `json:"pattern,omitempty"` // gouraud (default), checkerboard, circles, wood
	Diffuse    vec3Cfg `json:"diffuse"`
	Diffuse2   vec3Cfg `json:"diffuse2,omitempty"`
	Offset     vec3Cfg `json:"offset,omitempty"`
	Size       float32 `json:"size,omitempty"`
	Specular   vec3Cfg `json:"specular,omitempty"`
	Power      float32 `json:"power,omitempty"`
	Reflection float32 `json:"reflection,omitempty"`
	Refraction float32 `json:"refraction,omitempty"`
	Density    float32 `json:"density,omitempty"`
}

type SphereCfg struct {
	Center   vec3Cfg `json:"center"`
	Radius   float32 `json:"radius"`
	Material int     `json:"material"`
}

type TriangleCfg struct {
	Vertices [3]vec3Cfg `json:"vertices"`
	Material int        `json:"material"`
}

type LightCfg struct {
	Position  vec3Cfg `json:"position"`
	Intensity vec3Cfg `json:"intensity"`
}

// MetaCfg is optional descriptive information shown by scene listings
type MetaCfg struct {
	Name        string `json:"name,omitempty"`
	Variant     string `json:"variant,omitempty"`
	Description string `json:"description,omitempty"`
	Group       string `json:"group,omitempty"`
}

// Config is the JSON scene file format
type Config struct {
	Meta      MetaCfg       `json:"meta,omitempty"`
	Camera    CameraCfg     `json:"camera"`
	Exposure  float32       `json:"exposure,omitempty"`
	Skybox    int           `json:"skybox"`
	Materials []MaterialCfg `json:"materials"`
	Spheres   []SphereCfg   `json:"spheres,omitempty"`
	Triangles []TriangleCfg `json:"triangles,omitempty"`
	Lights    []LightCfg    `json:"lights,omitempty"`
}

// defaultExposure is used when a scene file leaves exposure unset
const defaultExposure float32 = -1

// LoadFile reads and decodes a JSON scene file
func LoadFile(path string) (*Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode reads a JSON scene and returns a validated Scene.
// The scene is not preprocessed.
func Decode(r io.Reader) (*Scene, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	return cfg.Build()
}

// Build converts a Config into a validated Scene
func (cfg *Config) Build() (*Scene, error) {
	s := &Scene{
		Camera: Camera{
			Position:    cfg.Camera.Position.vec(),
			Rotation:    cfg.Camera.RotationDeg * math32.Pi / 180,
			FieldOfView: cfg.Camera.FieldOfView,
		},
		Exposure:         cfg.Exposure,
		SkyboxMaterialID: cfg.Skybox,
	}
	if s.Exposure == 0 {
		s.Exposure = defaultExposure
	}
	if s.Camera.FieldOfView == 0 {
		s.Camera.FieldOfView = defaultFieldOfView
	}

	for i, mc := range cfg.Materials {
		m, err := mc.build()
		if err != nil {
			return nil, fmt.Errorf("material %d: %w", i, err)
		}
		s.Materials = append(s.Materials, m)
	}
	for _, sc := range cfg.Spheres {
		s.Spheres = append(s.Spheres, NewSphere(sc.Center.vec(), sc.Radius, sc.Material))
	}
	for _, tc := range cfg.Triangles {
		s.Triangles = append(s.Triangles, NewTriangle(tc.Vertices[0].vec(), tc.Vertices[1].vec(), tc.Vertices[2].vec(), tc.Material))
	}
	for _, lc := range cfg.Lights {
		s.Lights = append(s.Lights, NewLight(lc.Position.vec(), lc.Intensity.vec()))
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (mc MaterialCfg) build() (Material, error) {
	pattern, err := parsePattern(mc.Pattern)
	if err != nil {
		return Material{}, err
	}
	surface, err := SurfaceFromAmounts(mc.Reflection, mc.Refraction)
	if err != nil {
		return Material{}, err
	}

	m := Material{
		Pattern:  pattern,
		Diffuse:  mc.Diffuse.vec(),
		Diffuse2: mc.Diffuse2.vec(),
		Offset:   mc.Offset.vec(),
		Size:     mc.Size,
		Specular: mc.Specular.vec(),
		Power:    mc.Power,
		Surface:  surface,
		Density:  mc.Density,
	}
	if m.Size == 0 {
		m.Size = 1
	}
	if m.Density == 0 {
		m.Density = core.DefaultRefractiveIndex
	}
	return m, nil
}

func parsePattern(name string) (Pattern, error) {
	switch strings.ToLower(name) {
	case "", "gouraud":
		return Gouraud, nil
	case "checkerboard":
		return Checkerboard, nil
	case "circles":
		return Circles, nil
	case "wood":
		return Wood, nil
	default:
		return Gouraud, fmt.Errorf("%w: unknown pattern %q", ErrInvalidMaterial, name)
	}
}
