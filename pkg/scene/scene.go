package scene

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/df07/go-lane-raytracer/pkg/core"
)

var (
	ErrMaterialRange    = errors.New("material id out of range")
	ErrSkyboxRange      = errors.New("skybox material id out of range")
	ErrInvalidSphere    = errors.New("invalid sphere")
	ErrInvalidTriangle  = errors.New("invalid triangle")
	ErrInvalidMaterial  = errors.New("invalid material")
	ErrAmbiguousSurface = errors.New("material is both reflective and refractive")
	ErrInvalidCamera    = errors.New("invalid camera")
)

// Camera describes the viewpoint. Rays leave Position looking down +Z,
// rotated about the Y axis by Rotation radians.
type Camera struct {
	Position    core.Vec3
	Rotation    float32 // radians about the Y axis
	FieldOfView float32 // horizontal field of view in degrees
}

// SurfaceKind selects what happens to a ray after it hits a material
type SurfaceKind int

const (
	Opaque     SurfaceKind = iota // the path ends at the surface
	Reflective                    // the path continues as a mirror reflection
	Refractive                    // the path continues through the surface
)

func (k SurfaceKind) String() string {
	switch k {
	case Opaque:
		return "opaque"
	case Reflective:
		return "reflective"
	case Refractive:
		return "refractive"
	default:
		return fmt.Sprintf("SurfaceKind(%d)", int(k))
	}
}

// Surface is the tagged secondary-ray behaviour of a material. Amount is the
// fraction of energy carried by the continued path.
type Surface struct {
	Kind   SurfaceKind
	Amount float32
}

// NewSurface builds a Surface. Non-positive amounts collapse to Opaque.
func NewSurface(kind SurfaceKind, amount float32) Surface {
	if kind == Opaque || amount <= 0 {
		return Surface{Kind: Opaque}
	}
	return Surface{Kind: kind, Amount: amount}
}

// SurfaceFromAmounts converts separate reflection and refraction amounts
// into a Surface. Both being positive is ambiguous and rejected.
func SurfaceFromAmounts(reflection, refraction float32) (Surface, error) {
	switch {
	case reflection > 0 && refraction > 0:
		return Surface{}, fmt.Errorf("%w: reflection=%g refraction=%g", ErrAmbiguousSurface, reflection, refraction)
	case reflection > 0:
		return NewSurface(Reflective, reflection), nil
	case refraction > 0:
		return NewSurface(Refractive, refraction), nil
	default:
		return Surface{Kind: Opaque}, nil
	}
}

// Pattern selects how the diffuse colour varies over a surface
type Pattern int

const (
	Gouraud Pattern = iota
	Checkerboard
	Circles
	Wood
)

func (p Pattern) String() string {
	switch p {
	case Gouraud:
		return "gouraud"
	case Checkerboard:
		return "checkerboard"
	case Circles:
		return "circles"
	case Wood:
		return "wood"
	default:
		return fmt.Sprintf("Pattern(%d)", int(p))
	}
}

// Material describes how a surface is shaded
type Material struct {
	Pattern  Pattern
	Diffuse  core.Vec3 // diffuse colour
	Diffuse2 core.Vec3 // second diffuse colour, patterned materials only
	Offset   core.Vec3 // pattern offset
	Size     float32   // pattern scale

	Specular core.Vec3 // colour of specular highlights
	Power    float32   // specular exponent

	Surface Surface
	Density float32 // refractive index
}

// NewDiffuseMaterial creates a plain opaque material
func NewDiffuseMaterial(diffuse core.Vec3) Material {
	return Material{
		Pattern:  Gouraud,
		Diffuse:  diffuse,
		Specular: core.NewVec3(0, 0, 0),
		Power:    60,
		Size:     1,
		Density:  core.DefaultRefractiveIndex,
	}
}

// Sphere object
type Sphere struct {
	Center     core.Vec3
	Radius     float32
	MaterialID int
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float32, materialID int) Sphere {
	return Sphere{Center: center, Radius: radius, MaterialID: materialID}
}

// Triangle object with a cached unit normal
type Triangle struct {
	V0, V1, V2 core.Vec3
	Normal     core.Vec3
	MaterialID int
}

// NewTriangle creates a triangle, computing its normal from the winding order
func NewTriangle(v0, v1, v2 core.Vec3, materialID int) Triangle {
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)
	return Triangle{
		V0:         v0,
		V1:         v1,
		V2:         v2,
		Normal:     edge1.Cross(edge2).Normalize(),
		MaterialID: materialID,
	}
}

// Light is a point light
type Light struct {
	Position  core.Vec3
	Intensity core.Vec3
}

// NewLight creates a new point light
func NewLight(position, intensity core.Vec3) Light {
	return Light{Position: position, Intensity: intensity}
}

// Scene contains all the elements needed for rendering. The slices are the
// authoritative data; Lanes is derived from them by Preprocess and must not
// be modified afterwards.
type Scene struct {
	Camera           Camera
	Exposure         float32 // negative; more negative is brighter
	SkyboxMaterialID int

	Materials []Material
	Spheres   []Sphere
	Triangles []Triangle
	Lights    []Light

	Lanes *Lanes // lane-packed copy of the geometry, built by Preprocess
}

// Skybox returns the material used for rays that leave the scene
func (s *Scene) Skybox() *Material {
	return &s.Materials[s.SkyboxMaterialID]
}

// Validate checks ids and numeric ranges
func (s *Scene) Validate() error {
	if len(s.Materials) == 0 {
		return fmt.Errorf("%w: scene has no materials", ErrSkyboxRange)
	}
	if s.SkyboxMaterialID < 0 || s.SkyboxMaterialID >= len(s.Materials) {
		return fmt.Errorf("%w: %d (have %d materials)", ErrSkyboxRange, s.SkyboxMaterialID, len(s.Materials))
	}

	if fov := s.Camera.FieldOfView; !(fov > 0 && fov < 180) {
		return fmt.Errorf("%w: field of view must be in (0, 180) degrees, got %g", ErrInvalidCamera, fov)
	}
	if !s.Camera.Position.IsFinite() || math32.IsNaN(s.Camera.Rotation) || math32.IsInf(s.Camera.Rotation, 0) {
		return fmt.Errorf("%w: position=%v rotation=%g", ErrInvalidCamera, s.Camera.Position, s.Camera.Rotation)
	}

	for i, m := range s.Materials {
		if m.Surface.Kind == Refractive && !(m.Density > 0) {
			return fmt.Errorf("%w %d: refractive material needs a positive density, got %g", ErrInvalidMaterial, i, m.Density)
		}
		if m.Pattern != Gouraud && !(m.Size > 0) {
			return fmt.Errorf("%w %d: %s pattern needs a positive size, got %g", ErrInvalidMaterial, i, m.Pattern, m.Size)
		}
		if m.Power < 0 {
			return fmt.Errorf("%w %d: negative specular power %g", ErrInvalidMaterial, i, m.Power)
		}
	}

	for i, sp := range s.Spheres {
		if !(sp.Radius > 0) || math32.IsInf(sp.Radius, 0) || !sp.Center.IsFinite() {
			return fmt.Errorf("%w %d: center=%v radius=%g", ErrInvalidSphere, i, sp.Center, sp.Radius)
		}
		if err := s.checkMaterial("sphere", i, sp.MaterialID); err != nil {
			return err
		}
	}

	for i, tr := range s.Triangles {
		if !tr.V0.IsFinite() || !tr.V1.IsFinite() || !tr.V2.IsFinite() {
			return fmt.Errorf("%w %d: non-finite vertex", ErrInvalidTriangle, i)
		}
		if err := s.checkMaterial("triangle", i, tr.MaterialID); err != nil {
			return err
		}
	}

	return nil
}

func (s *Scene) checkMaterial(kind string, index, id int) error {
	if id < 0 || id >= len(s.Materials) {
		return fmt.Errorf("%w: %s %d uses material %d (have %d)", ErrMaterialRange, kind, index, id, len(s.Materials))
	}
	return nil
}

// Preprocess validates the scene and builds the lane-packed geometry. An
// unset field of view takes the default first. Calling it again after
// success is a no-op.
func (s *Scene) Preprocess() error {
	if s.Lanes != nil {
		return nil
	}
	if s.Camera.FieldOfView == 0 {
		s.Camera.FieldOfView = defaultFieldOfView
	}
	if err := s.Validate(); err != nil {
		return err
	}
	s.Lanes = Pack(s)
	return nil
}
