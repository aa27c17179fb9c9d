package scene

import (
	"github.com/chewxy/math32"
	"github.com/df07/go-lane-raytracer/pkg/core"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float32) core.Vec3 {
	hRad := h * math32.Pi / 180
	a := c * math32.Cos(hRad)
	b := c * math32.Sin(hRad)

	// OKLAB to LMS, cubed
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b
	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// sphereGridSize is the number of spheres along each side of the grid
const sphereGridSize = 10

// NewSphereGridScene creates a 10x10 grid of spheres on a triangle floor.
// Every third sphere is a mirror. The grid spans many lane groups, with a
// partially filled last group.
func NewSphereGridScene() *Scene {
	s := &Scene{
		Camera: Camera{
			Position:    core.NewVec3(0, 2.5, -12),
			FieldOfView: 50,
		},
		Exposure:         defaultExposure,
		SkyboxMaterialID: skyboxMaterial,
		Materials: []Material{
			NewDiffuseMaterial(core.NewVec3(0.5, 0.7, 1.0)),
			NewDiffuseMaterial(core.NewVec3(0.5, 0.5, 0.5)),
		},
		Lights: []Light{
			NewLight(core.NewVec3(20, 25, -20), core.NewVec3(0.9, 0.85, 0.8)),
			NewLight(core.NewVec3(-15, 10, -10), core.NewVec3(0.3, 0.3, 0.35)),
		},
	}
	const groundID = 1

	// Floor at y=0 under the grid
	s.Triangles = quad(
		core.NewVec3(-30, 0, -30), core.NewVec3(30, 0, -30),
		core.NewVec3(30, 0, 30), core.NewVec3(-30, 0, 30),
		core.NewVec3(0, 1, 0), groundID)

	const (
		spacing    float32 = 1
		radius     float32 = 0.35
		lightness  float32 = 0.65
		minChroma  float32 = 0.05
		maxChroma  float32 = 0.25
		gridCenter float32 = (sphereGridSize - 1) * spacing / 2
	)

	for i := 0; i < sphereGridSize; i++ {
		for j := 0; j < sphereGridSize; j++ {
			fi, fj := float32(i), float32(j)

			// Hue varies across X, chroma across Z
			hue := fi / (sphereGridSize - 1) * 360
			chroma := minChroma + fj/(sphereGridSize-1)*(maxChroma-minChroma)
			l := lightness + 0.1*math32.Sin((fi+fj)*0.5)

			m := NewDiffuseMaterial(oklchToRGB(l, chroma, hue))
			m.Specular = core.NewVec3(0.6, 0.6, 0.6)
			if (i+j)%3 == 0 {
				m.Surface = NewSurface(Reflective, 0.5)
			}
			s.Materials = append(s.Materials, m)

			center := core.NewVec3(fi*spacing-gridCenter, radius, fj*spacing-gridCenter)
			s.Spheres = append(s.Spheres, NewSphere(center, radius, len(s.Materials)-1))
		}
	}

	return s
}
