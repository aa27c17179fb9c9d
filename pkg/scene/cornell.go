package scene

import (
	"github.com/df07/go-lane-raytracer/pkg/core"
)

// quad returns the two triangles of the planar quad a-b-c-d, wound so that
// their normal points along facing
func quad(a, b, c, d, facing core.Vec3, materialID int) []Triangle {
	if b.Subtract(a).Cross(c.Subtract(a)).Dot(facing) < 0 {
		b, d = d, b
	}
	return []Triangle{
		NewTriangle(a, b, c, materialID),
		NewTriangle(a, c, d, materialID),
	}
}

// NewCornellScene creates a Cornell box made of triangles with a mirror
// sphere and a glass sphere inside, lit by a point light below the ceiling
func NewCornellScene() *Scene {
	white := NewDiffuseMaterial(core.NewVec3(0.73, 0.73, 0.73))
	red := NewDiffuseMaterial(core.NewVec3(0.65, 0.05, 0.05))
	green := NewDiffuseMaterial(core.NewVec3(0.12, 0.45, 0.15))

	mirror := NewDiffuseMaterial(core.NewVec3(0, 0, 0))
	mirror.Specular = core.NewVec3(1, 1, 1)
	mirror.Surface = NewSurface(Reflective, 0.85)

	glass := NewDiffuseMaterial(core.NewVec3(0, 0, 0))
	glass.Specular = core.NewVec3(1, 1, 1)
	glass.Power = 120
	glass.Surface = NewSurface(Refractive, 0.9)
	glass.Density = 1.5

	const (
		whiteID = iota + 1
		redID
		greenID
		mirrorID
		glassID
	)

	// Box corners: x and y in [-3, 3], z in [-2, 6], open towards the camera
	const lo, hi, near, far = -3, 3, -2, 6
	v := func(x, y, z float32) core.Vec3 { return core.NewVec3(x, y, z) }

	var walls []Triangle
	// floor
	walls = append(walls, quad(v(lo, lo, near), v(hi, lo, near), v(hi, lo, far), v(lo, lo, far), v(0, 1, 0), whiteID)...)
	// ceiling
	walls = append(walls, quad(v(lo, hi, near), v(hi, hi, near), v(hi, hi, far), v(lo, hi, far), v(0, -1, 0), whiteID)...)
	// back
	walls = append(walls, quad(v(lo, lo, far), v(hi, lo, far), v(hi, hi, far), v(lo, hi, far), v(0, 0, -1), whiteID)...)
	// left
	walls = append(walls, quad(v(lo, lo, near), v(lo, lo, far), v(lo, hi, far), v(lo, hi, near), v(1, 0, 0), redID)...)
	// right
	walls = append(walls, quad(v(hi, lo, near), v(hi, lo, far), v(hi, hi, far), v(hi, hi, near), v(-1, 0, 0), greenID)...)

	return &Scene{
		Camera: Camera{
			Position:    core.NewVec3(0, 0, -9),
			FieldOfView: 40,
		},
		Exposure:         defaultExposure,
		SkyboxMaterialID: skyboxMaterial,
		Materials: []Material{
			NewDiffuseMaterial(core.NewVec3(0, 0, 0)),
			white, red, green, mirror, glass,
		},
		Spheres: []Sphere{
			NewSphere(core.NewVec3(-1.3, -2, 3.5), 1, mirrorID),
			NewSphere(core.NewVec3(1.3, -2, 1.5), 1, glassID),
		},
		Triangles: walls,
		Lights: []Light{
			NewLight(core.NewVec3(0, 2.5, 2), core.NewVec3(1, 1, 1)),
		},
	}
}
