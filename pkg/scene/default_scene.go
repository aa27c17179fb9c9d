package scene

import (
	"github.com/df07/go-lane-raytracer/pkg/core"
)

// defaultFieldOfView is the horizontal field of view used when a scene leaves it unset
const defaultFieldOfView float32 = 45

// Material ids shared by the built-in scenes
const (
	skyboxMaterial = 0
)

// skyBlue is the skybox colour of the built-in scenes
var skyBlue = core.NewVec3(0.2, 0.3, 0.5)

// NewDefaultScene creates a single red sphere at the origin lit from behind
// the camera, in front of a blue skybox
func NewDefaultScene() *Scene {
	red := NewDiffuseMaterial(core.NewVec3(1, 0, 0))

	return &Scene{
		Camera: Camera{
			Position:    core.NewVec3(0, 0, -5),
			FieldOfView: defaultFieldOfView,
		},
		Exposure:         defaultExposure,
		SkyboxMaterialID: skyboxMaterial,
		Materials: []Material{
			NewDiffuseMaterial(skyBlue),
			red,
		},
		Spheres: []Sphere{
			NewSphere(core.NewVec3(0, 0, 0), 1, 1),
		},
		Lights: []Light{
			NewLight(core.NewVec3(0, 0, -100), core.NewVec3(1, 1, 1)),
		},
	}
}

// NewEmptyScene creates a scene with no geometry and no lights. Every ray
// sees the skybox.
func NewEmptyScene() *Scene {
	return &Scene{
		Camera: Camera{
			Position:    core.NewVec3(0, 0, -5),
			FieldOfView: defaultFieldOfView,
		},
		Exposure:         defaultExposure,
		SkyboxMaterialID: skyboxMaterial,
		Materials:        []Material{NewDiffuseMaterial(skyBlue)},
	}
}

// NewMirrorsScene creates reflective, refractive and patterned spheres
// standing on a checkerboard floor built from two triangles
func NewMirrorsScene() *Scene {
	floor := Material{
		Pattern:  Checkerboard,
		Diffuse:  core.NewVec3(0.9, 0.9, 0.9),
		Diffuse2: core.NewVec3(0.1, 0.1, 0.1),
		Size:     1,
		Specular: core.NewVec3(0.2, 0.2, 0.2),
		Power:    20,
		Density:  core.DefaultRefractiveIndex,
	}
	mirror := NewDiffuseMaterial(core.NewVec3(0.05, 0.05, 0.05))
	mirror.Specular = core.NewVec3(1, 1, 1)
	mirror.Surface = NewSurface(Reflective, 0.9)

	glass := NewDiffuseMaterial(core.NewVec3(0.02, 0.02, 0.02))
	glass.Specular = core.NewVec3(1, 1, 1)
	glass.Surface = NewSurface(Refractive, 0.9)
	glass.Density = 1.5

	wood := Material{
		Pattern:  Wood,
		Diffuse:  core.NewVec3(0.55, 0.35, 0.15),
		Diffuse2: core.NewVec3(0.35, 0.2, 0.08),
		Size:     0.25,
		Specular: core.NewVec3(0.3, 0.3, 0.3),
		Power:    40,
		Density:  core.DefaultRefractiveIndex,
	}
	circles := Material{
		Pattern:  Circles,
		Diffuse:  core.NewVec3(0.1, 0.6, 0.2),
		Diffuse2: core.NewVec3(0.9, 0.9, 0.2),
		Size:     0.2,
		Specular: core.NewVec3(0.5, 0.5, 0.5),
		Power:    60,
		Density:  core.DefaultRefractiveIndex,
	}

	const (
		floorID = iota + 1
		mirrorID
		glassID
		woodID
		circlesID
	)

	a := core.NewVec3(-20, -1, -10)
	b := core.NewVec3(20, -1, -10)
	c := core.NewVec3(20, -1, 30)
	d := core.NewVec3(-20, -1, 30)

	return &Scene{
		Camera: Camera{
			Position:    core.NewVec3(0, 1, -6),
			FieldOfView: defaultFieldOfView,
		},
		Exposure:         defaultExposure,
		SkyboxMaterialID: skyboxMaterial,
		Materials:        []Material{NewDiffuseMaterial(skyBlue), floor, mirror, glass, wood, circles},
		Spheres: []Sphere{
			NewSphere(core.NewVec3(-2.2, 0, 2), 1, mirrorID),
			NewSphere(core.NewVec3(0, 0, 0), 1, glassID),
			NewSphere(core.NewVec3(2.2, 0, 2), 1, woodID),
			NewSphere(core.NewVec3(0, 0.5, 5), 1.5, circlesID),
		},
		// Wound so the normal points up, towards the camera side
		Triangles: []Triangle{
			NewTriangle(a, d, c, floorID),
			NewTriangle(a, c, b, floorID),
		},
		Lights: []Light{
			NewLight(core.NewVec3(-10, 10, -10), core.NewVec3(0.8, 0.8, 0.8)),
			NewLight(core.NewVec3(10, 15, -5), core.NewVec3(0.5, 0.5, 0.6)),
		},
	}
}
