package shading

import (
	"github.com/chewxy/math32"
	"github.com/df07/go-lane-raytracer/pkg/core"
	"github.com/df07/go-lane-raytracer/pkg/scene"
)

// DiffuseAt returns the diffuse colour of m at world position p. Procedural
// patterns are evaluated at (p - Offset) / Size.
func DiffuseAt(m *scene.Material, p core.Vec3) core.Vec3 {
	if m.Pattern == scene.Gouraud {
		return m.Diffuse
	}

	local := p.Subtract(m.Offset).Multiply(1 / m.Size)
	switch m.Pattern {
	case scene.Checkerboard:
		return checkerboard(m, local)
	case scene.Circles:
		return circles(m, local)
	case scene.Wood:
		return wood(m, local)
	default:
		return m.Diffuse
	}
}

// checkerboard alternates colours between unit cubes
func checkerboard(m *scene.Material, p core.Vec3) core.Vec3 {
	cell := int(math32.Floor(p.X)) + int(math32.Floor(p.Y)) + int(math32.Floor(p.Z))
	if cell&1 == 0 {
		return m.Diffuse
	}
	return m.Diffuse2
}

// circles alternates colours between concentric unit-thick shells
func circles(m *scene.Material, p core.Vec3) core.Vec3 {
	if int(math32.Floor(p.Length()))&1 == 0 {
		return m.Diffuse
	}
	return m.Diffuse2
}

// wood blends the two colours along rings around the Y axis, with the ring
// radius wobbling along Y
func wood(m *scene.Material, p core.Vec3) core.Vec3 {
	r := math32.Sqrt(p.X*p.X+p.Z*p.Z) + 0.15*math32.Sin(p.Y*3)
	grain := 0.5 + 0.5*math32.Cos(r*2*math32.Pi)
	return m.Diffuse.Multiply(grain).Add(m.Diffuse2.Multiply(1 - grain))
}
