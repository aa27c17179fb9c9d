// Package shading computes the local illumination at a surface hit.
package shading

import (
	"github.com/chewxy/math32"
	"github.com/df07/go-lane-raytracer/pkg/core"
	"github.com/df07/go-lane-raytracer/pkg/intersect"
	"github.com/df07/go-lane-raytracer/pkg/lanes"
	"github.com/df07/go-lane-raytracer/pkg/scene"
)

// Shader computes the colour contributed directly by the lights at a hit.
// Implementations must be safe for concurrent use.
type Shader interface {
	ApplyLighting(ray core.Ray, hit *intersect.Intersection) core.Vec3
}

// Phong shades with Lambert diffuse and Blinn-Phong specular terms from
// every point light that is not shadowed
type Phong struct {
	scene *scene.Scene
}

// NewPhong creates a Phong shader for a preprocessed scene
func NewPhong(s *scene.Scene) *Phong {
	return &Phong{scene: s}
}

// ApplyLighting implements Shader. hit must have been through
// intersect.Respond.
func (p *Phong) ApplyLighting(ray core.Ray, hit *intersect.Intersection) core.Vec3 {
	l := p.scene.Lanes
	m := hit.Material
	diffuse := DiffuseAt(m, hit.Position)

	pos := lanes.BroadcastVec3(hit.Position)
	normal := lanes.BroadcastVec3(hit.Normal)
	zero := lanes.Broadcast(0)

	var output core.Vec3
	for gi := range l.Lights {
		g := &l.Lights[gi]

		dist := g.Position.Sub(pos)
		proj := dist.Dot(normal)

		// Lights behind the surface and padding lanes contribute nothing
		lit := l.LightMask(gi).And(zero.Less(proj))
		if !lit.Any() {
			continue
		}
		length := dist.Dot(dist).Sqrt()

		for lane := range lit {
			if !lit[lane] {
				continue
			}
			invLen := 1 / length[lane]
			lightDir := dist.Lane(lane).Multiply(invLen)
			if intersect.Occluded(l, core.NewRay(hit.Position, lightDir), length[lane]) {
				continue
			}
			intensity := g.Intensity.Lane(lane)
			lightProj := proj[lane] * invLen

			// Lambert
			output = output.Add(diffuse.MultiplyVec(intensity).Multiply(lightProj))

			// Blinn-Phong
			blinnDir := lightDir.Subtract(ray.Direction)
			if blinnLen := blinnDir.Length(); blinnLen != 0 {
				blinn := max(lightProj-hit.ViewProjection, 0) / blinnLen
				output = output.Add(m.Specular.MultiplyVec(intensity).Multiply(math32.Pow(blinn, m.Power)))
			}
		}
	}
	return output
}
