package intersect

import (
	"fmt"

	"github.com/df07/go-lane-raytracer/pkg/core"
	"github.com/df07/go-lane-raytracer/pkg/scene"
)

// Kind identifies which primitive family an intersection belongs to
type Kind int

const (
	None Kind = iota
	Sphere
	Triangle
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Sphere:
		return "sphere"
	case Triangle:
		return "triangle"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Intersection describes where a ray met the scene. Nearest fills Kind,
// Index, T and Position; Respond fills the rest.
type Intersection struct {
	Kind     Kind
	Index    int
	T        float32
	Position core.Vec3

	// Normal faces against the incoming ray after Respond
	Normal core.Vec3
	// ViewProjection is ray direction · surface normal, taken before the
	// normal is flipped for hits from inside an object
	ViewProjection float32
	Inside         bool
	Material       *scene.Material
}

// Nearest returns the closest intersection of ray with any sphere or
// triangle in the preprocessed scene. A triangle must be strictly closer
// than the best sphere to be chosen.
func Nearest(s *scene.Scene, ray core.Ray) (Intersection, Counts, bool) {
	l := s.Lanes

	sphere := NewHit(core.MaxRayDistance)
	sphereHit, sphereCounts := NearestSphere(l, ray, &sphere)

	triangle := NewHit(sphere.T)
	triangleHit, triangleCounts := NearestTriangle(l, ray, &triangle)

	counts := sphereCounts.Add(triangleCounts)

	var hit Intersection
	switch {
	case triangleHit:
		hit = Intersection{Kind: Triangle, Index: triangle.Index, T: triangle.T}
	case sphereHit:
		hit = Intersection{Kind: Sphere, Index: sphere.Index, T: sphere.T}
	default:
		return Intersection{Kind: None, Index: NoObject}, counts, false
	}
	hit.Position = ray.At(hit.T)
	return hit, counts, true
}

// Respond computes the surface normal, material and facing of a hit found
// by Nearest. When the ray hits the back of the surface Inside is set and
// the normal is flipped to face the ray.
func Respond(s *scene.Scene, ray core.Ray, hit *Intersection) {
	var materialID int
	switch hit.Kind {
	case Sphere:
		sp := &s.Spheres[hit.Index]
		hit.Normal = hit.Position.Subtract(sp.Center).Normalize()
		materialID = sp.MaterialID
	case Triangle:
		tr := &s.Triangles[hit.Index]
		hit.Normal = tr.Normal
		materialID = tr.MaterialID
	default:
		return
	}
	hit.Material = &s.Materials[materialID]

	hit.ViewProjection = ray.Direction.Dot(hit.Normal)
	hit.Inside = hit.ViewProjection > 0
	if hit.Inside {
		hit.Normal = hit.Normal.Negate()
	}
}

// Occluded reports whether anything lies on ray with Epsilon < t < maxT.
// Used for shadow rays, where any hit is enough.
func Occluded(l *scene.Lanes, ray core.Ray, maxT float32) bool {
	return AnySphere(l, ray, maxT) || AnyTriangle(l, ray, maxT)
}
