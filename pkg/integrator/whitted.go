package integrator

import (
	"github.com/chewxy/math32"
	"github.com/df07/go-lane-raytracer/pkg/core"
	"github.com/df07/go-lane-raytracer/pkg/intersect"
	"github.com/df07/go-lane-raytracer/pkg/scene"
	"github.com/df07/go-lane-raytracer/pkg/shading"
)

// Whitted follows a ray through perfect mirror reflections and refractions,
// adding local lighting at every outside hit. However the path ends (a miss,
// an opaque surface or the depth limit) the skybox colour is added, scaled
// by the remaining coefficient.
type Whitted struct {
	scene    *scene.Scene
	shader   shading.Shader
	maxDepth int
}

// Option configures a Whitted integrator
type Option func(*Whitted)

// WithMaxDepth overrides the number of surface interactions followed per
// ray. Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(w *Whitted) {
		if depth > 0 {
			w.maxDepth = depth
		}
	}
}

// NewWhitted creates an integrator for a preprocessed scene
func NewWhitted(s *scene.Scene, shader shading.Shader, opts ...Option) *Whitted {
	w := &Whitted{
		scene:    s,
		shader:   shader,
		maxDepth: core.MaxRaysCast,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// MaxDepth returns the bounce limit
func (w *Whitted) MaxDepth() int {
	return w.maxDepth
}

// TraceRay implements Integrator
func (w *Whitted) TraceRay(ray core.Ray) (core.Vec3, Trace) {
	var output core.Vec3
	var trace Trace
	coef := float32(1)
	index := core.DefaultRefractiveIndex

bounces:
	for depth := 0; depth < w.maxDepth; depth++ {
		hit, counts, ok := intersect.Nearest(w.scene, ray)
		trace.Counts = trace.Counts.Add(counts)
		if !ok {
			break
		}
		trace.Bounces++

		intersect.Respond(w.scene, ray, &hit)

		if !hit.Inside {
			output = output.Add(w.shader.ApplyLighting(ray, &hit).Multiply(coef))
		}

		surface := hit.Material.Surface
		switch surface.Kind {
		case scene.Reflective:
			ray = reflect(ray, &hit)
		case scene.Refractive:
			ray, index = refract(ray, &hit, index)
		default:
			// Opaque surfaces end the path but still take the skybox term
			break bounces
		}
		coef *= surface.Amount
	}

	if coef > 0 {
		output = output.Add(w.scene.Skybox().Diffuse.Multiply(coef))
	}
	return output, trace
}

// reflect mirrors the ray about the hit normal
func reflect(ray core.Ray, hit *intersect.Intersection) core.Ray {
	n := hit.Normal
	dir := ray.Direction.Subtract(n.Multiply(2 * ray.Direction.Dot(n)))
	return core.NewRay(hit.Position, dir)
}

// refract bends the ray through the surface using Snell's law. current is
// the refractive index the ray is travelling in; the index on the far side
// is returned with the new ray. Beyond the critical angle the ray continues
// along the surface tangent instead of reflecting.
func refract(ray core.Ray, hit *intersect.Intersection, current float32) (core.Ray, float32) {
	next := hit.Material.Density
	if hit.Inside {
		next = core.DefaultRefractiveIndex
	}
	ratio := current / next

	cosI := math32.Abs(hit.ViewProjection)
	var cosT float32
	if cosI >= 1 {
		cosT = 1
	} else {
		sinT := ratio * math32.Sqrt(1-cosI*cosI)
		if sinT*sinT < 1 {
			cosT = math32.Sqrt(1 - sinT*sinT)
		}
	}

	n := hit.Normal
	dir := ray.Direction.Add(n.Multiply(cosI)).Multiply(ratio).Subtract(n.Multiply(cosT))
	return core.NewRay(hit.Position, dir.Normalize()), next
}
