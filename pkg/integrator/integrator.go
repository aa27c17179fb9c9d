package integrator

import (
	"github.com/df07/go-lane-raytracer/pkg/core"
	"github.com/df07/go-lane-raytracer/pkg/intersect"
)

// Trace records what happened while following one primary ray
type Trace struct {
	Bounces int              // loop iterations that hit a surface
	Counts  intersect.Counts // intersection work summed over all bounces
}

// Add returns the sum of two traces
func (t Trace) Add(o Trace) Trace {
	return Trace{Bounces: t.Bounces + o.Bounces, Counts: t.Counts.Add(o.Counts)}
}

// Integrator defines the interface for light transport algorithms.
// Implementations must be safe for concurrent use.
type Integrator interface {
	// TraceRay returns the colour seen along ray
	TraceRay(ray core.Ray) (core.Vec3, Trace)
}
