package intersect

import (
	"github.com/df07/go-lane-raytracer/pkg/core"
	"github.com/df07/go-lane-raytracer/pkg/lanes"
	"github.com/df07/go-lane-raytracer/pkg/scene"
)

// sphereRoots returns both ray parameters where the ray meets each sphere of
// g, and the lanes where the discriminant is non-negative. The ray direction
// is unit length, so the quadratic's leading coefficient is 1.
func sphereRoots(g *scene.SphereGroup, origin, dir lanes.Vec3) (t0, t1 lanes.Float, hit lanes.Mask) {
	dist := g.Center.Sub(origin)
	b := dir.Dot(dist)
	d := b.Mul(b).Sub(dist.Dot(dist)).Add(g.Radius.Mul(g.Radius))

	// NaN discriminants from dummy lanes fail the comparison
	hit = lanes.Broadcast(0).LessEq(d)

	root := d.Sqrt()
	return b.Sub(root), b.Add(root), hit
}

// NearestSphere finds the closest sphere hit with Epsilon < t < best.T.
// When several spheres are hit at the same distance the lowest index wins.
// best is updated only when a closer hit is found.
func NearestSphere(l *scene.Lanes, ray core.Ray, best *Hit) (bool, Counts) {
	origin := lanes.BroadcastVec3(ray.Origin)
	dir := lanes.BroadcastVec3(ray.Direction)
	lb := newLaneBest(*best)
	count := lanes.BroadcastIndex(int32(l.NumSpheres))

	for gi := range l.Spheres {
		t0, t1, hit := sphereRoots(&l.Spheres[gi], origin, dir)

		// The near root takes priority over the far one
		q1 := qualifies(t1, lb.t).And(hit)
		q0 := qualifies(t0, lb.t).And(hit)
		t := lanes.Select(q0, t0, t1)

		index := lanes.Iota(int32(gi * lanes.Width))
		lb.update(q0.Or(q1), hit, t, index, index.Less(count))
	}

	return lb.reduce(best)
}

// AnySphere reports whether any sphere is hit with Epsilon < t < maxT.
// It stops at the first lane group containing a hit.
func AnySphere(l *scene.Lanes, ray core.Ray, maxT float32) bool {
	origin := lanes.BroadcastVec3(ray.Origin)
	dir := lanes.BroadcastVec3(ray.Direction)
	limit := lanes.Broadcast(maxT)

	for gi := range l.Spheres {
		t0, t1, hit := sphereRoots(&l.Spheres[gi], origin, dir)
		if qualifies(t0, limit).Or(qualifies(t1, limit)).And(hit).Any() {
			return true
		}
	}
	return false
}
