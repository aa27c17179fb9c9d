package intersect

import (
	"github.com/df07/go-lane-raytracer/pkg/core"
	"github.com/df07/go-lane-raytracer/pkg/lanes"
	"github.com/df07/go-lane-raytracer/pkg/scene"
)

// triangleHits runs Möller–Trumbore on every lane of g. It returns the ray
// parameter and the lanes where the ray passes through the triangle
// interior; t is not yet range checked.
func triangleHits(g *scene.TriangleGroup, origin, dir lanes.Vec3) (t lanes.Float, inside lanes.Mask) {
	zero := lanes.Broadcast(0)
	one := lanes.Broadcast(1)

	h := dir.Cross(g.Edge2)
	det := g.Edge1.Dot(h)

	// Rays parallel to the plane, and degenerate triangles, have det ~ 0
	valid := det.Abs().Less(lanes.Broadcast(core.Epsilon)).Not()

	invDet := one.Div(det)
	s := origin.Sub(g.V0)
	u := invDet.Mul(s.Dot(h))
	q := s.Cross(g.Edge1)
	v := invDet.Mul(q.Dot(dir))
	t = invDet.Mul(g.Edge2.Dot(q))

	inside = valid.
		And(zero.LessEq(u)).And(u.LessEq(one)).
		And(zero.LessEq(v)).And(u.Add(v).LessEq(one))
	return t, inside
}

// NearestTriangle finds the closest triangle hit with Epsilon < t < best.T.
// Ties go to the lowest triangle index. best is updated only when a closer
// hit is found.
func NearestTriangle(l *scene.Lanes, ray core.Ray, best *Hit) (bool, Counts) {
	origin := lanes.BroadcastVec3(ray.Origin)
	dir := lanes.BroadcastVec3(ray.Direction)
	lb := newLaneBest(*best)
	count := lanes.BroadcastIndex(int32(l.NumTriangles))

	for gi := range l.Triangles {
		t, inside := triangleHits(&l.Triangles[gi], origin, dir)
		q := qualifies(t, lb.t).And(inside)

		index := lanes.Iota(int32(gi * lanes.Width))
		lb.update(q, inside, t, index, index.Less(count))
	}

	return lb.reduce(best)
}

// AnyTriangle reports whether any triangle is hit with Epsilon < t < maxT
func AnyTriangle(l *scene.Lanes, ray core.Ray, maxT float32) bool {
	origin := lanes.BroadcastVec3(ray.Origin)
	dir := lanes.BroadcastVec3(ray.Direction)
	limit := lanes.Broadcast(maxT)

	for gi := range l.Triangles {
		t, inside := triangleHits(&l.Triangles[gi], origin, dir)
		if qualifies(t, limit).And(inside).Any() {
			return true
		}
	}
	return false
}
