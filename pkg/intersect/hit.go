// Package intersect finds where rays meet scene geometry. Spheres and
// triangles are tested lanes.Width at a time against the lane-packed scene.
package intersect

import (
	"github.com/df07/go-lane-raytracer/pkg/core"
	"github.com/df07/go-lane-raytracer/pkg/lanes"
)

// NoObject is the Hit index used when nothing has been hit
const NoObject = -1

// Hit is the best hit found so far within one primitive family
type Hit struct {
	T     float32 // distance along the ray
	Index int     // object index within its family, or NoObject
}

// NewHit returns a Hit that any real intersection closer than maxT improves on
func NewHit(maxT float32) Hit {
	return Hit{T: maxT, Index: NoObject}
}

// Counts records how much work a nearest-hit query did. Candidates are
// lanes whose geometry met the ray's line; Improved are lanes that lowered
// their best distance.
type Counts struct {
	Candidates int
	Improved   int
}

// Add returns the sum of two Counts
func (c Counts) Add(o Counts) Counts {
	return Counts{Candidates: c.Candidates + o.Candidates, Improved: c.Improved + o.Improved}
}

// laneBest tracks the per-lane best distance and object index while a
// family is scanned, plus the work counters
type laneBest struct {
	t     lanes.Float
	index lanes.Index

	candidates lanes.Index
	improved   lanes.Index
}

func newLaneBest(best Hit) laneBest {
	return laneBest{
		t:     lanes.Broadcast(best.T),
		index: lanes.BroadcastIndex(int32(best.Index)),
	}
}

// update takes t and index in every lane where qualified is set. Only real
// (non-padding) lanes are counted.
func (b *laneBest) update(qualified, candidate lanes.Mask, t lanes.Float, index lanes.Index, real lanes.Mask) {
	b.t = lanes.Select(qualified, t, b.t)
	b.index = lanes.SelectIndex(qualified, index, b.index)
	b.candidates = b.candidates.Add(maskToIndex(candidate.And(real)))
	b.improved = b.improved.Add(maskToIndex(qualified.And(real)))
}

// reduce folds the lanes into best, reporting whether it was improved
func (b *laneBest) reduce(best *Hit) (bool, Counts) {
	var counts Counts
	for i := range b.candidates {
		counts.Candidates += int(b.candidates[i])
		counts.Improved += int(b.improved[i])
	}

	t, index := lanes.MinIndex(b.t, b.index)
	if !(t < best.T) {
		return false, counts
	}
	best.T, best.Index = t, int(index)
	return true, counts
}

func maskToIndex(m lanes.Mask) lanes.Index {
	var x lanes.Index
	for i, set := range m {
		if set {
			x[i] = 1
		}
	}
	return x
}

// qualifies returns the lanes where epsilon < t < best
func qualifies(t, best lanes.Float) lanes.Mask {
	return t.Greater(lanes.Broadcast(core.Epsilon)).And(t.Less(best))
}
