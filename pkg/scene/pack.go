package scene

import (
	"github.com/chewxy/math32"
	"github.com/df07/go-lane-raytracer/pkg/core"
	"github.com/df07/go-lane-raytracer/pkg/lanes"
)

// SphereGroup holds lanes.Width spheres in structure-of-arrays form
type SphereGroup struct {
	Center   lanes.Vec3
	Radius   lanes.Float
	Material lanes.Index
}

// TriangleGroup holds lanes.Width triangles. Edges are stored instead of the
// second and third vertex since intersection only needs v0 and the edges.
type TriangleGroup struct {
	V0       lanes.Vec3
	Edge1    lanes.Vec3 // v1 - v0
	Edge2    lanes.Vec3 // v2 - v0
	Normal   lanes.Vec3
	Material lanes.Index
}

// LightGroup holds lanes.Width lights
type LightGroup struct {
	Position  lanes.Vec3
	Intensity lanes.Vec3
}

// Lanes is the lane-packed form of a scene's geometry and lights.
//
// Each family has ceil(count/lanes.Width) groups. The last group is padded by
// repeating the final real element, so padding lanes can only ever produce
// the same distance as that element and lose the index tie-break to it.
// A family with no elements gets one dummy group that never reports a hit.
type Lanes struct {
	Spheres   []SphereGroup
	Triangles []TriangleGroup
	Lights    []LightGroup

	NumSpheres   int
	NumTriangles int
	NumLights    int
}

// groupCount returns the number of lane groups for n elements (at least one)
func groupCount(n int) int {
	if n == 0 {
		return 1
	}
	return (n-1)/lanes.Width + 1
}

// Pack builds the lane-packed form of s. It does not modify s.
func Pack(s *Scene) *Lanes {
	return &Lanes{
		Spheres:      packSpheres(s.Spheres),
		Triangles:    packTriangles(s.Triangles),
		Lights:       packLights(s.Lights),
		NumSpheres:   len(s.Spheres),
		NumTriangles: len(s.Triangles),
		NumLights:    len(s.Lights),
	}
}

// dummySphere has NaN data, which fails every lane comparison
var dummySphere = Sphere{
	Center:     core.NewVec3(math32.NaN(), math32.NaN(), math32.NaN()),
	Radius:     math32.NaN(),
	MaterialID: 0,
}

func packSpheres(spheres []Sphere) []SphereGroup {
	groups := make([]SphereGroup, groupCount(len(spheres)))
	for i := 0; i < len(groups)*lanes.Width; i++ {
		src := dummySphere
		if len(spheres) > 0 {
			src = spheres[min(i, len(spheres)-1)]
		}
		g, lane := &groups[i/lanes.Width], i%lanes.Width
		g.Center.SetLane(lane, src.Center)
		g.Radius[lane] = src.Radius
		g.Material[lane] = int32(src.MaterialID)
	}
	return groups
}

func packTriangles(triangles []Triangle) []TriangleGroup {
	groups := make([]TriangleGroup, groupCount(len(triangles)))
	for i := 0; i < len(groups)*lanes.Width; i++ {
		// The zero triangle is degenerate: its determinant is 0 for every ray.
		var src Triangle
		if len(triangles) > 0 {
			src = triangles[min(i, len(triangles)-1)]
		}
		g, lane := &groups[i/lanes.Width], i%lanes.Width
		g.V0.SetLane(lane, src.V0)
		g.Edge1.SetLane(lane, src.V1.Subtract(src.V0))
		g.Edge2.SetLane(lane, src.V2.Subtract(src.V0))
		g.Normal.SetLane(lane, src.Normal)
		g.Material[lane] = int32(src.MaterialID)
	}
	return groups
}

func packLights(lights []Light) []LightGroup {
	groups := make([]LightGroup, groupCount(len(lights)))
	for i := 0; i < len(groups)*lanes.Width; i++ {
		var src Light
		if len(lights) > 0 {
			src = lights[min(i, len(lights)-1)]
		}
		g, lane := &groups[i/lanes.Width], i%lanes.Width
		g.Position.SetLane(lane, src.Position)
		g.Intensity.SetLane(lane, src.Intensity)
	}
	return groups
}

// LightMask returns the lanes of light group g that hold real lights.
// Padding lights duplicate the last light and must not be counted twice.
func (l *Lanes) LightMask(g int) lanes.Mask {
	return lanes.Iota(int32(g * lanes.Width)).Less(lanes.BroadcastIndex(int32(l.NumLights)))
}
