package lanes

import "github.com/df07/go-lane-raytracer/pkg/core"

// Vec3 is a lane-packed 3D vector: lane i of X, Y and Z forms one vector
type Vec3 struct {
	X, Y, Z Float
}

// BroadcastVec3 returns a Vec3 with every lane set to v
func BroadcastVec3(v core.Vec3) Vec3 {
	return Vec3{X: Broadcast(v.X), Y: Broadcast(v.Y), Z: Broadcast(v.Z)}
}

// Sub returns the per-lane difference a - b
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{X: a.X.Sub(b.X), Y: a.Y.Sub(b.Y), Z: a.Z.Sub(b.Z)}
}

// Dot returns the per-lane dot product
func (a Vec3) Dot(b Vec3) Float {
	return a.X.Mul(b.X).Add(a.Y.Mul(b.Y)).Add(a.Z.Mul(b.Z))
}

// Cross returns the per-lane cross product
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		X: a.Y.Mul(b.Z).Sub(a.Z.Mul(b.Y)),
		Y: a.Z.Mul(b.X).Sub(a.X.Mul(b.Z)),
		Z: a.X.Mul(b.Y).Sub(a.Y.Mul(b.X)),
	}
}

// Lane extracts lane i as a scalar vector
func (a Vec3) Lane(i int) core.Vec3 {
	return core.NewVec3(a.X[i], a.Y[i], a.Z[i])
}

// SetLane stores v into lane i
func (a *Vec3) SetLane(i int, v core.Vec3) {
	a.X[i], a.Y[i], a.Z[i] = v.X, v.Y, v.Z
}
