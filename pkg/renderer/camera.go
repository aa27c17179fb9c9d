package renderer

import (
	"github.com/chewxy/math32"
	"github.com/df07/go-lane-raytracer/pkg/core"
	"github.com/df07/go-lane-raytracer/pkg/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera generates primary rays for an image of a fixed size. The image
// plane sits one unit in front of the camera along +Z before rotation, and
// adjacent pixels are step apart on it.
type Camera struct {
	origin   core.Vec3
	rotation mgl32.Mat3
	step     float32
	halfW    float32
	halfH    float32
}

// NewCamera creates a camera for a width x height image
func NewCamera(c scene.Camera, width, height int) *Camera {
	halfFov := c.FieldOfView * 0.5 * math32.Pi / 180
	return &Camera{
		origin:   c.Position,
		rotation: mgl32.Rotate3DY(-c.Rotation),
		step:     1 / (0.5 * float32(width) / math32.Tan(halfFov)),
		halfW:    float32(width / 2),
		halfH:    float32(height / 2),
	}
}

// GetRay returns the ray through image position (x, y), measured in pixels
// from the top-left corner with y increasing downwards
func (c *Camera) GetRay(x, y float32) core.Ray {
	dir := mgl32.Vec3{
		(x - c.halfW) * c.step,
		(c.halfH - y) * c.step,
		1,
	}
	d := c.rotation.Mul3x1(dir)
	return core.NewRay(c.origin, core.NewVec3(d[0], d[1], d[2]).Normalize())
}
