package core

const (
	// Epsilon is the minimum hit distance. Hits closer than this are ignored
	// so a ray leaving a surface does not immediately re-hit it.
	Epsilon float32 = 0.01

	// MaxRayDistance is the starting "best" distance for nearest-hit searches
	MaxRayDistance float32 = 2000000.0

	// MaxRaysCast bounds the number of bounces followed per primary ray
	MaxRaysCast = 10

	// DefaultRefractiveIndex is the refractive index of the space between objects
	DefaultRefractiveIndex float32 = 1.0
)
