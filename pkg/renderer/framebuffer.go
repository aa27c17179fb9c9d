package renderer

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/df07/go-lane-raytracer/pkg/core"
)

// Framebuffer holds rendered pixels packed as 0x00RRGGBB. It is allocated
// once for the largest supported image and reused by every render; an image
// of width w uses w as its row stride.
type Framebuffer struct {
	Pixels    []uint32
	maxWidth  int
	maxHeight int
}

// NewFramebuffer allocates a framebuffer for images up to maxWidth x maxHeight.
// Negative sizes are treated as 0, giving a framebuffer that fits nothing.
func NewFramebuffer(maxWidth, maxHeight int) *Framebuffer {
	maxWidth, maxHeight = max(maxWidth, 0), max(maxHeight, 0)
	return &Framebuffer{
		Pixels:    make([]uint32, maxWidth*maxHeight),
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
	}
}

// Fits reports whether a width x height image fits in the framebuffer
func (fb *Framebuffer) Fits(width, height int) bool {
	return width <= fb.maxWidth && height <= fb.maxHeight
}

// Image copies the first width x height pixels into an opaque RGBA image
func (fb *Framebuffer) Image(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := fb.Pixels[y*width+x]
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(p >> 16),
				G: uint8(p >> 8),
				B: uint8(p),
				A: 255,
			})
		}
	}
	return img
}

// PackPixel tone maps a linear colour with an exponential exposure curve
// and packs it as 0x00RRGGBB. exposure is negative; more negative is
// brighter.
func PackPixel(c core.Vec3, exposure float32) uint32 {
	return toneMap(c.X, exposure)<<16 | toneMap(c.Y, exposure)<<8 | toneMap(c.Z, exposure)
}

func toneMap(v, exposure float32) uint32 {
	mapped := min(1-math32.Exp(v*exposure), 1)
	if !(mapped > 0) {
		return 0
	}
	return uint32(mapped * 255)
}

// colourise halves every channel whose bit is clear in mask (R=4, G=2, B=1)
func colourise(c core.Vec3, mask int) core.Vec3 {
	if mask&4 == 0 {
		c.X *= 0.5
	}
	if mask&2 == 0 {
		c.Y *= 0.5
	}
	if mask&1 == 0 {
		c.Z *= 0.5
	}
	return c
}
