package renderer

import (
	"github.com/df07/go-lane-raytracer/pkg/core"
	"github.com/df07/go-lane-raytracer/pkg/integrator"
)

// colourMaskAll keeps every channel unchanged
const colourMaskAll = 7

// renderBlock renders every pixel of block index into the framebuffer
func (j *renderJob) renderBlock(index int, ws *workerStats) {
	bounds := j.grid.Bounds(index)
	aa := j.cfg.AALevel
	sampleStep := 1 / float32(aa)
	sampleRatio := 1 / float32(aa*aa)

	// The tint depends on the block, not the worker, so output is the same
	// for any thread count
	mask := colourMaskAll
	if j.cfg.ColourDebug {
		mask = index % 8
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var output core.Vec3
			var trace integrator.Trace

			// Stratified samples at the centres of an aa x aa sub-grid
			for sx := 0; sx < aa; sx++ {
				for sy := 0; sy < aa; sy++ {
					ray := j.camera.GetRay(
						float32(x)+(float32(sx)+0.5)*sampleStep,
						float32(y)+(float32(sy)+0.5)*sampleStep,
					)
					colour, t := j.integrator.TraceRay(ray)
					output = output.Add(colour.Multiply(sampleRatio))
					trace = trace.Add(t)
				}
			}

			output = colourise(output, mask)
			j.framebuffer.Pixels[y*j.cfg.Width+x] = PackPixel(output, j.exposure)
			ws.addPixel(aa*aa, trace)
		}
	}
}
