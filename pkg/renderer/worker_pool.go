package renderer

import (
	"github.com/df07/go-lane-raytracer/pkg/integrator"
)

// renderJob is the shared, read-only state of one render plus the block
// scheduler. Workers write only to the pixels of blocks they claimed.
type renderJob struct {
	cfg         Config
	grid        BlockGrid
	camera      *Camera
	integrator  integrator.Integrator
	exposure    float32
	framebuffer *Framebuffer
	scheduler   *scheduler
}

// run is the main worker loop: claim a block, render it, repeat until no
// blocks are left
func (j *renderJob) run(ws *workerStats) {
	for {
		index, ok := j.scheduler.claim()
		if !ok {
			return
		}
		j.renderBlock(index, ws)
		ws.blocks++
	}
}
