package renderer

import (
	"image"
	"time"

	"github.com/df07/go-lane-raytracer/pkg/integrator"
)

// RenderStats contains statistics about one render
type RenderStats struct {
	Width, Height   int
	TotalPixels     int              // pixels written
	TotalSamples    int              // primary rays traced
	TotalBlocks     int              // blocks rendered
	BlocksPerWorker []int            // blocks claimed by each worker
	Trace           integrator.Trace // bounces and intersection work over all rays
	Duration        time.Duration    // wall clock time from worker start to join
}

// workerStats is accumulated privately by one worker and merged after the join
type workerStats struct {
	pixels  int
	samples int
	blocks  int
	trace   integrator.Trace
}

func (ws *workerStats) addPixel(samples int, trace integrator.Trace) {
	ws.pixels++
	ws.samples += samples
	ws.trace = ws.trace.Add(trace)
}

// mergeStats combines per-worker stats in worker order
func mergeStats(cfg Config, workers []workerStats, elapsed time.Duration) RenderStats {
	stats := RenderStats{
		Width:           cfg.Width,
		Height:          cfg.Height,
		BlocksPerWorker: make([]int, len(workers)),
		Duration:        elapsed,
	}
	for i, ws := range workers {
		stats.TotalPixels += ws.pixels
		stats.TotalSamples += ws.samples
		stats.TotalBlocks += ws.blocks
		stats.BlocksPerWorker[i] = ws.blocks
		stats.Trace = stats.Trace.Add(ws.trace)
	}
	return stats
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of img in [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	b := img.Bounds()
	if b.Empty() {
		return 0
	}

	var total float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			total += (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(bl)) / 0xffff
		}
	}
	return total / float64(b.Dx()*b.Dy())
}
