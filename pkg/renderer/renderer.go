package renderer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/df07/go-lane-raytracer/pkg/core"
	"github.com/df07/go-lane-raytracer/pkg/integrator"
	"github.com/df07/go-lane-raytracer/pkg/scene"
)

var (
	ErrInvalidSize      = errors.New("image size must be positive")
	ErrTooLarge         = errors.New("image larger than framebuffer")
	ErrInvalidAALevel   = errors.New("anti-aliasing level must be positive")
	ErrInvalidThreads   = errors.New("thread count must be positive")
	ErrInvalidBlockSize = errors.New("block size must be positive")
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Config contains the settings for one render
type Config struct {
	Width       int  // image width in pixels
	Height      int  // image height in pixels
	AALevel     int  // samples per pixel along each axis
	Threads     int  // number of worker goroutines
	BlockSize   int  // side of the square blocks handed to workers
	ColourDebug bool // tint each block so the block layout is visible
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:     1024,
		Height:    768,
		AALevel:   1,
		Threads:   8,
		BlockSize: 8,
	}
}

// Validate checks the configuration on its own, without a framebuffer
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if c.AALevel <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAALevel, c.AALevel)
	}
	if c.Threads <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidThreads, c.Threads)
	}
	if c.BlockSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBlockSize, c.BlockSize)
	}
	return nil
}

// Renderer renders a scene into a framebuffer using a fixed pool of
// goroutines that claim blocks from a shared counter
type Renderer struct {
	scene       *scene.Scene
	integrator  integrator.Integrator
	framebuffer *Framebuffer
	logger      core.Logger
}

// NewRenderer creates a renderer. The scene must already be preprocessed.
func NewRenderer(s *scene.Scene, integ integrator.Integrator, fb *Framebuffer, logger core.Logger) *Renderer {
	if logger == nil {
		logger = core.DiscardLogger{}
	}
	return &Renderer{
		scene:       s,
		integrator:  integ,
		framebuffer: fb,
		logger:      logger,
	}
}

// Framebuffer returns the framebuffer the renderer writes to
func (r *Renderer) Framebuffer() *Framebuffer {
	return r.framebuffer
}

// Render fills the first cfg.Width x cfg.Height pixels of the framebuffer.
// Configuration errors are returned before any worker starts. Every pixel
// is written exactly once, and the result does not depend on cfg.Threads.
func (r *Renderer) Render(cfg Config) (RenderStats, error) {
	if err := cfg.Validate(); err != nil {
		return RenderStats{}, fmt.Errorf("invalid render config: %w", err)
	}
	if !r.framebuffer.Fits(cfg.Width, cfg.Height) {
		return RenderStats{}, fmt.Errorf("invalid render config: %w: %dx%d exceeds %dx%d",
			ErrTooLarge, cfg.Width, cfg.Height, r.framebuffer.maxWidth, r.framebuffer.maxHeight)
	}

	start := time.Now()
	grid := NewBlockGrid(cfg.Width, cfg.Height, cfg.BlockSize)
	job := &renderJob{
		cfg:         cfg,
		grid:        grid,
		camera:      NewCamera(r.scene.Camera, cfg.Width, cfg.Height),
		integrator:  r.integrator,
		exposure:    r.scene.Exposure,
		framebuffer: r.framebuffer,
		scheduler:   newScheduler(grid.Total()),
	}

	workers := make([]workerStats, cfg.Threads)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(ws *workerStats) {
			defer wg.Done()
			job.run(ws)
		}(&workers[i])
	}
	wg.Wait()

	stats := mergeStats(cfg, workers, time.Since(start))
	r.logger.Printf("Rendered %dx%d: %d blocks of %d on %d threads, %d samples, %d bounces in %v\n",
		cfg.Width, cfg.Height, stats.TotalBlocks, cfg.BlockSize, cfg.Threads,
		stats.TotalSamples, stats.Trace.Bounces, stats.Duration)
	return stats, nil
}
