package renderer

import (
	"errors"
	"math"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/chewxy/math32"
	"github.com/df07/go-lane-raytracer/pkg/core"
	"github.com/df07/go-lane-raytracer/pkg/integrator"
	"github.com/df07/go-lane-raytracer/pkg/scene"
	"github.com/df07/go-lane-raytracer/pkg/shading"
)

// MockIntegrator returns a fixed colour. It is safe for concurrent use.
type MockIntegrator struct {
	returnColor core.Vec3
	callCount   atomic.Int64
}

func (m *MockIntegrator) TraceRay(ray core.Ray) (core.Vec3, integrator.Trace) {
	m.callCount.Add(1)
	return m.returnColor, integrator.Trace{Bounces: 1}
}

func loadScene(t *testing.T, name string) *scene.Scene {
	t.Helper()
	s, ok := scene.Builtin(name)
	if !ok {
		t.Fatalf("no built-in scene %q", name)
	}
	if err := s.Preprocess(); err != nil {
		t.Fatalf("Preprocess() error: %v", err)
	}
	return s
}

func newWhittedRenderer(s *scene.Scene, fb *Framebuffer) *Renderer {
	w := integrator.NewWhitted(s, shading.NewPhong(s))
	return NewRenderer(s, w, fb, core.DiscardLogger{})
}

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"default", func(c *Config) {}, nil},
		{"zero width", func(c *Config) { c.Width = 0 }, ErrInvalidSize},
		{"negative height", func(c *Config) { c.Height = -1 }, ErrInvalidSize},
		{"zero aa", func(c *Config) { c.AALevel = 0 }, ErrInvalidAALevel},
		{"zero threads", func(c *Config) { c.Threads = 0 }, ErrInvalidThreads},
		{"negative threads", func(c *Config) { c.Threads = -4 }, ErrInvalidThreads},
		{"zero block size", func(c *Config) { c.BlockSize = 0 }, ErrInvalidBlockSize},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == nil && err != nil {
				t.Errorf("Validate() error = %v", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestRenderRejectsBadConfigBeforeWorking(t *testing.T) {
	s := loadScene(t, "default")
	mock := &MockIntegrator{}
	r := NewRenderer(s, mock, NewFramebuffer(32, 32), nil)

	testCases := []struct {
		cfg     Config
		wantErr error
	}{
		{Config{Width: 16, Height: 16, AALevel: 1, Threads: 2, BlockSize: 0}, ErrInvalidBlockSize},
		{Config{Width: 16, Height: 16, AALevel: 1, Threads: 0, BlockSize: 4}, ErrInvalidThreads},
		{Config{Width: 64, Height: 16, AALevel: 1, Threads: 2, BlockSize: 4}, ErrTooLarge},
		{Config{Width: 16, Height: 33, AALevel: 1, Threads: 2, BlockSize: 4}, ErrTooLarge},
	}
	for _, tc := range testCases {
		if _, err := r.Render(tc.cfg); !errors.Is(err, tc.wantErr) {
			t.Errorf("Render(%+v) error = %v, want %v", tc.cfg, err, tc.wantErr)
		}
	}
	if n := mock.callCount.Load(); n != 0 {
		t.Errorf("integrator called %d times for invalid configs", n)
	}
}

func TestRenderWritesEveryPixelOnce(t *testing.T) {
	const sentinel = 0xffffffff
	s := loadScene(t, "default")
	mock := &MockIntegrator{returnColor: core.NewVec3(0.5, 0.25, 1)}
	fb := NewFramebuffer(64, 64)
	r := NewRenderer(s, mock, fb, nil)

	for i := range fb.Pixels {
		fb.Pixels[i] = sentinel
	}

	cfg := Config{Width: 37, Height: 23, AALevel: 2, Threads: 5, BlockSize: 6}
	stats, err := r.Render(cfg)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	want := PackPixel(mock.returnColor, s.Exposure)
	n := cfg.Width * cfg.Height
	for i, p := range fb.Pixels[:n] {
		if p != want {
			t.Fatalf("pixel %d = %#x, want %#x", i, p, want)
		}
	}
	for i, p := range fb.Pixels[n:] {
		if p != sentinel {
			t.Fatalf("pixel %d outside the image was written", n+i)
		}
	}

	if stats.TotalPixels != n || stats.TotalSamples != n*4 {
		t.Errorf("stats = %d pixels, %d samples, want %d and %d", stats.TotalPixels, stats.TotalSamples, n, n*4)
	}
	if got := mock.callCount.Load(); got != int64(n*4) {
		t.Errorf("integrator calls = %d, want %d", got, n*4)
	}
	if stats.Trace.Bounces != n*4 {
		t.Errorf("bounces = %d, want %d", stats.Trace.Bounces, n*4)
	}

	grid := NewBlockGrid(cfg.Width, cfg.Height, cfg.BlockSize)
	sum := 0
	for _, b := range stats.BlocksPerWorker {
		sum += b
	}
	if len(stats.BlocksPerWorker) != cfg.Threads || sum != grid.Total() || stats.TotalBlocks != grid.Total() {
		t.Errorf("blocks per worker = %v (total %d), want %d workers and %d blocks", stats.BlocksPerWorker, stats.TotalBlocks, cfg.Threads, grid.Total())
	}
}

func TestRenderIdenticalForAnyThreadCount(t *testing.T) {
	s := loadScene(t, "mirrors")

	var reference []uint32
	for _, threads := range []int{1, 2, 8, 17} {
		fb := NewFramebuffer(48, 40)
		r := newWhittedRenderer(s, fb)
		cfg := Config{Width: 45, Height: 37, AALevel: 2, Threads: threads, BlockSize: 7}
		if _, err := r.Render(cfg); err != nil {
			t.Fatalf("Render(threads=%d) error: %v", threads, err)
		}

		if reference == nil {
			reference = slices.Clone(fb.Pixels)
			continue
		}
		if !slices.Equal(reference, fb.Pixels) {
			t.Errorf("framebuffer with %d threads differs from 1 thread", threads)
		}
	}
}

func TestRenderRedSphere(t *testing.T) {
	s := loadScene(t, "default")
	fb := NewFramebuffer(64, 64)
	r := newWhittedRenderer(s, fb)

	cfg := Config{Width: 64, Height: 64, AALevel: 1, Threads: 4, BlockSize: 8}
	if _, err := r.Render(cfg); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	img := fb.Image(cfg.Width, cfg.Height)

	sky := PackPixel(s.Skybox().Diffuse, s.Exposure)
	skyR, skyG, skyB := uint8(sky>>16), uint8(sky>>8), uint8(sky)

	// The lit red sphere plus the skybox term of the opaque exit
	centre := img.RGBAAt(32, 32)
	if centre.R < skyR+100 || centre.G != skyG || centre.B != skyB {
		t.Errorf("centre pixel = %v, want red over skybox (%d, %d, %d)", centre, skyR, skyG, skyB)
	}

	for _, corner := range [][2]int{{0, 0}, {63, 0}, {0, 63}, {63, 63}} {
		if p := fb.Pixels[corner[1]*cfg.Width+corner[0]]; p != sky {
			t.Errorf("corner %v = %#x, want skybox %#x", corner, p, sky)
		}
	}
}

func TestRenderColourDebugTintsByBlock(t *testing.T) {
	s := loadScene(t, "empty")
	mock := &MockIntegrator{returnColor: core.NewVec3(1, 1, 1)}
	fb := NewFramebuffer(64, 8)
	r := NewRenderer(s, mock, fb, nil)

	// One row of eight blocks, one for each mask
	cfg := Config{Width: 64, Height: 8, AALevel: 1, Threads: 3, BlockSize: 8, ColourDebug: true}
	if _, err := r.Render(cfg); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	for block := 0; block < 8; block++ {
		want := PackPixel(colourise(mock.returnColor, block), s.Exposure)
		if got := fb.Pixels[block*8+3]; got != want {
			t.Errorf("block %d pixel = %#x, want %#x", block, got, want)
		}
	}
	if fb.Pixels[0] == fb.Pixels[7*8] {
		t.Error("blocks 0 and 7 should be tinted differently")
	}
}

func TestPackPixel(t *testing.T) {
	testCases := []struct {
		name string
		c    core.Vec3
		want uint32
	}{
		{"black", core.NewVec3(0, 0, 0), 0},
		{"saturated", core.NewVec3(100, 100, 100), 0xffffff},
		{"negative clamps to zero", core.NewVec3(-1, 0, 0), 0},
		{"one per channel", core.NewVec3(1, 0, 0), uint32(255*(1-math.Exp(-1))) << 16},
		{"channel order", core.NewVec3(0, 0, 100), 0x0000ff},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PackPixel(tc.c, -1); got != tc.want {
				t.Errorf("PackPixel(%v) = %#x, want %#x", tc.c, got, tc.want)
			}
		})
	}
}

func TestColourise(t *testing.T) {
	c := core.NewVec3(1, 1, 1)
	testCases := []struct {
		mask int
		want core.Vec3
	}{
		{7, core.NewVec3(1, 1, 1)},
		{4, core.NewVec3(1, 0.5, 0.5)},
		{2, core.NewVec3(0.5, 1, 0.5)},
		{1, core.NewVec3(0.5, 0.5, 1)},
		{0, core.NewVec3(0.5, 0.5, 0.5)},
	}
	for _, tc := range testCases {
		if got := colourise(c, tc.mask); got != tc.want {
			t.Errorf("colourise(mask=%d) = %v, want %v", tc.mask, got, tc.want)
		}
	}
}

func TestFramebufferImage(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.Pixels[0] = 0x112233
	fb.Pixels[1*3+2] = 0xff0080 // (2,1) in a 3-wide image

	img := fb.Image(3, 2)
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("bounds = %v", b)
	}
	if c := img.RGBAAt(0, 0); c.R != 0x11 || c.G != 0x22 || c.B != 0x33 || c.A != 255 {
		t.Errorf("(0,0) = %v", c)
	}
	if c := img.RGBAAt(2, 1); c.R != 0xff || c.G != 0 || c.B != 0x80 {
		t.Errorf("(2,1) = %v", c)
	}
	if !fb.Fits(4, 4) || fb.Fits(5, 1) {
		t.Error("Fits() wrong for capacity 4x4")
	}
}

func TestNewFramebufferNegativeSize(t *testing.T) {
	for _, size := range [][2]int{{-5, 10}, {10, -5}, {-1, -1}} {
		fb := NewFramebuffer(size[0], size[1])
		if len(fb.Pixels) != 0 {
			t.Errorf("NewFramebuffer(%d, %d) has %d pixels, want 0", size[0], size[1], len(fb.Pixels))
		}
		if fb.Fits(1, 1) {
			t.Errorf("NewFramebuffer(%d, %d) should fit nothing", size[0], size[1])
		}
	}
}

func TestCameraRays(t *testing.T) {
	closeTo := func(a, b core.Vec3) bool { return a.Subtract(b).Length() < 1e-5 }
	s45 := float32(math.Sqrt(0.5))

	testCases := []struct {
		name    string
		camera  scene.Camera
		x, y    float32
		wantDir core.Vec3
	}{
		{"centre looks down +Z", scene.Camera{FieldOfView: 45}, 50, 40, core.NewVec3(0, 0, 1)},
		{"left edge at half fov", scene.Camera{FieldOfView: 90}, 0, 40, core.NewVec3(-s45, 0, s45)},
		{"top edge looks up", scene.Camera{FieldOfView: 90}, 50, 0, core.NewVec3(0, 40.0/50, 1).Normalize()},
		{"rotated a quarter turn", scene.Camera{FieldOfView: 45, Rotation: math32.Pi / 2}, 50, 40, core.NewVec3(-1, 0, 0)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.camera.Position = core.NewVec3(1, 2, 3)
			cam := NewCamera(tc.camera, 100, 80)
			ray := cam.GetRay(tc.x, tc.y)
			if ray.Origin != tc.camera.Position {
				t.Errorf("origin = %v", ray.Origin)
			}
			if !closeTo(ray.Direction, tc.wantDir) {
				t.Errorf("direction = %v, want %v", ray.Direction, tc.wantDir)
			}
		})
	}
}
