package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-lane-raytracer/pkg/integrator"
	"github.com/df07/go-lane-raytracer/pkg/renderer"
	"github.com/df07/go-lane-raytracer/pkg/scene"
	"github.com/df07/go-lane-raytracer/pkg/shading"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"golang.org/x/image/bmp"
)

// fallbackThreads is used when the CPU count cannot be detected
const fallbackThreads = 8

var errUnsupportedFormat = errors.New("unsupported output format")

// options holds the parsed command line
type options struct {
	scene  string
	output string
	runs   int
	depth  int
	list   bool
	help   bool
	render renderer.Config
}

// newFlagSet registers the command line flags, writing their values into o
func newFlagSet(o *options) *flag.FlagSet {
	defaults := renderer.DefaultConfig()
	defaults.Threads = defaultThreads()

	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&o.scene, "scene", "default", "Built-in scene name or path to a .json scene file")
	fs.IntVar(&o.render.Width, "width", defaults.Width, "Image width in pixels")
	fs.IntVar(&o.render.Height, "height", defaults.Height, "Image height in pixels")
	fs.IntVar(&o.render.AALevel, "samples", defaults.AALevel, "Anti-aliasing level (samples per pixel along each axis)")
	fs.IntVar(&o.render.Threads, "threads", defaults.Threads, "Number of worker goroutines")
	fs.IntVar(&o.render.BlockSize, "blockSize", defaults.BlockSize, "Side of the square blocks handed to workers")
	fs.BoolVar(&o.render.ColourDebug, "colourise", false, "Tint each block to show the block layout")
	fs.IntVar(&o.runs, "runs", 1, "Number of timed renders to average")
	fs.IntVar(&o.depth, "depth", 0, "Maximum rays cast per primary ray (0 for the default)")
	fs.StringVar(&o.output, "output", "", "Output file (.png or .bmp); default output/<scene>/render_<timestamp>.png")
	fs.BoolVar(&o.list, "list", false, "List available scenes and exit")
	fs.BoolVar(&o.help, "help", false, "Show help information")
	return fs
}

func parseFlags(args []string) (options, error) {
	var o options
	if err := newFlagSet(&o).Parse(args); err != nil {
		return options{}, err
	}
	if o.runs < 1 {
		return options{}, fmt.Errorf("runs must be at least 1, got %d", o.runs)
	}
	if o.depth < 0 {
		return options{}, fmt.Errorf("depth must not be negative, got %d", o.depth)
	}
	if err := o.render.Validate(); err != nil {
		return options{}, err
	}
	return o, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(2)
	}

	if opts.help {
		printHelp()
		return
	}
	if opts.list {
		if err := listScenes(os.Stdout); err != nil {
			fmt.Printf("Error listing scenes: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(opts); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Lane Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs := newFlagSet(&options{})
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, name := range scene.Names() {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println("  <path>.json - scene file")
}

func run(opts options) error {
	// The framebuffer is sized from the config, so check it before allocating
	if err := opts.render.Validate(); err != nil {
		return fmt.Errorf("invalid render config: %w", err)
	}
	printSystemInfo(os.Stdout)

	sc, err := createScene(opts.scene)
	if err != nil {
		return err
	}

	var integOpts []integrator.Option
	if opts.depth > 0 {
		integOpts = append(integOpts, integrator.WithMaxDepth(opts.depth))
	}
	whitted := integrator.NewWhitted(sc, shading.NewPhong(sc), integOpts...)
	fb := renderer.NewFramebuffer(opts.render.Width, opts.render.Height)
	r := renderer.NewRenderer(sc, whitted, fb, renderer.NewDefaultLogger())

	fmt.Printf("Rendering %s at %dx%d, aa %d, %d threads, block size %d\n",
		opts.scene, opts.render.Width, opts.render.Height,
		opts.render.AALevel, opts.render.Threads, opts.render.BlockSize)

	var total time.Duration
	var stats renderer.RenderStats
	for i := 0; i < opts.runs; i++ {
		stats, err = r.Render(opts.render)
		if err != nil {
			return err
		}
		total += stats.Duration
	}
	avg := total / time.Duration(opts.runs)
	fmt.Printf("Average render time over %d run(s): %v (%.1f Mrays/s)\n",
		opts.runs, avg, float64(stats.TotalSamples)/avg.Seconds()/1e6)
	fmt.Printf("Blocks per worker: %v\n", stats.BlocksPerWorker)
	fmt.Printf("Intersection candidates %d, improvements %d\n",
		stats.Trace.Counts.Candidates, stats.Trace.Counts.Improved)

	img := fb.Image(opts.render.Width, opts.render.Height)
	fmt.Printf("Average luminance: %.3f\n", renderer.CalculateAverageLuminance(img))

	filename := opts.output
	if filename == "" {
		dir := createOutputDir(opts.scene)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
		filename = filepath.Join(dir, fmt.Sprintf("render_%s.png", time.Now().Format("20060102_150405")))
	}
	if err := saveImage(filename, img); err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", filename)
	return nil
}

// createScene resolves a built-in scene name or a .json path and prepares
// it for rendering
func createScene(name string) (*scene.Scene, error) {
	sc, err := scene.Load(name)
	if err != nil {
		return nil, err
	}
	if err := sc.Preprocess(); err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}
	return sc, nil
}

// createOutputDir returns output/<scene base name> for a scene name or path
func createOutputDir(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if base == "" || base == "." {
		base = "scene"
	}
	return filepath.Join("output", base)
}

// saveImage writes img as PNG or BMP depending on the file extension
func saveImage(filename string, img image.Image) error {
	var encode func(io.Writer, image.Image) error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		encode = png.Encode
	case ".bmp":
		encode = bmp.Encode
	default:
		return fmt.Errorf("%w: %s", errUnsupportedFormat, filename)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	if err := encode(file, img); err != nil {
		return fmt.Errorf("error encoding %s: %w", filename, err)
	}
	return nil
}

func listScenes(w io.Writer) error {
	scenes, err := scene.ListAllScenes()
	if err != nil {
		return err
	}
	for _, group := range scenes.Groups {
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Fprintf(w, "  %-20s %s\n", info.ID, info.Description)
		}
	}
	return nil
}

// defaultThreads returns the number of logical CPUs
func defaultThreads() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		return fallbackThreads
	}
	return n
}

func printSystemInfo(w io.Writer) {
	if info, err := cpu.Info(); err == nil && len(info) > 0 {
		fmt.Fprintf(w, "CPU: %s @ %.2f GHz, %d logical cores\n",
			info[0].ModelName, info[0].Mhz/1000, defaultThreads())
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		fmt.Fprintf(w, "RAM: %d GB\n", vm.Total/(1024*1024*1024))
	}
}
