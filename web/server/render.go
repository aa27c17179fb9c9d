package server

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-lane-raytracer/pkg/core"
	"github.com/df07/go-lane-raytracer/pkg/integrator"
	"github.com/df07/go-lane-raytracer/pkg/renderer"
	"github.com/df07/go-lane-raytracer/pkg/scene"
	"github.com/df07/go-lane-raytracer/pkg/shading"
	"github.com/labstack/echo/v4"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene       string `json:"scene"`     // built-in scene name or .json path
	Width       int    `json:"width"`     // image width
	Height      int    `json:"height"`    // image height
	AALevel     int    `json:"samples"`   // samples per pixel along each axis
	Threads     int    `json:"threads"`   // worker goroutines
	BlockSize   int    `json:"blockSize"` // block side in pixels
	MaxDepth    int    `json:"maxDepth"`  // maximum rays cast per primary ray
	ColourDebug bool   `json:"colourise"` // tint blocks
	JSON        bool   `json:"-"`         // answer with JSON instead of a bare PNG
}

// Stats represents render statistics
type Stats struct {
	TotalPixels     int   `json:"totalPixels"`
	TotalSamples    int   `json:"totalSamples"`
	TotalBlocks     int   `json:"totalBlocks"`
	BlocksPerWorker []int `json:"blocksPerWorker"`
	Bounces         int   `json:"bounces"`
	Candidates      int   `json:"candidates"`
	Improved        int   `json:"improved"`
	ElapsedMs       int64 `json:"elapsedMs"`
}

// RenderResponse is the JSON form of a finished render
type RenderResponse struct {
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
}

// RenderingPipeline contains the prepared scene and renderer for one request
type RenderingPipeline struct {
	Scene    *scene.Scene
	Renderer *renderer.Renderer
}

// handleRender renders one image synchronously and returns it as PNG, or
// as JSON with stats and log output when format=json
func (s *Server) handleRender(c echo.Context) error {
	req, err := s.parseRenderRequest(c.QueryParams())
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(fmt.Errorf("invalid request: %w", err)))
	}

	consoleChan := make(chan ConsoleMessage, 16)
	logger := NewWebLogger(c.Response().Header().Get(echo.HeaderXRequestID), consoleChan)

	pipeline, err := s.setupRenderingPipeline(req, logger)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(err))
	}

	stats, err := pipeline.Renderer.Render(renderer.Config{
		Width:       req.Width,
		Height:      req.Height,
		AALevel:     req.AALevel,
		Threads:     req.Threads,
		BlockSize:   req.BlockSize,
		ColourDebug: req.ColourDebug,
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(err))
	}

	img := pipeline.Renderer.Framebuffer().Image(req.Width, req.Height)
	data, err := encodePNG(img)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorBody(fmt.Errorf("failed to encode image: %w", err)))
	}

	if !req.JSON {
		h := c.Response().Header()
		h.Set("X-Render-Time-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
		h.Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
		return c.Blob(http.StatusOK, "image/png", data)
	}

	close(consoleChan)
	var console []ConsoleMessage
	for msg := range consoleChan {
		console = append(console, msg)
	}
	return c.JSON(http.StatusOK, RenderResponse{
		ImageData: base64.StdEncoding.EncodeToString(data),
		Stats:     toStats(stats),
		Console:   console,
	})
}

// setupRenderingPipeline loads the scene and wires the Whitted integrator
// to a framebuffer sized for this request
func (s *Server) setupRenderingPipeline(req *RenderRequest, logger core.Logger) (*RenderingPipeline, error) {
	sc, err := s.loadScene(req.Scene)
	if err != nil {
		return nil, err
	}
	whitted := integrator.NewWhitted(sc, shading.NewPhong(sc), integrator.WithMaxDepth(req.MaxDepth))
	fb := renderer.NewFramebuffer(req.Width, req.Height)
	return &RenderingPipeline{
		Scene:    sc,
		Renderer: renderer.NewRenderer(sc, whitted, fb, logger),
	}, nil
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	defaults := renderer.DefaultConfig()
	var err error
	if req.Width, err = parseIntParam(values, "width", 400, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 300, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.AALevel, err = parseIntParam(values, "samples", defaults.AALevel, 1, maxAALevel); err != nil {
		return nil, err
	}
	if req.Threads, err = parseIntParam(values, "threads", defaults.Threads, 1, maxThreads); err != nil {
		return nil, err
	}
	if req.BlockSize, err = parseIntParam(values, "blockSize", defaults.BlockSize, 1, maxBlockSize); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "depth", core.MaxRaysCast, 1, maxDepth); err != nil {
		return nil, err
	}
	if req.ColourDebug, err = parseBoolParam(values, "colourise", false); err != nil {
		return nil, err
	}

	switch format := values.Get("format"); format {
	case "", "png":
	case "json":
		req.JSON = true
	default:
		return nil, fmt.Errorf("invalid format: %s", format)
	}
	return req, nil
}

func toStats(rs renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:     rs.TotalPixels,
		TotalSamples:    rs.TotalSamples,
		TotalBlocks:     rs.TotalBlocks,
		BlocksPerWorker: rs.BlocksPerWorker,
		Bounces:         rs.Trace.Bounces,
		Candidates:      rs.Trace.Counts.Candidates,
		Improved:        rs.Trace.Counts.Improved,
		ElapsedMs:       rs.Duration.Milliseconds(),
	}
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
