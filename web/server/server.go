package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-lane-raytracer/pkg/scene"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Parameter limits shared by the render and inspect endpoints
const (
	minImageSize = 16
	maxImageSize = 2048
	maxAALevel   = 8
	maxThreads   = 256
	maxBlockSize = 512
	maxDepth     = 64
)

// Server handles web requests for the lane raytracer
type Server struct {
	port int
	echo *echo.Echo

	// sceneFiles lists the scene files clients may name
	sceneFiles func() ([]scene.SceneInfo, error)
}

var errSceneNotListed = errors.New("scene file is not in the scenes directory")

// NewServer creates a new web server with its routes registered
func NewServer(port int) *Server {
	s := &Server{port: port, echo: echo.New(), sceneFiles: scene.ListSceneFiles}
	s.echo.HideBanner = true
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestID())
	s.echo.Use(middleware.CORS())
	s.echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${method} ${uri} ${status} ${latency_human}\n",
	}))

	api := s.echo.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/scenes", s.handleScenes)
	api.GET("/render", s.handleRender)
	api.GET("/inspect", s.handleInspect)
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the web server and blocks until it stops
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and scene files grouped for display
func (s *Server) handleScenes(c echo.Context) error {
	scenes, err := scene.ListAllScenes()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorBody(err))
	}
	return c.JSON(http.StatusOK, scenes)
}

// loadScene resolves a built-in scene name or the id of a listed scene file
// and prepares it for rendering. Other file paths are refused.
func (s *Server) loadScene(name string) (*scene.Scene, error) {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		if err := s.checkSceneFile(name); err != nil {
			return nil, err
		}
	}
	sc, err := scene.Load(name)
	if err != nil {
		return nil, err
	}
	if err := sc.Preprocess(); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *Server) checkSceneFile(name string) error {
	files, err := s.sceneFiles()
	if err != nil {
		return err
	}
	for _, info := range files {
		if info.ID == name {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", errSceneNotListed, name)
}

func errorBody(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseBoolParam parses a boolean parameter from URL query
func parseBoolParam(values url.Values, key string, defaultValue bool) (bool, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
