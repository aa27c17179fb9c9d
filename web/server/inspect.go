package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-lane-raytracer/pkg/core"
	"github.com/df07/go-lane-raytracer/pkg/intersect"
	"github.com/df07/go-lane-raytracer/pkg/renderer"
	"github.com/df07/go-lane-raytracer/pkg/scene"
	"github.com/labstack/echo/v4"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Index        int                    `json:"index"`
	Point        [3]float32             `json:"point"`
	Normal       [3]float32             `json:"normal"`
	Distance     float32                `json:"distance"`
	Inside       bool                   `json:"inside"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func vec(v core.Vec3) [3]float32 { return [3]float32{v.X, v.Y, v.Z} }

func hexColour(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo describes a material by its surface kind
func extractMaterialInfo(m *scene.Material) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"pattern":  m.Pattern.String(),
		"diffuse":  vec(m.Diffuse),
		"color":    hexColour(m.Diffuse),
		"specular": vec(m.Specular),
		"power":    m.Power,
	}
	if m.Pattern != scene.Gouraud {
		properties["diffuse2"] = vec(m.Diffuse2)
		properties["size"] = m.Size
	}
	switch m.Surface.Kind {
	case scene.Reflective:
		properties["reflection"] = m.Surface.Amount
	case scene.Refractive:
		properties["refraction"] = m.Surface.Amount
		properties["density"] = m.Density
	}
	return m.Surface.Kind.String(), properties
}

// extractGeometryInfo describes the primitive that was hit
func extractGeometryInfo(s *scene.Scene, hit *intersect.Intersection) map[string]interface{} {
	switch hit.Kind {
	case intersect.Sphere:
		sp := s.Spheres[hit.Index]
		return map[string]interface{}{"center": vec(sp.Center), "radius": sp.Radius}
	case intersect.Triangle:
		tr := s.Triangles[hit.Index]
		return map[string]interface{}{
			"vertices": [3][3]float32{vec(tr.V0), vec(tr.V1), vec(tr.V2)},
			"normal":   vec(tr.Normal),
		}
	default:
		return nil
	}
}

// inspectPixel casts a ray through the centre of pixel (x, y) and describes
// the first object hit. The scene must be preprocessed.
func inspectPixel(s *scene.Scene, width, height, x, y int) InspectResponse {
	camera := renderer.NewCamera(s.Camera, width, height)
	ray := camera.GetRay(float32(x)+0.5, float32(y)+0.5)

	hit, _, ok := intersect.Nearest(s, ray)
	if !ok {
		return InspectResponse{Hit: false, Index: intersect.NoObject}
	}
	intersect.Respond(s, ray, &hit)

	materialType, materialProps := extractMaterialInfo(hit.Material)
	return InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: hit.Kind.String(),
		Index:        hit.Index,
		Point:        vec(hit.Position),
		Normal:       vec(hit.Normal),
		Distance:     hit.T,
		Inside:       hit.Inside,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": extractGeometryInfo(s, &hit),
		},
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(c echo.Context) error {
	values := c.QueryParams()
	name := values.Get("scene")
	if name == "" {
		name = "default"
	}

	width, err := parseIntParam(values, "width", 400, minImageSize, maxImageSize)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(err))
	}
	height, err := parseIntParam(values, "height", 300, minImageSize, maxImageSize)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(err))
	}

	x, err := strconv.Atoi(values.Get("x"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
	}
	y, err := strconv.Atoi(values.Get("y"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
	}
	if x < 0 || x >= width || y < 0 || y >= height {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
	}

	sc, err := s.loadScene(name)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(err))
	}
	return c.JSON(http.StatusOK, inspectPixel(sc, width, height, x, y))
}
