package scene

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/df07/go-lane-raytracer/pkg/core"
)

func TestSurfaceFromAmounts(t *testing.T) {
	testCases := []struct {
		name       string
		refl, refr float32
		want       Surface
		wantErr    bool
	}{
		{"opaque", 0, 0, Surface{Kind: Opaque}, false},
		{"negative is opaque", -1, 0, Surface{Kind: Opaque}, false},
		{"reflective", 0.5, 0, Surface{Kind: Reflective, Amount: 0.5}, false},
		{"refractive", 0, 0.7, Surface{Kind: Refractive, Amount: 0.7}, false},
		{"both", 0.5, 0.7, Surface{}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SurfaceFromAmounts(tc.refl, tc.refr)
			if tc.wantErr {
				if !errors.Is(err, ErrAmbiguousSurface) {
					t.Errorf("error = %v, want ErrAmbiguousSurface", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("SurfaceFromAmounts(%g, %g) = %+v, want %+v", tc.refl, tc.refr, got, tc.want)
			}
		})
	}
}

func TestNewSurfaceCollapsesToOpaque(t *testing.T) {
	if s := NewSurface(Reflective, 0); s.Kind != Opaque {
		t.Errorf("NewSurface(Reflective, 0) = %v", s.Kind)
	}
	if s := NewSurface(Opaque, 0.5); s.Amount != 0 {
		t.Errorf("NewSurface(Opaque, 0.5) amount = %g", s.Amount)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Scene {
		return &Scene{
			Camera:    Camera{Position: core.NewVec3(0, 0, -5), FieldOfView: 45},
			Materials: []Material{NewDiffuseMaterial(core.NewVec3(0, 0, 0))},
			Spheres:   []Sphere{NewSphere(core.NewVec3(0, 0, 0), 1, 0)},
			Triangles: []Triangle{NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), 0)},
		}
	}

	testCases := []struct {
		name    string
		mutate  func(s *Scene)
		wantErr error
	}{
		{"valid", func(s *Scene) {}, nil},
		{"negative skybox", func(s *Scene) { s.SkyboxMaterialID = -1 }, ErrSkyboxRange},
		{"triangle material", func(s *Scene) { s.Triangles[0].MaterialID = 5 }, ErrMaterialRange},
		{"infinite radius", func(s *Scene) { s.Spheres[0].Radius = math32.Inf(1) }, ErrInvalidSphere},
		{"nan center", func(s *Scene) { s.Spheres[0].Center.Y = math32.NaN() }, ErrInvalidSphere},
		{"nan vertex", func(s *Scene) { s.Triangles[0].V2.X = math32.NaN() }, ErrInvalidTriangle},
		{"refractive without density", func(s *Scene) {
			s.Materials[0].Surface = NewSurface(Refractive, 1)
			s.Materials[0].Density = 0
		}, ErrInvalidMaterial},
		{"pattern without size", func(s *Scene) {
			s.Materials[0].Pattern = Wood
			s.Materials[0].Size = 0
		}, ErrInvalidMaterial},
		{"negative power", func(s *Scene) { s.Materials[0].Power = -1 }, ErrInvalidMaterial},
		{"zero field of view", func(s *Scene) { s.Camera.FieldOfView = 0 }, ErrInvalidCamera},
		{"negative field of view", func(s *Scene) { s.Camera.FieldOfView = -30 }, ErrInvalidCamera},
		{"straight angle field of view", func(s *Scene) { s.Camera.FieldOfView = 180 }, ErrInvalidCamera},
		{"wide field of view", func(s *Scene) { s.Camera.FieldOfView = 179 }, nil},
		{"nan field of view", func(s *Scene) { s.Camera.FieldOfView = math32.NaN() }, ErrInvalidCamera},
		{"infinite camera position", func(s *Scene) { s.Camera.Position.X = math32.Inf(-1) }, ErrInvalidCamera},
		{"nan rotation", func(s *Scene) { s.Camera.Rotation = math32.NaN() }, ErrInvalidCamera},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := base()
			tc.mutate(s)
			err := s.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestPreprocessDefaultsFieldOfView(t *testing.T) {
	s := &Scene{Materials: []Material{NewDiffuseMaterial(core.NewVec3(0, 0, 0))}}
	if err := s.Preprocess(); err != nil {
		t.Fatalf("Preprocess() error: %v", err)
	}
	if s.Camera.FieldOfView != defaultFieldOfView {
		t.Errorf("FieldOfView = %g, want %g", s.Camera.FieldOfView, defaultFieldOfView)
	}

	s = &Scene{Camera: Camera{FieldOfView: 200}, Materials: []Material{NewDiffuseMaterial(core.NewVec3(0, 0, 0))}}
	if err := s.Preprocess(); !errors.Is(err, ErrInvalidCamera) {
		t.Errorf("Preprocess() error = %v, want ErrInvalidCamera", err)
	}
}

func TestPreprocessRejectsInvalidScene(t *testing.T) {
	s := &Scene{}
	if err := s.Preprocess(); err == nil {
		t.Fatal("Preprocess() accepted a scene without materials")
	}
	if s.Lanes != nil {
		t.Error("Preprocess() packed an invalid scene")
	}
}
