package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/calligo/synthset/internal/config"
	"github.com/calligo/synthset/internal/diag"
	"github.com/calligo/synthset/internal/model"
	"github.com/calligo/synthset/pkg/math"
)

// Scene holds the resolved roles of one host scene plus the configured
// base resolution and fallback background color.
type Scene struct {
	Name     string
	Host     Host
	Cameras  []Camera
	Axes     []Object
	Lights   []Light
	Elements []Element

	baseResolution model.Resolution
	solidColor     [3]float64
	diags          *diag.Recorder
}

// New resolves the configured role names against the host.
func New(host Host, cfg config.SceneConfig, base model.Resolution, diags *diag.Recorder) (*Scene, error) {
	s := &Scene{
		Name:           cfg.Name,
		Host:           host,
		baseResolution: base,
		solidColor:     cfg.SolidColor,
		diags:          diags,
	}

	for _, name := range cfg.CameraNames {
		cam, err := host.Camera(name)
		if err != nil {
			return nil, fmt.Errorf("resolving camera %q: %w", name, err)
		}
		s.Cameras = append(s.Cameras, cam)
	}
	for _, name := range cfg.AxisNames {
		obj, err := host.Object(name)
		if err != nil {
			return nil, fmt.Errorf("resolving axis %q: %w", name, err)
		}
		s.Axes = append(s.Axes, obj)
	}
	for _, name := range cfg.LightNames {
		light, err := host.Light(name)
		if err != nil {
			return nil, fmt.Errorf("resolving light %q: %w", name, err)
		}
		s.Lights = append(s.Lights, light)
	}
	for _, name := range cfg.ElementNames {
		el, err := host.Element(name)
		if err != nil {
			return nil, fmt.Errorf("resolving element %q: %w", name, err)
		}
		s.Elements = append(s.Elements, el)
	}

	if len(s.Cameras) == 0 {
		return nil, fmt.Errorf("scene %q has no camera", cfg.Name)
	}
	if len(s.Axes) == 0 {
		return nil, fmt.Errorf("scene %q has no pivot axis", cfg.Name)
	}
	if len(s.Lights) == 0 {
		return nil, fmt.Errorf("scene %q has no light", cfg.Name)
	}

	return s, nil
}

// PrepareSnapshot mutates the scene pose to match the snapshot: the pivot
// axis moves to the origin with rotation (yaw, roll, 0), the camera moves to
// (0, 0, camera_height) and the light intensity follows light_energy.
// When a role has several candidates the first one is used.
func (s *Scene) PrepareSnapshot(snap model.Snapshot) {
	s.warnMultiplicity()

	s.Axes[0].SetLocation(math.Vec3{})
	s.Axes[0].SetRotation(math.Vec3{X: snap.Yaw, Y: snap.Roll, Z: 0})
	s.Cameras[0].SetLocation(math.Vec3{Z: snap.CameraHeight})
	s.Lights[0].SetEnergy(snap.LightEnergy)
}

func (s *Scene) warnMultiplicity() {
	type role struct {
		code  diag.Code
		what  string
		count int
	}
	for _, r := range []role{
		{diag.CodeMultipleAxes, "axes", len(s.Axes)},
		{diag.CodeMultipleCameras, "cameras", len(s.Cameras)},
		{diag.CodeMultipleLights, "lights", len(s.Lights)},
	} {
		if r.count > 1 {
			s.diags.Warn(r.code,
				fmt.Sprintf("multiple %s found in the scene, using the first one", r.what),
				zap.Int("count", r.count))
		}
	}
}

// ApplyBackground switches the scene backdrop. A non-empty path loads the
// image as environment backdrop, letting the host follow the image's native
// resolution; a load failure falls back to solid color and is recorded as a
// diagnostic, not an error. An empty path selects the configured solid color
// and restores the configured base resolution.
func (s *Scene) ApplyBackground(path string) {
	if path == "" {
		s.applySolid()
		return
	}
	if err := s.Host.SetBackgroundImage(path); err != nil {
		s.diags.Warn(diag.CodeBackgroundLoadFailed,
			"could not load background image, falling back to solid color",
			zap.String("path", path), zap.Error(err))
		s.applySolid()
	}
}

func (s *Scene) applySolid() {
	s.Host.SetSolidBackground(s.solidColor)
	s.Host.SetResolution(s.baseResolution.Width, s.baseResolution.Height)
}

// CategoryIDs resolves the category id for each element, in element order.
// Elements present in the mapping use the mapped id; all others use their
// positional index.
func (s *Scene) CategoryIDs(mapping map[string]int) []int {
	ids := make([]int, len(s.Elements))
	for i, el := range s.Elements {
		if id, ok := mapping[el.Name()]; ok {
			ids[i] = id
		} else {
			ids[i] = i
		}
	}
	return ids
}
