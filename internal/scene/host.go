// Package scene models the renderable scene as an explicit, passable state
// object. The scene graph, mesh data and rasterizer are owned by an external
// Host; this package only resolves named objects into typed roles and
// mutates pose, background and render resolution through the Host interface.
package scene

import (
	"github.com/calligo/synthset/internal/model"
	"github.com/calligo/synthset/pkg/math"
)

// Mesh is an ordered collection of vertices in an element's local space.
type Mesh []math.Vec3

// Clone returns a copy of the mesh that can be transformed freely.
func (m Mesh) Clone() Mesh {
	out := make(Mesh, len(m))
	copy(out, m)
	return out
}

// Object is a posable node in the host's scene graph.
type Object interface {
	Name() string
	SetLocation(math.Vec3)
	SetRotation(math.Vec3)
	// Matrix returns the object's local-to-world transform.
	Matrix() math.Mat4
}

// Camera is an object that can describe its view frame.
type Camera interface {
	Object
	// FrustumCorners returns the camera's view-frame quadrilateral at unit
	// depth, in camera-local coordinates, ordered right-top, right-bottom,
	// left-bottom, left-top.
	FrustumCorners() [4]math.Vec3
}

// Light is an object with a controllable intensity.
type Light interface {
	Object
	SetEnergy(float64)
}

// Element is an object that owns a mesh whose projected extent gets labeled.
type Element interface {
	Object
	Mesh() Mesh
}

// Host exposes the capabilities this package consumes from the external
// scene environment.
type Host interface {
	Object(name string) (Object, error)
	Camera(name string) (Camera, error)
	Light(name string) (Light, error)
	Element(name string) (Element, error)

	SetResolution(width, height int)
	Resolution() model.Resolution

	// SetBackgroundImage loads an environment backdrop and resizes the
	// render target to the image's native dimensions.
	SetBackgroundImage(path string) error
	SetSolidBackground(color [3]float64)

	// Render rasterizes the current scene state into a pixel file at path.
	Render(path string) error
}
