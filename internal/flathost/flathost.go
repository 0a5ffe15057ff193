package flathost

import (
	"fmt"
	"image"
	stdmath "math"
	"os"

	// Background image formats.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "image/jpeg"
	_ "image/png"

	"github.com/calligo/synthset/internal/model"
	"github.com/calligo/synthset/internal/scene"
	"github.com/calligo/synthset/pkg/math"
)

// Host is an in-process scene host. It satisfies scene.Host.
type Host struct {
	name     string
	nodes    map[string]*node
	order    []*node
	res      model.Resolution
	backdrop image.Image // nil means solid color
	solid    [3]float64
}

// node is one object in the host's scene graph.
type node struct {
	name     string
	kind     string
	parent   *node
	position math.Vec3
	rotation math.Vec3
	fov      float64
	energy   float64
	mesh     scene.Mesh
}

// New builds a host from a scene description.
func New(desc Description) (*Host, error) {
	h := &Host{
		name:  desc.Name,
		nodes: make(map[string]*node),
		res:   model.Resolution{Width: 640, Height: 480},
	}

	for _, d := range desc.Objects {
		if d.Name == "" {
			return nil, fmt.Errorf("scene %q: object without a name", desc.Name)
		}
		if _, exists := h.nodes[d.Name]; exists {
			return nil, fmt.Errorf("scene %q: duplicate object %q", desc.Name, d.Name)
		}

		n := &node{
			name:     d.Name,
			kind:     d.Kind,
			position: math.Vec3{X: d.Position[0], Y: d.Position[1], Z: d.Position[2]},
			rotation: math.Vec3{X: d.Rotation[0], Y: d.Rotation[1], Z: d.Rotation[2]},
			fov:      d.FOV,
			energy:   d.Energy,
		}
		switch d.Kind {
		case KindCamera:
			if n.fov <= 0 {
				n.fov = 0.85
			}
		case KindMesh:
			verts, err := meshFromDescription(d)
			if err != nil {
				return nil, err
			}
			n.mesh = verts
		case KindEmpty, KindLight:
		default:
			return nil, fmt.Errorf("scene %q: object %q has unknown kind %q", desc.Name, d.Name, d.Kind)
		}

		h.nodes[d.Name] = n
		h.order = append(h.order, n)
	}

	// Second pass: resolve parents.
	for _, d := range desc.Objects {
		if d.Parent == "" {
			continue
		}
		parent, ok := h.nodes[d.Parent]
		if !ok {
			return nil, fmt.Errorf("scene %q: object %q references unknown parent %q", desc.Name, d.Name, d.Parent)
		}
		h.nodes[d.Name].parent = parent
	}

	return h, nil
}

// Load builds a host from a scene description file.
func Load(path string) (*Host, error) {
	desc, err := LoadDescription(path)
	if err != nil {
		return nil, err
	}
	return New(desc)
}

// Name returns the scene name.
func (h *Host) Name() string { return h.name }

func (h *Host) lookup(name, kind string) (*node, error) {
	n, ok := h.nodes[name]
	if !ok {
		return nil, fmt.Errorf("scene %q has no object %q", h.name, name)
	}
	if kind != "" && n.kind != kind {
		return nil, fmt.Errorf("object %q is a %s, not a %s", name, n.kind, kind)
	}
	return n, nil
}

// Object resolves any object by name.
func (h *Host) Object(name string) (scene.Object, error) {
	n, err := h.lookup(name, "")
	if err != nil {
		return nil, err
	}
	return (*objectHandle)(n), nil
}

// Camera resolves a camera object by name.
func (h *Host) Camera(name string) (scene.Camera, error) {
	n, err := h.lookup(name, KindCamera)
	if err != nil {
		return nil, err
	}
	return &cameraHandle{objectHandle: (*objectHandle)(n), host: h}, nil
}

// Light resolves a light object by name.
func (h *Host) Light(name string) (scene.Light, error) {
	n, err := h.lookup(name, KindLight)
	if err != nil {
		return nil, err
	}
	return (*lightHandle)(n), nil
}

// Element resolves a mesh object by name.
func (h *Host) Element(name string) (scene.Element, error) {
	n, err := h.lookup(name, KindMesh)
	if err != nil {
		return nil, err
	}
	return (*elementHandle)(n), nil
}

// SetResolution sets the render target size.
func (h *Host) SetResolution(width, height int) {
	h.res = model.Resolution{Width: width, Height: height}
}

// Resolution returns the current render target size.
func (h *Host) Resolution() model.Resolution { return h.res }

// SetBackgroundImage loads an image backdrop and resizes the render target
// to the image's native dimensions.
func (h *Host) SetBackgroundImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening background image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decoding background image %s: %w", path, err)
	}

	h.backdrop = img
	b := img.Bounds()
	h.res = model.Resolution{Width: b.Dx(), Height: b.Dy()}
	return nil
}

// SetSolidBackground switches to a solid background color.
func (h *Host) SetSolidBackground(color [3]float64) {
	h.backdrop = nil
	h.solid = color
}

// matrix composes the node's local-to-world transform through its parent
// chain: translation, then XYZ euler rotation.
func (n *node) matrix() math.Mat4 {
	local := math.Translate(n.position.X, n.position.Y, n.position.Z).
		Mul(math.RotateEuler(n.rotation.X, n.rotation.Y, n.rotation.Z))
	if n.parent != nil {
		return n.parent.matrix().Mul(local)
	}
	return local
}

// objectHandle adapts a node to scene.Object.
type objectHandle node

func (o *objectHandle) Name() string            { return o.name }
func (o *objectHandle) SetLocation(v math.Vec3) { o.position = v }
func (o *objectHandle) SetRotation(v math.Vec3) { o.rotation = v }
func (o *objectHandle) Matrix() math.Mat4       { return (*node)(o).matrix() }

// cameraHandle adapts a camera node to scene.Camera.
type cameraHandle struct {
	*objectHandle
	host *Host
}

// FrustumCorners returns the view frame at unit depth, ordered right-top,
// right-bottom, left-bottom, left-top, matching the aspect of the host's
// current render resolution.
func (c *cameraHandle) FrustumCorners() [4]math.Vec3 {
	halfH := stdmath.Tan(c.fov / 2)
	aspect := 1.0
	if c.host.res.Height > 0 {
		aspect = float64(c.host.res.Width) / float64(c.host.res.Height)
	}
	halfW := halfH * aspect

	return [4]math.Vec3{
		{X: halfW, Y: halfH, Z: -1},
		{X: halfW, Y: -halfH, Z: -1},
		{X: -halfW, Y: -halfH, Z: -1},
		{X: -halfW, Y: halfH, Z: -1},
	}
}

// lightHandle adapts a light node to scene.Light.
type lightHandle node

func (l *lightHandle) Name() string            { return l.name }
func (l *lightHandle) SetLocation(v math.Vec3) { l.position = v }
func (l *lightHandle) SetRotation(v math.Vec3) { l.rotation = v }
func (l *lightHandle) Matrix() math.Mat4       { return (*node)(l).matrix() }
func (l *lightHandle) SetEnergy(e float64)     { l.energy = e }

// elementHandle adapts a mesh node to scene.Element.
type elementHandle node

func (e *elementHandle) Name() string            { return e.name }
func (e *elementHandle) SetLocation(v math.Vec3) { e.position = v }
func (e *elementHandle) SetRotation(v math.Vec3) { e.rotation = v }
func (e *elementHandle) Matrix() math.Mat4       { return (*node)(e).matrix() }
func (e *elementHandle) Mesh() scene.Mesh        { return e.mesh }
