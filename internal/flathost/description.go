// Package flathost is a minimal in-process scene host. It keeps a flat list
// of posable objects described by a YAML file and rasterizes preview frames
// on the CPU: background plus element vertex splats. It exists so the
// pipeline can run and be tested end to end without an external 3D
// environment.
package flathost

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/calligo/synthset/pkg/math"
)

// Object kinds understood by the host.
const (
	KindCamera = "camera"
	KindEmpty  = "empty"
	KindLight  = "light"
	KindMesh   = "mesh"
)

// Description is the YAML scene description.
type Description struct {
	Name    string              `yaml:"name"`
	Objects []ObjectDescription `yaml:"objects"`
}

// ObjectDescription describes one scene object.
type ObjectDescription struct {
	Name     string       `yaml:"name"`
	Kind     string       `yaml:"kind"`
	Parent   string       `yaml:"parent"`
	Position [3]float64   `yaml:"position"`
	Rotation [3]float64   `yaml:"rotation"`
	FOV      float64      `yaml:"fov"`      // vertical field of view in radians (cameras)
	Energy   float64      `yaml:"energy"`   // light intensity (lights)
	Box      []float64    `yaml:"box"`      // box primitive dimensions (meshes)
	Vertices [][3]float64 `yaml:"vertices"` // explicit mesh vertices
}

// LoadDescription parses a scene description file.
func LoadDescription(path string) (Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Description{}, fmt.Errorf("reading scene description: %w", err)
	}

	var desc Description
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return Description{}, fmt.Errorf("parsing scene description %s: %w", path, err)
	}
	return desc, nil
}

// meshFromDescription builds the vertex list of a mesh object: explicit
// vertices when given, otherwise the eight corners of a box primitive.
func meshFromDescription(d ObjectDescription) ([]math.Vec3, error) {
	if len(d.Vertices) > 0 {
		verts := make([]math.Vec3, len(d.Vertices))
		for i, v := range d.Vertices {
			verts[i] = math.Vec3{X: v[0], Y: v[1], Z: v[2]}
		}
		return verts, nil
	}

	if len(d.Box) != 3 {
		return nil, fmt.Errorf("mesh %q needs either vertices or a 3-component box", d.Name)
	}

	hx, hy, hz := d.Box[0]/2, d.Box[1]/2, d.Box[2]/2
	return []math.Vec3{
		{X: -hx, Y: -hy, Z: -hz},
		{X: hx, Y: -hy, Z: -hz},
		{X: hx, Y: hy, Z: -hz},
		{X: -hx, Y: hy, Z: -hz},
		{X: -hx, Y: -hy, Z: hz},
		{X: hx, Y: -hy, Z: hz},
		{X: hx, Y: hy, Z: hz},
		{X: -hx, Y: hy, Z: hz},
	}, nil
}
