// Package projection maps an element's mesh, observed from one camera, into
// a 2D bounding box. The camera looks down -Z; a vertex is in front of the
// camera when its negated Z coordinate is strictly positive.
package projection

import (
	"errors"

	"github.com/calligo/synthset/internal/model"
	"github.com/calligo/synthset/internal/scene"
	"github.com/calligo/synthset/pkg/math"
)

// ErrResolutionRequired is returned when a relative (pixel-unit) bounding
// box is requested without a target resolution.
var ErrResolutionRequired = errors.New("projection: resolution required for relative bounding boxes")

// epsilon replaces a zero top coordinate so downstream consumers never see
// an exactly-zero value there.
const epsilon = 1e-6

// ToCameraSpace returns a copy of the mesh with every vertex transformed by
// the element's local-to-world matrix and then by the inverse camera matrix,
// yielding vertex positions in camera-local coordinates.
func ToCameraSpace(mesh scene.Mesh, elementMatrix, cameraInverse math.Mat4) scene.Mesh {
	out := mesh.Clone()
	m := cameraInverse.Mul(elementMatrix)
	for i, v := range out {
		out[i] = m.TransformVec3(v)
	}
	return out
}

// NormalizedCoordinates maps camera-space vertices to normalized 2D
// coordinates against the camera frame. The frame must already be negated
// to the core's orientation; corners 1 and 2 carry the x extent, corners
// 0 and 1 the y extent. Vertices at or behind the camera plane are dropped.
func NormalizedCoordinates(verts scene.Mesh, frame [4]math.Vec3) (xs, ys []float64) {
	for _, v := range verts {
		z := -v.Z
		if z <= 0 {
			continue
		}

		// Rescale each corner to the plane at the vertex's depth: the
		// intersection of the ray through that corner with the plane z.
		var f [4]math.Vec3
		for i, c := range frame {
			f[i] = c.Scale(z / c.Z)
		}

		minX, maxX := f[1].X, f[2].X
		minY, maxY := f[0].Y, f[1].Y

		xs = append(xs, (v.X-minX)/(maxX-minX))
		ys = append(ys, (v.Y-minY)/(maxY-minY))
	}
	return xs, ys
}

// ComputeBoundingBox derives a (top_x, top_y, width, height) box from
// normalized vertex coordinates. It returns ok=false when the element is
// not meaningfully visible: no vertices, or a box that degenerates to a
// line or point after cropping to the visible frame. When relative is set
// the box is scaled to pixel units of the given resolution.
func ComputeBoundingBox(xs, ys []float64, relative bool, resolution model.Resolution) (model.BoundingBox, bool, error) {
	if len(xs) == 0 || len(ys) == 0 {
		return model.BoundingBox{}, false, nil
	}

	// Flip y so the box is measured from the top-left of the image.
	flipped := make([]float64, len(ys))
	for i, y := range ys {
		flipped[i] = 1 - y
	}

	topX := clamp01(minOf(xs))
	bottomX := clamp01(maxOf(xs))
	topY := clamp01(minOf(flipped))
	bottomY := clamp01(maxOf(flipped))

	// Clamping happens first, so a box fully outside the frame collapses
	// to a point here and is rejected as degenerate.
	if topX == bottomX || topY == bottomY {
		return model.BoundingBox{}, false, nil
	}

	if relative {
		if resolution.Width <= 0 || resolution.Height <= 0 {
			return model.BoundingBox{}, false, ErrResolutionRequired
		}
		topX *= float64(resolution.Width)
		bottomX *= float64(resolution.Width)
		topY *= float64(resolution.Height)
		bottomY *= float64(resolution.Height)
	}

	width := bottomX - topX
	height := bottomY - topY

	// A zero top coordinate is nudged to keep it truthy for downstream
	// consumers. Kept for compatibility with existing datasets.
	if topX == 0 {
		topX = epsilon
	}
	if topY == 0 {
		topY = epsilon
	}

	return model.BoundingBox{topX, topY, width, height}, true, nil
}

// BoxForElement computes the bounding box of one element as seen by one
// camera. The camera matrix is scale-normalized before inversion; the
// host-supplied frustum corners are negated to the core's orientation.
func BoxForElement(camera scene.Camera, element scene.Element, relative bool, resolution model.Resolution) (model.BoundingBox, bool, error) {
	inverse := camera.Matrix().NormalizeScale().Inverse()
	verts := ToCameraSpace(element.Mesh(), element.Matrix(), inverse)

	corners := camera.FrustumCorners()
	var frame [4]math.Vec3
	for i := range corners {
		frame[i] = corners[i].Neg()
	}

	xs, ys := NormalizedCoordinates(verts, frame)
	return ComputeBoundingBox(xs, ys, relative, resolution)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func minOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
