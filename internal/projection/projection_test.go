package projection

import (
	stdmath "math"
	"testing"

	"github.com/calligo/synthset/internal/model"
	"github.com/calligo/synthset/internal/scene"
	"github.com/calligo/synthset/pkg/math"
)

// unitFrame is the view-frame quadrilateral used throughout: already
// negated, ordered top, bottom-left, bottom-right (the fourth corner
// duplicates the first, which the positional convention never reads).
var unitFrame = [4]math.Vec3{
	{X: 0, Y: 1, Z: 1},
	{X: -1, Y: -1, Z: 1},
	{X: 1, Y: -1, Z: 1},
	{X: 0, Y: 1, Z: 1},
}

func almost(a, b float64) bool {
	return stdmath.Abs(a-b) < 1e-9
}

func TestNormalizedCoordinatesCenterVertex(t *testing.T) {
	verts := scene.Mesh{{X: 0, Y: 0, Z: -1}}

	xs, ys := NormalizedCoordinates(verts, unitFrame)

	if len(xs) != 1 || len(ys) != 1 {
		t.Fatalf("expected 1 visible vertex, got %d/%d", len(xs), len(ys))
	}
	if !almost(xs[0], 0.5) || !almost(ys[0], 0.5) {
		t.Errorf("center vertex: got (%f, %f), want (0.5, 0.5)", xs[0], ys[0])
	}
}

func TestNormalizedCoordinatesDropsBehindCamera(t *testing.T) {
	verts := scene.Mesh{
		{X: 0, Y: 0, Z: 1},   // behind
		{X: 0, Y: 0, Z: 0},   // exactly on the camera plane
		{X: 0.5, Y: 0, Z: -2}, // in front
	}

	xs, ys := NormalizedCoordinates(verts, unitFrame)

	if len(xs) != 1 || len(ys) != 1 {
		t.Fatalf("expected only the in-front vertex, got %d coordinates", len(xs))
	}
}

func TestNormalizedCoordinatesAllBehind(t *testing.T) {
	verts := scene.Mesh{
		{X: 1, Y: 2, Z: 3},
		{X: -1, Y: 0, Z: 0.5},
	}

	xs, ys := NormalizedCoordinates(verts, unitFrame)
	if len(xs) != 0 || len(ys) != 0 {
		t.Fatalf("expected empty coordinate lists, got %d/%d", len(xs), len(ys))
	}

	_, ok, err := ComputeBoundingBox(xs, ys, false, model.Resolution{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected no box for fully hidden element")
	}
}

func TestNormalizedCoordinatesPerspectiveScaling(t *testing.T) {
	// At depth 2 the frame doubles, so a vertex at x=1 lands at 0.75.
	verts := scene.Mesh{{X: 1, Y: 0, Z: -2}}

	xs, ys := NormalizedCoordinates(verts, unitFrame)

	if !almost(xs[0], 0.75) {
		t.Errorf("x at depth 2: got %f, want 0.75", xs[0])
	}
	if !almost(ys[0], 0.5) {
		t.Errorf("y at depth 2: got %f, want 0.5", ys[0])
	}
}

func TestComputeBoundingBoxSinglePointDegenerates(t *testing.T) {
	_, ok, err := ComputeBoundingBox([]float64{0.5}, []float64{0.5}, false, model.Resolution{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("single projected point must not yield a box")
	}
}

func TestComputeBoundingBoxDegenerateAxis(t *testing.T) {
	// Valid x spread, but all vertices share one y.
	_, ok, err := ComputeBoundingBox([]float64{0.2, 0.8}, []float64{0.3, 0.3}, false, model.Resolution{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected no box when one axis is degenerate")
	}

	// And the transpose.
	_, ok, err = ComputeBoundingBox([]float64{0.4, 0.4}, []float64{0.1, 0.9}, false, model.Resolution{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected no box when x is degenerate")
	}
}

func TestComputeBoundingBoxFullyOffscreenCollapses(t *testing.T) {
	// Entirely outside [0,1]: clamping collapses both axes to a point.
	_, ok, err := ComputeBoundingBox([]float64{1.5, 2.5}, []float64{-1.0, -0.5}, false, model.Resolution{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected no box for fully offscreen element")
	}
}

func TestComputeBoundingBoxNormalized(t *testing.T) {
	// ys flip to [0.2, 0.4].
	box, ok, err := ComputeBoundingBox([]float64{0.1, 0.3}, []float64{0.6, 0.8}, false, model.Resolution{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected a box")
	}

	want := model.BoundingBox{0.1, 0.2, 0.2, 0.2}
	for i := range want {
		if !almost(box[i], want[i]) {
			t.Errorf("box[%d] = %f, want %f", i, box[i], want[i])
		}
	}
}

func TestComputeBoundingBoxRelative(t *testing.T) {
	// Normalized corners (0.1, 0.2)-(0.3, 0.4) at 100x50 scale to the
	// pixel corners (10, 10)-(30, 20), so width 20 and height 10.
	box, ok, err := ComputeBoundingBox([]float64{0.1, 0.3}, []float64{0.6, 0.8}, true, model.Resolution{Width: 100, Height: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected a box")
	}

	want := model.BoundingBox{10, 10, 20, 10}
	for i := range want {
		if !almost(box[i], want[i]) {
			t.Errorf("box[%d] = %f, want %f", i, box[i], want[i])
		}
	}
}

func TestComputeBoundingBoxRelativeRequiresResolution(t *testing.T) {
	_, _, err := ComputeBoundingBox([]float64{0.1, 0.3}, []float64{0.2, 0.4}, true, model.Resolution{})
	if err != ErrResolutionRequired {
		t.Errorf("expected ErrResolutionRequired, got %v", err)
	}
}

func TestComputeBoundingBoxWithinFrame(t *testing.T) {
	res := model.Resolution{Width: 640, Height: 480}
	box, ok, err := ComputeBoundingBox([]float64{-0.5, 0.4, 1.8}, []float64{0.1, 0.7, 1.3}, true, res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected a box")
	}

	if box.Width() <= 0 || box.Height() <= 0 {
		t.Errorf("box extent must be positive, got %fx%f", box.Width(), box.Height())
	}
	if box.TopX() < 0 || box.TopX()+box.Width() > float64(res.Width) {
		t.Errorf("box x span [%f, %f] outside frame width %d", box.TopX(), box.TopX()+box.Width(), res.Width)
	}
	if box.TopY() < 0 || box.TopY()+box.Height() > float64(res.Height) {
		t.Errorf("box y span [%f, %f] outside frame height %d", box.TopY(), box.TopY()+box.Height(), res.Height)
	}
}

func TestComputeBoundingBoxZeroTopNudged(t *testing.T) {
	// Box touching the frame edge is valid, but its zero top coordinates
	// are replaced with a small epsilon.
	box, ok, err := ComputeBoundingBox([]float64{0, 0.5}, []float64{0.5, 1}, false, model.Resolution{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected a box")
	}
	if box.TopX() != epsilon {
		t.Errorf("top_x = %g, want %g", box.TopX(), epsilon)
	}
	if box.TopY() != epsilon {
		t.Errorf("top_y = %g, want %g", box.TopY(), epsilon)
	}
	// Width still measured from the original zero corner.
	if !almost(box.Width(), 0.5) {
		t.Errorf("width = %f, want 0.5", box.Width())
	}
}

func TestToCameraSpace(t *testing.T) {
	mesh := scene.Mesh{{X: 1, Y: 0, Z: 0}}
	elementMatrix := math.Translate(0, 0, -5)
	cameraInverse := math.Identity()

	out := ToCameraSpace(mesh, elementMatrix, cameraInverse)

	want := math.Vec3{X: 1, Y: 0, Z: -5}
	if out[0] != want {
		t.Errorf("ToCameraSpace: got %v, want %v", out[0], want)
	}

	// Source mesh must be untouched.
	if mesh[0] != (math.Vec3{X: 1, Y: 0, Z: 0}) {
		t.Errorf("source mesh mutated: %v", mesh[0])
	}
}

// fakeCamera and fakeElement satisfy the scene role interfaces for
// end-to-end projection tests.
type fakeObject struct {
	name   string
	matrix math.Mat4
}

func (o *fakeObject) Name() string            { return o.name }
func (o *fakeObject) SetLocation(v math.Vec3) { o.matrix = math.Translate(v.X, v.Y, v.Z) }
func (o *fakeObject) SetRotation(math.Vec3)   {}
func (o *fakeObject) Matrix() math.Mat4       { return o.matrix }

type fakeCamera struct {
	fakeObject
	corners [4]math.Vec3
}

func (c *fakeCamera) FrustumCorners() [4]math.Vec3 { return c.corners }

type fakeElement struct {
	fakeObject
	mesh scene.Mesh
}

func (e *fakeElement) Mesh() scene.Mesh { return e.mesh }

func TestBoxForElement(t *testing.T) {
	// Host-convention corners at unit depth, pre-negation: right-top,
	// right-bottom, left-bottom, left-top.
	cam := &fakeCamera{
		fakeObject: fakeObject{name: "Camera", matrix: math.Identity()},
		corners: [4]math.Vec3{
			{X: 1, Y: 1, Z: -1},
			{X: 1, Y: -1, Z: -1},
			{X: -1, Y: -1, Z: -1},
			{X: -1, Y: 1, Z: -1},
		},
	}

	// A unit quad facing the camera at depth 2.
	el := &fakeElement{
		fakeObject: fakeObject{name: "Quad", matrix: math.Identity()},
		mesh: scene.Mesh{
			{X: -0.5, Y: -0.5, Z: -2},
			{X: 0.5, Y: -0.5, Z: -2},
			{X: 0.5, Y: 0.5, Z: -2},
			{X: -0.5, Y: 0.5, Z: -2},
		},
	}

	box, ok, err := BoxForElement(cam, el, false, model.Resolution{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected a box")
	}

	// Frame spans [-2, 2] at depth 2, so the quad covers [0.375, 0.625].
	want := model.BoundingBox{0.375, 0.375, 0.25, 0.25}
	for i := range want {
		if !almost(box[i], want[i]) {
			t.Errorf("box[%d] = %f, want %f", i, box[i], want[i])
		}
	}
}

func TestBoxForElementBehindCamera(t *testing.T) {
	cam := &fakeCamera{
		fakeObject: fakeObject{name: "Camera", matrix: math.Identity()},
		corners: [4]math.Vec3{
			{X: 1, Y: 1, Z: -1},
			{X: 1, Y: -1, Z: -1},
			{X: -1, Y: -1, Z: -1},
			{X: -1, Y: 1, Z: -1},
		},
	}

	el := &fakeElement{
		fakeObject: fakeObject{name: "Quad", matrix: math.Identity()},
		mesh: scene.Mesh{
			{X: -0.5, Y: -0.5, Z: 2},
			{X: 0.5, Y: 0.5, Z: 2},
		},
	}

	_, ok, err := BoxForElement(cam, el, false, model.Resolution{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected no box for element behind the camera")
	}
}
