package debug

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/calligo/synthset/internal/diag"
	"github.com/calligo/synthset/internal/model"
)

func writeFrame(t *testing.T, dir, name string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("creating frame: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding frame: %v", err)
	}
}

func TestAnnotatedPath(t *testing.T) {
	got := AnnotatedPath("out", "ab_0001.png")
	want := filepath.Join("out", "ab_0001_annotated.png")
	if got != want {
		t.Errorf("AnnotatedPath = %q, want %q", got, want)
	}
}

func TestDrawAnnotation(t *testing.T) {
	dir := t.TempDir()
	writeFrame(t, dir, "frame.png", 100, 80)

	ann := model.Annotation{
		FileName: "frame.png",
		Objects: model.SnapshotObjects{
			BBox:       []model.BoundingBox{{20, 30, 40, 20}},
			Categories: []int{1},
		},
	}

	if err := DrawAnnotation(dir, ann); err != nil {
		t.Fatalf("DrawAnnotation: %v", err)
	}

	f, err := os.Open(AnnotatedPath(dir, "frame.png"))
	if err != nil {
		t.Fatalf("opening overlay: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding overlay: %v", err)
	}

	// The box edge at (20, 30) should be red.
	r, g, b, _ := img.At(20, 30).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("box edge pixel = (%d, %d, %d), want red", r>>8, g>>8, b>>8)
	}

	// The box interior should be untouched (black).
	r, _, _, _ = img.At(40, 40).RGBA()
	if r>>8 != 0 {
		t.Errorf("box interior red channel = %d, want 0", r>>8)
	}
}

func TestDrawAnnotationMissingFrame(t *testing.T) {
	ann := model.Annotation{FileName: "missing.png"}
	if err := DrawAnnotation(t.TempDir(), ann); err == nil {
		t.Error("expected error for missing frame")
	}
}

func TestAssembleAnimation(t *testing.T) {
	dir := t.TempDir()

	ds := &model.Dataset{Path: dir}
	for _, name := range []string{"a.png", "b.png"} {
		writeFrame(t, dir, name, 40, 30)
		ann := model.Annotation{
			FileName: name,
			Objects: model.SnapshotObjects{
				BBox:       []model.BoundingBox{{5, 5, 10, 10}},
				Categories: []int{0},
			},
		}
		if err := DrawAnnotation(dir, ann); err != nil {
			t.Fatalf("DrawAnnotation: %v", err)
		}
		ds.Annotations = append(ds.Annotations, ann)
	}

	diags := diag.New(nil)
	if err := AssembleAnimation(dir, ds, diags); err != nil {
		t.Fatalf("AssembleAnimation: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, AnimationFilename)); err != nil {
		t.Errorf("animation file missing: %v", err)
	}
	if diags.Has(diag.CodeAnnotatedFrameMissing) {
		t.Error("unexpected missing-frame diagnostic")
	}
}

func TestAssembleAnimationSkipsMissingFrames(t *testing.T) {
	dir := t.TempDir()

	ds := &model.Dataset{
		Path:        dir,
		Annotations: []model.Annotation{{FileName: "never_rendered.png"}},
	}

	diags := diag.New(nil)
	if err := AssembleAnimation(dir, ds, diags); err != nil {
		t.Fatalf("AssembleAnimation: %v", err)
	}

	if !diags.Has(diag.CodeAnnotatedFrameMissing) {
		t.Error("expected missing-frame diagnostic")
	}
	if _, err := os.Stat(filepath.Join(dir, AnimationFilename)); !os.IsNotExist(err) {
		t.Error("animation should not be written without frames")
	}
}
