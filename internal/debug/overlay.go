// Package debug provides annotation visualization: box overlays on rendered
// frames and an animated sequence over a whole dataset. It is a passive
// collaborator; the pipeline never depends on its success.
package debug

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/calligo/synthset/internal/model"
)

// AnnotatedSuffix is appended to a frame's stem for its overlay image.
const AnnotatedSuffix = "_annotated"

var boxColor = color.RGBA{R: 255, A: 255}

// AnnotatedPath returns the overlay path for a rendered frame name.
func AnnotatedPath(dir, fileName string) string {
	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	return filepath.Join(dir, stem+AnnotatedSuffix+".png")
}

// DrawAnnotation draws each bounding box and its category label onto the
// rendered frame and saves the result next to it with the annotated suffix.
// Boxes must be in pixel units of the rendered frame.
func DrawAnnotation(dir string, a model.Annotation) error {
	src, err := loadPNG(filepath.Join(dir, a.FileName))
	if err != nil {
		return err
	}

	img := image.NewRGBA(src.Bounds())
	draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)

	for i, box := range a.Objects.BBox {
		x0 := int(box.TopX())
		y0 := int(box.TopY())
		x1 := int(box.TopX() + box.Width())
		y1 := int(box.TopY() + box.Height())

		drawRect(img, x0, y0, x1, y1)

		label := fmt.Sprintf("%d (%.2f, %.2f)", a.Objects.Categories[i], box.TopX(), box.TopY())
		drawLabel(img, x0, y0, label)
	}

	out := AnnotatedPath(dir, a.FileName)
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating overlay %s: %w", out, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding overlay %s: %w", out, err)
	}
	return nil
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening frame %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding frame %s: %w", path, err)
	}
	return img, nil
}

// drawRect outlines the rectangle with a 2px border, clipped to the image.
func drawRect(img *image.RGBA, x0, y0, x1, y1 int) {
	for t := 0; t < 2; t++ {
		hline(img, x0, x1, y0+t)
		hline(img, x0, x1, y1-t)
		vline(img, x0+t, y0, y1)
		vline(img, x1-t, y0, y1)
	}
}

func hline(img *image.RGBA, x0, x1, y int) {
	b := img.Bounds()
	if y < b.Min.Y || y >= b.Max.Y {
		return
	}
	for x := max(x0, b.Min.X); x <= min(x1, b.Max.X-1); x++ {
		img.SetRGBA(x, y, boxColor)
	}
}

func vline(img *image.RGBA, x, y0, y1 int) {
	b := img.Bounds()
	if x < b.Min.X || x >= b.Max.X {
		return
	}
	for y := max(y0, b.Min.Y); y <= min(y1, b.Max.Y-1); y++ {
		img.SetRGBA(x, y, boxColor)
	}
}

// drawLabel renders the label just above the box corner, or inside the
// frame when the box touches the top edge.
func drawLabel(img *image.RGBA, x, y int, label string) {
	face := basicfont.Face7x13
	ty := y - 3
	if ty-face.Ascent < img.Bounds().Min.Y {
		ty = y + face.Height
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(boxColor),
		Face: face,
		Dot:  fixed.P(x, ty),
	}
	d.DrawString(label)
}
