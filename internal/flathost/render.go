package flathost

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/calligo/synthset/internal/projection"
	"github.com/calligo/synthset/pkg/math"
)

// Render rasterizes a preview frame at the current resolution: backdrop or
// solid fill, plus one splat per visible element vertex, and writes it as
// PNG to path.
func (h *Host) Render(path string) error {
	img := image.NewRGBA(image.Rect(0, 0, h.res.Width, h.res.Height))

	if h.backdrop != nil {
		draw.Draw(img, img.Bounds(), h.backdrop, h.backdrop.Bounds().Min, draw.Src)
	} else {
		fill := color.RGBA{
			R: channel(h.solid[0]),
			G: channel(h.solid[1]),
			B: channel(h.solid[2]),
			A: 255,
		}
		draw.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)
	}

	h.splatElements(img)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating render dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating render file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding render %s: %w", path, err)
	}
	return nil
}

// splatElements marks every visible mesh vertex on the frame. Splat
// brightness follows the first light's energy.
func (h *Host) splatElements(img *image.RGBA) {
	var cam *cameraHandle
	brightness := 1.0
	for _, n := range h.order {
		switch n.kind {
		case KindCamera:
			if cam == nil {
				cam = &cameraHandle{objectHandle: (*objectHandle)(n), host: h}
			}
		case KindLight:
			if n.energy > 0 {
				brightness = n.energy / 1000
				if brightness > 1 {
					brightness = 1
				}
				if brightness < 0.2 {
					brightness = 0.2
				}
			}
		}
	}
	if cam == nil {
		return
	}

	inverse := cam.Matrix().NormalizeScale().Inverse()
	corners := cam.FrustumCorners()
	var frame [4]math.Vec3
	for i := range corners {
		frame[i] = corners[i].Neg()
	}

	splat := color.RGBA{R: channel(brightness), G: channel(brightness), B: channel(brightness), A: 255}

	for _, n := range h.order {
		if n.kind != KindMesh {
			continue
		}
		verts := projection.ToCameraSpace(n.mesh, n.matrix(), inverse)
		xs, ys := projection.NormalizedCoordinates(verts, frame)
		for i := range xs {
			px := int(xs[i] * float64(h.res.Width))
			py := int((1 - ys[i]) * float64(h.res.Height))
			setSplat(img, px, py, splat)
		}
	}
}

// setSplat draws a 3x3 marker clipped to the image bounds.
func setSplat(img *image.RGBA, x, y int, c color.RGBA) {
	b := img.Bounds()
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			px, py := x+dx, y+dy
			if px >= b.Min.X && px < b.Max.X && py >= b.Min.Y && py < b.Max.Y {
				img.SetRGBA(px, py, c)
			}
		}
	}
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
