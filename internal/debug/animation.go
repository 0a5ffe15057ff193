package debug

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"path/filepath"

	"github.com/calligo/synthset/internal/diag"
	"github.com/calligo/synthset/internal/model"
)

// AnimationFilename is the name of the assembled overlay animation.
const AnimationFilename = "annotation_animation.gif"

// frameDelay is the per-frame delay in hundredths of a second.
const frameDelay = 50

// AssembleAnimation builds an animated GIF from the annotated frames of a
// dataset, in annotation order. Frames whose overlay is missing are
// recorded as diagnostics and skipped; the animation is only written when
// at least one frame exists.
func AssembleAnimation(dir string, ds *model.Dataset, diags *diag.Recorder) error {
	anim := &gif.GIF{}

	for _, a := range ds.Annotations {
		path := AnnotatedPath(dir, a.FileName)
		src, err := loadPNG(path)
		if err != nil {
			diags.Warn(diag.CodeAnnotatedFrameMissing,
				"annotated frame missing, skipping in animation")
			continue
		}

		pal := image.NewPaletted(src.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(pal, src.Bounds(), src, src.Bounds().Min)

		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, frameDelay)
	}

	if len(anim.Image) == 0 {
		diags.Warn(diag.CodeAnnotatedFrameMissing,
			"no annotated frames found, skipping animation")
		return nil
	}

	out := filepath.Join(dir, AnimationFilename)
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating animation %s: %w", out, err)
	}
	defer f.Close()

	if err := gif.EncodeAll(f, anim); err != nil {
		return fmt.Errorf("encoding animation %s: %w", out, err)
	}
	return nil
}
