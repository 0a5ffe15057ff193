package annotation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/calligo/synthset/internal/model"
)

// LabelPath returns the label file path for an image file name: same stem,
// .txt extension, under dir.
func LabelPath(dir, imageName string) string {
	stem := strings.TrimSuffix(imageName, filepath.Ext(imageName))
	return filepath.Join(dir, stem+".txt")
}

// WriteLabelFile writes an annotation in the normalized center-box text
// convention: one line per object, "<category> <cx> <cy> <w> <h>", the four
// geometric values normalized by the image dimensions and formatted to six
// decimals. The annotation's boxes must be in pixel units of the given
// resolution; box fields three and four are width and height, never the
// max corner. The file is written fresh, creating the directory if absent.
func WriteLabelFile(path string, a model.Annotation, resolution model.Resolution) error {
	if resolution.Width <= 0 || resolution.Height <= 0 {
		return fmt.Errorf("writing labels for %s: invalid resolution %dx%d",
			a.FileName, resolution.Width, resolution.Height)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating label dir: %w", err)
	}

	var sb strings.Builder
	w := float64(resolution.Width)
	h := float64(resolution.Height)
	for i, box := range a.Objects.BBox {
		cx := (box.TopX() + box.Width()/2) / w
		cy := (box.TopY() + box.Height()/2) / h
		bw := box.Width() / w
		bh := box.Height() / h

		fmt.Fprintf(&sb, "%d %.6f %.6f %.6f %.6f\n", a.Objects.Categories[i], cx, cy, bw, bh)
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("writing label file %s: %w", path, err)
	}
	return nil
}
