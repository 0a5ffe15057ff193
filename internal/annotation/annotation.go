// Package annotation assembles per-frame object annotations from projected
// bounding boxes.
package annotation

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/calligo/synthset/internal/diag"
	"github.com/calligo/synthset/internal/model"
	"github.com/calligo/synthset/internal/projection"
	"github.com/calligo/synthset/internal/scene"
)

// Builder produces one Annotation per rendered frame.
type Builder struct {
	diags *diag.Recorder
}

// NewBuilder returns a Builder recording diagnostics to the given recorder.
func NewBuilder(diags *diag.Recorder) *Builder {
	return &Builder{diags: diags}
}

// Annotate computes a bounding box for every element as seen from the first
// camera and assembles them into an annotation for fileName. Elements that
// are not visible are skipped. categories supplies the category id per
// element, parallel to elements; a nil slice falls back to positional
// indices. resolution must be the frame's actual rendered resolution.
func (b *Builder) Annotate(
	cameras []scene.Camera,
	elements []scene.Element,
	categories []int,
	fileName string,
	relative bool,
	resolution model.Resolution,
) (model.Annotation, error) {
	if len(cameras) == 0 {
		return model.Annotation{}, fmt.Errorf("annotating %s: no camera supplied", fileName)
	}
	if len(cameras) > 1 {
		b.diags.Warn(diag.CodeMultipleCameras,
			"multiple cameras are not supported, only the first camera will be used",
			zap.Int("count", len(cameras)))
	}
	camera := cameras[0]

	ann := model.Annotation{
		FileName: fileName,
		Objects: model.SnapshotObjects{
			BBox:       []model.BoundingBox{},
			Categories: []int{},
		},
	}

	for i, element := range elements {
		box, ok, err := projection.BoxForElement(camera, element, relative, resolution)
		if err != nil {
			return model.Annotation{}, fmt.Errorf("annotating %s element %s: %w", fileName, element.Name(), err)
		}
		if !ok {
			continue
		}

		category := i
		if categories != nil {
			category = categories[i]
		}
		ann.Objects.BBox = append(ann.Objects.BBox, box)
		ann.Objects.Categories = append(ann.Objects.Categories, category)
	}

	return ann, nil
}
