// Package render drives the dataset sweep: for every snapshot and
// background it poses the scene, triggers the host render, annotates the
// frame and appends the result to the persisted dataset.
package render

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/calligo/synthset/internal/annotation"
	"github.com/calligo/synthset/internal/config"
	"github.com/calligo/synthset/internal/dataset"
	"github.com/calligo/synthset/internal/debug"
	"github.com/calligo/synthset/internal/diag"
	"github.com/calligo/synthset/internal/model"
	"github.com/calligo/synthset/internal/scene"
)

// FrameName derives the output file name of one capture from the snapshot
// id and the background index. It is the only source of frame names, so
// re-runs over the same sweep and backgrounds are collision-free.
func FrameName(id uuid.UUID, backgroundIndex int) string {
	return fmt.Sprintf("%x_%04d.png", id[:], backgroundIndex)
}

// Generator runs the full sweep against one scene.
type Generator struct {
	scene   *scene.Scene
	builder *annotation.Builder
	cfg     *config.Config
	diags   *diag.Recorder
	log     *zap.Logger
}

// NewGenerator wires a generator. log may be nil.
func NewGenerator(s *scene.Scene, cfg *config.Config, diags *diag.Recorder, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		scene:   s,
		builder: annotation.NewBuilder(diags),
		cfg:     cfg,
		diags:   diags,
		log:     log,
	}
}

// Run executes the sweep in order and returns the accumulated dataset.
// Annotations are appended to the metadata file as they are produced.
// Render and write failures abort the run; background and visibility
// conditions never do.
func (g *Generator) Run(snapshots []model.Snapshot) (*model.Dataset, error) {
	splitPath := filepath.Join(g.cfg.Render.TargetPath, g.cfg.Render.Split)

	backgrounds := ResolveBackgrounds(g.cfg.Scene.BackgroundDir, g.cfg.Scene.BackgroundExtensions, g.diags)
	// The sentinel empty path keeps exactly one solid-color pass per
	// snapshot when no backgrounds are available.
	passes := backgrounds
	if len(passes) == 0 {
		passes = []string{""}
	}

	var done map[string]model.Annotation
	if g.cfg.Render.Resume {
		existing, err := dataset.Read(dataset.MetadataPath(splitPath))
		if err != nil {
			return nil, fmt.Errorf("reading metadata for resume: %w", err)
		}
		done = make(map[string]model.Annotation, len(existing))
		for _, a := range existing {
			done[a.FileName] = a
		}
	}

	writer, err := dataset.NewWriter(splitPath, g.cfg.Render.Resume)
	if err != nil {
		return nil, err
	}
	defer writer.Close()

	categories := g.scene.CategoryIDs(g.cfg.Scene.Categories)
	ds := &model.Dataset{Path: splitPath}

	for _, snap := range snapshots {
		g.scene.PrepareSnapshot(snap)

		for i, background := range passes {
			name := FrameName(snap.ID, i)

			if prev, ok := done[name]; ok {
				g.diags.Info(diag.CodeFrameSkipped, "frame already in metadata, skipping",
					zap.String("frame", name))
				ds.Annotations = append(ds.Annotations, prev)
				continue
			}

			g.scene.ApplyBackground(background)

			framePath := filepath.Join(splitPath, name)
			if err := g.scene.Host.Render(framePath); err != nil {
				return nil, fmt.Errorf("rendering %s: %w", name, err)
			}

			// Annotate against the resolution actually rendered, which
			// may follow the background image rather than the config.
			resolution := g.scene.Host.Resolution()
			ann, err := g.builder.Annotate(g.scene.Cameras, g.scene.Elements, categories, name, true, resolution)
			if err != nil {
				return nil, err
			}

			if g.cfg.Render.Labels {
				labelPath := annotation.LabelPath(splitPath, name)
				if err := annotation.WriteLabelFile(labelPath, ann, resolution); err != nil {
					return nil, err
				}
			}

			if g.cfg.Render.Debug {
				if err := debug.DrawAnnotation(splitPath, ann); err != nil {
					g.log.Warn("overlay drawing failed", zap.String("frame", name), zap.Error(err))
				}
			}

			if err := writer.Append(ann); err != nil {
				return nil, err
			}
			ds.Annotations = append(ds.Annotations, ann)

			g.log.Debug("captured frame",
				zap.String("frame", name),
				zap.Int("objects", len(ann.Objects.BBox)))
		}
	}

	if g.cfg.Render.Debug {
		if err := debug.AssembleAnimation(splitPath, ds, g.diags); err != nil {
			g.log.Warn("animation assembly failed", zap.Error(err))
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("closing metadata file: %w", err)
	}
	return ds, nil
}
