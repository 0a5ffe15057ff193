package render

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/calligo/synthset/internal/diag"
)

// ResolveBackgrounds collects the background image paths in dir matching
// the configured extensions, in sorted order so sweeps are reproducible.
// A missing or empty directory is a recoverable configuration condition:
// it is recorded as a diagnostic and yields no paths, which makes the
// sweep fall back to a single solid-color pass per snapshot.
func ResolveBackgrounds(dir string, extensions []string, diags *diag.Recorder) []string {
	if dir == "" {
		diags.Warn(diag.CodeNoBackgroundDir,
			"no background directory configured, renders will use a solid color background")
		return nil
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		diags.Warn(diag.CodeNoBackgroundDir,
			"background path is not a valid directory, renders will use a solid color background",
			zap.String("dir", dir))
		return nil
	}

	var paths []string
	for _, ext := range extensions {
		matches, err := filepath.Glob(filepath.Join(dir, "*."+ext))
		if err != nil {
			// Only malformed patterns error here; treat as a config problem.
			diags.Warn(diag.CodeNoBackgroundDir,
				fmt.Sprintf("invalid background extension %q", ext))
			continue
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		diags.Warn(diag.CodeEmptyBackgroundDir,
			"no background images found, renders will use a solid color background",
			zap.String("dir", dir))
		return nil
	}

	return paths
}
