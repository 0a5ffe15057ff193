// Package sweep expands sweep configuration into the ordered sequence of
// snapshots that drives one dataset-generation run.
package sweep

import (
	"github.com/google/uuid"

	"github.com/calligo/synthset/internal/config"
	"github.com/calligo/synthset/internal/model"
)

// Values expands a range into its sampled values, inclusive of both ends.
// A non-positive step yields only the start value.
func Values(r config.Range) []float64 {
	if r.Step <= 0 || r.To <= r.From {
		return []float64{r.From}
	}

	var vals []float64
	// Tolerance keeps the end value included despite accumulation error.
	for v := r.From; v <= r.To+r.Step*1e-9; v += r.Step {
		vals = append(vals, v)
	}
	return vals
}

// Generate produces the full cartesian sweep over yaw, roll, camera height
// and light energy, in that nesting order. Every snapshot gets a fresh
// unique id.
func Generate(cfg config.SweepConfig) []model.Snapshot {
	var snapshots []model.Snapshot
	for _, yaw := range Values(cfg.Yaw) {
		for _, roll := range Values(cfg.Roll) {
			for _, height := range Values(cfg.CameraHeight) {
				for _, energy := range Values(cfg.LightEnergy) {
					snapshots = append(snapshots, model.Snapshot{
						ID:           uuid.New(),
						Yaw:          yaw,
						Roll:         roll,
						CameraHeight: height,
						LightEnergy:  energy,
					})
				}
			}
		}
	}
	return snapshots
}
