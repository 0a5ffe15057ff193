// Package model holds the data types shared across the dataset pipeline:
// snapshots, bounding boxes, annotations and the dataset itself.
package model

import "github.com/google/uuid"

// Resolution is a render target size in pixels.
type Resolution struct {
	Width  int
	Height int
}

// BoundingBox is an axis-aligned 2D box as (top_x, top_y, width, height),
// measured from the top-left corner. Units are either normalized [0,1] or
// pixels of a target resolution, depending on how it was computed.
type BoundingBox [4]float64

// TopX returns the x coordinate of the top-left corner.
func (b BoundingBox) TopX() float64 { return b[0] }

// TopY returns the y coordinate of the top-left corner.
func (b BoundingBox) TopY() float64 { return b[1] }

// Width returns the box width.
func (b BoundingBox) Width() float64 { return b[2] }

// Height returns the box height.
func (b BoundingBox) Height() float64 { return b[3] }

// Snapshot is one sampled scene pose in a sweep.
type Snapshot struct {
	ID           uuid.UUID
	Yaw          float64
	Roll         float64
	CameraHeight float64
	LightEnergy  float64
}

// SnapshotObjects holds the detected objects of one rendered frame.
// BBox and Categories are parallel: entry i of both describes one object.
type SnapshotObjects struct {
	BBox       []BoundingBox `json:"bbox"`
	Categories []int         `json:"categories"`
}

// Annotation labels one rendered frame.
type Annotation struct {
	FileName string          `json:"file_name"`
	Objects  SnapshotObjects `json:"objects"`
}

// Dataset is the accumulated result of one sweep run.
type Dataset struct {
	Path        string
	Annotations []Annotation
}
