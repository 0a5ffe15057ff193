// annoview is a CLI utility for inspecting generated dataset annotations.
package main

import (
	"fmt"
	"os"

	"github.com/calligo/synthset/internal/dataset"
	"github.com/calligo/synthset/internal/debug"
	"github.com/calligo/synthset/internal/diag"
	"github.com/calligo/synthset/internal/model"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "overlay":
		cmdOverlay(args)
	case "animate":
		cmdAnimate(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`annoview - dataset annotation viewer

Usage:
  annoview <command> <dataset-dir>

Commands:
  info <dir>       Summarize the dataset's metadata file
  overlay <dir>    Draw bounding-box overlays next to every frame
  animate <dir>    Assemble the overlay frames into an animation

Examples:
  annoview info ./out/train
  annoview overlay ./out/train
  annoview animate ./out/train`)
}

func loadDataset(args []string) (*model.Dataset, string) {
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}
	dir := args[0]

	annotations, err := dataset.Read(dataset.MetadataPath(dir))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(annotations) == 0 {
		fmt.Fprintf(os.Stderr, "No annotations found in %s\n", dir)
		os.Exit(1)
	}
	return &model.Dataset{Path: dir, Annotations: annotations}, dir
}

func cmdInfo(args []string) {
	ds, dir := loadDataset(args)

	objects := 0
	for _, a := range ds.Annotations {
		objects += len(a.Objects.BBox)
	}
	fmt.Printf("Dataset: %s\n", dir)
	fmt.Printf("Frames:  %d\n", len(ds.Annotations))
	fmt.Printf("Objects: %d\n", objects)
}

func cmdOverlay(args []string) {
	ds, dir := loadDataset(args)

	drawn := 0
	for _, a := range ds.Annotations {
		if err := debug.DrawAnnotation(dir, a); err != nil {
			fmt.Fprintf(os.Stderr, "Skipping %s: %v\n", a.FileName, err)
			continue
		}
		drawn++
	}
	fmt.Printf("Drew %d of %d overlays\n", drawn, len(ds.Annotations))
}

func cmdAnimate(args []string) {
	ds, dir := loadDataset(args)

	diags := diag.New(nil)
	if err := debug.AssembleAnimation(dir, ds, diags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if n := diags.Count(diag.CodeAnnotatedFrameMissing); n > 0 {
		fmt.Fprintf(os.Stderr, "Skipped %d missing annotated frames (run overlay first)\n", n)
	}
	fmt.Printf("Wrote %s\n", debug.AnimationFilename)
}
