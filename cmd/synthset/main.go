// Package main is the entry point for the synthset dataset generator.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/calligo/synthset/internal/config"
	"github.com/calligo/synthset/internal/diag"
	"github.com/calligo/synthset/internal/flathost"
	"github.com/calligo/synthset/internal/logger"
	"github.com/calligo/synthset/internal/model"
	"github.com/calligo/synthset/internal/render"
	"github.com/calligo/synthset/internal/scene"
	"github.com/calligo/synthset/internal/sweep"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== synthset dataset generator ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	host, err := flathost.Load(cfg.Scene.Path)
	if err != nil {
		logger.Error("failed to load scene", zap.Error(err))
		os.Exit(1)
	}
	host.SetResolution(cfg.Render.Width, cfg.Render.Height)

	diags := diag.New(logger.Log)
	base := model.Resolution{Width: cfg.Render.Width, Height: cfg.Render.Height}
	s, err := scene.New(host, cfg.Scene, base, diags)
	if err != nil {
		logger.Error("failed to resolve scene roles", zap.Error(err))
		os.Exit(1)
	}

	snapshots := sweep.Generate(cfg.Sweep)
	logger.Info("sweep generated",
		zap.Int("snapshots", len(snapshots)),
		zap.String("split", cfg.Render.Split))

	ds, err := render.NewGenerator(s, cfg, diags, logger.Log).Run(snapshots)
	if err != nil {
		logger.Error("generation failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("generation finished",
		zap.String("dataset", ds.Path),
		zap.Int("frames", len(ds.Annotations)),
		zap.Int("warnings", len(diags.Entries())))
}
