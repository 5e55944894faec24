package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"face-synth/internal/background"
	"face-synth/internal/config"
	"face-synth/internal/controller"
	"face-synth/internal/landmark"
	"face-synth/internal/logging"
	"face-synth/internal/mathutil"
	"face-synth/internal/synth"

	"github.com/rs/zerolog"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

func main() {
	logger := logging.Init("face-synth")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], logger)
	stop()

	os.Exit(code)
}

func run(ctx context.Context, args []string, logger zerolog.Logger) int {
	cfg, err := config.Load(args)
	if err != nil {
		logger.Error().Err(err).Msg("Error loading config")
		return exitFailure
	}
	cfg.Log(logger)

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.Info().Uint64("seed", seed).Msg("Random seed")

	stickers, err := landmark.Load(cfg.InputFile, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Error loading stickers")
		return exitFailure
	}
	stickers = landmark.Center(stickers)
	if err := landmark.Validate(stickers, logger); err != nil {
		return exitFailure
	}

	plates := background.BuildIndex(cfg.BackgroundDir)
	if cfg.BackgroundDir != "" {
		logger.Info().Int("count", plates.Len()).Msg("Background plates indexed")
	}
	writer := synth.NewWriter(background.NewCache(plates, logger), logger)

	start := time.Now()
	ctl := controller.New(cfg, stickers, writer, mathutil.NewRand(seed), logger)
	runErr := ctl.Run(ctx)

	entries := writer.Manifest()
	logger.Info().
		Int("iterations", ctl.Iteration()).
		Int("frames", len(entries)).
		Dur("elapsed", time.Since(start)).
		Msg("Capture finished")

	if cfg.SaveImage || cfg.SaveData {
		writeManifest(cfg.OutputFolder, entries, logger)
	}

	if errors.Is(runErr, context.Canceled) {
		logger.Warn().Msg("Interrupted")
		return exitInterrupted
	}
	if runErr != nil {
		logger.Error().Err(runErr).Msg("Capture aborted")
		return exitFailure
	}
	return exitOK
}

func writeManifest(dir string, entries []synth.ManifestEntry, logger zerolog.Logger) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Error().Err(err).Str("dir", dir).Msg("Manifest not written")
		return
	}
	path := filepath.Join(dir, "manifest.json")
	if err := synth.WriteManifest(path, entries); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Manifest not written")
		return
	}
	logger.Info().Str("path", path).Int("entries", len(entries)).Msg("Manifest written")
}
