// Package controller runs the capture iterations: it owns the scene and
// steps the rotation machine, camera holder and capture driver once per tick.
package controller

import (
	"context"
	"math/rand/v2"

	"face-synth/internal/capture"
	"face-synth/internal/config"
	"face-synth/internal/landmark"
	"face-synth/internal/mathutil"
	"face-synth/internal/pose"
	"face-synth/internal/rotation"
	"face-synth/internal/scene"

	"github.com/rs/zerolog"
)

// Controller sequences iterations. It is not safe for concurrent use; every
// call happens on the tick loop.
type Controller struct {
	scene      *scene.State
	handles    scene.Handles
	machine    *rotation.Machine
	driver     *capture.Driver
	mover      *capture.RigMover
	randomizer *pose.Randomizer
	logger     zerolog.Logger

	dt         float64
	iterations int
	iteration  int
	complete   bool
	ticks      int
}

// New places the validated, centered stickers on a fresh scene, puts the
// face at the origin and draws the first pose.
func New(cfg config.Config, stickers landmark.Set, saver capture.Saver, rng *rand.Rand, logger zerolog.Logger) *Controller {
	st, h := scene.New()
	for i, sh := range h.Stickers {
		st.SetLocalPosition(sh, stickers[i])
	}
	st.SetPosition(h.Face, mathutil.Zero)
	st.SetEulerAngles(h.Face, mathutil.Zero)

	c := &Controller{
		scene:   st,
		handles: h,
		machine: rotation.NewMachine(rotation.Params{
			TargetAngle:   cfg.Timing.FinalFaceAngle,
			Speed:         cfg.Timing.Speed,
			FixedTimestep: cfg.Timing.FixedTimestep,
		}),
		driver: capture.NewDriver(capture.Settings{
			Width:          cfg.Capture.Width,
			Height:         cfg.Capture.Height,
			Quality:        cfg.Capture.Quality,
			OutputFolder:   cfg.OutputFolder,
			SaveImage:      cfg.SaveImage,
			SaveData:       cfg.SaveData,
			ShakeMagnitude: cfg.Timing.ShakeMagnitude,
		}, saver, st, h, rng, logger),
		mover: &capture.RigMover{Speed: cfg.Timing.CamSpeed},
		randomizer: pose.New(rng, pose.Options{
			ScaleFace:    cfg.ScaleFace,
			ShiftCamera:  cfg.ShiftCamera,
			RotateCamera: cfg.RotateCamera,
		}, stickers),
		logger:     logger,
		dt:         cfg.Timing.FixedTimestep,
		iterations: cfg.Iterations,
	}
	c.randomizer.Apply(st, h, c.mover)
	return c
}

// Scene exposes the owned scene and its handles for inspection.
func (c *Controller) Scene() (*scene.State, scene.Handles) { return c.scene, c.handles }

// Iteration returns the index of the iteration in progress.
func (c *Controller) Iteration() int { return c.iteration }

// Stage returns the rotation stage in progress.
func (c *Controller) Stage() rotation.Stage { return c.machine.Stage() }

// Ticks returns how many ticks have run.
func (c *Controller) Ticks() int { return c.ticks }

// Tick advances the simulation by one fixed step and reports whether all
// iterations are done.
func (c *Controller) Tick() bool {
	if c.iteration >= c.iterations {
		c.logger.Info().Int("iterations", c.iterations).Msg("Done!")
		return true
	}
	c.ticks++

	if c.complete {
		c.logger.Info().Int("iteration", c.iteration).Msgf("Finished iteration: %d", c.iteration)
		c.iteration++
		c.driver.SetIteration(c.iteration)
		c.driver.ResetFrames()
		c.complete = false
		c.randomizer.Apply(c.scene, c.handles, c.mover)
		c.machine.Reset()
		return false
	}

	ev := c.machine.Tick(c.scene, c.handles.Face)
	switch ev {
	case rotation.IterationComplete:
		c.complete = true
	case rotation.StageStarted, rotation.StageFinished:
		c.logger.Debug().Int("iteration", c.iteration).Stringer("stage", c.machine.Stage()).
			Stringer("event", ev).Msg("rotation")
	}
	c.mover.Advance(c.scene, c.handles.Rig, c.dt)
	c.machine.FrameEnd(c.scene, c.handles.Face, c.driver)
	return false
}

// Run ticks until every iteration is done. Cancellation is honoured only
// between iterations; a started rotation always runs to completion.
func (c *Controller) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for {
		if c.complete {
			if err := ctx.Err(); err != nil {
				c.logger.Warn().Int("iteration", c.iteration).Msg("Interrupted between iterations")
				return err
			}
		}
		if c.Tick() {
			return nil
		}
	}
}
