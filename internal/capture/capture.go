// Package capture paces frame sampling: it names frames, hands them to a
// Saver, shakes the camera between samples and moves the camera holder
// toward its target.
package capture

import (
	"fmt"
	"math/rand/v2"

	"face-synth/internal/mathutil"
	"face-synth/internal/scene"

	"github.com/rs/zerolog"
)

// Request is everything a Saver receives for one sampled frame.
type Request struct {
	Filename     string
	Iteration    int
	Frame        int
	Width        int
	Height       int
	OutputFolder string
	Quality      int
	SaveImage    bool
	SaveData     bool
	Snapshot     scene.Snapshot
}

// Saver writes a sampled frame (image and/or annotation data).
// Calls are synchronous; the driver does not retry.
type Saver interface {
	Save(req Request) error
}

// SaverFunc adapts a function to Saver.
type SaverFunc func(req Request) error

func (f SaverFunc) Save(req Request) error { return f(req) }

// Filename returns the frame name "image_<iteration:06>_<frame:03>".
func Filename(iteration, frame int) string {
	return fmt.Sprintf("image_%06d_%03d", iteration, frame)
}

// Settings are the per-run capture parameters.
type Settings struct {
	Width          int
	Height         int
	Quality        int
	OutputFolder   string
	SaveImage      bool
	SaveData       bool
	ShakeMagnitude float64
}

// Driver owns the frame counter and the Saver.
type Driver struct {
	settings  Settings
	saver     Saver
	scene     *scene.State
	handles   scene.Handles
	rng       *rand.Rand
	logger    zerolog.Logger
	iteration int
	frame     int
}

// NewDriver returns a driver sampling st through saver.
func NewDriver(s Settings, saver Saver, st *scene.State, h scene.Handles, rng *rand.Rand, logger zerolog.Logger) *Driver {
	return &Driver{
		settings: s,
		saver:    saver,
		scene:    st,
		handles:  h,
		rng:      rng,
		logger:   logger,
	}
}

// SetIteration selects the iteration embedded in subsequent filenames.
func (d *Driver) SetIteration(i int) { d.iteration = i }

// ResetFrames restarts the frame counter at 0.
func (d *Driver) ResetFrames() { d.frame = 0 }

// Frame returns the index the next capture will use.
func (d *Driver) Frame() int { return d.frame }

// Capture saves the current frame and advances the frame counter.
// A Saver error is logged and otherwise ignored.
func (d *Driver) Capture() {
	req := Request{
		Filename:     Filename(d.iteration, d.frame),
		Iteration:    d.iteration,
		Frame:        d.frame,
		Width:        d.settings.Width,
		Height:       d.settings.Height,
		OutputFolder: d.settings.OutputFolder,
		Quality:      d.settings.Quality,
		SaveImage:    d.settings.SaveImage,
		SaveData:     d.settings.SaveData,
		Snapshot:     d.scene.Snapshot(d.handles),
	}
	if err := d.saver.Save(req); err != nil {
		d.logger.Error().Err(err).Str("file", req.Filename).Msg("capture failed")
	}
	d.logger.Trace().Str("file", req.Filename).Msg("captured")
	d.frame++
}

// Shake adds a random offset in [-magnitude, magnitude] to each local Euler
// angle of the camera. Offsets accumulate across calls.
func (d *Driver) Shake() {
	m := d.settings.ShakeMagnitude
	rx := mathutil.RandRange(d.rng, -1, 1) * m
	ry := mathutil.RandRange(d.rng, -1, 1) * m
	rz := mathutil.RandRange(d.rng, -1, 1) * m
	e := d.scene.LocalEulerAngles(d.handles.Camera)
	d.scene.SetLocalEulerAngles(d.handles.Camera, e.Add(mathutil.Vec3{rx, ry, rz}))
}
