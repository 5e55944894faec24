package main

import (
	"fmt"
	"os"

	"face-synth/internal/config"
	"face-synth/internal/landmark"
	"face-synth/internal/logging"
	"face-synth/internal/mathutil"
	"face-synth/internal/pose"
	"face-synth/internal/scene"
	"face-synth/internal/synth"

	"github.com/rs/zerolog"
)

func main() {
	logger := logging.Init("inspectstickers")
	os.Exit(run(os.Args[1:], logger))
}

func run(args []string, logger zerolog.Logger) int {
	path := config.DefaultInputFile
	if v, ok := config.GetArg(args, "-input_file"); ok && v != "" {
		path = v
	}

	raw, err := landmark.Load(path, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR loading %s: %v\n", path, err)
		return 1
	}
	centered := landmark.Center(raw)

	fmt.Printf("=== %s ===\n\n", path)
	fmt.Printf("Pivot: %s\n\n", fmtVec(landmark.Pivot(raw)))
	fmt.Printf("  %-16s %-28s %-28s\n", "sticker", "loaded", "centered")
	for i, name := range landmark.Names {
		fmt.Printf("  %-16s %-28s %-28s\n", name, fmtVec(raw[i]), fmtVec(centered[i]))
	}
	fmt.Println()

	if err := landmark.Validate(centered, logger); err != nil {
		fmt.Printf("Validation: FAILED (%v)\n", err)
		return 1
	}
	fmt.Println("Validation: OK")
	fmt.Println()

	// Projection from the resting camera holder at the default capture size.
	st, h := scene.New()
	for i, sh := range h.Stickers {
		st.SetLocalPosition(sh, centered[i])
	}
	st.SetPosition(h.Rig, pose.RigInitialPosition)
	st.SetEulerAngles(h.Rig, pose.RigInitialRotation)

	c := config.DefaultCapture()
	fmt.Printf("Projection at %dx%d:\n", c.Width, c.Height)
	for _, lm := range synth.ProjectLandmarks(st.Snapshot(h), c.Width, c.Height) {
		state := "in frame"
		switch {
		case !lm.InFront:
			state = "behind camera"
		case !lm.InFrame:
			state = "out of frame"
		}
		fmt.Printf("  %-16s px=(%7.1f, %7.1f) depth=%6.2f  %s\n", lm.Name, lm.Pixel[0], lm.Pixel[1], lm.Depth, state)
	}
	return 0
}

func fmtVec(v mathutil.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v[0], v[1], v[2])
}
