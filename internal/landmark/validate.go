package landmark

import (
	"fmt"

	"face-synth/internal/mathutil"

	"github.com/rs/zerolog"
)

// Pivot is the point the layout is centered on: midway between the eyes in
// x and z, level with the top sticker in y.
func Pivot(s Set) mathutil.Vec3 {
	return mathutil.Vec3{
		(s[LeftEye][0] + s[RightEye][0]) / 2,
		s[Top][1],
		(s[LeftEye][2] + s[RightEye][2]) / 2,
	}
}

// Center returns s translated so that its pivot is the origin.
func Center(s Set) Set {
	p := Pivot(s)
	var out Set
	for i, v := range s {
		out[i] = v.Sub(p)
	}
	return out
}

// CheckError reports the first sanity check a layout failed.
type CheckError struct {
	Check  int
	Reason string
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("landmark: sanity check %d failed: %s", e.Check, e.Reason)
}

type check struct {
	reason string
	ok     func(Set) bool
}

var checks = []check{
	{"Left-Eye sticker x smaller than Right-Eye sticker.", func(s Set) bool {
		return s[LeftEye][0] >= s[RightEye][0]
	}},
	{"Left-Triangle sticker x smaller than Right-Triangle sticker.", func(s Set) bool {
		return s[LeftTriangle][0] >= s[RightTriangle][0]
	}},
	{"Top sticker is not centered in y axis.", func(s Set) bool {
		return s[Top][1] == 0
	}},
	{"Nose-Tip sticker is inside of skull.", func(s Set) bool {
		return s[NoseTip][1] >= s[LeftEye][1] && s[NoseTip][1] >= s[RightEye][1]
	}},
	{"Top sticker is not the highest sticker in z direction.", func(s Set) bool {
		return s[Top][2] >= s[MiddleTriangle][2]
	}},
}

// Validate runs the geometric sanity checks on a centered layout and
// returns a *CheckError for the first one that fails.
func Validate(s Set, logger zerolog.Logger) error {
	logger.Info().Msg("Please note: renderer expects input to be in right-handed coordinate system (and internally switches to left-handed).")
	for i, c := range checks {
		if !c.ok(s) {
			err := &CheckError{Check: i + 1, Reason: c.reason}
			logger.Error().Int("check", err.Check).Msg("Sanity check failed. " + c.reason)
			return err
		}
	}
	return nil
}
