// Package landmark loads, centers and sanity-checks the sticker layout the
// face model is annotated with.
package landmark

import (
	"strings"

	"face-synth/internal/mathutil"
)

// Index positions of the stickers within a Set.
const (
	LeftEye = iota
	NoseTip
	RightEye
	LeftTriangle
	MiddleTriangle
	RightTriangle
	Top

	Count
)

// Names are the sticker aliases, in Set order.
var Names = [Count]string{
	"lefteye",
	"nosetip",
	"righteye",
	"left_triangle",
	"middle_triangle",
	"right_triangle",
	"top",
}

// Set holds one position per sticker, in the scene's left-handed frame.
type Set [Count]mathutil.Vec3

// Default returns the built-in sticker layout.
func Default() Set {
	return Set{
		{2.44, 5.69, 0},
		{0.13, 7.34, -1.21},
		{-2.2, 6.12, 0.02},
		{3.5, 9.75, 4.66},
		{-0.36, 9.33, 6.68},
		{-3.77, 9.74, 4.87},
		{-0.53, 0, 10.98},
	}
}

// IndexOf returns the Set index for an alias, matched case-insensitively.
func IndexOf(alias string) (int, bool) {
	for i, n := range Names {
		if strings.EqualFold(n, alias) {
			return i, true
		}
	}
	return -1, false
}
