// Package pose re-rolls the face, mask and camera placement at the start of
// every iteration.
package pose

import (
	"math/rand/v2"

	"face-synth/internal/capture"
	"face-synth/internal/landmark"
	"face-synth/internal/mathutil"
	"face-synth/internal/scene"
)

// Draw ranges. Mask and camera ranges were tuned against real captures.
var (
	EyeDistance = [2]float64{4, 5.5}
	NoseDrop    = [2]float64{0, 1}
	NoseDepth   = [2]float64{-0.5, 0.5}

	MaskScale = [2]float64{0.7, 1.3}
	MaskRotX  = [2]float64{-10, 10}
	MaskRotY  = [2]float64{-15, 15}
	MaskRotZ  = [2]float64{-20, 20}

	RigHeight = [2]float64{25, 47}
	CamRotX   = [2]float64{-5, 5}
	CamRotY   = [2]float64{-5, -5} // degenerate range, always -5
	CamRotZ   = [2]float64{-5, 5}
)

// Initial placements restored before each draw.
var (
	MaskInitialPosition = mathutil.Vec3{0, 0, 0}
	RigInitialPosition  = mathutil.Vec3{0, 25, 0}
	RigInitialRotation  = mathutil.Vec3{90, 0, 0}
)

// Options select which optional draws run.
type Options struct {
	ScaleFace    bool
	ShiftCamera  bool
	RotateCamera bool
}

// Randomizer draws a fresh pose per iteration. Draws happen in a fixed
// order, so a seeded generator reproduces a run.
type Randomizer struct {
	rng     *rand.Rand
	opts    Options
	initial landmark.Set
}

// New returns a randomizer that resets the stickers to initial before each draw.
func New(rng *rand.Rand, opts Options, initial landmark.Set) *Randomizer {
	return &Randomizer{rng: rng, opts: opts, initial: initial}
}

func (r *Randomizer) draw(rng [2]float64) float64 {
	return mathutil.RandRange(r.rng, rng[0], rng[1])
}

// Apply randomizes stickers, then mask, then camera.
func (r *Randomizer) Apply(st *scene.State, h scene.Handles, mover *capture.RigMover) {
	r.Stickers(st, h)
	r.Mask(st, h)
	r.Camera(st, h, mover)
}

// Stickers resets the eye and nose stickers, redraws the eye distance around
// their midpoint, offsets the nose, keeps it no lower than the eyes and
// centers it between them.
func (r *Randomizer) Stickers(st *scene.State, h scene.Handles) {
	for _, i := range []int{landmark.LeftEye, landmark.NoseTip, landmark.RightEye} {
		st.SetPosition(h.Stickers[i], r.initial[i])
	}

	left, right, nose := h.Stickers[landmark.LeftEye], h.Stickers[landmark.RightEye], h.Stickers[landmark.NoseTip]

	lp, rp := st.Position(left), st.Position(right)
	dir := rp.Sub(lp).Normalize()
	mid := rp.Add(lp).Scale(0.5)
	half := r.draw(EyeDistance) / 2
	st.SetPosition(right, mid.Add(dir.Scale(half)))
	st.SetPosition(left, mid.Sub(dir.Scale(half)))

	drop := r.draw(NoseDrop)
	depth := r.draw(NoseDepth)
	np := st.Position(nose)
	np = np.Add(st.TransformDirection(nose, mathutil.Back).Scale(drop))
	np = np.Add(st.TransformDirection(nose, mathutil.Up).Scale(depth))

	if eyeY := st.Position(right)[1]; np[1] < eyeY {
		np[1] = eyeY
	}
	np[0] = mid[0]
	st.SetPosition(nose, np)
}

// Mask puts the mask back on the face, optionally rescales it and draws its
// rotation relative to the face.
func (r *Randomizer) Mask(st *scene.State, h scene.Handles) {
	st.SetPosition(h.Mask, MaskInitialPosition)
	if r.opts.ScaleFace {
		sx := r.draw(MaskScale)
		sy := r.draw(MaskScale)
		sz := r.draw(MaskScale)
		st.SetLocalScale(h.Mask, mathutil.Vec3{sx, sy, sz})
	}
	rx := r.draw(MaskRotX)
	ry := r.draw(MaskRotY)
	rz := r.draw(MaskRotZ)
	st.SetLocalRotation(h.Mask, mathutil.Euler(rx, ry, rz))
}

// Camera resets the holder and camera, then optionally draws a start and a
// target holder height and a camera tilt. The mover target is only assigned
// when shifting; otherwise it keeps its previous value (the origin for a
// fresh mover) and the holder drifts toward it.
func (r *Randomizer) Camera(st *scene.State, h scene.Handles, mover *capture.RigMover) {
	st.SetPosition(h.Rig, RigInitialPosition)
	st.SetEulerAngles(h.Rig, RigInitialRotation)
	st.SetLocalPosition(h.Camera, mathutil.Zero)
	st.SetLocalEulerAngles(h.Camera, mathutil.Zero)

	if r.opts.ShiftCamera {
		start := r.draw(RigHeight)
		st.SetPosition(h.Rig, mathutil.Vec3{0, start, 0})
		target := st.Position(h.Rig)
		target[1] = r.draw(RigHeight)
		mover.Target = target
	}
	if r.opts.RotateCamera {
		rx := r.draw(CamRotX)
		ry := r.draw(CamRotY)
		rz := r.draw(CamRotZ)
		st.SetLocalEulerAngles(h.Camera, mathutil.Vec3{rx, ry, rz})
	}
}
