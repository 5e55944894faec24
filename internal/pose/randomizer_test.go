package pose

import (
	"testing"

	"face-synth/internal/capture"
	"face-synth/internal/landmark"
	"face-synth/internal/mathutil"
	"face-synth/internal/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-9

func signed(deg float64) float64 {
	if deg > 180 {
		return deg - 360
	}
	return deg
}

func setup(seed uint64, opts Options) (*scene.State, scene.Handles, *Randomizer, landmark.Set) {
	st, h := scene.New()
	initial := landmark.Center(landmark.Default())
	for i, sh := range h.Stickers {
		st.SetLocalPosition(sh, initial[i])
	}
	return st, h, New(mathutil.NewRand(seed), opts, initial), initial
}

func TestStickers_EyesKeepMidpointAndDirection(t *testing.T) {
	for seed := uint64(1); seed <= 25; seed++ {
		st, h, r, initial := setup(seed, Options{})
		r.Stickers(st, h)

		l := st.Position(h.Stickers[landmark.LeftEye])
		rt := st.Position(h.Stickers[landmark.RightEye])
		dist := rt.Sub(l).Len()
		assert.GreaterOrEqual(t, dist, 4.0-epsilon)
		assert.LessOrEqual(t, dist, 5.5+epsilon)

		wantMid := initial[landmark.LeftEye].Add(initial[landmark.RightEye]).Scale(0.5)
		gotMid := l.Add(rt).Scale(0.5)
		for k := 0; k < 3; k++ {
			assert.InDelta(t, wantMid[k], gotMid[k], epsilon)
		}

		wantDir := initial[landmark.RightEye].Sub(initial[landmark.LeftEye]).Normalize()
		gotDir := rt.Sub(l).Normalize()
		assert.InDelta(t, 1, wantDir.Dot(gotDir), epsilon)

		nose := st.Position(h.Stickers[landmark.NoseTip])
		assert.InDelta(t, wantMid[0], nose[0], epsilon, "nose centered between the eyes")
		assert.GreaterOrEqual(t, nose[1], rt[1], "nose not below the eye plane")
	}
}

func TestStickers_ResetBeforeEachDraw(t *testing.T) {
	st, h, r, initial := setup(5, Options{})
	for i := 0; i < 50; i++ {
		r.Stickers(st, h)
	}
	// Repeated draws do not drift: the nose stays within one drop/depth of
	// its initial placement.
	nose := st.Position(h.Stickers[landmark.NoseTip])
	assert.InDelta(t, initial[landmark.NoseTip][2], nose[2], 1+epsilon)
	assert.InDelta(t, initial[landmark.NoseTip][1], nose[1], 0.5+epsilon+
		initial[landmark.NoseTip][1]-initial[landmark.RightEye][1])
	// Stickers that are never randomized are untouched.
	assert.Equal(t, initial[landmark.Top], st.Position(h.Stickers[landmark.Top]))
}

func TestMask_RangesAndScale(t *testing.T) {
	st, h, r, _ := setup(11, Options{})
	r.Mask(st, h)
	assert.Equal(t, mathutil.One, st.LocalScale(h.Mask), "scale untouched when disabled")

	e := st.LocalRotation(h.Mask).EulerAngles()
	assert.LessOrEqual(t, abs(signed(e[0])), 10+epsilon)
	assert.LessOrEqual(t, abs(signed(e[1])), 15+epsilon)
	assert.LessOrEqual(t, abs(signed(e[2])), 20+epsilon)
	assert.Equal(t, MaskInitialPosition, st.Position(h.Mask))

	st, h, r, _ = setup(11, Options{ScaleFace: true})
	r.Mask(st, h)
	sc := st.LocalScale(h.Mask)
	for k := 0; k < 3; k++ {
		assert.GreaterOrEqual(t, sc[k], 0.7)
		assert.Less(t, sc[k], 1.3)
	}
}

func TestCamera_Disabled(t *testing.T) {
	st, h, r, _ := setup(3, Options{})
	mover := &capture.RigMover{Speed: 5}
	st.SetLocalEulerAngles(h.Camera, mathutil.Vec3{7, 7, 7})
	r.Camera(st, h, mover)

	assert.Equal(t, RigInitialPosition, st.Position(h.Rig))
	assert.Equal(t, mathutil.Zero, mover.Target, "target untouched without shift")

	mover.Target = mathutil.Vec3{1, 2, 3}
	r.Camera(st, h, mover)
	assert.Equal(t, mathutil.Vec3{1, 2, 3}, mover.Target)
	assert.InDelta(t, 0, st.LocalRotation(h.Camera).Angle(mathutil.QuatIdentity()), epsilon)
	assert.InDelta(t, 0, st.Rotation(h.Rig).Angle(mathutil.Euler(90, 0, 0)), 1e-6)
}

func TestCamera_ShiftAndRotate(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		st, h, r, _ := setup(seed, Options{ShiftCamera: true, RotateCamera: true})
		mover := &capture.RigMover{Speed: 5}
		r.Camera(st, h, mover)

		p := st.Position(h.Rig)
		assert.Equal(t, 0.0, p[0])
		assert.Equal(t, 0.0, p[2])
		assert.GreaterOrEqual(t, p[1], 25.0)
		assert.Less(t, p[1], 47.0)
		assert.Equal(t, p[0], mover.Target[0])
		assert.Equal(t, p[2], mover.Target[2])
		assert.GreaterOrEqual(t, mover.Target[1], 25.0)
		assert.Less(t, mover.Target[1], 47.0)

		e := st.LocalEulerAngles(h.Camera)
		assert.LessOrEqual(t, abs(signed(e[0])), 5+1e-6)
		assert.InDelta(t, -5, signed(e[1]), 1e-6, "degenerate y range always yields -5")
		assert.LessOrEqual(t, abs(signed(e[2])), 5+1e-6)
	}
}

func TestApply_SeededRunsMatch(t *testing.T) {
	opts := Options{ScaleFace: true, ShiftCamera: true, RotateCamera: true}
	a, ha, ra, _ := setup(42, opts)
	b, hb, rb, _ := setup(42, opts)
	ma, mb := &capture.RigMover{}, &capture.RigMover{}
	for i := 0; i < 3; i++ {
		ra.Apply(a, ha, ma)
		rb.Apply(b, hb, mb)
	}
	require.Equal(t, a.Snapshot(ha), b.Snapshot(hb))
	assert.Equal(t, ma.Target, mb.Target)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
