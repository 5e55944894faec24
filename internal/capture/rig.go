package capture

import (
	"face-synth/internal/mathutil"
	"face-synth/internal/scene"
)

// RigMover slides the camera holder in a straight line toward Target.
type RigMover struct {
	Target mathutil.Vec3
	Speed  float64 // units per second
}

// Advance moves rig by dt·Speed toward Target. When the remaining distance
// is within one step the rig lands exactly on Target, so it never
// overshoots and stops once there.
func (m *RigMover) Advance(st *scene.State, rig scene.Handle, dt float64) {
	cur := st.Position(rig)
	delta := m.Target.Sub(cur)
	dist := delta.Len()
	if dist == 0 {
		return
	}
	step := dt * m.Speed
	if dist <= step {
		st.SetPosition(rig, m.Target)
		return
	}
	st.SetPosition(rig, cur.Add(delta.Normalize().Scale(step)))
}

// Remaining returns the distance left to Target.
func (m *RigMover) Remaining(st *scene.State, rig scene.Handle) float64 {
	return m.Target.Sub(st.Position(rig)).Len()
}
