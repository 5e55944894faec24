package scene

import (
	"face-synth/internal/landmark"
	"face-synth/internal/mathutil"
)

// Pose is a world- or parent-relative transform.
type Pose struct {
	Position mathutil.Vec3 `json:"position"`
	Rotation mathutil.Quat `json:"rotation"`
	Scale    mathutil.Vec3 `json:"scale"`
}

// Snapshot is a copy of everything a capture needs to render and annotate
// one frame.
type Snapshot struct {
	Face     Pose                          `json:"face"`
	Mask     Pose                          `json:"mask"`
	MaskLoc  Pose                          `json:"mask_local"`
	Rig      Pose                          `json:"camera_holder"`
	Camera   Pose                          `json:"camera"`
	CamEuler mathutil.Vec3                 `json:"camera_local_euler"`
	Stickers [landmark.Count]mathutil.Vec3 `json:"stickers"`
}

func (s *State) pose(h Handle) Pose {
	p, r, sc := s.World(h)
	return Pose{Position: p, Rotation: r, Scale: sc}
}

// Snapshot captures the current world poses.
func (s *State) Snapshot(h Handles) Snapshot {
	snap := Snapshot{
		Face:   s.pose(h.Face),
		Mask:   s.pose(h.Mask),
		Rig:    s.pose(h.Rig),
		Camera: s.pose(h.Camera),
		MaskLoc: Pose{
			Position: s.LocalPosition(h.Mask),
			Rotation: s.LocalRotation(h.Mask),
			Scale:    s.LocalScale(h.Mask),
		},
		CamEuler: s.LocalEulerAngles(h.Camera),
	}
	for i, sh := range h.Stickers {
		snap.Stickers[i] = s.Position(sh)
	}
	return snap
}
