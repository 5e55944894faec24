package synth

import (
	"face-synth/internal/capture"
	"face-synth/internal/mathutil"
	"face-synth/internal/raster"
	"face-synth/internal/scene"
)

// CameraInfo describes the capturing camera.
type CameraInfo struct {
	Position   mathutil.Vec3 `json:"position"`
	Rotation   mathutil.Quat `json:"rotation"`
	LocalEuler mathutil.Vec3 `json:"local_euler"`
	Holder     scene.Pose    `json:"holder"`
	FOV        float64       `json:"fov"`
	Focal      float64       `json:"focal_px"`
	Width      int           `json:"width"`
	Height     int           `json:"height"`
}

// Annotation is the per-frame data record.
type Annotation struct {
	Name      string     `json:"name"`
	Iteration int        `json:"iteration"`
	Frame     int        `json:"frame"`
	Image     string     `json:"image,omitempty"`
	Camera    CameraInfo `json:"camera"`
	Face      scene.Pose `json:"face"`
	Mask      scene.Pose `json:"mask"`
	MaskLocal scene.Pose `json:"mask_local"`
	Landmarks []Landmark `json:"landmarks"`
}

// Annotate builds the data record for req at the requested output size.
func Annotate(req capture.Request) Annotation {
	snap := req.Snapshot
	cam := CameraFor(snap, req.Width, req.Height)
	a := Annotation{
		Name:      req.Filename,
		Iteration: req.Iteration,
		Frame:     req.Frame,
		Camera: CameraInfo{
			Position:   snap.Camera.Position,
			Rotation:   snap.Camera.Rotation,
			LocalEuler: snap.CamEuler,
			Holder:     snap.Rig,
			FOV:        raster.DefaultFOV,
			Focal:      cam.Focal(),
			Width:      req.Width,
			Height:     req.Height,
		},
		Face:      snap.Face,
		Mask:      snap.Mask,
		MaskLocal: snap.MaskLoc,
		Landmarks: ProjectLandmarks(snap, req.Width, req.Height),
	}
	if req.SaveImage {
		a.Image = req.Filename + ".webp"
	}
	return a
}
