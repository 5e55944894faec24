package synth

import (
	"image"

	"face-synth/internal/background"
	"face-synth/internal/landmark"
	"face-synth/internal/mathutil"
	"face-synth/internal/raster"
	"face-synth/internal/scene"
)

// CameraFor builds the projection camera for a snapshot at w x h pixels.
func CameraFor(snap scene.Snapshot, w, h int) raster.Camera {
	return raster.Camera{
		Position: snap.Camera.Position,
		Rotation: snap.Camera.Rotation,
		FOV:      raster.DefaultFOV,
		Width:    w,
		Height:   h,
	}
}

// Render draws the head, mask and stickers of snap over plate. A nil or
// mismatched plate is replaced with flat grey.
func Render(snap scene.Snapshot, w, h int, plate *image.NRGBA, lc *raster.LightConfig) *image.NRGBA {
	fb := raster.NewFrameBuffer(w, h)
	if plate == nil || !fb.SetBackground(plate) {
		fb.Fill(background.Grey.R, background.Grey.G, background.Grey.B)
	}

	cam := CameraFor(snap, w, h)
	face := snap.Face
	mask := snap.Mask

	raster.DrawMesh(fb, cam, headMesh.Transformed(face.Position, face.Rotation, face.Scale), lc)
	raster.DrawMesh(fb, cam, maskMesh.Transformed(mask.Position, mask.Rotation, mask.Scale), lc)
	for i := 0; i < landmark.Count; i++ {
		marker := Octahedron(snap.Stickers[i], stickerRadius, stickerColors[i])
		marker.Unlit = true
		raster.DrawMesh(fb, cam, marker, lc)
	}

	return fb.Image()
}

// Landmark is one projected sticker in an annotation.
type Landmark struct {
	Name    string        `json:"name"`
	World   mathutil.Vec3 `json:"world"`
	Pixel   [2]float64    `json:"pixel"`
	Depth   float64       `json:"depth"`
	InFront bool          `json:"in_front"`
	InFrame bool          `json:"in_frame"`
}

// ProjectLandmarks maps every sticker of snap into w x h image space.
// Stickers behind the camera keep a zero pixel and report InFront false.
func ProjectLandmarks(snap scene.Snapshot, w, h int) []Landmark {
	cam := CameraFor(snap, w, h)
	out := make([]Landmark, landmark.Count)
	for i, p := range snap.Stickers {
		lm := Landmark{Name: landmark.Names[i], World: p}
		lm.Depth = cam.ToView(p)[2]
		if s, ok := cam.Project(p); ok {
			lm.Pixel = [2]float64{s[0], s[1]}
			lm.InFront = true
			lm.InFrame = cam.InFrame(s)
		}
		out[i] = lm
	}
	return out
}
