package raster

import (
	"math"

	"face-synth/internal/mathutil"
)

// DefaultFOV is the vertical field of view in degrees.
const DefaultFOV = 60.0

// nearPlane is the closest view depth that is drawn.
const nearPlane = 0.3

// Camera is a pinhole camera looking along its local +z with +y up.
type Camera struct {
	Position mathutil.Vec3
	Rotation mathutil.Quat
	FOV      float64 // vertical, degrees
	Width    int
	Height   int
}

// View returns the world-to-camera rotation.
func (c Camera) View() mathutil.Mat3 {
	return mathutil.QuatToMat3(c.Rotation).Transpose()
}

// ToView maps a world point into camera space.
func (c Camera) ToView(p mathutil.Vec3) mathutil.Vec3 {
	return c.View().MulVec3(p.Sub(c.Position))
}

// Focal returns the focal length in pixels.
func (c Camera) Focal() float64 {
	fov := c.FOV
	if fov <= 0 {
		fov = DefaultFOV
	}
	return float64(c.Height) / 2 / math.Tan(mathutil.Deg2Rad(fov)/2)
}

// ViewToScreen projects a camera-space point to pixel coordinates with the
// origin at the top-left. z carries the view depth. ok is false for points
// at or behind the near plane.
func (c Camera) ViewToScreen(v mathutil.Vec3) (mathutil.Vec3, bool) {
	if v[2] <= nearPlane {
		return mathutil.Vec3{}, false
	}
	f := c.Focal()
	sx := float64(c.Width)/2 + f*v[0]/v[2]
	sy := float64(c.Height)/2 - f*v[1]/v[2]
	return mathutil.Vec3{sx, sy, v[2]}, true
}

// Project maps a world point to pixel coordinates.
func (c Camera) Project(p mathutil.Vec3) (mathutil.Vec3, bool) {
	return c.ViewToScreen(c.ToView(p))
}

// InFrame reports whether a screen point lies inside the image.
func (c Camera) InFrame(s mathutil.Vec3) bool {
	return s[0] >= 0 && s[0] < float64(c.Width) && s[1] >= 0 && s[1] < float64(c.Height)
}
