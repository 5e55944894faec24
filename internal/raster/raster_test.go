package raster

import (
	"math"
	"testing"

	"face-synth/internal/mathutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFrameBufferClearsDepth(t *testing.T) {
	fb := NewFrameBuffer(4, 3)
	require.Len(t, fb.Color, 4*3*4)
	require.Len(t, fb.ZBuf, 12)
	for _, z := range fb.ZBuf {
		assert.True(t, math.IsInf(z, -1))
	}
}

func TestFillAndImage(t *testing.T) {
	fb := NewFrameBuffer(2, 2)
	fb.Fill(10, 20, 30)
	img := fb.Image()
	assert.Equal(t, []uint8{10, 20, 30, 255}, img.Pix[0:4])
	assert.Equal(t, []uint8{10, 20, 30, 255}, img.Pix[12:16])
}

func TestRasterizeTriangleDepthTest(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	far := [3]uint8{255, 0, 0}
	near := [3]uint8{0, 255, 0}

	RasterizeTriangle(fb, mathutil.Vec3{0, 0, 10}, mathutil.Vec3{8, 0, 10}, mathutil.Vec3{0, 8, 10}, far)
	RasterizeTriangle(fb, mathutil.Vec3{0, 0, 5}, mathutil.Vec3{8, 0, 5}, mathutil.Vec3{0, 8, 5}, near)
	// Drawing the far one again must not overwrite the near one.
	RasterizeTriangle(fb, mathutil.Vec3{0, 0, 10}, mathutil.Vec3{8, 0, 10}, mathutil.Vec3{0, 8, 10}, far)

	idx := (1*fb.Width + 1) * 4
	assert.Equal(t, []uint8{0, 255, 0, 255}, fb.Color[idx:idx+4])

	// Outside the triangle stays untouched.
	idx = (7*fb.Width + 7) * 4
	assert.Equal(t, []uint8{0, 0, 0, 0}, fb.Color[idx:idx+4])
}

func TestRasterizeTriangleBehindCamera(t *testing.T) {
	fb := NewFrameBuffer(4, 4)
	RasterizeTriangle(fb, mathutil.Vec3{0, 0, -1}, mathutil.Vec3{4, 0, 5}, mathutil.Vec3{0, 4, 5}, [3]uint8{1, 1, 1})
	for _, c := range fb.Color {
		assert.Zero(t, c)
	}
}

func TestCameraProjectCenter(t *testing.T) {
	cam := Camera{Position: mathutil.Vec3{0, 25, 0}, Rotation: mathutil.Euler(90, 0, 0), Width: 960, Height: 540}

	// Looking straight down, the origin is at the image center.
	s, ok := cam.Project(mathutil.Vec3{})
	require.True(t, ok)
	assert.InDelta(t, 480, s[0], 1e-6)
	assert.InDelta(t, 270, s[1], 1e-6)
	assert.InDelta(t, 25, s[2], 1e-6)
	assert.True(t, cam.InFrame(s))

	// Behind the camera.
	_, ok = cam.Project(mathutil.Vec3{0, 30, 0})
	assert.False(t, ok)
}

func TestCameraProjectVerticalFOV(t *testing.T) {
	cam := Camera{Rotation: mathutil.QuatIdentity(), FOV: 90, Width: 100, Height: 100}
	// At 45 degrees up the point lands on the top edge.
	s, ok := cam.Project(mathutil.Vec3{0, 10, 10})
	require.True(t, ok)
	assert.InDelta(t, 0, s[1], 1e-9)
	assert.InDelta(t, 50, s[0], 1e-9)
}

func TestDrawMeshCoversCenter(t *testing.T) {
	cam := Camera{Rotation: mathutil.QuatIdentity(), Width: 32, Height: 32}
	quad := Mesh{
		Verts: []mathutil.Vec3{{-5, -5, 10}, {5, -5, 10}, {5, 5, 10}, {-5, 5, 10}},
		Tris:  [][3]int{{0, 1, 2}, {0, 2, 3}, {0, 9, 1}},
		Color: [3]uint8{200, 200, 200},
	}
	fb := NewFrameBuffer(32, 32)
	lc := DefaultLightConfig()
	DrawMesh(fb, cam, quad, &lc)

	idx := (16*fb.Width + 16) * 4
	assert.Equal(t, uint8(255), fb.Color[idx+3])
	assert.InDelta(t, 0.1, fb.ZBuf[16*fb.Width+16], 1e-9)
}

func TestDrawMeshUnlitKeepsColor(t *testing.T) {
	cam := Camera{Rotation: mathutil.QuatIdentity(), Width: 16, Height: 16}
	quad := Mesh{
		Verts: []mathutil.Vec3{{-5, -5, 10}, {5, -5, 10}, {5, 5, 10}, {-5, 5, 10}},
		Tris:  [][3]int{{0, 1, 2}, {0, 2, 3}},
		Color: [3]uint8{12, 34, 56},
		Unlit: true,
	}
	fb := NewFrameBuffer(16, 16)
	lc := DefaultLightConfig()
	DrawMesh(fb, cam, quad, &lc)

	idx := (8*fb.Width + 8) * 4
	assert.Equal(t, []uint8{12, 34, 56, 255}, fb.Color[idx:idx+4])
}

func TestMeshTransformed(t *testing.T) {
	m := Mesh{Verts: []mathutil.Vec3{{1, 0, 0}}}
	out := m.Transformed(mathutil.Vec3{0, 0, 5}, mathutil.AngleAxis(90, mathutil.Vec3{0, 1, 0}), mathutil.Vec3{2, 2, 2})
	// Unity convention: +90 about y takes +x to -z.
	assert.InDelta(t, 0, out.Verts[0][0], 1e-9)
	assert.InDelta(t, 3, out.Verts[0][2], 1e-9)
	assert.Equal(t, mathutil.Vec3{1, 0, 0}, m.Verts[0])
}

func TestACESTonemapBounds(t *testing.T) {
	assert.InDelta(t, 0, ACESTonemap(0), 1e-9)
	assert.Less(t, ACESTonemap(100), 1.1)
	assert.Greater(t, ACESTonemap(1), ACESTonemap(0.5))
}
