package raster

import (
	"face-synth/internal/mathutil"
)

// Mesh is an indexed triangle list with one base color. Unlit meshes are
// drawn with Color as is.
type Mesh struct {
	Verts []mathutil.Vec3
	Tris  [][3]int
	Color [3]uint8
	Unlit bool
}

// Transformed returns a copy with every vertex scaled, rotated and then
// translated.
func (m Mesh) Transformed(pos mathutil.Vec3, rot mathutil.Quat, scale mathutil.Vec3) Mesh {
	model := mathutil.Mat3Mul(mathutil.QuatToMat3(rot), mathutil.Mat3Diag(scale[0], scale[1], scale[2]))
	out := Mesh{Verts: make([]mathutil.Vec3, len(m.Verts)), Tris: m.Tris, Color: m.Color, Unlit: m.Unlit}
	for i, v := range m.Verts {
		out.Verts[i] = pos.Add(model.MulVec3(v))
	}
	return out
}

// DrawMesh renders a world-space mesh with flat shading. Triangles with a
// vertex at or behind the near plane are dropped.
func DrawMesh(fb *FrameBuffer, cam Camera, m Mesh, lc *LightConfig) {
	rot := cam.View()
	view := make([]mathutil.Vec3, len(m.Verts))
	screen := make([]mathutil.Vec3, len(m.Verts))
	ok := make([]bool, len(m.Verts))
	for i, v := range m.Verts {
		view[i] = rot.MulVec3(v.Sub(cam.Position))
		screen[i], ok[i] = cam.ViewToScreen(view[i])
	}

	for _, t := range m.Tris {
		a, b, c := t[0], t[1], t[2]
		if a < 0 || b < 0 || c < 0 || a >= len(view) || b >= len(view) || c >= len(view) {
			continue
		}
		if !ok[a] || !ok[b] || !ok[c] {
			continue
		}
		n := view[b].Sub(view[a]).Cross(view[c].Sub(view[a])).Normalize()
		if n == (mathutil.Vec3{}) {
			continue
		}
		col := m.Color
		if !m.Unlit {
			col = lc.Tint(m.Color, lc.ComputeShade(n))
		}
		RasterizeTriangle(fb, screen[a], screen[b], screen[c], col)
	}
}
