package synth

import (
	"math"

	"face-synth/internal/landmark"
	"face-synth/internal/mathutil"
	"face-synth/internal/raster"
)

// Proxy geometry, in the local frame of the node it is attached to
// (+y forward, +z up).
var (
	headCenter = mathutil.Vec3{0, 0, 3}
	headRadii  = mathutil.Vec3{7, 5.5, 8.5}
	headColor  = [3]uint8{214, 170, 140}

	maskCenter = mathutil.Vec3{0, 0.5, 2}
	maskRadii  = mathutil.Vec3{6, 5, 6}
	maskColor  = [3]uint8{70, 90, 120}

	stickerRadius = 0.4
)

// stickerColors are distinct per landmark so they can be told apart in
// the rendered frame.
var stickerColors = [landmark.Count][3]uint8{
	{255, 40, 40},
	{40, 255, 40},
	{40, 40, 255},
	{255, 255, 40},
	{255, 40, 255},
	{40, 255, 255},
	{255, 255, 255},
}

const (
	ellipsoidStacks = 16
	ellipsoidSlices = 24
)

// Ellipsoid builds a latitude/longitude ellipsoid mesh.
func Ellipsoid(center, radii mathutil.Vec3, stacks, slices int, color [3]uint8) raster.Mesh {
	m := raster.Mesh{Color: color}
	for i := 0; i <= stacks; i++ {
		theta := math.Pi * float64(i) / float64(stacks)
		st, ct := math.Sin(theta), math.Cos(theta)
		for j := 0; j < slices; j++ {
			phi := 2 * math.Pi * float64(j) / float64(slices)
			unit := mathutil.Vec3{st * math.Cos(phi), st * math.Sin(phi), ct}
			m.Verts = append(m.Verts, center.Add(unit.Mul(radii)))
		}
	}
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a := i*slices + j
			b := i*slices + (j+1)%slices
			c := (i+1)*slices + j
			d := (i+1)*slices + (j+1)%slices
			m.Tris = append(m.Tris, [3]int{a, c, b}, [3]int{b, c, d})
		}
	}
	return m
}

// Octahedron builds a small marker mesh centered on p.
func Octahedron(p mathutil.Vec3, r float64, color [3]uint8) raster.Mesh {
	return raster.Mesh{
		Verts: []mathutil.Vec3{
			p.Add(mathutil.Vec3{r, 0, 0}),
			p.Add(mathutil.Vec3{-r, 0, 0}),
			p.Add(mathutil.Vec3{0, r, 0}),
			p.Add(mathutil.Vec3{0, -r, 0}),
			p.Add(mathutil.Vec3{0, 0, r}),
			p.Add(mathutil.Vec3{0, 0, -r}),
		},
		Tris: [][3]int{
			{0, 2, 4}, {2, 1, 4}, {1, 3, 4}, {3, 0, 4},
			{2, 0, 5}, {1, 2, 5}, {3, 1, 5}, {0, 3, 5},
		},
		Color: color,
	}
}

var (
	headMesh = Ellipsoid(headCenter, headRadii, ellipsoidStacks, ellipsoidSlices, headColor)
	maskMesh = Ellipsoid(maskCenter, maskRadii, ellipsoidStacks, ellipsoidSlices, maskColor)
)
