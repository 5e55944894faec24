package mathutil

import "math"

// Quat represents a quaternion (x, y, z, w).
type Quat [4]float64

// QuatIdentity is the no-rotation quaternion.
func QuatIdentity() Quat {
	return Quat{0, 0, 0, 1}
}

// AngleAxis returns a rotation of deg degrees around axis.
// A zero axis yields the identity.
func AngleAxis(deg float64, axis Vec3) Quat {
	n := axis.Normalize()
	if n == (Vec3{}) {
		return QuatIdentity()
	}
	h := Deg2Rad(deg) * 0.5
	s := math.Sin(h)
	return Quat{n[0] * s, n[1] * s, n[2] * s, math.Cos(h)}
}

// Euler converts Euler angles in degrees to a quaternion.
// Rotation order is z, then x, then y (R = Ry·Rx·Rz), the convention the
// scene's Euler angles are authored in.
func Euler(xDeg, yDeg, zDeg float64) Quat {
	qx := AngleAxis(xDeg, Vec3{1, 0, 0})
	qy := AngleAxis(yDeg, Vec3{0, 1, 0})
	qz := AngleAxis(zDeg, Vec3{0, 0, 1})
	return qy.Mul(qx).Mul(qz)
}

// EulerVec is Euler with the angles packed in a Vec3.
func EulerVec(e Vec3) Quat {
	return Euler(e[0], e[1], e[2])
}

// EulerAngles extracts z-x-y Euler angles in degrees, each in [0, 360).
func (q Quat) EulerAngles() Vec3 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	sx := 2 * (w*x - y*z)
	if sx > 1 {
		sx = 1
	} else if sx < -1 {
		sx = -1
	}
	ax := math.Asin(sx)
	ay := math.Atan2(2*(w*y+x*z), 1-2*(x*x+y*y))
	az := math.Atan2(2*(w*z+x*y), 1-2*(x*x+z*z))
	return Vec3{wrapDeg(Rad2Deg(ax)), wrapDeg(Rad2Deg(ay)), wrapDeg(Rad2Deg(az))}
}

// Mul returns the Hamilton product a·b (apply b first, then a).
func (a Quat) Mul(b Quat) Quat {
	return Quat{
		a[3]*b[0] + a[0]*b[3] + a[1]*b[2] - a[2]*b[1],
		a[3]*b[1] - a[0]*b[2] + a[1]*b[3] + a[2]*b[0],
		a[3]*b[2] + a[0]*b[1] - a[1]*b[0] + a[2]*b[3],
		a[3]*b[3] - a[0]*b[0] - a[1]*b[1] - a[2]*b[2],
	}
}

// Conj returns the conjugate, which is the inverse for unit quaternions.
func (q Quat) Conj() Quat {
	return Quat{-q[0], -q[1], -q[2], q[3]}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q[0], q[1], q[2]}
	w := q[3]
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(w)).Add(u.Cross(t))
}

// Dot returns the 4D dot product.
func (a Quat) Dot(b Quat) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
}

// Angle returns the angle in degrees between two orientations.
func (a Quat) Angle(b Quat) float64 {
	d := math.Abs(a.Dot(b))
	if d > 1 {
		d = 1
	}
	return Rad2Deg(2 * math.Acos(d))
}

// QuatToMat3 converts a quaternion to a 3×3 rotation matrix.
func QuatToMat3(q Quat) Mat3 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return Mat3{
		1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy),
		2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx),
		2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy),
	}
}

func wrapDeg(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}
