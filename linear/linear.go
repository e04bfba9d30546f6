// Package linear provides column-major matrix, quaternion and vector
// primitives for posing and projecting head-mounted views.
package linear

import "math"

// https://registry.khronos.org/OpenXR/specs/1.0/man/html/xr_linear_h.html

// Vec3 is a three component vector.
type Vec3 [3]float32

func (v Vec3) Add(u Vec3) Vec3 { return Vec3{v[0] + u[0], v[1] + u[1], v[2] + u[2]} }

func (v Vec3) Scale(s float32) Vec3 { return Vec3{v[0] * s, v[1] * s, v[2] * s} }

// Quat is a rotation; the zero rotation is W 1.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdent returns the zero rotation.
func QuatIdent() Quat { return Quat{W: 1} }

// AxisAngle returns the rotation of rad radians about axis.
// The axis must be of unit length.
func AxisAngle(axis Vec3, rad float32) Quat {
	s, c := sincos(rad / 2)
	return Quat{axis[0] * s, axis[1] * s, axis[2] * s, c}
}

// Mul returns the composition ab, applying b first.
func (a Quat) Mul(b Quat) Quat {
	return Quat{
		X: a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
		Y: a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X,
		Z: a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W,
		W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
	}
}

// Fov holds half-angles in radians; left and down are negative for
// symmetric frustums.
type Fov struct {
	AngleLeft  float32
	AngleRight float32
	AngleUp    float32
	AngleDown  float32
}

// Mat4 is a column-major 4x4 matrix operating on column vectors.
type Mat4 [16]float32

// Ident returns the identity matrix.
func Ident() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul returns ab, applying b first.
func (a Mat4) Mul(b Mat4) (m Mat4) {
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			m[c*4+r] = a[r]*b[c*4] + a[4+r]*b[c*4+1] + a[8+r]*b[c*4+2] + a[12+r]*b[c*4+3]
		}
	}
	return m
}

// ProjectionFov returns the projection for fov with an OpenGL clip space,
// positive y up and z in [-1, 1]. A far plane at or before the near plane
// places the far plane at infinity.
func ProjectionFov(fov Fov, near, far float32) Mat4 {
	return Projection(tan(fov.AngleLeft), tan(fov.AngleRight), tan(fov.AngleUp), tan(fov.AngleDown), near, far)
}

// Projection returns the projection for the tangents of the four frustum
// half-angles. See ProjectionFov.
func Projection(tanLeft, tanRight, tanUp, tanDown, near, far float32) (m Mat4) {
	width := tanRight - tanLeft
	height := tanUp - tanDown
	offset := near

	m[0] = 2 / width
	m[8] = (tanRight + tanLeft) / width
	m[5] = 2 / height
	m[9] = (tanUp + tanDown) / height
	m[11] = -1

	if far <= near {
		m[10] = -1
		m[14] = -(near + offset)
	} else {
		m[10] = -(far + offset) / (far - near)
		m[14] = -(far * (near + offset)) / (far - near)
	}
	return m
}

// Translation returns the matrix translating by t.
func Translation(t Vec3) Mat4 {
	m := Ident()
	m[12], m[13], m[14] = t[0], t[1], t[2]
	return m
}

// Scaling returns the matrix scaling by s.
func Scaling(s Vec3) Mat4 {
	var m Mat4
	m[0], m[5], m[10], m[15] = s[0], s[1], s[2], 1
	return m
}

// FromQuat returns the rotation matrix of q.
func FromQuat(q Quat) (m Mat4) {
	x2, y2, z2 := q.X+q.X, q.Y+q.Y, q.Z+q.Z

	xx, xy, xz := q.X*x2, q.X*y2, q.X*z2
	yy, yz, zz := q.Y*y2, q.Y*z2, q.Z*z2
	wx, wy, wz := q.W*x2, q.W*y2, q.W*z2

	m[0] = 1 - (yy + zz)
	m[1] = xy + wz
	m[2] = xz - wy

	m[4] = xy - wz
	m[5] = 1 - (xx + zz)
	m[6] = yz + wx

	m[8] = xz + wy
	m[9] = yz - wx
	m[10] = 1 - (xx + yy)

	m[15] = 1
	return m
}

// TRS returns translation * rotation * scale.
func TRS(t Vec3, r Quat, s Vec3) Mat4 {
	return Translation(t).Mul(FromQuat(r).Mul(Scaling(s)))
}

// InvertRigidBody returns the inverse of m, which must be a rigid-body
// transform of rotation and translation only.
func InvertRigidBody(src Mat4) (m Mat4) {
	m[0], m[1], m[2] = src[0], src[4], src[8]
	m[4], m[5], m[6] = src[1], src[5], src[9]
	m[8], m[9], m[10] = src[2], src[6], src[10]
	m[12] = -(src[0]*src[12] + src[1]*src[13] + src[2]*src[14])
	m[13] = -(src[4]*src[12] + src[5]*src[13] + src[6]*src[14])
	m[14] = -(src[8]*src[12] + src[9]*src[13] + src[10]*src[14])
	m[15] = 1
	return m
}

// TransformVec3 transforms point v by m with a perspective divide.
func (m Mat4) TransformVec3(v Vec3) Vec3 {
	w := m[3]*v[0] + m[7]*v[1] + m[11]*v[2] + m[15]
	rcp := 1 / w
	return Vec3{
		(m[0]*v[0] + m[4]*v[1] + m[8]*v[2] + m[12]) * rcp,
		(m[1]*v[0] + m[5]*v[1] + m[9]*v[2] + m[13]) * rcp,
		(m[2]*v[0] + m[6]*v[1] + m[10]*v[2] + m[14]) * rcp,
	}
}

// RotationAboutX returns the rotation of rad radians about the x axis.
func RotationAboutX(rad float32) Mat4 {
	s, c := sincos(rad)
	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotationAboutY returns the rotation of rad radians about the y axis.
func RotationAboutY(rad float32) Mat4 {
	s, c := sincos(rad)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotationAboutZ returns the rotation of rad radians about the z axis.
func RotationAboutZ(rad float32) Mat4 {
	s, c := sincos(rad)
	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func sincos(rad float32) (s, c float32) {
	sn, cs := math.Sincos(float64(rad))
	return float32(sn), float32(cs)
}

func tan(rad float32) float32 { return float32(math.Tan(float64(rad))) }
