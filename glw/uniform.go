package glw

import (
	"golang.org/x/image/math/f32"
	"golang.org/x/mobile/gl"
)

type U1i gl.Uniform

func (u U1i) Set(v int) { ctx.Uniform1i(gl.Uniform(u), v) }

type U2i gl.Uniform

func (u U2i) Set(v0, v1 int) { ctx.Uniform2i(gl.Uniform(u), v0, v1) }

type U3i gl.Uniform

func (u U3i) Set(v0, v1, v2 int32) { ctx.Uniform3i(gl.Uniform(u), v0, v1, v2) }

type U4i gl.Uniform

func (u U4i) Set(v0, v1, v2, v3 int32) { ctx.Uniform4i(gl.Uniform(u), v0, v1, v2, v3) }

type U1f gl.Uniform

func (u U1f) Set(v float32) { ctx.Uniform1f(gl.Uniform(u), v) }

type U2fv struct {
	gl.Uniform
	v f32.Vec2
}

func (u U2fv) Update() { ctx.Uniform2fv(u.Uniform, u.v[:]) }

func (u *U2fv) Set(v f32.Vec2) {
	u.v = v
	ctx.Uniform2fv(u.Uniform, u.v[:])
}

type U3fv struct {
	gl.Uniform
	v f32.Vec3
}

func (u U3fv) Update() { ctx.Uniform3fv(u.Uniform, u.v[:]) }

func (u *U3fv) Set(v f32.Vec3) {
	u.v = v
	ctx.Uniform3fv(u.Uniform, u.v[:])
}

type U4fv struct {
	gl.Uniform
	v f32.Vec4
}

func (u U4fv) Update() { ctx.Uniform4fv(u.Uniform, u.v[:]) }

func (u *U4fv) Set(v f32.Vec4) {
	u.v = v
	ctx.Uniform4fv(u.Uniform, u.v[:])
}

type U9fv struct {
	gl.Uniform
	m f32.Mat3
}

func (u U9fv) Update() { ctx.UniformMatrix3fv(u.Uniform, u.m[:]) }

func (u *U9fv) Set(m f32.Mat3) {
	u.m = m
	ctx.UniformMatrix3fv(u.Uniform, u.m[:])
}

type U16fv struct {
	gl.Uniform
	m f32.Mat4
}

func (u U16fv) Update() { ctx.UniformMatrix4fv(u.Uniform, u.m[:]) }

func (u *U16fv) Set(m f32.Mat4) {
	u.m = m
	ctx.UniformMatrix4fv(u.Uniform, u.m[:])
}

// Ortho sets an orthographic projection over the given clip volume.
func (u *U16fv) Ortho(l, r float32, b, t float32, n, f float32) {
	m := ident16fv()
	m[0] = +2 / (r - l)
	m[5] = +2 / (t - b)
	m[10] = -2 / (f - n)
	m[12] = -(r + l) / (r - l)
	m[13] = -(t + b) / (t - b)
	m[14] = -(f + n) / (f - n)
	u.Set(m)
}

func (u U16fv) String() string { return string16fv(u.m) }
