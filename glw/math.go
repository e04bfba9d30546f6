package glw

import (
	"fmt"
	"strings"

	"golang.org/x/image/math/f32"
)

// Uton maps unit range [0, 1] onto norm range [-1, +1].
func Uton(u float32) float32 { return 2*u - 1 }

// Ntou maps norm range [-1, +1] onto unit range [0, 1].
func Ntou(n float32) float32 { return (n + 1) / 2 }

func Vec3(v0, v1, v2 float32) f32.Vec3     { return f32.Vec3{v0, v1, v2} }
func Vec4(v0, v1, v2, v3 float32) f32.Vec4 { return f32.Vec4{v0, v1, v2, v3} }

func ident9fv() f32.Mat3 {
	return f32.Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

func ident16fv() f32.Mat4 {
	return f32.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func string16fv(m f32.Mat4) string {
	var sb strings.Builder
	for i := 0; i < 16; i += 4 {
		if i != 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%+.2f %+.2f %+.2f %+.2f", m[i], m[i+1], m[i+2], m[i+3])
	}
	return sb.String()
}
