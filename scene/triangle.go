package scene

import (
	"math"

	"dasa.cc/glxr/glw"
	"dasa.cc/glxr/linear"
	"dasa.cc/glxr/shade"
	"golang.org/x/image/math/f32"
	"golang.org/x/mobile/gl"
)

// trianglePeriod is the seconds per full revolution.
const trianglePeriod float32 = 5

// Triangle spins a vertex colored triangle in place.
type Triangle struct {
	flat *shade.Flat
	vert *glw.VertexElement

	model linear.Mat4
}

func newTriangle(st *glw.GPUState, flat *shade.Flat) (*Triangle, error) {
	tri := &Triangle{flat: flat, model: linear.Ident()}
	tri.vert = new(glw.VertexElement)
	err := tri.vert.Create(st, gl.STATIC_DRAW,
		[]float32{
			-0.5, -0.5, 0, 0, 1, 0,
			+0.0, +0.5, 0, 0, 0, 1,
			+0.5, -0.5, 0, 1, 0, 0,
		},
		[]uint32{0, 1, 2},
		flat.Position.StepSize(6, 0),
		flat.Color.StepSize(6, 3),
	)
	if err != nil {
		return nil, err
	}
	return tri, nil
}

func (tri *Triangle) Step(t float32) {
	rad := 2 * math.Pi * t / trianglePeriod
	tri.model = linear.Translation(linear.Vec3{1, 0, -2}).Mul(linear.RotationAboutY(rad))
}

func (tri *Triangle) Paint(st *glw.GPUState, pv linear.Mat4) error {
	tri.flat.Use()
	tri.flat.Matrix.Set(f32.Mat4(pv.Mul(tri.model)))
	return tri.vert.Draw(st, gl.TRIANGLES)
}

func (tri *Triangle) Delete() { tri.vert.Delete() }
