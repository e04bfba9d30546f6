package scene

import (
	"math"

	"dasa.cc/glxr/glw"
	"dasa.cc/glxr/linear"
	"dasa.cc/glxr/shade"
	"golang.org/x/image/math/f32"
	"golang.org/x/mobile/gl"
)

const (
	globeRings   = 24
	globeSectors = 32

	// globePeriod is the seconds per full orbit when no hand is tracked.
	globePeriod = 20
)

// Globe is a sun lit sphere that follows the tracked hand, or orbits the
// viewer without one.
type Globe struct {
	phong *shade.Phong
	vert  *glw.VertexElement

	model linear.Mat4
}

func newGlobe(st *glw.GPUState, phong *shade.Phong) (*Globe, error) {
	verts, indices := globeMesh(globeRings, globeSectors)
	g := &Globe{phong: phong, model: linear.Ident()}
	g.vert = new(glw.VertexElement)
	err := g.vert.Create(st, gl.STATIC_DRAW, verts, indices,
		phong.Position.StepSize(6, 0),
		phong.Normal.StepSize(6, 3),
	)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// globeMesh returns interleaved positions and normals over a latitude
// longitude grid of the unit sphere, and the indices triangulating it.
func globeMesh(rings, sectors int) ([]float32, []uint32) {
	verts := make([]float32, 0, 6*(rings+1)*(sectors+1))
	for r := 0; r <= rings; r++ {
		phi := math.Pi * float64(r) / float64(rings)
		for s := 0; s <= sectors; s++ {
			theta := 2 * math.Pi * float64(s) / float64(sectors)
			x := float32(math.Sin(phi) * math.Cos(theta))
			y := float32(math.Cos(phi))
			z := float32(math.Sin(phi) * math.Sin(theta))
			verts = append(verts, x, y, z, x, y, z)
		}
	}
	indices := make([]uint32, 0, 6*rings*sectors)
	for r := 0; r < rings; r++ {
		for s := 0; s < sectors; s++ {
			a := uint32(r*(sectors+1) + s)
			b := a + uint32(sectors) + 1
			indices = append(indices, a, b, a+1, a+1, b, b+1)
		}
	}
	return verts, indices
}

func (g *Globe) Step(t float32, hand Hand) {
	if hand.Tracked {
		g.model = linear.TRS(hand.Position, hand.Orientation, linear.Vec3{0.05, 0.05, 0.05})
		return
	}
	rad := 2 * math.Pi * t / globePeriod
	g.model = linear.RotationAboutY(rad).
		Mul(linear.Translation(linear.Vec3{0, 0, -2})).
		Mul(linear.Scaling(linear.Vec3{0.25, 0.25, 0.25}))
}

func (g *Globe) Paint(st *glw.GPUState, pv linear.Mat4) error {
	g.phong.Use()
	g.phong.Pv.Set(f32.Mat4(pv))
	g.phong.Model.Set(f32.Mat4(g.model))
	return g.vert.Draw(st, gl.TRIANGLES)
}

func (g *Globe) Delete() { g.vert.Delete() }
