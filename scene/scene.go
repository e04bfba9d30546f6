// Package scene assembles the example content: a rainbow triangle, a sun
// lit globe, a rasterized message and a generated poster.
package scene

import (
	"math"
	"time"

	"dasa.cc/glxr/glw"
	"dasa.cc/glxr/linear"
	"dasa.cc/glxr/shade"
	"golang.org/x/exp/shiny/materialdesign/colornames"
	"golang.org/x/mobile/gl"
)

// Hand carries a tracked pose into the scene.
type Hand struct {
	Position    linear.Vec3
	Orientation linear.Quat
	Tracked     bool
}

// Scene owns the example painters and the programs they draw with.
type Scene struct {
	// Message is rasterized into the text painter by Create.
	Message string

	Triangle *Triangle
	Globe    *Globe
	Text     *Text
	Poster   *Poster

	ctx gl.Context

	flat   shade.Flat
	phong  shade.Phong
	masked shade.Masked
	raw    shade.RawTexture

	epoch         time.Time
	clr, clg, clb float32
}

func New(glctx gl.Context) *Scene {
	return &Scene{Message: "hello, world", ctx: glctx, epoch: time.Now()}
}

// Create builds the programs and painters. The programs are configured
// with their static uniforms while each is in use.
func (s *Scene) Create(st *glw.GPUState) error {
	if err := s.flat.Create(); err != nil {
		return err
	}
	if err := s.phong.Create(); err != nil {
		return err
	}
	if err := s.masked.Create(); err != nil {
		return err
	}
	if err := s.raw.Create(); err != nil {
		return err
	}

	s.phong.Use()
	s.phong.Sun.Set(glw.Vec3(0, 1, 0))
	s.phong.Color.Set(glw.Vec4(glw.RGBA(colornames.LightBlue300)))

	s.masked.Use()
	s.masked.Tex.Set(0)
	s.masked.Fg.Set(glw.Vec4(glw.RGBA(colornames.White)))
	s.masked.Bg.Set(glw.Vec4(0, 0, 0, 0))

	s.raw.Use()
	s.raw.Tex.Set(0)

	var err error
	if s.Triangle, err = newTriangle(st, &s.flat); err != nil {
		return err
	}
	if s.Globe, err = newGlobe(st, &s.phong); err != nil {
		return err
	}
	if s.Text, err = newText(st, &s.masked, s.Message); err != nil {
		return err
	}
	if s.Poster, err = newPoster(st, &s.raw, s.ctx.GetInteger(gl.MAX_TEXTURE_SIZE)); err != nil {
		return err
	}

	s.Step(s.epoch, Hand{})
	return nil
}

// Step advances the clear color and painter animations to now, aiming the
// globe at the hand when tracked. The clear color breathes on the same
// period the triangle spins on.
func (s *Scene) Step(now time.Time, hand Hand) {
	t := float32(now.Sub(s.epoch).Seconds())
	s.clr, _, s.clb, _ = glw.RGBA(colornames.BlueGrey900)
	s.clg = glw.Ntou(sin(2 * math.Pi * t / trianglePeriod))
	s.Triangle.Step(t)
	s.Globe.Step(t, hand)
}

// PaintEye clears and draws every painter through one eye posed at eye.
func (s *Scene) PaintEye(st *glw.GPUState, fov linear.Fov, eye linear.Mat4) error {
	s.ctx.ClearColor(s.clr, s.clg, s.clb, 1)
	s.ctx.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	s.ctx.Enable(gl.DEPTH_TEST)
	s.ctx.Enable(gl.BLEND)
	s.ctx.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	pv := linear.ProjectionFov(fov, 0.01, 10000).Mul(linear.InvertRigidBody(eye))

	if err := s.Triangle.Paint(st, pv); err != nil {
		return err
	}
	if err := s.Globe.Paint(st, pv); err != nil {
		return err
	}
	if err := s.Poster.Paint(st, pv); err != nil {
		return err
	}
	return s.Text.Paint(st, pv)
}

// Delete releases the painters, their textures and the programs.
func (s *Scene) Delete() {
	if s.Triangle != nil {
		s.Triangle.Delete()
	}
	if s.Globe != nil {
		s.Globe.Delete()
	}
	if s.Text != nil {
		s.Text.Delete()
	}
	if s.Poster != nil {
		s.Poster.Delete()
	}
	s.flat.Delete()
	s.phong.Delete()
	s.masked.Delete()
	s.raw.Delete()
}

func sin(x float32) float32 { return float32(math.Sin(float64(x))) }
