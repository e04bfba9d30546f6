package scene

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"dasa.cc/glxr/glw"
	"dasa.cc/glxr/linear"
	"dasa.cc/glxr/shade"
	"github.com/nfnt/resize"
	"golang.org/x/image/math/f32"
	"golang.org/x/mobile/gl"
)

const posterSize = 1024

// Poster paints a generated julia set, mipmapped, on a wall quad.
type Poster struct {
	raw  *shade.RawTexture
	rect *glw.VertexElement
	tex  glw.Texture

	model linear.Mat4
}

func newPoster(st *glw.GPUState, raw *shade.RawTexture, maxTextureSize int) (*Poster, error) {
	m := juliaImage(posterSize, posterSize)
	if maxTextureSize > 0 && posterSize > maxTextureSize {
		scaled := resize.Resize(uint(maxTextureSize), 0, m, resize.Lanczos3)
		m = image.NewRGBA(scaled.Bounds())
		draw.Draw(m, m.Bounds(), scaled, image.ZP, draw.Src)
	}

	p := &Poster{raw: raw}
	p.tex.Create(glw.TextureFilter(gl.LINEAR_MIPMAP_LINEAR, gl.LINEAR))
	bt := st.SetActiveTexture(0, &p.tex)
	size := m.Bounds().Size()
	err := p.tex.WritePixelsAndGenerateMipmap(size.X, size.Y, gl.RGBA, gl.UNSIGNED_BYTE, m.Pix)
	bt.Unbind()
	if err != nil {
		p.tex.Delete()
		return nil, err
	}

	if p.rect, err = shade.UVRect(st, raw.Position, raw.Texcoord); err != nil {
		p.tex.Delete()
		return nil, err
	}

	p.model = linear.Translation(linear.Vec3{-2, 0, -2}).
		Mul(linear.RotationAboutY(math.Pi / 4)).
		Mul(linear.Scaling(linear.Vec3{0.5, 0.5, 0.5}))
	return p, nil
}

// juliaImage renders an escape time julia set. Iteration depth lands in
// the green channel, escape magnitude shades red through orange.
func juliaImage(width, height int) *image.RGBA {
	const (
		maxiter = 90
		zoom    = 0.007
	)
	c := complex(-1.1, -0.27)

	m := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			clr := color.RGBA{A: 255}
			p := complex(float64(x-width/2)*zoom, float64(y-height/2)*zoom)
			for clr.G = 0; clr.G < maxiter; clr.G++ {
				p = p*p + c
				if nsq := real(p)*real(p) + imag(p)*imag(p); nsq > 1e6 {
					if 1e8 < nsq && nsq < 1e12 {
						u8 := uint8((1e12 / nsq) / 1e4 * 255)
						clr.R = u8
						if nsq < 1e9 {
							clr.B += u8
						}
					}
					break
				}
			}
			m.SetRGBA(x, y, clr)
		}
	}
	return m
}

func (p *Poster) Paint(st *glw.GPUState, pv linear.Mat4) error {
	p.raw.Use()
	bt := st.SetActiveTexture(0, &p.tex)
	defer bt.Unbind()
	p.raw.Matrix.Set(f32.Mat4(pv.Mul(p.model)))
	return p.rect.Draw(st, gl.TRIANGLE_STRIP)
}

func (p *Poster) Delete() {
	if p.rect != nil {
		p.rect.Delete()
	}
	p.tex.Delete()
}
