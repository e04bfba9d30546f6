package scene

import (
	"image"

	"dasa.cc/glxr/glw"
	"dasa.cc/glxr/linear"
	"dasa.cc/glxr/shade"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/f32"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/gl"
)

// Text paints a rasterized message as a masked quad.
type Text struct {
	masked *shade.Masked
	rect   *glw.VertexElement
	tex    glw.Texture

	model linear.Mat4
}

func newText(st *glw.GPUState, masked *shade.Masked, msg string) (*Text, error) {
	pix, w, h, err := rasterMessage(msg, 72)
	if err != nil {
		return nil, err
	}

	txt := &Text{masked: masked}
	txt.tex.Create(glw.TextureFilter(gl.LINEAR_MIPMAP_LINEAR, gl.LINEAR))
	bt := st.SetActiveTexture(0, &txt.tex)
	err = txt.tex.WritePixelsAndGenerateMipmap(w, h, gl.RGB, gl.UNSIGNED_BYTE, pix)
	bt.Unbind()
	if err != nil {
		txt.tex.Delete()
		return nil, err
	}

	if txt.rect, err = shade.UVRect(st, masked.Position, masked.Texcoord); err != nil {
		txt.tex.Delete()
		return nil, err
	}

	ar := float32(w) / float32(h)
	txt.model = linear.Translation(linear.Vec3{0, -0.5, -3}).
		Mul(linear.Scaling(linear.Vec3{0.2 * ar, 0.2, 0.2}))
	return txt, nil
}

// rasterMessage draws msg through the Go Regular face at the given point
// size and returns the coverage as tightly packed RGB bytes.
func rasterMessage(msg string, size float64) ([]byte, int, int, error) {
	fnt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, 0, 0, err
	}
	face := truetype.NewFace(fnt, &truetype.Options{Size: size, Hinting: font.HintingFull})
	defer face.Close()

	met := face.Metrics()
	w := font.MeasureString(face, msg).Ceil()
	h := met.Ascent.Ceil() + met.Descent.Ceil()
	m := image.NewRGBA(image.Rect(0, 0, w, h))
	dr := font.Drawer{
		Dst:  m,
		Src:  image.White,
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: fixed.I(met.Ascent.Ceil())},
	}
	dr.DrawString(msg)

	pix := make([]byte, 3*w*h)
	for i := 0; i < w*h; i++ {
		pix[3*i+0] = m.Pix[4*i+0]
		pix[3*i+1] = m.Pix[4*i+1]
		pix[3*i+2] = m.Pix[4*i+2]
	}
	return pix, w, h, nil
}

func (txt *Text) Paint(st *glw.GPUState, pv linear.Mat4) error {
	txt.masked.Use()
	bt := st.SetActiveTexture(0, &txt.tex)
	defer bt.Unbind()
	txt.masked.Matrix.Set(f32.Mat4(pv.Mul(txt.model)))
	return txt.rect.Draw(st, gl.TRIANGLE_STRIP)
}

func (txt *Text) Delete() {
	if txt.rect != nil {
		txt.rect.Delete()
	}
	txt.tex.Delete()
}
