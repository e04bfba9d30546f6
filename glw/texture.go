package glw

import (
	"fmt"
	"image"

	"golang.org/x/mobile/gl"
)

// GL ES 3 sized depth format missing from the ES 2 constant set.
const depthComponent24 = 0x81A6

// TextureFilter sets the filter to be applied when creating textures.
func TextureFilter(min, mag int) func(*Texture) {
	return func(tex *Texture) { tex.min, tex.mag = min, mag }
}

var (
	FilterNearest = TextureFilter(gl.NEAREST, gl.NEAREST)
	FilterLinear  = TextureFilter(gl.LINEAR, gl.LINEAR)
)

// TextureWrap sets the wrap to be applied when creating textures.
func TextureWrap(s, t int) func(*Texture) {
	return func(tex *Texture) { tex.s, tex.t = s, t }
}

var (
	WrapClamp  = TextureWrap(gl.CLAMP_TO_EDGE, gl.CLAMP_TO_EDGE)
	WrapRepeat = TextureWrap(gl.REPEAT, gl.REPEAT)
)

// Texture identifies a TEXTURE_2D name along with its filter and wrap
// parameters. A borrowed texture wraps a name owned elsewhere, such as a
// swapchain image, and is never deleted here.
type Texture struct {
	gl.Texture
	lod      int
	min, mag int
	s, t     int
	r        image.Rectangle
	borrowed bool
}

func (tex *Texture) Create(options ...func(*Texture)) {
	tex.Texture = ctx.CreateTexture()
	tex.min, tex.mag = gl.LINEAR, gl.LINEAR
	tex.s, tex.t = gl.CLAMP_TO_EDGE, gl.CLAMP_TO_EDGE
	for _, opt := range options {
		opt(tex)
	}
}

// TextureFrom wraps a texture name owned elsewhere.
func TextureFrom(name uint32, options ...func(*Texture)) Texture {
	tex := Texture{Texture: gl.Texture{Value: name}, borrowed: true}
	tex.min, tex.mag = gl.LINEAR, gl.LINEAR
	tex.s, tex.t = gl.CLAMP_TO_EDGE, gl.CLAMP_TO_EDGE
	for _, opt := range options {
		opt(&tex)
	}
	return tex
}

// Delete releases an owned texture name once; borrowed textures and later
// calls are no-ops.
func (tex *Texture) Delete() {
	if tex.borrowed || tex.Value == 0 {
		return
	}
	ctx.DeleteTexture(tex.Texture)
	tex.Texture = gl.Texture{}
}

func (tex Texture) Bind() {
	ctx.BindTexture(gl.TEXTURE_2D, tex.Texture)
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, tex.min)
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, tex.mag)
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, tex.s)
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, tex.t)
}

func (tex Texture) Unbind() { ctx.BindTexture(gl.TEXTURE_2D, gl.Texture{}) }

// Update uploads src to the bound texture, reusing the current allocation
// when src fits within it.
func (tex *Texture) Update(src *image.RGBA) {
	r := src.Bounds()
	if r.In(tex.r) {
		ctx.TexSubImage2D(gl.TEXTURE_2D, tex.lod, r.Min.X, r.Min.Y, r.Dx(), r.Dy(), gl.RGBA, gl.UNSIGNED_BYTE, src.Pix)
	} else {
		ctx.TexImage2D(gl.TEXTURE_2D, tex.lod, int(gl.RGBA), r.Dx(), r.Dy(), gl.RGBA, gl.UNSIGNED_BYTE, src.Pix)
		tex.r = r
	}
}

// WritePixels validates that len(pix) agrees with the stated dimensions
// and format before the bound texture is touched.
func (tex *Texture) WritePixels(width, height int, format, ty gl.Enum, pix []byte) error {
	bpp, err := bytesPerPixel(format, ty)
	if err != nil {
		return err
	}
	if width*height*bpp != len(pix) {
		return &SizeMismatchError{Width: width, Height: height, BytesPerPixel: bpp, Len: len(pix)}
	}
	ctx.TexImage2D(gl.TEXTURE_2D, tex.lod, int(format), width, height, format, ty, pix)
	tex.r = image.Rect(0, 0, width, height)
	return CheckError("Texture.WritePixels")
}

// WritePixelsAndGenerateMipmap is WritePixels followed by mipmap
// generation when the upload succeeds.
func (tex *Texture) WritePixelsAndGenerateMipmap(width, height int, format, ty gl.Enum, pix []byte) error {
	if err := tex.WritePixels(width, height, format, ty, pix); err != nil {
		return err
	}
	tex.GenerateMipmap()
	return CheckError("Texture.WritePixelsAndGenerateMipmap")
}

func (tex Texture) GenerateMipmap() { ctx.GenerateMipmap(gl.TEXTURE_2D) }

// ColorStorage allocates RGBA storage for the bound texture without an
// initial upload.
func (tex *Texture) ColorStorage(width, height int) error {
	ctx.TexImage2D(gl.TEXTURE_2D, tex.lod, int(gl.RGBA), width, height, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	tex.r = image.Rect(0, 0, width, height)
	return CheckError("Texture.ColorStorage")
}

// DepthStorage allocates 24 bit depth storage for the bound texture
// without an initial upload.
func (tex *Texture) DepthStorage(width, height int) error {
	ctx.TexImage2D(gl.TEXTURE_2D, tex.lod, depthComponent24, width, height, gl.DEPTH_COMPONENT, gl.UNSIGNED_INT, nil)
	tex.r = image.Rect(0, 0, width, height)
	return CheckError("Texture.DepthStorage")
}

func bytesPerPixel(format, ty gl.Enum) (int, error) {
	var n int
	switch format {
	case gl.RGBA:
		n = 4
	case gl.RGB:
		n = 3
	case gl.LUMINANCE_ALPHA:
		n = 2
	case gl.LUMINANCE, gl.ALPHA:
		n = 1
	default:
		return 0, fmt.Errorf("unhandled pixel format 0x%04x", uint32(format))
	}
	switch ty {
	case gl.UNSIGNED_BYTE:
	case gl.FLOAT:
		n *= 4
	default:
		return 0, fmt.Errorf("unhandled pixel type 0x%04x", uint32(ty))
	}
	return n, nil
}
