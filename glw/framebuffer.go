package glw

import (
	"image"

	"golang.org/x/mobile/gl"
)

// FrameBuffer owns a framebuffer name and a backing texture sized to the
// largest extent attached so far.
type FrameBuffer struct {
	gl.Framebuffer
	tex        Texture
	rgba       *image.RGBA
	maxw, maxh int
}

func (buf *FrameBuffer) Create(options ...func(*Texture)) {
	buf.Framebuffer = ctx.CreateFramebuffer()
	buf.tex.Create(options...)
	buf.rgba = &image.RGBA{}
}

// Delete releases the framebuffer and its backing texture once; later
// calls are no-ops.
func (buf *FrameBuffer) Delete() {
	if buf.Value == 0 {
		return
	}
	ctx.DeleteFramebuffer(buf.Framebuffer)
	buf.Framebuffer = gl.Framebuffer{}
	buf.tex.Delete()
}

func (buf FrameBuffer) Bind()   { ctx.BindFramebuffer(gl.FRAMEBUFFER, buf.Framebuffer) }
func (buf FrameBuffer) Unbind() { ctx.BindFramebuffer(gl.FRAMEBUFFER, gl.Framebuffer{}) }

// Attach binds the framebuffer and its backing texture as color
// attachment zero, growing the texture as needed.
func (buf *FrameBuffer) Attach(width, height int) {
	buf.Bind()
	buf.tex.Bind()
	buf.Update(width, height)
	ctx.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, buf.tex.Texture, 0)
}

// AttachColor sets tex, typically a borrowed swapchain image, as color
// attachment zero of the bound framebuffer.
func (buf FrameBuffer) AttachColor(tex *Texture) {
	ctx.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, tex.Texture, 0)
}

// AttachDepth sets tex as the depth attachment of the bound framebuffer.
func (buf FrameBuffer) AttachDepth(tex *Texture) {
	ctx.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, tex.Texture, 0)
}

// Update grows the backing texture to cover width and height and sets the
// viewport to the given extent.
func (buf *FrameBuffer) Update(width, height int) {
	if buf.maxw < width || buf.maxh < height {
		if buf.maxw < width {
			buf.maxw = width
		}
		if buf.maxh < height {
			buf.maxh = height
		}
		buf.rgba = image.NewRGBA(image.Rect(0, 0, buf.maxw, buf.maxh))
		buf.tex.Update(buf.rgba)
	}
	ctx.Viewport(0, 0, width, height)
}

// Complete reports a non-complete framebuffer status as an error.
func (buf FrameBuffer) Complete() error {
	if status := ctx.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		return &Error{Op: "CheckFramebufferStatus", Code: status}
	}
	return nil
}

func (buf *FrameBuffer) Detach() {
	buf.tex.Unbind()
	buf.Unbind()
}

// RGBA reads back the framebuffer contents; the result is reused across
// calls.
func (buf *FrameBuffer) RGBA() *image.RGBA {
	ctx.PixelStorei(gl.PACK_ALIGNMENT, 1)
	ctx.ReadPixels(buf.rgba.Pix, 0, 0, buf.maxw, buf.maxh, gl.RGBA, gl.UNSIGNED_BYTE)
	return buf.rgba
}
