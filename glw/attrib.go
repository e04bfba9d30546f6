package glw

import "golang.org/x/mobile/gl"

// VertexAttrib locates one attribute within an interleaved vertex buffer.
// Width, Stride and Offset are element counts, not bytes.
type VertexAttrib struct {
	gl.Attrib
	Width  int
	Stride int
	Offset int
}

type A2fv gl.Attrib

func (a A2fv) Enable()  { ctx.EnableVertexAttribArray(gl.Attrib(a)) }
func (a A2fv) Disable() { ctx.DisableVertexAttribArray(gl.Attrib(a)) }
func (a A2fv) Pointer() {
	a.Enable()
	ctx.VertexAttribPointer(gl.Attrib(a), 2, gl.FLOAT, false, 0, 0)
}

// StepSize locates the attribute stride and offset elements into a vertex.
func (a A2fv) StepSize(stride, offset int) VertexAttrib {
	return VertexAttrib{Attrib: gl.Attrib(a), Width: 2, Stride: stride, Offset: offset}
}

type A3fv gl.Attrib

func (a A3fv) Enable()  { ctx.EnableVertexAttribArray(gl.Attrib(a)) }
func (a A3fv) Disable() { ctx.DisableVertexAttribArray(gl.Attrib(a)) }
func (a A3fv) Pointer() {
	a.Enable()
	ctx.VertexAttribPointer(gl.Attrib(a), 3, gl.FLOAT, false, 0, 0)
}

// StepSize locates the attribute stride and offset elements into a vertex.
func (a A3fv) StepSize(stride, offset int) VertexAttrib {
	return VertexAttrib{Attrib: gl.Attrib(a), Width: 3, Stride: stride, Offset: offset}
}

type A4fv gl.Attrib

func (a A4fv) Enable()  { ctx.EnableVertexAttribArray(gl.Attrib(a)) }
func (a A4fv) Disable() { ctx.DisableVertexAttribArray(gl.Attrib(a)) }
func (a A4fv) Pointer() {
	a.Enable()
	ctx.VertexAttribPointer(gl.Attrib(a), 4, gl.FLOAT, false, 0, 0)
}

// StepSize locates the attribute stride and offset elements into a vertex.
func (a A4fv) StepSize(stride, offset int) VertexAttrib {
	return VertexAttrib{Attrib: gl.Attrib(a), Width: 4, Stride: stride, Offset: offset}
}
