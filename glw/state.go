package glw

import "golang.org/x/mobile/gl"

// GPUState tracks the pieces of context state this package depends on so
// redundant state changes are skipped and conflicting binds are caught
// before they reach the driver. The zero value is ready to use.
type GPUState struct {
	active gl.Enum
	inuse  bool
}

func (st *GPUState) take(op string) error {
	if st.inuse {
		return &BindError{Op: op}
	}
	st.inuse = true
	return nil
}

// Bind binds ve and its buffers for drawing. The returned token draws and
// rigs; release it with Unbind before binding anything else.
func (st *GPUState) Bind(ve *VertexElement) (*Bound, error) {
	if err := st.take("GPUState.Bind"); err != nil {
		return nil, err
	}
	ctx.BindVertexArray(ve.VertexArray)
	ve.Floats.Bind()
	ve.Uints.Bind()
	return &Bound{st: st, ve: ve}, nil
}

// BindMut is Bind with buffer loads permitted through the token.
func (st *GPUState) BindMut(ve *VertexElement) (*BoundMut, error) {
	if err := st.take("GPUState.BindMut"); err != nil {
		return nil, err
	}
	ctx.BindVertexArray(ve.VertexArray)
	ve.Floats.Bind()
	ve.Uints.Bind()
	return &BoundMut{Bound{st: st, ve: ve}}, nil
}

// BindArray binds va and its vertex buffer for drawing without indices.
func (st *GPUState) BindArray(va *VertexArray) (*BoundArray, error) {
	if err := st.take("GPUState.BindArray"); err != nil {
		return nil, err
	}
	ctx.BindVertexArray(va.VertexArray)
	va.Floats.Bind()
	return &BoundArray{st: st, va: va}, nil
}

// WithBound binds ve around fn, unbinding whether or not fn fails.
func (st *GPUState) WithBound(ve *VertexElement, fn func(*Bound) error) error {
	b, err := st.Bind(ve)
	if err != nil {
		return err
	}
	defer b.Unbind()
	return fn(b)
}

// SetActiveTexture selects the given texture unit, skipping the call when
// the unit is already active, and binds tex to it.
func (st *GPUState) SetActiveTexture(unit int, tex *Texture) BoundTexture {
	if u := gl.TEXTURE0 + gl.Enum(unit); st.active != u {
		ctx.ActiveTexture(u)
		st.active = u
	}
	tex.Bind()
	return BoundTexture{tex: tex}
}

// Bound holds a VertexElement binding until Unbind.
type Bound struct {
	st *GPUState
	ve *VertexElement
}

// Rig wires a against the bound vertex buffer, converting element counts
// to bytes. Rigging the same attribute again is harmless.
func (b *Bound) Rig(a VertexAttrib) {
	ctx.EnableVertexAttribArray(a.Attrib)
	ctx.VertexAttribPointer(a.Attrib, a.Width, gl.FLOAT, false, 4*a.Stride, 4*a.Offset)
}

// Draw draws the full index range.
func (b *Bound) Draw(mode gl.Enum) { b.ve.Uints.Draw(mode) }

// Unbind releases in reverse order of Bind: index buffer, vertex buffer,
// vertex array.
func (b *Bound) Unbind() {
	b.ve.Uints.Unbind()
	b.ve.Floats.Unbind()
	ctx.BindVertexArray(gl.VertexArray{})
	b.st.inuse = false
}

// BoundMut additionally permits loading buffer data.
type BoundMut struct {
	Bound
}

func (b *BoundMut) Load(data []float32)        { b.ve.Floats.Update(data) }
func (b *BoundMut) LoadElements(data []uint32) { b.ve.Uints.Update(data) }

// BoundArray holds a VertexArray binding until Unbind.
type BoundArray struct {
	st *GPUState
	va *VertexArray
}

// Rig wires a against the bound vertex buffer, converting element counts
// to bytes.
func (b *BoundArray) Rig(a VertexAttrib) {
	ctx.EnableVertexAttribArray(a.Attrib)
	ctx.VertexAttribPointer(a.Attrib, a.Width, gl.FLOAT, false, 4*a.Stride, 4*a.Offset)
}

// Draw draws every vertex in the buffer.
func (b *BoundArray) Draw(mode gl.Enum) {
	ctx.DrawArrays(mode, 0, b.va.Floats.count/b.va.per)
}

// Load replaces the vertex buffer contents.
func (b *BoundArray) Load(data []float32) { b.va.Floats.Update(data) }

// Unbind releases the vertex buffer, then the vertex array.
func (b *BoundArray) Unbind() {
	b.va.Floats.Unbind()
	ctx.BindVertexArray(gl.VertexArray{})
	b.st.inuse = false
}

// BoundTexture records a texture bound by SetActiveTexture.
type BoundTexture struct {
	tex *Texture
}

func (b BoundTexture) Unbind() { b.tex.Unbind() }
