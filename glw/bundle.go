package glw

import "golang.org/x/mobile/gl"

// VertexArray pairs a vertex array object with a shared vertex buffer for
// unindexed drawing.
type VertexArray struct {
	gl.VertexArray
	Floats *FloatBuffer

	per  int
	refs *int32
}

// Create uploads verts and rigs attrs within a single bound scope.
func (va *VertexArray) Create(st *GPUState, usage gl.Enum, verts []float32, attrs ...VertexAttrib) error {
	va.VertexArray = ctx.CreateVertexArray()
	if va.Value == 0 {
		return &AllocationError{Op: caller("CreateVertexArray")}
	}
	va.Floats = new(FloatBuffer)
	va.Floats.gen(usage)
	va.refs = new(int32)
	*va.refs = 1
	va.per = perVertex(attrs)

	b, err := st.BindArray(va)
	if err != nil {
		return err
	}
	defer b.Unbind()
	b.Load(verts)
	for _, a := range attrs {
		b.Rig(a)
	}
	return CheckError("VertexArray.Create")
}

// Delete releases the vertex array, and the buffer once no other bundle
// shares it. Later calls are no-ops.
func (va *VertexArray) Delete() {
	if va.Value != 0 {
		ctx.DeleteVertexArray(va.VertexArray)
		va.VertexArray = gl.VertexArray{}
	}
	if va.refs != nil {
		if *va.refs--; *va.refs == 0 {
			va.Floats.Delete()
		}
		va.refs = nil
	}
}

func (va *VertexArray) Incomplete() bool {
	return va.Value == 0 || va.Floats == nil || va.Floats.count == 0
}

// Draw binds, draws every vertex, and unbinds.
func (va *VertexArray) Draw(st *GPUState, mode gl.Enum) error {
	b, err := st.BindArray(va)
	if err != nil {
		return err
	}
	b.Draw(mode)
	b.Unbind()
	return CheckError("VertexArray.Draw")
}

// VertexElement pairs a vertex array object with shared vertex and index
// buffers for indexed drawing.
type VertexElement struct {
	gl.VertexArray
	Floats *FloatBuffer
	Uints  *UintBuffer

	refs *int32
}

// Create uploads verts and indices and rigs attrs within a single bound
// scope.
func (ve *VertexElement) Create(st *GPUState, usage gl.Enum, verts []float32, indices []uint32, attrs ...VertexAttrib) error {
	ve.VertexArray = ctx.CreateVertexArray()
	if ve.Value == 0 {
		return &AllocationError{Op: caller("CreateVertexArray")}
	}
	ve.Floats = new(FloatBuffer)
	ve.Floats.gen(usage)
	ve.Uints = new(UintBuffer)
	ve.Uints.gen(usage)
	ve.refs = new(int32)
	*ve.refs = 1

	b, err := st.BindMut(ve)
	if err != nil {
		return err
	}
	defer b.Unbind()
	b.Load(verts)
	b.LoadElements(indices)
	for _, a := range attrs {
		b.Rig(a)
	}
	return CheckError("VertexElement.Create")
}

// Reuse returns a bundle sharing this bundle's buffers under a fresh
// vertex array with attrs rigged against it. The buffers are released
// once every sharing bundle is deleted.
func (ve *VertexElement) Reuse(st *GPUState, attrs ...VertexAttrib) (*VertexElement, error) {
	dup := &VertexElement{Floats: ve.Floats, Uints: ve.Uints, refs: ve.refs}
	dup.VertexArray = ctx.CreateVertexArray()
	if dup.Value == 0 {
		return nil, &AllocationError{Op: caller("CreateVertexArray")}
	}
	*dup.refs++

	b, err := st.Bind(dup)
	if err != nil {
		return nil, err
	}
	defer b.Unbind()
	for _, a := range attrs {
		b.Rig(a)
	}
	return dup, CheckError("VertexElement.Reuse")
}

// Delete releases the vertex array, and the buffers once no other bundle
// shares them. Later calls are no-ops.
func (ve *VertexElement) Delete() {
	if ve.Value != 0 {
		ctx.DeleteVertexArray(ve.VertexArray)
		ve.VertexArray = gl.VertexArray{}
	}
	if ve.refs != nil {
		if *ve.refs--; *ve.refs == 0 {
			ve.Floats.Delete()
			ve.Uints.Delete()
		}
		ve.refs = nil
	}
}

func (ve *VertexElement) Incomplete() bool {
	return ve.Value == 0 || ve.Floats == nil || ve.Uints == nil || ve.Floats.count == 0 || ve.Uints.count == 0
}

// Draw binds, draws the full index range, and unbinds.
func (ve *VertexElement) Draw(st *GPUState, mode gl.Enum) error {
	b, err := st.Bind(ve)
	if err != nil {
		return err
	}
	b.Draw(mode)
	b.Unbind()
	return CheckError("VertexElement.Draw")
}

func perVertex(attrs []VertexAttrib) int {
	per := 1
	for _, a := range attrs {
		n := a.Stride
		if n == 0 {
			n = a.Width
		}
		if n > per {
			per = n
		}
	}
	return per
}
