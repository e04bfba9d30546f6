package glw

import (
	"errors"
	"testing"

	"golang.org/x/mobile/gl"
)

func newTriangle(t *testing.T, st *GPUState) *VertexElement {
	t.Helper()
	ve := new(VertexElement)
	err := ve.Create(st, gl.STATIC_DRAW,
		[]float32{
			-0.5, -0.5, 0, 1, 0, 0,
			+0.5, -0.5, 0, 0, 1, 0,
			+0.0, +0.5, 0, 0, 0, 1,
		},
		[]uint32{0, 1, 2},
		VertexAttrib{Attrib: gl.Attrib{Value: 0}, Width: 3, Stride: 6, Offset: 0},
		VertexAttrib{Attrib: gl.Attrib{Value: 1}, Width: 3, Stride: 6, Offset: 3},
	)
	if err != nil {
		t.Fatalf("create bundle: %v", err)
	}
	return ve
}

func TestUnbindReverseOrder(t *testing.T) {
	fake := newFake()
	st := new(GPUState)
	ve := newTriangle(t, st)

	b, err := st.Bind(ve)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	b.Unbind()

	want := []string{
		"BindBuffer(0x8893, 0)",
		"BindBuffer(0x8892, 0)",
		"BindVertexArray(0)",
	}
	have := fake.tail(3)
	for i := range want {
		if have[i] != want[i] {
			t.Fatalf("unbind call %v; have %v, want %v.", i, have[i], want[i])
		}
	}
}

func TestBindWhileBound(t *testing.T) {
	newFake()
	st := new(GPUState)
	ve := newTriangle(t, st)

	b, err := st.Bind(ve)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if _, err := st.Bind(ve); err == nil {
		t.Fatalf("second bind; have nil, want error.")
	} else {
		var bindErr *BindError
		if !errors.As(err, &bindErr) {
			t.Fatalf("second bind; have %T, want *BindError.", err)
		}
	}
	b.Unbind()
	if _, err := st.Bind(ve); err != nil {
		t.Fatalf("bind after unbind: %v", err)
	}
}

func TestRigConvertsElementsToBytes(t *testing.T) {
	fake := newFake()
	st := new(GPUState)
	newTriangle(t, st)

	want := "VertexAttribPointer(1, 3, 24, 12)"
	if have := fake.count(want); have != 1 {
		t.Fatalf("pointer calls %q; have %v, want %v.", want, have, 1)
	}
}

func TestRigTwiceIsHarmless(t *testing.T) {
	fake := newFake()
	st := new(GPUState)
	ve := newTriangle(t, st)

	a := VertexAttrib{Attrib: gl.Attrib{Value: 1}, Width: 3, Stride: 6, Offset: 3}
	err := st.WithBound(ve, func(b *Bound) error {
		b.Rig(a)
		b.Rig(a)
		return nil
	})
	if err != nil {
		t.Fatalf("rig twice: %v", err)
	}
	if have, want := fake.count("VertexAttribPointer(1, 3, 24, 12)"), 3; have != want {
		t.Fatalf("pointer calls; have %v, want %v.", have, want)
	}
}

func TestReuseSharesBuffers(t *testing.T) {
	fake := newFake()
	st := new(GPUState)
	ve := newTriangle(t, st)

	buffers := fake.count("BufferData")
	dup, err := ve.Reuse(st, VertexAttrib{Attrib: gl.Attrib{Value: 2}, Width: 3, Stride: 6, Offset: 0})
	if err != nil {
		t.Fatalf("reuse: %v", err)
	}
	if have, want := fake.count("BufferData"), buffers; have != want {
		t.Fatalf("uploads after reuse; have %v, want %v.", have, want)
	}
	if have, want := dup.Floats.Value, ve.Floats.Value; have != want {
		t.Fatalf("shared vertex buffer; have %v, want %v.", have, want)
	}
	if dup.Value == ve.Value {
		t.Fatalf("vertex array shared; have %v and %v, want distinct.", dup.Value, ve.Value)
	}

	ve.Delete()
	if have, want := fake.count("DeleteBuffer"), 0; have != want {
		t.Fatalf("buffer deletes while shared; have %v, want %v.", have, want)
	}
	dup.Delete()
	if have, want := fake.count("DeleteBuffer"), 2; have != want {
		t.Fatalf("buffer deletes after last bundle; have %v, want %v.", have, want)
	}
}

func TestBundleDeleteOnce(t *testing.T) {
	fake := newFake()
	st := new(GPUState)
	ve := newTriangle(t, st)

	ve.Delete()
	ve.Delete()
	if have, want := fake.count("DeleteVertexArray"), 1; have != want {
		t.Fatalf("vertex array deletes; have %v, want %v.", have, want)
	}
	if have, want := fake.count("DeleteBuffer"), 2; have != want {
		t.Fatalf("buffer deletes; have %v, want %v.", have, want)
	}
}

func TestDrawUsesIndexCount(t *testing.T) {
	fake := newFake()
	st := new(GPUState)
	ve := newTriangle(t, st)

	if err := ve.Draw(st, gl.TRIANGLES); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if have, want := fake.count("DrawElements(0x0004, 3)"), 1; have != want {
		t.Fatalf("draw calls; have %v, want %v.", have, want)
	}
}

func TestVertexArrayDrawCountsVertices(t *testing.T) {
	fake := newFake()
	st := new(GPUState)

	va := new(VertexArray)
	err := va.Create(st, gl.STATIC_DRAW,
		[]float32{
			-1, -1, 0, 0,
			+1, -1, 1, 0,
			-1, +1, 0, 1,
			+1, +1, 1, 1,
		},
		VertexAttrib{Attrib: gl.Attrib{Value: 0}, Width: 2, Stride: 4, Offset: 0},
		VertexAttrib{Attrib: gl.Attrib{Value: 1}, Width: 2, Stride: 4, Offset: 2},
	)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := va.Draw(st, gl.TRIANGLE_STRIP); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if have, want := fake.count("DrawArrays(0x0005, 0, 4)"), 1; have != want {
		t.Fatalf("draw calls; have %v, want %v.", have, want)
	}
}

func TestIncomplete(t *testing.T) {
	newFake()
	st := new(GPUState)

	var empty VertexElement
	if have, want := empty.Incomplete(), true; have != want {
		t.Fatalf("zero value; have %v, want %v.", have, want)
	}
	if have, want := newTriangle(t, st).Incomplete(), false; have != want {
		t.Fatalf("created bundle; have %v, want %v.", have, want)
	}
}

func TestProgramDrawsTriangle(t *testing.T) {
	fake := newFake()
	fake.uniforms["matrix"] = 1
	fake.attribs["position"] = 0

	var shdr struct {
		prg      Program
		Matrix   U16fv
		Position A3fv
	}
	err := shdr.prg.Build(
		`uniform mat4 matrix; attribute vec3 position; void main() { gl_Position = matrix*vec4(position, 1.0); }`,
		`void main() { gl_FragColor = vec4(1.0); }`,
	)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	shdr.prg.Unmarshal(&shdr)

	st := new(GPUState)
	ve := new(VertexElement)
	err = ve.Create(st, gl.STATIC_DRAW,
		[]float32{
			-0.5, -0.5, 0,
			+0.5, -0.5, 0,
			+0.0, +0.5, 0,
		},
		[]uint32{0, 1, 2},
		shdr.Position.StepSize(3, 0),
	)
	if err != nil {
		t.Fatalf("create bundle: %v", err)
	}

	shdr.prg.Use()
	shdr.Matrix.Set(ident16fv())
	if err := ve.Draw(st, gl.TRIANGLES); err != nil {
		t.Fatalf("draw: %v", err)
	}

	if have, want := fake.count("DrawElements"), 1; have != want {
		t.Fatalf("draw calls; have %v, want %v.", have, want)
	}
	if have, want := fake.count("DrawElements(0x0004, 3)"), 1; have != want {
		t.Fatalf("draw count; have %v, want %v.", have, want)
	}
	if have, want := fake.count("VertexAttribPointer(0, 3, 12, 0)"), 1; have != want {
		t.Fatalf("pointer calls; have %v, want %v.", have, want)
	}
}
