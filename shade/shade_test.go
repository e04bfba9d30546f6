package shade

import (
	"fmt"
	"strings"
	"testing"

	"dasa.cc/glxr/glw"
	"golang.org/x/mobile/gl"
)

// fakeContext links programs by scanning shader sources for uniform and
// attribute declarations, handing out locations in declaration order.
// Methods not overridden panic through the nil embedded Context.
type fakeContext struct {
	gl.Context

	names    uint32
	sources  map[gl.Shader]string
	attached []gl.Shader

	uniforms  map[string]gl.Uniform
	attribs   map[string]gl.Attrib
	requested map[string]bool
	missing   []string

	calls []string
}

func newFake() *fakeContext {
	f := &fakeContext{
		sources:   make(map[gl.Shader]string),
		uniforms:  make(map[string]gl.Uniform),
		attribs:   make(map[string]gl.Attrib),
		requested: make(map[string]bool),
	}
	glw.With(f)
	return f
}

func (f *fakeContext) record(format string, args ...interface{}) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeContext) gen() uint32 { f.names++; return f.names }

func (f *fakeContext) CreateShader(ty gl.Enum) gl.Shader { return gl.Shader{Value: f.gen()} }

func (f *fakeContext) ShaderSource(s gl.Shader, src string) { f.sources[s] = src }

func (f *fakeContext) CompileShader(gl.Shader) {}

func (f *fakeContext) GetShaderi(gl.Shader, gl.Enum) int { return 1 }

func (f *fakeContext) CreateProgram() gl.Program { return gl.Program{Init: true, Value: f.gen()} }

func (f *fakeContext) AttachShader(p gl.Program, s gl.Shader) { f.attached = append(f.attached, s) }

func (f *fakeContext) LinkProgram(p gl.Program) {
	for _, s := range f.attached {
		for _, line := range strings.Split(f.sources[s], "\n") {
			fields := strings.Fields(line)
			if len(fields) != 3 {
				continue
			}
			name := strings.TrimSuffix(fields[2], ";")
			switch fields[0] {
			case "uniform":
				f.uniforms[name] = gl.Uniform{Value: int32(len(f.uniforms) + 1)}
			case "attribute":
				f.attribs[name] = gl.Attrib{Value: uint(len(f.attribs))}
			}
		}
	}
}

func (f *fakeContext) GetProgrami(gl.Program, gl.Enum) int { return 1 }

func (f *fakeContext) DetachShader(gl.Program, gl.Shader) {}

func (f *fakeContext) DeleteShader(gl.Shader) {}

func (f *fakeContext) DeleteProgram(gl.Program) {}

func (f *fakeContext) UseProgram(gl.Program) {}

func (f *fakeContext) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	f.requested[name] = true
	if u, ok := f.uniforms[name]; ok {
		return u
	}
	f.missing = append(f.missing, name)
	return gl.Uniform{Value: -1}
}

func (f *fakeContext) GetAttribLocation(p gl.Program, name string) gl.Attrib {
	f.requested[name] = true
	if a, ok := f.attribs[name]; ok {
		return a
	}
	f.missing = append(f.missing, name)
	return gl.Attrib{Value: ^uint(0)}
}

func (f *fakeContext) CreateBuffer() gl.Buffer { return gl.Buffer{Value: f.gen()} }

func (f *fakeContext) BindBuffer(target gl.Enum, b gl.Buffer) {}

func (f *fakeContext) BufferData(target gl.Enum, src []byte, usage gl.Enum) {
	f.record("BufferData(0x%04x, %v)", uint32(target), len(src))
}

func (f *fakeContext) CreateVertexArray() gl.VertexArray { return gl.VertexArray{Value: f.gen()} }

func (f *fakeContext) BindVertexArray(gl.VertexArray) {}

func (f *fakeContext) EnableVertexAttribArray(gl.Attrib) {}

func (f *fakeContext) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	f.record("VertexAttribPointer(%v, %v, %v, %v)", dst.Value, size, stride, offset)
}

func (f *fakeContext) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	f.record("DrawElements(0x%04x, %v)", uint32(mode), count)
}

func (f *fakeContext) GetError() gl.Enum { return 0 }

func TestProgramsBindDeclaredNames(t *testing.T) {
	tests := []struct {
		name   string
		create func() error
	}{
		{"flat", func() error { s := new(Flat); return s.Create() }},
		{"phong", func() error { s := new(Phong); return s.Create() }},
		{"masked", func() error { s := new(Masked); return s.Create() }},
		{"rawtexture", func() error { s := new(RawTexture); return s.Create() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFake()
			if err := tt.create(); err != nil {
				t.Fatalf("create: %v", err)
			}
			if len(f.missing) > 0 {
				t.Fatalf("lookups missed declared names: %v", f.missing)
			}
			declared := len(f.uniforms) + len(f.attribs)
			if have, want := len(f.requested), declared; have != want {
				t.Fatalf("resolved names; have %v, want %v.", have, want)
			}
		})
	}
}

func TestFlatLocations(t *testing.T) {
	f := newFake()
	s := new(Flat)
	if err := s.Create(); err != nil {
		t.Fatalf("create: %v", err)
	}
	if have, want := s.Matrix.Value, f.uniforms["matrix"].Value; have != want {
		t.Fatalf("matrix location; have %v, want %v.", have, want)
	}
	if have, want := gl.Attrib(s.Position).Value, f.attribs["position"].Value; have != want {
		t.Fatalf("position location; have %v, want %v.", have, want)
	}
	if have, want := gl.Attrib(s.Color).Value, f.attribs["color"].Value; have != want {
		t.Fatalf("color location; have %v, want %v.", have, want)
	}
}

func TestUVRectStripLayout(t *testing.T) {
	f := newFake()
	st := new(glw.GPUState)

	position := glw.A2fv(gl.Attrib{Value: 3})
	texcoord := glw.A2fv(gl.Attrib{Value: 7})
	rect, err := UVRect(st, position, texcoord)
	if err != nil {
		t.Fatalf("uvrect: %v", err)
	}

	var loads, pointers []string
	for _, c := range f.calls {
		if strings.HasPrefix(c, "BufferData") {
			loads = append(loads, c)
		}
		if strings.HasPrefix(c, "VertexAttribPointer") {
			pointers = append(pointers, c)
		}
	}
	if have, want := fmt.Sprint(loads), "[BufferData(0x8892, 64) BufferData(0x8893, 16)]"; have != want {
		t.Fatalf("buffer loads; have %v, want %v.", have, want)
	}
	if have, want := fmt.Sprint(pointers), "[VertexAttribPointer(3, 2, 16, 0) VertexAttribPointer(7, 2, 16, 8)]"; have != want {
		t.Fatalf("rigging; have %v, want %v.", have, want)
	}

	if err := rect.Draw(st, gl.TRIANGLE_STRIP); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if have, want := f.calls[len(f.calls)-1], "DrawElements(0x0005, 4)"; have != want {
		t.Fatalf("draw call; have %v, want %v.", have, want)
	}
}
