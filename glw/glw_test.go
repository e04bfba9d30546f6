package glw

import (
	"fmt"
	"strings"

	"golang.org/x/mobile/gl"
)

// fakeContext records calls made against it, handing out sequential names
// for created objects. Methods not overridden panic through the embedded
// nil interface, keeping tests honest about what they touch.
type fakeContext struct {
	gl.Context

	calls []string
	names uint32
	live  map[uint32]bool
	errs  []gl.Enum

	compileFail map[gl.Enum]bool
	infoLog     string
	linkFail    bool
	uniforms    map[string]int32
	attribs     map[string]uint
}

func newFake() *fakeContext {
	f := &fakeContext{
		live:        make(map[uint32]bool),
		compileFail: make(map[gl.Enum]bool),
		uniforms:    make(map[string]int32),
		attribs:     make(map[string]uint),
	}
	With(f)
	return f
}

func (f *fakeContext) record(format string, args ...interface{}) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeContext) gen() uint32 {
	f.names++
	f.live[f.names] = true
	return f.names
}

// tail returns the last n recorded calls.
func (f *fakeContext) tail(n int) []string {
	if n > len(f.calls) {
		n = len(f.calls)
	}
	return f.calls[len(f.calls)-n:]
}

// count returns how many recorded calls begin with prefix.
func (f *fakeContext) count(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeContext) GetError() gl.Enum {
	if len(f.errs) == 0 {
		return gl.NO_ERROR
	}
	e := f.errs[0]
	f.errs = f.errs[1:]
	return e
}

func (f *fakeContext) CreateBuffer() gl.Buffer { return gl.Buffer{Value: f.gen()} }

func (f *fakeContext) DeleteBuffer(v gl.Buffer) {
	f.record("DeleteBuffer(%v)", v.Value)
	delete(f.live, v.Value)
}

func (f *fakeContext) BindBuffer(target gl.Enum, b gl.Buffer) {
	f.record("BindBuffer(0x%04x, %v)", uint32(target), b.Value)
}

func (f *fakeContext) BufferData(target gl.Enum, src []byte, usage gl.Enum) {
	f.record("BufferData(0x%04x, %v)", uint32(target), len(src))
}

func (f *fakeContext) BufferSubData(target gl.Enum, offset int, data []byte) {
	f.record("BufferSubData(0x%04x, %v, %v)", uint32(target), offset, len(data))
}

func (f *fakeContext) CreateVertexArray() gl.VertexArray { return gl.VertexArray{Value: f.gen()} }

func (f *fakeContext) BindVertexArray(v gl.VertexArray) {
	f.record("BindVertexArray(%v)", v.Value)
}

func (f *fakeContext) DeleteVertexArray(v gl.VertexArray) {
	f.record("DeleteVertexArray(%v)", v.Value)
	delete(f.live, v.Value)
}

func (f *fakeContext) EnableVertexAttribArray(a gl.Attrib) {
	f.record("EnableVertexAttribArray(%v)", a.Value)
}

func (f *fakeContext) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	f.record("VertexAttribPointer(%v, %v, %v, %v)", dst.Value, size, stride, offset)
}

func (f *fakeContext) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	f.record("DrawElements(0x%04x, %v)", uint32(mode), count)
}

func (f *fakeContext) DrawArrays(mode gl.Enum, first, count int) {
	f.record("DrawArrays(0x%04x, %v, %v)", uint32(mode), first, count)
}

func (f *fakeContext) ActiveTexture(texture gl.Enum) {
	f.record("ActiveTexture(0x%04x)", uint32(texture))
}

func (f *fakeContext) CreateTexture() gl.Texture { return gl.Texture{Value: f.gen()} }

func (f *fakeContext) DeleteTexture(v gl.Texture) {
	f.record("DeleteTexture(%v)", v.Value)
	delete(f.live, v.Value)
}

func (f *fakeContext) BindTexture(target gl.Enum, t gl.Texture) {
	f.record("BindTexture(0x%04x, %v)", uint32(target), t.Value)
}

func (f *fakeContext) TexParameteri(target, pname gl.Enum, param int) {
	f.record("TexParameteri(0x%04x, 0x%04x, %v)", uint32(target), uint32(pname), param)
}

func (f *fakeContext) TexImage2D(target gl.Enum, level int, internalFormat int, width, height int, format gl.Enum, ty gl.Enum, data []byte) {
	f.record("TexImage2D(%v, %v, 0x%04x, %v)", width, height, uint32(format), len(data))
}

func (f *fakeContext) TexSubImage2D(target gl.Enum, level int, x, y, width, height int, format, ty gl.Enum, data []byte) {
	f.record("TexSubImage2D(%v, %v, %v, %v)", x, y, width, height)
}

func (f *fakeContext) GenerateMipmap(target gl.Enum) {
	f.record("GenerateMipmap(0x%04x)", uint32(target))
}

func (f *fakeContext) CreateFramebuffer() gl.Framebuffer { return gl.Framebuffer{Value: f.gen()} }

func (f *fakeContext) DeleteFramebuffer(v gl.Framebuffer) {
	f.record("DeleteFramebuffer(%v)", v.Value)
	delete(f.live, v.Value)
}

func (f *fakeContext) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	f.record("BindFramebuffer(0x%04x, %v)", uint32(target), fb.Value)
}

func (f *fakeContext) FramebufferTexture2D(target, attachment, texTarget gl.Enum, t gl.Texture, level int) {
	f.record("FramebufferTexture2D(0x%04x, %v)", uint32(attachment), t.Value)
}

func (f *fakeContext) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	return gl.FRAMEBUFFER_COMPLETE
}

func (f *fakeContext) Viewport(x, y, width, height int) {
	f.record("Viewport(%v, %v, %v, %v)", x, y, width, height)
}

func (f *fakeContext) CreateProgram() gl.Program {
	return gl.Program{Init: true, Value: f.gen()}
}

func (f *fakeContext) DeleteProgram(p gl.Program) {
	f.record("DeleteProgram(%v)", p.Value)
	delete(f.live, p.Value)
}

func (f *fakeContext) CreateShader(ty gl.Enum) gl.Shader {
	f.record("CreateShader(0x%04x)", uint32(ty))
	return gl.Shader{Value: f.gen()}
}

func (f *fakeContext) ShaderSource(s gl.Shader, src string) {}

func (f *fakeContext) CompileShader(s gl.Shader) {
	f.record("CompileShader(%v)", s.Value)
}

func (f *fakeContext) GetShaderi(s gl.Shader, pname gl.Enum) int {
	if f.compileFail[gl.FRAGMENT_SHADER] && f.count("CompileShader") == 2 {
		return 0
	}
	if f.compileFail[gl.VERTEX_SHADER] && f.count("CompileShader") == 1 {
		return 0
	}
	return 1
}

func (f *fakeContext) GetShaderInfoLog(s gl.Shader) string { return f.infoLog }

func (f *fakeContext) AttachShader(p gl.Program, s gl.Shader) {
	f.record("AttachShader(%v, %v)", p.Value, s.Value)
}

func (f *fakeContext) DetachShader(p gl.Program, s gl.Shader) {
	f.record("DetachShader(%v, %v)", p.Value, s.Value)
}

func (f *fakeContext) DeleteShader(s gl.Shader) {
	f.record("DeleteShader(%v)", s.Value)
	delete(f.live, s.Value)
}

func (f *fakeContext) LinkProgram(p gl.Program) {
	f.record("LinkProgram(%v)", p.Value)
}

func (f *fakeContext) GetProgrami(p gl.Program, pname gl.Enum) int {
	if f.linkFail {
		return 0
	}
	return 1
}

func (f *fakeContext) GetProgramInfoLog(p gl.Program) string { return f.infoLog }

func (f *fakeContext) UseProgram(p gl.Program) {
	f.record("UseProgram(%v)", p.Value)
}

func (f *fakeContext) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	f.record("GetUniformLocation(%q)", name)
	if loc, ok := f.uniforms[name]; ok {
		return gl.Uniform{Value: loc}
	}
	return gl.Uniform{Value: -1}
}

func (f *fakeContext) GetAttribLocation(p gl.Program, name string) gl.Attrib {
	f.record("GetAttribLocation(%q)", name)
	if loc, ok := f.attribs[name]; ok {
		return gl.Attrib{Value: loc}
	}
	return gl.Attrib{Value: ^uint(0)}
}

func (f *fakeContext) Uniform1i(dst gl.Uniform, v int) {
	f.record("Uniform1i(%v, %v)", dst.Value, v)
}

func (f *fakeContext) Uniform1f(dst gl.Uniform, v float32) {
	f.record("Uniform1f(%v, %v)", dst.Value, v)
}

func (f *fakeContext) Uniform2fv(dst gl.Uniform, v []float32) {
	f.record("Uniform2fv(%v, %v)", dst.Value, v)
}

func (f *fakeContext) Uniform3fv(dst gl.Uniform, v []float32) {
	f.record("Uniform3fv(%v, %v)", dst.Value, v)
}

func (f *fakeContext) Uniform4fv(dst gl.Uniform, v []float32) {
	f.record("Uniform4fv(%v, %v)", dst.Value, v)
}

func (f *fakeContext) UniformMatrix3fv(dst gl.Uniform, src []float32) {
	f.record("UniformMatrix3fv(%v)", dst.Value)
}

func (f *fakeContext) UniformMatrix4fv(dst gl.Uniform, src []float32) {
	f.record("UniformMatrix4fv(%v)", dst.Value)
}

func (f *fakeContext) PixelStorei(pname gl.Enum, param int32) {
	f.record("PixelStorei(0x%04x, %v)", uint32(pname), param)
}

func (f *fakeContext) ReadPixels(dst []byte, x, y, width, height int, format, ty gl.Enum) {
	f.record("ReadPixels(%v, %v)", width, height)
}
