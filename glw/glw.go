package glw

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"reflect"
	"runtime"
	"strings"
	"unicode"

	"golang.org/x/mobile/gl"
)

var (
	ctx    gl.Context
	logger = log.New(os.Stderr, "glw: ", 0)
)

// TODO allow package to be used by multiple contexts in parallel.
func With(glctx gl.Context) gl.Context { ctx = glctx; return glctx }

func RGBA(c color.Color) (r, g, b, a float32) {
	ur, ug, ub, ua := c.RGBA()
	return float32(uint8(ur)) / 255, float32(uint8(ug)) / 255, float32(uint8(ub)) / 255, float32(uint8(ua)) / 255
}

func must(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}

// caller returns first file and line number outside of this package for calling
// goroutine's stack, prefixed with defaultName which may be overridden based on
// stack frames.
func caller(defaultName string) string {
	pc := make([]uintptr, 10)
	n := runtime.Callers(2, pc)
	frames := runtime.CallersFrames(pc[:n])

	var (
		frame runtime.Frame
		more  bool
		name  = defaultName
		inpkg = func(s string) bool { return strings.HasPrefix(s, "dasa.cc/glxr/glw") }
	)

	for frame, more = frames.Next(); more && inpkg(frame.Function); frame, more = frames.Next() {
		switch frame.Function {
		case "dasa.cc/glxr/glw.VertSrc.Compile":
			name = "VertexShader"
		case "dasa.cc/glxr/glw.FragSrc.Compile":
			name = "FragmentShader"
		}
	}

	return fmt.Sprintf("%s %s:%v", name, frame.File, frame.Line)
}

func compile(typ gl.Enum, src string) (gl.Shader, error) {
	shd := ctx.CreateShader(typ)
	if shd.Value == 0 {
		return shd, &AllocationError{Op: caller("CreateShader")}
	}
	ctx.ShaderSource(shd, src)
	ctx.CompileShader(shd)
	if ctx.GetShaderi(shd, gl.COMPILE_STATUS) == 0 {
		stage := "vertex"
		if typ == gl.FRAGMENT_SHADER {
			stage = "fragment"
		}
		return shd, &ShaderCompileError{
			Where:   caller("CompileShader"),
			Stage:   stage,
			InfoLog: ctx.GetShaderInfoLog(shd),
		}
	}
	return shd, nil
}

type VertSrc string

func (src VertSrc) Compile() (gl.Shader, error) { return compile(gl.VERTEX_SHADER, string(src)) }

type FragSrc string

func (src FragSrc) Compile() (gl.Shader, error) { return compile(gl.FRAGMENT_SHADER, string(src)) }

// Program identifies a compiled and linked shader program. Uniform and
// attribute lookups are cached for the life of the linked program.
type Program struct {
	gl.Program
	uniforms map[string]gl.Uniform
	attribs  map[string]gl.Attrib
}

func (prg Program) Use() { ctx.UseProgram(prg.Program) }

func (prg *Program) Delete() {
	if prg.Value == 0 {
		return
	}
	ctx.DeleteProgram(prg.Program)
	prg.Program = gl.Program{}
	prg.uniforms, prg.attribs = nil, nil
}

func (prg *Program) MustBuild(vsrc VertSrc, fsrc FragSrc) { must(prg.Build(vsrc, fsrc)) }

// Build compiles and links the program. Shaders are detached and deleted
// once linked so the program is the only name kept live.
func (prg *Program) Build(vsrc VertSrc, fsrc FragSrc) error {
	prg.Program = ctx.CreateProgram()
	if prg.Value == 0 {
		return &AllocationError{Op: caller("CreateProgram")}
	}

	vshd, err := vsrc.Compile()
	if err != nil {
		return err
	}
	ctx.AttachShader(prg.Program, vshd)
	defer ctx.DeleteShader(vshd)

	fshd, err := fsrc.Compile()
	if err != nil {
		return err
	}
	ctx.AttachShader(prg.Program, fshd)
	defer ctx.DeleteShader(fshd)

	ctx.LinkProgram(prg.Program)
	if ctx.GetProgrami(prg.Program, gl.LINK_STATUS) == 0 {
		return &ProgramLinkError{
			Where:   caller("LinkProgram"),
			InfoLog: ctx.GetProgramInfoLog(prg.Program),
		}
	}

	ctx.DetachShader(prg.Program, vshd)
	ctx.DetachShader(prg.Program, fshd)
	return nil
}

// Uniform resolves name in the linked program; a name the linker discarded
// or never saw resolves to MissingBindingError and leaves the program
// usable for further lookups.
func (prg *Program) Uniform(name string) (gl.Uniform, error) {
	if u, ok := prg.uniforms[name]; ok {
		return u, nil
	}
	u := ctx.GetUniformLocation(prg.Program, name)
	if u.Value < 0 {
		return u, &MissingBindingError{Name: name}
	}
	if prg.uniforms == nil {
		prg.uniforms = make(map[string]gl.Uniform)
	}
	prg.uniforms[name] = u
	return u, nil
}

// Attrib resolves name in the linked program; see Uniform.
func (prg *Program) Attrib(name string) (gl.Attrib, error) {
	if a, ok := prg.attribs[name]; ok {
		return a, nil
	}
	a := ctx.GetAttribLocation(prg.Program, name)
	if int32(a.Value) == -1 {
		return a, &MissingBindingError{Name: name}
	}
	if prg.attribs == nil {
		prg.attribs = make(map[string]gl.Attrib)
	}
	prg.attribs[name] = a
	return a, nil
}

func (prg *Program) uniform(name string) gl.Uniform {
	u, err := prg.Uniform(name)
	if err != nil {
		logger.Printf("%s: %v", caller("Unmarshal"), err)
	}
	return u
}

func (prg *Program) attrib(name string) gl.Attrib {
	a, err := prg.Attrib(name)
	if err != nil {
		logger.Printf("%s: %v", caller("Unmarshal"), err)
	}
	return a
}

// Unmarshal recursively sets fields of dst for recognized types, resolving
// locations by the lowercased leading rune of each field name. Missing
// bindings are logged and skipped.
func (prg *Program) Unmarshal(dst interface{}) {
	var val reflect.Value
	if v, ok := dst.(reflect.Value); ok {
		val = v
	} else {
		val = reflect.ValueOf(dst).Elem()
	}
	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		if f := val.Field(i); f.CanSet() {
			p := []rune(typ.Field(i).Name)
			p[0] = unicode.ToLower(p[0])
			name := string(p)
			switch f.Interface().(type) {
			case A2fv:
				f.Set(reflect.ValueOf(A2fv(prg.attrib(name))))
			case A3fv:
				f.Set(reflect.ValueOf(A3fv(prg.attrib(name))))
			case A4fv:
				f.Set(reflect.ValueOf(A4fv(prg.attrib(name))))
			case U1i:
				f.Set(reflect.ValueOf(U1i(prg.uniform(name))))
			case U2i:
				f.Set(reflect.ValueOf(U2i(prg.uniform(name))))
			case U3i:
				f.Set(reflect.ValueOf(U3i(prg.uniform(name))))
			case U4i:
				f.Set(reflect.ValueOf(U4i(prg.uniform(name))))
			case U1f:
				f.Set(reflect.ValueOf(U1f(prg.uniform(name))))
			case U2fv:
				f.Set(reflect.ValueOf(U2fv{Uniform: prg.uniform(name)}))
			case U3fv:
				f.Set(reflect.ValueOf(U3fv{Uniform: prg.uniform(name)}))
			case U4fv:
				f.Set(reflect.ValueOf(U4fv{Uniform: prg.uniform(name)}))
			case U9fv:
				f.Set(reflect.ValueOf(U9fv{Uniform: prg.uniform(name), m: ident9fv()}))
			case U16fv:
				f.Set(reflect.ValueOf(U16fv{Uniform: prg.uniform(name), m: ident16fv()}))
			default:
				if f.Kind() == reflect.Struct {
					prg.Unmarshal(f)
				}
			}
		}
	}
}
