// Package shade provides the shader programs the example scenes draw with.
//
// Each program is a struct of typed uniform and attribute bindings filled
// by glw.Program.Unmarshal, so field names double as the GLSL names.
package shade

import (
	"dasa.cc/glxr/glw"
	"golang.org/x/mobile/gl"
)

// Geometry is rigged vertex data ready to draw against a program.
type Geometry interface {
	Draw(st *glw.GPUState, mode gl.Enum) error
	Delete()
}

// UVRect returns a two unit quad of interleaved position and texcoord
// pairs, drawn as a four index triangle strip. Texcoords map the first
// pixel row of an upload to the top edge.
func UVRect(st *glw.GPUState, position, texcoord glw.A2fv) (*glw.VertexElement, error) {
	ve := new(glw.VertexElement)
	err := ve.Create(st, gl.STATIC_DRAW,
		[]float32{
			-1, +1, 0, 0,
			-1, -1, 0, 1,
			+1, +1, 1, 0,
			+1, -1, 1, 1,
		},
		[]uint32{0, 1, 2, 3},
		position.StepSize(4, 0),
		texcoord.StepSize(4, 2),
	)
	if err != nil {
		return nil, err
	}
	return ve, nil
}

// Flat colors geometry from a per vertex color attribute.
type Flat struct {
	prg glw.Program

	Matrix   glw.U16fv
	Position glw.A3fv
	Color    glw.A3fv
}

func (s *Flat) Create() error {
	if err := s.prg.Build(flatVsrc, flatFsrc); err != nil {
		return err
	}
	s.prg.Unmarshal(s)
	return nil
}

func (s *Flat) Use()    { s.prg.Use() }
func (s *Flat) Delete() { s.prg.Delete() }

const flatVsrc glw.VertSrc = `#version 100
uniform mat4 matrix;
attribute vec3 position;
attribute vec3 color;

varying vec3 vcolor;

void main() {
	gl_Position = matrix * vec4(position, 1.0);
	vcolor = color;
}`

const flatFsrc glw.FragSrc = `#version 100
precision mediump float;

varying vec3 vcolor;

void main() {
	gl_FragColor = vec4(vcolor, 1.0);
}`

// Phong lights a material color by a directional sun with a small
// ambient floor.
type Phong struct {
	prg glw.Program

	Model    glw.U16fv
	Pv       glw.U16fv
	Sun      glw.U3fv
	Color    glw.U4fv
	Position glw.A3fv
	Normal   glw.A3fv
}

func (s *Phong) Create() error {
	if err := s.prg.Build(phongVsrc, phongFsrc); err != nil {
		return err
	}
	s.prg.Unmarshal(s)
	return nil
}

func (s *Phong) Use()    { s.prg.Use() }
func (s *Phong) Delete() { s.prg.Delete() }

const phongVsrc glw.VertSrc = `#version 100
uniform mat4 model;
uniform mat4 pv;
attribute vec3 position;
attribute vec3 normal;

varying vec3 vnormal;

void main() {
	gl_Position = pv * model * vec4(position, 1.0);
	vnormal = mat3(model[0].xyz, model[1].xyz, model[2].xyz) * normal;
}`

const phongFsrc glw.FragSrc = `#version 100
precision mediump float;
uniform vec3 sun;
uniform vec4 color;

varying vec3 vnormal;

void main() {
	float diffuse = max(dot(normalize(vnormal), normalize(sun)), 0.0);
	gl_FragColor = vec4(color.rgb * (0.1 + diffuse), color.a);
}`

// Masked mixes background and foreground colors by the red channel of a
// coverage texture, as produced by glyph rasterization.
type Masked struct {
	prg glw.Program

	Matrix   glw.U16fv
	Tex      glw.U1i
	Fg       glw.U4fv
	Bg       glw.U4fv
	Position glw.A2fv
	Texcoord glw.A2fv
}

func (s *Masked) Create() error {
	if err := s.prg.Build(maskedVsrc, maskedFsrc); err != nil {
		return err
	}
	s.prg.Unmarshal(s)
	return nil
}

func (s *Masked) Use()    { s.prg.Use() }
func (s *Masked) Delete() { s.prg.Delete() }

const maskedVsrc glw.VertSrc = `#version 100
uniform mat4 matrix;
attribute vec2 position;
attribute vec2 texcoord;

varying vec2 vtexcoord;

void main() {
	gl_Position = matrix * vec4(position, 0.0, 1.0);
	vtexcoord = texcoord;
}`

const maskedFsrc glw.FragSrc = `#version 100
precision mediump float;
uniform sampler2D tex;
uniform vec4 fg;
uniform vec4 bg;

varying vec2 vtexcoord;

void main() {
	gl_FragColor = mix(bg, fg, texture2D(tex, vtexcoord).r);
}`

// RawTexture samples a texture straight through.
type RawTexture struct {
	prg glw.Program

	Matrix   glw.U16fv
	Tex      glw.U1i
	Position glw.A2fv
	Texcoord glw.A2fv
}

func (s *RawTexture) Create() error {
	if err := s.prg.Build(rawTextureVsrc, rawTextureFsrc); err != nil {
		return err
	}
	s.prg.Unmarshal(s)
	return nil
}

func (s *RawTexture) Use()    { s.prg.Use() }
func (s *RawTexture) Delete() { s.prg.Delete() }

const rawTextureVsrc glw.VertSrc = `#version 100
uniform mat4 matrix;
attribute vec2 position;
attribute vec2 texcoord;

varying vec2 vtexcoord;

void main() {
	gl_Position = matrix * vec4(position, 0.0, 1.0);
	vtexcoord = texcoord;
}`

const rawTextureFsrc glw.FragSrc = `#version 100
precision mediump float;
uniform sampler2D tex;

varying vec2 vtexcoord;

void main() {
	gl_FragColor = texture2D(tex, vtexcoord);
}`
