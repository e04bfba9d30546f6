package glw

import (
	"fmt"

	"golang.org/x/mobile/gl"
)

// Error reports a non-empty error queue drained after op; Code is the last
// code seen before the queue emptied.
type Error struct {
	Op   string
	Code gl.Enum
}

func (e *Error) Error() string { return fmt.Sprintf("%s: gl error 0x%04x", e.Op, uint32(e.Code)) }

// CheckError drains the context error queue and reports it as a single
// *Error, or nil if the queue was empty.
func CheckError(op string) error {
	var (
		code gl.Enum
		n    int
	)
	for e := ctx.GetError(); e != gl.NO_ERROR; e = ctx.GetError() {
		code = e
		n++
	}
	if n == 0 {
		return nil
	}
	return &Error{Op: op, Code: code}
}

// AllocationError reports a create call that produced no object.
type AllocationError struct {
	Op string
}

func (e *AllocationError) Error() string { return fmt.Sprintf("%s no object allocated", e.Op) }

// BindError reports a bind attempted while another binding was outstanding.
type BindError struct {
	Op string
}

func (e *BindError) Error() string { return fmt.Sprintf("%s: binding already outstanding", e.Op) }

// ShaderCompileError carries the verbatim info log of a failed compile.
type ShaderCompileError struct {
	Where   string
	Stage   string
	InfoLog string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("%s %s\n%s", e.Where, e.Stage, e.InfoLog)
}

// ProgramLinkError carries the verbatim info log of a failed link.
type ProgramLinkError struct {
	Where   string
	InfoLog string
}

func (e *ProgramLinkError) Error() string { return fmt.Sprintf("%s\n%s", e.Where, e.InfoLog) }

// MissingBindingError reports a uniform or attribute name the linked
// program does not expose.
type MissingBindingError struct {
	Name string
}

func (e *MissingBindingError) Error() string {
	return fmt.Sprintf("no uniform or attribute named %q", e.Name)
}

// SizeMismatchError reports pixel data whose length disagrees with the
// dimensions and format it was submitted under.
type SizeMismatchError struct {
	Width, Height, BytesPerPixel, Len int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("size mismatch: %v*%v*%v != %v", e.Width, e.Height, e.BytesPerPixel, e.Len)
}
