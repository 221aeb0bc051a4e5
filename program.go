package crt

import (
	"fmt"
	"sync"

	"github.com/gogpu/crt/shader"
)

// ProgramDescriptor describes a program to compile.
type ProgramDescriptor struct {
	// Label names the program, e.g. "bloom-filter".
	Label string

	// Kind is the stage the program belongs to.
	Kind Kind

	// Source is the complete WGSL module: the shared vertex stage followed by
	// the fragment source after placeholder substitution.
	Source string

	// VertexEntryPoint and FragmentEntryPoint name the entry functions.
	VertexEntryPoint   string
	FragmentEntryPoint string

	// UniformSize is the byte size of the uniform block at binding 0.
	UniformSize uint64
}

// Program is a compiled shader program owned by one filter.
type Program struct {
	desc     ProgramDescriptor
	fragment string
	handle   any
}

// Label returns the program label.
func (p *Program) Label() string { return p.desc.Label }

// Source returns the complete WGSL module handed to the compiler.
func (p *Program) Source() string { return p.desc.Source }

// FragmentSource returns the fragment source after placeholder substitution.
func (p *Program) FragmentSource() string { return p.fragment }

// Descriptor returns a copy of the descriptor the program was compiled from.
func (p *Program) Descriptor() ProgramDescriptor { return p.desc }

// Handle returns the compiler-specific handle, or nil when no compiler was
// registered at construction.
func (p *Program) Handle() any { return p.handle }

// Compiler allocates GPU programs for filters. backend/native provides an
// implementation on gogpu/wgpu.
type Compiler interface {
	// Name identifies the compiler in logs.
	Name() string

	// CompileProgram compiles desc and returns a handle the rendering host
	// understands. Errors are returned to the filter constructor unchanged
	// apart from wrapping.
	CompileProgram(desc *ProgramDescriptor) (any, error)
}

var (
	compilerMu sync.RWMutex
	compiler   Compiler
)

// RegisterCompiler sets the compiler used by filter constructors. Passing nil
// restores the default, which keeps programs as source only.
//
// RegisterCompiler is safe for concurrent use; filters already constructed
// keep the handle they were given.
func RegisterCompiler(c Compiler) {
	compilerMu.Lock()
	compiler = c
	compilerMu.Unlock()
}

// ProgramCompiler returns the registered compiler, or nil.
func ProgramCompiler() Compiler {
	compilerMu.RLock()
	c := compiler
	compilerMu.RUnlock()
	return c
}

// specialize runs placeholder substitution over a stage source. Unresolved
// placeholders are logged; the shader compiler reports them as errors.
func specialize(kind Kind, source string, values shader.Values) string {
	return shader.ReplaceFunc(source, values, func(name string) {
		Logger().Warn("crt: shader placeholder has no value",
			"stage", kind.String(), "placeholder", name)
	})
}

// newProgram builds the descriptor for a stage and compiles it with the
// registered compiler.
func newProgram(kind Kind, fragment string, uniformSize int) (*Program, error) {
	p := &Program{
		desc: ProgramDescriptor{
			Label:              kind.Label(),
			Kind:               kind,
			Source:             shader.Module(fragment),
			VertexEntryPoint:   shader.VertexEntryPoint,
			FragmentEntryPoint: shader.FragmentEntryPoint,
			UniformSize:        uint64(uniformSize), //nolint:gosec // uniform blocks are tiny
		},
		fragment: fragment,
	}

	c := ProgramCompiler()
	if c == nil {
		return p, nil
	}
	handle, err := c.CompileProgram(&p.desc)
	if err != nil {
		return nil, fmt.Errorf("crt: compile %s with %s: %w", p.desc.Label, c.Name(), err)
	}
	p.handle = handle
	Logger().Debug("crt: program compiled", "label", p.desc.Label, "compiler", c.Name())
	return p, nil
}
