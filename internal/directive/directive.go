// Package directive models the link instructions a discovery strategy hands
// to the consuming build toolchain.
package directive

import (
	"fmt"
	"io"
	"strings"
)

// Kind classifies a build-toolchain directive.
type Kind int

const (
	// LinkSearch adds a directory to the linker search path.
	LinkSearch Kind = iota
	// LinkLib links a named library.
	LinkLib
)

// A Directive is one declarative instruction to the linker.
type Directive struct {
	Kind  Kind
	Value string
}

func (d Directive) String() string {
	switch d.Kind {
	case LinkSearch:
		return "link-search=" + d.Value
	case LinkLib:
		return "link-lib=" + d.Value
	}
	return fmt.Sprintf("unknown(%d)=%s", int(d.Kind), d.Value)
}

// Emitter receives directives as a discovery strategy resolves them.
type Emitter interface {
	Emit(d Directive)
}

// Recorder collects emitted directives in order. It is the default sink:
// the pipeline replays the recorded directives into the generated cgo
// preamble, and tests inspect them directly.
type Recorder struct {
	directives []Directive
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Emit(d Directive) {
	r.directives = append(r.directives, d)
}

// Directives returns the recorded directives in emission order.
func (r *Recorder) Directives() []Directive {
	out := make([]Directive, len(r.directives))
	copy(out, r.directives)
	return out
}

// Printer writes each directive as a "tessgen:<kind>=<value>" line, for
// build systems that consume flags from the tool's stdout.
type Printer struct {
	W io.Writer
}

func (p Printer) Emit(d Directive) {
	fmt.Fprintf(p.W, "tessgen:%s\n", d)
}

// Tee forwards every directive to all of its sinks.
type Tee []Emitter

func (t Tee) Emit(d Directive) {
	for _, e := range t {
		e.Emit(d)
	}
}

// LDFlags renders the directives as a linker flag string suitable for a
// "#cgo LDFLAGS:" line. Order is preserved: search paths must precede the
// libraries they satisfy.
func LDFlags(directives []Directive) string {
	var b strings.Builder
	for _, d := range directives {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		switch d.Kind {
		case LinkSearch:
			b.WriteString("-L" + d.Value)
		case LinkLib:
			b.WriteString("-l" + d.Value)
		}
	}
	return b.String()
}

// CFlags renders include directories as a compiler flag string suitable for
// a "#cgo CFLAGS:" line.
func CFlags(includeDirs []string) string {
	var b strings.Builder
	for _, dir := range includeDirs {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("-I" + dir)
	}
	return b.String()
}
