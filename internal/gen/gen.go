// Package gen turns parsed engine headers into Go binding artifacts.
// Each generator consumes one Config and produces one write-once output
// file; policy (allow/block lists, prefix stripping) lives here, parsing
// lives in cparse.
package gen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ocrbind/tessgen/internal/directive"
)

// DefaultPackage is the package name generated artifacts declare.
const DefaultPackage = "tesseract"

// ErrNoDeclarations reports that a generator produced an empty surface.
// A build with zero usable engine entry points is not a valid build.
var ErrNoDeclarations = errors.New("no declarations generated")

// Config carries everything one generator needs for a run. It is built from
// the discovery result plus fixed policy and consumed exactly once.
type Config struct {
	HeaderPath  string
	IncludeDirs []string              // extra header-search dirs from discovery
	Directives  []directive.Directive // link directives replayed into the cgo preamble
	Package     string                // generated package name, defaults to DefaultPackage
}

func (c Config) pkg() string {
	if c.Package != "" {
		return c.Package
	}
	return DefaultPackage
}

// OutputFile is one generated binding artifact.
type OutputFile struct {
	Name    string
	Content []byte
}

// Generator produces one binding artifact from a configuration.
type Generator interface {
	Name() string
	Generate(cfg Config) (*OutputFile, error)
}

// writeFileHeader emits the common prologue of a generated Go file.
func writeFileHeader(b *strings.Builder, pkg string) {
	b.WriteString("// Code generated by tessgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(b, "package %s\n\n", pkg)
}
