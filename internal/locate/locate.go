// Package locate finds the native Tesseract installation the generated
// bindings will link against. One discovery strategy runs per build: which
// one is decided once from the host platform, and every strategy reports its
// result the same way, as link directives plus include search paths.
package locate

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/ocrbind/tessgen/internal/directive"
)

// LibName is the link name of the engine library.
const LibName = "tesseract"

var (
	// ErrNotFound reports that no usable Tesseract install was resolved.
	ErrNotFound = errors.New("tesseract not found")
	// ErrVersionMismatch reports that the bundled copy for the pinned
	// version is absent or incomplete.
	ErrVersionMismatch = errors.New("bundled tesseract version mismatch")
)

// Platform identifies the host operating system / toolchain category.
// It is determined once at the start of a run and drives both the discovery
// strategy and the enum-generation strategy.
type Platform int

const (
	Linux Platform = iota
	Darwin
	FreeBSD
	Windows
	Other
)

func (p Platform) String() string {
	switch p {
	case Linux:
		return "linux"
	case Darwin:
		return "darwin"
	case FreeBSD:
		return "freebsd"
	case Windows:
		return "windows"
	}
	return "other"
}

// Host returns the platform identity of the running host.
func Host() Platform {
	return FromGOOS(runtime.GOOS)
}

// FromGOOS maps a GOOS value into the closed platform set.
func FromGOOS(goos string) Platform {
	switch goos {
	case "linux":
		return Linux
	case "darwin":
		return Darwin
	case "freebsd":
		return FreeBSD
	case "windows":
		return Windows
	}
	return Other
}

// Discovery is the result of one strategy run: where headers live, where
// the linker should search, and what it should link.
type Discovery struct {
	IncludePaths    []string
	LinkSearchPaths []string
	LinkLibs        []string
}

// EmitTo replays the discovery's link directives into e, search paths first
// so they precede the libraries they satisfy.
func (d Discovery) EmitTo(e directive.Emitter) {
	for _, p := range d.LinkSearchPaths {
		e.Emit(directive.Directive{Kind: directive.LinkSearch, Value: p})
	}
	for _, lib := range d.LinkLibs {
		e.Emit(directive.Directive{Kind: directive.LinkLib, Value: lib})
	}
}

// Strategy is one platform-specific discovery procedure. The set is closed:
// Vcpkg, PkgConfig, Bundled and BareLink are the only implementations.
type Strategy interface {
	Name() string
	locate() (Discovery, error)
}

// StrategyFor selects the host-appropriate strategy.
func StrategyFor(p Platform) Strategy {
	switch p {
	case Windows:
		return Vcpkg{}
	case Linux, Darwin, FreeBSD:
		return PkgConfig{}
	}
	return BareLink{}
}

// Locate runs strategy s and emits its link directives to e. All directives
// are emitted before the include paths are handed back to the caller; a
// strategy that cannot resolve the dependency fails the whole run.
func Locate(s Strategy, e directive.Emitter) (Discovery, error) {
	d, err := s.locate()
	if err != nil {
		return Discovery{}, fmt.Errorf("failed to locate %s via %s: %w", LibName, s.Name(), err)
	}
	d.EmitTo(e)
	return d, nil
}

// BareLink is the fallback for unrecognized platforms: emit a bare
// link-library directive and trust the system default search path.
type BareLink struct{}

func (BareLink) Name() string { return "system-default" }

func (BareLink) locate() (Discovery, error) {
	return Discovery{LinkLibs: []string{LibName}}, nil
}
