package locate

import (
	"fmt"
	"os"
	"path/filepath"
)

// Version is the exact bundled engine release this codebase was built and
// tested against. The bundled-copy path is derived from it; changing the pin
// without shipping a matching copy under resources/libs is a build failure.
const Version = "5.3.4"

// libsBase is the fixed base directory holding bundled engine copies,
// one subdirectory per version string.
const libsBase = "resources/libs"

// Bundled resolves the version-pinned prebuilt copy of the engine shipped
// with the project. The orchestrator uses it as the default strategy on
// every platform.
type Bundled struct {
	Base    string // base directory, defaults to resources/libs
	Version string // engine release, defaults to Version
}

func (Bundled) Name() string { return "bundled" }

// Paths returns the lib and include directories for the pinned copy.
// It is a pure function of (base, version) and performs no filesystem access.
func (b Bundled) Paths() (libDir, includeDir string) {
	root := filepath.Join(b.base(), LibName, b.version())
	return filepath.Join(root, "lib"), filepath.Join(root, "include")
}

func (b Bundled) locate() (Discovery, error) {
	libDir, includeDir := b.Paths()
	for _, dir := range []string{libDir, includeDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return Discovery{}, fmt.Errorf("%w: %s@%s is missing %s", ErrVersionMismatch, LibName, b.version(), dir)
		}
	}
	return Discovery{
		IncludePaths:    []string{includeDir},
		LinkSearchPaths: []string{libDir},
		LinkLibs:        []string{LibName},
	}, nil
}

func (b Bundled) base() string {
	if b.Base != "" {
		return b.Base
	}
	return libsBase
}

func (b Bundled) version() string {
	if b.Version != "" {
		return b.Version
	}
	return Version
}
