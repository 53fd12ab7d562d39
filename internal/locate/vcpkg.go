package locate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Environment overrides honored by the vcpkg strategy. Each is a
// comma-separated list; all three must be present for the overrides to take
// effect, otherwise discovery falls back wholly to the vcpkg tree.
const (
	EnvIncludePaths = "TESSERACT_INCLUDE_PATHS"
	EnvLinkPaths    = "TESSERACT_LINK_PATHS"
	EnvLinkLibs     = "TESSERACT_LINK_LIBS"
)

const defaultTriplet = "x64-windows"

// Vcpkg locates the engine on hosts whose toolchain ships a first-class
// native-package manager. With the three override variables set the values
// are used verbatim; otherwise the installed vcpkg tree under VCPKG_ROOT
// (or VCPKG_INSTALLATION_ROOT) is probed directly, the same way vcpkg's own
// integration resolves installed packages.
type Vcpkg struct {
	Pkg string // package name, defaults to LibName
}

func (Vcpkg) Name() string { return "vcpkg" }

func (v Vcpkg) locate() (Discovery, error) {
	includes, okInc := os.LookupEnv(EnvIncludePaths)
	linkPaths, okLink := os.LookupEnv(EnvLinkPaths)
	linkLibs, okLibs := os.LookupEnv(EnvLinkLibs)
	if okInc && okLink && okLibs {
		return Discovery{
			IncludePaths:    splitList(includes),
			LinkSearchPaths: splitList(linkPaths),
			LinkLibs:        splitList(linkLibs),
		}, nil
	}
	// No partial mix of override and probe: any absent variable means the
	// vcpkg tree is the sole source of truth.
	return v.probe()
}

func (v Vcpkg) probe() (Discovery, error) {
	root := os.Getenv("VCPKG_ROOT")
	if root == "" {
		root = os.Getenv("VCPKG_INSTALLATION_ROOT")
	}
	if root == "" {
		return Discovery{}, fmt.Errorf("%w: VCPKG_ROOT is not set and no override variables are present", ErrNotFound)
	}

	triplet := os.Getenv("VCPKG_DEFAULT_TRIPLET")
	if triplet == "" {
		triplet = defaultTriplet
	}

	installed := filepath.Join(root, "installed", triplet)
	includeDir := filepath.Join(installed, "include")
	if info, err := os.Stat(filepath.Join(includeDir, v.pkg())); err != nil || !info.IsDir() {
		return Discovery{}, fmt.Errorf("%w: package %s is not installed for triplet %s under %s", ErrNotFound, v.pkg(), triplet, root)
	}

	return Discovery{
		IncludePaths:    []string{includeDir},
		LinkSearchPaths: []string{filepath.Join(installed, "lib")},
		LinkLibs:        []string{v.pkg()},
	}, nil
}

func (v Vcpkg) pkg() string {
	if v.Pkg != "" {
		return v.Pkg
	}
	return LibName
}

// splitList parses a comma-separated override value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
