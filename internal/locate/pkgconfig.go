package locate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"golang.org/x/sys/execabs"
)

// minVersion is the oldest engine release the generated bindings are known
// to work with.
const minVersion = "4.1"

// PkgConfig locates the engine through the pkg-config metadata database on
// POSIX-like hosts. Set PKG_CONFIG to override the queried binary, and
// PKG_CONFIG_PATH as usual for installs outside the default prefix.
type PkgConfig struct {
	Pkg        string // pkg-config package name, defaults to LibName
	MinVersion string // minimum accepted version, defaults to minVersion

	// Normalize rewrites each include path reported by pkg-config.
	// Vendor metadata sometimes points one level too deep (the package's
	// own subdirectory under include/); the default policy drops the last
	// path segment unless it is already named "include".
	Normalize func(string) string
}

func (PkgConfig) Name() string { return "pkg-config" }

func (p PkgConfig) locate() (Discovery, error) {
	version, err := p.query("--modversion")
	if err != nil {
		return Discovery{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if err := checkMinVersion(version, p.minVersion()); err != nil {
		return Discovery{}, err
	}

	cflags, err := p.query("--cflags-only-I")
	if err != nil {
		return Discovery{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	ldflags, err := p.query("--libs-only-L")
	if err != nil {
		return Discovery{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	normalize := p.Normalize
	if normalize == nil {
		normalize = TrimIncludeSuffix
	}
	var includes []string
	for _, dir := range flagValues(cflags, "-I") {
		includes = append(includes, normalize(dir))
	}

	d := Discovery{IncludePaths: includes, LinkLibs: []string{LibName}}
	if linkPaths := flagValues(ldflags, "-L"); len(linkPaths) > 0 {
		d.LinkSearchPaths = []string{linkPaths[0]}
	}
	return d, nil
}

func (p PkgConfig) query(flag string) (string, error) {
	tool := os.Getenv("PKG_CONFIG")
	if tool == "" {
		tool = "pkg-config"
	}
	out, err := execabs.Command(tool, flag, p.pkg()).Output()
	if err != nil {
		return "", fmt.Errorf("%s %s %s: %v", tool, flag, p.pkg(), err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (p PkgConfig) pkg() string {
	if p.Pkg != "" {
		return p.Pkg
	}
	return LibName
}

func (p PkgConfig) minVersion() string {
	if p.MinVersion != "" {
		return p.MinVersion
	}
	return minVersion
}

// checkMinVersion compares a pkg-config modversion against the minimum.
// Release suffixes like "5.3.4-rc1" compare as semver prerelease.
func checkMinVersion(version, min string) error {
	have, want := "v"+version, "v"+min
	if !semver.IsValid(have) {
		return fmt.Errorf("%w: unparsable version %q reported by pkg-config", ErrNotFound, version)
	}
	if semver.Compare(have, want) < 0 {
		return fmt.Errorf("%w: version %s is older than required %s", ErrNotFound, version, min)
	}
	return nil
}

// TrimIncludeSuffix is the default include-path normalization policy:
// drop the trailing path segment unless it is already named "include".
func TrimIncludeSuffix(path string) string {
	path = filepath.Clean(path)
	if filepath.Base(path) == "include" {
		return path
	}
	return filepath.Dir(path)
}

// flagValues extracts the values of every flag with the given prefix from a
// pkg-config flag line, in order.
func flagValues(flagLine, prefix string) []string {
	var values []string
	for _, f := range strings.Fields(flagLine) {
		if v := strings.TrimPrefix(f, prefix); v != f && v != "" {
			values = append(values, v)
		}
	}
	return values
}
