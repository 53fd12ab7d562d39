package gen

import (
	_ "embed"

	"github.com/ocrbind/tessgen/internal/locate"
)

// public_types_darwin.go.txt is hand-maintained: macOS system clang cannot
// evaluate the constexpr initializers in the vendor header, so the parsed
// path is unreliable there. It must be kept in sync by hand whenever the
// vendored enumerations change; the drift test on parsed-path platforms
// checks it against fresh generator output.
//
//go:embed public_types_darwin.go.txt
var precomputedDarwin []byte

// Precomputed substitutes the parsed enum path with a fixed, hand-authored
// artifact. It ignores the configuration entirely: the output is
// byte-identical to the committed file.
type Precomputed struct{}

func (Precomputed) Name() string { return "public-types-precomputed" }

func (Precomputed) Generate(Config) (*OutputFile, error) {
	out := make([]byte, len(precomputedDarwin))
	copy(out, precomputedDarwin)
	return &OutputFile{Name: "public-types-precomputed", Content: out}, nil
}

// EnumsFor selects the enum-generation strategy for a platform: parsed
// everywhere except darwin, where the precomputed artifact substitutes.
func EnumsFor(p locate.Platform) Generator {
	if p == locate.Darwin {
		return Precomputed{}
	}
	return Enums{}
}
