// Package pipeline is the single entry point run once per build: resolve
// the bundled engine copy, generate both binding artifacts, commit them to
// the build output directory. Any step failing aborts the run with no
// artifact left in a consumable state.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ocrbind/tessgen/internal/directive"
	"github.com/ocrbind/tessgen/internal/gen"
	"github.com/ocrbind/tessgen/internal/locate"
)

// Fixed artifact names in the output directory.
const (
	CAPIFile        = "capi_bindings.go"
	PublicTypesFile = "public_types_bindings.go"
)

// Default wrapper headers at the repository root.
const (
	DefaultCAPIHeader        = "wrapper_capi.h"
	DefaultPublicTypesHeader = "wrapper_public_types.hpp"
)

// Options configures one pipeline run.
type Options struct {
	OutDir            string          // run-scoped output directory, owned by this build
	Platform          locate.Platform // drives enum-generation strategy selection
	CAPIHeader        string          // defaults to DefaultCAPIHeader
	PublicTypesHeader string          // defaults to DefaultPublicTypesHeader
	Package           string          // generated package name
	BundledBase       string          // bundled-copy base dir, defaults to resources/libs
	Directives        directive.Emitter
}

// Run executes the whole pipeline. The bundled strategy is the wired
// default on every platform: the project ships a version-pinned engine copy
// precisely so discovery does not depend on host state.
func Run(opts Options) error {
	if opts.OutDir == "" {
		return fmt.Errorf("failed to run pipeline: no output directory")
	}
	capiHeader := opts.CAPIHeader
	if capiHeader == "" {
		capiHeader = DefaultCAPIHeader
	}
	typesHeader := opts.PublicTypesHeader
	if typesHeader == "" {
		typesHeader = DefaultPublicTypesHeader
	}

	rec := directive.NewRecorder()
	var sink directive.Emitter = rec
	if opts.Directives != nil {
		sink = directive.Tee{rec, opts.Directives}
	}

	disc, err := locate.Locate(locate.Bundled{Base: opts.BundledBase}, sink)
	if err != nil {
		return err
	}

	cfg := gen.Config{
		IncludeDirs: disc.IncludePaths,
		Directives:  rec.Directives(),
		Package:     opts.Package,
	}

	// Generate both artifacts before committing either: a parse failure in
	// the second generator must not leave the first artifact behind.
	capiCfg := cfg
	capiCfg.HeaderPath = capiHeader
	capiOut, err := gen.CAPI{}.Generate(capiCfg)
	if err != nil {
		return err
	}

	typesCfg := cfg
	typesCfg.HeaderPath = typesHeader
	typesOut, err := gen.EnumsFor(opts.Platform).Generate(typesCfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return commit(opts.OutDir, map[string][]byte{
		CAPIFile:        capiOut.Content,
		PublicTypesFile: typesOut.Content,
	})
}

// commit writes each artifact through a temp file and rename, and removes
// anything already committed if a later write fails.
func commit(dir string, artifacts map[string][]byte) error {
	var committed []string
	fail := func(err error) error {
		for _, name := range committed {
			os.Remove(filepath.Join(dir, name))
		}
		return err
	}
	for _, name := range []string{CAPIFile, PublicTypesFile} {
		content, ok := artifacts[name]
		if !ok {
			continue
		}
		tmp := filepath.Join(dir, "."+name+".tmp")
		if err := os.WriteFile(tmp, content, 0o644); err != nil {
			return fail(fmt.Errorf("failed to write %s: %w", name, err))
		}
		if err := os.Rename(tmp, filepath.Join(dir, name)); err != nil {
			os.Remove(tmp)
			return fail(fmt.Errorf("failed to write %s: %w", name, err))
		}
		committed = append(committed, name)
	}
	return nil
}
