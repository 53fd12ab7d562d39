package locate

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ocrbind/tessgen/internal/directive"
)

func TestBundledPathsDeterministic(t *testing.T) {
	libDir, includeDir := Bundled{}.Paths()
	if want := filepath.Join("tesseract", "5.3.4", "lib"); !strings.HasSuffix(libDir, want) {
		t.Errorf("lib path %q does not end in %q", libDir, want)
	}
	if want := filepath.Join("tesseract", "5.3.4", "include"); !strings.HasSuffix(includeDir, want) {
		t.Errorf("include path %q does not end in %q", includeDir, want)
	}

	// Same inputs, same outputs: no filesystem access involved.
	libDir2, includeDir2 := Bundled{}.Paths()
	if libDir != libDir2 || includeDir != includeDir2 {
		t.Error("Paths() is not deterministic")
	}
}

func TestBundledPathsOverrides(t *testing.T) {
	b := Bundled{Base: "/opt/vendored", Version: "9.9.9"}
	libDir, _ := b.Paths()
	want := filepath.Join("/opt/vendored", "tesseract", "9.9.9", "lib")
	if libDir != want {
		t.Errorf("lib path = %q, want %q", libDir, want)
	}
}

func makeBundle(t *testing.T) (base string) {
	t.Helper()
	base = filepath.Join(t.TempDir(), "resources", "libs")
	root := filepath.Join(base, "tesseract", Version)
	for _, sub := range []string{"lib", "include"} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return base
}

func TestBundledLocate(t *testing.T) {
	base := makeBundle(t)
	rec := directive.NewRecorder()
	got, err := Locate(Bundled{Base: base}, rec)
	if err != nil {
		t.Fatalf("Locate(Bundled) returned error: %v", err)
	}

	root := filepath.Join(base, "tesseract", Version)
	want := Discovery{
		IncludePaths:    []string{filepath.Join(root, "include")},
		LinkSearchPaths: []string{filepath.Join(root, "lib")},
		LinkLibs:        []string{"tesseract"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Discovery mismatch (-want +got):\n%s", diff)
	}

	// Search path directive precedes the library it satisfies.
	ds := rec.Directives()
	if len(ds) != 2 || ds[0].Kind != directive.LinkSearch || ds[1].Kind != directive.LinkLib {
		t.Errorf("directives = %v, want link-search then link-lib", ds)
	}
}

func TestBundledMissingIsVersionMismatch(t *testing.T) {
	base := makeBundle(t)
	if err := os.RemoveAll(filepath.Join(base, "tesseract", Version, "include")); err != nil {
		t.Fatal(err)
	}

	_, err := Locate(Bundled{Base: base}, directive.NewRecorder())
	if !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("error = %v, want ErrVersionMismatch", err)
	}
	if !strings.Contains(err.Error(), Version) {
		t.Errorf("error %q does not name the pinned version", err)
	}
}

func TestBundledAbsentEntirely(t *testing.T) {
	_, err := Locate(Bundled{Base: t.TempDir()}, directive.NewRecorder())
	if !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("error = %v, want ErrVersionMismatch", err)
	}
}
