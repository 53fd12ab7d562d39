package cparse

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func findFunc(f *File, name string) (Function, bool) {
	for _, fn := range f.Functions {
		if fn.Name == name {
			return fn, true
		}
	}
	return Function{}, false
}

func findEnum(f *File, qualified string) (Enum, bool) {
	for _, e := range f.Enums {
		if e.QualifiedName() == qualified {
			return e, true
		}
	}
	return Enum{}, false
}

func TestParseCAPIHeader(t *testing.T) {
	f, err := New("testdata").ParseFile("testdata/capi.h")
	if err != nil {
		t.Fatalf("ParseFile returned error: %v", err)
	}

	version, ok := findFunc(f, "TessVersion")
	if !ok {
		t.Fatal("TessVersion not found")
	}
	if version.ReturnType != "const char*" {
		t.Errorf("TessVersion return type = %q, want %q", version.ReturnType, "const char*")
	}
	if len(version.Params) != 0 {
		t.Errorf("TessVersion params = %v, want none", version.Params)
	}

	init3, ok := findFunc(f, "TessBaseAPIInit3")
	if !ok {
		t.Fatal("TessBaseAPIInit3 not found")
	}
	want := []Param{
		{Name: "handle", Type: "TessBaseAPI*"},
		{Name: "datapath", Type: "const char*"},
		{Name: "language", Type: "const char*"},
	}
	if diff := cmp.Diff(want, init3.Params); diff != "" {
		t.Errorf("TessBaseAPIInit3 params mismatch (-want +got):\n%s", diff)
	}

	// Multi-line prototypes join into one declaration.
	rect, ok := findFunc(f, "TessBaseAPISetRectangle")
	if !ok {
		t.Fatal("TessBaseAPISetRectangle not found")
	}
	if len(rect.Params) != 5 {
		t.Errorf("TessBaseAPISetRectangle has %d params, want 5", len(rect.Params))
	}

	// The parser itself applies no allowlist.
	if _, ok := findFunc(f, "LeptDebugOK"); !ok {
		t.Error("LeptDebugOK not found; the parser must not filter by name")
	}
}

func TestParseCAPIIncludes(t *testing.T) {
	f, err := New("testdata").ParseFile("testdata/capi.h")
	if err != nil {
		t.Fatalf("ParseFile returned error: %v", err)
	}

	// Typedefs from the included pix.h are merged in.
	names := make(map[string]bool)
	for _, td := range f.Typedefs {
		names[td.Name] = true
	}
	for _, want := range []string{"TessBaseAPI", "TessResultRenderer", "Pix", "Pixa", "Boxa"} {
		if !names[want] {
			t.Errorf("typedef %s not found (have %v)", want, names)
		}
	}

	// The C typedef enum is picked up with its alias name.
	e, ok := findEnum(f, "TessOcrEngineMode")
	if !ok {
		t.Fatal("TessOcrEngineMode not found")
	}
	if len(e.Values) != 4 || e.Values[3].Name != "OEM_DEFAULT" || e.Values[3].Value != 3 {
		t.Errorf("TessOcrEngineMode values = %v", e.Values)
	}
}

func TestParsePublicTypes(t *testing.T) {
	f, err := New().ParseFile("testdata/publictypes.h")
	if err != nil {
		t.Fatalf("ParseFile returned error: %v", err)
	}

	psm, ok := findEnum(f, "tesseract::PageSegMode")
	if !ok {
		t.Fatal("tesseract::PageSegMode not found")
	}
	if psm.Namespace != "tesseract" {
		t.Errorf("PageSegMode namespace = %q", psm.Namespace)
	}
	last := psm.Values[len(psm.Values)-1]
	if last.Name != "PSM_COUNT" || last.Value != 14 {
		t.Errorf("PageSegMode last value = %v", last)
	}

	if len(f.ConstArrays) != 1 || f.ConstArrays[0].QualifiedName() != "tesseract::kPolyBlockNames" {
		t.Errorf("ConstArrays = %v, want tesseract::kPolyBlockNames", f.ConstArrays)
	}
}

func TestParseFeatures(t *testing.T) {
	f, err := New().ParseFile("testdata/features.h")
	if err != nil {
		t.Fatalf("ParseFile returned error: %v", err)
	}

	flavor, ok := findEnum(f, "outer::Flavor")
	if !ok {
		t.Fatal("outer::Flavor not found")
	}
	want := []EnumValue{
		{Name: "FLAVOR_PLAIN", Value: 16},
		{Name: "FLAVOR_ALIAS", Value: 16},
		{Name: "FLAVOR_NEXT", Value: 17},
		{Name: "FLAVOR_NEG", Value: -2},
	}
	if diff := cmp.Diff(want, flavor.Values); diff != "" {
		t.Errorf("Flavor values mismatch (-want +got):\n%s", diff)
	}

	state, ok := findEnum(f, "MachineState")
	if !ok {
		t.Fatal("MachineState not found")
	}
	if state.Values[1].Value != 5 || state.Values[2].Value != 6 {
		t.Errorf("MachineState values = %v", state.Values)
	}

	if len(f.ConstArrays) != 1 || f.ConstArrays[0].Name != "kTable" || f.ConstArrays[0].Namespace != "outer" {
		t.Errorf("ConstArrays = %v", f.ConstArrays)
	}

	fn, ok := findFunc(f, "plain_function")
	if !ok {
		t.Fatal("plain_function not found")
	}
	wantParams := []Param{
		{Name: "value", Type: "unsigned long"},
		{Name: "out", Type: "char**"},
	}
	if diff := cmp.Diff(wantParams, fn.Params); diff != "" {
		t.Errorf("plain_function params mismatch (-want +got):\n%s", diff)
	}

	// Mutually including headers terminate and contribute once each.
	var cycles int
	for _, td := range f.Typedefs {
		if td.Name == "CycleA" || td.Name == "CycleB" {
			cycles++
		}
	}
	if cycles != 2 {
		t.Errorf("cycle typedefs found %d times, want 2", cycles)
	}
}

func TestParseMissingHeader(t *testing.T) {
	_, err := New().ParseFile("testdata/no_such_header.h")
	if err == nil || !strings.Contains(err.Error(), "failed to read header") {
		t.Fatalf("error = %v, want read failure", err)
	}
}

func TestStripComments(t *testing.T) {
	src := `int a; // line comment
/* block */ int b;
const char* s = "with // no comment /* inside */";`
	got := stripComments(src)
	if strings.Contains(got, "line comment") || strings.Contains(got, "block") {
		t.Errorf("comments survived: %q", got)
	}
	if !strings.Contains(got, `"with // no comment /* inside */"`) {
		t.Errorf("string literal damaged: %q", got)
	}
}
