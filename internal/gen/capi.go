package gen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ocrbind/tessgen/internal/cparse"
	"github.com/ocrbind/tessgen/internal/directive"
)

// defaultAllow matches the engine's public C entry points.
var defaultAllow = regexp.MustCompile(`^Tess`)

// defaultBlockedTypes are owned by Leptonica or by libc stdio internals.
// They must stay externally defined: redeclaring them here would clash with
// the definitions the image-library binding surface already carries.
var defaultBlockedTypes = map[string]bool{
	"Boxa":          true,
	"Pix":           true,
	"Pixa":          true,
	"_IO_FILE":      true,
	"_IO_codecvt":   true,
	"_IO_marker":    true,
	"_IO_wide_data": true,
}

// CAPI generates the cgo binding surface for the engine's plain-C header.
type CAPI struct {
	Allow        *regexp.Regexp  // function allowlist, defaults to ^Tess
	BlockedTypes map[string]bool // defaults to defaultBlockedTypes
}

func (CAPI) Name() string { return "capi" }

func (g CAPI) Generate(cfg Config) (*OutputFile, error) {
	allow := g.Allow
	if allow == nil {
		allow = defaultAllow
	}
	blocked := g.BlockedTypes
	if blocked == nil {
		blocked = defaultBlockedTypes
	}

	parsed, err := cparse.New(cfg.IncludeDirs...).ParseFile(cfg.HeaderPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", cfg.HeaderPath, err)
	}

	type wrapper struct {
		fn      cparse.Function
		params  []string // Go parameter declarations
		args    []string // call-through argument names
		retType string   // empty for void
	}
	var (
		wrappers   []wrapper
		needUnsafe bool
	)
	for _, fn := range parsed.Functions {
		if !allow.MatchString(fn.Name) || fn.Variadic() {
			continue
		}
		w := wrapper{fn: fn}
		ok := true
		for i, p := range fn.Params {
			typ, mapped := cgoType(p.Type)
			if !mapped || typ == "" {
				ok = false
				break
			}
			if strings.Contains(typ, "unsafe.Pointer") {
				needUnsafe = true
			}
			name := safeName(p.Name)
			if name == "" {
				name = fmt.Sprintf("arg%d", i+1)
			}
			w.params = append(w.params, name+" "+typ)
			w.args = append(w.args, name)
		}
		if !ok {
			continue
		}
		if fn.ReturnType != "void" {
			typ, mapped := cgoType(fn.ReturnType)
			if !mapped || typ == "" {
				continue
			}
			if strings.Contains(typ, "unsafe.Pointer") {
				needUnsafe = true
			}
			w.retType = typ
		}
		wrappers = append(wrappers, w)
	}
	if len(wrappers) == 0 {
		return nil, fmt.Errorf("%w: no engine entry points in %s", ErrNoDeclarations, cfg.HeaderPath)
	}

	var b strings.Builder
	writeFileHeader(&b, cfg.pkg())
	b.WriteString("/*\n")
	if cflags := directive.CFlags(cfg.IncludeDirs); cflags != "" {
		fmt.Fprintf(&b, "#cgo CFLAGS: %s\n", cflags)
	}
	if ldflags := directive.LDFlags(cfg.Directives); ldflags != "" {
		fmt.Fprintf(&b, "#cgo LDFLAGS: %s\n", ldflags)
	}
	fmt.Fprintf(&b, "#include \"%s\"\n", cfg.HeaderPath)
	b.WriteString("*/\n")
	b.WriteString("import \"C\"\n\n")
	if needUnsafe {
		b.WriteString("import \"unsafe\"\n\n")
	}

	seen := make(map[string]bool)
	for _, td := range parsed.Typedefs {
		if blocked[td.Name] || seen[td.Name] {
			continue
		}
		seen[td.Name] = true
		fmt.Fprintf(&b, "type %s = C.%s\n", td.Name, td.Name)
	}
	if len(seen) > 0 {
		b.WriteByte('\n')
	}

	for _, w := range wrappers {
		fmt.Fprintf(&b, "func %s(%s)", w.fn.Name, strings.Join(w.params, ", "))
		if w.retType != "" {
			fmt.Fprintf(&b, " %s", w.retType)
		}
		b.WriteString(" {\n\t")
		if w.retType != "" {
			b.WriteString("return ")
		}
		fmt.Fprintf(&b, "C.%s(%s)\n}\n\n", w.fn.Name, strings.Join(w.args, ", "))
	}

	return &OutputFile{Name: g.Name(), Content: []byte(b.String())}, nil
}

// cgoType maps a C parameter or return type to its cgo spelling.
// The bool result is false for types this generator cannot pass through.
func cgoType(ctype string) (string, bool) {
	ptrs := strings.Count(ctype, "*")
	base := strings.NewReplacer("*", " ", "&", " ").Replace(ctype)
	var toks []string
	for _, tok := range strings.Fields(base) {
		if tok != "const" && tok != "struct" {
			toks = append(toks, tok)
		}
	}
	name := strings.Join(toks, " ")

	if name == "void" {
		switch ptrs {
		case 0:
			return "", true // valid only as a void return
		case 1:
			return "unsafe.Pointer", true
		default:
			return strings.Repeat("*", ptrs-1) + "unsafe.Pointer", true
		}
	}

	goName, ok := cgoBaseTypes[name]
	if !ok {
		if len(toks) != 1 || !identRe.MatchString(name) {
			return "", false
		}
		goName = "C." + name
	}
	return strings.Repeat("*", ptrs) + goName, true
}

var cgoBaseTypes = map[string]string{
	"char":               "C.char",
	"signed char":        "C.schar",
	"unsigned char":      "C.uchar",
	"short":              "C.short",
	"short int":          "C.short",
	"unsigned short":     "C.ushort",
	"int":                "C.int",
	"unsigned":           "C.uint",
	"unsigned int":       "C.uint",
	"long":               "C.long",
	"unsigned long":      "C.ulong",
	"long long":          "C.longlong",
	"unsigned long long": "C.ulonglong",
	"float":              "C.float",
	"double":             "C.double",
	"size_t":             "C.size_t",
	"bool":               "C.bool",
}

var identRe = regexp.MustCompile(`^[A-Za-z_]\w*$`)

var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true,
	"for": true, "func": true, "go": true, "goto": true, "if": true,
	"import": true, "interface": true, "map": true, "package": true,
	"range": true, "return": true, "select": true, "struct": true,
	"switch": true, "type": true, "var": true,
}

// safeName rewrites parameter names that collide with Go keywords.
func safeName(name string) string {
	if goKeywords[name] {
		return name + "_"
	}
	return name
}
