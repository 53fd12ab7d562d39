// Package cparse is a narrow C/C++ header reader. It extracts the function
// prototypes, opaque typedefs and enumerations the binding generators need,
// and nothing else: it is not a compiler, and constructs it does not
// understand are skipped rather than diagnosed.
package cparse

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Parser reads one header and everything it transitively includes.
// Includes are resolved against the including file's directory first, then
// IncludeDirs in order; unresolvable includes (system headers) are skipped.
type Parser struct {
	IncludeDirs []string

	visited map[string]bool
}

func New(includeDirs ...string) *Parser {
	return &Parser{IncludeDirs: includeDirs}
}

// ParseFile parses the header at path into a declaration set.
func (p *Parser) ParseFile(path string) (*File, error) {
	p.visited = make(map[string]bool)
	f := &File{}
	if err := p.parse(f, path); err != nil {
		return nil, err
	}
	return f, nil
}

func (p *Parser) parse(f *File, path string) error {
	if abs, err := filepath.Abs(path); err == nil {
		if p.visited[abs] {
			return nil
		}
		p.visited[abs] = true
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read header %s: %w", path, err)
	}
	body, err := p.preprocess(f, stripComments(string(data)), filepath.Dir(path))
	if err != nil {
		return err
	}
	scanDecls(f, body)
	return nil
}

var includeRe = regexp.MustCompile(`^#\s*include\s*[<"]([^">]+)[">]`)

// preprocess strips preprocessor lines from src, recursing into resolvable
// includes. The returned text contains only plain declarations.
func (p *Parser) preprocess(f *File, src, dir string) (string, error) {
	var b strings.Builder
	lines := strings.Split(src, "\n")
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(line, "#") {
			b.WriteString(lines[i])
			b.WriteByte('\n')
			continue
		}
		if m := includeRe.FindStringSubmatch(line); m != nil {
			if target := p.resolve(m[1], dir); target != "" {
				if err := p.parse(f, target); err != nil {
					return "", err
				}
			}
		}
		// Swallow macro continuation lines.
		for strings.HasSuffix(line, `\`) && i+1 < len(lines) {
			i++
			line = strings.TrimSpace(lines[i])
		}
	}
	return b.String(), nil
}

// resolve maps an include target to a readable file, or "" if none.
func (p *Parser) resolve(target, dir string) string {
	candidates := append([]string{dir}, p.IncludeDirs...)
	for _, base := range candidates {
		full := filepath.Join(base, target)
		if info, err := os.Stat(full); err == nil && !info.IsDir() {
			return full
		}
	}
	return ""
}

// stripComments removes // and /* */ comments, leaving string literals
// intact. Comments are replaced with a single space so adjacent tokens do
// not fuse.
func stripComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			b.WriteByte('\n')
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			i += 2
			for i+1 < len(src) && !(src[i] == '*' && src[i+1] == '/') {
				if src[i] == '\n' {
					b.WriteByte('\n')
				}
				i++
			}
			i++ // skip trailing '/'
			b.WriteByte(' ')
		case c == '"':
			b.WriteByte(c)
			for i++; i < len(src) && src[i] != '"'; i++ {
				if src[i] == '\\' {
					b.WriteByte(src[i])
					i++
				}
				if i < len(src) {
					b.WriteByte(src[i])
				}
			}
			if i < len(src) {
				b.WriteByte('"')
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

type scanMode int

const (
	modeNormal scanMode = iota
	modeEnumBody
	modeEnumTail
	modeSkip
)

var (
	namespaceRe = regexp.MustCompile(`^namespace\s+(\w+)$`)
	enumHeadRe  = regexp.MustCompile(`^(?:typedef\s+)?enum(?:\s+class|\s+struct)?(?:\s+\w+)?(?:\s*:\s*[\w\s]+)?$`)
	enumNameRe  = regexp.MustCompile(`enum(?:\s+class|\s+struct)?\s+(\w+)`)
	typedefRe   = regexp.MustCompile(`^typedef\s+struct\s+(\w+)\s+(\w+)$`)
	arrayRe     = regexp.MustCompile(`^[\w\s\*&]*[\s\*](\w+)\s*\[[^\]]*\]$`)
	protoRe     = regexp.MustCompile(`^([A-Za-z_][\w\s\*]*?[\s\*])\s*(\w+)\s*\((.*)\)$`)
	identRe     = regexp.MustCompile(`^[A-Za-z_]\w*$`)
)

type nsFrame struct {
	name  string // empty for extern "C" blocks
	depth int
}

// scanDecls walks preprocessed source character by character, collecting
// top-level declarations. Brace bodies other than enum and namespace blocks
// are skipped wholesale.
func scanDecls(f *File, src string) {
	var (
		buf      strings.Builder
		enumHead string
		enumBody strings.Builder
		enumTail strings.Builder
		nsStack  []nsFrame
		depth    int
		skipTo   int
		mode     = modeNormal
	)
	namespace := func() string {
		for i := len(nsStack) - 1; i >= 0; i-- {
			if nsStack[i].name != "" {
				return nsStack[i].name
			}
		}
		return ""
	}
	for _, c := range src {
		switch mode {
		case modeSkip:
			switch c {
			case '{':
				depth++
			case '}':
				depth--
				if depth == skipTo {
					mode = modeNormal
				}
			}
		case modeEnumBody:
			if c == '}' {
				depth--
				mode = modeEnumTail
			} else {
				enumBody.WriteRune(c)
			}
		case modeEnumTail:
			if c == ';' {
				addEnum(f, enumHead, enumBody.String(), normalizeSpace(enumTail.String()), namespace())
				enumBody.Reset()
				enumTail.Reset()
				mode = modeNormal
			} else {
				enumTail.WriteRune(c)
			}
		case modeNormal:
			switch c {
			case '{':
				head := normalizeSpace(buf.String())
				buf.Reset()
				switch {
				case namespaceRe.MatchString(head):
					nsStack = append(nsStack, nsFrame{namespaceRe.FindStringSubmatch(head)[1], depth})
					depth++
				case head == `extern "C"`:
					nsStack = append(nsStack, nsFrame{"", depth})
					depth++
				case enumHeadRe.MatchString(head):
					enumHead = head
					depth++
					mode = modeEnumBody
				default:
					// A statement ending in '=' is a declaration with a
					// brace initializer; classify it before skipping the body.
					if trimmed, ok := strings.CutSuffix(head, "="); ok {
						classify(f, normalizeSpace(trimmed), namespace())
					}
					skipTo = depth
					depth++
					mode = modeSkip
				}
			case '}':
				depth--
				if n := len(nsStack); n > 0 && nsStack[n-1].depth == depth {
					nsStack = nsStack[:n-1]
				}
				buf.Reset()
			case ';':
				classify(f, normalizeSpace(buf.String()), namespace())
				buf.Reset()
			default:
				buf.WriteRune(c)
			}
		}
	}
}

// classify records one brace-free statement, if it is a declaration form we
// understand.
func classify(f *File, stmt, ns string) {
	if stmt == "" {
		return
	}
	if m := typedefRe.FindStringSubmatch(stmt); m != nil {
		f.Typedefs = append(f.Typedefs, Typedef{Name: m[2]})
		return
	}
	if !strings.Contains(stmt, "(") {
		if m := arrayRe.FindStringSubmatch(stmt); m != nil {
			f.ConstArrays = append(f.ConstArrays, ConstArray{Name: m[1], Namespace: ns})
		}
		return
	}
	// Function pointers and nested parens are beyond this reader.
	if strings.Count(stmt, "(") > 1 {
		return
	}
	if fn, ok := parseProto(stmt); ok {
		f.Functions = append(f.Functions, fn)
	}
}

func parseProto(stmt string) (Function, bool) {
	m := protoRe.FindStringSubmatch(stmt)
	if m == nil {
		return Function{}, false
	}
	ret := cleanType(m[1])
	if ret == "" {
		return Function{}, false
	}
	params, ok := parseParams(m[3])
	if !ok {
		return Function{}, false
	}
	return Function{Name: m[2], ReturnType: ret, Params: params}, true
}

// declSpecifiers are tokens dropped from return and parameter types.
var declSpecifiers = map[string]bool{
	"TESS_API": true, "TESS_CALL": true, "extern": true,
	"inline": true, "static": true,
}

func cleanType(s string) string {
	var kept []string
	for _, tok := range strings.Fields(s) {
		if !declSpecifiers[tok] {
			kept = append(kept, tok)
		}
	}
	return strings.Join(kept, " ")
}

// baseTypeWords are tokens that can terminate a type, so a trailing one
// means the parameter is unnamed.
var baseTypeWords = map[string]bool{
	"void": true, "char": true, "short": true, "int": true, "long": true,
	"float": true, "double": true, "bool": true, "unsigned": true,
	"signed": true, "size_t": true,
}

func parseParams(s string) ([]Param, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "void" {
		return nil, true
	}
	var params []Param
	for _, part := range strings.Split(s, ",") {
		part = normalizeSpace(part)
		if part == "" {
			return nil, false
		}
		if part == "..." {
			params = append(params, Param{Type: "..."})
			continue
		}
		params = append(params, splitParam(part))
	}
	return params, true
}

// splitParam separates "const char* name" into type and name. The name is
// the trailing token when it is a plain identifier that cannot be part of
// the type; otherwise the parameter is unnamed.
func splitParam(s string) Param {
	toks := strings.Fields(s)
	last := toks[len(toks)-1]
	array := false
	if strings.HasSuffix(last, "[]") {
		last = strings.TrimSuffix(last, "[]")
		array = true
	}
	if len(toks) > 1 && identRe.MatchString(last) && !baseTypeWords[last] {
		typ := cleanType(strings.Join(toks[:len(toks)-1], " "))
		if array {
			typ += "*"
		}
		return Param{Name: last, Type: typ}
	}
	return Param{Type: cleanType(s)}
}

func addEnum(f *File, head, body, tail, ns string) {
	var name string
	if m := enumNameRe.FindStringSubmatch(head); m != nil {
		name = m[1]
	}
	// A typedef alias name wins over the tag name.
	if toks := strings.Fields(tail); len(toks) > 0 && identRe.MatchString(toks[len(toks)-1]) {
		name = toks[len(toks)-1]
	}
	if name == "" {
		return
	}
	values, ok := parseEnumValues(body)
	if !ok {
		return
	}
	f.Enums = append(f.Enums, Enum{Name: name, Namespace: ns, Values: values})
}

// parseEnumValues resolves enumerator values: explicit integer constants
// (any base strconv accepts), references to earlier members of the same
// enum, and implicit previous-plus-one. Anything fancier invalidates the
// whole enum.
func parseEnumValues(body string) ([]EnumValue, bool) {
	var values []EnumValue
	seen := make(map[string]int64)
	var next int64
	for _, entry := range strings.Split(body, ",") {
		entry = normalizeSpace(entry)
		if entry == "" {
			continue
		}
		name, expr, explicit := strings.Cut(entry, "=")
		name = strings.TrimSpace(name)
		if !identRe.MatchString(name) {
			return nil, false
		}
		if explicit {
			expr = strings.TrimSpace(expr)
			if v, err := strconv.ParseInt(expr, 0, 64); err == nil {
				next = v
			} else if v, ok := seen[expr]; ok {
				next = v
			} else {
				return nil, false
			}
		}
		values = append(values, EnumValue{Name: name, Value: next})
		seen[name] = next
		next++
	}
	return values, len(values) > 0
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
