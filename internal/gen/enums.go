package gen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ocrbind/tessgen/internal/cparse"
)

// publicEnums is the engine's public configuration surface. Each becomes a
// distinct Go enumeration type rather than a bag of untyped constants:
// these are the values application code switches over, so they must be
// exhaustively matchable.
var publicEnums = []string{
	"tesseract::OcrEngineMode",
	"tesseract::Orientation",
	"tesseract::PageIteratorLevel",
	"tesseract::PageSegMode",
	"tesseract::ParagraphJustification",
	"tesseract::PolyBlockType",
	"tesseract::TextlineOrder",
	"tesseract::WritingDirection",
}

// blockedItems excludes the poly-block display-name table, which the header
// reader cannot represent faithfully.
var blockedItems = []*regexp.Regexp{
	regexp.MustCompile(`^kPolyBlockNames`),
	regexp.MustCompile(`^tesseract::kPolyBlockNames`),
}

// stripToken is the engine's namespace-prefix token. Every occurrence is
// removed from the generated text, so downstream code refers to
// OcrEngineMode rather than a namespace-qualified form.
const stripToken = "tesseract_"

// Enums generates typed Go enumerations from the engine's C++ public-types
// header.
type Enums struct {
	Symbols   []string         // qualified enum names to expose, defaults to publicEnums
	Blocklist []*regexp.Regexp // items excluded outright, defaults to blockedItems
	Strip     string           // namespace token stripped from output, defaults to stripToken
}

func (Enums) Name() string { return "public-types" }

func (g Enums) Generate(cfg Config) (*OutputFile, error) {
	symbols := g.Symbols
	if symbols == nil {
		symbols = publicEnums
	}
	blocklist := g.Blocklist
	if blocklist == nil {
		blocklist = blockedItems
	}
	strip := g.Strip
	if strip == "" {
		strip = stripToken
	}

	parsed, err := cparse.New(cfg.IncludeDirs...).ParseFile(cfg.HeaderPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", cfg.HeaderPath, err)
	}

	index := make(map[string]cparse.Enum)
	for _, e := range parsed.Enums {
		if itemBlocked(blocklist, e.QualifiedName()) {
			continue
		}
		index[e.QualifiedName()] = e
	}

	var b strings.Builder
	writeFileHeader(&b, cfg.pkg())
	for _, sym := range symbols {
		e, ok := index[sym]
		if !ok {
			return nil, fmt.Errorf("failed to parse %s: enumeration %s not found", cfg.HeaderPath, sym)
		}
		typeName := strings.ReplaceAll(sym, "::", "_")
		fmt.Fprintf(&b, "type %s int32\n\nconst (\n", typeName)
		for _, v := range e.Values {
			fmt.Fprintf(&b, "\t%s_%s %s = %d\n", typeName, v.Name, typeName, v.Value)
		}
		b.WriteString(")\n\n")
	}

	content := strings.ReplaceAll(b.String(), strip, "")
	content = strings.TrimSuffix(content, "\n")
	return &OutputFile{Name: g.Name(), Content: []byte(content)}, nil
}

func itemBlocked(blocklist []*regexp.Regexp, name string) bool {
	for _, re := range blocklist {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}
