package cparse

// File is the declaration set collected from one header and everything it
// transitively includes.
type File struct {
	Functions   []Function
	Enums       []Enum
	Typedefs    []Typedef
	ConstArrays []ConstArray
}

// Param is one function parameter. Name may be empty for unnamed parameters.
type Param struct {
	Name string
	Type string
}

// Function is a plain-C function prototype.
type Function struct {
	Name       string
	ReturnType string
	Params     []Param
}

// Variadic reports whether the prototype ends in "...".
func (f Function) Variadic() bool {
	return len(f.Params) > 0 && f.Params[len(f.Params)-1].Type == "..."
}

// Typedef is an opaque struct typedef ("typedef struct X X;").
type Typedef struct {
	Name string
}

// EnumValue is one enumerator with its resolved integer value.
type EnumValue struct {
	Name  string
	Value int64
}

// Enum is a C or C++ enumeration. Namespace is the enclosing C++ namespace,
// empty for plain C.
type Enum struct {
	Name      string
	Namespace string
	Values    []EnumValue
}

// QualifiedName returns the namespace-qualified spelling, e.g.
// "tesseract::PageSegMode".
func (e Enum) QualifiedName() string {
	if e.Namespace == "" {
		return e.Name
	}
	return e.Namespace + "::" + e.Name
}

// ConstArray is a file-scope constant array declaration. Only the name is
// kept: the binding generators can blocklist these, never translate them.
type ConstArray struct {
	Name      string
	Namespace string
}

// QualifiedName returns the namespace-qualified spelling.
func (c ConstArray) QualifiedName() string {
	if c.Namespace == "" {
		return c.Name
	}
	return c.Namespace + "::" + c.Name
}
