package analyze

import (
	"go/types"
	"strings"
)

// TypePath builds a dotted member path.
// Examples:
//   - "Name" for a direct field
//   - "Base.ID" for a field of an embedded struct
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a root name; an empty root starts
// a member path relative to the record.
func NewTypePath(root string) *TypePath {
	if root == "" {
		return &TypePath{}
	}

	return &TypePath{
		parts: []string{root},
	}
}

// Field appends a field name to the path.
func (p *TypePath) Field(name string) *TypePath {
	return &TypePath{
		parts: append(append([]string{}, p.parts...), name),
	}
}

// String returns the full path string.
func (p *TypePath) String() string {
	return strings.Join(p.parts, ".")
}

// TypeStringer renders Go type expressions as seen from one package,
// recording the imports they need.
type TypeStringer struct {
	pkgPath string
	imports map[string]string // path -> package name
}

// NewTypeStringer creates a TypeStringer for code living in pkgPath.
func NewTypeStringer(pkgPath string) *TypeStringer {
	return &TypeStringer{
		pkgPath: pkgPath,
		imports: make(map[string]string),
	}
}

// TypeString returns the Go expression of t, e.g. "*bool", "Element" or
// "time.Duration".
func (s *TypeStringer) TypeString(t *TypeInfo) string {
	if t == nil || t.GoType == nil {
		return "<nil>"
	}

	return types.TypeString(t.GoType, s.qualify)
}

// Imports returns the packages referenced so far, keyed by import path.
func (s *TypeStringer) Imports() map[string]string {
	return s.imports
}

func (s *TypeStringer) qualify(pkg *types.Package) string {
	if pkg.Path() == s.pkgPath {
		return ""
	}

	s.imports[pkg.Path()] = pkg.Name()

	return pkg.Name()
}
