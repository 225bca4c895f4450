package analyze

import (
	"go/types"
	"reflect"

	"record-loader/internal/common"
	"record-loader/schema"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "record-loader/examples/monsters"
	Name    string // e.g., "Monster"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown  TypeKind = iota
	TypeKindBasic             // int, string, bool, etc.
	TypeKindStruct            // struct type
	TypeKindPointer           // pointer to another type
	TypeKindSlice             // slice of another type
	TypeKindArray             // array of another type
	TypeKindAlias             // named type over a basic type, e.g. Element or time.Duration
	TypeKindExternal          // named non-struct type from a package outside the graph
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindAlias:
		return "alias"
	case TypeKindExternal:
		return "external"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes a Go type in the type graph.
type TypeInfo struct {
	ID         TypeID      // Unique identifier (empty for unnamed types like *T or []T)
	Kind       TypeKind    // Kind of type
	Underlying *TypeInfo   // For named types, the underlying type
	ElemType   *TypeInfo   // For pointers and slices, the element type
	Fields     []FieldInfo // For structs, the list of fields
	GoType     types.Type  // go/types form, printed into generated code
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     *TypeInfo         // Field type
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
}

// Column parses the csv tag of the field. The second result is false when the
// field carries no column, including `csv:"-"`.
func (f *FieldInfo) Column() (schema.ColumnSpec, bool, error) {
	spec, ok, err := schema.ParseTag(f.Tag.Get(schema.TagName))
	if err != nil || !ok {
		return schema.ColumnSpec{}, false, err
	}

	spec.Field = f.Name

	return spec, true, nil
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Dir   string   // Directory of the package sources
	Types []TypeID // Named types defined in this package
}
