package analyze

import (
	"errors"
	"fmt"
	"go/types"
	"path/filepath"
	"reflect"

	"golang.org/x/tools/go/packages"
)

// loadMode is what recordgen needs: names, files for the output directory,
// type information and imports so dependency errors surface. Syntax trees
// are never inspected.
const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedTypes | packages.NeedImports

// Analyzer loads Go packages into a TypeGraph.
type Analyzer struct {
	graph *TypeGraph
	seen  map[types.Type]*TypeInfo // also breaks cycles through pointer fields
}

// NewAnalyzer creates an Analyzer with an empty graph.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph: NewTypeGraph(),
		seen:  make(map[types.Type]*TypeInfo),
	}
}

// LoadPackages loads the packages matching patterns (e.g. "./examples/monsters")
// and adds their named types to the graph. Any package error aborts the load.
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	pkgs, err := packages.Load(&packages.Config{Mode: loadMode}, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}

	var errs []error

	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	})

	if len(errs) > 0 {
		return nil, fmt.Errorf("load packages: %w", errors.Join(errs...))
	}

	for _, pkg := range pkgs {
		a.addPackage(pkg)
	}

	return a.graph, nil
}

// Graph returns the graph built so far.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

func (a *Analyzer) addPackage(pkg *packages.Package) {
	info := &PackageInfo{Path: pkg.PkgPath, Name: pkg.Name}

	if len(pkg.GoFiles) > 0 {
		info.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	// registered first so named types of this package are not taken as external
	a.graph.Packages[pkg.PkgPath] = info

	scope := pkg.Types.Scope()

	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !tn.Exported() {
			continue
		}

		id := TypeID{PkgPath: pkg.PkgPath, Name: name}

		t := a.typeOf(tn.Type())
		t.ID = id

		a.graph.Types[id] = t
		info.Types = append(info.Types, id)
	}
}

func (a *Analyzer) typeOf(gt types.Type) *TypeInfo {
	if t, ok := a.seen[gt]; ok {
		return t
	}

	t := &TypeInfo{GoType: gt}
	a.seen[gt] = t

	switch gt := gt.(type) {
	case *types.Named:
		a.named(gt, t)
	case *types.Basic:
		t.Kind = TypeKindBasic
	case *types.Pointer:
		t.Kind = TypeKindPointer
		t.ElemType = a.typeOf(gt.Elem())
	case *types.Slice:
		t.Kind = TypeKindSlice
		t.ElemType = a.typeOf(gt.Elem())
	case *types.Array:
		t.Kind = TypeKindArray
		t.ElemType = a.typeOf(gt.Elem())
	case *types.Struct:
		t.Kind = TypeKindStruct
		t.Fields = a.fields(gt)
	default:
		// maps, interfaces and channels never hold a cell
		t.Kind = TypeKindUnknown
	}

	return t
}

// named classifies a named type by its underlying type. Named basic types
// (type Element string, time.Duration) are aliases; other named types from
// packages outside the graph (time.Location) are opaque.
func (a *Analyzer) named(n *types.Named, t *TypeInfo) {
	obj := n.Obj()

	if obj.Pkg() != nil {
		t.ID = TypeID{PkgPath: obj.Pkg().Path(), Name: obj.Name()}
	}

	switch under := n.Underlying().(type) {
	case *types.Struct:
		t.Kind = TypeKindStruct
		t.Fields = a.fields(under)
	case *types.Basic:
		t.Kind = TypeKindAlias
		t.Underlying = a.typeOf(under)
	default:
		if _, local := a.graph.Packages[t.ID.PkgPath]; !local {
			t.Kind = TypeKindExternal
			return
		}

		t.Kind = TypeKindAlias
		t.Underlying = a.typeOf(under)
	}
}

// fields keeps unexported fields too: generated schemas live in the record's
// own package and may bind them.
func (a *Analyzer) fields(st *types.Struct) []FieldInfo {
	out := make([]FieldInfo, 0, st.NumFields())

	for i := range st.NumFields() {
		f := st.Field(i)

		out = append(out, FieldInfo{
			Name:     f.Name(),
			Exported: f.Exported(),
			Type:     a.typeOf(f.Type()),
			Tag:      reflect.StructTag(st.Tag(i)),
			Embedded: f.Embedded(),
			Index:    i,
		})
	}

	return out
}

// GetStruct returns the named struct pkgPath.typeName from the graph.
func (a *Analyzer) GetStruct(pkgPath, typeName string) (*TypeInfo, error) {
	id := TypeID{PkgPath: pkgPath, Name: typeName}

	t := a.graph.GetType(id)
	if t == nil {
		return nil, fmt.Errorf("type %s not found", id)
	}

	if t.Kind != TypeKindStruct {
		return nil, fmt.Errorf("type %s is not a struct (kind: %s)", id, t.Kind)
	}

	return t, nil
}
