package analyze

import (
	"fmt"
	"slices"

	"record-loader/internal/diagnostic"
	"record-loader/schema"
)

// Column is one bound field of a record type.
type Column struct {
	Index   int
	Member  string     // dotted field path from the record, e.g. "Base.ID"
	Field   *FieldInfo // the bound field itself
	Default *string    // cell text, nil for the zero value
}

// Record is a struct type with at least one column.
type Record struct {
	Type    *TypeInfo
	Columns []Column // ascending by Index
}

// Records returns the record types declared in pkgPath, ordered by name.
// Malformed tags are reported and leave the record out. Structs embedded by
// another struct of the package only lend their columns and are not records
// themselves; a mapping file entry can still declare one.
func (g *TypeGraph) Records(pkgPath string) ([]Record, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	pkg, ok := g.Packages[pkgPath]
	if !ok {
		diags.AddError(diagnostic.CodeUnknownType, fmt.Errorf("package %s not loaded", pkgPath), "", "")
		return nil, diags
	}

	embedded := g.embeddedStructs(pkg)

	var records []Record

	for _, id := range pkg.Types {
		t := g.GetType(id)
		if t == nil || t.Kind != TypeKindStruct || embedded[t] {
			continue
		}

		columns, cd := TagColumns(t)
		diags.Merge(cd)

		if len(columns) == 0 || cd.HasErrors() {
			continue
		}

		records = append(records, Record{Type: t, Columns: columns})
	}

	slices.SortFunc(records, func(a, b Record) int {
		switch {
		case a.Type.ID.Name < b.Type.ID.Name:
			return -1
		case a.Type.ID.Name > b.Type.ID.Name:
			return 1
		}
		return 0
	})

	return records, diags
}

// embeddedStructs collects the structs of pkg embedded by value in another
// struct of pkg.
func (g *TypeGraph) embeddedStructs(pkg *PackageInfo) map[*TypeInfo]bool {
	embedded := map[*TypeInfo]bool{}

	for _, id := range pkg.Types {
		t := g.GetType(id)
		if t == nil || t.Kind != TypeKindStruct {
			continue
		}

		for _, f := range t.Fields {
			if f.Embedded && f.Type != nil && f.Type.Kind == TypeKindStruct && f.Type.ID.PkgPath == pkg.Path {
				embedded[f.Type] = true
			}
		}
	}

	return embedded
}

// TagColumns lists the columns declared by csv tags on t, descending into
// embedded structs the same way schema.TagSpecs does at run time.
func TagColumns(t *TypeInfo) ([]Column, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	columns := tagColumns(t, t, NewTypePath(""), &diags)
	slices.SortStableFunc(columns, func(a, b Column) int { return a.Index - b.Index })

	return columns, diags
}

func tagColumns(root, t *TypeInfo, prefix *TypePath, diags *diagnostic.Diagnostics) []Column {
	var columns []Column

	for i := range t.Fields {
		f := &t.Fields[i]
		member := prefix.Field(f.Name)

		if _, tagged := f.Tag.Lookup(schema.TagName); !tagged {
			// embedded pointers are skipped: records are populated without allocating them
			if f.Embedded && f.Type.Kind == TypeKindStruct {
				columns = append(columns, tagColumns(root, f.Type, member, diags)...)
			}

			continue
		}

		spec, ok, err := f.Column()
		if err != nil {
			diags.AddError(diagnostic.CodeMalformedTag, err, root.ID.String(), member.String())
			continue
		}

		if !ok {
			continue
		}

		columns = append(columns, Column{
			Index:   spec.Index,
			Member:  member.String(),
			Field:   f,
			Default: spec.Default,
		})
	}

	return columns
}

// ResolveField finds the field named by path in t. Each segment may name a
// direct field or one promoted from an embedded struct.
func ResolveField(t *TypeInfo, path []string) (*FieldInfo, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: empty path", schema.ErrUnknownField)
	}

	current := t

	var field *FieldInfo

	for _, name := range path {
		if current == nil || current.Kind != TypeKindStruct {
			return nil, fmt.Errorf("%w: cannot access %q on non-struct", schema.ErrUnknownField, name)
		}

		field = findField(current, name)
		if field == nil {
			return nil, fmt.Errorf("%w: %q not found in %s", schema.ErrUnknownField, name, current.ID)
		}

		current = field.Type
	}

	return field, nil
}

// findField looks name up among the fields of t, then breadth-first among the
// fields promoted from embedded structs.
func findField(t *TypeInfo, name string) *FieldInfo {
	level := []*TypeInfo{t}
	seen := map[*TypeInfo]bool{}

	for len(level) > 0 {
		var next []*TypeInfo

		for _, cur := range level {
			if seen[cur] {
				continue
			}
			seen[cur] = true

			for i := range cur.Fields {
				f := &cur.Fields[i]
				if f.Name == name {
					return f
				}

				if f.Embedded && f.Type != nil && f.Type.Kind == TypeKindStruct {
					next = append(next, f.Type)
				}
			}
		}

		level = next
	}

	return nil
}

// Members lists the dotted paths of every field a column may bind to in t,
// including fields promoted from embedded structs.
func Members(t *TypeInfo) []string {
	return members(t, NewTypePath(""), map[*TypeInfo]bool{})
}

func members(t *TypeInfo, prefix *TypePath, seen map[*TypeInfo]bool) []string {
	if seen[t] {
		return nil
	}
	seen[t] = true

	var out []string

	for i := range t.Fields {
		f := &t.Fields[i]
		member := prefix.Field(f.Name)

		if f.Embedded && f.Type != nil && f.Type.Kind == TypeKindStruct {
			out = append(out, members(f.Type, member, seen)...)
			continue
		}

		out = append(out, member.String())
	}

	return out
}
