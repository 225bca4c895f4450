package gen

import (
	"fmt"
	"maps"
	"slices"

	"record-loader/internal/analyze"
	"record-loader/internal/common"
	"record-loader/internal/diagnostic"
	"record-loader/internal/mapping"
	"record-loader/schema"
)

const (
	convertPkgPath = "record-loader/convert"
	schemaPkgPath  = "record-loader/schema"
)

// templateData holds all data needed for the records template.
type templateData struct {
	PackageName      string
	Imports          []importSpec
	Records          []recordData
	GenerateComments bool
}

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// recordData represents one generated schema function.
type recordData struct {
	TypeName     string
	FunctionName string
	Columns      []columnData
	// Table location, set for records listed in the mapping file.
	HasTable   bool
	Source     string
	SkipHeader bool
}

// columnData represents a single column binding.
type columnData struct {
	RecordType string
	Builder    string // schema.Column or schema.ColumnDefaultText
	Index      int
	Member     string
	FieldType  string
	HasDefault bool
	Default    string
}

// record is a record type with the columns it will be bound by.
type record struct {
	analyze.Record
	table *mapping.RecordMapping
}

// collectRecords merges tag-derived records with the mapping file.
func (g *Generator) collectRecords(pkgPath string, mf *mapping.MappingFile) []record {
	tagged, diags := g.graph.Records(pkgPath)
	g.diags.Merge(diags)

	var records []record

	seen := map[analyze.TypeID]bool{}

	for _, r := range tagged {
		g.checkColumns(r)
		seen[r.Type.ID] = true
		records = append(records, record{Record: r})
	}

	if mf == nil {
		return records
	}

	g.diags.Merge(mapping.ValidateTypes(mf, g.graph))

	for i := range mf.Records {
		rm := &mf.Records[i]

		t := mapping.ResolveTypeID(rm.Type, g.graph)
		if t == nil || t.ID.PkgPath != pkgPath || t.Kind != analyze.TypeKindStruct {
			continue
		}

		columns := g.mappedColumns(t, rm)

		if seen[t.ID] {
			g.diags.AddInfo(diagnostic.CodeDuplicateRecord, "mapping file columns replace csv tags", t.ID.String(), "")

			for j := range records {
				if records[j].Type.ID == t.ID {
					records[j].Columns = columns
					records[j].table = rm
				}
			}

			continue
		}

		seen[t.ID] = true
		records = append(records, record{
			Record: analyze.Record{Type: t, Columns: columns},
			table:  rm,
		})
	}

	slices.SortFunc(records, func(a, b record) int {
		switch {
		case a.Type.ID.Name < b.Type.ID.Name:
			return -1
		case a.Type.ID.Name > b.Type.ID.Name:
			return 1
		}
		return 0
	})

	return records
}

// checkColumns reports what schema.Builder would reject at run time.
func (g *Generator) checkColumns(r analyze.Record) {
	typeName := r.Type.ID.String()
	bound := map[int]string{}

	for _, c := range r.Columns {
		if c.Index < 0 {
			g.diags.AddError(diagnostic.CodeNegativeColumn, &schema.BindingError{
				Type: typeName, Member: c.Member, Column: c.Index, Err: schema.ErrNegativeColumn,
			}, typeName, c.Member)

			continue
		}

		if first, ok := bound[c.Index]; ok {
			g.diags.AddError(diagnostic.CodeDuplicateColumn, &schema.BindingError{
				Type: typeName, Member: c.Member, Column: c.Index,
				Err: fmt.Errorf("%w: already bound to %s", schema.ErrDuplicateColumn, first),
			}, typeName, c.Member)

			continue
		}

		bound[c.Index] = c.Member
	}
}

// mappedColumns resolves the columns of a mapping; unresolvable ones were
// already reported by mapping.ValidateTypes.
func (g *Generator) mappedColumns(t *analyze.TypeInfo, rm *mapping.RecordMapping) []analyze.Column {
	var columns []analyze.Column

	for _, c := range rm.Columns {
		fp, err := mapping.ParsePath(c.Field)
		if err != nil {
			continue
		}

		f, err := analyze.ResolveField(t, fp)
		if err != nil {
			continue
		}

		columns = append(columns, analyze.Column{
			Index:   c.Index,
			Member:  fp.String(),
			Field:   f,
			Default: c.Default,
		})
	}

	slices.SortStableFunc(columns, func(a, b analyze.Column) int { return a.Index - b.Index })

	return columns
}

// buildTemplateData constructs the template data from the collected records.
func (g *Generator) buildTemplateData(pkgPath string, records []record) *templateData {
	stringer := analyze.NewTypeStringer(pkgPath)

	data := &templateData{
		PackageName:      g.getPkgName(pkgPath),
		GenerateComments: g.config.GenerateComments,
	}

	for _, r := range records {
		rd := recordData{
			TypeName:     r.Type.ID.Name,
			FunctionName: r.Type.ID.Name + "Schema",
		}

		if r.table != nil {
			rd.HasTable = true
			rd.Source = r.table.Source
			rd.SkipHeader = r.table.SkipHeader
		}

		for _, c := range r.Columns {
			cd := columnData{
				RecordType: rd.TypeName,
				Builder:    "Column",
				Index:      c.Index,
				Member:     c.Member,
				FieldType:  stringer.TypeString(c.Field.Type),
			}

			if c.Default != nil {
				cd.Builder = "ColumnDefaultText"
				cd.HasDefault = true
				cd.Default = *c.Default
			}

			rd.Columns = append(rd.Columns, cd)
		}

		data.Records = append(data.Records, rd)
	}

	// Collect imports
	imports := map[string]importSpec{}
	g.addImport(imports, convertPkgPath)
	g.addImport(imports, schemaPkgPath)

	for path, name := range stringer.Imports() {
		imports[path] = importSpec{Alias: aliasFor(path, name), Path: path}
	}

	for _, path := range slices.Sorted(maps.Keys(imports)) {
		data.Imports = append(data.Imports, imports[path])
	}

	return data
}

// getPkgName returns the package name for a given package path.
// It tries to look up the name from the type graph, falling back to the path base alias.
func (g *Generator) getPkgName(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	if g.graph != nil {
		if pkgInfo, ok := g.graph.Packages[pkgPath]; ok {
			return pkgInfo.Name
		}
	}

	return common.PkgAlias(pkgPath)
}

// addImport adds an import to the imports map.
func (g *Generator) addImport(imports map[string]importSpec, pkgPath string) {
	if pkgPath == "" {
		return
	}

	imports[pkgPath] = importSpec{
		Alias: aliasFor(pkgPath, g.getPkgName(pkgPath)),
		Path:  pkgPath,
	}
}

// aliasFor returns the import alias needed for name, empty when the path
// already ends in it.
func aliasFor(pkgPath, name string) string {
	if common.PkgAlias(pkgPath) == name {
		return ""
	}

	return name
}
