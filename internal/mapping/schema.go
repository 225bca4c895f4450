package mapping

import (
	"strings"

	"record-loader/schema"
)

// MappingFile represents the root of a YAML record mapping file.
// Columns declared here take precedence over csv struct tags.
type MappingFile struct {
	// Version of the mapping schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Records is a list of record type mappings.
	Records []RecordMapping `yaml:"records"`
}

// RecordMapping binds the columns of one table to one record type.
type RecordMapping struct {
	// Type identifier (e.g., "monsters.Monster" or full path).
	Type string `yaml:"type"`

	// Source is the logical path of the table, without extension.
	Source string `yaml:"source,omitempty"`

	// SkipHeader marks tables whose first line is a header.
	SkipHeader bool `yaml:"skip_header,omitempty"`

	// Columns lists the bound columns. Unlisted columns are ignored.
	Columns []ColumnMapping `yaml:"columns"`
}

// ColumnMapping binds one column index to one field.
type ColumnMapping struct {
	// Index is the 0-based position of the column in a line.
	Index int `yaml:"index"`

	// Field is the field name, dotted for promoted fields (e.g., "Base.ID").
	Field string `yaml:"field"`

	// Default is cell text used when the cell does not convert.
	Default *string `yaml:"default,omitempty"`
}

// TypeName returns the type name without its package qualifier.
func (rm *RecordMapping) TypeName() string {
	if i := strings.LastIndex(rm.Type, "."); i >= 0 {
		return rm.Type[i+1:]
	}

	return rm.Type
}

// Specs returns the columns as schema column specs, in declaration order.
func (rm *RecordMapping) Specs() []schema.ColumnSpec {
	specs := make([]schema.ColumnSpec, len(rm.Columns))
	for i, c := range rm.Columns {
		specs[i] = schema.ColumnSpec{
			Index:   c.Index,
			Field:   c.Field,
			Default: c.Default,
		}
	}

	return specs
}

// Column returns the mapping of column index.
func (rm *RecordMapping) Column(index int) (ColumnMapping, bool) {
	for _, c := range rm.Columns {
		if c.Index == index {
			return c, true
		}
	}

	return ColumnMapping{}, false
}

// Record returns the mapping of the given type identifier, matched like
// ResolveTypeID does: exact, by package suffix, or by bare name.
func (mf *MappingFile) Record(typeID string) (*RecordMapping, bool) {
	for i := range mf.Records {
		if typeIDMatches(mf.Records[i].Type, typeID) {
			return &mf.Records[i], true
		}
	}

	return nil, false
}

// typeIDMatches reports whether the mapping identifier ref names the fully
// qualified type full.
func typeIDMatches(ref, full string) bool {
	if ref == full {
		return true
	}

	if !strings.Contains(ref, ".") {
		_, name := splitTypeID(full)
		return ref == name
	}

	return strings.HasSuffix(full, "/"+ref)
}

func splitTypeID(id string) (pkg, name string) {
	i := strings.LastIndex(id, ".")
	if i < 0 {
		return "", id
	}

	return id[:i], id[i+1:]
}
