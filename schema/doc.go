// Package schema binds the columns of delimited text to the members of a
// record type.
//
// A Schema is computed once per record type and reused for every row. It can
// be declared three ways, all producing the same binding table:
//
//   - with a Builder, naming each column and an accessor for its member:
//
//     b := schema.NewBuilder[Monster](registry)
//     schema.Column(b, 0, "Name", func(m *Monster) *string { return &m.Name })
//     schema.ColumnDefault(b, 1, "HP", func(m *Monster) *int { return &m.HP }, 100)
//     s, err := b.Build()
//
//   - with csv struct tags, read once by FromTags or a Binder:
//
//     type Monster struct {
//     Name string `csv:"0"`
//     HP   int    `csv:"1,default=100"`
//     }
//
//   - with ColumnSpec values naming fields, as produced from mapping files.
//
// Cells that fail to convert never abort loading: the member receives the
// configured default, or its zero value when none was configured. Structural
// problems such as two members on one column are reported by Build as
// *BindingError values joined into one error.
package schema
