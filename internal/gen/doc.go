// Package gen provides deterministic Go code generation for record schemas.
//
// Generation approach uses text/template + go/format for readable,
// reflection-free Go code.
//
// For every record type of a package the generated file holds:
//   - <Type>Schema, building the schema with schema.Column and
//     schema.ColumnDefaultText calls and typed field accessors
//   - <Type>Source and <Type>SkipHeader constants when a mapping file
//     locates the table
//   - RegisterSchemas, installing every schema into a schema.Binder
//
// Columns come from csv struct tags. A record listed in the mapping file
// takes all of its columns from there instead.
package gen
