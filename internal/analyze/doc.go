// Package analyze loads record packages for recordgen.
//
// Packages are read with golang.org/x/tools/go/packages and their named
// types are flattened into a TypeGraph. Record types are structs whose
// fields, own or promoted from embedded structs, carry csv tags.
//
// Key types:
//   - TypeGraph: every exported named type of the loaded packages
//   - TypeInfo, FieldInfo: kind, fields, tags and embedding of a type
//   - Record, Column: a record type and its columns in index order
//   - TypeStringer: Go type expressions as seen from the generated file
package analyze
