// Package mapping provides YAML schema definitions, parsing and validation
// for record mapping files.
//
// A mapping file binds table columns to record fields without touching the
// record types. It takes precedence over csv struct tags and is read by the
// code generator.
//
// # Schema Overview
//
// The mapping file has the following structure:
//
//	version: "1"
//	records:
//	  - type: monsters.Item
//	    # logical path of the table, defaults to the lowercased type name
//	    source: items
//	    skip_header: true
//	    columns:
//	      # full form
//	      - index: 1
//	        field: Price
//	        default: 10
//	      # short forms
//	      - 0: Name
//	      - 2: Stack = 1
//
// # Field Paths
//
// Fields are Go field names. Fields of embedded structs may be written
// promoted ("ID") or through the embedded type ("Base.ID").
//
// # Validation
//
// Validate checks a file on its own: duplicate record types, negative or
// repeated column indexes and malformed field names. ValidateTypes
// additionally resolves every record type and field against an analyzed
// type graph.
package mapping
