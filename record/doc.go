// Package record reads delimited text into typed records.
//
// A Stream walks a buffered text line by line and populates one record per
// line through a schema. Nothing is parsed until a cursor advances, and every
// new pass starts again from the first line:
//
//	s := record.OpenText(monsterSchema, text, true)
//	defer s.Close()
//
//	for m := range s.All() {
//		...
//	}
//
// A List drains a stream once at construction and offers indexed access
// afterwards. A Loader ties both to a source provider and a schema binder:
//
//	l := record.NewLoader(source.Dir("assets"))
//	monsters, err := record.LoadList[Monster](l, "data/monsters", true)
//
// Lines are split on every comma; quoted fields are not supported. Cells that
// do not convert take the default of their column.
package record
