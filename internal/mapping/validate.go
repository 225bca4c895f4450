package mapping

import (
	"errors"
	"fmt"

	"record-loader/internal/analyze"
	"record-loader/internal/diagnostic"
	"record-loader/schema"
)

// ErrEmptyType is reported for record mappings without a type.
var ErrEmptyType = errors.New("record mapping has no type")

// Validate checks a mapping file on its own: every record names a type once,
// declares columns, and every column has a non-negative index used once and a
// valid field path.
func Validate(mf *MappingFile) diagnostic.Diagnostics {
	var res diagnostic.Diagnostics
	if mf == nil {
		res.AddError(diagnostic.CodeNoColumns, errors.New("mapping file is nil"), "", "")
		return res
	}

	seenTypes := map[string]struct{}{}

	for i := range mf.Records {
		rm := &mf.Records[i]

		if rm.Type == "" {
			res.AddError(diagnostic.CodeUnknownType, fmt.Errorf("%w (record #%d)", ErrEmptyType, i+1), "", "")
			continue
		}

		if _, ok := seenTypes[rm.Type]; ok {
			res.AddError(diagnostic.CodeDuplicateRecord, fmt.Errorf("duplicate record %q", rm.Type), rm.Type, "")
			continue
		}

		seenTypes[rm.Type] = struct{}{}

		if len(rm.Columns) == 0 {
			res.AddWarning(diagnostic.CodeNoColumns, "record declares no columns", rm.Type, "")
			continue
		}

		validateColumns(&res, rm)
	}

	return res
}

func validateColumns(res *diagnostic.Diagnostics, rm *RecordMapping) {
	seenIndexes := map[int]string{}

	for _, c := range rm.Columns {
		if c.Field == "" {
			res.AddError(diagnostic.CodeEmptyField, columnError(rm, c, errors.New("empty field name")), rm.Type, "")
			continue
		}

		if _, err := ParsePath(c.Field); err != nil {
			res.AddError(diagnostic.CodeUnknownField, columnError(rm, c, err), rm.Type, c.Field)
			continue
		}

		if c.Index < 0 {
			res.AddError(diagnostic.CodeNegativeColumn, columnError(rm, c, schema.ErrNegativeColumn), rm.Type, c.Field)
			continue
		}

		if first, ok := seenIndexes[c.Index]; ok {
			err := fmt.Errorf("%w: already bound to %s", schema.ErrDuplicateColumn, first)
			res.AddError(diagnostic.CodeDuplicateColumn, columnError(rm, c, err), rm.Type, c.Field)

			continue
		}

		seenIndexes[c.Index] = c.Field
	}
}

// ValidateTypes checks the mapping against analyzed types: each record type
// must exist and be a struct, and each column must name one of its fields.
func ValidateTypes(mf *MappingFile, graph *analyze.TypeGraph) diagnostic.Diagnostics {
	res := Validate(mf)
	if mf == nil || graph == nil {
		return res
	}

	for i := range mf.Records {
		rm := &mf.Records[i]
		if rm.Type == "" {
			continue
		}

		t := ResolveTypeID(rm.Type, graph)
		if t == nil {
			res.AddError(diagnostic.CodeUnknownType, fmt.Errorf("record type %q not found", rm.Type), rm.Type, "")
			continue
		}

		if t.Kind != analyze.TypeKindStruct {
			res.AddError(diagnostic.CodeUnknownType, fmt.Errorf("%w: %s is %s", schema.ErrNotStruct, t.ID, t.Kind), rm.Type, "")
			continue
		}

		for _, c := range rm.Columns {
			fp, err := ParsePath(c.Field)
			if err != nil {
				continue // reported by Validate
			}

			if _, err := analyze.ResolveField(t, fp); err != nil {
				res.AddError(diagnostic.CodeUnknownField, columnError(rm, c, err), rm.Type, c.Field)
			}
		}
	}

	return res
}

func columnError(rm *RecordMapping, c ColumnMapping, err error) error {
	return &schema.BindingError{
		Type:   rm.Type,
		Member: c.Field,
		Column: c.Index,
		Err:    err,
	}
}
