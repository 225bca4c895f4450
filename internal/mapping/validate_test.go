package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"record-loader/internal/analyze"
	"record-loader/internal/diagnostic"
	"record-loader/schema"
)

func codes(ds []diagnostic.Diagnostic) []string {
	var out []string
	for _, d := range ds {
		out = append(out, d.Code)
	}

	return out
}

func TestValidate_Valid(t *testing.T) {
	mf, err := Parse([]byte(`
records:
  - type: monsters.Item
    columns:
      - 0: Name
      - 1: Price = 10
`))
	require.NoError(t, err)

	res := Validate(mf)
	assert.True(t, res.IsValid(), "%v", res.Errors)
	assert.Empty(t, res.Warnings)
	assert.NoError(t, res.Error())
}

func TestValidate_Errors(t *testing.T) {
	mf, err := Parse([]byte(`
records:
  - type: monsters.Item
    columns:
      - 0: Name
      - 0: Price
      - -1: Stack
      - 3: ""
      - 4: 9lives
  - type: monsters.Item
    columns:
      - 0: Name
  - type: ""
  - type: monsters.Empty
    columns: []
`))
	require.NoError(t, err)

	res := Validate(mf)
	assert.Equal(t, []string{
		diagnostic.CodeDuplicateColumn,
		diagnostic.CodeNegativeColumn,
		diagnostic.CodeEmptyField,
		diagnostic.CodeUnknownField,
		diagnostic.CodeDuplicateRecord,
		diagnostic.CodeUnknownType,
	}, codes(res.Errors))
	assert.Equal(t, []string{diagnostic.CodeNoColumns}, codes(res.Warnings))

	err = res.Error()
	assert.ErrorIs(t, err, schema.ErrDuplicateColumn)
	assert.ErrorIs(t, err, schema.ErrNegativeColumn)
	assert.ErrorIs(t, err, ErrEmptyType)

	var be *schema.BindingError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "monsters.Item", be.Type)
	assert.Equal(t, "Price", be.Member)
	assert.Equal(t, 0, be.Column)
}

func TestValidate_Nil(t *testing.T) {
	res := Validate(nil)
	assert.True(t, res.HasErrors())
}

func TestValidateTypes(t *testing.T) {
	graph, err := analyze.NewAnalyzer().LoadPackages("record-loader/examples/monsters")
	require.NoError(t, err)

	mf, err := Parse([]byte(`
records:
  - type: monsters.Item
    columns:
      - 0: Name
      - 1: Price
  - type: Monster
    columns:
      - 0: ID
      - 1: Base.ID
      - 2: Mana
  - type: monsters.Element
    columns:
      - 0: Name
  - type: monsters.Spell
    columns:
      - 0: Name
`))
	require.NoError(t, err)

	res := ValidateTypes(mf, graph)
	require.Len(t, res.Errors, 3, "%v", res.Errors)

	assert.Equal(t, diagnostic.CodeUnknownField, res.Errors[0].Code)
	assert.Equal(t, "Mana", res.Errors[0].Member)
	assert.ErrorIs(t, res.Errors[0].Err, schema.ErrUnknownField)

	assert.Equal(t, diagnostic.CodeUnknownType, res.Errors[1].Code)
	assert.ErrorIs(t, res.Errors[1].Err, schema.ErrNotStruct)

	assert.Equal(t, diagnostic.CodeUnknownType, res.Errors[2].Code)
	assert.Equal(t, "monsters.Spell", res.Errors[2].Type)
}

func TestResolveTypeID(t *testing.T) {
	graph := analyze.NewTypeGraph()
	monster := &analyze.TypeInfo{Kind: analyze.TypeKindStruct}
	other := &analyze.TypeInfo{Kind: analyze.TypeKindStruct}

	graph.Types[analyze.TypeID{PkgPath: "record-loader/examples/monsters", Name: "Monster"}] = monster
	graph.Types[analyze.TypeID{PkgPath: "record-loader/zoo/monsters", Name: "Monster"}] = other

	assert.Same(t, monster, ResolveTypeID("record-loader/examples/monsters.Monster", graph))
	assert.Same(t, other, ResolveTypeID("zoo/monsters.Monster", graph))
	assert.Same(t, monster, ResolveTypeID("monsters.Monster", graph), "smallest full id wins")
	assert.Same(t, monster, ResolveTypeID("Monster", graph))
	assert.Nil(t, ResolveTypeID("monsters.Item", graph))
	assert.Nil(t, ResolveTypeID("", graph))
	assert.Nil(t, ResolveTypeID("Monster", nil))
}
