package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"record-loader/schema"
)

func TestRecords(t *testing.T) {
	graph := loadMonsters(t)

	records, diags := graph.Records(monstersPkg)
	require.True(t, diags.IsValid(), "%v", diags.Errors)
	require.Len(t, records, 1, "Item has no tags and Base is only embedded")

	monster := records[0]
	assert.Equal(t, "Monster", monster.Type.ID.Name)

	var members []string
	for i, c := range monster.Columns {
		assert.Equal(t, i, c.Index)
		members = append(members, c.Member)
	}

	assert.Equal(t, []string{"Base.ID", "Name", "HP", "Element", "Speed", "Respawn", "Boss", "loot"}, members)

	hp := monster.Columns[2]
	require.NotNil(t, hp.Default)
	assert.Equal(t, "100", *hp.Default)
	assert.Equal(t, "HP", hp.Field.Name)
	assert.Nil(t, monster.Columns[1].Default)
}

func TestRecords_EmbeddedStructIsNotARecord(t *testing.T) {
	graph := loadMonsters(t)

	base := graph.GetType(TypeID{PkgPath: monstersPkg, Name: "Base"})
	require.NotNil(t, base)

	columns, diags := TagColumns(base)
	require.True(t, diags.IsValid())
	require.Len(t, columns, 1, "Base carries a csv tag of its own")

	records, _ := graph.Records(monstersPkg)
	for _, r := range records {
		assert.NotEqual(t, "Base", r.Type.ID.Name)
	}

	// the same struct declared on its own is a record
	standalone := &TypeInfo{ID: TypeID{PkgPath: "x", Name: "Base"}, Kind: TypeKindStruct, Fields: base.Fields}
	graph.Types[standalone.ID] = standalone
	graph.Packages["x"] = &PackageInfo{Path: "x", Name: "x", Types: []TypeID{standalone.ID}}

	records, diags = graph.Records("x")
	require.True(t, diags.IsValid())
	require.Len(t, records, 1)
	assert.Same(t, standalone, records[0].Type)
}

func TestRecords_UnknownPackage(t *testing.T) {
	graph := NewTypeGraph()

	records, diags := graph.Records("nowhere")
	assert.Empty(t, records)
	assert.True(t, diags.HasErrors())
}

func TestMembers(t *testing.T) {
	graph := loadMonsters(t)

	monster := graph.GetType(TypeID{PkgPath: monstersPkg, Name: "Monster"})
	require.NotNil(t, monster)
	assert.Equal(t, []string{"Base.ID", "Name", "HP", "Element", "Speed", "Respawn", "Boss", "loot"}, Members(monster))

	item := graph.GetType(TypeID{PkgPath: monstersPkg, Name: "Item"})
	require.NotNil(t, item)
	assert.Equal(t, []string{"Name", "Price", "Stack"}, Members(item))
}

func TestResolveField(t *testing.T) {
	graph := loadMonsters(t)
	monster := graph.GetType(TypeID{PkgPath: monstersPkg, Name: "Monster"})
	require.NotNil(t, monster)

	tests := []struct {
		path []string
		want string
	}{
		{path: []string{"Name"}, want: "Name"},
		{path: []string{"ID"}, want: "ID"},
		{path: []string{"Base", "ID"}, want: "ID"},
		{path: []string{"loot"}, want: "loot"},
	}

	for _, tt := range tests {
		f, err := ResolveField(monster, tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, f.Name)
	}

	for _, bad := range [][]string{nil, {"Mana"}, {"Name", "Len"}, {"Base", "Name"}} {
		_, err := ResolveField(monster, bad)
		assert.ErrorIs(t, err, schema.ErrUnknownField, "%v", bad)
	}
}

func TestTypeStringer(t *testing.T) {
	graph := loadMonsters(t)
	monster := graph.GetType(TypeID{PkgPath: monstersPkg, Name: "Monster"})
	require.NotNil(t, monster)

	s := NewTypeStringer(monstersPkg)

	assert.Equal(t, "*bool", s.TypeString(field(t, monster, "Boss").Type))
	assert.Equal(t, "Element", s.TypeString(field(t, monster, "Element").Type))
	assert.Equal(t, map[string]string{}, s.Imports())

	assert.Equal(t, "time.Duration", s.TypeString(field(t, monster, "Respawn").Type))
	assert.Equal(t, map[string]string{"time": "time"}, s.Imports())

	other := NewTypeStringer("record-loader/other")
	assert.Equal(t, "monsters.Element", other.TypeString(field(t, monster, "Element").Type))

	assert.Equal(t, "<nil>", s.TypeString(nil))
}

func TestTypePath(t *testing.T) {
	assert.Equal(t, "", NewTypePath("").String())
	assert.Equal(t, "ID", NewTypePath("").Field("ID").String())
	assert.Equal(t, "Base.ID", NewTypePath("").Field("Base").Field("ID").String())
	assert.Equal(t, "Monster.Base", NewTypePath("Monster").Field("Base").String())
}
