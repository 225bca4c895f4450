package record_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"record-loader/convert"
	"record-loader/record"
	"record-loader/schema"
	"record-loader/source"
)

type Item struct {
	Name  string  `csv:"0"`
	Price float64 `csv:"1,default=1.5"`
	Stack int     `csv:"3,default=1"`
	Note  string
}

type Broken struct {
	A int `csv:"0"`
	B int `csv:"0"`
}

func TestLoaderLoadList(t *testing.T) {
	t.Parallel()

	l := record.NewLoader(source.Memory{
		"items": "Name,Price,Unused,Stack\nsword,12.5,x,1\npotion,,x,20\narrow,0.1\n",
	})

	list, err := record.LoadList[Item](l, "items", true)
	require.NoError(t, err)

	assert.Equal(t, []*Item{
		{Name: "sword", Price: 12.5, Stack: 1},
		{Name: "potion", Price: 1.5, Stack: 20},
		{Name: "arrow", Price: 0.1, Stack: 1},
	}, list.Slice())
}

func TestLoaderReusesSchema(t *testing.T) {
	t.Parallel()

	b := schema.NewBinder(convert.NewRegistry())
	l := record.NewLoader(source.Memory{"a": "x,1", "b": "y,2"}, record.WithBinder(b))
	assert.Same(t, b, l.Binder())

	sa, err := record.Open[Item](l, "a", false)
	require.NoError(t, err)

	sb, err := record.Open[Item](l, "b", false)
	require.NoError(t, err)

	assert.Same(t, sa.Schema(), sb.Schema())
}

func TestLoaderRegisteredSchema(t *testing.T) {
	t.Parallel()

	l := record.NewLoader(source.Memory{"monsters": "Goblin,15\nOrc,abc\nSlime"})
	schema.Register(l.Binder(), monsterSchema(t))

	list, err := record.LoadList[Monster](l, "monsters", false)
	require.NoError(t, err)
	assert.Equal(t, scenario, values(list.Slice()))
}

func TestLoaderBindingError(t *testing.T) {
	t.Parallel()

	touched := false
	l := record.NewLoader(source.Func(func(string) (string, error) {
		touched = true
		return "", nil
	}))

	_, err := record.Open[Broken](l, "broken", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrDuplicateColumn)
	assert.False(t, touched, "the source is not read for an unbindable type")
}

func TestLoaderMissingSource(t *testing.T) {
	t.Parallel()

	l := record.NewLoader(source.Memory{})

	_, err := record.LoadList[Item](l, "nowhere", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, source.ErrNotFound)

	var le *source.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "nowhere", le.Path)
}

func TestLoaderSourceErrorPassesThrough(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	l := record.NewLoader(source.Func(func(string) (string, error) { return "", boom }))

	_, err := record.Open[Item](l, "x", false)
	assert.Same(t, boom, err)
}
