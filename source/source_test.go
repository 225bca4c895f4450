package source_test

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"record-loader/source"
)

func TestFSResolvesExtensions(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"data/monsters.csv": {Data: []byte("Name,HP\nGoblin,15\n")},
		"data/items.txt":    {Data: []byte("Potion,50\n")},
		"data/exact":        {Data: []byte("raw")},
	}
	p := source.NewFS(fsys)

	text, err := p.Load("data/monsters")
	require.NoError(t, err)
	assert.Equal(t, "Name,HP\nGoblin,15\n", text)

	text, err = p.Load("/data/items")
	require.NoError(t, err)
	assert.Equal(t, "Potion,50\n", text)

	text, err = p.Load("data/exact")
	require.NoError(t, err)
	assert.Equal(t, "raw", text)

	text, err = p.Load("data/monsters.csv")
	require.NoError(t, err)
	assert.Equal(t, "Name,HP\nGoblin,15\n", text)
}

func TestFSMissing(t *testing.T) {
	t.Parallel()

	p := source.NewFS(fstest.MapFS{}, source.WithExtensions(".tsv"))

	_, err := p.Load("data/monsters")
	require.Error(t, err)
	assert.ErrorIs(t, err, source.ErrNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	var le *source.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "data/monsters", le.Path)
	assert.Contains(t, err.Error(), `"data/monsters"`)

	_, err = p.Load("")
	assert.ErrorIs(t, err, fs.ErrInvalid)
}

func TestFSSkipsFolderNamedLikeTable(t *testing.T) {
	t.Parallel()

	p := source.NewFS(fstest.MapFS{
		"monsters/readme.txt": {Data: []byte("art")},
		"monsters.csv":        {Data: []byte("Goblin,15\n")},
		"items/readme.txt":    {Data: []byte("art")},
	})

	text, err := p.Load("monsters")
	require.NoError(t, err)
	assert.Equal(t, "Goblin,15\n", text)

	_, err = p.Load("items")
	assert.ErrorIs(t, err, source.ErrNotFound)
}

func TestFSStripsBOM(t *testing.T) {
	t.Parallel()

	p := source.NewFS(fstest.MapFS{
		"bom.csv": {Data: []byte("\xef\xbb\xbfName,HP\n")},
	})

	text, err := p.Load("bom")
	require.NoError(t, err)
	assert.Equal(t, "Name,HP\n", text)
}

func TestFSEncoding(t *testing.T) {
	t.Parallel()

	enc, err := source.Encoding("windows-1252")
	require.NoError(t, err)

	p := source.NewFS(fstest.MapFS{
		"menu.csv": {Data: []byte("Caf\xe9,3\n")},
	}, source.WithEncoding(enc))

	text, err := p.Load("menu")
	require.NoError(t, err)
	assert.Equal(t, "Café,3\n", text)

	_, err = source.Encoding("klingon")
	assert.Error(t, err)
}

func TestMemoryAndFunc(t *testing.T) {
	t.Parallel()

	m := source.Memory{"monsters": "Goblin,15"}

	text, err := m.Load("monsters")
	require.NoError(t, err)
	assert.Equal(t, "Goblin,15", text)

	_, err = m.Load("items")
	assert.ErrorIs(t, err, source.ErrNotFound)

	var p source.Provider = source.Func(func(path string) (string, error) { return path + "!", nil })
	text, err = p.Load("x")
	require.NoError(t, err)
	assert.Equal(t, "x!", text)
}
