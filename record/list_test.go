package record_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"record-loader/record"
)

func filled(n int) (*record.List[Monster], []*Monster) {
	l := record.NewList[Monster]()
	items := make([]*Monster, n)

	for i := range n {
		items[i] = &Monster{Name: string(rune('a' + i)), HP: i}
		l.Add(items[i])
	}

	return l, items
}

func TestListFromStream(t *testing.T) {
	t.Parallel()

	s := record.OpenText(monsterSchema(t), "Goblin,15\nOrc,abc\nSlime", false)

	l, err := record.NewListFrom(s)
	require.NoError(t, err)
	require.Equal(t, 3, l.Len())

	for i, m := range l.All() {
		assert.Equal(t, scenario[i], *m)
	}

	// the stream is consumed
	_, err = record.NewListFrom(s)
	assert.ErrorIs(t, err, record.ErrClosed)
}

func TestListIndexing(t *testing.T) {
	t.Parallel()

	l, items := filled(3)

	m, err := l.At(1)
	require.NoError(t, err)
	assert.Same(t, items[1], m)

	repl := &Monster{Name: "z"}
	require.NoError(t, l.Set(1, repl))

	m, err = l.At(1)
	require.NoError(t, err)
	assert.Same(t, repl, m)

	require.NoError(t, l.RemoveAt(0))
	assert.Equal(t, []*Monster{repl, items[2]}, l.Slice())
}

func TestListIndexOutOfRange(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 5} {
		l, _ := filled(n)

		for _, i := range []int{-1, n, n + 1, -100} {
			_, err := l.At(i)
			assert.ErrorIs(t, err, record.ErrIndexOutOfRange)

			var ie *record.IndexError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, i, ie.Index)
			assert.Equal(t, n, ie.Len)

			assert.ErrorIs(t, l.Set(i, &Monster{}), record.ErrIndexOutOfRange)
			assert.ErrorIs(t, l.RemoveAt(i), record.ErrIndexOutOfRange)
		}

		assert.Equal(t, n, l.Len(), "failed calls leave the list unchanged")
	}
}

func TestIndexErrorMessage(t *testing.T) {
	t.Parallel()

	err := &record.IndexError{Index: 4, Len: 2}
	assert.EqualError(t, err, "record: index 4 out of range [0, 2)")
}

func TestListRemove(t *testing.T) {
	t.Parallel()

	l, items := filled(4)

	assert.True(t, l.Remove(items[2]), "by identity")
	assert.Equal(t, 3, l.Len())

	assert.True(t, l.Remove(&Monster{Name: "a", HP: 0}), "by value")
	assert.Equal(t, []*Monster{items[1], items[3]}, l.Slice())

	assert.False(t, l.Remove(&Monster{Name: "nope"}))
	assert.Equal(t, 2, l.Len())

	assert.Equal(t, 1, l.IndexOf(items[3]))
	assert.Equal(t, -1, l.IndexOf(items[0]))
}

func TestListRemoveFirstOfEqual(t *testing.T) {
	t.Parallel()

	l := record.NewList[Monster]()
	first, second := &Monster{Name: "x"}, &Monster{Name: "x"}
	l.Add(first)
	l.Add(second)

	require.True(t, l.Remove(second))

	rest, err := l.At(0)
	require.NoError(t, err)
	assert.Same(t, second, rest, "the first equal record is removed")
}

func TestListIteration(t *testing.T) {
	t.Parallel()

	l, items := filled(5)

	assert.Equal(t, items, slices.Collect(l.Values()))

	var seen []int
	for i := range l.All() {
		seen = append(seen, i)
		if i == 2 {
			break
		}
	}
	assert.Equal(t, []int{0, 1, 2}, seen)

	// every call starts over
	seen = seen[:0]
	for i := range l.All() {
		seen = append(seen, i)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, seen)
}

func TestListSliceIsCopy(t *testing.T) {
	t.Parallel()

	l, _ := filled(2)

	s := l.Slice()
	s[0] = nil

	m, err := l.At(0)
	require.NoError(t, err)
	assert.NotNil(t, m)
}
