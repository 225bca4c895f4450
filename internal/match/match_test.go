package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"HitPoints", []string{"hit", "points"}},
		{"hit_points", []string{"hit", "points"}},
		{"Hit Points", []string{"hit", "points"}},
		{"max-HP", []string{"max", "hp"}},
		{"XMLName", []string{"xml", "name"}},
		{"Base.ID", []string{"base", "id"}},
		{"  ", nil},
		{"Straße", []string{"strasse"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokens(tt.in))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "hitpoints", Normalize("HitPoints"))
	assert.Equal(t, Normalize("respawn_time"), Normalize("RespawnTime"))
	assert.Empty(t, Normalize(""))
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"kitten", "sitting", 3},
		{"", "abc", 3},
		{"abc", "", 3},
		{"same", "same", 0},
		{"héllo", "hello", 1},
		{"flaw", "lawn", 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Distance(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
		assert.Equal(t, tt.want, Distance(tt.b, tt.a), "%q vs %q", tt.b, tt.a)
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 1.0, Similarity("Hit Points", "HitPoints"), 1e-9)
	assert.InDelta(t, 6.0/7.0, Similarity("Elemnt", "Element"), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
}

func TestRank(t *testing.T) {
	list := Rank("id", []string{"Name", "Base.ID", "Hidden"})
	require.Len(t, list, 3)

	best := list.Best()
	require.NotNil(t, best)
	assert.Equal(t, "Base.ID", best.Field)
	assert.InDelta(t, 1.0, best.Score, 1e-9)

	assert.Nil(t, CandidateList(nil).Best())
}

func TestHighConfidence(t *testing.T) {
	list := CandidateList{{Field: "A", Score: 0.9}, {Field: "B", Score: 0.85}}
	assert.Nil(t, list.HighConfidence(0.7, 0.1), "gap too small")
	assert.NotNil(t, list.HighConfidence(0.7, 0.05))
	assert.Nil(t, list.HighConfidence(0.95, 0))
	assert.Nil(t, CandidateList(nil).HighConfidence(0, 0))
}

func TestSuggest(t *testing.T) {
	header := []string{"ID", "Name", "HP", "Element", "Speed", "Respawn", "Boss", "Loot"}
	fields := []string{"Base.ID", "Name", "HP", "Element", "Speed", "Respawn", "Boss", "loot"}

	got := Suggest(header, fields, DefaultMinScore, DefaultMinGap)
	require.Len(t, got, len(header))

	for i, s := range got {
		assert.Equal(t, i, s.Index)
		assert.Equal(t, fields[i], s.Field)
		assert.Equal(t, header[i], s.Header)
	}
}

func TestSuggestFuzzy(t *testing.T) {
	header := []string{"hit_points", "Elemnt", "Comment"}
	fields := []string{"HitPoints", "Element"}

	got := Suggest(header, fields, DefaultMinScore, DefaultMinGap)
	require.Len(t, got, 2)
	assert.Equal(t, Suggestion{Index: 0, Header: "hit_points", Field: "HitPoints", Score: 1}, got[0])
	assert.Equal(t, 1, got[1].Index)
	assert.Equal(t, "Element", got[1].Field)
}

func TestSuggestUsesFieldOnce(t *testing.T) {
	got := Suggest([]string{"Name", "name"}, []string{"Name"}, DefaultMinScore, DefaultMinGap)
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].Index)
}

func TestSuggestAmbiguous(t *testing.T) {
	got := Suggest([]string{"Val"}, []string{"Val1", "Val2"}, DefaultMinScore, DefaultMinGap)
	assert.Empty(t, got)

	// once Val1 is taken by an exact match, Val2 is unambiguous
	got = Suggest([]string{"Val1", "Val"}, []string{"Val1", "Val2"}, DefaultMinScore, DefaultMinGap)
	require.Len(t, got, 2)
	assert.Equal(t, "Val2", got[1].Field)
}
