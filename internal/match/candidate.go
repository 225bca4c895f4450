package match

import (
	"cmp"
	"slices"
	"strings"
)

// Candidate is a field a header cell may bind to.
type Candidate struct {
	Field string
	Score float64 // Similarity of the header cell and the field name
}

// CandidateList is ordered by descending score.
type CandidateList []Candidate

// Rank scores every field against a header cell. Dotted fields also match
// on their last segment, so "ID" finds "Base.ID".
func Rank(header string, fields []string) CandidateList {
	candidates := make(CandidateList, 0, len(fields))

	for _, f := range fields {
		score := Similarity(header, f)

		if i := strings.LastIndex(f, "."); i >= 0 {
			score = max(score, Similarity(header, f[i+1:]))
		}

		candidates = append(candidates, Candidate{Field: f, Score: score})
	}

	slices.SortStableFunc(candidates, func(a, b Candidate) int {
		return cmp.Compare(b.Score, a.Score)
	})

	return candidates
}

// Best returns the top candidate, or nil when the list is empty.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// HighConfidence returns the best candidate when it scores at least minScore
// and leads the runner-up by at least minGap.
func (c CandidateList) HighConfidence(minScore, minGap float64) *Candidate {
	best := c.Best()
	if best == nil || best.Score < minScore {
		return nil
	}

	if len(c) > 1 && best.Score-c[1].Score < minGap {
		return nil
	}

	return best
}

// Thresholds used by Suggest.
const (
	DefaultMinScore = 0.7
	DefaultMinGap   = 0.1
)

// Suggestion binds one header column to one field.
type Suggestion struct {
	Index  int
	Header string
	Field  string
	Score  float64
}

// Suggest assigns fields to header columns. Pairs are taken by descending
// score, so each field and each column is used at most once; a column only
// gets a field that is a high-confidence match among the fields still free.
// The result is ordered by column index.
func Suggest(header, fields []string, minScore, minGap float64) []Suggestion {
	type pair struct {
		index int
		cand  Candidate
	}

	var pairs []pair

	for i, h := range header {
		for _, c := range Rank(h, fields) {
			if c.Score >= minScore {
				pairs = append(pairs, pair{index: i, cand: c})
			}
		}
	}

	slices.SortStableFunc(pairs, func(a, b pair) int {
		return cmp.Compare(b.cand.Score, a.cand.Score)
	})

	takenField := map[string]bool{}
	takenColumn := map[int]bool{}

	var out []Suggestion

	for _, p := range pairs {
		if takenColumn[p.index] || takenField[p.cand.Field] {
			continue
		}

		if !confident(header[p.index], fields, takenField, p.cand, minGap) {
			continue
		}

		takenColumn[p.index] = true
		takenField[p.cand.Field] = true

		out = append(out, Suggestion{
			Index:  p.index,
			Header: header[p.index],
			Field:  p.cand.Field,
			Score:  p.cand.Score,
		})
	}

	slices.SortFunc(out, func(a, b Suggestion) int { return a.Index - b.Index })

	return out
}

// confident checks that no other free field scores within minGap of c.
func confident(header string, fields []string, taken map[string]bool, c Candidate, minGap float64) bool {
	for _, other := range Rank(header, fields) {
		if other.Field == c.Field || taken[other.Field] {
			continue
		}

		return c.Score-other.Score >= minGap
	}

	return true
}
