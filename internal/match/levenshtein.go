package match

// Distance returns the Levenshtein distance between a and b counted in runes.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	if len(ra) == 0 {
		return len(rb)
	}

	// single row over the shorter string
	row := make([]int, len(ra)+1)
	for i := range row {
		row[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		diag := row[0]
		row[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			next := min(row[i]+1, row[i-1]+1, diag+cost)
			diag = row[i]
			row[i] = next
		}
	}

	return row[len(ra)]
}

// Similarity scores a and b between 0 (nothing alike) and 1 (equal after
// normalization).
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)

	longest := max(len([]rune(na)), len([]rune(nb)))
	if longest == 0 {
		return 1
	}

	return 1 - float64(Distance(na, nb))/float64(longest)
}
