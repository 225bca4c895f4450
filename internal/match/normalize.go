package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// Normalize folds s into a comparable key.
// Examples:
//   - "HitPoints", "hit_points" and "Hit Points" -> "hitpoints"
//   - "Base.ID" -> "baseid"
func Normalize(s string) string {
	return strings.Join(Tokens(s), "")
}

// Tokens splits a header cell or identifier into case-folded words.
// Examples:
//   - "RespawnTime" -> ["respawn", "time"]
//   - "max-HP" -> ["max", "hp"]
//   - "XMLName" -> ["xml", "name"]
func Tokens(s string) []string {
	var (
		tokens  []string
		current []rune
	)

	flush := func() {
		if len(current) > 0 {
			tokens = append(tokens, folder.String(string(current)))
			current = current[:0]
		}
	}

	runes := []rune(strings.TrimSpace(s))
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsWord(runes, i) {
			flush()
		}

		current = append(current, r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
}

// startsWord reports a CamelCase boundary before runes[i]: a lower to upper
// transition, or the last capital of an acronym followed by a lower case rune.
func startsWord(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
