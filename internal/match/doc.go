// Package match suggests column bindings from the header line of a table.
//
// Header cells and field names are normalized (case folded, separators and
// CamelCase boundaries removed) and compared by edit distance. Each header
// cell is assigned the best scoring field not taken by a better match.
//
// Key functions:
//   - Normalize: normalizes a header cell or identifier for fuzzy matching
//   - Distance: computes the edit distance between strings, in runes
//   - Rank: ranks the fields a header cell may bind to
//   - Suggest: assigns fields to a whole header
package match
