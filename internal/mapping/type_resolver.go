package mapping

import (
	"cmp"
	"slices"

	"record-loader/internal/analyze"
)

// ResolveTypeID finds the type a mapping identifier names. Accepted forms:
//   - "record-loader/examples/monsters.Monster" (full)
//   - "monsters.Monster" (package path suffix)
//   - "Monster" (name only)
//
// When a short form matches several types the one with the smallest full
// identifier wins, so results do not depend on map order.
func ResolveTypeID(ref string, graph *analyze.TypeGraph) *analyze.TypeInfo {
	if graph == nil || ref == "" {
		return nil
	}

	if pkg, name := splitTypeID(ref); pkg != "" {
		if t := graph.GetType(analyze.TypeID{PkgPath: pkg, Name: name}); t != nil {
			return t
		}
	}

	var matches []analyze.TypeID

	for id := range graph.Types {
		if typeIDMatches(ref, id.String()) {
			matches = append(matches, id)
		}
	}

	if len(matches) == 0 {
		return nil
	}

	best := slices.MinFunc(matches, func(a, b analyze.TypeID) int {
		return cmp.Compare(a.String(), b.String())
	})

	return graph.GetType(best)
}
