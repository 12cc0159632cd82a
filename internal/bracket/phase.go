package bracket

import (
	"sort"
	"strings"
)

// UnknownPhaseRank is assigned to phase keys missing from the table so they sort last.
const UnknownPhaseRank = 99

// phaseRanks maps every spelling seen in backend payloads, including the
// misspelled ones, to its position in the elimination progression.
var phaseRanks = map[string]int{
	"dieciseisavos":          0,
	"dieciseisavos de final": 0,
	"diesiseisavos":          0,
	"16avos":                 0,
	"round of 32":            0,

	"octavos":          1,
	"octavos de final": 1,
	"octavo":           1,
	"octavos final":    1,
	"ocatvos":          1,
	"octavos de finla": 1,
	"round of 16":      1,
	"eighth-finals":    1,
	"eighthfinals":     1,
	"8vos":             1,

	"cuartos":          2,
	"cuartos de final": 2,
	"cuarto":           2,
	"cuartos final":    2,
	"cuatros":          2,
	"cuartos de finla": 2,
	"quarterfinal":     2,
	"quarterfinals":    2,
	"quarter-finals":   2,
	"quarter finals":   2,
	"4tos":             2,

	"semifinal":     3,
	"semifinales":   3,
	"semi final":    3,
	"semi-final":    3,
	"semi finales":  3,
	"semifinals":    3,
	"semis":         3,
	"semifnal":      3,
	"semifianl":     3,
	"semi-finales":  3,

	"final":      4,
	"finales":    4,
	"gran final": 4,
	"finla":      4,
	"the final":  4,
}

func normalizePhaseKey(key string) string {
	k := strings.ToLower(strings.TrimSpace(key))
	k = strings.ReplaceAll(k, "_", " ")
	return strings.Join(strings.Fields(k), " ")
}

// PhaseRank returns the canonical rank of a phase key and whether the key is known.
func PhaseRank(key string) (int, bool) {
	r, ok := phaseRanks[normalizePhaseKey(key)]
	if !ok {
		return UnknownPhaseRank, false
	}
	return r, true
}

// OrderPhases sorts phase keys ascending by rank. Ties, including all unknown
// keys, keep their encounter order.
func OrderPhases(keys []string) []string {
	ordered := append([]string(nil), keys...)
	sort.SliceStable(ordered, func(i, j int) bool {
		ri, _ := PhaseRank(ordered[i])
		rj, _ := PhaseRank(ordered[j])
		return ri < rj
	})
	return ordered
}
