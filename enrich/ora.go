package enrich

import (
	"sort"

	fet "github.com/glycerine/golang-fisher-exact"

	"github.com/gexlab/dgex/dgetest"
)

// Result is one enriched term: the right-tailed Fisher exact p-value of the
// overlap between the query gene set and the term's members, BH-adjusted
// across all tested terms.
type Result struct {
	Term        string
	Description string
	Overlap     int
	TermSize    int
	PValue      float64
	AdjP        float64
}

// Terms whose in-universe membership falls outside this range are skipped,
// matching the usual ORA practice of ignoring tiny and near-universal sets.
const (
	minTermSize = 3
	maxTermSize = 2000
)

// OverRepresentation tests a query gene set against every term, with the full
// tested-gene list as the background universe. Results are BH-corrected,
// filtered at the supplied adjusted-p cutoff, and ranked by p-value. The
// cutoff is an operator decision (e.g., relaxing 0.05 to 0.10 when few terms
// pass); nothing here adapts it automatically.
func OverRepresentation(querySet, universe []string, terms []TermSet, cutoff float64) []Result {
	uni := make(map[string]struct{}, len(universe))
	for _, g := range universe {
		uni[g] = struct{}{}
	}

	query := make(map[string]struct{}, len(querySet))
	for _, g := range querySet {
		if _, inUniverse := uni[g]; inUniverse {
			query[g] = struct{}{}
		}
	}

	n := len(query)
	bigN := len(uni)

	tested := make([]Result, 0, len(terms))

	for _, ts := range terms {
		overlap := 0
		termInUniverse := 0

		for g := range ts.Genes {
			if _, exists := uni[g]; !exists {
				continue
			}
			termInUniverse++
			if _, exists := query[g]; exists {
				overlap++
			}
		}

		if termInUniverse < minTermSize || termInUniverse > maxTermSize {
			continue
		}

		// 2x2 table: query membership vs term membership over the universe
		n11 := overlap
		n12 := n - overlap
		n21 := termInUniverse - overlap
		n22 := bigN - n - n21

		_, _, rightp, _ := fet.FisherExactTest(n11, n12, n21, n22)

		tested = append(tested, Result{
			Term:        ts.Term,
			Description: ts.Description,
			Overlap:     overlap,
			TermSize:    termInUniverse,
			PValue:      rightp,
		})
	}

	ps := make([]float64, len(tested))
	for i, r := range tested {
		ps[i] = r.PValue
	}
	for i, v := range dgetest.BenjaminiHochberg(ps) {
		tested[i].AdjP = v
	}

	out := make([]Result, 0, len(tested))
	for _, r := range tested {
		if r.AdjP < cutoff && r.Overlap > 0 {
			out = append(out, r)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].PValue != out[j].PValue {
			return out[i].PValue < out[j].PValue
		}

		return out[i].Term < out[j].Term
	})

	return out
}
