package dgetest

// GeneSets holds the up- and down-regulated gene symbols selected from a
// result set. The two sets are disjoint: membership requires passing the
// adjusted-p cutoff, and the fold-change sign decides the side. Genes with a
// fold change of exactly zero belong to neither.
type GeneSets struct {
	Up   []string
	Down []string
}

// Partition splits results into up- and down-regulated sets at an adjusted
// p-value cutoff.
func Partition(results []Result, pCutoff float64) GeneSets {
	var out GeneSets

	for _, r := range results {
		if r.AdjP >= pCutoff {
			continue
		}

		switch {
		case r.Log2FC > 0:
			out.Up = append(out.Up, r.Symbol)
		case r.Log2FC < 0:
			out.Down = append(out.Down, r.Symbol)
		}
	}

	return out
}

// Universe lists every tested gene symbol, the background for enrichment
// testing.
func Universe(results []Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Symbol)
	}

	return out
}
