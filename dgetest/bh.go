package dgetest

import "sort"

// BenjaminiHochberg adjusts a full set of raw p-values for multiple testing,
// controlling the false discovery rate. The whole set must be corrected in
// one call; correcting subsets separately breaks the guarantee. The returned
// slice is aligned to the input order.
func BenjaminiHochberg(ps []float64) []float64 {
	n := len(ps)
	if n == 0 {
		return nil
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return ps[order[i]] < ps[order[j]] })

	adj := make([]float64, n)

	// Walk from the largest p downward, carrying the running minimum so the
	// adjusted values are monotone in rank order.
	runningMin := 1.0
	for rank := n; rank >= 1; rank-- {
		idx := order[rank-1]

		v := ps[idx] * float64(n) / float64(rank)
		if v > 1 {
			v = 1
		}
		if v < runningMin {
			runningMin = v
		}

		adj[idx] = runningMin
	}

	return adj
}

// applyBH fills the AdjP field across a full result set.
func applyBH(results []Result) {
	ps := make([]float64, len(results))
	for i, r := range results {
		ps[i] = r.PValue
	}

	for i, v := range BenjaminiHochberg(ps) {
		results[i].AdjP = v
	}
}
