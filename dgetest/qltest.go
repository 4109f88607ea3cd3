package dgetest

import (
	"fmt"
	"sort"

	"github.com/carbocation/pfx"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/gexlab/dgex/exprmatrix"
)

// Variance floor for genes whose within-group spread is numerically zero.
// Without it the F statistic divides by zero.
const minPooledVariance = 1e-12

// Result is the differential expression outcome for one gene.
type Result struct {
	Symbol string  `csv:"symbol"`
	Log2FC float64 `csv:"log2_fold_change"`
	PValue float64 `csv:"p_value"`
	AdjP   float64 `csv:"adjusted_p_value"`
}

// QLTest compares case vs control expression for every gene of a normalized
// (log2 CPM) matrix. Each gene gets a quasi-likelihood-style F test: group
// means from a two-group linear model, pooled residual variance as the
// quasi-dispersion, and a p-value from the F(1, n-2) distribution. Results
// are BH-corrected and returned sorted ascending by raw p-value.
func QLTest(m exprmatrix.Matrix, isCase []bool) ([]Result, error) {
	if len(isCase) != m.NSamples() {
		return nil, pfx.Err(fmt.Errorf("got %d group labels for %d sample columns", len(isCase), m.NSamples()))
	}

	n1, n2 := 0, 0
	for _, c := range isCase {
		if c {
			n1++
		} else {
			n2++
		}
	}
	if n1 < 2 || n2 < 2 {
		return nil, pfx.Err(fmt.Errorf("each group needs at least 2 samples (got %d vs %d)", n1, n2))
	}

	fdist := distuv.F{D1: 1, D2: float64(n1 + n2 - 2)}

	out := make([]Result, 0, len(m.Rows))

	for _, r := range m.Rows {
		caseVals := make([]float64, 0, n1)
		ctrlVals := make([]float64, 0, n2)

		for j, v := range r.Values {
			if !v.Valid {
				return nil, pfx.Err(fmt.Errorf("gene %q has a missing value; run preprocessing first", r.Symbol))
			}
			if isCase[j] {
				caseVals = append(caseVals, v.Float64)
			} else {
				ctrlVals = append(ctrlVals, v.Float64)
			}
		}

		mean1, var1 := stat.MeanVariance(caseVals, nil)
		mean2, var2 := stat.MeanVariance(ctrlVals, nil)

		// Pooled quasi-dispersion over both groups
		s2 := (var1*float64(n1-1) + var2*float64(n2-1)) / float64(n1+n2-2)
		if s2 < minPooledVariance {
			s2 = minPooledVariance
		}

		diff := mean1 - mean2
		f := diff * diff / (s2 * (1/float64(n1) + 1/float64(n2)))

		out = append(out, Result{
			Symbol: r.Symbol,
			Log2FC: diff,
			PValue: fdist.Survival(f),
		})
	}

	applyBH(out)

	// Ascending raw p for presentation; ties broken by effect size so the
	// ordering is deterministic.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PValue != out[j].PValue {
			return out[i].PValue < out[j].PValue
		}

		return abs(out[i].Log2FC) > abs(out[j].Log2FC)
	})

	return out, nil
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}

	return x
}
