// Package cpmnorm normalizes raw gene counts by library size: counts per
// million, log2 CPM, and the fixed low-expression filter applied before
// differential testing.
package cpmnorm

import (
	"fmt"
	"math"

	"github.com/carbocation/pfx"
	"gonum.org/v1/gonum/floats"
	"gopkg.in/guregu/null.v3"

	"github.com/gexlab/dgex/exprmatrix"
)

// CountSet pairs a complete (no missing cells) raw count matrix with the
// per-sample library sizes and normalization factors derived from it.
type CountSet struct {
	Matrix      exprmatrix.Matrix
	counts      [][]float64
	LibSizes    []float64
	NormFactors []float64
}

// NewCountSet computes library sizes (column sums) for a complete count
// matrix. Normalization factors start at 1; CPM divides by libsize * factor.
func NewCountSet(m exprmatrix.Matrix) (*CountSet, error) {
	counts, err := m.Dense()
	if err != nil {
		return nil, err
	}

	out := &CountSet{
		Matrix:      m,
		counts:      counts,
		LibSizes:    make([]float64, m.NSamples()),
		NormFactors: make([]float64, m.NSamples()),
	}

	for j := range out.LibSizes {
		out.NormFactors[j] = 1
		for i := range counts {
			out.LibSizes[j] += counts[i][j]
		}

		if out.LibSizes[j] <= 0 {
			return nil, pfx.Err(fmt.Errorf("sample %s has a zero library size", m.Samples[j]))
		}
	}

	return out, nil
}

// CPM returns the counts-per-million value for one cell.
func (cs *CountSet) CPM(i, j int) float64 {
	return cs.counts[i][j] / (cs.LibSizes[j] * cs.NormFactors[j]) * 1e6
}

// UpperQuartileNormalize sets each sample's normalization factor from its
// upper-quartile count over nonzero genes, rescaled so the factors multiply
// to 1. This keeps library-size correction robust to a handful of extremely
// highly expressed genes dominating the column sum.
func (cs *CountSet) UpperQuartileNormalize() {
	uq := make([]float64, len(cs.LibSizes))

	for j := range cs.LibSizes {
		nonzero := make([]float64, 0, len(cs.counts))
		for i := range cs.counts {
			if cs.counts[i][j] > 0 {
				nonzero = append(nonzero, cs.counts[i][j]/cs.LibSizes[j])
			}
		}

		if len(nonzero) == 0 {
			uq[j] = 1
			continue
		}

		uq[j] = quantile(nonzero, 0.75)
	}

	// Rescale so the factors are centered on 1
	logSum := 0.0
	for _, v := range uq {
		logSum += math.Log(v)
	}
	center := math.Exp(logSum / float64(len(uq)))

	for j := range uq {
		cs.NormFactors[j] = uq[j] / center
	}
}

func quantile(xs []float64, q float64) float64 {
	sorted := append([]float64{}, xs...)
	floats.Argsort(sorted, make([]int, len(sorted)))

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)

	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// FilterLowExpression drops genes with fewer than minSamples samples at or
// above minCPM, returning a new CountSet over the kept rows.
func (cs *CountSet) FilterLowExpression(minCPM float64, minSamples int) (*CountSet, int, error) {
	kept := make([]exprmatrix.Row, 0, len(cs.Matrix.Rows))

	for i, r := range cs.Matrix.Rows {
		over := 0
		for j := range cs.Matrix.Samples {
			if cs.CPM(i, j) >= minCPM {
				over++
			}
		}

		if over >= minSamples {
			kept = append(kept, r)
		}
	}

	dropped := len(cs.Matrix.Rows) - len(kept)

	filtered, err := NewCountSet(exprmatrix.Matrix{Samples: cs.Matrix.Samples, Rows: kept})
	if err != nil {
		return nil, 0, err
	}
	filtered.NormFactors = cs.NormFactors

	return filtered, dropped, nil
}

// LogCPMMatrix returns a matrix of log2(CPM + prior) values, one row per
// kept gene, suitable for export and downstream testing.
func (cs *CountSet) LogCPMMatrix(prior float64) exprmatrix.Matrix {
	rows := make([]exprmatrix.Row, 0, len(cs.Matrix.Rows))

	for i, r := range cs.Matrix.Rows {
		vals := make([]null.Float, 0, len(cs.Matrix.Samples))
		for j := range cs.Matrix.Samples {
			vals = append(vals, null.FloatFrom(math.Log2(cs.CPM(i, j)+prior)))
		}

		rows = append(rows, exprmatrix.Row{Symbol: r.Symbol, Values: vals})
	}

	return exprmatrix.Matrix{Samples: cs.Matrix.Samples, Rows: rows}
}
