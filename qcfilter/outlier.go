// Package qcfilter flags sample-level measurement artifacts in an expression
// matrix. Statistics are computed per sample column, not per gene: the goal
// is to catch a sample whose measurement of one gene went wrong, not genes
// that are biologically extreme.
package qcfilter

import (
	"log"
	"math"

	"github.com/carbocation/runningvariance"

	"github.com/gexlab/dgex/exprmatrix"
)

// A column whose standard deviation falls below this is treated as constant:
// a near-zero sigma band would flag essentially every differing value, which
// is a degenerate artifact of the rule rather than a data problem.
const minStdDev = 1e-12

// ColumnStats holds the per-column mean and standard deviation used for
// flagging, computed over valid cells only.
type ColumnStats struct {
	Sample string
	N      int
	Mean   float64
	SD     float64
}

// Stats computes mean and standard deviation for every sample column,
// ignoring missing cells.
func Stats(m exprmatrix.Matrix) []ColumnStats {
	out := make([]ColumnStats, 0, m.NSamples())

	for j, sample := range m.Samples {
		rs := runningvariance.NewRunningStat()
		for _, r := range m.Rows {
			if r.Values[j].Valid {
				rs.Push(r.Values[j].Float64)
			}
		}

		out = append(out, ColumnStats{
			Sample: sample,
			N:      int(rs.N),
			Mean:   rs.Mean(),
			SD:     rs.StandardDeviation(),
		})
	}

	return out
}

// FlagOutliers marks, for every cell, whether it lies outside
// mean ± sdMultiplier·SD of its own column. The result has one row of flags
// per matrix row. Missing cells are never flagged. Columns with effectively
// zero variance flag nothing.
func FlagOutliers(m exprmatrix.Matrix, sdMultiplier float64) [][]bool {
	colStats := Stats(m)

	flags := make([][]bool, len(m.Rows))
	for i := range flags {
		flags[i] = make([]bool, m.NSamples())
	}

	for j, cs := range colStats {
		if cs.SD < minStdDev || math.IsNaN(cs.SD) {
			continue
		}

		lo := cs.Mean - sdMultiplier*cs.SD
		hi := cs.Mean + sdMultiplier*cs.SD

		for i, r := range m.Rows {
			if !r.Values[j].Valid {
				continue
			}
			if v := r.Values[j].Float64; v < lo || v > hi {
				flags[i][j] = true
			}
		}
	}

	return flags
}

// RemoveOutlierRows drops every gene row that has at least one outlier cell
// in any column, returning the filtered matrix and the number of rows
// removed.
func RemoveOutlierRows(m exprmatrix.Matrix, sdMultiplier float64) (exprmatrix.Matrix, int) {
	flags := FlagOutliers(m, sdMultiplier)

	kept := make([]exprmatrix.Row, 0, len(m.Rows))
	for i, r := range m.Rows {
		flagged := false
		for _, f := range flags[i] {
			if f {
				flagged = true
				break
			}
		}
		if !flagged {
			kept = append(kept, r)
		}
	}

	removed := len(m.Rows) - len(kept)
	log.Println("Flagged and removed", removed, "rows beyond", sdMultiplier, "standard deviations above or below their column means")

	return exprmatrix.Matrix{Samples: m.Samples, Rows: kept}, removed
}
