// Package exprmatrix defines the gene-by-sample expression matrix shared by
// the preprocessing and differential-expression tools, along with its flat
// TSV serialization.
package exprmatrix

import (
	"fmt"

	"github.com/carbocation/pfx"
	"gopkg.in/guregu/null.v3"
)

// Row is one gene: a symbol key plus one value per sample column. Values may
// be missing (invalid) until the matrix has been through missing-value
// filtering.
type Row struct {
	Symbol string
	Values []null.Float
}

// Matrix is a gene-by-sample expression matrix. The sample columns are fixed
// at construction; rows may be filtered but never reshaped.
type Matrix struct {
	Samples []string
	Rows    []Row
}

// New builds a matrix, rejecting any row whose width differs from the sample
// count.
func New(samples []string, rows []Row) (Matrix, error) {
	for _, r := range rows {
		if len(r.Values) != len(samples) {
			return Matrix{}, pfx.Err(fmt.Errorf("row %q has %d values for %d samples", r.Symbol, len(r.Values), len(samples)))
		}
	}

	return Matrix{Samples: samples, Rows: rows}, nil
}

// NSamples is the number of sample columns.
func (m Matrix) NSamples() int {
	return len(m.Samples)
}

// DedupeSymbols keeps the first row seen for each symbol, so that symbols can
// serve as unique row keys downstream. It returns the deduplicated matrix and
// the number of rows dropped.
func (m Matrix) DedupeSymbols() (Matrix, int) {
	seen := make(map[string]struct{}, len(m.Rows))
	kept := make([]Row, 0, len(m.Rows))

	for _, r := range m.Rows {
		if _, exists := seen[r.Symbol]; exists {
			continue
		}
		seen[r.Symbol] = struct{}{}
		kept = append(kept, r)
	}

	return Matrix{Samples: m.Samples, Rows: kept}, len(m.Rows) - len(kept)
}

// DropMissing removes rows containing any missing value, returning the
// filtered matrix and the number of rows dropped.
func (m Matrix) DropMissing() (Matrix, int) {
	kept := make([]Row, 0, len(m.Rows))

	for _, r := range m.Rows {
		complete := true
		for _, v := range r.Values {
			if !v.Valid {
				complete = false
				break
			}
		}
		if complete {
			kept = append(kept, r)
		}
	}

	return Matrix{Samples: m.Samples, Rows: kept}, len(m.Rows) - len(kept)
}

// Dense returns the matrix values as float64 slices. It must only be called
// after missing values have been filtered out.
func (m Matrix) Dense() ([][]float64, error) {
	out := make([][]float64, 0, len(m.Rows))

	for _, r := range m.Rows {
		vals := make([]float64, 0, len(r.Values))
		for _, v := range r.Values {
			if !v.Valid {
				return nil, pfx.Err(fmt.Errorf("row %q still contains missing values", r.Symbol))
			}
			vals = append(vals, v.Float64)
		}
		out = append(out, vals)
	}

	return out, nil
}

// Column returns the valid values of one sample column.
func (m Matrix) Column(j int) []float64 {
	out := make([]float64, 0, len(m.Rows))
	for _, r := range m.Rows {
		if r.Values[j].Valid {
			out = append(out, r.Values[j].Float64)
		}
	}

	return out
}
