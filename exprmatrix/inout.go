package exprmatrix

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/carbocation/pfx"
	"gopkg.in/guregu/null.v3"
)

// Write serializes the matrix as a tab-delimited table: a Symbol column
// followed by one column per sample. Values are formatted so that a
// subsequent Read reproduces them exactly. Missing values are written as
// "NA".
func (m Matrix) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	header := append([]string{"Symbol"}, m.Samples...)
	if err := cw.Write(header); err != nil {
		return pfx.Err(err)
	}

	for _, r := range m.Rows {
		rec := make([]string, 0, 1+len(r.Values))
		rec = append(rec, r.Symbol)
		for _, v := range r.Values {
			if !v.Valid {
				rec = append(rec, "NA")
				continue
			}
			rec = append(rec, strconv.FormatFloat(v.Float64, 'g', -1, 64))
		}

		if err := cw.Write(rec); err != nil {
			return pfx.Err(err)
		}
	}

	cw.Flush()

	return pfx.Err(cw.Error())
}

// WriteFile writes the matrix to a TSV file at path.
func (m Matrix) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	return m.Write(f)
}

// Read parses a matrix previously serialized with Write.
func Read(r io.Reader) (Matrix, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return Matrix{}, pfx.Err(err)
	}

	if len(records) < 1 {
		return Matrix{}, pfx.Err(fmt.Errorf("empty matrix table"))
	}

	header := records[0]
	if len(header) < 2 || header[0] != "Symbol" {
		return Matrix{}, pfx.Err(fmt.Errorf("unexpected matrix header: %v", header))
	}

	out := Matrix{Samples: header[1:]}

	for _, rec := range records[1:] {
		row := Row{Symbol: rec[0], Values: make([]null.Float, 0, len(rec)-1)}

		for _, cell := range rec[1:] {
			if cell == "NA" || cell == "" {
				row.Values = append(row.Values, null.NewFloat(0, false))
				continue
			}

			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return Matrix{}, pfx.Err(err)
			}
			row.Values = append(row.Values, null.FloatFrom(v))
		}

		out.Rows = append(out.Rows, row)
	}

	return out, nil
}

// ReadFile reads a matrix TSV from path.
func ReadFile(path string) (Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return Matrix{}, pfx.Err(err)
	}
	defer f.Close()

	return Read(f)
}
