package geotable

import (
	"log"
	"strconv"
	"strings"

	"gopkg.in/guregu/null.v3"
)

// CountRow is one gene's worth of coerced data: identifiers plus the
// per-sample counts in schema order. Counts that failed to parse are invalid
// (missing) rather than zero.
type CountRow struct {
	GeneID string
	Symbol string
	Counts []null.Float
}

// CoerceCounts converts the textual sample cells of a normalized table to
// numeric counts. Unparseable cells become missing values; they are tallied
// and logged but do not abort the run, since scattered junk cells are routine
// in supplementary spreadsheets.
func CoerceCounts(t Table, s Schema) []CountRow {
	symbolIdx := t.ColumnIndex("Symbol")

	out := make([]CountRow, 0, len(t.Rows))
	badCells := 0

	for _, row := range t.Rows {
		cr := CountRow{
			GeneID: strings.TrimSpace(row[0]),
			Counts: make([]null.Float, 0, s.NSamples()),
		}

		if symbolIdx >= 0 {
			cr.Symbol = strings.TrimSpace(row[symbolIdx])
		}
		if cr.Symbol == "" {
			cr.Symbol = cr.GeneID
		}

		for i := 1; i <= s.NSamples(); i++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
			if err != nil {
				badCells++
				cr.Counts = append(cr.Counts, null.NewFloat(0, false))
				continue
			}

			cr.Counts = append(cr.Counts, null.FloatFrom(v))
		}

		out = append(out, cr)
	}

	if badCells > 0 {
		log.Println(badCells, "cells could not be parsed as numbers and were treated as missing")
	}

	return out
}
