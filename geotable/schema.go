package geotable

import (
	"fmt"
	"strconv"
	"strings"
)

// Schema describes the positional column layout of a supplementary counts
// table: one gene identifier column, the per-sample count columns (cases
// first, then controls), then trailing summary, location, and annotation
// columns. Columns carry meaning by position only, so the raw header names
// are discarded during normalization.
type Schema struct {
	CasePrefix    string
	ControlPrefix string
	NCase         int
	NControl      int
	Trailing      []string
}

// DefaultSchema matches the GSE173955 supplementary layout: 9 disease and 9
// control hippocampus samples followed by group means, gene location, and
// annotation.
func DefaultSchema() Schema {
	return Schema{
		CasePrefix:    "AD",
		ControlPrefix: "NC",
		NCase:         9,
		NControl:      9,
		Trailing: []string{
			"MeanCase", "MeanControl",
			"Chromosome", "Start", "End", "Strand",
			"Symbol", "Description",
		},
	}
}

// SchemaError reports a mismatch between the expected and observed column
// counts. Proceeding past this would silently misassign every column label.
type SchemaError struct {
	Want int
	Got  int
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema mismatch: expected %d columns but the input has %d", e.Want, e.Got)
}

// NSamples is the number of per-sample count columns.
func (s Schema) NSamples() int {
	return s.NCase + s.NControl
}

// SampleNames lists the semantic per-sample column names in order, cases
// first.
func (s Schema) SampleNames() []string {
	out := make([]string, 0, s.NSamples())
	for i := 0; i < s.NCase; i++ {
		out = append(out, fmt.Sprintf("%s_%02d", s.CasePrefix, i+1))
	}
	for i := 0; i < s.NControl; i++ {
		out = append(out, fmt.Sprintf("%s_%02d", s.ControlPrefix, i+1))
	}

	return out
}

// ColumnNames lists every semantic column name in order.
func (s Schema) ColumnNames() []string {
	out := make([]string, 0, 1+s.NSamples()+len(s.Trailing))
	out = append(out, "GeneID")
	out = append(out, s.SampleNames()...)
	out = append(out, s.Trailing...)

	return out
}

// Table is a normalized view of the raw sheet: semantic column names plus
// data rows only.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of a semantic column name, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}

	return -1
}

// Normalize renames the raw columns to the schema's semantic names and drops
// leading header-artifact rows (the original header, repeated headers, and
// merged-title rows). The raw column count must match the schema exactly;
// anything else is a hard error rather than a silent mislabeling.
func (s Schema) Normalize(raw [][]string) (Table, error) {
	want := len(s.ColumnNames())

	out := Table{Columns: s.ColumnNames()}

	dropped := 0
	for _, row := range raw {
		// Artifact rows (titles, repeated headers) are often ragged, so they
		// are identified and dropped before the width check.
		if !s.looksLikeData(row) {
			dropped++
			if dropped > maxHeaderArtifactRows {
				return Table{}, fmt.Errorf("gave up after %d consecutive non-data rows; wrong file?", dropped)
			}
			continue
		}

		if len(row) != want {
			return Table{}, &SchemaError{Want: want, Got: len(row)}
		}

		dropped = 0
		out.Rows = append(out.Rows, row)
	}

	return out, nil
}

// A sheet prefixed by more junk than this is assumed to be the wrong file
// entirely.
const maxHeaderArtifactRows = 10

// looksLikeData reports whether at least one of the row's sample-count cells
// parses as a number. Header rows name the samples instead.
func (s Schema) looksLikeData(row []string) bool {
	for i := 1; i <= s.NSamples(); i++ {
		if i >= len(row) {
			return false
		}

		if _, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64); err == nil {
			return true
		}
	}

	return false
}
