package geotable

import (
	"errors"
	"testing"
)

func tinySchema() Schema {
	return Schema{
		CasePrefix:    "AD",
		ControlPrefix: "NC",
		NCase:         2,
		NControl:      2,
		Trailing:      []string{"Symbol"},
	}
}

func TestColumnNames(t *testing.T) {
	got := tinySchema().ColumnNames()
	want := []string{"GeneID", "AD_01", "AD_02", "NC_01", "NC_02", "Symbol"}

	if len(got) != len(want) {
		t.Fatalf("expected %d columns, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("column %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestNormalizeDropsHeaderArtifacts(t *testing.T) {
	raw := [][]string{
		{"Supplementary table 1", "", "", "", "", ""},
		{"gene", "sample1", "sample2", "sample3", "sample4", "symbol"},
		{"ENSG01", "10", "11", "3", "4", "GFAP"},
		{"ENSG02", "0", "1", "2", "3", "APOE"},
	}

	table, err := tinySchema().Normalize(raw)
	if err != nil {
		t.Fatal(err)
	}

	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 data rows, got %d", len(table.Rows))
	}
	if table.Rows[0][0] != "ENSG01" {
		t.Fatalf("expected first data row to be ENSG01, got %q", table.Rows[0][0])
	}
	if idx := table.ColumnIndex("Symbol"); idx != 5 {
		t.Fatalf("expected Symbol at column 5, got %d", idx)
	}
}

func TestNormalizeRejectsWrongWidth(t *testing.T) {
	raw := [][]string{
		{"gene", "s1", "s2", "s3", "s4", "symbol"},
		{"ENSG01", "10", "11", "3", "4"}, // one column short
	}

	_, err := tinySchema().Normalize(raw)

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected a SchemaError, got %v", err)
	}
	if schemaErr.Want != 6 || schemaErr.Got != 5 {
		t.Fatalf("unexpected mismatch report: %+v", schemaErr)
	}
}

func TestNormalizeGivesUpOnJunkFiles(t *testing.T) {
	raw := make([][]string, 0, 12)
	for i := 0; i < 12; i++ {
		raw = append(raw, []string{"prose", "prose", "prose", "prose", "prose", "prose"})
	}

	if _, err := tinySchema().Normalize(raw); err == nil {
		t.Fatal("expected an error for a file with no data rows")
	}
}
