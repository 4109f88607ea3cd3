package geotable

import "testing"

func TestCoerceCounts(t *testing.T) {
	schema := tinySchema()

	table := Table{
		Columns: schema.ColumnNames(),
		Rows: [][]string{
			{"ENSG01", "10", "11.5", "3", "4", "GFAP"},
			{"ENSG02", "0", "n.d.", "2", " 3 ", "APOE"},
			{"ENSG03", "1", "2", "3", "4", ""},
		},
	}

	rows := CoerceCounts(table, schema)

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	if rows[0].Symbol != "GFAP" {
		t.Fatalf("expected symbol GFAP, got %q", rows[0].Symbol)
	}
	if v := rows[0].Counts[1]; !v.Valid || v.Float64 != 11.5 {
		t.Fatalf("expected 11.5, got %+v", v)
	}

	// Unparseable cell becomes missing, not zero and not an error
	if v := rows[1].Counts[1]; v.Valid {
		t.Fatalf("expected missing value for n.d., got %+v", v)
	}
	// Whitespace-padded numbers still parse
	if v := rows[1].Counts[3]; !v.Valid || v.Float64 != 3 {
		t.Fatalf("expected 3, got %+v", v)
	}

	// Missing symbol falls back to the gene ID
	if rows[2].Symbol != "ENSG03" {
		t.Fatalf("expected fallback to gene ID, got %q", rows[2].Symbol)
	}
}
