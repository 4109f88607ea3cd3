package enrich

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func genes(prefix string, n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, fmt.Sprintf("%s%03d", prefix, i))
	}

	return out
}

func toSet(gs []string) map[string]struct{} {
	out := make(map[string]struct{}, len(gs))
	for _, g := range gs {
		out[g] = struct{}{}
	}

	return out
}

func TestOverRepresentation(t *testing.T) {
	universe := genes("G", 100)

	// The query is 10 genes; ENRICHED shares 8 of them, RANDOM only 1.
	query := universe[:10]

	terms := []TermSet{
		{Term: "ENRICHED", Description: "strong overlap", Genes: toSet(universe[2:12])},
		{Term: "RANDOM", Description: "background overlap", Genes: toSet(universe[9:29])},
		{Term: "TINY", Description: "below the size floor", Genes: toSet(universe[:2])},
		{Term: "FOREIGN", Description: "not in universe", Genes: toSet(genes("X", 10))},
	}

	results := OverRepresentation(query, universe, terms, 0.05)

	if len(results) != 1 {
		t.Fatalf("expected only ENRICHED to pass, got %+v", results)
	}

	r := results[0]
	if r.Term != "ENRICHED" {
		t.Fatalf("expected ENRICHED first, got %q", r.Term)
	}
	if r.Overlap != 8 || r.TermSize != 10 {
		t.Fatalf("expected overlap 8 of term size 10, got %d of %d", r.Overlap, r.TermSize)
	}
	if r.PValue >= 1e-4 {
		t.Fatalf("expected a very small p-value for an 8/10 overlap in a universe of 100, got %v", r.PValue)
	}
	if r.AdjP < r.PValue {
		t.Fatalf("adjusted p %v fell below raw p %v", r.AdjP, r.PValue)
	}
}

func TestOverRepresentationRespectsCutoff(t *testing.T) {
	universe := genes("G", 100)
	query := universe[:10]

	terms := []TermSet{
		{Term: "WEAK", Description: "", Genes: toSet(universe[8:28])},
	}

	strict := OverRepresentation(query, universe, terms, 1e-9)
	if len(strict) != 0 {
		t.Fatalf("expected no terms at an extreme cutoff, got %+v", strict)
	}

	// Relaxing the cutoff is an operator decision; at 1.0 anything with
	// overlap passes.
	relaxed := OverRepresentation(query, universe, terms, 1.0)
	if len(relaxed) != 1 {
		t.Fatalf("expected WEAK to pass at cutoff 1.0, got %+v", relaxed)
	}
}

func TestReadGMT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sets.gmt")
	content := "GO:0001\tsynapse assembly\tGFAP\tAPOE\tSNAP25\n" +
		"# comment line\n" +
		"short_line\tonly_description\n" +
		"GO:0002\tgliogenesis\tGFAP\tAQP4\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	terms, err := ReadGMT(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(terms) != 2 {
		t.Fatalf("expected 2 terms, got %d", len(terms))
	}
	if terms[0].Term != "GO:0001" || len(terms[0].Genes) != 3 {
		t.Fatalf("unexpected first term: %+v", terms[0])
	}
	if _, exists := terms[1].Genes["AQP4"]; !exists {
		t.Fatalf("expected AQP4 in GO:0002, got %+v", terms[1].Genes)
	}
}
