package cpmnorm

import (
	"math"
	"testing"

	"gopkg.in/guregu/null.v3"

	"github.com/gexlab/dgex/exprmatrix"
)

func countMatrix(samples []string, symbols []string, counts [][]float64) exprmatrix.Matrix {
	rows := make([]exprmatrix.Row, 0, len(symbols))
	for i, s := range symbols {
		r := exprmatrix.Row{Symbol: s}
		for _, v := range counts[i] {
			r.Values = append(r.Values, null.FloatFrom(v))
		}
		rows = append(rows, r)
	}

	return exprmatrix.Matrix{Samples: samples, Rows: rows}
}

func TestCPM(t *testing.T) {
	m := countMatrix(
		[]string{"s1", "s2"},
		[]string{"A", "B", "C"},
		[][]float64{
			{100, 50},
			{300, 150},
			{600, 300},
		},
	)

	cs, err := NewCountSet(m)
	if err != nil {
		t.Fatal(err)
	}

	if cs.LibSizes[0] != 1000 || cs.LibSizes[1] != 500 {
		t.Fatalf("unexpected library sizes: %v", cs.LibSizes)
	}

	// CPM is scale-free: both samples have identical proportions
	for i := range m.Rows {
		if got, want := cs.CPM(i, 0), cs.CPM(i, 1); math.Abs(got-want) > 1e-9 {
			t.Fatalf("row %d: CPM should match across proportional samples: %v vs %v", i, got, want)
		}
	}

	if got := cs.CPM(0, 0); math.Abs(got-1e5) > 1e-9 {
		t.Fatalf("expected 100/1000 to be 1e5 CPM, got %v", got)
	}

	// Per-sample CPM totals must sum to one million
	for j := range m.Samples {
		total := 0.0
		for i := range m.Rows {
			total += cs.CPM(i, j)
		}
		if math.Abs(total-1e6) > 1e-6 {
			t.Fatalf("sample %d: CPM total %v != 1e6", j, total)
		}
	}
}

func TestFilterLowExpression(t *testing.T) {
	m := countMatrix(
		[]string{"s1", "s2", "s3", "s4"},
		[]string{"HIGH", "PATCHY", "LOW"},
		[][]float64{
			{500, 500, 500, 500},
			{500, 0, 500, 0},
			{0, 0, 0, 1},
		},
	)

	cs, err := NewCountSet(m)
	if err != nil {
		t.Fatal(err)
	}

	// Require >= 1000 CPM in at least 3 of 4 samples
	filtered, dropped, err := cs.FilterLowExpression(1000, 3)
	if err != nil {
		t.Fatal(err)
	}

	if dropped != 2 {
		t.Fatalf("expected 2 dropped genes, got %d", dropped)
	}
	if len(filtered.Matrix.Rows) != 1 || filtered.Matrix.Rows[0].Symbol != "HIGH" {
		t.Fatalf("expected only HIGH to survive, got %+v", filtered.Matrix.Rows)
	}
}

func TestUpperQuartileNormalizeFactorsCenterOnOne(t *testing.T) {
	m := countMatrix(
		[]string{"s1", "s2", "s3"},
		[]string{"A", "B", "C", "D"},
		[][]float64{
			{10, 100, 50},
			{20, 200, 100},
			{30, 300, 150},
			{40, 400, 200},
		},
	)

	cs, err := NewCountSet(m)
	if err != nil {
		t.Fatal(err)
	}
	cs.UpperQuartileNormalize()

	product := 1.0
	for _, f := range cs.NormFactors {
		if f <= 0 {
			t.Fatalf("normalization factor must be positive, got %v", f)
		}
		product *= f
	}

	if math.Abs(product-1) > 1e-9 {
		t.Fatalf("normalization factors should multiply to 1, got product %v", product)
	}
}

func TestLogCPMMatrix(t *testing.T) {
	m := countMatrix([]string{"s1"}, []string{"A"}, [][]float64{{1000}})

	cs, err := NewCountSet(m)
	if err != nil {
		t.Fatal(err)
	}

	logCPM := cs.LogCPMMatrix(0.5)

	// 1000/1000 * 1e6 = 1e6 CPM; log2(1e6 + 0.5)
	want := math.Log2(1e6 + 0.5)
	if got := logCPM.Rows[0].Values[0].Float64; math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
