// Preprocess ingests a GEO supplementary counts spreadsheet (GSE173955
// layout), normalizes its columns, coerces counts to numeric, removes
// 3-sigma column outlier rows, CPM-normalizes, filters low-expression genes,
// and exports a gene x sample log2-CPM TSV for differential testing.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/gexlab/dgex"
	_ "github.com/gexlab/dgex/buildinfoprint"
	"github.com/gexlab/dgex/cpmnorm"
	"github.com/gexlab/dgex/exprmatrix"
	"github.com/gexlab/dgex/geotable"
	"github.com/gexlab/dgex/qcfilter"
)

func main() {
	var input, configPath, output string

	flag.StringVar(&input, "input", "", "Path or URL of the supplementary counts spreadsheet (.xlsx, .xls, or delimited text; .gz accepted).")
	flag.StringVar(&configPath, "config", "", "Optional JSON config file with analysis thresholds.")
	flag.StringVar(&output, "out", "normalized_counts.tsv", "Output TSV filename (written under the configured output directory).")
	flag.Parse()

	if input == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := dgex.ParseConfigFromPath(configPath)
	if err != nil {
		log.Fatalln(err)
	}

	raw, err := geotable.ReadSheet(input)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Read", len(raw), "raw rows from", input)

	schema := geotable.DefaultSchema()
	schema.NCase = cfg.NCase
	schema.NControl = cfg.NControl

	table, err := schema.Normalize(raw)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Normalized to", len(table.Rows), "data rows across", len(table.Columns), "columns")

	countRows := geotable.CoerceCounts(table, schema)

	rows := make([]exprmatrix.Row, 0, len(countRows))
	for _, cr := range countRows {
		rows = append(rows, exprmatrix.Row{Symbol: cr.Symbol, Values: cr.Counts})
	}

	matrix, err := exprmatrix.New(schema.SampleNames(), rows)
	if err != nil {
		log.Fatalln(err)
	}

	matrix, droppedMissing := matrix.DropMissing()
	if droppedMissing > 0 {
		log.Println("Dropped", droppedMissing, "rows with missing values")
	}

	matrix, _ = qcfilter.RemoveOutlierRows(matrix, cfg.SDMultiplier)

	summaries, err := qcfilter.Summarize(matrix)
	if err != nil {
		log.Fatalln(err)
	}
	qcfilter.PrintSummaries(os.Stdout, summaries)

	counts, err := cpmnorm.NewCountSet(matrix)
	if err != nil {
		log.Fatalln(err)
	}
	counts.UpperQuartileNormalize()

	counts, droppedLow, err := counts.FilterLowExpression(cfg.MinCPM, cfg.MinSamplesAtCPM)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Dropped", droppedLow, "low-expression genes (<", cfg.MinCPM, "CPM in at least", cfg.MinSamplesAtCPM, "samples );", len(counts.Matrix.Rows), "genes remain")

	logCPM := counts.LogCPMMatrix(cfg.PriorCount)

	outPath := filepath.Join(cfg.OutDir, output)
	if err := logCPM.WriteFile(outPath); err != nil {
		log.Fatalln(err)
	}

	log.Println("Wrote", len(logCPM.Rows), "genes x", logCPM.NSamples(), "samples to", outPath)
}
