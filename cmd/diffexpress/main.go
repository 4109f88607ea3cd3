// Diffexpress consumes the normalized log2-CPM matrix produced by
// preprocess, tests every gene for differential expression between the case
// and control groups, BH-corrects the p-values, partitions significant genes
// into up- and down-regulated sets, runs over-representation analysis
// against a GMT ontology, and renders the volcano plot, heatmap, and
// enrichment bar charts.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aybabtme/uniplot/histogram"

	"github.com/gexlab/dgex"
	_ "github.com/gexlab/dgex/buildinfoprint"
	"github.com/gexlab/dgex/dgetest"
	"github.com/gexlab/dgex/enrich"
	"github.com/gexlab/dgex/exprmatrix"
	"github.com/gexlab/dgex/renderplot"
)

const heatmapTopGenes = 50

func main() {
	var matrixPath, labelPath, gmtPath, configPath string
	var enrichCutoff float64

	flag.StringVar(&matrixPath, "matrix", "", "Normalized log2-CPM TSV produced by the preprocess tool.")
	flag.StringVar(&labelPath, "labels", "", "Optional sample-to-group mapping file (columns: sample, group). Without it, the positional case/control split from the config is assumed.")
	flag.StringVar(&gmtPath, "gmt", "", "Optional GMT gene-set file for over-representation analysis.")
	flag.StringVar(&configPath, "config", "", "Optional JSON config file with analysis thresholds.")
	flag.Float64Var(&enrichCutoff, "enrichcutoff", 0, "Override the configured enrichment adjusted-p cutoff (e.g. relax 0.05 to 0.10 when few terms pass).")
	flag.Parse()

	if matrixPath == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := dgex.ParseConfigFromPath(configPath)
	if err != nil {
		log.Fatalln(err)
	}
	if enrichCutoff > 0 {
		cfg.EnrichmentCutoff = enrichCutoff
	}

	matrix, err := exprmatrix.ReadFile(dgex.ExpandHome(matrixPath))
	if err != nil {
		log.Fatalln(err)
	}

	matrix, duplicates := matrix.DedupeSymbols()
	log.Println("Loaded", len(matrix.Rows), "genes x", matrix.NSamples(), "samples;", duplicates, "duplicate symbols dropped")

	var isCase []bool
	if labelPath != "" {
		isCase, err = dgetest.ReadLabelFile(labelPath, matrix.Samples)
	} else {
		isCase, err = dgetest.PositionalLabels(cfg.NCase, cfg.NControl, matrix.NSamples())
	}
	if err != nil {
		log.Fatalln(err)
	}

	results, err := dgetest.QLTest(matrix, isCase)
	if err != nil {
		log.Fatalln(err)
	}

	printPValueHistogram(results)

	resultPath := filepath.Join(cfg.OutDir, "dge_results.tsv")
	if err := dgetest.WriteResultsFile(resultPath, results); err != nil {
		log.Fatalln(err)
	}
	log.Println("Wrote", len(results), "test results to", resultPath)

	sets := dgetest.Partition(results, cfg.PValueCutoff)
	log.Println(len(sets.Up), "genes up-regulated and", len(sets.Down), "down-regulated at adjusted p <", cfg.PValueCutoff)

	if err := renderplot.Volcano(filepath.Join(cfg.OutDir, "volcano.png"), results, cfg.PValueCutoff); err != nil {
		log.Fatalln(err)
	}

	top := make([]string, 0, heatmapTopGenes)
	for _, r := range results {
		if len(top) == heatmapTopGenes {
			break
		}
		top = append(top, r.Symbol)
	}
	if err := renderplot.Heatmap(filepath.Join(cfg.OutDir, "heatmap.png"), matrix, top); err != nil {
		log.Fatalln(err)
	}

	if gmtPath == "" {
		log.Println("No -gmt file given; skipping over-representation analysis")
		return
	}

	terms, err := enrich.ReadGMT(gmtPath)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Loaded", len(terms), "gene sets from", gmtPath)

	universe := dgetest.Universe(results)

	for _, direction := range []struct {
		name  string
		genes []string
	}{
		{"up", sets.Up},
		{"down", sets.Down},
	} {
		enriched := enrich.OverRepresentation(direction.genes, universe, terms, cfg.EnrichmentCutoff)
		log.Println(len(enriched), "terms enriched in the", direction.name, "set at adjusted p <", cfg.EnrichmentCutoff)

		if len(enriched) == 0 {
			log.Println("Consider re-running with a relaxed -enrichcutoff if this is unexpectedly empty")
			continue
		}

		fmt.Printf("Direction\tTerm\tDescription\tOverlap\tTermSize\tP\tAdjP\n")
		for _, r := range enriched {
			fmt.Printf("%s\t%s\t%s\t%d\t%d\t%.3g\t%.3g\n",
				direction.name, r.Term, r.Description, r.Overlap, r.TermSize, r.PValue, r.AdjP)
		}

		barPath := filepath.Join(cfg.OutDir, "enrichment_"+direction.name+".png")
		if err := renderplot.EnrichmentBars(barPath, "Enriched terms ("+direction.name+"-regulated)", enriched, 15); err != nil {
			log.Fatalln(err)
		}
	}
}

// printPValueHistogram gives a quick terminal sanity check of the raw
// p-value distribution. A healthy two-group test shows a spike near zero
// over a uniform floor.
func printPValueHistogram(results []dgetest.Result) {
	if len(results) == 0 {
		return
	}

	ps := make([]float64, 0, len(results))
	for _, r := range results {
		ps = append(ps, r.PValue)
	}

	hist := histogram.Hist(20, ps)
	if err := histogram.Fprint(os.Stdout, hist, histogram.Linear(40)); err != nil {
		log.Println("could not print p-value histogram:", err)
	}
}
