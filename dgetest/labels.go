// Package dgetest runs the two-group differential expression test over a
// normalized expression matrix: per-gene quasi-likelihood F statistics,
// Benjamini-Hochberg correction, and partitioning into up- and down-regulated
// gene sets.
package dgetest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"

	"github.com/gexlab/dgex"
)

// SampleLabel is one row of the explicit sample-to-group mapping file.
type SampleLabel struct {
	Sample string `csv:"sample"`
	Group  string `csv:"group"`
}

// ReadLabelFile loads an explicit sample-to-group mapping (CSV or TSV with
// sample and group columns; groups "case"/"disease" vs "control") and aligns
// it to the matrix's sample columns. Every sample column must be labeled
// exactly once, and both groups must be present.
func ReadLabelFile(path string, samples []string) ([]bool, error) {
	fileBytes, err := dgex.OpenFileOrURL(path)
	if err != nil {
		return nil, err
	}

	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = dgex.DetermineDelimiter(strings.NewReader(string(fileBytes)))
		r.LazyQuotes = true
		return r
	})

	records := []*SampleLabel{}
	if err := gocsv.UnmarshalBytes(fileBytes, &records); err != nil {
		return nil, pfx.Err(err)
	}

	byName := make(map[string]string, len(records))
	for _, rec := range records {
		byName[strings.TrimSpace(rec.Sample)] = strings.ToLower(strings.TrimSpace(rec.Group))
	}

	if len(byName) != len(samples) {
		return nil, pfx.Err(fmt.Errorf("label file names %d samples but the matrix has %d columns", len(byName), len(samples)))
	}

	isCase := make([]bool, len(samples))
	nCase := 0
	for j, sample := range samples {
		group, exists := byName[sample]
		if !exists {
			return nil, pfx.Err(fmt.Errorf("sample column %q is missing from the label file", sample))
		}

		switch group {
		case "case", "disease", "ad":
			isCase[j] = true
			nCase++
		case "control", "nc":
		default:
			return nil, pfx.Err(fmt.Errorf("sample %q has unknown group %q", sample, group))
		}
	}

	if nCase == 0 || nCase == len(samples) {
		return nil, pfx.Err(fmt.Errorf("label file must contain both groups (got %d cases of %d samples)", nCase, len(samples)))
	}

	return isCase, nil
}

// PositionalLabels assigns the first nCase columns to the case group and the
// next nControl to the control group. This is the legacy column-order
// convention; it is logged loudly because nothing downstream can detect a
// mislabeling.
func PositionalLabels(nCase, nControl, nSamples int) ([]bool, error) {
	if nCase+nControl != nSamples {
		return nil, pfx.Err(fmt.Errorf("positional labels cover %d samples but the matrix has %d columns", nCase+nControl, nSamples))
	}
	if nCase == 0 || nControl == 0 {
		return nil, pfx.Err(fmt.Errorf("both groups need at least one sample (got %d vs %d)", nCase, nControl))
	}

	log.Printf("No label file given; assuming by column order that samples 1-%d are cases and %d-%d are controls\n", nCase, nCase+1, nSamples)

	isCase := make([]bool, nSamples)
	for j := 0; j < nCase; j++ {
		isCase[j] = true
	}

	return isCase, nil
}
