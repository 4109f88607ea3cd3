package dgetest

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// WriteResults serializes a result set as a tab-delimited table.
func WriteResults(w io.Writer, results []Result) error {
	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		cw := csv.NewWriter(out)
		cw.Comma = '\t'
		return gocsv.NewSafeCSVWriter(cw)
	})

	return pfx.Err(gocsv.Marshal(results, w))
}

// WriteResultsFile writes a result table to path.
func WriteResultsFile(path string, results []Result) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	return WriteResults(f, results)
}
