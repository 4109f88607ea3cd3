// Sheet2tsv dumps any supported spreadsheet (.xlsx, .xls, delimited text,
// optionally gzipped, local path or URL) to tab-delimited text on stdout.
// Handy for eyeballing a supplementary file before running preprocess.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/gexlab/dgex/buildinfoprint"
	"github.com/gexlab/dgex/geotable"
)

func main() {
	var filename string

	flag.StringVar(&filename, "filename", "", "Path or URL of the spreadsheet.")
	flag.Parse()

	if filename == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	rows, err := geotable.ReadSheet(filename)
	if err != nil {
		log.Fatalln(err)
	}

	log.Println(len(rows), "Rows")
	for _, row := range rows {
		fmt.Printf("%s\n", strings.Join(row, "\t"))
	}
}
