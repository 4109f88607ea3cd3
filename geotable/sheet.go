// Package geotable ingests GEO supplementary expression tables: spreadsheet
// parsing, normalization of the positional column layout to semantic names,
// and coercion of textual counts to numeric values.
package geotable

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/gexlab/dgex"
)

// ReadSheet fetches input (a local path or URL, optionally gzipped) and
// returns its raw rows. The format is chosen by file extension: .xlsx and
// .xls are parsed as spreadsheets, anything else as delimited text with a
// sniffed delimiter.
func ReadSheet(input string) ([][]string, error) {
	fileBytes, err := dgex.OpenFileOrURL(input)
	if err != nil {
		return nil, err
	}

	name := strings.ToLower(strings.TrimSuffix(input, ".gz"))

	switch path.Ext(name) {
	case ".xlsx":
		return readXLSX(fileBytes)
	case ".xls":
		return readXLS(fileBytes)
	}

	return readDelimited(fileBytes)
}

func readXLSX(fileBytes []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(fileBytes))
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, pfx.Err(err)
	}

	return rows, nil
}

func readXLS(fileBytes []byte) ([][]string, error) {
	spreadsheet, err := xls.OpenReader(bytes.NewReader(fileBytes), "utf-8")
	if err != nil {
		return nil, pfx.Err(err)
	}

	sheet := spreadsheet.GetSheet(0)
	if sheet == nil {
		return nil, pfx.Err(fmt.Errorf("sheet 0 was nil"))
	}

	out := make([][]string, 0, int(sheet.MaxRow)+1)
	for rowID := 0; rowID <= int(sheet.MaxRow); rowID++ {
		row := sheet.Row(rowID)
		if row == nil {
			continue
		}

		cells := make([]string, 0, row.LastCol()+1)
		for colID := 0; colID <= row.LastCol(); colID++ {
			cells = append(cells, row.Col(colID))
		}
		out = append(out, cells)
	}

	return out, nil
}

func readDelimited(fileBytes []byte) ([][]string, error) {
	delim := dgex.DetermineDelimiter(bytes.NewReader(fileBytes))

	cr := csv.NewReader(bytes.NewReader(fileBytes))
	cr.Comma = delim
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, pfx.Err(err)
	}

	return rows, nil
}
