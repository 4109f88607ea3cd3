// Package enrich runs over-representation analysis of gene sets against a
// biological-process ontology supplied in GMT format.
package enrich

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/carbocation/pfx"

	"github.com/gexlab/dgex"
)

// TermSet is one ontology term and its member genes.
type TermSet struct {
	Term        string
	Description string
	Genes       map[string]struct{}
}

// ReadGMT parses a GMT gene-set file (one term per line: name, description,
// then member gene symbols, tab-delimited). Lines with fewer than three
// fields are skipped.
func ReadGMT(input string) ([]TermSet, error) {
	fileBytes, err := dgex.OpenFileOrURL(input)
	if err != nil {
		return nil, err
	}

	out := make([]TermSet, 0)

	scanner := bufio.NewScanner(bytes.NewReader(fileBytes))
	scanner.Buffer(make([]byte, 1024*1024), 16*1024*1024)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			continue
		}

		ts := TermSet{
			Term:        fields[0],
			Description: fields[1],
			Genes:       make(map[string]struct{}, len(fields)-2),
		}

		for _, g := range fields[2:] {
			g = strings.TrimSpace(g)
			if g != "" {
				ts.Genes[g] = struct{}{}
			}
		}

		if len(ts.Genes) > 0 {
			out = append(out, ts)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	if len(out) == 0 {
		return nil, pfx.Err(fmt.Errorf("no gene sets parsed from %s", input))
	}

	return out, nil
}
