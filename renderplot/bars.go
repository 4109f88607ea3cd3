package renderplot

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/carbocation/pfx"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/gexlab/dgex/enrich"
)

// Longer term names are truncated so the bar labels stay legible.
const maxBarLabel = 28

// EnrichmentBars renders the top enriched terms as a bar chart of -log10
// adjusted p-value. maxTerms caps the number of bars.
func EnrichmentBars(filename, title string, results []enrich.Result, maxTerms int) error {
	if len(results) == 0 {
		return pfx.Err(fmt.Errorf("no enriched terms to plot for %s", title))
	}

	if len(results) > maxTerms {
		results = results[:maxTerms]
	}

	bars := make([]chart.Value, 0, len(results))
	for _, r := range results {
		label := r.Term
		if len(label) > maxBarLabel {
			label = label[:maxBarLabel-3] + "..."
		}

		bars = append(bars, chart.Value{
			Label: label,
			Value: -math.Log10(math.Max(r.AdjP, minPlottedP)),
		})
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    1024,
		Height:   512,
		BarWidth: 40,
		XAxis:    chart.Style{TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Name: "-log10 adjusted p",
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return pfx.Err(err)
	}

	outFile, err := os.Create(filename)
	if err != nil {
		return pfx.Err(err)
	}
	defer outFile.Close()

	if _, err := buffer.WriteTo(outFile); err != nil {
		return pfx.Err(err)
	}

	return nil
}
