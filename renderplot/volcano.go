// Package renderplot renders the analysis figures: a volcano plot and
// enrichment bar charts via go-chart, and an expression heatmap as a raw
// PNG.
package renderplot

import (
	"bytes"
	"math"
	"os"

	"github.com/carbocation/pfx"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/gexlab/dgex/dgetest"
)

// Smallest p-value plotted; anything lower is clamped so a zero p-value
// cannot blow up the -log10 axis.
const minPlottedP = 1e-300

// Volcano renders log2 fold change against -log10 raw p-value, highlighting
// genes that pass the adjusted-p cutoff in red (up) and blue (down).
func Volcano(filename string, results []dgetest.Result, pCutoff float64) error {
	var upX, upY, downX, downY, restX, restY []float64

	for _, r := range results {
		y := -math.Log10(math.Max(r.PValue, minPlottedP))

		switch {
		case r.AdjP < pCutoff && r.Log2FC > 0:
			upX = append(upX, r.Log2FC)
			upY = append(upY, y)
		case r.AdjP < pCutoff && r.Log2FC < 0:
			downX = append(downX, r.Log2FC)
			downY = append(downY, y)
		default:
			restX = append(restX, r.Log2FC)
			restY = append(restY, y)
		}
	}

	series := make([]chart.Series, 0, 3)

	if len(restX) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    "not significant",
			XValues: restX,
			YValues: restY,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    3,
				DotColor:    chart.ColorAlternateGray,
			},
		})
	}

	if len(upX) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    "up-regulated",
			XValues: upX,
			YValues: upY,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    4,
				DotColor:    chart.ColorRed,
			},
		})
	}

	if len(downX) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    "down-regulated",
			XValues: downX,
			YValues: downY,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    4,
				DotColor:    chart.ColorBlue,
			},
		})
	}

	graph := chart.Chart{
		Width:  1024,
		Height: 768,
		XAxis:  chart.XAxis{Name: "log2 fold change"},
		YAxis:  chart.YAxis{Name: "-log10 p"},
		Series: series,
	}

	// Render to a byte buffer
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
