package renderplot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/carbocation/pfx"
	"gonum.org/v1/gonum/stat"

	"github.com/gexlab/dgex/exprmatrix"
)

const (
	heatmapCellW = 24
	heatmapCellH = 8
	// Z-scores beyond this saturate the color ramp
	heatmapZClip = 3.0
)

// Heatmap renders the selected genes' expression as a row-standardized
// heatmap PNG: each row is z-scored across samples and mapped onto a
// blue-white-red ramp. Rows are drawn in the order symbols are given
// (typically ranked by p-value).
func Heatmap(filename string, m exprmatrix.Matrix, symbols []string) error {
	bySymbol := make(map[string]exprmatrix.Row, len(m.Rows))
	for _, r := range m.Rows {
		bySymbol[r.Symbol] = r
	}

	rows := make([][]float64, 0, len(symbols))
	for _, s := range symbols {
		r, exists := bySymbol[s]
		if !exists {
			continue
		}

		vals := make([]float64, 0, len(r.Values))
		for _, v := range r.Values {
			if !v.Valid {
				vals = nil
				break
			}
			vals = append(vals, v.Float64)
		}
		if vals != nil {
			rows = append(rows, vals)
		}
	}

	if len(rows) == 0 {
		return pfx.Err(fmt.Errorf("none of the requested genes are present in the matrix"))
	}

	img := image.NewRGBA(image.Rect(0, 0, m.NSamples()*heatmapCellW, len(rows)*heatmapCellH))

	for i, vals := range rows {
		mean, sd := stat.MeanStdDev(vals, nil)

		for j, v := range vals {
			z := 0.0
			if sd > 0 {
				z = (v - mean) / sd
			}

			c := rampColor(z)
			for y := i * heatmapCellH; y < (i+1)*heatmapCellH; y++ {
				for x := j * heatmapCellW; x < (j+1)*heatmapCellW; x++ {
					img.Set(x, y, c)
				}
			}
		}
	}

	outFile, err := os.Create(filename)
	if err != nil {
		return pfx.Err(err)
	}
	defer outFile.Close()

	return pfx.Err(png.Encode(outFile, img))
}

// rampColor maps a z-score onto a blue (low) to white (zero) to red (high)
// ramp, saturating at ±heatmapZClip.
func rampColor(z float64) color.RGBA {
	if z > heatmapZClip {
		z = heatmapZClip
	}
	if z < -heatmapZClip {
		z = -heatmapZClip
	}

	frac := z / heatmapZClip

	switch {
	case frac >= 0:
		fade := uint8(255 * (1 - frac))
		return color.RGBA{R: 255, G: fade, B: fade, A: 255}
	default:
		fade := uint8(255 * (1 + frac))
		return color.RGBA{R: fade, G: fade, B: 255, A: 255}
	}
}
