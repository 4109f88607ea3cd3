package qcfilter

import (
	"fmt"
	"io"

	"github.com/montanaflynn/stats"

	"github.com/gexlab/dgex/exprmatrix"
)

// SampleSummary is a five-number-style QC report row for one sample column.
type SampleSummary struct {
	Sample string
	N      int
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
	Mean   float64
	SD     float64
}

// Summarize computes a QC summary for every sample column, ignoring missing
// cells.
func Summarize(m exprmatrix.Matrix) ([]SampleSummary, error) {
	out := make([]SampleSummary, 0, m.NSamples())

	for j, sample := range m.Samples {
		col := m.Column(j)
		if len(col) == 0 {
			out = append(out, SampleSummary{Sample: sample})
			continue
		}

		data := stats.Float64Data(col)

		min, err := data.Min()
		if err != nil {
			return nil, err
		}
		max, err := data.Max()
		if err != nil {
			return nil, err
		}
		mean, err := data.Mean()
		if err != nil {
			return nil, err
		}
		sd, err := data.StandardDeviationSample()
		if err != nil {
			return nil, err
		}
		quartiles, err := stats.Quartile(data)
		if err != nil {
			return nil, err
		}

		out = append(out, SampleSummary{
			Sample: sample,
			N:      len(col),
			Min:    min,
			Q1:     quartiles.Q1,
			Median: quartiles.Q2,
			Q3:     quartiles.Q3,
			Max:    max,
			Mean:   mean,
			SD:     sd,
		})
	}

	return out, nil
}

// PrintSummaries writes a tab-delimited QC table.
func PrintSummaries(w io.Writer, summaries []SampleSummary) {
	fmt.Fprintf(w, "Sample\tN\tMin\tQ1\tMedian\tQ3\tMax\tMean\tSD\n")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%d\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\n",
			s.Sample, s.N, s.Min, s.Q1, s.Median, s.Q3, s.Max, s.Mean, s.SD)
	}
}
