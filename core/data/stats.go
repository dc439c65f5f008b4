package data

import (
	"fmt"
	"math"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// column returns the non-NaN values of feature j.
func (d *Dataset) column(j int) []float64 {
	n := d.NSamples()
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if v := d.X.At(i, j); !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// perFeature applies fn to the non-NaN values of each feature.
// A feature whose values are all NaN yields NaN.
func (d *Dataset) perFeature(fn func(col []float64) float64) []float64 {
	out := make([]float64, d.NFeatures())
	for j := range out {
		col := d.column(j)
		if len(col) == 0 {
			out[j] = math.NaN()
			continue
		}
		out[j] = fn(col)
	}
	return out
}

// Mean returns the per-feature mean, ignoring NaN.
func (d *Dataset) Mean() []float64 {
	return d.perFeature(func(col []float64) float64 {
		return stat.Mean(col, nil)
	})
}

// Variance returns the per-feature population variance, ignoring NaN.
func (d *Dataset) Variance() []float64 {
	return d.perFeature(func(col []float64) float64 {
		_, v := stat.PopMeanVariance(col, nil)
		return v
	})
}

// Median returns the per-feature median, ignoring NaN. For an even count it
// is the mean of the two middle values.
func (d *Dataset) Median() []float64 {
	return d.perFeature(median)
}

// Max returns the per-feature maximum, ignoring NaN.
func (d *Dataset) Max() []float64 {
	return d.perFeature(floats.Max)
}

// Min returns the per-feature minimum, ignoring NaN.
func (d *Dataset) Min() []float64 {
	return d.perFeature(floats.Min)
}

// median expects a non-empty column; stats.Median sorts a copy.
func median(col []float64) float64 {
	m, err := stats.Median(col)
	if err != nil {
		return math.NaN()
	}
	return m
}

// Summary holds per-feature descriptive statistics.
type Summary struct {
	Features []string
	Mean     []float64
	Median   []float64
	Min      []float64
	Max      []float64
	Variance []float64
}

// Summary computes mean, median, min, max and variance of every feature.
func (d *Dataset) Summary() *Summary {
	return &Summary{
		Features: d.Features,
		Mean:     d.Mean(),
		Median:   d.Median(),
		Min:      d.Min(),
		Max:      d.Max(),
		Variance: d.Variance(),
	}
}

// String renders the summary with one row per feature.
func (s *Summary) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"feature", "mean", "median", "min", "max", "var"})
	for j, name := range s.Features {
		t.AppendRow(table.Row{
			name,
			formatFloat(s.Mean[j]),
			formatFloat(s.Median[j]),
			formatFloat(s.Min[j]),
			formatFloat(s.Max[j]),
			formatFloat(s.Variance[j]),
		})
	}
	return t.Render()
}

// String renders the dataset as a table; the label, when present, is the
// first column.
func (d *Dataset) String() string {
	t := table.NewWriter()
	header := table.Row{}
	if d.HasLabel() {
		header = append(header, d.Label)
	}
	for _, f := range d.Features {
		header = append(header, f)
	}
	t.AppendHeader(header)

	rows, cols := d.X.Dims()
	for i := 0; i < rows; i++ {
		row := make(table.Row, 0, cols+1)
		if d.HasLabel() {
			row = append(row, formatFloat(d.Y.AtVec(i)))
		}
		for _, v := range mat.Row(nil, i, d.X) {
			row = append(row, formatFloat(v))
		}
		t.AppendRow(row)
	}
	return t.Render()
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.6g", v)
}
