package data

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/sigo/pkg/errors"
)

// HasNA reports whether any feature value is NaN.
func (d *Dataset) HasNA() bool {
	rows, cols := d.X.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if math.IsNaN(d.X.At(i, j)) {
				return true
			}
		}
	}
	return false
}

// DropNA returns a new dataset without the rows that contain a NaN feature.
// Labels of the kept rows stay aligned.
func (d *Dataset) DropNA() (*Dataset, error) {
	rows, cols := d.X.Dims()
	keep := make([]int, 0, rows)
	for i := 0; i < rows; i++ {
		ok := true
		for j := 0; j < cols; j++ {
			if math.IsNaN(d.X.At(i, j)) {
				ok = false
				break
			}
		}
		if ok {
			keep = append(keep, i)
		}
	}
	if len(keep) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "Dataset.DropNA: every row contains NaN")
	}
	return d.Subset(keep)
}

// FillNA returns a new dataset with every NaN feature value replaced by v.
func (d *Dataset) FillNA(v float64) *Dataset {
	rows, cols := d.X.Dims()
	X := mat.NewDense(rows, cols, nil)
	X.Apply(func(i, j int, x float64) float64 {
		if math.IsNaN(x) {
			return v
		}
		return x
	}, d.X)
	return &Dataset{X: X, Y: d.Y, Features: d.Features, Label: d.Label}
}
