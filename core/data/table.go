package data

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/sigo/pkg/errors"
)

// Table is a column-named numeric frame: the flat form a Dataset is read
// from and written to.
type Table struct {
	Columns []string
	Rows    [][]float64
}

// ColumnIndex returns the position of name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// FromTable builds a Dataset from t. When label is non-empty that column
// becomes Y and is excluded from the features.
func FromTable(t *Table, label string) (*Dataset, error) {
	if t == nil || len(t.Rows) == 0 || len(t.Columns) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "data.FromTable")
	}
	labelIdx := -1
	if label != "" {
		labelIdx = t.ColumnIndex(label)
		if labelIdx < 0 {
			return nil, errors.NewValueError("data.FromTable", "label column "+label+" not found")
		}
	}

	nFeatures := len(t.Columns)
	if labelIdx >= 0 {
		nFeatures--
	}
	if nFeatures == 0 {
		return nil, errors.NewValueError("data.FromTable", "table has no feature columns")
	}

	features := make([]string, 0, nFeatures)
	for j, c := range t.Columns {
		if j != labelIdx {
			features = append(features, c)
		}
	}

	X := mat.NewDense(len(t.Rows), nFeatures, nil)
	var y *mat.VecDense
	if labelIdx >= 0 {
		y = mat.NewVecDense(len(t.Rows), nil)
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return nil, errors.NewDimensionError("data.FromTable", len(t.Columns), len(row), 1)
		}
		k := 0
		for j, v := range row {
			if j == labelIdx {
				y.SetVec(i, v)
				continue
			}
			X.Set(i, k, v)
			k++
		}
	}
	return New(X, y, features, label)
}

// ToTable converts the dataset back to its flat form. The label, when
// present, is appended as the last column.
func (d *Dataset) ToTable() *Table {
	rows, cols := d.X.Dims()
	columns := append([]string(nil), d.Features...)
	if d.HasLabel() {
		columns = append(columns, d.Label)
	}
	t := &Table{Columns: columns, Rows: make([][]float64, rows)}
	for i := 0; i < rows; i++ {
		row := make([]float64, 0, len(columns))
		row = append(row, mat.Row(nil, i, d.X)[:cols]...)
		if d.HasLabel() {
			row = append(row, d.Y.AtVec(i))
		}
		t.Rows[i] = row
	}
	return t
}
