// Package data はラベル付きの表形式データセットを提供します。
//
// Dataset は特徴量行列 X、任意のラベルベクトル Y、特徴量名、ラベル名を保持します。
// 推定器やモデル選択の関数は Dataset を不変として扱い、分割や変換は常に新しい
// Dataset を返します。
package data

import (
	"sort"
	"strconv"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/sigo/pkg/errors"
)

// DefaultLabel is the label name used when labels are given without a name.
const DefaultLabel = "y"

// Dataset represents a machine learning tabular dataset.
type Dataset struct {
	// X は特徴量行列 (n_samples × n_features)
	X *mat.Dense

	// Y はラベルベクトル (n_samples)。ラベルが無い場合は nil
	Y *mat.VecDense

	// Features は特徴量名 (n_features)。一意性は要求しない
	Features []string

	// Label はラベル名。Y が nil の場合は空文字列
	Label string
}

// New creates a Dataset and checks that its parts agree in shape.
//
// features が nil の場合は "0".."n-1" が使われ、y があって label が空の場合は
// "y" が使われます。y が nil の場合 label は破棄されます。
//
//	X := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
//	y := mat.NewVecDense(2, []float64{0, 1})
//	ds, err := data.New(X, y, []string{"a", "b", "c"}, "class")
func New(X *mat.Dense, y *mat.VecDense, features []string, label string) (*Dataset, error) {
	if X == nil || X.IsEmpty() {
		return nil, errors.Wrap(errors.ErrEmptyData, "data.New: X cannot be empty")
	}
	rows, cols := X.Dims()

	if features == nil {
		features = make([]string, cols)
		for j := range features {
			features[j] = strconv.Itoa(j)
		}
	} else {
		if len(features) != cols {
			return nil, errors.NewDimensionError("data.New", cols, len(features), 1)
		}
		features = append([]string(nil), features...)
	}

	if y == nil {
		label = ""
	} else {
		if y.Len() != rows {
			return nil, errors.NewDimensionError("data.New", rows, y.Len(), 0)
		}
		if label == "" {
			label = DefaultLabel
		}
	}

	return &Dataset{X: X, Y: y, Features: features, Label: label}, nil
}

// FromRows builds a Dataset from row slices. y may be nil.
func FromRows(rows [][]float64, y []float64, features []string, label string) (*Dataset, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "data.FromRows")
	}
	cols := len(rows[0])
	X := mat.NewDense(len(rows), cols, nil)
	for i, row := range rows {
		if len(row) != cols {
			return nil, errors.NewDimensionError("data.FromRows", cols, len(row), 1)
		}
		X.SetRow(i, row)
	}
	var yv *mat.VecDense
	if y != nil {
		if len(y) != len(rows) {
			return nil, errors.NewDimensionError("data.FromRows", len(rows), len(y), 0)
		}
		yv = mat.NewVecDense(len(y), append([]float64(nil), y...))
	}
	return New(X, yv, features, label)
}

// Shape returns (n_samples, n_features).
func (d *Dataset) Shape() (int, int) {
	return d.X.Dims()
}

// NSamples returns the number of rows.
func (d *Dataset) NSamples() int {
	r, _ := d.X.Dims()
	return r
}

// NFeatures returns the number of feature columns.
func (d *Dataset) NFeatures() int {
	_, c := d.X.Dims()
	return c
}

// HasLabel reports whether the dataset carries a label vector.
func (d *Dataset) HasLabel() bool {
	return d.Y != nil
}

// Classes returns the sorted unique label values.
func (d *Dataset) Classes() ([]float64, error) {
	if !d.HasLabel() {
		return nil, errors.NewValueError("Dataset.Classes", "dataset does not have a label")
	}
	classes := lo.Uniq(d.Labels())
	sort.Float64s(classes)
	return classes, nil
}

// Labels returns a copy of the label vector as a slice, or nil when unlabeled.
func (d *Dataset) Labels() []float64 {
	if !d.HasLabel() {
		return nil
	}
	out := make([]float64, d.Y.Len())
	for i := range out {
		out[i] = d.Y.AtVec(i)
	}
	return out
}

// Subset returns a new Dataset holding the given rows in the given order.
// Names are shared; matrices are copied.
func (d *Dataset) Subset(indices []int) (*Dataset, error) {
	if len(indices) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "Dataset.Subset")
	}
	rows, cols := d.X.Dims()
	X := mat.NewDense(len(indices), cols, nil)
	var y *mat.VecDense
	if d.HasLabel() {
		y = mat.NewVecDense(len(indices), nil)
	}
	for i, idx := range indices {
		if idx < 0 || idx >= rows {
			return nil, errors.NewValidationError("indices", "row index out of range", idx)
		}
		X.SetRow(i, d.X.RawRowView(idx))
		if y != nil {
			y.SetVec(i, d.Y.AtVec(idx))
		}
	}
	return &Dataset{X: X, Y: y, Features: d.Features, Label: d.Label}, nil
}

// Clone returns a deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		X:        mat.DenseCopyOf(d.X),
		Features: append([]string(nil), d.Features...),
		Label:    d.Label,
	}
	if d.HasLabel() {
		out.Y = mat.VecDenseCopyOf(d.Y)
	}
	return out
}

// WithX returns a dataset sharing labels and names with d but holding X.
// The column count of X must match d.
func (d *Dataset) WithX(X *mat.Dense) (*Dataset, error) {
	r, c := X.Dims()
	if r != d.NSamples() {
		return nil, errors.NewDimensionError("Dataset.WithX", d.NSamples(), r, 0)
	}
	if c != d.NFeatures() {
		return nil, errors.NewDimensionError("Dataset.WithX", d.NFeatures(), c, 1)
	}
	return &Dataset{X: X, Y: d.Y, Features: d.Features, Label: d.Label}, nil
}
