package data

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/sigo/pkg/errors"
)

// CSVOptions controls how delimited files are read and written.
type CSVOptions struct {
	// Sep is the field delimiter. Zero means ','.
	Sep rune

	// HasHeader indicates that the first row holds column names.
	HasHeader bool

	// HasLabel indicates that the last column is the label.
	HasLabel bool
}

func (o CSVOptions) sep() rune {
	if o.Sep == 0 {
		return ','
	}
	return o.Sep
}

// parseValue reads a numeric cell. Empty cells and "NA"/"NaN" become NaN.
func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "na", "nan", "null":
		return math.NaN(), nil
	}
	return cast.ToFloat64E(s)
}

// ReadCSV loads a Dataset from a delimited file.
func ReadCSV(path string, opts CSVOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()
	return ReadCSVFrom(f, opts)
}

// ReadCSVFrom loads a Dataset from r.
func ReadCSVFrom(r io.Reader, opts CSVOptions) (*Dataset, error) {
	records, header, err := readRecords(r, opts)
	if err != nil {
		return nil, err
	}

	nCols := len(records[0])
	nFeatures := nCols
	if opts.HasLabel {
		nFeatures--
	}
	if nFeatures < 1 {
		return nil, errors.NewValueError("data.ReadCSV", "no feature columns")
	}

	X := mat.NewDense(len(records), nFeatures, nil)
	var y *mat.VecDense
	if opts.HasLabel {
		y = mat.NewVecDense(len(records), nil)
	}
	for i, rec := range records {
		for j, cell := range rec {
			v, err := parseValue(cell)
			if err != nil {
				return nil, errors.Wrapf(err, "data.ReadCSV: row %d column %d", i, j)
			}
			if j == nFeatures {
				y.SetVec(i, v)
			} else {
				X.Set(i, j, v)
			}
		}
	}

	var features []string
	var label string
	if header != nil {
		features = header[:nFeatures]
		if opts.HasLabel {
			label = header[nFeatures]
		}
	}
	return New(X, y, features, label)
}

func readRecords(r io.Reader, opts CSVOptions) ([][]string, []string, error) {
	reader := csv.NewReader(r)
	reader.Comma = opts.sep()
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, errors.Wrap(err, "data.ReadCSV")
	}
	var header []string
	if opts.HasHeader && len(records) > 0 {
		header, records = records[0], records[1:]
	}
	if len(records) == 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, "data.ReadCSV")
	}
	return records, header, nil
}

// WriteCSV writes d to path. With HasHeader the column names are written
// first; with HasLabel the label is written as the last column.
func WriteCSV(path string, d *Dataset, opts CSVOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	if err := WriteCSVTo(f, d, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteCSVTo writes d to w.
func WriteCSVTo(w io.Writer, d *Dataset, opts CSVOptions) error {
	writer := csv.NewWriter(w)
	writer.Comma = opts.sep()
	withLabel := opts.HasLabel && d.HasLabel()

	if opts.HasHeader {
		header := append([]string(nil), d.Features...)
		if withLabel {
			header = append(header, d.Label)
		}
		if err := writer.Write(header); err != nil {
			return errors.Wrap(err, "data.WriteCSV")
		}
	}

	rows, cols := d.X.Dims()
	rec := make([]string, 0, cols+1)
	for i := 0; i < rows; i++ {
		rec = rec[:0]
		for j := 0; j < cols; j++ {
			rec = append(rec, strconv.FormatFloat(d.X.At(i, j), 'g', -1, 64))
		}
		if withLabel {
			rec = append(rec, strconv.FormatFloat(d.Y.AtVec(i), 'g', -1, 64))
		}
		if err := writer.Write(rec); err != nil {
			return errors.Wrap(err, "data.WriteCSV")
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "data.WriteCSV")
}

// SequenceSet holds raw string sequences and their optional labels, the
// input of sequence descriptors such as k-mer composition.
type SequenceSet struct {
	Sequences []string
	Y         *mat.VecDense
	Label     string
}

// Len returns the number of sequences.
func (s *SequenceSet) Len() int {
	return len(s.Sequences)
}

// ReadSequenceCSV loads a delimited file whose first column is a sequence
// and, with HasLabel, whose last column is a numeric label.
func ReadSequenceCSV(path string, opts CSVOptions) (*SequenceSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()
	return ReadSequenceCSVFrom(f, opts)
}

// ReadSequenceCSVFrom is ReadSequenceCSV over a reader.
func ReadSequenceCSVFrom(r io.Reader, opts CSVOptions) (*SequenceSet, error) {
	records, header, err := readRecords(r, opts)
	if err != nil {
		return nil, err
	}
	set := &SequenceSet{Sequences: make([]string, len(records))}
	if opts.HasLabel {
		if len(records[0]) < 2 {
			return nil, errors.NewValueError("data.ReadSequenceCSV", "label column requested but only one column present")
		}
		set.Y = mat.NewVecDense(len(records), nil)
		set.Label = DefaultLabel
		if header != nil {
			set.Label = header[len(header)-1]
		}
	}
	for i, rec := range records {
		set.Sequences[i] = strings.ToUpper(strings.TrimSpace(rec[0]))
		if opts.HasLabel {
			v, err := parseValue(rec[len(rec)-1])
			if err != nil {
				return nil, errors.Wrapf(err, "data.ReadSequenceCSV: row %d", i)
			}
			set.Y.SetVec(i, v)
		}
	}
	return set, nil
}
