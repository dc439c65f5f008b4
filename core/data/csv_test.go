package data

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestReadCSVFrom(t *testing.T) {
	input := "a;b;label\n1;2;0\n3;NA;1\n"
	ds, err := ReadCSVFrom(strings.NewReader(input), CSVOptions{Sep: ';', HasHeader: true, HasLabel: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, ds.Features)
	assert.Equal(t, "label", ds.Label)
	assert.Equal(t, []float64{0, 1}, ds.Labels())
	assert.True(t, math.IsNaN(ds.X.At(1, 1)))
}

func TestReadCSVWithoutHeader(t *testing.T) {
	ds, err := ReadCSVFrom(strings.NewReader("1,2\n3,4\n"), CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1"}, ds.Features)
	assert.False(t, ds.HasLabel())
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  CSVOptions
	}{
		{"header only", "a,b\n", CSVOptions{HasHeader: true}},
		{"not a number", "1,x\n", CSVOptions{}},
		{"label without features", "1\n", CSVOptions{HasLabel: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSVFrom(strings.NewReader(tt.input), tt.opts)
			assert.Error(t, err)
		})
	}
}

func TestCSVFileRoundTrip(t *testing.T) {
	ds, err := FromRows([][]float64{{0.25, -1}, {3, 1e-3}}, []float64{1, 0}, []string{"f1", "f2"}, "class")
	require.NoError(t, err)

	opts := CSVOptions{HasHeader: true, HasLabel: true}
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, WriteCSV(path, ds, opts))

	loaded, err := ReadCSV(path, opts)
	require.NoError(t, err)
	assert.True(t, mat.Equal(ds.X, loaded.X))
	assert.True(t, mat.Equal(ds.Y, loaded.Y))
	assert.Equal(t, ds.Features, loaded.Features)
	assert.Equal(t, ds.Label, loaded.Label)
}

func TestWriteCSVTo(t *testing.T) {
	ds, err := FromRows([][]float64{{1, 2}}, []float64{1}, []string{"a", "b"}, "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSVTo(&buf, ds, CSVOptions{HasHeader: true, HasLabel: true}))
	assert.Equal(t, "a,b,y\n1,2,1\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteCSVTo(&buf, ds, CSVOptions{}))
	assert.Equal(t, "1,2\n", buf.String())
}

func TestReadSequenceCSV(t *testing.T) {
	input := "sequence,family\nacgt,1\nTTGA,0\n"
	set, err := ReadSequenceCSVFrom(strings.NewReader(input), CSVOptions{HasHeader: true, HasLabel: true})
	require.NoError(t, err)

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []string{"ACGT", "TTGA"}, set.Sequences)
	assert.Equal(t, "family", set.Label)
	assert.Equal(t, 1.0, set.Y.AtVec(0))

	unlabeled, err := ReadSequenceCSVFrom(strings.NewReader("AC\nGT\n"), CSVOptions{})
	require.NoError(t, err)
	assert.Nil(t, unlabeled.Y)
}
