// Package plotting renders training diagnostics with gonum/plot.
package plotting

import (
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/sigo/pkg/errors"
	"github.com/YuminosukeSato/sigo/sklearn/model_selection"
)

// Default image size.
const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 5 * vg.Inch
)

// CostHistory plots cost against iteration.
func CostHistory(history []float64) (*plot.Plot, error) {
	if len(history) == 0 {
		return nil, errors.NewValueError("plotting.CostHistory", "cost history is empty")
	}

	p := plot.New()
	p.Title.Text = "Cost history"
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "cost"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(series(history))
	if err != nil {
		return nil, errors.Wrap(err, "cost history line")
	}
	line.Width = vg.Points(2)
	p.Add(line)
	return p, nil
}

// FoldScores plots the train and test score of every fold.
func FoldScores(rec *model_selection.ScoreRecord) (*plot.Plot, error) {
	if rec == nil || len(rec.Test) == 0 {
		return nil, errors.NewValueError("plotting.FoldScores", "score record is empty")
	}

	p := plot.New()
	p.Title.Text = "Cross-validation scores"
	p.X.Label.Text = "fold"
	p.Y.Label.Text = "score"
	p.Add(plotter.NewGrid())

	for _, s := range []struct {
		name   string
		scores []float64
		color  color.Color
	}{
		{"train", rec.Train, color.RGBA{R: 31, G: 119, B: 180, A: 255}},
		{"test", rec.Test, color.RGBA{R: 255, G: 127, B: 14, A: 255}},
	} {
		line, points, err := plotter.NewLinePoints(series(s.scores))
		if err != nil {
			return nil, errors.Wrapf(err, "%s scores", s.name)
		}
		line.Color = s.color
		points.Color = s.color
		p.Add(line, points)
		p.Legend.Add(s.name, line, points)
	}
	return p, nil
}

func series(values []float64) plotter.XYs {
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	return pts
}

// Save writes p to path; the format follows the extension (png, svg, pdf, ...).
func Save(p *plot.Plot, path string) error {
	if err := p.Save(DefaultWidth, DefaultHeight, path); err != nil {
		return errors.Wrapf(err, "save plot %s", path)
	}
	return nil
}

// Write renders p in format ("png", "svg", ...) to w.
func Write(p *plot.Plot, w io.Writer, format string) error {
	wt, err := p.WriterTo(DefaultWidth, DefaultHeight, strings.ToLower(strings.TrimPrefix(format, ".")))
	if err != nil {
		return errors.Wrapf(err, "plot format %s", format)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "write plot")
	}
	return nil
}

// SaveCostHistory plots history and saves it to path.
func SaveCostHistory(history []float64, path string) error {
	p, err := CostHistory(history)
	if err != nil {
		return err
	}
	return Save(p, filepath.Clean(path))
}
