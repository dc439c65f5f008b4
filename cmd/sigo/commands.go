package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	"github.com/YuminosukeSato/sigo/core/data"
	"github.com/YuminosukeSato/sigo/core/model"
	"github.com/YuminosukeSato/sigo/metrics"
	"github.com/YuminosukeSato/sigo/pkg/errors"
	"github.com/YuminosukeSato/sigo/pkg/log"
	"github.com/YuminosukeSato/sigo/plotting"
	"github.com/YuminosukeSato/sigo/preprocessing"
	"github.com/YuminosukeSato/sigo/sklearn/feature_extraction"
	"github.com/YuminosukeSato/sigo/sklearn/linear_model"
	"github.com/YuminosukeSato/sigo/sklearn/model_selection"
)

func csvOptions(c *cli.Context, hasLabel bool) (data.CSVOptions, error) {
	sep, size := utf8.DecodeRuneInString(c.String(flagSep))
	if sep == utf8.RuneError || size != len(c.String(flagSep)) {
		return data.CSVOptions{}, errors.NewValidationError(flagSep, "must be a single character", c.String(flagSep))
	}
	return data.CSVOptions{Sep: sep, HasHeader: c.Bool(flagHeader), HasLabel: hasLabel}, nil
}

// loadDataset reads --data, or generates a random binary dataset when it
// is not given.
func loadDataset(c *cli.Context) (*data.Dataset, error) {
	var (
		ds  *data.Dataset
		err error
	)
	if path := c.String(flagData); path != "" {
		opts, err := csvOptions(c, true)
		if err != nil {
			return nil, err
		}
		ds, err = data.ReadCSV(path, opts)
		if err != nil {
			return nil, err
		}
	} else {
		ds, err = data.FromRandom(c.Int(flagSamples), c.Int(flagFeatures), 2, c.Uint64(flagSeed))
		if err != nil {
			return nil, err
		}
	}

	if c.Bool(flagDropNA) {
		if ds, err = ds.DropNA(); err != nil {
			return nil, err
		}
	}
	log.GetLoggerWithName("cli").Debug("Dataset loaded",
		log.SamplesKey, ds.NSamples(),
		log.FeaturesKey, ds.NFeatures(),
	)
	return ds, nil
}

func newEstimator(c *cli.Context) (*linear_model.LogisticRegression, error) {
	gradient, err := linear_model.ParseGradientKind(c.String(flagGradient))
	if err != nil {
		return nil, err
	}
	return linear_model.NewLogisticRegression(
		linear_model.WithL2Penalty(c.Float64(flagL2Penalty)),
		linear_model.WithAlpha(c.Float64(flagAlpha)),
		linear_model.WithMaxIter(c.Int(flagMaxIter)),
		linear_model.WithGradient(gradient),
	), nil
}

func selectionOptions(c *cli.Context) []model_selection.Option {
	return []model_selection.Option{
		model_selection.WithCV(c.Int(flagCV)),
		model_selection.WithTestSize(c.Float64(flagTestSize)),
		model_selection.WithRandomState(c.Uint64(flagSeed)),
		model_selection.WithScoring(metrics.Accuracy),
	}
}

func scaled(c *cli.Context, ds *data.Dataset) (*data.Dataset, error) {
	if !c.Bool(flagScale) {
		return ds, nil
	}
	return preprocessing.NewStandardScalerDefault().FitTransform(ds)
}

func summaryAction(c *cli.Context) error {
	ds, err := loadDataset(c)
	if err != nil {
		return err
	}
	w := c.App.Writer
	fmt.Fprintf(w, "samples: %d, features: %d, label: %q\n", ds.NSamples(), ds.NFeatures(), ds.Label)
	if classes, err := ds.Classes(); err == nil {
		fmt.Fprintf(w, "classes: %v\n", classes)
	}
	fmt.Fprintln(w, ds.Summary().String())
	if c.Bool("show") {
		fmt.Fprintln(w, ds.String())
	}
	return nil
}

func fitAction(c *cli.Context) error {
	ds, err := loadDataset(c)
	if err != nil {
		return err
	}
	train, test, err := model_selection.TrainTestSplit(ds, c.Float64(flagTestSize), int64(c.Uint64(flagSeed)))
	if err != nil {
		return err
	}
	if c.Bool(flagScale) {
		scaler := preprocessing.NewStandardScalerDefault()
		if train, err = scaler.FitTransform(train); err != nil {
			return err
		}
		if test, err = scaler.Transform(test); err != nil {
			return err
		}
	}

	lr, err := newEstimator(c)
	if err != nil {
		return err
	}
	if err := lr.Fit(train); err != nil {
		return err
	}

	trainAcc, err := lr.Score(train)
	if err != nil {
		return err
	}
	testAcc, err := lr.Score(test)
	if err != nil {
		return err
	}
	proba, err := lr.PredictProba(test)
	if err != nil {
		return err
	}
	testLoss, err := metrics.BinaryLogLoss(test.Y, proba)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(c.App.Writer)
	t.AppendHeader(table.Row{"metric", "value"})
	t.AppendRows([]table.Row{
		{"model", lr.String()},
		{"train samples", train.NSamples()},
		{"test samples", test.NSamples()},
		{"iterations", lr.NIter()},
		{"converged", lr.Converged()},
		{"final cost", fmt.Sprintf("%.6f", lastCost(lr.CostHistory()))},
		{"train accuracy", fmt.Sprintf("%.4f", trainAcc)},
		{"test accuracy", fmt.Sprintf("%.4f", testAcc)},
		{"test log loss", fmt.Sprintf("%.4f", testLoss)},
	})
	t.Render()

	if out := c.String(flagOut); out != "" {
		weights, err := lr.ExportWeights()
		if err != nil {
			return err
		}
		if err := model.SaveWeights(weights, out); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "weights written to %s\n", out)
	}
	if path := c.String(flagPlot); path != "" {
		if err := plotting.SaveCostHistory(lr.CostHistory(), path); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "cost history plot written to %s\n", path)
	}
	return nil
}

func lastCost(history []float64) float64 {
	if len(history) == 0 {
		return 0
	}
	return history[len(history)-1]
}

func cvAction(c *cli.Context) error {
	ds, err := loadDataset(c)
	if err != nil {
		return err
	}
	if ds, err = scaled(c, ds); err != nil {
		return err
	}
	lr, err := newEstimator(c)
	if err != nil {
		return err
	}
	rec, err := model_selection.CrossValidate(lr, ds, selectionOptions(c)...)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(c.App.Writer)
	t.AppendHeader(table.Row{"fold", "seed", "train", "test"})
	for i := range rec.Seeds {
		t.AppendRow(table.Row{i, rec.Seeds[i], fmt.Sprintf("%.4f", rec.Train[i]), fmt.Sprintf("%.4f", rec.Test[i])})
	}
	t.AppendFooter(table.Row{"mean", "", fmt.Sprintf("%.4f", rec.MeanTrain()), fmt.Sprintf("%.4f ± %.4f", rec.MeanTest(), rec.StdTest())})
	t.Render()

	if path := c.String(flagPlot); path != "" {
		p, err := plotting.FoldScores(rec)
		if err != nil {
			return err
		}
		if err := plotting.Save(p, path); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "fold scores plot written to %s\n", path)
	}
	return nil
}

// parseGrid reads repeated name=v1,v2 axes. The flag parser may already
// have split on commas, so a bare value continues the previous axis.
func parseGrid(specs []string) (model_selection.ParameterGrid, error) {
	var grid model_selection.ParameterGrid
	for _, spec := range specs {
		for _, part := range strings.Split(spec, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if name, value, ok := strings.Cut(part, "="); ok {
				grid = append(grid, model_selection.Param{Name: strings.TrimSpace(name)})
				part = value
			} else if len(grid) == 0 {
				return nil, errors.NewValidationError(flagParam, "expected name=v1,v2,...", spec)
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return nil, errors.NewValidationError(flagParam, "values must be numbers", part)
			}
			last := &grid[len(grid)-1]
			last.Values = append(last.Values, v)
		}
	}
	return grid, nil
}

func gridAction(c *cli.Context) error {
	grid, err := parseGrid(c.StringSlice(flagParam))
	if err != nil {
		return err
	}
	ds, err := loadDataset(c)
	if err != nil {
		return err
	}
	if ds, err = scaled(c, ds); err != nil {
		return err
	}
	lr, err := newEstimator(c)
	if err != nil {
		return err
	}

	opts := append(selectionOptions(c), model_selection.WithNJobs(c.Int(flagJobs)))
	result, err := model_selection.GridSearch(lr, ds, grid, opts...)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, result.String())
	if best, ok := result.Best(); ok {
		fmt.Fprintf(c.App.Writer, "best: %s mean_test=%.4f\n", formatParams(grid.Names(), best.Parameters), best.MeanTest())
	}
	return nil
}

func formatParams(names []string, params map[string]float64) string {
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%g", name, params[name])
	}
	return strings.Join(parts, " ")
}

func kmerAction(c *cli.Context) error {
	opts, err := csvOptions(c, !c.Bool(flagNoLabel))
	if err != nil {
		return err
	}
	seqs, err := data.ReadSequenceCSV(c.String(flagData), opts)
	if err != nil {
		return err
	}

	km := feature_extraction.NewKMer(
		feature_extraction.WithK(c.Int(flagK)),
		feature_extraction.WithAlphabet(c.String(flagAlphabet)),
	)
	ds, err := km.FitTransform(seqs)
	if err != nil {
		return err
	}

	var w io.Writer = c.App.Writer
	if out := c.String(flagOut); out != "" {
		f, err := os.Create(out)
		if err != nil {
			return errors.Wrapf(err, "create %s", out)
		}
		defer f.Close()
		w = f
	}
	return data.WriteCSVTo(w, ds, data.CSVOptions{Sep: opts.Sep, HasHeader: true, HasLabel: ds.HasLabel()})
}
