package main

import (
	"github.com/urfave/cli/v2"

	"github.com/YuminosukeSato/sigo/pkg/log"
	"github.com/YuminosukeSato/sigo/sklearn/feature_extraction"
	"github.com/YuminosukeSato/sigo/sklearn/linear_model"
	"github.com/YuminosukeSato/sigo/sklearn/model_selection"
)

const (
	// Global flags.
	flagLogLevel = "log-level"

	// Dataset flags.
	flagData     = "data"
	flagSep      = "sep"
	flagHeader   = "header"
	flagNoLabel  = "no-label"
	flagDropNA   = "dropna"
	flagSamples  = "samples"
	flagFeatures = "features"
	flagSeed     = "seed"
	flagScale    = "scale"

	// Model flags.
	flagL2Penalty = "l2-penalty"
	flagAlpha     = "alpha"
	flagMaxIter   = "max-iter"
	flagGradient  = "gradient"

	// Evaluation flags.
	flagTestSize = "test-size"
	flagCV       = "cv"
	flagJobs     = "jobs"
	flagParam    = "param"

	// Output flags.
	flagOut  = "out"
	flagPlot = "plot"

	// k-mer flags.
	flagK        = "k"
	flagAlphabet = "alphabet"
)

// NewApp builds the sigo command tree.
func NewApp() *cli.App {
	return &cli.App{
		Name:  "sigo",
		Usage: "train and evaluate logistic regression models on tabular and sequence data",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagLogLevel,
				Value:   "warn",
				Usage:   "log level (debug, info, warn, error)",
				EnvVars: []string{"SIGO_LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			return log.SetupLoggerWithWriter(c.App.ErrWriter, c.String(flagLogLevel))
		},
		Commands: []*cli.Command{
			{
				Name:      "summary",
				Usage:     "print per-feature statistics of a dataset",
				UsageText: "sigo summary --data FILE [--header]",
				Flags:     append(datasetFlags(), &cli.BoolFlag{Name: "show", Usage: "also print every row"}),
				Action:    summaryAction,
			},
			{
				Name:      "fit",
				Usage:     "fit on a train split and report train/test metrics",
				UsageText: "sigo fit [--data FILE | --samples N] [--out weights.json] [--plot cost.png]",
				Flags: concat(datasetFlags(), modelFlags(), []cli.Flag{
					&cli.Float64Flag{Name: flagTestSize, Value: model_selection.DefaultTestSize, Usage: "held-out fraction"},
					&cli.StringFlag{Name: flagOut, Usage: "write fitted weights as JSON to `FILE`"},
					&cli.StringFlag{Name: flagPlot, Usage: "save the cost history plot to `FILE` (.png, .svg, .pdf)"},
				}),
				Action: fitAction,
			},
			{
				Name:      "cv",
				Usage:     "cross-validate over random train/test splits",
				UsageText: "sigo cv [--data FILE | --samples N] --cv 5",
				Flags: concat(datasetFlags(), modelFlags(), evaluationFlags(), []cli.Flag{
					&cli.StringFlag{Name: flagPlot, Usage: "save the per-fold scores plot to `FILE`"},
				}),
				Action: cvAction,
			},
			{
				Name:      "grid",
				Usage:     "grid search hyperparameters with cross-validation",
				UsageText: "sigo grid --param alpha=0.1,0.01 --param max_iter=100,1000",
				Flags: concat(datasetFlags(), modelFlags(), evaluationFlags(), []cli.Flag{
					&cli.StringSliceFlag{
						Name:     flagParam,
						Usage:    "grid axis as name=v1,v2,... (repeatable; order sets the product order)",
						Required: true,
					},
					&cli.IntFlag{Name: flagJobs, Value: 1, Usage: "grid points evaluated concurrently (0 = all CPUs)"},
				}),
				Action: gridAction,
			},
			{
				Name:      "kmer",
				Usage:     "compute k-mer composition features of sequences",
				UsageText: "sigo kmer --data seqs.csv --k 3 [--out features.csv]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagData, Usage: "sequence CSV: sequence first, label last", Required: true},
					&cli.StringFlag{Name: flagSep, Value: ",", Usage: "field delimiter"},
					&cli.BoolFlag{Name: flagHeader, Usage: "the first row holds column names"},
					&cli.BoolFlag{Name: flagNoLabel, Usage: "the file has no label column"},
					&cli.IntFlag{Name: flagK, Value: 2, Usage: "k-mer length"},
					&cli.StringFlag{Name: flagAlphabet, Value: feature_extraction.AlphabetDNA, Usage: "dna or protein"},
					&cli.StringFlag{Name: flagOut, Usage: "write the feature CSV to `FILE` instead of stdout"},
				},
				Action: kmerAction,
			},
		},
	}
}

func datasetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: flagData, Usage: "numeric CSV with the label as the last column"},
		&cli.StringFlag{Name: flagSep, Value: ",", Usage: "field delimiter"},
		&cli.BoolFlag{Name: flagHeader, Usage: "the first row holds column names"},
		&cli.BoolFlag{Name: flagDropNA, Usage: "drop rows with missing values"},
		&cli.IntFlag{Name: flagSamples, Value: 100, Usage: "random dataset size when --data is not given"},
		&cli.IntFlag{Name: flagFeatures, Value: 5, Usage: "random dataset width when --data is not given"},
		&cli.Uint64Flag{Name: flagSeed, Value: 42, Usage: "random seed"},
		&cli.BoolFlag{Name: flagScale, Usage: "standardize features before training"},
	}
}

func modelFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{Name: flagL2Penalty, Value: linear_model.DefaultL2Penalty, Usage: "L2 regularization strength"},
		&cli.Float64Flag{Name: flagAlpha, Value: linear_model.DefaultAlpha, Usage: "learning rate"},
		&cli.IntFlag{Name: flagMaxIter, Value: linear_model.DefaultMaxIter, Usage: "maximum gradient descent iterations"},
		&cli.StringFlag{Name: flagGradient, Value: linear_model.LogisticResidual.String(), Usage: "residual of the weight update (logistic or linear)"},
	}
}

func evaluationFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: flagCV, Value: model_selection.DefaultCV, Usage: "number of folds"},
		&cli.Float64Flag{Name: flagTestSize, Value: model_selection.DefaultTestSize, Usage: "held-out fraction of every fold"},
	}
}

func concat(groups ...[]cli.Flag) []cli.Flag {
	var out []cli.Flag
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
