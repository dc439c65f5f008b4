package model_selection

import (
	"time"

	"github.com/samber/lo"

	"github.com/YuminosukeSato/sigo/core/data"
	"github.com/YuminosukeSato/sigo/core/model"
	"github.com/YuminosukeSato/sigo/core/parallel"
	"github.com/YuminosukeSato/sigo/pkg/errors"
	"github.com/YuminosukeSato/sigo/pkg/log"
)

// Param は探索するハイパーパラメータとその候補値です。
type Param struct {
	Name   string
	Values []float64
}

// ParameterGrid はハイパーパラメータの順序付きリストです。
// この順序が組み合わせの順序を決め、先頭のパラメータが最も遅く変化します。
type ParameterGrid []Param

// Names はグリッド順のパラメータ名を返します。
func (g ParameterGrid) Names() []string {
	return lo.Map(g, func(p Param, _ int) string {
		return p.Name
	})
}

// Size は組み合わせの数を返します。
func (g ParameterGrid) Size() int {
	n := 1
	for _, p := range g {
		n *= len(p.Values)
	}
	return n
}

// Combinations は直積のすべての割り当てを返します。最後のパラメータが最も速く
// 変化し、空のグリッドは空の組み合わせを1つ持ちます。
func (g ParameterGrid) Combinations() []map[string]float64 {
	out := []map[string]float64{{}}
	for _, p := range g {
		next := make([]map[string]float64, 0, len(out)*len(p.Values))
		for _, prefix := range out {
			for _, v := range p.Values {
				combo := make(map[string]float64, len(prefix)+1)
				for k, pv := range prefix {
					combo[k] = pv
				}
				combo[p.Name] = v
				next = append(next, combo)
			}
		}
		out = next
	}
	return out
}

// Validate はグリッドの形と、すべての名前が known に含まれることを検証します。
func (g ParameterGrid) Validate(modelName string, known []string) error {
	seen := make(map[string]bool, len(g))
	for _, p := range g {
		if !lo.Contains(known, p.Name) {
			return errors.NewUnknownParameterError(modelName, p.Name, known)
		}
		if seen[p.Name] {
			return errors.NewValidationError(p.Name, "duplicate grid parameter", p.Values)
		}
		seen[p.Name] = true
		if len(p.Values) == 0 {
			return errors.NewValidationError(p.Name, "grid parameter has no values", p.Values)
		}
	}
	return nil
}

// GridSearch はグリッド点ごとに新しい推定器を交差検証します。
//
// フォールドを実行する前に、すべてのキーを est.ParamNames() と照合し、
// すべての点を est.WithParams で構成します。不正なグリッドは学習なしで失敗し、
// est 自体は変更されません。分割シードは先に引くので、WithNJobs は結果を
// 変えず実行時間だけを変えます。
func GridSearch(est model.Tunable, ds *data.Dataset, grid ParameterGrid, opts ...Option) (*GridSearchResult, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if err := checkDataset(ds, "GridSearch"); err != nil {
		return nil, err
	}
	if err := grid.Validate(modelNameOf(est), est.ParamNames()); err != nil {
		return nil, err
	}

	combos := grid.Combinations()
	estimators := make([]model.Tunable, len(combos))
	for i, params := range combos {
		if estimators[i], err = est.WithParams(params); err != nil {
			return nil, err
		}
	}

	rng := cfg.rng()
	seeds := make([][]int, len(combos))
	for i := range seeds {
		seeds[i] = drawSeeds(rng, cfg.cv)
	}

	logger := cfg.logger.With(log.OperationKey, log.OperationGridSearch)
	logger.Info("Grid search started",
		log.GridSizeKey, len(combos),
		log.FoldsKey, cfg.cv,
		log.SamplesKey, ds.NSamples(),
	)
	start := time.Now()

	result := &GridSearchResult{
		ParamNames: grid.Names(),
		Records:    make([]ScoreRecord, len(combos)),
	}
	err = parallel.ForEach(len(combos), cfg.nJobs, func(i int) error {
		pointLogger := logger.With(log.GridPointKey, i, log.HyperParamsKey, combos[i])
		rec, err := crossValidate(estimators[i], ds, cfg, seeds[i], pointLogger)
		if err != nil {
			return errors.Wrapf(err, "grid point %d", i)
		}
		rec.Parameters = combos[i]
		result.Records[i] = *rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Grid search finished",
		log.GridSizeKey, len(combos),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return result, nil
}

type named interface {
	Name() string
}

func modelNameOf(est model.Tunable) string {
	if n, ok := est.(named); ok {
		return n.Name()
	}
	return "estimator"
}
