package model_selection

import (
	"time"

	"github.com/YuminosukeSato/sigo/core/data"
	"github.com/YuminosukeSato/sigo/core/model"
	"github.com/YuminosukeSato/sigo/pkg/errors"
	"github.com/YuminosukeSato/sigo/pkg/log"
)

// CrossValidate は cv 回のランダムな訓練/テスト分割で est を評価します。
//
// 各フォールドは [0, 1000) のシードを引いて ds を分割し、訓練側で est を
// 再学習して両方を評価します。est はその場で再学習されるため、呼び出し後は
// 最後のフォールドのモデルを保持します。
//
//	rec, err := model_selection.CrossValidate(lr, ds,
//	    model_selection.WithCV(5),
//	    model_selection.WithScoring(metrics.Accuracy),
//	)
func CrossValidate(est model.Estimator, ds *data.Dataset, opts ...Option) (*ScoreRecord, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if err := checkDataset(ds, "CrossValidate"); err != nil {
		return nil, err
	}
	return crossValidate(est, ds, cfg, drawSeeds(cfg.rng(), cfg.cv), cfg.logger)
}

func checkDataset(ds *data.Dataset, op string) error {
	if ds == nil {
		return errors.Wrap(errors.ErrEmptyData, op)
	}
	if !ds.HasLabel() {
		return errors.NewValueError(op, "dataset has no label")
	}
	return nil
}

func crossValidate(est model.Estimator, ds *data.Dataset, cfg *config, seeds []int, logger log.Logger) (*ScoreRecord, error) {
	rec := &ScoreRecord{
		Seeds: seeds,
		Train: make([]float64, len(seeds)),
		Test:  make([]float64, len(seeds)),
	}
	start := time.Now()

	for fold, seed := range seeds {
		err := errors.SafeExecute("CrossValidate.fold", func() error {
			train, test, err := TrainTestSplit(ds, cfg.testSize, int64(seed))
			if err != nil {
				return err
			}
			if err := est.Fit(train); err != nil {
				return err
			}
			if rec.Train[fold], err = score(est, train, cfg.scoring); err != nil {
				return err
			}
			rec.Test[fold], err = score(est, test, cfg.scoring)
			return err
		})
		if err != nil {
			logger.Error("Fold failed", err,
				log.OperationKey, log.OperationCrossValidate,
				log.FoldKey, fold,
				log.RandomSeedKey, seed,
			)
			return nil, errors.Wrapf(err, "fold %d", fold)
		}
		logger.Debug("Fold finished",
			log.FoldKey, fold,
			log.RandomSeedKey, seed,
			log.TrainScoreKey, rec.Train[fold],
			log.TestScoreKey, rec.Test[fold],
		)
	}

	logger.Info("Cross-validation finished",
		log.OperationKey, log.OperationCrossValidate,
		log.FoldsKey, len(seeds),
		log.TestScoreKey, rec.MeanTest(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return rec, nil
}

func score(est model.Estimator, ds *data.Dataset, scoring ScoringFunc) (float64, error) {
	if scoring == nil {
		return est.Score(ds)
	}
	pred, err := est.Predict(ds)
	if err != nil {
		return 0, err
	}
	return scoring(ds.Y, pred)
}
