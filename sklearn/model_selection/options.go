package model_selection

import (
	"math/rand/v2"
	"runtime"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/sigo/pkg/errors"
	"github.com/YuminosukeSato/sigo/pkg/log"
)

// DefaultCV はフォールド数未指定時の既定値です。
const DefaultCV = 3

// maxFoldSeed はフォールドごとの分割シードの上限 [0, maxFoldSeed) です。
const maxFoldSeed = 1000

// ScoringFunc は予測ラベルを正解ラベルと比較して評価します。
// metrics.Accuracy はこの型を満たします。
type ScoringFunc func(yTrue, yPred *mat.VecDense) (float64, error)

type config struct {
	scoring     ScoringFunc
	cv          int
	testSize    float64
	randomState *uint64
	nJobs       int
	logger      log.Logger
}

// Option はCrossValidateとGridSearchの設定を行う関数オプションです。
type Option func(*config)

// WithScoring は推定器自身のScoreの代わりに、正解ラベルと予測に fn を
// 適用して評価します。
func WithScoring(fn ScoringFunc) Option {
	return func(c *config) {
		c.scoring = fn
	}
}

// WithCV はフォールド数を設定します（デフォルト: 3）
func WithCV(cv int) Option {
	return func(c *config) {
		c.cv = cv
	}
}

// WithTestSize は各フォールドのテストサイズを設定します（デフォルト: 0.2）
func WithTestSize(testSize float64) Option {
	return func(c *config) {
		c.testSize = testSize
	}
}

// WithRandomState はフォールドごとのシードを引く乱数生成器を固定します。
// 指定しない場合は呼び出しごとに異なるシードになります。
func WithRandomState(seed uint64) Option {
	return func(c *config) {
		c.randomState = &seed
	}
}

// WithNJobs はGridSearchが同時に評価するグリッド点の数を設定します。
// 1（デフォルト）は逐次実行、n <= 0 は全CPUを使います。
func WithNJobs(n int) Option {
	return func(c *config) {
		c.nJobs = n
	}
}

// WithLogger はフォールドとグリッドの進捗を出力するロガーを設定します。
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func newConfig(opts []Option) (*config, error) {
	c := &config{
		cv:       DefaultCV,
		testSize: DefaultTestSize,
		nJobs:    1,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cv < 1 {
		return nil, errors.NewValidationError("cv", "must be at least 1", c.cv)
	}
	if c.testSize <= 0 || c.testSize >= 1 {
		return nil, errors.NewValidationError("test_size", "must be in (0, 1)", c.testSize)
	}
	if c.nJobs <= 0 {
		c.nJobs = runtime.NumCPU()
	}
	if c.logger == nil {
		c.logger = log.GetLoggerWithName("model_selection")
	}
	return c, nil
}

func (c *config) rng() *rand.Rand {
	if c.randomState != nil {
		return rand.New(rand.NewPCG(*c.randomState, *c.randomState))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// drawSeeds は [0, 1000) の分割シードを n 個引く
func drawSeeds(rng *rand.Rand, n int) []int {
	seeds := make([]int, n)
	for i := range seeds {
		seeds[i] = rng.IntN(maxFoldSeed)
	}
	return seeds
}
