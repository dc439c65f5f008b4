// Package feature_extraction はシーケンスから数値特徴量を作る記述子を提供します。
package feature_extraction

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/sigo/core/data"
	"github.com/YuminosukeSato/sigo/core/model"
	"github.com/YuminosukeSato/sigo/core/parallel"
	"github.com/YuminosukeSato/sigo/pkg/errors"
)

// シーケンスのアルファベット
const (
	AlphabetDNA     = "dna"
	AlphabetProtein = "protein"

	dnaSymbols     = "ATCG"
	proteinSymbols = "ACDEFGHIKLMNPQRSTVWY"
)

// parallelThreshold を超える本数のシーケンスではTransformが複数CPUに分散します。
const parallelThreshold = 512

// KMer は各シーケンスのk-mer組成を返す記述子です。
// アルファベット上のすべてのk-merについて、出現回数をシーケンス長で割った値を返します。
type KMer struct {
	state    *model.StateManager
	k        int
	alphabet string
	symbols  string

	kmers []string
	index map[string]int
}

// KMerOption はKMerの関数オプションです
type KMerOption func(*KMer)

// WithK はk-merの長さを設定します（デフォルト: 2）
func WithK(k int) KMerOption {
	return func(km *KMer) {
		km.k = k
	}
}

// WithAlphabet は "dna"（デフォルト）か "protein" を選択します。
func WithAlphabet(alphabet string) KMerOption {
	return func(km *KMer) {
		km.alphabet = strings.ToLower(alphabet)
	}
}

// NewKMer は新しいKMer記述子を作成します。不正な設定はFitが報告します。
//
//	km := feature_extraction.NewKMer(feature_extraction.WithK(3))
//	ds, err := km.FitTransform(sequences)
func NewKMer(opts ...KMerOption) *KMer {
	km := &KMer{
		state:    model.NewStateManager(),
		k:        2,
		alphabet: AlphabetDNA,
	}
	for _, opt := range opts {
		opt(km)
	}
	return km
}

// Fit はアルファベット上のすべてのk-merを記号の直積順に列挙します。
// シーケンス自体は参照しません。
func (km *KMer) Fit(_ *data.SequenceSet) error {
	km.state.Reset()
	switch km.alphabet {
	case AlphabetDNA:
		km.symbols = dnaSymbols
	case AlphabetProtein:
		km.symbols = proteinSymbols
	default:
		return errors.NewValidationError("alphabet", "choose a valid sequence type (dna or protein)", km.alphabet)
	}
	if km.k < 1 {
		return errors.NewValidationError("k", "must be at least 1", km.k)
	}

	km.kmers = product(km.symbols, km.k)
	km.index = make(map[string]int, len(km.kmers))
	for i, s := range km.kmers {
		km.index[s] = i
	}
	km.state.SetDimensions(len(km.kmers), 0)
	km.state.SetFitted()
	return nil
}

// product は symbols 上の長さ k の全文字列を返す。最後の位置が最も速く変化する
func product(symbols string, k int) []string {
	out := []string{""}
	for pos := 0; pos < k; pos++ {
		next := make([]string, 0, len(out)*len(symbols))
		for _, prefix := range out {
			for _, s := range symbols {
				next = append(next, prefix+string(s))
			}
		}
		out = next
	}
	return out
}

// composition は seq の正規化したk-mer出現数を row に書き込む
func (km *KMer) composition(row []float64, seq string) error {
	if len(seq) == 0 {
		return errors.NewValueError("KMer.Transform", "empty sequence")
	}
	for i := 0; i+km.k <= len(seq); i++ {
		j, ok := km.index[seq[i:i+km.k]]
		if !ok {
			return errors.NewValueError("KMer.Transform",
				fmt.Sprintf("k-mer %q at position %d is not in the %s alphabet", seq[i:i+km.k], i, km.alphabet))
		}
		row[j]++
	}
	n := float64(len(seq))
	for j := range row {
		row[j] /= n
	}
	return nil
}

// Transform は各シーケンスをk-mer組成に変換します。
// 結果の特徴量名はk-mer、ラベルは seqs のものです。
func (km *KMer) Transform(seqs *data.SequenceSet) (*data.Dataset, error) {
	if err := km.state.RequireFitted("KMer", "Transform"); err != nil {
		return nil, err
	}
	if seqs == nil || seqs.Len() == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "KMer.Transform")
	}

	n := seqs.Len()
	X := mat.NewDense(n, len(km.kmers), nil)
	errs := make([]error, n)
	parallel.ParallelizeWithThreshold(n, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			errs[i] = km.composition(X.RawRowView(i), strings.ToUpper(seqs.Sequences[i]))
		}
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return data.New(X, seqs.Y, km.KMers(), seqs.Label)
}

// FitTransform はFitとTransformを同時に実行する
func (km *KMer) FitTransform(seqs *data.SequenceSet) (*data.Dataset, error) {
	if err := km.Fit(seqs); err != nil {
		return nil, err
	}
	return km.Transform(seqs)
}

// KMers は学習済みのk-merを特徴量の順に返します。
func (km *KMer) KMers() []string {
	return append([]string(nil), km.kmers...)
}

// K はk-merの長さを返します。
func (km *KMer) K() int {
	return km.k
}

// Alphabet は設定されたアルファベット名を返します。
func (km *KMer) Alphabet() string {
	return km.alphabet
}
