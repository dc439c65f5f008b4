package model_selection

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"gonum.org/v1/gonum/stat"
)

// ScoreRecord は1回の交差検証のフォールドごとの結果を保持します。
// Seeds、Train、Test はフォールド順に対応します。Parameters はGridSearchが
// 作ったレコードにのみ設定されます。
type ScoreRecord struct {
	Seeds      []int              `json:"seeds"`
	Train      []float64          `json:"train"`
	Test       []float64          `json:"test"`
	Parameters map[string]float64 `json:"parameters,omitempty"`
}

// MeanTest はテストスコアのフォールド平均を返します。
func (r *ScoreRecord) MeanTest() float64 {
	return stat.Mean(r.Test, nil)
}

// MeanTrain は訓練スコアのフォールド平均を返します。
func (r *ScoreRecord) MeanTrain() float64 {
	return stat.Mean(r.Train, nil)
}

// StdTest はテストスコアの標本標準偏差を返します。
// フォールドが1つの場合は0です。
func (r *ScoreRecord) StdTest() float64 {
	if len(r.Test) < 2 {
		return 0
	}
	return stat.StdDev(r.Test, nil)
}

// GridSearchResult はグリッド点ごとのレコードを直積の順に保持します。
type GridSearchResult struct {
	ParamNames []string
	Records    []ScoreRecord
}

// Best は平均テストスコアが最大のレコードを返します。同点なら先のグリッド点を
// 優先し、レコードが無ければ ok は false です。
func (g *GridSearchResult) Best() (best ScoreRecord, ok bool) {
	for i, r := range g.Records {
		if i == 0 || r.MeanTest() > best.MeanTest() {
			best = r
			ok = true
		}
	}
	return best, ok
}

// String はグリッド点ごとに1行の表を描画します。
func (g *GridSearchResult) String() string {
	names := g.ParamNames
	if names == nil && len(g.Records) > 0 {
		for name := range g.Records[0].Parameters {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	t := table.NewWriter()
	header := table.Row{"#"}
	for _, name := range names {
		header = append(header, name)
	}
	header = append(header, "mean_train", "mean_test", "std_test")
	t.AppendHeader(header)

	for i, r := range g.Records {
		row := table.Row{i}
		for _, name := range names {
			row = append(row, fmt.Sprintf("%g", r.Parameters[name]))
		}
		row = append(row,
			fmt.Sprintf("%.4f", r.MeanTrain()),
			fmt.Sprintf("%.4f", r.MeanTest()),
			fmt.Sprintf("%.4f", r.StdTest()),
		)
		t.AppendRow(row)
	}
	return t.Render()
}
