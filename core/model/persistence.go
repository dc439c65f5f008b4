package model

import (
	"io"
	"os"

	"github.com/YuminosukeSato/sigo/pkg/errors"
)

// SaveWeights はモデルの重みをJSONファイルに保存する
//
// 使用例:
//
//	w, err := lr.ExportWeights()
//	err = model.SaveWeights(w, "model.json")
func SaveWeights(w *ModelWeights, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	if err := WriteWeights(w, file); err != nil {
		file.Close()
		return err
	}
	return errors.Wrap(file.Close(), "failed to close file")
}

// LoadWeights はJSONファイルからモデルの重みを読み込み、検証する
//
//	w, err := model.LoadWeights("model.json")
//	err = lr.ImportWeights(w)
func LoadWeights(filename string) (*ModelWeights, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()
	return ReadWeights(file)
}

// WriteWeights はモデルの重みをio.Writerに書き込む
func WriteWeights(w *ModelWeights, dst io.Writer) error {
	if err := w.Validate(); err != nil {
		return err
	}
	b, err := w.ToJSON()
	if err != nil {
		return err
	}
	_, err = dst.Write(append(b, '\n'))
	return errors.Wrap(err, "failed to write weights")
}

// ReadWeights はio.Readerからモデルの重みを読み込む
func ReadWeights(src io.Reader) (*ModelWeights, error) {
	b, err := io.ReadAll(src)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read weights")
	}
	w := &ModelWeights{}
	if err := w.FromJSON(b); err != nil {
		return nil, err
	}
	return w, nil
}
