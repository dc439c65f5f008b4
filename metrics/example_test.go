package metrics_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/sigo/metrics"
)

func ExampleAccuracy() {
	yTrue := mat.NewVecDense(5, []float64{0, 1, 1, 0, 1})
	yPred := mat.NewVecDense(5, []float64{0, 1, 0, 0, 1})

	acc, err := metrics.Accuracy(yTrue, yPred)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("accuracy: %.2f\n", acc)
	// Output: accuracy: 0.80
}
