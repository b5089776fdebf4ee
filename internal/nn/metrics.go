package nn

import (
	"github.com/born-ml/mlp/internal/tensor"
	"gonum.org/v1/gonum/mat"
)

// Predictions returns the predicted class of every row.
//
// When several entries tie for the row maximum, the lowest column index
// wins.
func Predictions(yPred *mat.Dense) []int {
	return tensor.ArgMaxRows(yPred)
}

// Accuracy returns the fraction of rows whose predicted class equals the
// label. Ties are broken as in Predictions.
func Accuracy(yPred *mat.Dense, yTrue []int) (float64, error) {
	rows, classes := yPred.Dims()
	if err := tensor.CheckLabels("accuracy", yTrue, rows, classes); err != nil {
		return 0, err
	}

	correct := 0
	for i, p := range Predictions(yPred) {
		if p == yTrue[i] {
			correct++
		}
	}
	return float64(correct) / float64(rows), nil
}

// AccuracyOneHot is Accuracy for one-hot labels.
func AccuracyOneHot(yPred, yTrue *mat.Dense) (float64, error) {
	if err := tensor.SameShape("accuracy", yPred, yTrue); err != nil {
		return 0, err
	}
	sparse, err := tensor.Sparse(yTrue)
	if err != nil {
		return 0, err
	}
	return Accuracy(yPred, sparse)
}
