package nn

import (
	"math"

	"github.com/born-ml/mlp/internal/tensor"
	"gonum.org/v1/gonum/mat"
)

// ClipEpsilon bounds predicted probabilities to [ClipEpsilon, 1-ClipEpsilon]
// before the logarithm, so the loss never sees ln(0) and a confident correct
// prediction never yields a negative loss.
const ClipEpsilon = 1e-7

const cceName = "categorical_cross_entropy"

// CategoricalCrossEntropy computes the mean negative log-likelihood of the
// true class over a batch of probability rows.
//
// Mathematical Formulation:
//
//	Loss = mean_i −ln(clip(ŷ[i, y_i]))
//
// Gradient (Backward), with respect to the probabilities ŷ:
//
//	∂L/∂ŷ = (−y_one_hot / ŷ) / N
//
// Labels are accepted either as sparse class indices or as one-hot rows;
// both forms give identical results.
type CategoricalCrossEntropy struct {
	dInputs slot[*mat.Dense]
}

// NewCategoricalCrossEntropy creates a new cross-entropy loss.
func NewCategoricalCrossEntropy() *CategoricalCrossEntropy {
	return &CategoricalCrossEntropy{}
}

// ForwardSparse returns the mean loss for class-index labels.
//
// Parameters:
//   - yPred: probabilities with shape [samples, classes]
//   - yTrue: one class index per sample, each in [0, classes)
func (c *CategoricalCrossEntropy) ForwardSparse(yPred *mat.Dense, yTrue []int) (float64, error) {
	rows, classes := yPred.Dims()
	if err := tensor.CheckLabels("categorical_cross_entropy.forward", yTrue, rows, classes); err != nil {
		return 0, err
	}

	var total float64
	for i, class := range yTrue {
		total -= math.Log(clipProbability(yPred.At(i, class)))
	}
	return total / float64(rows), nil
}

// ForwardOneHot returns the mean loss for one-hot labels.
func (c *CategoricalCrossEntropy) ForwardOneHot(yPred, yTrue *mat.Dense) (float64, error) {
	if err := tensor.SameShape("categorical_cross_entropy.forward", yPred, yTrue); err != nil {
		return 0, err
	}
	sparse, err := tensor.Sparse(yTrue)
	if err != nil {
		return 0, err
	}
	return c.ForwardSparse(yPred, sparse)
}

// BackwardOneHot computes (−y/ŷ)/N.
//
// dvalues are the probabilities that were fed to the forward pass. They are
// clipped to the forward bounds before dividing.
func (c *CategoricalCrossEntropy) BackwardOneHot(dvalues, yTrue *mat.Dense) (*mat.Dense, error) {
	if err := tensor.SameShape("categorical_cross_entropy.backward", dvalues, yTrue); err != nil {
		return nil, err
	}

	samples, _ := dvalues.Dims()
	dInputs := tensor.Clip(dvalues, ClipEpsilon, 1-ClipEpsilon)
	data := tensor.Data(dInputs)
	truth := mat.DenseCopyOf(yTrue)
	for i, y := range tensor.Data(truth) {
		data[i] = -y / data[i] / float64(samples)
	}

	c.dInputs.put(dInputs)
	return dInputs, nil
}

// BackwardSparse converts the labels to one-hot rows and delegates to
// BackwardOneHot.
func (c *CategoricalCrossEntropy) BackwardSparse(dvalues *mat.Dense, yTrue []int) (*mat.Dense, error) {
	rows, classes := dvalues.Dims()
	if err := tensor.CheckLabels("categorical_cross_entropy.backward", yTrue, rows, classes); err != nil {
		return nil, err
	}
	oneHot, err := tensor.OneHot(yTrue, classes)
	if err != nil {
		return nil, err
	}
	return c.BackwardOneHot(dvalues, oneHot)
}

// DInputs returns the gradient computed by the last backward call.
func (c *CategoricalCrossEntropy) DInputs() (*mat.Dense, error) {
	return c.dInputs.get(cceName, "dinputs")
}

func clipProbability(p float64) float64 {
	return math.Min(math.Max(p, ClipEpsilon), 1-ClipEpsilon)
}
