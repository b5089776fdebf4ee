package nn

import (
	"github.com/born-ml/mlp/internal/tensor"
	"gonum.org/v1/gonum/mat"
)

const fusedName = "softmax_cross_entropy"

// SoftmaxCrossEntropy fuses a Softmax activation with CategoricalCrossEntropy.
//
// Gradient (Backward), with respect to the logits fed to Softmax:
//
//	∂L/∂logits = (Softmax(logits) − y_one_hot) / N
//
// This closed form skips the per-sample softmax Jacobian entirely. It is
// only correct when the loss sits directly on the softmax output; no
// separate Softmax.Backward call is made or needed.
//
// Usage:
//
//	head := nn.NewSoftmaxCrossEntropy()
//	loss, err := head.ForwardSparse(logits, labels)
//	probs, _ := head.Output()
//	dlogits, err := head.BackwardSparse(probs, labels)
type SoftmaxCrossEntropy struct {
	activation *Softmax
	loss       *CategoricalCrossEntropy

	output  slot[*mat.Dense]
	dInputs slot[*mat.Dense]
}

// NewSoftmaxCrossEntropy creates the fused unit.
func NewSoftmaxCrossEntropy() *SoftmaxCrossEntropy {
	return &SoftmaxCrossEntropy{
		activation: NewSoftmax(),
		loss:       NewCategoricalCrossEntropy(),
	}
}

// ForwardSparse runs Softmax on the logits and returns the mean loss for
// class-index labels.
func (f *SoftmaxCrossEntropy) ForwardSparse(logits *mat.Dense, yTrue []int) (float64, error) {
	probs, err := f.forward(logits)
	if err != nil {
		return 0, err
	}
	return f.loss.ForwardSparse(probs, yTrue)
}

// ForwardOneHot runs Softmax on the logits and returns the mean loss for
// one-hot labels.
func (f *SoftmaxCrossEntropy) ForwardOneHot(logits, yTrue *mat.Dense) (float64, error) {
	probs, err := f.forward(logits)
	if err != nil {
		return 0, err
	}
	return f.loss.ForwardOneHot(probs, yTrue)
}

func (f *SoftmaxCrossEntropy) forward(logits *mat.Dense) (*mat.Dense, error) {
	probs, err := f.activation.Forward(logits)
	if err != nil {
		return nil, err
	}
	f.output.put(probs)
	f.dInputs.clear()
	return probs, nil
}

// BackwardSparse computes the gradient with respect to the logits.
//
// dvalues must be the softmax output of the forward pass. It is copied,
// 1 is subtracted at each row's true class, and the result is divided by
// the sample count.
func (f *SoftmaxCrossEntropy) BackwardSparse(dvalues *mat.Dense, yTrue []int) (*mat.Dense, error) {
	rows, classes := dvalues.Dims()
	if err := tensor.CheckLabels("softmax_cross_entropy.backward", yTrue, rows, classes); err != nil {
		return nil, err
	}

	dInputs := mat.DenseCopyOf(dvalues)
	for i, class := range yTrue {
		dInputs.Set(i, class, dInputs.At(i, class)-1)
	}
	dInputs.Scale(1/float64(rows), dInputs)

	f.dInputs.put(dInputs)
	return dInputs, nil
}

// BackwardOneHot converts one-hot labels to class indices and delegates to
// BackwardSparse.
func (f *SoftmaxCrossEntropy) BackwardOneHot(dvalues, yTrue *mat.Dense) (*mat.Dense, error) {
	if err := tensor.SameShape("softmax_cross_entropy.backward", dvalues, yTrue); err != nil {
		return nil, err
	}
	sparse, err := tensor.Sparse(yTrue)
	if err != nil {
		return nil, err
	}
	return f.BackwardSparse(dvalues, sparse)
}

// Output returns the softmax probabilities of the last forward call.
func (f *SoftmaxCrossEntropy) Output() (*mat.Dense, error) {
	return f.output.get(fusedName, "outputs")
}

// DInputs returns the fused gradient of the last backward call.
func (f *SoftmaxCrossEntropy) DInputs() (*mat.Dense, error) {
	return f.dInputs.get(fusedName, "dinputs")
}
