// Package nn implements the layers, activations and losses of a feed-forward
// classifier with hand-written backward passes.
//
// This package provides:
//   - Module interface: Forward/Backward capability shared by every stage
//   - Dense: affine layer Y = X·W + b with its three gradients
//   - Activations: ReLU, Softmax
//   - Losses: CategoricalCrossEntropy and the fused SoftmaxCrossEntropy
//   - Sequential: container chaining modules in order
//
// Every stage caches the tensors its backward pass needs. Reading a cache
// before the call that fills it returns ErrUnsetState.
package nn

import (
	"gonum.org/v1/gonum/mat"
)

// Module is the interface shared by Dense, ReLU and Softmax.
//
// The training loop calls Forward on each module in order, then Backward in
// reverse order with the gradient coming from the next stage.
type Module interface {
	// Forward computes the module output and caches what Backward needs.
	Forward(input *mat.Dense) (*mat.Dense, error)

	// Backward takes the gradient of the loss with respect to this module's
	// output and returns the gradient with respect to its input.
	//
	// Fails with ErrUnsetState when Forward has not been called.
	Backward(dvalues *mat.Dense) (*mat.Dense, error)
}
