// Package train wires layers, the fused softmax/cross-entropy head and an
// optimizer into a classifier training loop.
package train

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/mlp/internal/nn"
)

// Classifier is a two-layer perceptron for sparse-labeled data.
//
// Architecture:
//   - Dense: features → hidden
//   - ReLU
//   - Dense: hidden → classes (logits)
//   - Softmax + categorical cross-entropy, fused
type Classifier struct {
	body *nn.Sequential
	head *nn.SoftmaxCrossEntropy
}

// NewClassifier creates a classifier whose Dense weights come from init.
func NewClassifier(features, hidden, classes int, init nn.Initializer) (*Classifier, error) {
	fc1, err := nn.NewDense(features, hidden, init)
	if err != nil {
		return nil, fmt.Errorf("hidden layer: %w", err)
	}
	fc2, err := nn.NewDense(hidden, classes, init)
	if err != nil {
		return nil, fmt.Errorf("output layer: %w", err)
	}

	return &Classifier{
		body: nn.NewSequential(fc1, nn.NewReLU(), fc2),
		head: nn.NewSoftmaxCrossEntropy(),
	}, nil
}

// Forward returns the mean loss and the class probabilities for x.
func (c *Classifier) Forward(x *mat.Dense, labels []int) (float64, *mat.Dense, error) {
	logits, err := c.body.Forward(x)
	if err != nil {
		return 0, nil, err
	}
	loss, err := c.head.ForwardSparse(logits, labels)
	if err != nil {
		return 0, nil, err
	}
	probs, err := c.head.Output()
	if err != nil {
		return 0, nil, err
	}
	return loss, probs, nil
}

// Backward propagates the loss gradient of the last Forward back through
// every layer, leaving parameter gradients on each Dense.
func (c *Classifier) Backward(labels []int) error {
	probs, err := c.head.Output()
	if err != nil {
		return err
	}
	dLogits, err := c.head.BackwardSparse(probs, labels)
	if err != nil {
		return err
	}
	_, err = c.body.Backward(dLogits)
	return err
}

// Predict returns the predicted class of each row of x. Softmax preserves
// the order of the logits, so the head is skipped.
func (c *Classifier) Predict(x *mat.Dense) ([]int, error) {
	logits, err := c.body.Forward(x)
	if err != nil {
		return nil, err
	}
	return nn.Predictions(logits), nil
}

// Layers returns the trainable layers in forward order.
func (c *Classifier) Layers() []*nn.Dense {
	return c.body.Layers()
}

// String describes the architecture.
func (c *Classifier) String() string {
	layers := c.Layers()
	return fmt.Sprintf("Dense(%d→%d) → ReLU → Dense(%d→%d) → Softmax+CCE",
		layers[0].InFeatures(), layers[0].OutFeatures(),
		layers[1].InFeatures(), layers[1].OutFeatures())
}

// NumParameters counts weights and biases.
func (c *Classifier) NumParameters() int {
	n := 0
	for _, l := range c.Layers() {
		n += l.InFeatures()*l.OutFeatures() + l.OutFeatures()
	}
	return n
}
