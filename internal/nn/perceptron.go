package nn

import (
	"github.com/born-ml/mlp/internal/tensor"
	"gonum.org/v1/gonum/floats"
)

// Perceptron is a single neuron with a linear response: w·x + b.
//
// It has no activation and no training rule; it exists to show the weighted
// sum that Dense computes for every neuron at once.
type Perceptron struct {
	Weights []float64
	Bias    float64
}

// NewPerceptron creates a neuron with the given weights and bias.
func NewPerceptron(weights []float64, bias float64) *Perceptron {
	w := make([]float64, len(weights))
	copy(w, weights)
	return &Perceptron{Weights: w, Bias: bias}
}

// Activate returns w·x + b.
func (p *Perceptron) Activate(inputs []float64) (float64, error) {
	if len(inputs) != len(p.Weights) {
		return 0, tensor.Mismatch("perceptron.activate", tensor.Shape{len(p.Weights)}, tensor.Shape{len(inputs)})
	}
	return floats.Dot(p.Weights, inputs) + p.Bias, nil
}
