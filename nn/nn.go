// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/parallel"
)

// Module interface defines the common interface for all neural network modules.
type Module = nn.Module

// Layers

// Dense represents a fully connected layer computing X·W + b.
type Dense = nn.Dense

// NewDense creates a new dense layer with weights drawn from init and zero bias.
//
// Example:
//
//	rng := rand.New(rand.NewPCG(1, 2))
//	layer, err := nn.NewDense(2, 64, nn.RandomNormal(rng, nn.DefaultWeightScale))
func NewDense(inFeatures, outFeatures int, init Initializer) (*Dense, error) {
	return nn.NewDense(inFeatures, outFeatures, init)
}

// NewDenseFrom creates a dense layer from copies of the given parameters.
func NewDenseFrom(weights *mat.Dense, bias *mat.VecDense) (*Dense, error) {
	return nn.NewDenseFrom(weights, bias)
}

// Accumulator holds the optimizer state attached to a Dense layer.
type Accumulator = nn.Accumulator

// Activations

// ReLU represents the Rectified Linear Unit activation.
type ReLU = nn.ReLU

// NewReLU creates a new ReLU activation.
func NewReLU() *ReLU {
	return nn.NewReLU()
}

// Softmax represents the row-wise, max-shifted softmax activation.
type Softmax = nn.Softmax

// NewSoftmax creates a softmax that splits large batches across CPUs.
func NewSoftmax() *Softmax {
	return nn.NewSoftmax()
}

// NewSequentialSoftmax creates a softmax that never spawns goroutines.
func NewSequentialSoftmax() *Softmax {
	return nn.NewSoftmaxWithConfig(parallel.Sequential())
}

// Loss Functions

// ClipEpsilon bounds probabilities to [ClipEpsilon, 1-ClipEpsilon] before
// logarithms and divisions.
const ClipEpsilon = nn.ClipEpsilon

// CategoricalCrossEntropy represents the mean negative log-likelihood loss.
type CategoricalCrossEntropy = nn.CategoricalCrossEntropy

// NewCategoricalCrossEntropy creates a new categorical cross-entropy loss.
func NewCategoricalCrossEntropy() *CategoricalCrossEntropy {
	return nn.NewCategoricalCrossEntropy()
}

// SoftmaxCrossEntropy represents softmax and cross-entropy fused into one
// unit with the shortcut gradient (p - y) / N.
type SoftmaxCrossEntropy = nn.SoftmaxCrossEntropy

// NewSoftmaxCrossEntropy creates a new fused softmax/cross-entropy head.
//
// Example:
//
//	head := nn.NewSoftmaxCrossEntropy()
//	loss, err := head.ForwardSparse(logits, labels)
//	probs, _ := head.Output()
//	dLogits, err := head.BackwardSparse(probs, labels)
func NewSoftmaxCrossEntropy() *SoftmaxCrossEntropy {
	return nn.NewSoftmaxCrossEntropy()
}

// Containers

// Sequential represents a sequential container of modules.
type Sequential = nn.Sequential

// NewSequential creates a new sequential container.
func NewSequential(modules ...Module) *Sequential {
	return nn.NewSequential(modules...)
}

// Initialization

// Initializer produces a rows × cols weight matrix.
type Initializer = nn.Initializer

// DefaultWeightScale is the standard deviation multiplier of RandomNormal.
const DefaultWeightScale = nn.DefaultWeightScale

// RandomNormal returns an initializer drawing scale·N(0, 1).
func RandomNormal(rng *rand.Rand, scale float64) Initializer {
	return nn.RandomNormal(rng, scale)
}

// Xavier returns a Xavier/Glorot uniform initializer.
func Xavier(rng *rand.Rand) Initializer {
	return nn.Xavier(rng)
}

// Metrics

// Predictions returns the argmax column of each row; ties go to the lowest index.
func Predictions(yPred *mat.Dense) []int {
	return nn.Predictions(yPred)
}

// Accuracy returns the fraction of rows whose prediction matches yTrue.
func Accuracy(yPred *mat.Dense, yTrue []int) (float64, error) {
	return nn.Accuracy(yPred, yTrue)
}

// AccuracyOneHot is Accuracy for one-hot labels.
func AccuracyOneHot(yPred, yTrue *mat.Dense) (float64, error) {
	return nn.AccuracyOneHot(yPred, yTrue)
}

// Errors

// ErrUnsetState is returned when cached state is read before the call that
// produces it.
var ErrUnsetState = nn.ErrUnsetState

// StateError names the component and slot that were read while unset.
type StateError = nn.StateError

// Perceptron is a single neuron computing w·x + b.
type Perceptron = nn.Perceptron

// NewPerceptron creates a perceptron from copies of weights and bias.
func NewPerceptron(weights []float64, bias float64) *Perceptron {
	return nn.NewPerceptron(weights, bias)
}
