package nn

import (
	"fmt"

	"github.com/born-ml/mlp/internal/tensor"
	"gonum.org/v1/gonum/mat"
)

const denseName = "dense"

// Dense implements a fully connected (affine) layer.
//
// Performs the transformation: Y = X·W + b
// where:
//   - X is the input with shape [samples, in_features]
//   - W is the weight matrix with shape [in_features, out_features]
//   - b is the bias vector with shape [out_features], broadcast over rows
//   - Y is the output with shape [samples, out_features]
//
// Backward computes dW = Xᵗ·dY, db = colsum(dY) and dX = dY·Wᵗ. Weights and
// bias are only ever mutated by an optimizer.
//
// Example:
//
//	rng := rand.New(rand.NewPCG(1, 2))
//	layer, err := nn.NewDense(2, 64, nn.RandomNormal(rng, nn.DefaultWeightScale))
//	output, err := layer.Forward(x)  // shape: [samples, 64]
type Dense struct {
	inFeatures  int
	outFeatures int
	weights     *mat.Dense
	bias        *mat.VecDense

	inputs   slot[*mat.Dense]
	output   slot[*mat.Dense]
	dWeights slot[*mat.Dense]
	dBias    slot[*mat.VecDense]
	dInputs  slot[*mat.Dense]

	acc *Accumulator
}

// NewDense creates a Dense layer with weights from init and a zero bias.
func NewDense(inFeatures, outFeatures int, init Initializer) (*Dense, error) {
	if inFeatures <= 0 || outFeatures <= 0 {
		return nil, fmt.Errorf("dense: dimensions must be positive, got input %d, output %d", inFeatures, outFeatures)
	}

	weights := init(inFeatures, outFeatures)
	if r, c := weights.Dims(); r != inFeatures || c != outFeatures {
		return nil, tensor.Mismatch("dense.init", tensor.Shape{inFeatures, outFeatures}, tensor.Shape{r, c})
	}

	return &Dense{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weights:     mat.DenseCopyOf(weights),
		bias:        mat.NewVecDense(outFeatures, nil),
	}, nil
}

// NewDenseFrom creates a Dense layer from explicit weights and bias.
//
// Both are copied; the layer never aliases caller memory.
func NewDenseFrom(weights *mat.Dense, bias *mat.VecDense) (*Dense, error) {
	in, out := weights.Dims()
	if bias.Len() != out {
		return nil, tensor.Mismatch("dense.new", tensor.Shape{out}, tensor.Shape{bias.Len()})
	}

	return &Dense{
		inFeatures:  in,
		outFeatures: out,
		weights:     mat.DenseCopyOf(weights),
		bias:        mat.VecDenseCopyOf(bias),
	}, nil
}

// Forward computes Y = X·W + b and caches X.
//
// Input shape: [samples, in_features]
// Output shape: [samples, out_features]
//
// A new forward pass discards the gradients of the previous one.
func (d *Dense) Forward(input *mat.Dense) (*mat.Dense, error) {
	rows, cols := input.Dims()
	if cols != d.inFeatures {
		return nil, tensor.Mismatch("dense.forward", tensor.Shape{rows, d.inFeatures}, tensor.Shape{rows, cols})
	}

	x := mat.DenseCopyOf(input)

	output := mat.NewDense(rows, d.outFeatures, nil)
	output.Mul(x, d.weights)
	tensor.AddRowVector(output, d.bias)

	d.inputs.put(x)
	d.output.put(output)
	d.dWeights.clear()
	d.dBias.clear()
	d.dInputs.clear()

	return output, nil
}

// Backward computes the three gradients from dvalues = ∂L/∂Y.
//
// Requires a prior Forward whose input had the same number of rows.
func (d *Dense) Backward(dvalues *mat.Dense) (*mat.Dense, error) {
	x, err := d.inputs.get(denseName, "inputs")
	if err != nil {
		return nil, err
	}

	samples, _ := x.Dims()
	if r, c := dvalues.Dims(); r != samples || c != d.outFeatures {
		return nil, tensor.Mismatch("dense.backward", tensor.Shape{samples, d.outFeatures}, tensor.Shape{r, c})
	}

	dWeights := mat.NewDense(d.inFeatures, d.outFeatures, nil)
	dWeights.Mul(x.T(), dvalues)

	dInputs := mat.NewDense(samples, d.inFeatures, nil)
	dInputs.Mul(dvalues, d.weights.T())

	d.dWeights.put(dWeights)
	d.dBias.put(tensor.ColSum(dvalues))
	d.dInputs.put(dInputs)

	return dInputs, nil
}

// Weights returns the live weight matrix [in_features, out_features].
func (d *Dense) Weights() *mat.Dense {
	return d.weights
}

// Bias returns the live bias vector [out_features].
func (d *Dense) Bias() *mat.VecDense {
	return d.bias
}

// InFeatures returns the number of input features.
func (d *Dense) InFeatures() int {
	return d.inFeatures
}

// OutFeatures returns the number of output features.
func (d *Dense) OutFeatures() int {
	return d.outFeatures
}

// Inputs returns the input cached by the last Forward.
func (d *Dense) Inputs() (*mat.Dense, error) {
	return d.inputs.get(denseName, "inputs")
}

// Output returns the result of the last Forward.
func (d *Dense) Output() (*mat.Dense, error) {
	return d.output.get(denseName, "outputs")
}

// DWeights returns ∂L/∂W from the last Backward.
func (d *Dense) DWeights() (*mat.Dense, error) {
	return d.dWeights.get(denseName, "dweights")
}

// DBias returns ∂L/∂b from the last Backward.
func (d *Dense) DBias() (*mat.VecDense, error) {
	return d.dBias.get(denseName, "dbias")
}

// DInputs returns ∂L/∂X from the last Backward.
func (d *Dense) DInputs() (*mat.Dense, error) {
	return d.dInputs.get(denseName, "dinputs")
}

// Gradients returns both parameter gradients, failing if either is unset.
func (d *Dense) Gradients() (*mat.Dense, *mat.VecDense, error) {
	dw, err := d.DWeights()
	if err != nil {
		return nil, nil, err
	}
	db, err := d.DBias()
	if err != nil {
		return nil, nil, err
	}
	return dw, db, nil
}

// Accumulator returns the optimizer state attached to this layer, or nil.
func (d *Dense) Accumulator() *Accumulator {
	return d.acc
}

// SetAccumulator attaches optimizer state to this layer.
func (d *Dense) SetAccumulator(acc *Accumulator) {
	d.acc = acc
}

// ResetAccumulator drops any optimizer state so a new run, possibly with a
// different optimizer variant, starts from zero.
func (d *Dense) ResetAccumulator() {
	d.acc = nil
}
