package nn

import (
	"math"

	"github.com/born-ml/mlp/internal/parallel"
	"github.com/born-ml/mlp/internal/tensor"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ReLU is a Rectified Linear Unit activation module.
//
// Applies the element-wise function: f(x) = max(0, x)
//
// Backward passes the upstream gradient through wherever the forward output
// was positive and zeroes it elsewhere, so the subgradient at x = 0 is 0.
type ReLU struct {
	inputs  slot[*mat.Dense]
	output  slot[*mat.Dense]
	dInputs slot[*mat.Dense]
}

// NewReLU creates a new ReLU activation module.
func NewReLU() *ReLU {
	return &ReLU{}
}

// Forward applies ReLU activation: f(x) = max(0, x).
func (r *ReLU) Forward(input *mat.Dense) (*mat.Dense, error) {
	x := mat.DenseCopyOf(input)
	out := mat.DenseCopyOf(input)
	data := tensor.Data(out)
	for i, v := range data {
		if v < 0 {
			data[i] = 0
		}
	}

	r.inputs.put(x)
	r.output.put(out)
	r.dInputs.clear()
	return out, nil
}

// Backward zeroes dvalues wherever the forward output was <= 0.
func (r *ReLU) Backward(dvalues *mat.Dense) (*mat.Dense, error) {
	out, err := r.output.get("relu", "outputs")
	if err != nil {
		return nil, err
	}
	if err := tensor.SameShape("relu.backward", out, dvalues); err != nil {
		return nil, err
	}

	dInputs := mat.DenseCopyOf(dvalues)
	grad := tensor.Data(dInputs)
	for i, v := range tensor.Data(out) {
		if v <= 0 {
			grad[i] = 0
		}
	}

	r.dInputs.put(dInputs)
	return dInputs, nil
}

// Inputs returns the input cached by the last Forward.
func (r *ReLU) Inputs() (*mat.Dense, error) { return r.inputs.get("relu", "inputs") }

// Output returns the result of the last Forward.
func (r *ReLU) Output() (*mat.Dense, error) { return r.output.get("relu", "outputs") }

// DInputs returns the gradient computed by the last Backward.
func (r *ReLU) DInputs() (*mat.Dense, error) { return r.dInputs.get("relu", "dinputs") }

// Softmax normalizes each row into a probability distribution.
//
// Forward subtracts the row maximum before exponentiating so large logits
// cannot overflow. Every output row sums to 1 and every entry is in (0, 1]
// (exactly 1 only when the other entries underflow).
//
// Backward is the standalone path: for each row s it builds the Jacobian
// J = diag(s) − s·sᵗ and returns J·dY_row. That costs O(classes²) per
// sample; pair Softmax with cross-entropy through SoftmaxCrossEntropy to
// avoid it.
type Softmax struct {
	cfg parallel.Config

	inputs  slot[*mat.Dense]
	output  slot[*mat.Dense]
	dInputs slot[*mat.Dense]
}

// NewSoftmax creates a Softmax that spreads large batches across CPUs.
func NewSoftmax() *Softmax {
	return &Softmax{cfg: parallel.DefaultConfig()}
}

// NewSoftmaxWithConfig creates a Softmax with explicit row parallelism.
func NewSoftmaxWithConfig(cfg parallel.Config) *Softmax {
	return &Softmax{cfg: cfg}
}

// Forward computes the row-wise softmax.
func (s *Softmax) Forward(input *mat.Dense) (*mat.Dense, error) {
	x := mat.DenseCopyOf(input)
	rows, cols := x.Dims()
	out := mat.NewDense(rows, cols, nil)

	parallel.For(rows, s.cfg, func(i int) {
		src := x.RawRowView(i)
		dst := out.RawRowView(i)
		maxv := floats.Max(src)
		for j, v := range src {
			dst[j] = math.Exp(v - maxv)
		}
		floats.Scale(1/floats.Sum(dst), dst)
	})

	s.inputs.put(x)
	s.output.put(out)
	s.dInputs.clear()
	return out, nil
}

// Backward multiplies each upstream gradient row by its softmax Jacobian.
func (s *Softmax) Backward(dvalues *mat.Dense) (*mat.Dense, error) {
	out, err := s.output.get("softmax", "outputs")
	if err != nil {
		return nil, err
	}
	if err := tensor.SameShape("softmax.backward", out, dvalues); err != nil {
		return nil, err
	}

	rows, cols := out.Dims()
	dInputs := mat.NewDense(rows, cols, nil)

	parallel.For(rows, s.cfg, func(i int) {
		sv := mat.NewVecDense(cols, out.RawRowView(i))
		dy := mat.NewVecDense(cols, dvalues.RawRowView(i))

		// J = diag(s) − s·sᵗ
		jacobian := mat.NewDense(cols, cols, nil)
		jacobian.Outer(-1, sv, sv)
		for j := 0; j < cols; j++ {
			jacobian.Set(j, j, jacobian.At(j, j)+sv.AtVec(j))
		}

		row := mat.NewVecDense(cols, dInputs.RawRowView(i))
		row.MulVec(jacobian, dy)
	})

	s.dInputs.put(dInputs)
	return dInputs, nil
}

// Inputs returns the input cached by the last Forward.
func (s *Softmax) Inputs() (*mat.Dense, error) { return s.inputs.get("softmax", "inputs") }

// Output returns the probabilities computed by the last Forward.
func (s *Softmax) Output() (*mat.Dense, error) { return s.output.get("softmax", "outputs") }

// DInputs returns the gradient computed by the last Backward.
func (s *Softmax) DInputs() (*mat.Dense, error) { return s.dInputs.get("softmax", "dinputs") }
