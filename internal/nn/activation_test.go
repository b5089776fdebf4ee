package nn

import (
	"testing"

	"github.com/born-ml/mlp/internal/parallel"
	"github.com/born-ml/mlp/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// TestReLUForward tests ReLU forward pass.
func TestReLUForward(t *testing.T) {
	relu := NewReLU()
	x := mat.NewDense(2, 3, []float64{-2, -0.5, 0, 0.5, 2, -1})

	out, err := relu.Forward(x)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0, 0, 0.5, 2, 0}, tensor.Data(out))
	// input is cached untouched
	in, err := relu.Inputs()
	require.NoError(t, err)
	assert.Equal(t, -2.0, in.At(0, 0))
}

// TestReLUBackward_ZeroAtOrigin checks that the gradient is masked wherever
// the output was <= 0, including x = 0 exactly.
func TestReLUBackward_ZeroAtOrigin(t *testing.T) {
	relu := NewReLU()
	_, err := relu.Forward(mat.NewDense(1, 4, []float64{-1, 0, 1e-12, 3}))
	require.NoError(t, err)

	dX, err := relu.Backward(mat.NewDense(1, 4, []float64{5, 6, 7, 8}))
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0, 7, 8}, tensor.Data(dX))

	cached, err := relu.DInputs()
	require.NoError(t, err)
	assert.True(t, mat.Equal(dX, cached))
}

func TestReLU_UnsetState(t *testing.T) {
	relu := NewReLU()

	_, err := relu.Backward(mat.NewDense(1, 1, nil))
	assert.ErrorIs(t, err, ErrUnsetState)

	_, err = relu.Output()
	assert.ErrorIs(t, err, ErrUnsetState)
	_, err = relu.DInputs()
	assert.ErrorIs(t, err, ErrUnsetState)

	_, err = relu.Forward(mat.NewDense(1, 2, nil))
	require.NoError(t, err)
	_, err = relu.Backward(mat.NewDense(2, 2, nil))
	assert.ErrorIs(t, err, tensor.ErrDimensionMismatch)
}

// TestSoftmaxForward_Uniform checks softmax([1, 1, 1]) = [1/3, 1/3, 1/3].
func TestSoftmaxForward_Uniform(t *testing.T) {
	sm := NewSoftmax()

	out, err := sm.Forward(mat.NewDense(1, 3, []float64{1, 1, 1}))
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, tensor.Data(out), 1e-15)
}

// TestSoftmaxForward_RowsAreDistributions checks that every row sums to one
// and every entry lies in (0, 1), including rows far from zero.
func TestSoftmaxForward_RowsAreDistributions(t *testing.T) {
	rng := newRNG()
	x := randomDense(rng, 200, 5)
	x.Scale(3, x)
	x.SetRow(0, []float64{50, 49, -50, 0, 1})
	x.SetRow(1, []float64{-700, -701, -702, -703, -704})

	sm := NewSoftmax()
	out, err := sm.Forward(x)
	require.NoError(t, err)

	rows, _ := out.Dims()
	for i := 0; i < rows; i++ {
		row := out.RawRowView(i)
		assert.InDelta(t, 1.0, floats.Sum(row), 1e-9, "row %d", i)
		for j, p := range row {
			assert.Greater(t, p, 0.0, "row %d col %d", i, j)
			assert.Less(t, p, 1.0, "row %d col %d", i, j)
		}
	}
}

// TestSoftmax_ParallelMatchesSequential checks that row parallelism does not
// change any result bit.
func TestSoftmax_ParallelMatchesSequential(t *testing.T) {
	rng := newRNG()
	x := randomDense(rng, 300, 4)
	dY := randomDense(rng, 300, 4)

	seq := NewSoftmaxWithConfig(parallel.Sequential())
	par := NewSoftmaxWithConfig(parallel.Config{Enabled: true, Workers: 4, MinRows: 8})

	outSeq, err := seq.Forward(x)
	require.NoError(t, err)
	outPar, err := par.Forward(x)
	require.NoError(t, err)
	assert.True(t, mat.Equal(outSeq, outPar))

	dSeq, err := seq.Backward(dY)
	require.NoError(t, err)
	dPar, err := par.Backward(dY)
	require.NoError(t, err)
	assert.True(t, mat.Equal(dSeq, dPar))
}

// TestSoftmaxBackward_Jacobian compares the per-row Jacobian product with a
// finite-difference Jacobian of the forward pass.
func TestSoftmaxBackward_Jacobian(t *testing.T) {
	rng := newRNG()
	const classes = 4
	x := randomDense(rng, 3, classes)
	dY := randomDense(rng, 3, classes)

	sm := NewSoftmax()
	_, err := sm.Forward(x)
	require.NoError(t, err)
	dX, err := sm.Backward(dY)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		jac := mat.NewDense(classes, classes, nil)
		fd.Jacobian(jac, func(y, logits []float64) {
			probe := NewSoftmax()
			out, err := probe.Forward(mat.NewDense(1, classes, logits))
			require.NoError(t, err)
			copy(y, out.RawRowView(0))
		}, floats.ScaleTo(make([]float64, classes), 1, x.RawRowView(i)), &fd.JacobianSettings{
			Formula: fd.Central,
		})

		// dX_row = Jᵗ·dY_row (the softmax Jacobian is symmetric)
		var want mat.VecDense
		want.MulVec(jac.T(), mat.NewVecDense(classes, dY.RawRowView(i)))

		assert.InDeltaSlice(t, tensor.VecData(&want), dX.RawRowView(i), 1e-6, "row %d", i)
	}
}

func TestSoftmax_UnsetState(t *testing.T) {
	sm := NewSoftmax()

	_, err := sm.Backward(mat.NewDense(1, 3, nil))
	var stateErr *StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "softmax", stateErr.Component)

	_, err = sm.Forward(mat.NewDense(2, 3, nil))
	require.NoError(t, err)
	_, err = sm.Backward(mat.NewDense(2, 2, nil))
	assert.ErrorIs(t, err, tensor.ErrDimensionMismatch)
}
