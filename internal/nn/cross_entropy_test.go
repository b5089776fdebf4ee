package nn

import (
	"testing"

	"github.com/born-ml/mlp/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// TestSoftmaxCrossEntropy_MatchesUnfused checks that the fused gradient
// equals CCE.Backward chained through Softmax.Backward.
func TestSoftmaxCrossEntropy_MatchesUnfused(t *testing.T) {
	rng := newRNG()
	logits := randomDense(rng, 10, 3)
	labels := []int{0, 2, 1, 1, 0, 2, 2, 0, 1, 0}

	fused := NewSoftmaxCrossEntropy()
	fusedLoss, err := fused.ForwardSparse(logits, labels)
	require.NoError(t, err)
	probs, err := fused.Output()
	require.NoError(t, err)
	fusedGrad, err := fused.BackwardSparse(probs, labels)
	require.NoError(t, err)

	sm := NewSoftmax()
	cce := NewCategoricalCrossEntropy()
	unfusedProbs, err := sm.Forward(logits)
	require.NoError(t, err)
	unfusedLoss, err := cce.ForwardSparse(unfusedProbs, labels)
	require.NoError(t, err)
	dProbs, err := cce.BackwardSparse(unfusedProbs, labels)
	require.NoError(t, err)
	unfusedGrad, err := sm.Backward(dProbs)
	require.NoError(t, err)

	assert.Equal(t, unfusedLoss, fusedLoss)
	assert.InDeltaSlice(t, tensor.Data(unfusedGrad), tensor.Data(fusedGrad), 1e-6)
}

func TestSoftmaxCrossEntropy_BackwardSparse(t *testing.T) {
	fused := NewSoftmaxCrossEntropy()
	probs := mat.NewDense(2, 3, []float64{
		0.7, 0.2, 0.1,
		0.1, 0.5, 0.4,
	})

	d, err := fused.BackwardSparse(probs, []int{0, 2})
	require.NoError(t, err)

	want := []float64{
		-0.3 / 2, 0.2 / 2, 0.1 / 2,
		0.1 / 2, 0.5 / 2, -0.6 / 2,
	}
	assert.InDeltaSlice(t, want, tensor.Data(d), 1e-12)

	// dvalues are copied, not modified
	assert.Equal(t, 0.7, probs.At(0, 0))
}

func TestSoftmaxCrossEntropy_OneHotMatchesSparse(t *testing.T) {
	rng := newRNG()
	logits := randomDense(rng, 6, 4)
	labels := []int{3, 0, 1, 2, 3, 1}
	oneHot, err := tensor.OneHot(labels, 4)
	require.NoError(t, err)

	a := NewSoftmaxCrossEntropy()
	lossSparse, err := a.ForwardSparse(logits, labels)
	require.NoError(t, err)
	probs, err := a.Output()
	require.NoError(t, err)
	gradSparse, err := a.BackwardSparse(probs, labels)
	require.NoError(t, err)

	b := NewSoftmaxCrossEntropy()
	lossOneHot, err := b.ForwardOneHot(logits, oneHot)
	require.NoError(t, err)
	gradOneHot, err := b.BackwardOneHot(probs, oneHot)
	require.NoError(t, err)

	assert.Equal(t, lossSparse, lossOneHot)
	assert.True(t, mat.Equal(gradSparse, gradOneHot))
}

func TestSoftmaxCrossEntropy_State(t *testing.T) {
	fused := NewSoftmaxCrossEntropy()

	_, err := fused.Output()
	assert.ErrorIs(t, err, ErrUnsetState)
	_, err = fused.DInputs()
	assert.ErrorIs(t, err, ErrUnsetState)

	logits := mat.NewDense(1, 3, []float64{1, 2, 3})
	_, err = fused.ForwardSparse(logits, []int{2})
	require.NoError(t, err)
	probs, err := fused.Output()
	require.NoError(t, err)
	_, err = fused.BackwardSparse(probs, []int{2})
	require.NoError(t, err)
	_, err = fused.DInputs()
	require.NoError(t, err)

	// a new forward invalidates the previous gradient
	_, err = fused.ForwardSparse(logits, []int{1})
	require.NoError(t, err)
	_, err = fused.DInputs()
	assert.ErrorIs(t, err, ErrUnsetState)

	_, err = fused.BackwardSparse(probs, []int{5})
	assert.ErrorIs(t, err, tensor.ErrInvalidLabel)
}
