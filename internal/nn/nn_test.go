package nn

import (
	"testing"

	"github.com/born-ml/mlp/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// TestAccuracy_TieBreak documents that the first maximal column is the
// predicted class when a row has several equal maxima.
func TestAccuracy_TieBreak(t *testing.T) {
	yPred := mat.NewDense(4, 3, []float64{
		0.4, 0.4, 0.2, // tie between 0 and 1 -> 0
		0.2, 0.4, 0.4, // tie between 1 and 2 -> 1
		1.0 / 3, 1.0 / 3, 1.0 / 3, // three-way tie -> 0
		0.1, 0.1, 0.8,
	})

	assert.Equal(t, []int{0, 1, 0, 2}, Predictions(yPred))

	acc, err := Accuracy(yPred, []int{0, 1, 0, 2})
	require.NoError(t, err)
	assert.Equal(t, 1.0, acc)

	acc, err = Accuracy(yPred, []int{1, 2, 2, 2})
	require.NoError(t, err)
	assert.Equal(t, 0.25, acc, "later tied columns never count as predicted")
}

func TestAccuracy_OneHot(t *testing.T) {
	yPred := mat.NewDense(2, 2, []float64{0.9, 0.1, 0.3, 0.7})
	yTrue := mat.NewDense(2, 2, []float64{1, 0, 1, 0})

	acc, err := AccuracyOneHot(yPred, yTrue)
	require.NoError(t, err)
	assert.Equal(t, 0.5, acc)

	_, err = Accuracy(yPred, []int{0})
	assert.ErrorIs(t, err, tensor.ErrDimensionMismatch)
}

func TestSequential_ForwardBackward(t *testing.T) {
	d1 := fixedDense(t)
	w2 := mat.NewDense(3, 2, []float64{1, 0, 0, 1, 1, 1})
	d2, err := NewDenseFrom(w2, mat.NewVecDense(2, nil))
	require.NoError(t, err)

	model := NewSequential(d1, NewReLU())
	model.Add(d2)
	assert.Equal(t, 3, model.Len())
	assert.Equal(t, []*Dense{d1, d2}, model.Layers())

	x := mat.NewDense(1, 2, []float64{1, -1})
	out, err := model.Forward(x)
	require.NoError(t, err)

	// d1: [1-4, 2-5, 3-6] + [0.5, -1, 2] = [-2.5, -4, -1] -> ReLU -> 0
	assert.Equal(t, []float64{0, 0}, tensor.Data(out))

	dX, err := model.Backward(mat.NewDense(1, 2, []float64{1, 1}))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, tensor.Data(dX), "ReLU blocked every path")

	dW1, err := d1.DWeights()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, tensor.Data(dW1))

	m, err := model.Module(1)
	require.NoError(t, err)
	assert.IsType(t, &ReLU{}, m)

	_, err = model.Module(3)
	assert.Error(t, err)
}

func TestSequential_WrapsErrors(t *testing.T) {
	model := NewSequential(fixedDense(t), NewReLU())

	_, err := model.Backward(mat.NewDense(1, 3, nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsetState)
	assert.Contains(t, err.Error(), "module 1 backward")

	_, err = model.Forward(mat.NewDense(1, 5, nil))
	assert.ErrorIs(t, err, tensor.ErrDimensionMismatch)
	assert.Contains(t, err.Error(), "module 0 forward")
}

func TestPerceptron(t *testing.T) {
	p := NewPerceptron([]float64{0.5, -1, 2}, 0.25)

	got, err := p.Activate([]float64{2, 1, 0.5})
	require.NoError(t, err)
	assert.Equal(t, 1.25, got)

	_, err = p.Activate([]float64{1})
	assert.ErrorIs(t, err, tensor.ErrDimensionMismatch)
}
