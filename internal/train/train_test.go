package train

import (
	"bytes"
	"context"
	"log"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/mlp/internal/datasets"
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/optim"
)

func newModel(t *testing.T, seed uint64, hidden, classes int) *Classifier {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, 99))
	model, err := NewClassifier(2, hidden, classes, nn.RandomNormal(rng, nn.DefaultWeightScale))
	require.NoError(t, err)
	return model
}

func TestClassifier_Shape(t *testing.T) {
	model := newModel(t, 1, 8, 3)

	assert.Len(t, model.Layers(), 2)
	assert.Equal(t, 2*8+8+8*3+3, model.NumParameters())
	assert.Equal(t, "Dense(2→8) → ReLU → Dense(8→3) → Softmax+CCE", model.String())

	loss, probs, err := model.Forward(mat.NewDense(4, 2, nil), []int{0, 1, 2, 0})
	require.NoError(t, err)
	r, c := probs.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 3, c)
	assert.Greater(t, loss, 0.0)

	pred, err := model.Predict(mat.NewDense(4, 2, nil))
	require.NoError(t, err)
	assert.Len(t, pred, 4)
}

func TestClassifier_BackwardBeforeForward(t *testing.T) {
	model := newModel(t, 1, 4, 2)
	assert.ErrorIs(t, model.Backward([]int{0}), nn.ErrUnsetState)
}

// TestTrainer_LossDecreases trains on well separated clusters and checks
// that the final loss is below the initial one.
func TestTrainer_LossDecreases(t *testing.T) {
	for _, kind := range []optim.Kind{optim.SGD, optim.AdaGrad, optim.RMSProp, optim.Adam} {
		t.Run(kind.String(), func(t *testing.T) {
			data, err := datasets.Vertical(50, 3, rand.New(rand.NewPCG(7, 7)))
			require.NoError(t, err)

			lr := map[optim.Kind]float64{optim.SGD: 1.0, optim.AdaGrad: 0.5, optim.RMSProp: 0.01, optim.Adam: 0.02}[kind]
			opt, err := optim.New(kind, map[string]float64{optim.LearningRate: lr})
			require.NoError(t, err)

			trainer, err := NewTrainer(newModel(t, 3, 16, 3), opt, Config{Epochs: 300}, nil)
			require.NoError(t, err)

			history, err := trainer.Run(context.Background(), data)
			require.NoError(t, err)
			require.Len(t, history, 300)

			first, last := history[0], history[len(history)-1]
			assert.Less(t, last.Loss, first.Loss)
			assert.Equal(t, 299, last.Epoch)
			assert.Equal(t, 300, opt.Iterations())

			loss, _, err := trainer.Evaluate(data)
			require.NoError(t, err)
			assert.Less(t, loss, first.Loss)
		})
	}
}

func TestTrainer_LogsProgress(t *testing.T) {
	data, err := datasets.Vertical(10, 2, rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, err)
	opt, err := optim.NewSGD(optim.SGDConfig{Decay: 0.01})
	require.NoError(t, err)

	var buf bytes.Buffer
	trainer, err := NewTrainer(newModel(t, 2, 4, 2), opt, Config{Epochs: 5, LogEvery: 2}, log.New(&buf, "", 0))
	require.NoError(t, err)

	history, err := trainer.Run(context.Background(), data)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// epochs 0, 2, 4
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "epoch 0: loss="))
	assert.True(t, strings.HasPrefix(lines[2], "epoch 4: loss="))

	// the decayed rate is the one each step used
	assert.Equal(t, 1.0, history[0].LearningRate)
	assert.InDelta(t, 1/1.04, history[4].LearningRate, 1e-15)
}

func TestTrainer_Cancelled(t *testing.T) {
	data, err := datasets.Vertical(5, 2, rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, err)
	opt, err := optim.NewAdam(optim.AdamConfig{})
	require.NoError(t, err)
	trainer, err := NewTrainer(newModel(t, 2, 4, 2), opt, Config{Epochs: 10}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	history, err := trainer.Run(ctx, data)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, history)
	assert.Equal(t, 0, opt.Iterations())
}

func TestTrainer_InvalidConfig(t *testing.T) {
	opt, err := optim.NewSGD(optim.SGDConfig{})
	require.NoError(t, err)

	_, err = NewTrainer(newModel(t, 1, 2, 2), opt, Config{}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestTrainer_LabelMismatch(t *testing.T) {
	opt, err := optim.NewSGD(optim.SGDConfig{})
	require.NoError(t, err)
	trainer, err := NewTrainer(newModel(t, 1, 2, 2), opt, Config{Epochs: 1}, nil)
	require.NoError(t, err)

	_, err = trainer.Step(mat.NewDense(2, 2, nil), []int{0, 5})
	assert.Error(t, err)
	assert.Equal(t, 0, opt.Iterations())
}
