package train

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/mlp/internal/datasets"
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/optim"
)

// ErrInvalidConfig is returned for a non-positive epoch count.
var ErrInvalidConfig = errors.New("invalid training config")

// Config holds training loop settings.
type Config struct {
	Epochs   int // Number of full-batch steps
	LogEvery int // Log every N epochs (0 = only the last)
}

// Metrics describes one training step.
type Metrics struct {
	Epoch        int
	Loss         float64
	Accuracy     float64
	LearningRate float64 // rate used by this step's update
}

// String formats the metrics for a progress line.
func (m Metrics) String() string {
	return fmt.Sprintf("epoch %d: loss=%.4f acc=%.2f%% lr=%.6g", m.Epoch, m.Loss, m.Accuracy*100, m.LearningRate)
}

// Trainer runs full-batch gradient descent on a Classifier.
type Trainer struct {
	model  *Classifier
	opt    *optim.Optimizer
	cfg    Config
	logger *log.Logger
}

// NewTrainer creates a trainer. A nil logger discards progress output.
func NewTrainer(model *Classifier, opt *optim.Optimizer, cfg Config, logger *log.Logger) (*Trainer, error) {
	if cfg.Epochs <= 0 {
		return nil, fmt.Errorf("%w: epochs must be positive, got %d", ErrInvalidConfig, cfg.Epochs)
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Trainer{model: model, opt: opt, cfg: cfg, logger: logger}, nil
}

// Step runs forward, backward and one optimizer update on a batch.
//
// Accuracy and loss refer to the parameters before the update.
func (t *Trainer) Step(x *mat.Dense, labels []int) (Metrics, error) {
	loss, probs, err := t.model.Forward(x, labels)
	if err != nil {
		return Metrics{}, fmt.Errorf("forward: %w", err)
	}
	acc, err := nn.Accuracy(probs, labels)
	if err != nil {
		return Metrics{}, err
	}
	if err := t.model.Backward(labels); err != nil {
		return Metrics{}, fmt.Errorf("backward: %w", err)
	}

	t.opt.PreUpdate()
	m := Metrics{Epoch: t.opt.Iterations(), Loss: loss, Accuracy: acc, LearningRate: t.opt.LearningRate()}
	for i, layer := range t.model.Layers() {
		if err := t.opt.Update(layer); err != nil {
			return Metrics{}, fmt.Errorf("layer %d: %w", i, err)
		}
	}
	t.opt.PostUpdate()

	return m, nil
}

// Run trains on d for the configured number of epochs and returns the
// metrics of every epoch. It stops early with ctx.Err() if ctx is done.
func (t *Trainer) Run(ctx context.Context, d *datasets.Dataset) ([]Metrics, error) {
	history := make([]Metrics, 0, t.cfg.Epochs)

	for epoch := range t.cfg.Epochs {
		if err := ctx.Err(); err != nil {
			return history, err
		}

		m, err := t.Step(d.X, d.Labels)
		if err != nil {
			return history, fmt.Errorf("epoch %d: %w", epoch, err)
		}
		m.Epoch = epoch
		history = append(history, m)

		if t.shouldLog(epoch) {
			t.logger.Print(m)
		}
	}

	return history, nil
}

// Evaluate returns loss and accuracy on d without updating parameters.
func (t *Trainer) Evaluate(d *datasets.Dataset) (loss, accuracy float64, err error) {
	loss, probs, err := t.model.Forward(d.X, d.Labels)
	if err != nil {
		return 0, 0, err
	}
	accuracy, err = nn.Accuracy(probs, d.Labels)
	return loss, accuracy, err
}

func (t *Trainer) shouldLog(epoch int) bool {
	last := epoch == t.cfg.Epochs-1
	if t.cfg.LogEvery <= 0 {
		return last
	}
	return last || epoch%t.cfg.LogEvery == 0
}
