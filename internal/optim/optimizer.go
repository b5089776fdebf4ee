// Package optim implements the update rules that train Dense layers.
//
// One Optimizer type covers every variant (SGD with momentum, AdaGrad,
// RMSProp, Adam). The training loop drives it through a fixed three-phase
// protocol once per step:
//
//	opt.PreUpdate()
//	for _, layer := range layers {
//	    if err := opt.Update(layer); err != nil {
//	        return err
//	    }
//	}
//	opt.PostUpdate()
//
// Step bundles the three calls. Per-layer state (momentum and squared-gradient
// caches) lives on the layer's nn.Accumulator and is allocated on first use.
package optim

import (
	"fmt"
	"maps"
	"slices"

	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/tensor"
)

// Optimizer applies one variant's update rule to Dense layers.
//
// The optimizer owns the global schedule: base learning rate, decay and the
// iteration counter shared by every layer touched in a step. It holds no
// reference to the layers it has updated.
type Optimizer struct {
	kind       Kind
	hp         hyperparams
	iterations int
	currentLR  float64
}

// New creates an optimizer of the given kind, applying named overrides on top
// of the variant defaults. Unknown names and out-of-range values are rejected
// before anything is applied.
func New(kind Kind, values map[string]float64) (*Optimizer, error) {
	if kind.hyperparameters() == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	o := &Optimizer{kind: kind, hp: defaults(kind)}
	o.currentLR = o.hp.learningRate
	if err := o.Configure(values); err != nil {
		return nil, err
	}
	return o, nil
}

// Kind returns the optimizer variant.
func (o *Optimizer) Kind() Kind {
	return o.kind
}

// String returns a short description for logs.
func (o *Optimizer) String() string {
	return fmt.Sprintf("%s(lr=%g, decay=%g)", o.kind, o.hp.learningRate, o.hp.decay)
}

// LearningRate returns the decayed learning rate used by the current step.
func (o *Optimizer) LearningRate() float64 {
	return o.currentLR
}

// BaseLearningRate returns the learning rate before decay.
func (o *Optimizer) BaseLearningRate() float64 {
	return o.hp.learningRate
}

// Iterations returns the number of completed steps.
func (o *Optimizer) Iterations() int {
	return o.iterations
}

// PreUpdate recomputes the current learning rate with inverse-time decay:
//
//	current = base / (1 + decay * iterations)
func (o *Optimizer) PreUpdate() {
	o.currentLR = o.hp.learningRate
	if o.hp.decay != 0 {
		o.currentLR = o.hp.learningRate / (1 + o.hp.decay*float64(o.iterations))
	}
}

// Update applies the variant rule to layer, mutating its weights and bias.
//
// The layer must hold gradients from a Backward call. Accumulator buffers are
// allocated on the first update; a layer whose state was allocated by another
// variant is rejected with ErrIncompatibleState.
func (o *Optimizer) Update(layer *nn.Dense) error {
	dw, db, err := layer.Gradients()
	if err != nil {
		return fmt.Errorf("%s update: %w", o.kind, err)
	}

	acc, err := o.accumulator(layer)
	if err != nil {
		return err
	}

	p := params{
		w:  tensor.Data(layer.Weights()),
		b:  tensor.VecData(layer.Bias()),
		dw: tensor.Data(dw),
		db: tensor.VecData(db),
	}

	switch o.kind {
	case SGD:
		o.updateSGD(p, acc)
	case AdaGrad:
		o.updateAdaGrad(p, acc)
	case RMSProp:
		o.updateRMSProp(p, acc)
	case Adam:
		o.updateAdam(p, acc)
	}
	return nil
}

// PostUpdate advances the iteration counter once per step.
func (o *Optimizer) PostUpdate() {
	o.iterations++
}

// Step runs PreUpdate, Update for each layer in order, then PostUpdate.
// If an update fails the counter is not advanced; layers before the failing
// one have already been modified.
func (o *Optimizer) Step(layers ...*nn.Dense) error {
	o.PreUpdate()
	for i, layer := range layers {
		if err := o.Update(layer); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}
	o.PostUpdate()
	return nil
}

// Configure overrides hyperparameters by name. Every entry is validated
// before any is applied, so a rejected call leaves the optimizer unchanged.
func (o *Optimizer) Configure(values map[string]float64) error {
	if err := check(o.kind, values); err != nil {
		return err
	}
	for name, v := range values {
		*o.hp.field(name) = v
	}
	if _, ok := values[LearningRate]; ok {
		o.PreUpdate()
	}
	return nil
}

// Hyperparameters returns the current value of every recognized name.
func (o *Optimizer) Hyperparameters() map[string]float64 {
	names := o.kind.hyperparameters()
	out := make(map[string]float64, len(names))
	for _, name := range names {
		out[name] = *o.hp.field(name)
	}
	return out
}

// Names returns the recognized hyperparameter names in sorted order.
func (o *Optimizer) Names() []string {
	return slices.Sorted(maps.Keys(o.Hyperparameters()))
}

// Reset restarts the schedule. Layer accumulators are owned by the layers
// and must be cleared there.
func (o *Optimizer) Reset() {
	o.iterations = 0
	o.currentLR = o.hp.learningRate
}

// params groups flat views of a layer's parameters and gradients.
type params struct {
	w, b   []float64
	dw, db []float64
}

// stateful reports whether the variant keeps per-layer buffers.
func (o *Optimizer) stateful() bool {
	return o.kind != SGD || o.hp.momentum > 0
}

func (o *Optimizer) accumulator(layer *nn.Dense) (*nn.Accumulator, error) {
	acc := layer.Accumulator()
	if acc != nil {
		if acc.Owner() != o.kind.String() {
			return nil, fmt.Errorf("%w: %s cannot reuse state allocated by %s", ErrIncompatibleState, o.kind, acc.Owner())
		}
		return acc, nil
	}
	if !o.stateful() {
		return nil, nil
	}
	acc = nn.NewAccumulator(o.kind.String(), layer.InFeatures(), layer.OutFeatures())
	layer.SetAccumulator(acc)
	return acc, nil
}
