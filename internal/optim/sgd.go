package optim

import (
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/tensor"
)

// NewSGD creates Stochastic Gradient Descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity - lr * gradient
//	param = param + velocity
//
// Zero config fields keep their defaults.
func NewSGD(config SGDConfig) (*Optimizer, error) {
	return New(SGD, overrides(
		LearningRate, config.LR,
		Decay, config.Decay,
		Momentum, config.Momentum,
	))
}

func (o *Optimizer) updateSGD(p params, acc *nn.Accumulator) {
	lr := o.currentLR
	if o.hp.momentum == 0 {
		floats.AddScaled(p.w, -lr, p.dw)
		floats.AddScaled(p.b, -lr, p.db)
		return
	}

	vw, vb := acc.Momentum()
	sgdMomentum(p.w, p.dw, tensor.Data(vw), o.hp.momentum, lr)
	sgdMomentum(p.b, p.db, tensor.VecData(vb), o.hp.momentum, lr)
}

func sgdMomentum(param, grad, v []float64, momentum, lr float64) {
	for i, g := range grad {
		v[i] = momentum*v[i] - lr*g
		param[i] += v[i]
	}
}
