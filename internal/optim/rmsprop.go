package optim

import (
	"math"

	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/tensor"
)

// NewRMSProp creates RMSProp, AdaGrad with an exponentially decaying cache:
//
//	cache = rho * cache + (1 - rho) * gradient²
//	param -= lr * gradient / (sqrt(cache) + eps)
//
// Zero config fields keep their defaults.
func NewRMSProp(config RMSPropConfig) (*Optimizer, error) {
	return New(RMSProp, overrides(
		LearningRate, config.LR,
		Decay, config.Decay,
		Epsilon, config.Epsilon,
		Rho, config.Rho,
	))
}

func (o *Optimizer) updateRMSProp(p params, acc *nn.Accumulator) {
	cw, cb := acc.Cache()
	rmsprop(p.w, p.dw, tensor.Data(cw), o.currentLR, o.hp.rho, o.hp.epsilon)
	rmsprop(p.b, p.db, tensor.VecData(cb), o.currentLR, o.hp.rho, o.hp.epsilon)
}

func rmsprop(param, grad, cache []float64, lr, rho, eps float64) {
	for i, g := range grad {
		cache[i] = rho*cache[i] + (1-rho)*g*g
		param[i] -= lr * g / (math.Sqrt(cache[i]) + eps)
	}
}
