package optim

import (
	"math"

	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/tensor"
)

// NewAdaGrad creates AdaGrad, which scales each parameter's step by the root
// of its accumulated squared gradients:
//
//	cache += gradient²
//	param -= lr * gradient / (sqrt(cache) + eps)
//
// Zero config fields keep their defaults.
func NewAdaGrad(config AdaGradConfig) (*Optimizer, error) {
	return New(AdaGrad, overrides(
		LearningRate, config.LR,
		Decay, config.Decay,
		Epsilon, config.Epsilon,
	))
}

func (o *Optimizer) updateAdaGrad(p params, acc *nn.Accumulator) {
	cw, cb := acc.Cache()
	adagrad(p.w, p.dw, tensor.Data(cw), o.currentLR, o.hp.epsilon)
	adagrad(p.b, p.db, tensor.VecData(cb), o.currentLR, o.hp.epsilon)
}

func adagrad(param, grad, cache []float64, lr, eps float64) {
	for i, g := range grad {
		cache[i] += g * g
		param[i] -= lr * g / (math.Sqrt(cache[i]) + eps)
	}
}
