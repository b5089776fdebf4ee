package optim

import (
	"math"

	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/tensor"
)

// NewAdam creates Adam (Adaptive Moment Estimation).
//
// Adam combines momentum with an RMSProp cache and corrects both for their
// zero initialization:
//
//	m = beta1 * m + (1 - beta1) * gradient
//	v = beta2 * v + (1 - beta2) * gradient²
//	m_hat = m / (1 - beta1^(t+1))
//	v_hat = v / (1 - beta2^(t+1))
//	param -= lr * m_hat / (sqrt(v_hat) + eps)
//
// where t is the number of completed steps. Zero config fields keep their
// defaults.
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
func NewAdam(config AdamConfig) (*Optimizer, error) {
	return New(Adam, overrides(
		LearningRate, config.LR,
		Decay, config.Decay,
		Epsilon, config.Epsilon,
		Beta1, config.Beta1,
		Beta2, config.Beta2,
	))
}

func (o *Optimizer) updateAdam(p params, acc *nn.Accumulator) {
	mw, mb := acc.Momentum()
	vw, vb := acc.Cache()
	c := o.adamCorrection()
	c.apply(p.w, p.dw, tensor.Data(mw), tensor.Data(vw))
	c.apply(p.b, p.db, tensor.VecData(mb), tensor.VecData(vb))
}

// adamStep carries the per-step constants of an Adam update.
type adamStep struct {
	lr, eps      float64
	beta1, beta2 float64
	// 1 - beta^(t+1)
	correction1, correction2 float64
}

func (o *Optimizer) adamCorrection() adamStep {
	t := float64(o.iterations + 1)
	return adamStep{
		lr:          o.currentLR,
		eps:         o.hp.epsilon,
		beta1:       o.hp.beta1,
		beta2:       o.hp.beta2,
		correction1: 1 - math.Pow(o.hp.beta1, t),
		correction2: 1 - math.Pow(o.hp.beta2, t),
	}
}

func (s adamStep) apply(param, grad, m, v []float64) {
	for i, g := range grad {
		m[i] = s.beta1*m[i] + (1-s.beta1)*g
		v[i] = s.beta2*v[i] + (1-s.beta2)*g*g
		mHat := m[i] / s.correction1
		vHat := v[i] / s.correction2
		param[i] -= s.lr * mHat / (math.Sqrt(vHat) + s.eps)
	}
}
