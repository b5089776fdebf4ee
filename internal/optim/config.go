package optim

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Kind selects the update rule of an Optimizer.
type Kind int

// Supported optimizer variants.
const (
	SGD Kind = iota
	AdaGrad
	RMSProp
	Adam
)

// String returns the lower-case variant name.
func (k Kind) String() string {
	switch k {
	case SGD:
		return "sgd"
	case AdaGrad:
		return "adagrad"
	case RMSProp:
		return "rmsprop"
	case Adam:
		return "adam"
	default:
		return "unknown"
	}
}

// ParseKind maps a variant name (case-insensitive) to its Kind.
func ParseKind(name string) (Kind, error) {
	for _, k := range []Kind{SGD, AdaGrad, RMSProp, Adam} {
		if strings.EqualFold(name, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Hyperparameter names accepted by Configure.
const (
	LearningRate = "learning_rate"
	Decay        = "decay"
	Momentum     = "momentum"
	Epsilon      = "epsilon"
	Rho          = "rho"
	Beta1        = "beta_1"
	Beta2        = "beta_2"
)

// hyperparameters lists the names a variant recognizes.
func (k Kind) hyperparameters() []string {
	switch k {
	case SGD:
		return []string{LearningRate, Decay, Momentum}
	case AdaGrad:
		return []string{LearningRate, Decay, Epsilon}
	case RMSProp:
		return []string{LearningRate, Decay, Epsilon, Rho}
	case Adam:
		return []string{LearningRate, Decay, Epsilon, Beta1, Beta2}
	default:
		return nil
	}
}

// SGDConfig holds configuration for SGD.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 1.0)
	Decay    float64 // Inverse-time decay (default: 0)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// AdaGradConfig holds configuration for AdaGrad.
type AdaGradConfig struct {
	LR      float64 // Learning rate (default: 1.0)
	Decay   float64 // Inverse-time decay (default: 0)
	Epsilon float64 // Term for numerical stability (default: 1e-7)
}

// RMSPropConfig holds configuration for RMSProp.
type RMSPropConfig struct {
	LR      float64 // Learning rate (default: 0.001)
	Decay   float64 // Inverse-time decay (default: 0)
	Epsilon float64 // Term for numerical stability (default: 1e-7)
	Rho     float64 // Cache smoothing constant (default: 0.9)
}

// AdamConfig holds configuration for Adam.
type AdamConfig struct {
	LR      float64 // Learning rate (default: 0.001)
	Decay   float64 // Inverse-time decay (default: 0)
	Epsilon float64 // Term for numerical stability (default: 1e-7)
	Beta1   float64 // First-moment decay (default: 0.9)
	Beta2   float64 // Second-moment decay (default: 0.999)
}

// hyperparams is the union of every variant's constants.
type hyperparams struct {
	learningRate float64
	decay        float64
	momentum     float64
	epsilon      float64
	rho          float64
	beta1        float64
	beta2        float64
}

// defaults returns the starting hyperparameters of a variant.
func defaults(k Kind) hyperparams {
	switch k {
	case SGD:
		return hyperparams{learningRate: 1.0}
	case AdaGrad:
		return hyperparams{learningRate: 1.0, epsilon: 1e-7}
	case RMSProp:
		return hyperparams{learningRate: 0.001, epsilon: 1e-7, rho: 0.9}
	default:
		return hyperparams{learningRate: 0.001, epsilon: 1e-7, beta1: 0.9, beta2: 0.999}
	}
}

func (h *hyperparams) field(name string) *float64 {
	switch name {
	case LearningRate:
		return &h.learningRate
	case Decay:
		return &h.decay
	case Momentum:
		return &h.momentum
	case Epsilon:
		return &h.epsilon
	case Rho:
		return &h.rho
	case Beta1:
		return &h.beta1
	case Beta2:
		return &h.beta2
	default:
		return nil
	}
}

// validate checks the value range of a recognized hyperparameter.
func validate(name string, v float64) bool {
	switch name {
	case LearningRate, Epsilon:
		return v > 0
	case Decay:
		return v >= 0
	case Momentum, Rho, Beta1, Beta2:
		return v >= 0 && v < 1
	default:
		return false
	}
}

// overrides turns non-zero config fields into named overrides.
func overrides(pairs ...any) map[string]float64 {
	out := make(map[string]float64, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if v := pairs[i+1].(float64); v != 0 {
			out[pairs[i].(string)] = v
		}
	}
	return out
}

// check validates a full set of overrides for kind without applying any.
func check(kind Kind, values map[string]float64) error {
	accepted := kind.hyperparameters()
	for _, name := range slices.Sorted(maps.Keys(values)) {
		if !slices.Contains(accepted, name) {
			return &HyperparameterError{Kind: kind, Name: name, Err: ErrUnknownHyperparameter}
		}
		if v := values[name]; !validate(name, v) {
			return &HyperparameterError{Kind: kind, Name: name, Value: v, Err: ErrInvalidHyperparameter}
		}
	}
	return nil
}
