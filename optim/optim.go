// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/mlp/internal/optim"
)

// Optimizer applies one variant's update rule to Dense layers.
type Optimizer = optim.Optimizer

// Kind selects the optimizer variant.
type Kind = optim.Kind

// Optimizer variants.
const (
	SGD     = optim.SGD
	AdaGrad = optim.AdaGrad
	RMSProp = optim.RMSProp
	Adam    = optim.Adam
)

// Hyperparameter names accepted by New and Configure.
const (
	LearningRate = optim.LearningRate
	Decay        = optim.Decay
	Momentum     = optim.Momentum
	Epsilon      = optim.Epsilon
	Rho          = optim.Rho
	Beta1        = optim.Beta1
	Beta2        = optim.Beta2
)

// ParseKind maps a variant name such as "adam" to its Kind.
func ParseKind(name string) (Kind, error) {
	return optim.ParseKind(name)
}

// New creates an optimizer from variant defaults plus named overrides.
//
// Example:
//
//	opt, err := optim.New(optim.RMSProp, map[string]float64{
//	    optim.LearningRate: 0.02,
//	    optim.Decay:        1e-5,
//	})
func New(kind Kind, values map[string]float64) (*Optimizer, error) {
	return optim.New(kind, values)
}

// SGD (Stochastic Gradient Descent)

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	optimizer, err := optim.NewSGD(optim.SGDConfig{
//	    LR:       1.0,
//	    Decay:    1e-3,
//	    Momentum: 0.9,
//	})
func NewSGD(config SGDConfig) (*Optimizer, error) {
	return optim.NewSGD(config)
}

// AdaGrad

// AdaGradConfig contains configuration for AdaGrad optimizer.
type AdaGradConfig = optim.AdaGradConfig

// NewAdaGrad creates a new AdaGrad optimizer.
func NewAdaGrad(config AdaGradConfig) (*Optimizer, error) {
	return optim.NewAdaGrad(config)
}

// RMSProp

// RMSPropConfig contains configuration for RMSProp optimizer.
type RMSPropConfig = optim.RMSPropConfig

// NewRMSProp creates a new RMSProp optimizer.
func NewRMSProp(config RMSPropConfig) (*Optimizer, error) {
	return optim.NewRMSProp(config)
}

// Adam (Adaptive Moment Estimation)

// AdamConfig contains configuration for Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer with bias correction.
//
// Example:
//
//	optimizer, err := optim.NewAdam(optim.AdamConfig{
//	    LR:    0.05,
//	    Decay: 5e-7,
//	})
func NewAdam(config AdamConfig) (*Optimizer, error) {
	return optim.NewAdam(config)
}

// Errors

var (
	// ErrUnknownHyperparameter is returned for a name the variant does not use.
	ErrUnknownHyperparameter = optim.ErrUnknownHyperparameter
	// ErrInvalidHyperparameter is returned for an out-of-range value.
	ErrInvalidHyperparameter = optim.ErrInvalidHyperparameter
	// ErrIncompatibleState is returned when a layer carries another variant's state.
	ErrIncompatibleState = optim.ErrIncompatibleState
	// ErrUnknownKind is returned for an unrecognized variant.
	ErrUnknownKind = optim.ErrUnknownKind
)

// HyperparameterError reports a rejected hyperparameter name or value.
type HyperparameterError = optim.HyperparameterError
