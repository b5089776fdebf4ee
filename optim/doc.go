// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training Dense layers.
//
// # Overview
//
// This package contains:
//   - SGD: Stochastic Gradient Descent with momentum
//   - AdaGrad: per-parameter rates from accumulated squared gradients
//   - RMSProp: AdaGrad with an exponentially decaying cache
//   - Adam: Adaptive Moment Estimation with bias correction
//
// All variants share one Optimizer type, so the training loop does not
// depend on which one is selected.
//
// # Basic Usage
//
//	optimizer, err := optim.NewAdam(optim.AdamConfig{LR: 0.05, Decay: 5e-7})
//	if err != nil {
//	    return err
//	}
//
//	for epoch := range epochs {
//	    // forward and backward passes fill each layer's gradients
//
//	    optimizer.PreUpdate()
//	    for _, layer := range model.Layers() {
//	        if err := optimizer.Update(layer); err != nil {
//	            return err
//	        }
//	    }
//	    optimizer.PostUpdate()
//	}
//
// Step(layers...) performs the three calls at once.
//
// # Learning Rate Decay
//
// Every variant supports inverse-time decay. PreUpdate sets
//
//	current = base / (1 + decay * iterations)
//
// and PostUpdate advances iterations once per step, however many layers were
// updated.
//
// # Per-Layer State
//
// Momentum and cache buffers live on each layer's Accumulator and are
// allocated on first update. A layer's state belongs to the variant that
// allocated it; updating it with another variant returns
// ErrIncompatibleState until the layer's accumulator is reset.
//
// # Runtime Configuration
//
// Configure accepts a map of named overrides. Names outside the variant's
// set fail with ErrUnknownHyperparameter and nothing is applied:
//
//	err := optimizer.Configure(map[string]float64{optim.Beta1: 0.8})
package optim
