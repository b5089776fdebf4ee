// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the layers, activations and losses of a feed-forward
// classifier over gonum matrices.
//
// # Overview
//
// This package contains:
//   - Layers: Dense
//   - Activations: ReLU, Softmax
//   - Loss functions: CategoricalCrossEntropy, SoftmaxCrossEntropy (fused)
//   - Utilities: Sequential, Module interface, accuracy metrics
//   - Initialization: RandomNormal, Xavier
//
// Every unit caches what its Backward needs. Reading a cache before the call
// that fills it returns ErrUnsetState instead of stale or zero data.
//
// # Basic Usage
//
//	rng := rand.New(rand.NewPCG(1, 2))
//	init := nn.RandomNormal(rng, nn.DefaultWeightScale)
//
//	fc1, _ := nn.NewDense(2, 64, init)
//	fc2, _ := nn.NewDense(64, 3, init)
//	model := nn.NewSequential(fc1, nn.NewReLU(), fc2)
//	head := nn.NewSoftmaxCrossEntropy()
//
//	logits, err := model.Forward(x)
//	loss, err := head.ForwardSparse(logits, labels)
//
//	probs, _ := head.Output()
//	dLogits, err := head.BackwardSparse(probs, labels)
//	_, err = model.Backward(dLogits)
//
// # Labels
//
// Losses accept sparse labels (one class index per row) or one-hot rows.
// Both encodings give the same loss and gradient.
//
// # Numerical Stability
//
// Softmax subtracts each row's maximum before exponentiating. Cross-entropy
// clips probabilities to [ClipEpsilon, 1-ClipEpsilon] so log(0) and division
// by zero cannot occur.
package nn
