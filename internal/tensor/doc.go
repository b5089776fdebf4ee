// Package tensor holds the array glue shared by the nn and optim packages.
//
// Arrays are gonum matrices (*mat.Dense for 2-D, *mat.VecDense for 1-D).
// This package adds what the training engine needs on top of them:
// shape checks that return ErrDimensionMismatch instead of panicking,
// clipping, bias broadcast, column sums, row argmax, and conversion between
// sparse and one-hot labels.
package tensor
