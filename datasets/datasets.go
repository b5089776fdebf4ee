// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package datasets provides synthetic 2-D classification datasets and a CSV
// loader.
//
// Example:
//
//	rng := rand.New(rand.NewPCG(1, 2))
//	data, err := datasets.Spiral(100, 3, rng)
//	// data.X is [300, 2], data.Labels holds 100 of each class
package datasets

import (
	"io"
	"math/rand/v2"

	"github.com/born-ml/mlp/internal/datasets"
)

// Dataset holds a feature matrix with one sparse label per row.
type Dataset = datasets.Dataset

// Generator produces a dataset of the given size.
type Generator = datasets.Generator

// ErrInvalidSize is returned when a generator is asked for an empty dataset.
var ErrInvalidSize = datasets.ErrInvalidSize

// Spiral generates interleaved noisy spiral arms, one per class.
func Spiral(samples, classes int, rng *rand.Rand) (*Dataset, error) {
	return datasets.Spiral(samples, classes, rng)
}

// Vertical generates one Gaussian cluster per class along the x axis.
func Vertical(samples, classes int, rng *rand.Rand) (*Dataset, error) {
	return datasets.Vertical(samples, classes, rng)
}

// Lookup returns the generator named "spiral" or "vertical".
func Lookup(name string) (Generator, error) {
	return datasets.Lookup(name)
}

// LoadCSV reads a "label,x0,x1,..." file with a header row.
func LoadCSV(filename string, maxSamples int) (*Dataset, error) {
	return datasets.LoadCSV(filename, maxSamples)
}

// WriteCSV writes d in the LoadCSV format.
func WriteCSV(w io.Writer, d *Dataset) error {
	return datasets.WriteCSV(w, d)
}
