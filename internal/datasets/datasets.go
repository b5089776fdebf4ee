// Package datasets generates and loads labeled 2-D point clouds for
// classifier training.
package datasets

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrInvalidSize is returned when a generator is asked for an empty dataset.
var ErrInvalidSize = errors.New("samples and classes must be positive")

// Dataset holds a feature matrix with one sparse label per row.
type Dataset struct {
	X       *mat.Dense // [samples, features]
	Labels  []int      // [samples], each in [0, Classes)
	Classes int
}

// Samples returns the number of rows.
func (d *Dataset) Samples() int {
	r, _ := d.X.Dims()
	return r
}

// Features returns the number of columns.
func (d *Dataset) Features() int {
	_, c := d.X.Dims()
	return c
}

const spiralNoise = 0.2

// Spiral generates classes interleaved spiral arms of samples points each.
//
// Point i of class k sits at radius r_i (evenly spaced in [0, 1]) and angle
// 2.5*(t_i + noise), where t_i is evenly spaced in [4k, 4(k+1)] and noise is
// drawn from N(0, 0.2²). Rows are grouped by class.
func Spiral(samples, classes int, rng *rand.Rand) (*Dataset, error) {
	if err := checkSize(samples, classes); err != nil {
		return nil, err
	}

	x := mat.NewDense(samples*classes, 2, nil)
	labels := make([]int, samples*classes)
	r := linspace(0, 1, samples)

	for class := range classes {
		t := linspace(float64(class)*4, float64(class+1)*4, samples)
		for i := range samples {
			row := class*samples + i
			theta := (t[i] + rng.NormFloat64()*spiralNoise) * 2.5
			x.Set(row, 0, r[i]*math.Sin(theta))
			x.Set(row, 1, r[i]*math.Cos(theta))
			labels[row] = class
		}
	}

	return &Dataset{X: x, Labels: labels, Classes: classes}, nil
}

// Vertical generates classes vertical clusters of samples points each.
//
// Class k is centered at (k/3, 0.5) with per-axis noise N(0, 0.1²).
func Vertical(samples, classes int, rng *rand.Rand) (*Dataset, error) {
	if err := checkSize(samples, classes); err != nil {
		return nil, err
	}

	x := mat.NewDense(samples*classes, 2, nil)
	labels := make([]int, samples*classes)

	for class := range classes {
		for i := range samples {
			row := class*samples + i
			x.Set(row, 0, rng.NormFloat64()*0.1+float64(class)/3)
			x.Set(row, 1, rng.NormFloat64()*0.1+0.5)
			labels[row] = class
		}
	}

	return &Dataset{X: x, Labels: labels, Classes: classes}, nil
}

// Generator produces a dataset of the given size.
type Generator func(samples, classes int, rng *rand.Rand) (*Dataset, error)

// Lookup returns the generator registered under name.
func Lookup(name string) (Generator, error) {
	switch name {
	case "spiral":
		return Spiral, nil
	case "vertical":
		return Vertical, nil
	default:
		return nil, fmt.Errorf("unknown dataset %q (want spiral or vertical)", name)
	}
}

func checkSize(samples, classes int) error {
	if samples <= 0 || classes <= 0 {
		return fmt.Errorf("%w: samples=%d classes=%d", ErrInvalidSize, samples, classes)
	}
	return nil
}

// linspace returns n evenly spaced values over [lo, hi]. A single point
// is lo.
func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	return floats.Span(out, lo, hi)
}
