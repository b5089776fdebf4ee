package nn

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Initializer produces the starting weight matrix of a Dense layer.
//
// The engine never owns a random source: initializers draw from the
// generator handed to them by the caller.
type Initializer func(rows, cols int) *mat.Dense

// DefaultWeightScale scales standard-normal draws in RandomNormal.
const DefaultWeightScale = 0.1

// RandomNormal draws weights from scale · N(0, 1).
func RandomNormal(rng *rand.Rand, scale float64) Initializer {
	return func(rows, cols int) *mat.Dense {
		data := make([]float64, rows*cols)
		for i := range data {
			data[i] = scale * rng.NormFloat64()
		}
		return mat.NewDense(rows, cols, data)
	}
}

// Xavier (Glorot) initialization.
//
// Draws from U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))).
func Xavier(rng *rand.Rand) Initializer {
	return func(rows, cols int) *mat.Dense {
		bound := math.Sqrt(6.0 / float64(rows+cols))
		data := make([]float64, rows*cols)
		for i := range data {
			data[i] = (rng.Float64()*2.0 - 1.0) * bound
		}
		return mat.NewDense(rows, cols, data)
	}
}
