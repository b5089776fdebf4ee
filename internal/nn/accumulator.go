package nn

import (
	"gonum.org/v1/gonum/mat"
)

// Accumulator holds optimizer state for one Dense layer.
//
// Buffers are shaped like the layer's weights and bias and are allocated
// lazily, zero-filled, the first time an optimizer asks for them. The owner
// tag records which optimizer variant allocated the state; a layer carries
// state for exactly one variant per run.
type Accumulator struct {
	owner      string
	rows, cols int

	weightMomentum *mat.Dense
	biasMomentum   *mat.VecDense
	weightCache    *mat.Dense
	biasCache      *mat.VecDense
}

// NewAccumulator creates empty state for a rows × cols layer.
func NewAccumulator(owner string, rows, cols int) *Accumulator {
	return &Accumulator{owner: owner, rows: rows, cols: cols}
}

// Owner returns the name of the optimizer variant that allocated the state.
func (a *Accumulator) Owner() string {
	return a.owner
}

// Momentum returns the first-moment (velocity) buffers, allocating them on
// first use.
func (a *Accumulator) Momentum() (*mat.Dense, *mat.VecDense) {
	if a.weightMomentum == nil {
		a.weightMomentum = mat.NewDense(a.rows, a.cols, nil)
		a.biasMomentum = mat.NewVecDense(a.cols, nil)
	}
	return a.weightMomentum, a.biasMomentum
}

// Cache returns the squared-gradient buffers, allocating them on first use.
func (a *Accumulator) Cache() (*mat.Dense, *mat.VecDense) {
	if a.weightCache == nil {
		a.weightCache = mat.NewDense(a.rows, a.cols, nil)
		a.biasCache = mat.NewVecDense(a.cols, nil)
	}
	return a.weightCache, a.biasCache
}

// HasMomentum reports whether momentum buffers were allocated.
func (a *Accumulator) HasMomentum() bool { return a.weightMomentum != nil }

// HasCache reports whether cache buffers were allocated.
func (a *Accumulator) HasCache() bool { return a.weightCache != nil }
