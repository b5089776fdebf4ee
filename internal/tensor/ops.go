package tensor

import (
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// FromRows builds a matrix from equally sized rows.
func FromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, &ShapeError{Op: "tensor.from_rows", Want: Shape{-1, -1}, Got: Shape{len(rows), 0}, Details: "empty input"}
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, &ShapeError{
				Op:      "tensor.from_rows",
				Want:    Shape{len(rows), cols},
				Got:     Shape{len(rows), len(row)},
				Details: "ragged row " + strconv.Itoa(i),
			}
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), cols, data), nil
}

// Data returns the backing slice of a matrix allocated by this module.
//
// The matrix must be contiguous (stride == cols); writes through the slice
// mutate the matrix.
func Data(m *mat.Dense) []float64 {
	raw := m.RawMatrix()
	if raw.Stride != raw.Cols {
		panic("tensor: Data on a non-contiguous matrix")
	}
	return raw.Data[:raw.Rows*raw.Cols]
}

// VecData returns the backing slice of a unit-stride vector.
func VecData(v *mat.VecDense) []float64 {
	raw := v.RawVector()
	if raw.Inc != 1 {
		panic("tensor: VecData on a strided vector")
	}
	return raw.Data[:raw.N]
}

// Clip returns a copy of m with every entry clamped into [lo, hi].
func Clip(m mat.Matrix, lo, hi float64) *mat.Dense {
	out := mat.DenseCopyOf(m)
	data := Data(out)
	for i, v := range data {
		switch {
		case v < lo:
			data[i] = lo
		case v > hi:
			data[i] = hi
		}
	}
	return out
}

// ColSum sums m over its rows, returning one entry per column.
func ColSum(m *mat.Dense) *mat.VecDense {
	r, c := m.Dims()
	sum := make([]float64, c)
	for i := 0; i < r; i++ {
		floats.Add(sum, m.RawRowView(i))
	}
	return mat.NewVecDense(c, sum)
}

// AddRowVector adds v to every row of m in place (bias broadcast).
func AddRowVector(m *mat.Dense, v *mat.VecDense) {
	r, _ := m.Dims()
	b := VecData(v)
	for i := 0; i < r; i++ {
		floats.Add(m.RawRowView(i), b)
	}
}

// ArgMaxRows returns the column index of each row's maximum.
//
// Ties resolve to the lowest index: floats.MaxIdx returns the first maximal
// entry.
func ArgMaxRows(m *mat.Dense) []int {
	r, _ := m.Dims()
	idx := make([]int, r)
	for i := range idx {
		idx[i] = floats.MaxIdx(m.RawRowView(i))
	}
	return idx
}
