package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// CheckLabels validates sparse class indices against a [rows, classes]
// prediction matrix.
func CheckLabels(op string, labels []int, rows, classes int) error {
	if len(labels) != rows {
		return &ShapeError{Op: op, Want: Shape{rows}, Got: Shape{len(labels)}, Details: "one label per sample"}
	}
	for i, l := range labels {
		if l < 0 || l >= classes {
			return &LabelError{Row: i, Details: fmt.Sprintf("class %d outside [0, %d)", l, classes)}
		}
	}
	return nil
}

// OneHot expands sparse class indices into indicator rows.
func OneHot(labels []int, classes int) (*mat.Dense, error) {
	if len(labels) == 0 {
		return nil, &ShapeError{Op: "tensor.one_hot", Want: Shape{-1}, Got: Shape{0}, Details: "no labels"}
	}
	if err := CheckLabels("tensor.one_hot", labels, len(labels), classes); err != nil {
		return nil, err
	}
	out := mat.NewDense(len(labels), classes, nil)
	for i, l := range labels {
		out.Set(i, l, 1)
	}
	return out, nil
}

// Sparse collapses one-hot rows into class indices.
//
// The class of a row is the first column equal to 1.
func Sparse(oneHot *mat.Dense) ([]int, error) {
	r, _ := oneHot.Dims()
	labels := make([]int, r)
	for i := 0; i < r; i++ {
		labels[i] = -1
		for j, v := range oneHot.RawRowView(i) {
			if v == 1 {
				labels[i] = j
				break
			}
		}
		if labels[i] < 0 {
			return nil, &LabelError{Row: i, Details: "one-hot row has no target class"}
		}
	}
	return labels, nil
}
