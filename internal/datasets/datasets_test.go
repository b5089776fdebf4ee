package datasets

import (
	"bytes"
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func newRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestSpiral(t *testing.T) {
	d, err := Spiral(100, 3, newRNG())
	require.NoError(t, err)

	assert.Equal(t, 300, d.Samples())
	assert.Equal(t, 2, d.Features())
	assert.Equal(t, 3, d.Classes)

	for i, label := range d.Labels {
		assert.Equal(t, i/100, label)
		// r is at most 1, so every point lies in the unit disc
		norm := math.Hypot(d.X.At(i, 0), d.X.At(i, 1))
		assert.LessOrEqual(t, norm, 1+1e-12)
	}

	// radius grows linearly along each arm
	assert.Equal(t, 0.0, math.Hypot(d.X.At(0, 0), d.X.At(0, 1)))
	assert.InDelta(t, 1.0, math.Hypot(d.X.At(99, 0), d.X.At(99, 1)), 1e-12)
}

func TestSpiral_Deterministic(t *testing.T) {
	a, err := Spiral(20, 2, newRNG())
	require.NoError(t, err)
	b, err := Spiral(20, 2, newRNG())
	require.NoError(t, err)

	assert.True(t, mat.Equal(a.X, b.X))
}

func TestVertical(t *testing.T) {
	d, err := Vertical(500, 3, newRNG())
	require.NoError(t, err)
	assert.Equal(t, 1500, d.Samples())

	for class := range 3 {
		col0 := make([]float64, 500)
		col1 := make([]float64, 500)
		mat.Col(col0, 0, d.X.Slice(class*500, (class+1)*500, 0, 2))
		mat.Col(col1, 1, d.X.Slice(class*500, (class+1)*500, 0, 2))

		// sample mean of N(mu, 0.01) over 500 draws is within 0.05 of mu
		assert.InDelta(t, float64(class)/3, floats.Sum(col0)/500, 0.05)
		assert.InDelta(t, 0.5, floats.Sum(col1)/500, 0.05)
	}
}

func TestGenerators_InvalidSize(t *testing.T) {
	_, err := Spiral(0, 3, newRNG())
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = Vertical(10, -1, newRNG())
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestLookup(t *testing.T) {
	gen, err := Lookup("vertical")
	require.NoError(t, err)
	d, err := gen(1, 2, newRNG())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, d.Labels)

	_, err = Lookup("moons")
	assert.Error(t, err)
}

func TestLinspace(t *testing.T) {
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, linspace(0, 1, 5))
	assert.Equal(t, []float64{4}, linspace(4, 8, 1))
}

func TestCSV_RoundTrip(t *testing.T) {
	d, err := Spiral(5, 3, newRNG())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, d))
	assert.True(t, strings.HasPrefix(buf.String(), "label,x0,x1\n"))

	got, err := ReadCSV(&buf, 0)
	require.NoError(t, err)
	assert.Equal(t, d.Labels, got.Labels)
	assert.Equal(t, 3, got.Classes)
	assert.True(t, mat.Equal(d.X, got.X))
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"header only", "label,x0\n"},
		{"no features", "label\n0\n"},
		{"bad label", "label,x0\nA,1\n"},
		{"negative label", "label,x0\n-1,1\n"},
		{"bad value", "label,x0\n0,abc\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input), 0)
			assert.Error(t, err)
		})
	}
}

func TestReadCSV_MaxSamples(t *testing.T) {
	input := "label,x0,x1\n0,1,2\n1,3,4\n2,5,6\n"
	d, err := ReadCSV(strings.NewReader(input), 2)
	require.NoError(t, err)

	assert.Equal(t, 2, d.Samples())
	assert.Equal(t, 2, d.Classes)
	assert.Equal(t, 4.0, d.X.At(1, 1))
}
