package integrate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/wildstyl3r/epacs/internal/xsec"
)

func constant(c float64) CrossSectionFunc {
	return func(float64) float64 { return c }
}

func logGrid(from, to float64, n int) []float64 {
	w := make([]float64, n)
	step := math.Log(to/from) / float64(n-1)
	for i := range w {
		w[i] = from * math.Exp(step*float64(i))
	}
	return w
}

func TestTwoPointConstant(t *testing.T) {
	const c = 3.5
	tail, err := Cumulative([]float64{10., 20.}, []float64{1., 1.}, constant(c))
	require.NoError(t, err)
	assert.Equal(t, []float64{10.}, tail.WStart)
	assert.Equal(t, []float64{10. * c}, tail.Integral)
}

func TestSinglePointIsInsufficient(t *testing.T) {
	_, err := Cumulative([]float64{10.}, []float64{1.}, constant(1))
	require.ErrorIs(t, err, ErrInsufficientData)
	_, err = Cumulative(nil, nil, constant(1))
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestLengthMismatch(t *testing.T) {
	_, err := Cumulative([]float64{1., 2., 3.}, []float64{1., 1.}, constant(1))
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestNonMonotonicGrid(t *testing.T) {
	for name, w := range map[string][]float64{
		"decreasing": {1., 3., 2.},
		"repeated":   {1., 2., 2.},
		"nan":        {1., math.NaN(), 3.},
		"inf":        {1., 2., math.Inf(1)},
	} {
		_, err := Cumulative(w, []float64{1., 1., 1.}, constant(1))
		assert.ErrorIs(t, err, ErrNonMonotonicGrid, name)
	}
}

func TestLastEntryIsLastTrapezoid(t *testing.T) {
	w := []float64{10., 12., 15., 19., 30.}
	flux := []float64{5., 4., 3., 2., 1.}
	cs := CrossSectionFunc(func(w float64) float64 { return 1. / w })
	tail, err := Cumulative(w, flux, cs)
	require.NoError(t, err)
	require.Equal(t, len(w)-1, tail.Len())
	n := len(w)
	area := (w[n-1] - w[n-2]) * 0.5 * (flux[n-2]*cs(w[n-2]) + flux[n-1]*cs(w[n-1]))
	assert.Equal(t, area, tail.Integral[n-2])
	assert.Equal(t, w[:n-1], tail.WStart)
}

func TestTailIsNonIncreasing(t *testing.T) {
	model, err := xsec.NewModel("muon", "Hamzeh", 0)
	require.NoError(t, err)
	w := logGrid(0.1, 1000., 400)
	flux := make([]float64, len(w))
	for i := range w {
		flux[i] = 1. / w[i]
	}
	tail, err := Cumulative(w, flux, model)
	require.NoError(t, err)
	for i := 0; i+1 < tail.Len(); i++ {
		assert.GreaterOrEqual(t, tail.Integral[i], tail.Integral[i+1], "index %d", i)
	}
	for _, v := range tail.Integral {
		require.False(t, math.IsNaN(v))
	}
	// below threshold intervals add nothing
	assert.Equal(t, tail.Integral[0], tail.Integral[1])
}

func TestCumulativeMatchesTrapezoidSum(t *testing.T) {
	model, err := xsec.NewModel("electron", "muon", 0)
	require.NoError(t, err)
	w := logGrid(1., 500., 50)
	flux := make([]float64, len(w))
	for i := range w {
		flux[i] = math.Exp(-w[i] / 100.)
	}
	areas, err := Trapezoids(w, flux, model)
	require.NoError(t, err)
	tail, err := Cumulative(w, flux, model)
	require.NoError(t, err)
	for i := range areas {
		assert.InEpsilon(t, floats.Sum(areas[i:]), tail.Integral[i], 1e-12)
	}
	total, err := Total(w, flux, model)
	require.NoError(t, err)
	assert.InEpsilon(t, total, tail.Integral[0], 1e-12)
}

func TestTruncateAndScale(t *testing.T) {
	tail, err := Cumulative([]float64{1., 2., 3., 4.}, []float64{1., 1., 1., 1.}, constant(2))
	require.NoError(t, err)
	assert.Equal(t, []float64{6., 4., 2.}, tail.Integral)

	short := tail.Truncate(2)
	assert.Equal(t, []float64{1., 2.}, short.WStart)
	assert.Equal(t, []float64{6., 4.}, short.Integral)
	assert.Equal(t, tail, tail.Truncate(0))
	assert.Equal(t, tail, tail.Truncate(10))

	scaled := tail.Scaled(1e3)
	assert.Equal(t, []float64{6e3, 4e3, 2e3}, scaled.Integral)
	assert.Equal(t, []float64{6., 4., 2.}, tail.Integral)
}
