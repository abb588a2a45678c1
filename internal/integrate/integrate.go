// Package integrate folds a cross-section with photon flux weights over an
// energy grid using the trapezoidal rule.
//
// Energies are expected in GeV and fluxes as dimensionless densities; the
// result carries the units of the cross-section. Units are not checked.
package integrate

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	gonum "gonum.org/v1/gonum/integrate"
)

var (
	ErrInsufficientData = errors.New("insufficient data")
	ErrLengthMismatch   = errors.New("flux and grid lengths differ")
	ErrNonMonotonicGrid = errors.New("grid is not strictly increasing")
)

type CrossSection interface {
	At(w float64) float64
}

type CrossSectionFunc func(w float64) float64

func (f CrossSectionFunc) At(w float64) float64 {
	return f(w)
}

// Tail holds sigma(W > WStart[i]) = Integral[i].
type Tail struct {
	WStart   []float64
	Integral []float64
}

func Validate(w, flux []float64) error {
	if len(w) < 2 {
		return fmt.Errorf("%w: grid has %d points, need at least 2", ErrInsufficientData, len(w))
	}
	if len(flux) != len(w) {
		return fmt.Errorf("%w: %d flux values for %d grid points", ErrLengthMismatch, len(flux), len(w))
	}
	for i := range w {
		if math.IsNaN(w[i]) || math.IsInf(w[i], 0) {
			return fmt.Errorf("%w: W[%d] = %v", ErrNonMonotonicGrid, i, w[i])
		}
		if i > 0 && !(w[i] > w[i-1]) {
			return fmt.Errorf("%w: W[%d] = %v after W[%d] = %v", ErrNonMonotonicGrid, i, w[i], i-1, w[i-1])
		}
	}
	return nil
}

// Trapezoids returns the len(w)-1 areas of flux*cs between consecutive grid points.
func Trapezoids(w, flux []float64, cs CrossSection) ([]float64, error) {
	if err := Validate(w, flux); err != nil {
		return nil, err
	}
	areas := make([]float64, len(w)-1)
	right := flux[len(w)-1] * cs.At(w[len(w)-1])
	for i := len(w) - 2; i >= 0; i-- {
		left := flux[i] * cs.At(w[i])
		areas[i] = (w[i+1] - w[i]) * 0.5 * (left + right)
		right = left
	}
	return areas, nil
}

// Cumulative sums the trapezoids from the top of the grid downwards, so that
// every entry is the remaining integral from W[i] to W[len(w)-1].
func Cumulative(w, flux []float64, cs CrossSection) (Tail, error) {
	areas, err := Trapezoids(w, flux, cs)
	if err != nil {
		return Tail{}, err
	}
	tail := Tail{
		WStart:   make([]float64, len(areas)),
		Integral: make([]float64, len(areas)),
	}
	last := len(areas) - 1
	for i := last; i >= 0; i-- {
		tail.WStart[i] = w[i]
		if i == last {
			tail.Integral[i] = areas[i]
		} else {
			tail.Integral[i] = tail.Integral[i+1] + areas[i]
		}
	}
	return tail, nil
}

// Total is the integral over the whole grid.
func Total(w, flux []float64, cs CrossSection) (float64, error) {
	if err := Validate(w, flux); err != nil {
		return 0, err
	}
	integrand := make([]float64, len(w))
	for i := range w {
		integrand[i] = cs.At(w[i])
	}
	floats.Mul(integrand, flux)
	return gonum.Trapezoidal(w, integrand), nil
}

func (t Tail) Len() int {
	return len(t.WStart)
}

// Truncate keeps the leading n points; n <= 0 or n >= Len keeps everything.
func (t Tail) Truncate(n int) Tail {
	if n <= 0 || n >= t.Len() {
		return t
	}
	return Tail{WStart: t.WStart[:n], Integral: t.Integral[:n]}
}

func (t Tail) Scaled(factor float64) Tail {
	return Tail{WStart: t.WStart, Integral: floats.ScaleTo(make([]float64, t.Len()), factor, t.Integral)}
}
