package utils

import (
	"cmp"
	"sort"

	"golang.org/x/exp/constraints"
)

func Argmax[T cmp.Ordered](arr []T) (argmax int) {
	for i := range arr {
		if cmp.Compare(arr[i], arr[argmax]) == 1 {
			argmax = i
		}
	}
	return
}

type Number interface {
	constraints.Float | constraints.Integer
}

func SumSlice[T Number](arr []T) (r T) {
	for i := range arr {
		r += arr[i]
	}
	return
}

// LinearInterpolate evaluates the piecewise linear function through (xs, ys)
// at x; xs must be increasing. Outside [xs[0], xs[len-1]] and for NaN x the
// result is 0.
func LinearInterpolate(xs, ys []float64, x float64) float64 {
	if len(xs) == 0 || !(x >= xs[0] && x <= xs[len(xs)-1]) {
		return 0
	}
	i := sort.SearchFloat64s(xs, x)
	if i == len(xs) {
		return 0
	}
	if xs[i] == x {
		return ys[i]
	}
	t := (x - xs[i-1]) / (xs[i] - xs[i-1])
	return ys[i-1] + t*(ys[i]-ys[i-1])
}
