package utils

import "golang.org/x/exp/constraints"

// Min returns the smaller value between two numbers.
func Min[T constraints.Ordered](x, y T) T {
	if x < y {
		return x
	}
	return y
}

// Max returns the bigger value between two numbers.
func Max[T constraints.Ordered](x, y T) T {
	if x > y {
		return x
	}
	return y
}

// Abs returns the absolut value of x.
func Abs[T constraints.Signed | constraints.Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// MinMax returns the smallest and the biggest value of a non-empty slice.
// It returns the zero values in case the slice is empty.
func MinMax[T constraints.Ordered](values ...T) (T, T) {
	var lo, hi T
	if len(values) == 0 {
		return lo, hi
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = Min(lo, v)
		hi = Max(hi, v)
	}
	return lo, hi
}

// Clamp restricts v to the [lo, hi] interval.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	return Max(lo, Min(v, hi))
}
