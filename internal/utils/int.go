package utils

import (
	"errors"
	"math"
)

var ErrIntegerOverflow = errors.New("integer overflow")

// SafeInt64ToInt converts an offset or length used by the file layer into a
// slice index. It fails for negative values and for values that do not fit
// in an int on the current platform.
func SafeInt64ToInt(i int64) (int, error) {
	if i < 0 || uint64(i) > math.MaxInt {
		return 0, errors.New("integer overflow: value out of int range")
	}

	return int(i), nil
}

// SafeAddInt64 adds two non-negative values, failing when the sum wraps.
func SafeAddInt64(a, b int64) (int64, error) {
	if a < 0 || b < 0 {
		return 0, errors.New("integer overflow: negative operand")
	}

	if a > math.MaxInt64-b {
		return 0, ErrIntegerOverflow
	}

	return a + b, nil
}
