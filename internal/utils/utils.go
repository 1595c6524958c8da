package utils

import "math"

// Returns the average of all given numbers n, rounded to the nearest integer
// (halves away from zero). The division is done in floating point.
func Average(n ...int) int {
	if len(n) == 0 {
		return 0
	}

	// Sum all numbers
	var sum int
	for _, num := range n {
		sum += num
	}

	return int(math.Round(float64(sum) / float64(len(n))))
}

// Abs returns the absolute value of n
func Abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
