// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

// ClampInt bounds n to [min, max].
//
// Example:
//
//	n := utils.ClampInt(120, 1, 50) // returns 50
//	n = utils.ClampInt(0, 1, 50)    // returns 1
func ClampInt(n, min, max int) int {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
