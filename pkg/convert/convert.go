// Copyright (c) 2026 Tomebase. All rights reserved.
// Author: dev@tomebase.app

/*
Package convert provides quick type-conversion utilities.

It wraps standards like [strconv] to provide fault-tolerant conversions
(e.g., returning 0 instead of an error string parsing fails). This is highly
useful in API handler contexts parsing query parameters.

Do not use this package if distinguishing between malformed data and zero values
is important in your domain logic; use explicit standard libraries instead.
*/
package convert

import (
	"strconv"
)

// ToIntD converts a string to an int, returning the provided default if parsing fails or string is empty.
func ToIntD(str string, def int) int {

	// If the string is empty, return the default value
	if str == "" {
		return def
	}

	// Try to parse the string as an integer
	if v, err := strconv.Atoi(str); err == nil {
		return v
	}

	// If parsing fails, return the default value
	return def
}

// ToFloat64D converts a string to a float64, returning the provided default if parsing fails or string is empty.
func ToFloat64D(str string, def float64) float64 {

	// If the string is empty, return the default value
	if str == "" {
		return def
	}

	// Try to parse the string as a float64
	if v, err := strconv.ParseFloat(str, 64); err == nil {
		return v
	}

	// If parsing fails, return the default value
	return def
}
