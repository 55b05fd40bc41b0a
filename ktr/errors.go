package ktr

import "errors"

// The two fatal error classes. Every specific error in this package wraps one
// of them, so callers can branch with errors.Is.
var (
	// ErrConfiguration marks an illegal model configuration: mismatched
	// regressor parameter lists, malformed coefficient priors, regressor
	// columns absent from the input table, or zero level knots resolved.
	ErrConfiguration = errors.New("ktr: invalid configuration")

	// ErrData marks invalid input data: fewer observations than the largest
	// seasonal period, unordered or duplicate dates, or a forecast start
	// before the training start.
	ErrData = errors.New("ktr: invalid data")
)
