// Package ktrlite provides the default bootstrap model for ktr.
//
// It seeds the level and seasonal knots with cheap point estimates: the level
// knots sample a centered moving average of the response, and the seasonal
// coefficient knots come from per-segment ridge regressions of the detrended
// response on fourier features. The main model then refines these seeds
// through its estimator.
package ktrlite
