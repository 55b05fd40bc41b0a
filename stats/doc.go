// Package stats provides small summary-statistic helpers for time series
// model components.
//
// The design matrix assembler uses the absolute-value summaries to compare a
// knot segment's local regressor volume against the global statistic:
//
//	local := stats.MeanAbs(x[start:end])
//	global := stats.MedianAbs(x) // global mean for positive regressors
//
// NaN-aware variants track invalid observations without dropping rows:
//
//	offset := stats.NaNMean(response)
package stats
