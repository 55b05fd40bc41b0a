// Package timeseries provides time series data structures and utilities.
//
// This package includes the Series type for univariate data, the Table type
// for date-indexed multi-column data, and the calendar arithmetic used to
// convert between dates and normalized time positions.
//
// # Creating a Series
//
// Create a time series from a slice:
//
//	values := []float64{100, 102, 105, 103, 108, 110}
//	series := timeseries.New(values)
//
// # Tables
//
// A Table holds a strictly increasing date index plus named numeric columns
// (response and regressors):
//
//	table := timeseries.NewTable(dates)
//	err := table.AddColumn("y", response)
//	err = table.AddColumn("promo", promo)
//
//	// select regressor columns into a dense matrix
//	x, err := table.Matrix([]string{"promo"})
//
// # Calendar arithmetic
//
// Normalized time positions place n observations at (i+1)/n in (0, 1]:
//
//	tp := timeseries.TimePositions(n)
//
// Date gaps are measured in real-valued periods of a sampling frequency:
//
//	freq, err := timeseries.InferFrequency(dates)
//	gap := timeseries.GapInPeriods(start, end, freq)
//
// # Loading from CSV
//
// Load a date-indexed table from a CSV file:
//
//	opts := timeseries.DefaultCSVOptions()
//	opts.DateColumn = "ds"
//	table, err := timeseries.LoadTableCSV("data.csv", opts)
package timeseries
