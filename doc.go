// Package goktr provides kernel-based time-varying regression for time series.
//
// GoKTR models a series as the sum of a smooth local trend, fourier
// seasonality and regression terms whose coefficients drift over time. Each
// component is a curve interpolated from a small set of knots: the trend and
// seasonality through a sandwich kernel, the regression coefficients through a
// Gaussian kernel. Parameter estimation is delegated to a pluggable estimator;
// a lightweight bootstrap model seeds the level and seasonal knots first.
//
// # Quick Start
//
// Fit a model with weekly seasonality and two regressors:
//
//	table, _ := timeseries.LoadTableCSV("sales.csv", nil)
//
//	cfg := ktr.DefaultConfig()
//	cfg.Seasonality = []int{7}
//	cfg.SeasonalityFSOrders = []int{2}
//	cfg.RegressorColumns = []string{"price", "promo"}
//	cfg.RegressorSigns = []ktr.Sign{ktr.SignUnconstrained, ktr.SignPositive}
//
//	model, _ := ktr.NewModel(cfg, estimator, ktrlite.New(cfg))
//	fit, _ := model.Fit(table)
//	decomp, _ := fit.Predict(futureTable, nil)
//
// # Packages
//
// The library is organized into the following packages:
//
//   - ktr: the main model, configuration, prediction and reporting
//   - ktrlite: the default bootstrap model for level and seasonal knots
//   - kernels: Gaussian and sandwich kernel matrices
//   - knots: knot counting and placement over the training range
//   - timeseries: date-indexed tables, calendar arithmetic, fourier features
//   - stats: small numeric summaries shared by the model packages
//
// # References
//
//   - Ng, E., Wang, Z., Chen, H., Yang, S., & Smyl, S. (2021). Orbit:
//     Probabilistic Forecast with Exponential Smoothing
package goktr
