// Package ktr implements kernel-based time-varying regression (KTR) models.
//
// A KTR model describes a time series as the sum of a smooth local trend, an
// optional seasonal term and a regression term whose coefficients vary over
// time. All three components are curves interpolated from a small number of
// knot values: the trend and seasonality through a sandwich kernel, the
// regression coefficients through a Gaussian kernel.
//
// # Basic Usage
//
// Configure, fit and predict:
//
//	cfg := ktr.DefaultConfig()
//	cfg.Regressors = []string{"price", "promo"}
//	cfg.RegressorSigns = []ktr.Sign{ktr.SignUnconstrained, ktr.SignPositive}
//
//	model, err := ktr.NewModel(cfg, estimator, ktrlite.New(cfg))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fit, err := model.Fit(table)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	decomp, _ := fit.Predict(futureTable, &ktr.PredictOptions{
//	    IncludeError: true,
//	    Source:       rand.NewPCG(1, 2),
//	})
//
// # Collaborators
//
// The model does not sample parameters itself. An Estimator produces the
// posterior draws from an assembled EstimatorInput, and a Bootstrap model
// seeds the level and seasonal knots before estimation; the ktrlite package
// provides the default bootstrap.
//
// # Reporting
//
// A Fit reports posterior-mean summaries as tables: coefficient curves,
// coefficient knots, level knots and the reconstructed level curve. PlotLevels
// writes a diagnostic chart of the fitted level.
package ktr
