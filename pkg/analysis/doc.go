// Package analysis holds the read-only EDA stages: dataset summary,
// univariate histograms, bivariate boxplots against a binary target and the
// correlation heatmap. None of them change the table they are given.
package analysis

import "log/slog"

func loggerOr(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
