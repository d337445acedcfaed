// Package chart renders the plots produced by the analysis stages.
package chart

import (
	"regexp"
	"strings"
)

// Plotter draws one figure per call.
type Plotter interface {
	// Histogram bins values into bins equal-width buckets.
	Histogram(title string, values []float64, bins int) error
	// BoxPlot draws one box per group; values[i] belongs to groups[i].
	BoxPlot(title string, groups []string, values [][]float64) error
	// HeatMap draws a square matrix with one annotated cell per entry.
	HeatMap(title string, labels []string, matrix [][]float64) error
}

var nonWord = regexp.MustCompile(`[^a-z0-9]+`)

// Slug turns a plot title into a file name stem.
func Slug(title string) string {
	s := nonWord.ReplaceAllString(strings.ToLower(title), "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "plot"
	}
	return s
}
