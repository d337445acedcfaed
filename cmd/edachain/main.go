// Package main provides the edachain command line tool.
//
// edachain runs an exploratory data analysis pipeline over a table: it
// summarizes the columns, imputes missing values, plots distributions and
// relationships with a binary target, and renders a correlation heat map.
//
// Usage:
//
//	edachain run --input titanic.csv
//	edachain run --config edachain.yaml --report out/report.md
package main

func main() {
	Execute()
}
