// Package stats computes advisory year and decade histograms over a track
// selection so the deck author can rebalance it before printing.
package stats
