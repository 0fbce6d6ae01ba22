// Package metric provides client-side Prometheus metrics for mitaina-cli.
//
// The registry is private to the process; nothing is scraped. The
// `metrics` command gathers it and prints the current values, which is
// useful when diagnosing a slow or flaky backend from a terminal.
package metric
