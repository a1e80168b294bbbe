// Package manifest accumulates the two output tables of an import run: the
// publish-ready artist catalog and the per-artist diagnostics report.
//
// Rows are append-only. The catalog is sorted by country, organization,
// and name before serialization; the report keeps processing order so it
// reads like a run log. Both tables serialize to CSV with fixed column
// orders that downstream import tooling depends on.
package manifest
