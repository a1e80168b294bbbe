// Package pipeline orchestrates a full import run: extract the source
// archive into staging, classify artist directories, select and transcode
// assets, assemble the cleaned output archive, and emit the manifest and
// report tables.
//
// Processing is sequential. Classification completes before any asset work
// begins, and artists are processed one at a time. A failure while
// processing a single artist is isolated: it is logged, counted, and
// recorded in the report as a failed row, and the run continues with the
// next artist. Only extraction and output-archive errors abort the run.
package pipeline
