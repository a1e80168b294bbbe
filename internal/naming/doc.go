// Package naming canonicalizes the raw folder names found in source
// archives into the identifiers used throughout the pipeline.
//
// It resolves country aliases, derives human-readable display names from
// underscore/hyphen separated folder names, and produces the lowercase
// ASCII slugs that become output directory names and manifest keys. All
// functions are pure; lookup tables are supplied by the caller so the
// classifier and manifest builder share one set of rules.
package naming
