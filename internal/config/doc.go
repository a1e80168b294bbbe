// Package config loads, normalizes, and validates artpack configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and centralizes every knob the pipeline
// needs: staging and output directories, image encoding limits, and the
// catalog rules (valid countries, country aliases, known organizations,
// asset extension sets) that drive directory classification and asset
// selection.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, lowercased catalog keys, and clear validation errors.
package config
