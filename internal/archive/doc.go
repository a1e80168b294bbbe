// Package archive handles the zip boundary of the pipeline: safe
// extraction of source archives into the staging directory and streaming
// assembly of the cleaned output archive.
package archive
