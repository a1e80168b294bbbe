// Package main hosts the artpack CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the import pipeline (clean), run
// ledger inspection (runs), and configuration scaffolding (config init,
// config validate). It centralizes configuration resolution and logger
// setup so subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
